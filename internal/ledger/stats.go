package ledger

import (
	"errors"

	"github.com/sheikh-saqib/transaction-ledger-engine/internal/models"
)

var skipReasons = []error{
	models.ErrMissingAmount,
	models.ErrUnresolvedReference,
	models.ErrLockedAccount,
	models.ErrInsufficientFunds,
	models.ErrInvalidTransition,
	models.ErrClientMismatch,
}

// Stats counts what happened to the records of a run
type Stats struct {
	Applied int
	Skipped map[string]int // keyed by the skip reason
}

func newStats() Stats {
	return Stats{Skipped: make(map[string]int)}
}

func (s *Stats) skip(err error) {
	for _, reason := range skipReasons {
		if errors.Is(err, reason) {
			s.Skipped[reason.Error()]++
			return
		}
	}
	s.Skipped[err.Error()]++
}

// TotalSkipped sums the skipped records across all reasons
func (s Stats) TotalSkipped() int {
	total := 0
	for _, n := range s.Skipped {
		total += n
	}
	return total
}

func (s Stats) clone() Stats {
	out := Stats{Applied: s.Applied, Skipped: make(map[string]int, len(s.Skipped))}
	for k, v := range s.Skipped {
		out.Skipped[k] = v
	}
	return out
}
