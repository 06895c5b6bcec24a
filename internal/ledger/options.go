package ledger

import "fmt"

// Policy decides what happens to a record that cannot be applied as given
type Policy string

const (
	PolicyAbort Policy = "abort"
	PolicySkip  Policy = "skip"
)

// ParsePolicy accepts "abort" or "skip"; an empty string means abort
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyAbort:
		return PolicyAbort, nil
	case PolicySkip:
		return PolicySkip, nil
	}
	return "", fmt.Errorf("unknown policy %q", s)
}

// Options switch the engine between the reference arithmetic and the
// stricter variants. The zero value is not the default; use DefaultOptions.
type Options struct {
	// MissingAmount applies to deposits and withdrawals without an amount.
	MissingAmount Policy

	// RecordAmountsWhenLocked keeps recording deposit and withdrawal amounts
	// for clients whose account is already locked.
	RecordAmountsWhenLocked bool

	// RecordReferenceAmounts also records an amount carried by a dispute,
	// resolve or chargeback row, replacing the entry of the tx it names
	// before the row is applied.
	RecordReferenceAmounts bool

	// StrictDisputes tracks the dispute status of every transaction and
	// skips resolves and chargebacks that do not follow a dispute.
	StrictDisputes bool

	// VerifyOwner skips disputes, resolves and chargebacks whose client is
	// not the client of the referenced transaction.
	VerifyOwner bool
}

// DefaultOptions reproduce the reference arithmetic. Amounts on dispute,
// resolve and chargeback rows are ignored unless RecordReferenceAmounts is set.
func DefaultOptions() Options {
	return Options{
		MissingAmount:           PolicyAbort,
		RecordAmountsWhenLocked: true,
	}
}
