package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/sheikh-saqib/transaction-ledger-engine/internal/models"
)

// Format selects how the final snapshot is rendered
type Format string

const (
	FormatCSV   Format = "csv"
	FormatTable Format = "table"
)

const precision = 4

var header = []string{"client", "available", "held", "total", "locked"}

// ParseFormat accepts "csv" or "table"; an empty string means csv
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatTable:
		return FormatTable, nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Write renders accounts to w in the given format
func Write(w io.Writer, format Format, accounts []models.Account) error {
	switch format {
	case FormatTable:
		return WriteTable(w, accounts)
	default:
		return WriteCSV(w, accounts)
	}
}

// WriteCSV writes the header row followed by one row per account
func WriteCSV(w io.Writer, accounts []models.Account) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, account := range accounts {
		if err := writer.Write(row(account)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteTable renders a human readable table, for terminals
func WriteTable(w io.Writer, accounts []models.Account) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, account := range accounts {
		table.Append(row(account))
	}
	table.Render()
	return nil
}

func row(account models.Account) []string {
	return []string{
		strconv.FormatUint(uint64(account.ClientID), 10),
		account.Available.StringFixed(precision),
		account.Held.StringFixed(precision),
		account.Total().StringFixed(precision),
		strconv.FormatBool(account.Locked),
	}
}
