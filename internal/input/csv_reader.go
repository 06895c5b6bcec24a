package input

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/transaction-ledger-engine/internal/models"
)

var requiredColumns = []string{"type", "client", "tx"}

// CSVReader reads transaction records from a CSV stream whose first row is
// a header naming the type, client, tx and (optionally) amount columns.
// Whitespace around headers and values is ignored.
type CSVReader struct {
	reader  *csv.Reader
	columns map[string]int
	line    int
}

// NewCSVReader reads and validates the header row
func NewCSVReader(r io.Reader) (*CSVReader, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // the amount field may be absent entirely
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: missing header", models.ErrMalformedRecord)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", models.ErrMalformedRecord, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w: header has no %q column", models.ErrMalformedRecord, name)
		}
	}

	return &CSVReader{reader: reader, columns: columns, line: 1}, nil
}

// Next returns the next record, io.EOF at the end of the stream, or an
// error wrapping models.ErrMalformedRecord. The reader can continue past a
// malformed record.
func (c *CSVReader) Next() (models.Transaction, error) {
	row, err := c.reader.Read()
	if err == io.EOF {
		return models.Transaction{}, io.EOF
	}
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			c.line = parseErr.Line
			return models.Transaction{}, fmt.Errorf("line %d: %w: %v", c.line, models.ErrMalformedRecord, parseErr.Err)
		}
		return models.Transaction{}, err
	}
	c.line, _ = c.reader.FieldPos(0)

	tx, err := c.parse(row)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("line %d: %w: %v", c.line, models.ErrMalformedRecord, err)
	}
	return tx, nil
}

// Line is the line number of the last record returned by Next
func (c *CSVReader) Line() int {
	return c.line
}

func (c *CSVReader) parse(row []string) (models.Transaction, error) {
	var tx models.Transaction

	tx.Type = models.TransactionType(c.field(row, "type"))

	client, err := strconv.ParseUint(c.field(row, "client"), 10, 16)
	if err != nil {
		return tx, fmt.Errorf("client: %w", err)
	}
	tx.ClientID = uint16(client)

	id, err := strconv.ParseUint(c.field(row, "tx"), 10, 32)
	if err != nil {
		return tx, fmt.Errorf("tx: %w", err)
	}
	tx.TxID = uint32(id)

	if raw := c.field(row, "amount"); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return tx, fmt.Errorf("amount: %w", err)
		}
		tx.Amount = decimal.NewNullDecimal(amount)
	}

	return tx, nil
}

// field returns the trimmed value of a column, or "" when the row is too
// short to contain it
func (c *CSVReader) field(row []string, name string) string {
	i, ok := c.columns[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
