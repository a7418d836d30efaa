package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tkellman/cashsim/internal/model"
)

// Column layout of ledger.csv. The header row is required and matched by
// name so column order doesn't matter.
var requiredColumns = []string{"date", "amount", "description", "category", "forecast"}

// ParseLedger reads a CSV ledger file into transactions. Malformed rows
// (bad date, bad amount, wrong field count) are counted and skipped; the
// whole file only fails when it can't be read or the header is unusable.
func ParseLedger(path string) (ParseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ParseResult{}, fmt.Errorf("opening ledger: %w", err)
	}
	defer func() { _ = f.Close() }()

	return parseLedger(f)
}

func parseLedger(r io.Reader) (ParseResult, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return ParseResult{}, fmt.Errorf("reading ledger header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return ParseResult{}, fmt.Errorf("ledger header missing %q column", name)
		}
	}

	var result ParseResult
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.RowErrors++
			continue
		}

		tx, ok := parseRow(row, cols)
		if !ok {
			result.RowErrors++
			continue
		}
		result.Transactions = append(result.Transactions, tx)
	}

	return result, nil
}

func parseRow(row []string, cols map[string]int) (model.Transaction, bool) {
	field := func(name string) string {
		idx := cols[name]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	date, err := time.Parse("2006-01-02", field("date"))
	if err != nil {
		return model.Transaction{}, false
	}
	amount, err := decimal.NewFromString(field("amount"))
	if err != nil {
		return model.Transaction{}, false
	}

	return model.Transaction{
		Date:        date,
		Amount:      amount,
		Description: field("description"),
		Category:    field("category"),
		Forecast:    field("forecast") == "1",
	}, true
}
