package pipeline

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tkellman/cashsim/internal/model"
)

// Category labels with special roles in the cash flow statement.
const (
	categoryRevenue     = "Revenue"
	categoryFixed       = "Fixed"
	categoryVariable    = "Variable"
	categoryMiscIncome  = "Misc Income"
	categoryMiscExpense = "Misc Expense"
)

// ParseMonth parses a YYYYMM month selector.
func ParseMonth(s string) (int, time.Month, error) {
	t, err := time.Parse("200601", s)
	if err != nil {
		return 0, 0, fmt.Errorf("month must be YYYYMM: %w", err)
	}
	return t.Year(), t.Month(), nil
}

// FindUncategorized returns transactions whose category is not in the
// profile's valid list.
func FindUncategorized(txns []model.Transaction, valid []string) []model.Transaction {
	validSet := make(map[string]struct{}, len(valid))
	for _, v := range valid {
		validSet[v] = struct{}{}
	}

	var result []model.Transaction
	for _, t := range txns {
		if _, ok := validSet[t.Category]; !ok {
			result = append(result, t)
		}
	}
	return result
}

// SummarizeMonth computes the P&L breakdown for one calendar month.
// Uncategorized transactions are excluded; the caller reports them
// separately via FindUncategorized.
//
// Sign conventions in the statement: expense lines are forced negative
// and misc income forced positive regardless of how rows were entered,
// so a ledger that records fixed costs as positive amounts still
// produces a sensible statement.
func SummarizeMonth(txns []model.Transaction, valid []string, year int, month time.Month) model.MonthlySummary {
	summary := model.MonthlySummary{
		Categories: make(map[string]map[string]decimal.Decimal, len(valid)),
	}
	for _, v := range valid {
		summary.Categories[v] = make(map[string]decimal.Decimal)
	}

	monthTxns := FilterByMonth(txns, year, month)

	for _, t := range monthTxns {
		byDesc, ok := summary.Categories[t.Category]
		if !ok {
			continue // uncategorized
		}
		byDesc[t.Description] = byDesc[t.Description].Add(t.Amount)
	}

	st := &summary.Statement
	for category, byDesc := range summary.Categories {
		for _, amount := range byDesc {
			switch category {
			case categoryRevenue:
				st.Revenue = st.Revenue.Add(amount)
			case categoryFixed:
				st.FixedExpenses = st.FixedExpenses.Sub(amount.Abs())
			case categoryVariable:
				st.VariableExpenses = st.VariableExpenses.Sub(amount.Abs())
			case categoryMiscIncome:
				st.MiscIncome = st.MiscIncome.Add(amount.Abs())
			case categoryMiscExpense:
				st.MiscExpenses = st.MiscExpenses.Sub(amount.Abs())
			}
		}
	}

	st.ProfitMargin = st.Revenue.Add(st.FixedExpenses).Add(st.VariableExpenses)
	st.NetIncome = st.ProfitMargin.Add(st.MiscIncome).Add(st.MiscExpenses)

	return summary
}
