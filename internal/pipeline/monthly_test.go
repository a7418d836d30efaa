package pipeline

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tkellman/cashsim/internal/model"
)

func mtx(t *testing.T, date, amount, desc, category string) model.Transaction {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("parse %q: %v", date, err)
	}
	return model.Transaction{
		Date:        d,
		Amount:      decimal.RequireFromString(amount),
		Description: desc,
		Category:    category,
	}
}

var validCategories = []string{"Revenue", "Fixed", "Variable", "Misc Income", "Misc Expense"}

func TestSummarizeMonth(t *testing.T) {
	txns := []model.Transaction{
		mtx(t, "2024-01-05", "5000", "Consulting", "Revenue"),
		mtx(t, "2024-01-12", "1200", "Retainer", "Revenue"),
		mtx(t, "2024-01-01", "-1500", "Rent", "Fixed"),
		mtx(t, "2024-01-15", "-320.40", "Groceries", "Variable"),
		mtx(t, "2024-01-20", "-80", "Dining", "Variable"),
		mtx(t, "2024-01-22", "150", "Refund", "Misc Income"),
		mtx(t, "2024-01-25", "-60", "Gift", "Misc Expense"),
		// Different month, must be excluded.
		mtx(t, "2024-02-05", "9999", "Consulting", "Revenue"),
		// Uncategorized, must be excluded.
		mtx(t, "2024-01-28", "-10", "Mystery", "???"),
	}

	summary := SummarizeMonth(txns, validCategories, 2024, time.January)

	st := summary.Statement
	if !st.Revenue.Equal(decimal.RequireFromString("6200")) {
		t.Fatalf("Revenue = %s, want 6200", st.Revenue)
	}
	if !st.FixedExpenses.Equal(decimal.RequireFromString("-1500")) {
		t.Fatalf("FixedExpenses = %s, want -1500", st.FixedExpenses)
	}
	if !st.VariableExpenses.Equal(decimal.RequireFromString("-400.40")) {
		t.Fatalf("VariableExpenses = %s, want -400.40", st.VariableExpenses)
	}
	if !st.ProfitMargin.Equal(decimal.RequireFromString("4299.60")) {
		t.Fatalf("ProfitMargin = %s, want 4299.60", st.ProfitMargin)
	}
	if !st.MiscIncome.Equal(decimal.RequireFromString("150")) {
		t.Fatalf("MiscIncome = %s, want 150", st.MiscIncome)
	}
	if !st.MiscExpenses.Equal(decimal.RequireFromString("-60")) {
		t.Fatalf("MiscExpenses = %s, want -60", st.MiscExpenses)
	}
	if !st.NetIncome.Equal(decimal.RequireFromString("4389.60")) {
		t.Fatalf("NetIncome = %s, want 4389.60", st.NetIncome)
	}

	if got := summary.Categories["Revenue"]["Consulting"]; !got.Equal(decimal.RequireFromString("5000")) {
		t.Fatalf("Revenue/Consulting = %s, want 5000 (Feb excluded)", got)
	}
}

func TestSummarizeMonth_ExpenseSignForced(t *testing.T) {
	// Fixed cost recorded as positive still lands negative in the statement.
	txns := []model.Transaction{
		mtx(t, "2024-01-01", "900", "Rent", "Fixed"),
	}

	summary := SummarizeMonth(txns, validCategories, 2024, time.January)
	if !summary.Statement.FixedExpenses.Equal(decimal.RequireFromString("-900")) {
		t.Fatalf("FixedExpenses = %s, want -900", summary.Statement.FixedExpenses)
	}
}

func TestSummarizeMonth_Empty(t *testing.T) {
	summary := SummarizeMonth(nil, validCategories, 2024, time.January)
	if !summary.Statement.NetIncome.IsZero() {
		t.Fatalf("NetIncome = %s, want 0", summary.Statement.NetIncome)
	}
	if len(summary.Categories) != len(validCategories) {
		t.Fatalf("Categories = %v", summary.Categories)
	}
}

func TestFindUncategorized(t *testing.T) {
	txns := []model.Transaction{
		mtx(t, "2024-01-05", "100", "OK", "Revenue"),
		mtx(t, "2024-01-06", "-5", "Typo", "revnue"),
		mtx(t, "2024-01-07", "-5", "Blank", ""),
	}

	got := FindUncategorized(txns, validCategories)
	if len(got) != 2 {
		t.Fatalf("got %d uncategorized, want 2", len(got))
	}
	if got[0].Description != "Typo" || got[1].Description != "Blank" {
		t.Fatalf("uncategorized = %+v", got)
	}
}

func TestForecastOnly(t *testing.T) {
	txns := []model.Transaction{
		{Description: "hist", Forecast: false},
		{Description: "fcst", Forecast: true},
	}
	got := ForecastOnly(txns)
	if len(got) != 1 || got[0].Description != "fcst" {
		t.Fatalf("ForecastOnly = %+v", got)
	}
}

func TestParseMonth(t *testing.T) {
	y, m, err := ParseMonth("202403")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if y != 2024 || m != time.March {
		t.Fatalf("got %d-%s", y, m)
	}

	if _, _, err := ParseMonth("2024-03"); err == nil {
		t.Fatal("expected error for bad format")
	}
	if _, _, err := ParseMonth("202413"); err == nil {
		t.Fatal("expected error for month 13")
	}
}
