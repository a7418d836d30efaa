package model

import "github.com/shopspring/decimal"

// MonthlySummary holds the P&L breakdown for one calendar month.
type MonthlySummary struct {
	// Categories maps category -> description -> summed amount, for the
	// categories listed in the user's profile.
	Categories map[string]map[string]decimal.Decimal

	Statement CashFlowStatement
}

// CashFlowStatement is the structured bottom section of the monthly report.
// Expense lines are always negative, misc income always positive.
type CashFlowStatement struct {
	Revenue          decimal.Decimal
	FixedExpenses    decimal.Decimal
	VariableExpenses decimal.Decimal
	ProfitMargin     decimal.Decimal
	MiscIncome       decimal.Decimal
	MiscExpenses     decimal.Decimal
	NetIncome        decimal.Decimal
}
