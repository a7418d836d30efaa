package pipeline

import (
	"time"

	"github.com/tkellman/cashsim/internal/model"
)

// ForecastOnly returns the transactions flagged as forecasts. The
// simulator replays only these; historical rows feed the P&L report.
func ForecastOnly(txns []model.Transaction) []model.Transaction {
	var result []model.Transaction
	for _, t := range txns {
		if t.Forecast {
			result = append(result, t)
		}
	}
	return result
}

// FilterByMonth returns transactions dated within the given month.
func FilterByMonth(txns []model.Transaction, year int, month time.Month) []model.Transaction {
	var result []model.Transaction
	for _, t := range txns {
		y, m, _ := t.Date.Date()
		if y == year && m == month {
			result = append(result, t)
		}
	}
	return result
}
