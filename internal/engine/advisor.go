package engine

import "github.com/shopspring/decimal"

// RecommendTransfer computes how much of a month-end surplus can be swept
// out of the account without risking a projected shortfall.
//
// futureBalances is a look-ahead series of projected closing balances,
// computed by the caller under the assumption that the full surplus has
// already been removed. An empty series means nothing constrains the
// sweep and the full surplus is recommended.
//
// The result is never negative: if the predicted holdback exceeds the
// surplus, the recommendation clamps to zero.
func RecommendTransfer(monthEndBalance, targetBalance decimal.Decimal, futureBalances []decimal.Decimal) decimal.Decimal {
	surplus := monthEndBalance.Sub(targetBalance)
	if surplus.Sign() <= 0 {
		return decimal.Zero
	}

	if len(futureBalances) == 0 {
		return surplus
	}

	lowest := futureBalances[0]
	for _, b := range futureBalances[1:] {
		if b.LessThan(lowest) {
			lowest = b
		}
	}

	shortfall := targetBalance.Sub(lowest)
	if shortfall.Sign() < 0 {
		shortfall = decimal.Zero
	}

	recommended := surplus.Sub(shortfall)
	if recommended.Sign() < 0 {
		return decimal.Zero
	}
	return recommended
}
