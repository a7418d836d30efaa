package engine

import (
	"testing"

	"github.com/shopspring/decimal"
)

func futures(vals ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(vals))
	for i, v := range vals {
		out[i] = decimal.RequireFromString(v)
	}
	return out
}

func TestRecommendTransfer(t *testing.T) {
	tests := []struct {
		name     string
		monthEnd string
		target   string
		future   []decimal.Decimal
		want     string
	}{
		{
			name:     "full transfer when no future dip",
			monthEnd: "5000", target: "2500",
			future: futures("4000", "3500", "3000", "4500"),
			want:   "2500",
		},
		{
			name:     "holdback for predicted shortfall",
			monthEnd: "5000", target: "2500",
			future: futures("4000", "1500", "2000", "3500"),
			want:   "1500",
		},
		{
			name:     "holdback exceeds surplus clamps to zero",
			monthEnd: "3000", target: "2500",
			future: futures("2000", "1500", "2500"),
			want:   "0",
		},
		{
			name:     "no surplus means no transfer",
			monthEnd: "2500", target: "2500",
			future: futures("9000", "9000"),
			want:   "0",
		},
		{
			name:     "balance already below target",
			monthEnd: "1000", target: "2500",
			future: futures("500"),
			want:   "0",
		},
		{
			name:     "empty look-ahead is unconstrained",
			monthEnd: "5000", target: "2500",
			future: nil,
			want:   "2500",
		},
		{
			name:     "future exactly on target needs no holdback",
			monthEnd: "4000", target: "2500",
			future: futures("2500", "2500"),
			want:   "1500",
		},
		{
			name:     "deeply negative future",
			monthEnd: "2600", target: "2500",
			future: futures("-10000"),
			want:   "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RecommendTransfer(decimal.RequireFromString(tt.monthEnd), decimal.RequireFromString(tt.target), tt.future)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Fatalf("RecommendTransfer = %s, want %s", got, tt.want)
			}
			if got.Sign() < 0 {
				t.Fatalf("RecommendTransfer returned negative amount %s", got)
			}
		})
	}
}
