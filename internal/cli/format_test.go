package cli

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"45", "45.00"},
		{"-45", "-45.00"},
		{"1234.5", "1,234.50"},
		{"1234567.891", "1,234,567.89"},
		{"-1234567", "-1,234,567.00"},
	}

	for _, tt := range tests {
		got := FormatMoney(decimal.RequireFromString(tt.in))
		if got != tt.want {
			t.Errorf("FormatMoney(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatSignedMoney(t *testing.T) {
	if got := FormatSignedMoney(decimal.RequireFromString("250")); got != "+250.00" {
		t.Errorf("positive = %q", got)
	}
	if got := FormatSignedMoney(decimal.RequireFromString("-250")); got != "-250.00" {
		t.Errorf("negative = %q", got)
	}
	if got := FormatSignedMoney(decimal.Zero); got != "+0.00" {
		t.Errorf("zero = %q", got)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-1234567, "-1,234,567"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderSparkline(t *testing.T) {
	vals := []decimal.Decimal{
		decimal.NewFromInt(-500),
		decimal.NewFromInt(0),
		decimal.NewFromInt(1000),
	}
	spark := RenderSparkline(vals)
	if len([]rune(spark)) != 3 {
		t.Fatalf("sparkline length = %d, want 3", len([]rune(spark)))
	}

	if RenderSparkline(nil) != "" {
		t.Fatal("empty series should render empty")
	}

	// Flat series must not divide by zero.
	flat := RenderSparkline([]decimal.Decimal{decimal.NewFromInt(5), decimal.NewFromInt(5)})
	if len([]rune(flat)) != 2 {
		t.Fatalf("flat sparkline length = %d, want 2", len([]rune(flat)))
	}
}
