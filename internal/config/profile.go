package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"

	"github.com/tkellman/cashsim/internal/engine"
)

// Profile holds one user's financial settings.
type Profile struct {
	Balances   BalancesConfig   `toml:"balances"`
	Categories CategoriesConfig `toml:"categories"`
}

// BalancesConfig holds the simulation anchor balances.
type BalancesConfig struct {
	Current float64 `toml:"current"`
	Target  float64 `toml:"target"`
}

// CategoriesConfig lists the category labels the P&L report recognizes.
type CategoriesConfig struct {
	Valid []string `toml:"valid"`
}

// DefaultCategories are seeded into new profiles by setup.
var DefaultCategories = []string{"Revenue", "Fixed", "Variable", "Misc Income", "Misc Expense"}

// LoadProfile reads a user profile from disk.
func LoadProfile(path string) (Profile, error) {
	var p Profile
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("reading profile: %w", err)
	}
	if err := toml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parsing profile: %w", err)
	}
	return p, nil
}

// SaveProfile writes a user profile.
func SaveProfile(path string, p Profile) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating profile: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := toml.NewEncoder(f)
	return enc.Encode(p)
}

// ParseBalances converts the profile's float balances into decimals,
// rejecting non-finite values before they reach the simulation.
func (p Profile) ParseBalances() (current, target decimal.Decimal, err error) {
	current, err = engine.BalanceFromFloat(p.Balances.Current)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, fmt.Errorf("current balance: %w", err)
	}
	target, err = engine.BalanceFromFloat(p.Balances.Target)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, fmt.Errorf("target balance: %w", err)
	}
	return current, target, nil
}
