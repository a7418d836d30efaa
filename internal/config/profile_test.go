package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestProfileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.toml")

	in := Profile{
		Balances:   BalancesConfig{Current: 3210.55, Target: 2500},
		Categories: CategoriesConfig{Valid: DefaultCategories},
	}
	if err := SaveProfile(path, in); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	out, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if out.Balances.Current != 3210.55 || out.Balances.Target != 2500 {
		t.Fatalf("balances = %+v", out.Balances)
	}
	if len(out.Categories.Valid) != len(DefaultCategories) {
		t.Fatalf("categories = %v", out.Categories.Valid)
	}

	current, target, err := out.ParseBalances()
	if err != nil {
		t.Fatalf("ParseBalances: %v", err)
	}
	if current.String() != "3210.55" || target.String() != "2500" {
		t.Fatalf("decimal balances = %s, %s", current, target)
	}
}

func TestLoadProfile_Missing(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("expected error for missing profile")
	}
}

func TestProfile_BadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.toml")
	if err := os.WriteFile(path, []byte("balances = not toml"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadProfile(path); err == nil {
		t.Fatal("expected parse error")
	}
}
