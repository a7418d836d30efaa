package ledger

import (
	"os"
	"path/filepath"
)

const (
	profileFile = "profile.toml"
	ledgerFile  = "ledger.csv"
)

// ScanUsers lists the user directories under dataDir. A directory counts
// as a user when it contains a ledger file; a missing profile is left for
// the load path to report so setup can offer to create one.
func ScanUsers(dataDir string) ([]DiscoveredUser, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var users []DiscoveredUser
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(dataDir, e.Name())
		ledgerPath := filepath.Join(dir, ledgerFile)
		if _, err := os.Stat(ledgerPath); err != nil {
			continue
		}
		users = append(users, DiscoveredUser{
			Name:        e.Name(),
			Dir:         dir,
			ProfilePath: filepath.Join(dir, profileFile),
			LedgerPath:  ledgerPath,
		})
	}
	return users, nil
}

// UserDir returns the paths for a named user under dataDir without
// checking existence.
func UserDir(dataDir, name string) DiscoveredUser {
	dir := filepath.Join(dataDir, name)
	return DiscoveredUser{
		Name:        name,
		Dir:         dir,
		ProfilePath: filepath.Join(dir, profileFile),
		LedgerPath:  filepath.Join(dir, ledgerFile),
	}
}
