package shell

import (
	"errors"
	"os"
	"path/filepath"
)

// historyDBPath returns the default path of the history database,
// $XDG_STATE_HOME/ogma/db.bolt, creating the directory if needed.
func historyDBPath() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if home == "" {
			return "", errors.New("home directory not known")
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	dir := filepath.Join(stateHome, "ogma")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "db.bolt"), nil
}
