package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
)

const tuiStateFileName = "tui_state.json"

// TUIState stores small, user-facing UI state for restoring the last session
// on relaunch. It is best effort: callers should tolerate missing/invalid data.
type TUIState struct {
	Version int `json:"version"`

	// LastDir is the working directory the menu was last pointed at.
	LastDir string `json:"lastDir,omitempty"`

	// LastFile is the most recently opened or saved list.
	LastFile string `json:"lastFile,omitempty"`

	// Style is the formatter style last toggled to in the list view
	// ("basic"|"fancy"). Empty means use the config.
	Style string `json:"style,omitempty"`
}

// TUIStatePath lives in ConfigDir, next to config.json.
func TUIStatePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, tuiStateFileName), nil
}

func LoadTUIState() (*TUIState, error) {
	path, err := TUIStatePath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &TUIState{Version: 1}, nil
		}
		return nil, err
	}
	var st TUIState
	if err := json.Unmarshal(b, &st); err != nil {
		// Best-effort; if corrupted, treat as missing.
		return &TUIState{Version: 1}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st, nil
}

func SaveTUIState(st *TUIState) error {
	if st == nil {
		return nil
	}
	path, err := TUIStatePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	st.LastDir = strings.TrimSpace(st.LastDir)
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return WriteFileAtomic(path, b, 0o644)
}
