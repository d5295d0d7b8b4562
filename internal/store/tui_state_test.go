package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestTUIState_SaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TODO_CONFIG_DIR", dir)

	// Missing file => default state.
	st0, err := LoadTUIState()
	if err != nil {
		t.Fatalf("LoadTUIState: %v", err)
	}
	if st0 == nil || st0.Version != 1 {
		t.Fatalf("expected default Version=1; got %#v", st0)
	}

	want := &TUIState{
		Version:  1,
		LastDir:  "/tmp/lists",
		LastFile: "/tmp/lists/Groceries.todo",
		Style:    "basic",
	}
	if err := SaveTUIState(want); err != nil {
		t.Fatalf("SaveTUIState: %v", err)
	}

	got, err := LoadTUIState()
	if err != nil {
		t.Fatalf("LoadTUIState (after save): %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("roundtrip mismatch:\nwant: %#v\ngot:  %#v", want, got)
	}
}

func TestTUIState_CorruptIsIgnored(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TODO_CONFIG_DIR", dir)

	if err := os.WriteFile(filepath.Join(dir, tuiStateFileName), []byte("not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	st, err := LoadTUIState()
	if err != nil {
		t.Fatalf("LoadTUIState: %v", err)
	}
	if st.Version != 1 || st.LastDir != "" {
		t.Fatalf("expected default state, got %#v", st)
	}
}
