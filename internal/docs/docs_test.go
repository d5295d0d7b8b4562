package docs

import (
	"strings"
	"testing"
)

func TestTopics(t *testing.T) {
	got := strings.Join(Topics(), ",")
	if got != "config,format,tui" {
		t.Fatalf("topics: %s", got)
	}
}

func TestGet(t *testing.T) {
	body, ok := Get(" TUI ")
	if !ok || !strings.Contains(body, "## List view") {
		t.Fatalf("tui topic: ok=%v", ok)
	}
	if _, ok := Get("nope"); ok {
		t.Fatalf("expected an unknown topic to miss")
	}
	if _, ok := Get(""); ok {
		t.Fatalf("expected an empty topic to miss")
	}
}
