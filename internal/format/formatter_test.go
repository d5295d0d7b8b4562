package format

import (
	"bytes"
	"strings"
	"testing"

	"todo-cli/internal/model"
)

func TestFormatter_Fancy(t *testing.T) {
	t.Parallel()

	f := Default()
	tests := []struct {
		name        string
		e           model.Entry
		depth       int
		hasChildren bool
		want        string
	}{
		{"root", model.Entry{Name: "Groceries"}, 0, true, "┌[ ]: Groceries"},
		{"leaf", model.Entry{Name: "Milk", Complete: true}, 1, false, "├──[X]: Milk"},
		{"branch", model.Entry{Name: "Dairy"}, 1, true, "├─┬[ ]: Dairy"},
		{"nested leaf", model.Entry{Name: "Cheese"}, 2, false, "│ ├──[ ]: Cheese"},
		{"deep branch", model.Entry{Name: "Brie"}, 3, true, "│ │ ├─┬[ ]: Brie"},
	}
	for _, tc := range tests {
		if got := f.Format(tc.e, tc.depth, tc.hasChildren); got != tc.want {
			t.Fatalf("%s: want %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestFormatter_FancyWideIndent(t *testing.T) {
	t.Parallel()

	f := Default()
	f.Indent = 3
	if got, want := f.Format(model.Entry{Name: "x"}, 2, false), "│   ├────[ ]: x"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestFormatter_Basic(t *testing.T) {
	t.Parallel()

	f := Formatter{Indent: 2, Completed: '✓', Incomplete: '·', Style: StyleBasic}
	if got, want := f.Format(model.Entry{Name: "Groceries"}, 0, true), "[·]: Groceries"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	if got, want := f.Format(model.Entry{Name: "Cheese", Complete: true}, 2, false), "    [✓]: Cheese"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestFormatter_ASCIIGlyphs(t *testing.T) {
	t.Parallel()

	f := Default()
	f.Glyphs = GlyphsASCII
	if got, want := f.Format(model.Entry{Name: "r"}, 0, true), "+[ ]: r"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	if got, want := f.Format(model.Entry{Name: "x"}, 2, true), "| +-+[ ]: x"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestFormatter_ReappliesConfigPerCall(t *testing.T) {
	t.Parallel()

	f := Default()
	e := model.Entry{Name: "Milk", Complete: true}
	before := f.Format(e, 1, false)
	f.Style = StyleBasic
	f.Completed = '*'
	after := f.Format(e, 1, false)
	if before == after || after != " [*]: Milk" {
		t.Fatalf("style switch not applied: before %q after %q", before, after)
	}
	if got := f.Prefix(true, 1, false); got != " [*]: " {
		t.Fatalf("Prefix: %q", got)
	}
}

func TestParseStyleAndGlyphs(t *testing.T) {
	t.Parallel()

	for _, s := range []Style{StyleBasic, StyleFancy} {
		got, err := ParseStyle(s.String())
		if err != nil || got != s {
			t.Fatalf("ParseStyle(%q) = %v, %v", s.String(), got, err)
		}
	}
	if _, err := ParseStyle("zigzag"); err == nil {
		t.Fatalf("expected error for unknown style")
	}
	for _, g := range []GlyphSet{GlyphsUnicode, GlyphsASCII} {
		got, err := ParseGlyphs(g.String())
		if err != nil || got != g {
			t.Fatalf("ParseGlyphs(%q) = %v, %v", g.String(), got, err)
		}
	}
}

func TestGlyphsFromEnv(t *testing.T) {
	t.Setenv("TODO_GLYPHS", "")
	if got := GlyphsFromEnv(GlyphsUnicode); got != GlyphsUnicode {
		t.Fatalf("expected fallback when unset; got %v", got)
	}

	t.Setenv("TODO_GLYPHS", "ascii")
	if got := GlyphsFromEnv(GlyphsUnicode); got != GlyphsASCII {
		t.Fatalf("expected ascii; got %v", got)
	}

	// Unknown values keep the fallback.
	t.Setenv("TODO_GLYPHS", "bogus")
	if got := GlyphsFromEnv(GlyphsASCII); got != GlyphsASCII {
		t.Fatalf("expected unknown to be ignored; got %v", got)
	}
}

func TestWrite_Formats(t *testing.T) {
	t.Parallel()

	v := model.Row{ID: 3, Depth: 1, Name: "Milk", Complete: true}

	var js bytes.Buffer
	if err := Write(&js, v, "json", false); err != nil {
		t.Fatalf("json: %v", err)
	}
	if got, want := js.String(), `{"id":3,"depth":1,"childCount":0,"name":"Milk","complete":true}`+"\n"; got != want {
		t.Fatalf("json: want %q, got %q", want, got)
	}

	var ym bytes.Buffer
	if err := Write(&ym, v, "yaml", false); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(ym.String(), "name: Milk\n") || !strings.Contains(ym.String(), "complete: true\n") {
		t.Fatalf("yaml output: %q", ym.String())
	}

	if err := Write(&js, v, "edn", false); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
