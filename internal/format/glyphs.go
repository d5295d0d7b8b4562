package format

import (
	"fmt"
	"os"
	"strings"
)

// Not every terminal font draws box characters cleanly, so the fancy style
// can fall back to plain ASCII connectors.

type GlyphSet int

const (
	GlyphsUnicode GlyphSet = iota
	GlyphsASCII
)

type connectors struct {
	top    string // the display root
	bar    string // an ancestor level still open
	tee    string // branch off the bar
	rule   string // horizontal run, repeated Indent times
	branch string // node has children
}

var (
	unicodeConnectors = connectors{top: "┌", bar: "│", tee: "├", rule: "─", branch: "┬"}
	asciiConnectors   = connectors{top: "+", bar: "|", tee: "+", rule: "-", branch: "+"}
)

func (g GlyphSet) connectors() connectors {
	if g == GlyphsASCII {
		return asciiConnectors
	}
	return unicodeConnectors
}

func (g GlyphSet) String() string {
	switch g {
	case GlyphsASCII:
		return "ascii"
	default:
		return "unicode"
	}
}

func ParseGlyphs(s string) (GlyphSet, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unicode", "utf8":
		return GlyphsUnicode, nil
	case "ascii":
		return GlyphsASCII, nil
	default:
		return GlyphsUnicode, fmt.Errorf("unknown glyph set: %s (want unicode|ascii)", s)
	}
}

// GlyphsFromEnv reads TODO_GLYPHS. Unknown values keep fallback.
func GlyphsFromEnv(fallback GlyphSet) GlyphSet {
	v := strings.TrimSpace(os.Getenv("TODO_GLYPHS"))
	if v == "" {
		return fallback
	}
	gs, err := ParseGlyphs(v)
	if err != nil {
		return fallback
	}
	return gs
}
