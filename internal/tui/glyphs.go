package tui

import "todo-cli/internal/format"

// UI affordances follow the glyph set of the list formatter so an ASCII
// terminal gets ASCII everywhere.

func glyphBullet(g format.GlyphSet) string {
	if g == format.GlyphsASCII {
		return "*"
	}
	return "•"
}

func glyphArrow(g format.GlyphSet) string {
	if g == format.GlyphsASCII {
		return "->"
	}
	return "→"
}

func glyphHRule(g format.GlyphSet) string {
	if g == format.GlyphsASCII {
		return "-"
	}
	return "─"
}

func glyphMarker(g format.GlyphSet) string {
	if g == format.GlyphsASCII {
		return ">"
	}
	return "▸"
}
