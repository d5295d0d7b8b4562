package format

import (
	"fmt"
	"strings"

	"todo-cli/internal/model"
)

type Style int

const (
	StyleBasic Style = iota
	StyleFancy
)

func (s Style) String() string {
	switch s {
	case StyleBasic:
		return "basic"
	case StyleFancy:
		return "fancy"
	default:
		return fmt.Sprintf("style(%d)", int(s))
	}
}

func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "basic", "plain":
		return StyleBasic, nil
	case "fancy", "tree":
		return StyleFancy, nil
	default:
		return StyleFancy, fmt.Errorf("unknown style: %s (want basic|fancy)", s)
	}
}

// Formatter turns an entry and its place in the display window into one line
// of text. It holds no derived state, so changing a field takes effect on the
// next call.
type Formatter struct {
	Indent     int
	Completed  rune
	Incomplete rune
	Style      Style
	Glyphs     GlyphSet
}

func Default() Formatter {
	return Formatter{
		Indent:     1,
		Completed:  'X',
		Incomplete: ' ',
		Style:      StyleFancy,
		Glyphs:     GlyphsUnicode,
	}
}

func (f Formatter) mark(complete bool) rune {
	if complete {
		return f.Completed
	}
	return f.Incomplete
}

func (f Formatter) indent() int {
	if f.Indent < 0 {
		return 0
	}
	return f.Indent
}

// Format renders e at depth edges below the display root.
func (f Formatter) Format(e model.Entry, depth int, hasChildren bool) string {
	if depth < 0 {
		depth = 0
	}
	var b strings.Builder
	switch f.Style {
	case StyleBasic:
		b.WriteString(strings.Repeat(" ", f.indent()*depth))
	default:
		f.writeConnectors(&b, depth, hasChildren)
	}
	b.WriteByte('[')
	b.WriteRune(f.mark(e.Complete))
	b.WriteString("]: ")
	b.WriteString(e.Name)
	return b.String()
}

// Prefix is everything Format writes before the name.
func (f Formatter) Prefix(complete bool, depth int, hasChildren bool) string {
	return f.Format(model.Entry{Complete: complete}, depth, hasChildren)
}

func (f Formatter) writeConnectors(b *strings.Builder, depth int, hasChildren bool) {
	c := f.Glyphs.connectors()
	if depth == 0 {
		b.WriteString(c.top)
		return
	}
	pad := c.bar + strings.Repeat(" ", f.indent())
	for i := 1; i < depth; i++ {
		b.WriteString(pad)
	}
	b.WriteString(c.tee)
	b.WriteString(strings.Repeat(c.rule, f.indent()))
	if hasChildren {
		b.WriteString(c.branch)
	} else {
		b.WriteString(c.rule)
	}
}
