package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"todo-cli/internal/format"
)

// entryDelegate draws one list row the way the formatter prints it, with
// the connectors and the completed names in their own colors.
type entryDelegate struct {
	f       format.Formatter
	pending pendingOp
}

func newEntryDelegate(f format.Formatter, p pendingOp) entryDelegate {
	return entryDelegate{f: f, pending: p}
}

func (d entryDelegate) Height() int                             { return 1 }
func (d entryDelegate) Spacing() int                            { return 0 }
func (d entryDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d entryDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(entryItem)
	if !ok {
		return
	}
	width := m.Width()
	if width < 4 {
		return
	}
	r := it.row

	mark := d.f.Completed
	if !r.Complete {
		mark = d.f.Incomplete
	}
	box := fmt.Sprintf("[%c]: ", mark)
	connectors := strings.TrimSuffix(d.f.Prefix(r.Complete, r.Depth, r.ChildCount > 0), box)

	gutter := "  "
	if d.pending.active() && d.pending.source == it.id() {
		gutter = glyphMarker(d.f.Glyphs) + " "
	}

	if index == m.Index() {
		line := xansi.Truncate(gutter+connectors+box+r.Name, width, "…")
		st := lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true)
		fmt.Fprint(w, st.Width(width).Render(line))
		return
	}

	if d.pending.active() && d.pending.blocked[it.id()] {
		fmt.Fprint(w, styleMuted().Render(xansi.Truncate(gutter+connectors+box+r.Name, width, "…")))
		return
	}

	nameSt := lipgloss.NewStyle()
	if r.Complete {
		nameSt = nameSt.Foreground(colorCompleteFg)
	}
	line := gutter +
		lipgloss.NewStyle().Foreground(colorTreeFg).Render(connectors) +
		nameSt.Render(box+r.Name)
	fmt.Fprint(w, xansi.Truncate(line, width, "…"))
}

// menuDelegate is a compact one-line delegate for the main menu.
type menuDelegate struct {
	glyphs format.GlyphSet
}

func (d menuDelegate) Height() int                             { return 1 }
func (d menuDelegate) Spacing() int                            { return 0 }
func (d menuDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d menuDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(menuItem)
	if !ok {
		return
	}
	width := m.Width()
	if width < 4 {
		return
	}

	title := it.title
	if it.action == menuRecent || it.action == menuFile {
		title = glyphBullet(d.glyphs) + " " + title
	}

	if index == m.Index() {
		line := " " + glyphArrow(d.glyphs) + " " + title
		if it.desc != "" {
			line += "  " + it.desc
		}
		st := lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true)
		fmt.Fprint(w, st.Width(width).Render(xansi.Truncate(line, width, "…")))
		return
	}

	pad := strings.Repeat(" ", xansi.StringWidth(glyphArrow(d.glyphs))+2)
	line := pad + title
	if it.desc != "" {
		line += "  " + styleMuted().Render(it.desc)
	}
	fmt.Fprint(w, xansi.Truncate(line, width, "…"))
}
