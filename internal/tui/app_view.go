package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	var body string
	switch m.view {
	case viewList:
		body = m.entriesList.View()
	case viewBrowse:
		body = m.picker.View()
	case viewHelp:
		body = m.helpView.View()
	default:
		body = m.menuList.View()
	}
	if m.modal != modalNone {
		body = lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, m.renderModal())
	}

	return strings.Join([]string{
		m.renderHeader(),
		normalizePane(body, m.width, m.bodyHeight()),
		normalizePane(m.renderStatus(), m.width, 1),
		normalizePane(m.help.View(m.helpKeys()), m.width, 1),
	}, "\n")
}

func (m appModel) renderHeader() string {
	var title string
	switch m.view {
	case viewList:
		title = m.listTitle()
	case viewBrowse:
		title = styleHeader().Render("Browse") + "  " + styleMuted().Render(m.picker.CurrentDirectory)
	case viewHelp:
		title = styleHeader().Render("Help")
	default:
		title = styleHeader().Render("todo") + "  " + styleMuted().Render(m.dir)
	}
	rule := styleMuted().Render(strings.Repeat(glyphHRule(m.formatter.Glyphs), max(m.width, 0)))
	return normalizePane(title, m.width, 1) + "\n" + rule
}

func (m appModel) listTitle() string {
	if m.list == nil {
		return ""
	}
	var crumbs []string
	for _, id := range m.list.ZoomStack() {
		if e, err := m.list.Entry(id); err == nil {
			crumbs = append(crumbs, e.Name)
		}
	}
	title := strings.Join(crumbs, " "+glyphArrow(m.formatter.Glyphs)+" ")
	if m.dirty {
		title += " *"
	}

	st := m.list.Stats()
	where := m.path
	if where == "" {
		where = "not saved"
	}
	meta := "depth " + strconv.Itoa(m.list.Depth()) +
		"  " + itoaPair(st.Completed, st.Entries) +
		"  " + where
	return styleHeader().Render(title) + "  " + styleMuted().Render(meta)
}

func (m appModel) renderStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return styleError().Render(m.status)
	}
	return styleMuted().Render(m.status)
}

func (m appModel) helpKeys() help.KeyMap {
	switch m.view {
	case viewList:
		if m.pending.active() {
			return pendingHelpKeys{m.keys}
		}
		return listHelpKeys{m.keys}
	case viewBrowse:
		return browseHelpKeys{m.keys}
	}
	return menuHelpKeys{m.keys}
}
