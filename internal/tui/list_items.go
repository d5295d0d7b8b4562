package tui

import (
	"github.com/charmbracelet/bubbles/list"

	"todo-cli/internal/model"
	"todo-cli/internal/tree"
)

type entryItem struct {
	row model.Row
}

func (i entryItem) FilterValue() string { return i.row.Name }
func (i entryItem) id() tree.NodeID     { return tree.NodeID(i.row.ID) }

type menuAction int

const (
	menuNewList menuAction = iota
	menuLoadPath
	menuBrowse
	menuSettings
	menuChangeDir
	menuRecent
	menuFile
)

type menuItem struct {
	action menuAction
	title  string
	desc   string
	path   string
}

func (i menuItem) FilterValue() string { return i.title }
func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }

// newPlainList is a list.Model with the built-in chrome switched off; the
// app draws its own header and footer.
func newPlainList(d list.ItemDelegate, width, height int) list.Model {
	l := list.New(nil, d, width, height)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	// Left and right change the display depth.
	l.KeyMap.NextPage.SetKeys("pgdown")
	l.KeyMap.PrevPage.SetKeys("pgup")
	return l
}

func selectedEntry(l list.Model) (entryItem, bool) {
	it, ok := l.SelectedItem().(entryItem)
	return it, ok
}

func selectEntryByID(l *list.Model, id tree.NodeID) bool {
	for i, it := range l.Items() {
		if e, ok := it.(entryItem); ok && e.id() == id {
			l.Select(i)
			return true
		}
	}
	return false
}
