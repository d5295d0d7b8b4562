package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"todo-cli/internal/store"
)

func (m appModel) modalTitle() string {
	switch m.modal {
	case modalNewList:
		return "New list"
	case modalLoadPath:
		return "Load list"
	case modalChangeDir:
		return "Change directory"
	case modalSetting:
		return "Settings"
	case modalNewEntry:
		return "New entry"
	case modalRename:
		return "Rename entry"
	case modalConfirmDelete:
		return "Delete entry"
	case modalConfirmLeave:
		return "Unsaved changes"
	case modalPosition:
		return "Place " + m.pending.kind.verb()
	}
	return ""
}

func (m appModel) renderModal() string {
	bodyW := modalBodyWidth(m.width)
	switch m.modal {
	case modalConfirmDelete:
		name := ""
		n := 0
		if e, err := m.list.Entry(m.modalTarget); err == nil {
			name = e.Name
		}
		if ds, err := m.list.DescendantsOf(m.modalTarget); err == nil {
			n = len(ds)
		}
		body := "Delete “" + name + "”?"
		if n == 1 {
			body = "Delete “" + name + "” and the entry below it?"
		} else if n > 1 {
			body = "Delete “" + name + "” and the " + strconv.Itoa(n) + " entries below it?"
		}
		return renderConfirmModal(m.width, m.modalTitle(), body, "Delete", "Cancel", m.confirmFocus)
	case modalConfirmLeave:
		return renderConfirmModal(m.width, m.modalTitle(), "Leave without saving “"+m.list.Name()+"”?", "Leave", "Stay", m.confirmFocus)
	case modalPosition:
		return renderModalBox(m.width, m.modalTitle(), m.renderPositionBody(bodyW))
	}

	if m.modal == modalSetting {
		return renderInputModal(m.width, m.modalTitle(), m.input.View(),
			"key value, one of:", strings.Join(store.ConfigKeys(), "  "))
	}
	return renderInputModal(m.width, m.modalTitle(), m.input.View())
}

func (m appModel) renderPositionBody(bodyW int) string {
	target := ""
	if e, err := m.list.Entry(m.pending.target); err == nil {
		target = e.Name
	}
	siblings := m.siblingsAllowed()
	opt := func(keyLabel, label string, ok bool) string {
		s := keyLabel + "  " + label
		if !ok {
			return styleMuted().Render(s + " (not on the display root)")
		}
		return s
	}
	lines := []string{
		lipgloss.NewStyle().Width(bodyW).Render("Relative to “" + target + "”:"),
		"",
		opt("←", "first child", true),
		opt("→", "last child", true),
		opt("↑", "before, as a sibling", siblings),
		opt("↓", "after, as a sibling", siblings),
		"",
		styleMuted().Render("esc: cancel"),
	}
	return strings.Join(lines, "\n")
}

// siblingsAllowed: the display root has no siblings inside the view.
func (m appModel) siblingsAllowed() bool {
	return m.list != nil && m.pending.target != m.list.CurrentRoot()
}
