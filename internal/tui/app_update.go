package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"todo-cli/internal/core"
	"todo-cli/internal/tree"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.modal != modalNone {
			return m.updateModal(msg)
		}
		switch m.view {
		case viewList:
			return m.updateList(msg)
		case viewBrowse:
			return m.updateBrowse(msg)
		case viewHelp:
			return m.updateHelp(msg)
		default:
			return m.updateMenu(msg)
		}
	}

	// Async messages (directory reads, cursor blink).
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	cmds = append(cmds, cmd)
	if m.modal.isInput() {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m appModel) openInput(kind modalKind, placeholder, value string) (tea.Model, tea.Cmd) {
	m.modal = kind
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m appModel) openConfirm(kind modalKind) (tea.Model, tea.Cmd) {
	m.modal = kind
	m.confirmFocus = confirmFocusConfirm
	return m, nil
}

func (m appModel) showHelp() (tea.Model, tea.Cmd) {
	m.helpFrom = m.view
	m.view = viewHelp
	m.helpView.SetContent(renderMarkdown(helpMarkdown(), m.width))
	m.helpView.GotoTop()
	return m, nil
}

func (m appModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		return m.showHelp()
	case key.Matches(msg, m.keys.Select):
		it, ok := m.menuList.SelectedItem().(menuItem)
		if !ok {
			return m, nil
		}
		switch it.action {
		case menuNewList:
			return m.openInput(modalNewList, "Name of the new list", "")
		case menuLoadPath:
			return m.openInput(modalLoadPath, "path/to/list"+core.Ext, "")
		case menuBrowse:
			m.view = viewBrowse
			m.picker.CurrentDirectory = m.dir
			return m, m.picker.Init()
		case menuSettings:
			return m.openInput(modalSetting, "formatter.style basic", "")
		case menuChangeDir:
			return m.openInput(modalChangeDir, "Directory", m.dir)
		case menuRecent, menuFile:
			m.openFile(it.path)
			return m, nil
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.menuList, cmd = m.menuList.Update(msg)
	return m, cmd
}

func (m appModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		m.view = viewMenu
		return m, nil
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.openFile(path)
	}
	return m, cmd
}

func (m appModel) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.Help) || msg.String() == "q" {
		m.view = m.helpFrom
		return m, nil
	}
	var cmd tea.Cmd
	m.helpView, cmd = m.helpView.Update(msg)
	return m, cmd
}

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.pending.active() {
		return m.updatePending(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		if m.dirty {
			return m.openConfirm(modalConfirmLeave)
		}
		m.closeList()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		return m.showHelp()
	case key.Matches(msg, m.keys.NewEntry):
		id, err := m.selectedID()
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.modalTarget = id
		return m.openInput(modalNewEntry, "Name", "")
	case key.Matches(msg, m.keys.Rename):
		id, err := m.selectedID()
		if err != nil {
			m.setError(err)
			return m, nil
		}
		e, _ := m.list.Entry(id)
		m.modalTarget = id
		return m.openInput(modalRename, "Name", e.Name)
	case key.Matches(msg, m.keys.Toggle):
		m.toggle()
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		id, err := m.selectedID()
		if err != nil {
			m.setError(err)
			return m, nil
		}
		if id == m.list.CurrentRoot() {
			m.setError(core.ErrDisplayRoot)
			return m, nil
		}
		m.modalTarget = id
		return m.openConfirm(modalConfirmDelete)
	case key.Matches(msg, m.keys.Move):
		m.startPending(pendingMove)
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		m.startPending(pendingCopy)
		return m, nil
	case key.Matches(msg, m.keys.ZoomIn):
		m.zoomIn()
		return m, nil
	case key.Matches(msg, m.keys.ZoomOut):
		m.zoomOut()
		return m, nil
	case key.Matches(msg, m.keys.DepthUp):
		m.incDepth()
		return m, nil
	case key.Matches(msg, m.keys.DepthDown):
		m.decDepth()
		return m, nil
	case key.Matches(msg, m.keys.Save):
		m.save()
		return m, nil
	case key.Matches(msg, m.keys.Print):
		m.print(false)
		return m, nil
	case key.Matches(msg, m.keys.PrintUnfinished):
		m.print(true)
		return m, nil
	case key.Matches(msg, m.keys.Style):
		m.toggleStyle()
		return m, nil
	case key.Matches(msg, m.keys.Yank):
		m.yank()
		return m, nil
	}

	var cmd tea.Cmd
	m.entriesList, cmd = m.entriesList.Update(msg)
	return m, cmd
}

// updatePending handles the target pick of a move or copy. Only navigation
// and view changes are allowed until the target is chosen.
func (m appModel) updatePending(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.cancelPending()
		m.setStatus("Cancelled")
		return m, nil
	case key.Matches(msg, m.keys.Select):
		m.pickTarget()
		return m, nil
	case key.Matches(msg, m.keys.ZoomIn):
		m.zoomIn()
		return m, nil
	case key.Matches(msg, m.keys.ZoomOut):
		m.zoomOut()
		return m, nil
	case key.Matches(msg, m.keys.DepthUp):
		m.incDepth()
		return m, nil
	case key.Matches(msg, m.keys.DepthDown):
		m.decDepth()
		return m, nil
	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down),
		msg.String() == "pgup", msg.String() == "pgdown", msg.String() == "home", msg.String() == "end":
		var cmd tea.Cmd
		m.entriesList, cmd = m.entriesList.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalConfirmDelete, modalConfirmLeave:
		return m.updateConfirm(msg)
	case modalPosition:
		return m.updatePosition(msg)
	}

	switch msg.String() {
	case "esc", "ctrl+g":
		m.modal = modalNone
		m.input.Blur()
		return m, nil
	case "enter":
		kind := m.modal
		val := m.input.Value()
		m.modal = modalNone
		m.input.Blur()
		m.submitInput(kind, val)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *appModel) submitInput(kind modalKind, val string) {
	trimmed := strings.TrimSpace(val)
	if trimmed == "" {
		return
	}
	switch kind {
	case modalNewList:
		m.newList(trimmed)
	case modalLoadPath:
		m.openFile(trimmed)
	case modalChangeDir:
		m.changeDir(trimmed)
	case modalSetting:
		m.applySetting(val)
	case modalNewEntry:
		m.addEntry(m.modalTarget, trimmed)
	case modalRename:
		m.rename(m.modalTarget, trimmed)
	}
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g", "n":
		m.modal = modalNone
		return m, nil
	case "tab", "shift+tab", "left", "right", "h", "l":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "y":
		m.confirmFocus = confirmFocusConfirm
		return m.confirm()
	case "enter":
		if m.confirmFocus == confirmFocusCancel {
			m.modal = modalNone
			return m, nil
		}
		return m.confirm()
	}
	return m, nil
}

func (m appModel) confirm() (tea.Model, tea.Cmd) {
	kind := m.modal
	m.modal = modalNone
	switch kind {
	case modalConfirmDelete:
		m.deleteEntry(m.modalTarget)
	case modalConfirmLeave:
		m.closeList()
	}
	return m, nil
}

func (m appModel) updatePosition(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var pos tree.Position
	switch msg.String() {
	case "esc", "ctrl+g":
		m.cancelPending()
		m.setStatus("Cancelled")
		return m, nil
	case "left", "f":
		pos = tree.FirstChild
	case "right", "l":
		pos = tree.LastChild
	case "up", "b":
		pos = tree.SiblingBefore
	case "down", "a":
		pos = tree.SiblingAfter
	default:
		return m, nil
	}
	if pos.IsSibling() && !m.siblingsAllowed() {
		m.setError(errSiblingOfDisplayRoot)
		return m, nil
	}
	m.place(pos)
	return m, nil
}
