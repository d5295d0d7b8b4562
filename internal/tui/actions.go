package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"todo-cli/internal/core"
	"todo-cli/internal/format"
	"todo-cli/internal/publish"
	"todo-cli/internal/store"
	"todo-cli/internal/tree"
)

var (
	errNothingSelected      = errors.New("nothing selected")
	errSiblingOfDisplayRoot = errors.New("the display root takes children only")
)

// resolvePath expands ~ and makes p relative to the menu directory.
func (m appModel) resolvePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(m.dir, p)
	}
	return filepath.Clean(p)
}

// openFile loads path and switches to the list view. On failure the current
// view is left alone and the error goes to the status line.
func (m *appModel) openFile(path string) {
	path = m.resolvePath(path)
	c, err := core.Load(path)
	if err != nil {
		m.setError(err)
		return
	}
	m.logger.Info("loaded list", "path", path, "entries", c.Stats().Entries)
	m.startList(c, path)
	m.dirty = false
	m.recordRecent(path)
	m.state.LastFile = path
	m.saveState()
	m.setStatus("Opened " + path)
}

func (m *appModel) newList(name string) {
	m.startList(core.New(name), "")
	m.dirty = true
	m.setStatus("New list " + name)
}

func (m *appModel) startList(c *core.Core, path string) {
	if m.cfg.DefaultDepth != nil {
		c.SetDepth(*m.cfg.DefaultDepth)
	}
	m.list = c
	m.path = path
	m.pending = pendingOp{}
	m.syncDelegate()
	m.view = viewList
	m.modal = modalNone
	m.entriesList.SetItems(nil)
	m.entriesList.Select(0)
	m.refreshEntries()
}

func (m *appModel) closeList() {
	m.list = nil
	m.path = ""
	m.dirty = false
	m.pending = pendingOp{}
	m.syncDelegate()
	m.refreshEntries()
	m.view = viewMenu
	m.refreshMenu()
}

// savePath is where "s" writes: the file the list came from, else a file
// named after the list in the menu directory.
func (m appModel) savePath() string {
	if m.path != "" {
		return m.path
	}
	return filepath.Join(m.dir, core.FileName(m.list.Name()))
}

func (m *appModel) save() {
	path := m.savePath()
	if err := m.list.SaveFile(path); err != nil {
		m.setError(err)
		return
	}
	m.logger.Info("saved list", "path", path)
	m.path = path
	m.dirty = false
	m.recordRecent(path)
	m.state.LastFile = path
	m.saveState()
	m.setStatus("Saved " + path)
}

func (m *appModel) print(unfinishedOnly bool) {
	dir := m.dir
	if m.path != "" {
		dir = filepath.Dir(m.path)
	}
	out, err := publish.PrintFile(dir, m.list, m.printFormatter, unfinishedOnly)
	if err != nil {
		m.setError(err)
		return
	}
	m.logger.Info("printed list", "path", out, "unfinished", unfinishedOnly)
	m.setStatus("Printed " + out)
}

func (m *appModel) selectedID() (tree.NodeID, error) {
	it, ok := selectedEntry(m.entriesList)
	if !ok {
		return tree.NoNode, errNothingSelected
	}
	return it.id(), nil
}

func (m *appModel) toggle() {
	id, err := m.selectedID()
	if err != nil {
		m.setError(err)
		return
	}
	if err := m.list.Toggle(id); err != nil {
		m.setError(err)
		return
	}
	m.dirty = true
	m.refreshEntries()
}

func (m *appModel) addEntry(parent tree.NodeID, name string) {
	id, err := m.list.NewEntry(name, tree.LastChild, parent)
	if err != nil {
		m.setError(err)
		return
	}
	m.dirty = true
	m.refreshEntries()
	selectEntryByID(&m.entriesList, id)
}

func (m *appModel) rename(id tree.NodeID, name string) {
	if err := m.list.Rename(id, name); err != nil {
		m.setError(err)
		return
	}
	m.dirty = true
	m.refreshEntries()
}

func (m *appModel) deleteEntry(id tree.NodeID) {
	idx := m.entriesList.Index()
	if err := m.list.Delete(id); err != nil {
		m.setError(err)
		return
	}
	m.dirty = true
	m.refreshEntries()
	m.entriesList.Select(clamp(idx-1, 0, len(m.entriesList.Items())-1))
}

func (m *appModel) zoomIn() {
	id, err := m.selectedID()
	if err != nil {
		m.setError(err)
		return
	}
	if err := m.list.ZoomIn(id); err != nil {
		m.setError(err)
		return
	}
	m.refreshEntries()
	m.entriesList.Select(0)
}

func (m *appModel) zoomOut() {
	keep, _ := m.selectedID()
	if !m.list.ZoomOut() {
		m.setStatus("Already at the top of the list")
		return
	}
	m.refreshEntries()
	selectEntryByID(&m.entriesList, keep)
}

func (m *appModel) incDepth() {
	m.list.IncDepth(1)
	m.refreshEntries()
}

// decDepth keeps the cursor on the nearest ancestor still in view when the
// selected row is cut off.
func (m *appModel) decDepth() {
	id, _ := m.selectedID()
	m.list.DecDepth(1)
	m.refreshEntries()
	for id != tree.NoNode {
		if selectEntryByID(&m.entriesList, id) {
			return
		}
		parent, ok, err := m.list.ParentID(id)
		if err != nil || !ok {
			break
		}
		id = parent
	}
	m.entriesList.Select(0)
}

func (m *appModel) toggleStyle() {
	if m.formatter.Style == format.StyleFancy {
		m.formatter.Style = format.StyleBasic
	} else {
		m.formatter.Style = format.StyleFancy
	}
	m.state.Style = m.formatter.Style.String()
	m.saveState()
	m.syncDelegate()
}

// yank copies the selected entry and what is shown below it as text.
func (m *appModel) yank() {
	id, err := m.selectedID()
	if err != nil {
		m.setError(err)
		return
	}
	text, err := m.subtreeText(id)
	if err != nil {
		m.setError(err)
		return
	}
	if err := copyToClipboard(text); err != nil {
		m.setError(fmt.Errorf("clipboard: %w", err))
		return
	}
	m.setStatus("Copied to clipboard")
}

func (m *appModel) subtreeText(id tree.NodeID) (string, error) {
	if id != m.list.CurrentRoot() {
		if err := m.list.ZoomIn(id); err != nil {
			return "", err
		}
		defer m.list.ZoomOut()
	}
	var b strings.Builder
	if err := publish.WriteText(&b, m.list, m.formatter, false); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (m *appModel) startPending(kind pendingKind) {
	id, err := m.selectedID()
	if err != nil {
		m.setError(err)
		return
	}
	if kind == pendingMove && id == m.list.CurrentRoot() {
		m.setError(errors.New("cannot move the display root"))
		return
	}
	blocked := map[tree.NodeID]bool{id: true}
	if kind == pendingMove {
		ds, err := m.list.DescendantsOf(id)
		if err != nil {
			m.setError(err)
			return
		}
		for _, d := range ds {
			blocked[d] = true
		}
	}
	m.pending = pendingOp{kind: kind, source: id, target: tree.NoNode, blocked: blocked}
	m.syncDelegate()
	e, _ := m.list.Entry(id)
	m.setStatus(fmt.Sprintf("Pick where to %s “%s”", kind.verb(), e.Name))
}

func (m *appModel) cancelPending() {
	m.pending = pendingOp{}
	m.syncDelegate()
	m.modal = modalNone
}

func (m *appModel) pickTarget() {
	id, err := m.selectedID()
	if err != nil {
		m.setError(err)
		return
	}
	if m.pending.blocked[id] {
		if id == m.pending.source {
			m.setError(errors.New("pick a different entry as the target"))
		} else {
			m.setError(errors.New("cannot move an entry into its own subtree"))
		}
		return
	}
	m.pending.target = id
	m.modal = modalPosition
}

func (m *appModel) place(pos tree.Position) {
	p := m.pending
	m.cancelPending()

	switch p.kind {
	case pendingMove:
		if err := m.list.MoveEntry(p.source, pos, p.target); err != nil {
			m.setError(err)
			return
		}
		m.dirty = true
		m.refreshEntries()
		if !selectEntryByID(&m.entriesList, p.source) {
			selectEntryByID(&m.entriesList, p.target)
		}
		m.setStatus("Moved")
	case pendingCopy:
		id, err := m.list.CopyEntry(p.source, pos, p.target)
		if err != nil {
			m.setError(err)
			return
		}
		m.dirty = true
		m.refreshEntries()
		if !selectEntryByID(&m.entriesList, id) {
			selectEntryByID(&m.entriesList, p.target)
		}
		m.setStatus("Copied")
	}
}

func (m *appModel) changeDir(p string) {
	p = m.resolvePath(p)
	fi, err := os.Stat(p)
	if err != nil {
		m.setError(err)
		return
	}
	if !fi.IsDir() {
		m.setError(fmt.Errorf("not a directory: %s", p))
		return
	}
	m.dir = p
	m.picker.CurrentDirectory = p
	m.state.LastDir = p
	m.saveState()
	m.refreshMenu()
	m.setStatus("Directory " + p)
}

// applySetting takes "key value". Marks keep their value untrimmed so a
// blank mark can be set.
func (m *appModel) applySetting(s string) {
	k, v, ok := strings.Cut(strings.TrimLeft(s, " "), " ")
	k = strings.ToLower(strings.TrimSpace(k))
	if !ok || k == "" {
		m.setError(errors.New("want: <key> <value>"))
		return
	}
	if !strings.HasSuffix(k, "completed") && !strings.HasSuffix(k, "incomplete") {
		v = strings.TrimSpace(v)
	}
	if err := store.SetConfigValue(m.cfg, k, v); err != nil {
		m.setError(err)
		return
	}
	if err := store.SaveConfig(m.cfg); err != nil {
		m.setError(err)
		return
	}
	m.logger.Info("config updated", "key", k)
	if k == "formatter.style" {
		// An explicit setting wins over the last toggle.
		m.state.Style = ""
		m.saveState()
	}
	m.setStatus("Set " + k)
	m.applyConfig()
}
