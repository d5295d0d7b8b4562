package tui

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"todo-cli/internal/core"
	"todo-cli/internal/format"
	"todo-cli/internal/logging"
	"todo-cli/internal/store"
	"todo-cli/internal/tree"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// Header (title + rule) and footer (status + key help).
	chromeHeight = 4

	recentInMenu = 5
)

type appModel struct {
	opts   Options
	cfg    *store.Config
	logger *log.Logger
	state  *store.TUIState

	width  int
	height int

	view     view
	helpFrom view
	modal    modalKind

	// modalTarget is the entry a modal acts on (parent of a new entry,
	// entry to rename or delete).
	modalTarget  tree.NodeID
	confirmFocus confirmModalFocus

	// dir is where new lists are saved and where the menu looks for lists.
	dir string

	menuList    list.Model
	entriesList list.Model
	picker      filepicker.Model
	helpView    viewport.Model
	input       textinput.Model
	help        help.Model
	keys        keyMap

	formatter      format.Formatter
	printFormatter format.Formatter

	list    *core.Core
	path    string
	dirty   bool
	pending pendingOp

	status    string
	statusErr bool
}

func newAppModel(opts Options) appModel {
	m := appModel{
		opts:   opts,
		cfg:    opts.Config,
		logger: opts.Logger,
		width:  defaultWidth,
		height: defaultHeight,
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
	if m.logger == nil {
		m.logger = logging.Discard()
	}
	if m.cfg == nil {
		cfg, err := store.LoadConfig()
		if err != nil {
			m.logger.Warn("config unreadable, using defaults", "err", err)
			cfg = &store.Config{}
		}
		m.cfg = cfg
	}
	st, err := store.LoadTUIState()
	if err != nil || st == nil {
		st = &store.TUIState{Version: 1}
	}
	m.state = st

	m.dir = m.startDir()

	m.input = textinput.New()
	m.input.Prompt = ""
	m.input.CharLimit = 512

	m.menuList = newPlainList(menuDelegate{}, m.width, m.bodyHeight())
	m.entriesList = newPlainList(newEntryDelegate(format.Default(), m.pending), m.width, m.bodyHeight())
	m.applyConfig()

	m.picker = filepicker.New()
	m.picker.AllowedTypes = []string{core.Ext}
	m.picker.ShowPermissions = false
	m.picker.AutoHeight = false
	m.picker.Height = m.bodyHeight()
	m.picker.CurrentDirectory = m.dir

	m.helpView = viewport.New(m.width, m.bodyHeight())

	m.refreshMenu()

	if f := strings.TrimSpace(opts.File); f != "" {
		m.openFile(f)
	}
	return m
}

func (m appModel) Init() tea.Cmd {
	return nil
}

// startDir is the last directory the menu was pointed at when it still
// exists, else the working directory.
func (m appModel) startDir() string {
	if d := strings.TrimSpace(m.state.LastDir); d != "" {
		if fi, err := os.Stat(d); err == nil && fi.IsDir() {
			return d
		}
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func (m appModel) bodyHeight() int {
	h := m.height - chromeHeight
	if h < 1 {
		return 1
	}
	return h
}

func (m *appModel) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.menuList.SetSize(width, m.bodyHeight())
	m.entriesList.SetSize(width, m.bodyHeight())
	m.picker.Height = m.bodyHeight()
	m.helpView.Width = width
	m.helpView.Height = m.bodyHeight()
	m.input.Width = modalBodyWidth(width) - 3
	if m.view == viewHelp {
		m.helpView.SetContent(renderMarkdown(helpMarkdown(), width))
	}
}

// applyConfig rebuilds both formatters from the config. A bad formatter
// section falls back to the defaults and is reported in the status line.
func (m *appModel) applyConfig() {
	applyUserColors(m.cfg)

	f, err := m.cfg.Formatter.Formatter()
	if err != nil {
		m.setError(err)
		f = format.Default()
	}
	if s := strings.TrimSpace(m.state.Style); s != "" {
		if st, err := format.ParseStyle(s); err == nil {
			f.Style = st
		}
	}
	f.Glyphs = format.GlyphsFromEnv(f.Glyphs)
	m.formatter = f

	pf, err := m.cfg.PrintFormatter.Formatter()
	if err != nil {
		m.setError(err)
		pf = format.Default()
	}
	m.printFormatter = pf

	m.menuList.SetDelegate(menuDelegate{glyphs: m.formatter.Glyphs})
	m.syncDelegate()
}

func (m *appModel) syncDelegate() {
	m.entriesList.SetDelegate(newEntryDelegate(m.formatter, m.pending))
}

func (m *appModel) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *appModel) setError(err error) {
	if err == nil {
		return
	}
	m.status = err.Error()
	m.statusErr = true
	m.logger.Debug("tui error", "err", err)
}

func (m *appModel) saveState() {
	if err := store.SaveTUIState(m.state); err != nil {
		m.logger.Warn("could not save tui state", "err", err)
	}
}

func (m *appModel) refreshMenu() {
	items := []list.Item{
		menuItem{action: menuNewList, title: "New list"},
		menuItem{action: menuLoadPath, title: "Load list by path"},
		menuItem{action: menuBrowse, title: "Browse for a list"},
		menuItem{action: menuSettings, title: "Settings"},
		menuItem{action: menuChangeDir, title: "Change directory", desc: m.dir},
	}

	seen := map[string]bool{}
	for _, e := range m.recentLists() {
		seen[e.Path] = true
		items = append(items, menuItem{
			action: menuRecent,
			title:  e.Name,
			desc:   itoaPair(e.Completed, e.Entries) + "  " + e.Path,
			path:   e.Path,
		})
	}

	if des, err := os.ReadDir(m.dir); err == nil {
		for _, de := range des {
			if de.IsDir() || !isListFile(de.Name()) {
				continue
			}
			p := filepath.Join(m.dir, de.Name())
			if seen[p] {
				continue
			}
			items = append(items, menuItem{action: menuFile, title: de.Name(), path: p})
		}
	} else {
		m.logger.Warn("could not read directory", "dir", m.dir, "err", err)
	}

	idx := m.menuList.Index()
	m.menuList.SetItems(items)
	if idx < len(items) {
		m.menuList.Select(idx)
	}
}

func (m *appModel) recentLists() []store.CatalogEntry {
	path, err := store.CatalogPath()
	if err != nil {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	ctx := context.Background()
	cat, err := store.OpenCatalog(ctx, path)
	if err != nil {
		m.logger.Warn("could not open catalog", "err", err)
		return nil
	}
	defer cat.Close()
	out, err := cat.Recent(ctx, recentInMenu)
	if err != nil {
		m.logger.Warn("could not read catalog", "err", err)
		return nil
	}
	return out
}

// recordRecent remembers path in the catalog. Failures only get logged.
func (m *appModel) recordRecent(path string) {
	catPath, err := store.CatalogPath()
	if err != nil {
		return
	}
	ctx := context.Background()
	cat, err := store.OpenCatalog(ctx, catPath)
	if err != nil {
		m.logger.Warn("could not open catalog", "err", err)
		return
	}
	defer cat.Close()
	st := m.list.Stats()
	err = cat.Record(ctx, store.CatalogEntry{
		Path:      path,
		Name:      m.list.Name(),
		Entries:   st.Entries,
		Completed: st.Completed,
	})
	if err != nil {
		m.logger.Warn("could not record list", "path", path, "err", err)
	}
}

// refreshEntries rebuilds the rows from the current view and keeps the
// selection on the same entry when it is still visible.
func (m *appModel) refreshEntries() {
	if m.list == nil {
		m.entriesList.SetItems(nil)
		return
	}
	keep := tree.NoNode
	if it, ok := selectedEntry(m.entriesList); ok {
		keep = it.id()
	}
	rows, err := m.list.Rows()
	if err != nil {
		m.setError(err)
		return
	}
	items := make([]list.Item, 0, len(rows))
	for _, r := range rows {
		items = append(items, entryItem{row: r})
	}
	idx := m.entriesList.Index()
	m.entriesList.SetItems(items)
	if keep != tree.NoNode && selectEntryByID(&m.entriesList, keep) {
		return
	}
	if len(items) > 0 {
		m.entriesList.Select(clamp(idx, 0, len(items)-1))
	}
}

func isListFile(name string) bool {
	return strings.HasSuffix(name, core.Ext) && len(name) > len(core.Ext)
}

func itoaPair(done, total int) string {
	return strconv.Itoa(done) + "/" + strconv.Itoa(total)
}
