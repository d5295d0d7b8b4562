package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
	Help   key.Binding

	NewEntry        key.Binding
	Rename          key.Binding
	Toggle          key.Binding
	Delete          key.Binding
	Move            key.Binding
	Copy            key.Binding
	ZoomIn          key.Binding
	ZoomOut         key.Binding
	DepthUp         key.Binding
	DepthDown       key.Binding
	Save            key.Binding
	Print           key.Binding
	PrintUnfinished key.Binding
	Style           key.Binding
	Yank            key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Help:   key.NewBinding(key.WithKeys("?", "h"), key.WithHelp("?", "help")),

		NewEntry:        key.NewBinding(key.WithKeys("enter", "a"), key.WithHelp("enter", "new child")),
		Rename:          key.NewBinding(key.WithKeys("r", "e"), key.WithHelp("r", "rename")),
		Toggle:          key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Delete:          key.NewBinding(key.WithKeys("delete", "x", "d"), key.WithHelp("x", "delete")),
		Move:            key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		Copy:            key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
		ZoomIn:          key.NewBinding(key.WithKeys("z"), key.WithHelp("z/Z", "zoom in/out")),
		ZoomOut:         key.NewBinding(key.WithKeys("Z", "backspace")),
		DepthUp:         key.NewBinding(key.WithKeys("right", "+", "="), key.WithHelp("←/→", "depth")),
		DepthDown:       key.NewBinding(key.WithKeys("left", "-")),
		Save:            key.NewBinding(key.WithKeys("s", "ctrl+s"), key.WithHelp("s", "save")),
		Print:           key.NewBinding(key.WithKeys("p"), key.WithHelp("p/o", "print all/unfinished")),
		PrintUnfinished: key.NewBinding(key.WithKeys("o")),
		Style:           key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "style")),
		Yank:            key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy text")),
	}
}

// The help.KeyMap views below pick the bindings shown in the footer.

type menuHelpKeys struct{ k keyMap }

func (h menuHelpKeys) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Up, h.k.Down, h.k.Select, h.k.Help, h.k.Quit}
}

func (h menuHelpKeys) FullHelp() [][]key.Binding { return [][]key.Binding{h.ShortHelp()} }

type listHelpKeys struct{ k keyMap }

func (h listHelpKeys) ShortHelp() []key.Binding {
	return []key.Binding{h.k.NewEntry, h.k.Toggle, h.k.DepthUp, h.k.ZoomIn, h.k.Save, h.k.Help, h.k.Back}
}

func (h listHelpKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.k.Up, h.k.Down, h.k.DepthUp, h.k.ZoomIn},
		{h.k.NewEntry, h.k.Rename, h.k.Toggle, h.k.Delete},
		{h.k.Move, h.k.Copy, h.k.Yank, h.k.Style},
		{h.k.Save, h.k.Print, h.k.Help, h.k.Back},
	}
}

type pendingHelpKeys struct{ k keyMap }

func (h pendingHelpKeys) ShortHelp() []key.Binding {
	return []key.Binding{
		h.k.Up, h.k.Down,
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "pick target")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (h pendingHelpKeys) FullHelp() [][]key.Binding { return [][]key.Binding{h.ShortHelp()} }

type browseHelpKeys struct{ k keyMap }

func (h browseHelpKeys) ShortHelp() []key.Binding {
	return []key.Binding{
		h.k.Up, h.k.Down,
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter/→", "open")),
		key.NewBinding(key.WithKeys("backspace"), key.WithHelp("←", "parent dir")),
		h.k.Back,
	}
}

func (h browseHelpKeys) FullHelp() [][]key.Binding { return [][]key.Binding{h.ShortHelp()} }
