package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left           key.Binding
	Right          key.Binding
	Up             key.Binding
	Down           key.Binding
	Next           key.Binding
	Prev           key.Binding
	Home           key.Binding
	End            key.Binding
	PageUp         key.Binding
	PageDown       key.Binding
	Child          key.Binding
	Sibling        key.Binding
	TopLevel       key.Binding
	Remove         key.Binding
	Edit           key.Binding
	Toggle         key.Binding
	ToggleChildren key.Binding
	Save           key.Binding
	Reload         key.Binding
	Search         key.Binding
	Copy           key.Binding
	Export         key.Binding
	Clear          key.Binding
	Help           key.Binding
	Quit           key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:           key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "parent")),
		Right:          key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "child")),
		Up:             key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "prev sibling")),
		Down:           key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next sibling")),
		Next:           key.NewBinding(key.WithKeys("j"), key.WithHelp("j", "next row")),
		Prev:           key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "prev row")),
		Home:           key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first row")),
		End:            key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last row")),
		PageUp:         key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:       key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Child:          key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "add child")),
		Sibling:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add sibling")),
		TopLevel:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "add top-level")),
		Remove:         key.NewBinding(key.WithKeys("ctrl+d", "delete"), key.WithHelp("del", "remove")),
		Edit:           key.NewBinding(key.WithKeys(" ", "e"), key.WithHelp("space", "edit")),
		Toggle:         key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "fold")),
		ToggleChildren: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "fold children")),
		Save:           key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Reload:         key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload")),
		Search:         key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Copy:           key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy label")),
		Export:         key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export")),
		Clear:          key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "deselect")),
		Help:           key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:           key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Child, k.Sibling, k.Edit, k.Remove, k.Save, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down, k.Next, k.Prev},
		{k.Home, k.End, k.PageUp, k.PageDown, k.Clear},
		{k.Child, k.Sibling, k.TopLevel, k.Remove, k.Edit},
		{k.Toggle, k.ToggleChildren, k.Search, k.Copy, k.Export},
		{k.Save, k.Reload, k.Help, k.Quit},
	}
}
