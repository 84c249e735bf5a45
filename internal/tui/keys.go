package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextTab    key.Binding
	PrevTab    key.Binding
	Quit       key.Binding
	Start      key.Binding
	Skip       key.Binding
	Buy        key.Binding
	CraftArt   key.Binding
	CraftBook  key.Binding
	SellArt    key.Binding
	SellBook   key.Binding
	ArtDown    key.Binding
	ArtUp      key.Binding
	BookDown   key.Binding
	BookUp     key.Binding
	Paper      key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	ForceQuit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		NextTab:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Start:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start")),
		Skip:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "skip")),
		Buy:        key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "buy")),
		CraftArt:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "craft article")),
		CraftBook:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "craft book")),
		SellArt:    key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "sell article")),
		SellBook:   key.NewBinding(key.WithKeys("B"), key.WithHelp("B", "sell book")),
		ArtDown:    key.NewBinding(key.WithKeys("["), key.WithHelp("[/]", "article price")),
		ArtUp:      key.NewBinding(key.WithKeys("]")),
		BookDown:   key.NewBinding(key.WithKeys("{"), key.WithHelp("{/}", "book price")),
		BookUp:     key.NewBinding(key.WithKeys("}")),
		Paper:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "buy paper")),
		ScrollUp:   key.NewBinding(key.WithKeys("up", "k", "pgup"), key.WithHelp("↑/↓/pgup/pgdn", "scroll")),
		ScrollDown: key.NewBinding(key.WithKeys("down", "j", "pgdown")),
	}
}

func (k keyMap) forTab(t tab) []key.Binding {
	switch t {
	case tabShop:
		return []key.Binding{k.Buy, k.CraftArt, k.CraftBook, k.SellArt, k.SellBook, k.ArtDown, k.BookDown, k.Paper, k.NextTab, k.Quit}
	case tabLog:
		return []key.Binding{k.ScrollUp, k.NextTab, k.Quit}
	default:
		return []key.Binding{k.Start, k.Skip, k.NextTab, k.ForceQuit}
	}
}
