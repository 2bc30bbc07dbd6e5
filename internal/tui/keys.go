package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add     key.Binding
	Toggle  key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Refresh key.Binding
	Dismiss key.Binding
	Quit    key.Binding

	Submit        key.Binding
	Cancel        key.Binding
	NextField     key.Binding
	CyclePriority key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Toggle:  key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "done")),
		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:  key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Dismiss: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear error")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),

		Submit:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		NextField:     key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
		CyclePriority: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "priority")),
	}
}

// listHelp is appended to the list's own help.
func (k keyMap) listHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Edit, k.Delete, k.Refresh}
}

func (k keyMap) inputHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel, k.NextField, k.CyclePriority}
}
