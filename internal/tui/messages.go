package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todo/internal/model"
)

// Store calls run off the event loop; their results come back as these.
// Errors are already recorded in the store; the messages only carry them
// so local state (drafts, edit mode) can react.
type (
	loadedMsg  struct{}
	createdMsg struct {
		todo model.Todo
		err  error
	}
	savedMsg struct {
		id  model.ID
		err error
	}
	toggledMsg struct {
		id  model.ID
		err error
	}
	deletedMsg struct {
		id  model.ID
		err error
	}
)

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		m.store.Initialize(m.ctx)
		return loadedMsg{}
	}
}

func (m Model) createCmd(in model.NewTodo) tea.Cmd {
	return func() tea.Msg {
		td, err := m.store.Create(m.ctx, in)
		return createdMsg{todo: td, err: err}
	}
}

func (m Model) saveCmd(id model.ID, patch model.Patch) tea.Cmd {
	return func() tea.Msg {
		_, err := m.store.Update(m.ctx, id, patch)
		return savedMsg{id: id, err: err}
	}
}

func (m Model) toggleCmd(id model.ID) tea.Cmd {
	return func() tea.Msg {
		_, err := m.store.ToggleCompleted(m.ctx, id)
		return toggledMsg{id: id, err: err}
	}
}

func (m Model) deleteCmd(id model.ID) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{id: id, err: m.store.Delete(m.ctx, id)}
	}
}
