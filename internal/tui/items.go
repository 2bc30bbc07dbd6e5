package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/ui"
	"github.com/idilsaglam/todo/internal/view"
)

// listItem adapts a todo to bubbles/list.Item.
type listItem struct {
	todo model.Todo
}

func (i listItem) FilterValue() string { return i.todo.Title }

// itemState is one row's edit mode. Rows never share it.
type itemState struct {
	editing     bool
	saving      bool
	field       field
	title       textinput.Model
	description textinput.Model
	priority    model.Priority
	err         string
}

func newItemState() *itemState {
	s := &itemState{
		title:       textinput.New(),
		description: textinput.New(),
	}
	s.title.Prompt = "> "
	s.title.Placeholder = "Title"
	s.title.CharLimit = 200
	s.description.Prompt = "  "
	s.description.Placeholder = "Description (optional)"
	s.description.CharLimit = 500
	return s
}

// begin enters edit mode with the drafts seeded from td.
func (s *itemState) begin(td model.Todo) tea.Cmd {
	s.load(td)
	s.editing = true
	s.err = ""
	return s.setField(fieldTitle)
}

// cancel leaves edit mode and throws the drafts away.
func (s *itemState) cancel(td model.Todo) {
	s.load(td)
	s.editing = false
	s.saving = false
	s.err = ""
	s.title.Blur()
	s.description.Blur()
}

func (s *itemState) load(td model.Todo) {
	d := s.draft()
	d.Revert(td)
	s.title.SetValue(d.Title)
	s.title.CursorEnd()
	s.description.SetValue(d.Description)
	s.description.CursorEnd()
	s.priority = d.Priority
}

func (s *itemState) draft() view.EditDraft {
	return view.EditDraft{
		Title:       s.title.Value(),
		Description: s.description.Value(),
		Priority:    s.priority,
	}
}

func (s *itemState) setField(fl field) tea.Cmd {
	s.field = fl
	s.title.Blur()
	s.description.Blur()
	switch fl {
	case fieldTitle:
		return s.title.Focus()
	case fieldDescription:
		return s.description.Focus()
	}
	return nil
}

func (s *itemState) nextField(back bool) tea.Cmd {
	n := (int(s.field) + 1) % 3
	if back {
		n = (int(s.field) + 2) % 3
	}
	return s.setField(field(n))
}

func (s *itemState) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch s.field {
	case fieldTitle:
		s.title, cmd = s.title.Update(msg)
	case fieldDescription:
		s.description, cmd = s.description.Update(msg)
	case fieldPriority:
		if k, ok := msg.(tea.KeyMsg); ok {
			switch k.String() {
			case " ", "right", "l":
				s.priority = s.priority.Next()
			case "left", "h":
				s.priority = s.priority.Next().Next()
			}
		}
	}
	return cmd
}

func (s *itemState) view(width int) string {
	th := ui.Current()
	head := "Edit todo"
	switch {
	case s.saving:
		head += "  " + th.Muted.Render("saving...")
	case s.err != "":
		head += ": " + th.Error.Render(s.err)
	}
	s.title.Width = max(width-8, 10)
	s.description.Width = max(width-8, 10)
	return inputBar([]string{
		head,
		s.title.View(),
		s.description.View(),
		priorityPicker(s.priority, s.field == fieldPriority),
	}, true)
}

// itemDelegate renders a todo on two lines: title, then description and
// metadata.
type itemDelegate struct {
	states map[model.ID]*itemState
}

func (d itemDelegate) Height() int                               { return 2 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	th := ui.Current()
	td := it.todo
	width := max(m.Width()-6, 10)

	box := th.Muted.Render(th.BoxUnchecked)
	title := ui.Truncate(td.Title, width)
	if td.Completed {
		box = th.Success.Render(th.BoxChecked)
		title = th.Done.Render(title)
	}
	if st := d.states[td.ID]; st != nil && st.editing {
		title += " " + th.Accent.Render("(editing)")
	}

	prefix := "  "
	if index == m.Index() {
		prefix = th.Selected.Render("> ")
	}

	meta := th.PriorityBadge(td.Priority) + "  " + th.Muted.Render(view.FormatDate(td.CreatedAt))
	if td.HasDescription() {
		desc := ui.Truncate(*td.Description, width/2)
		if td.Completed {
			desc = th.Done.Render(desc)
		} else {
			desc = th.Muted.Render(desc)
		}
		meta = desc + "  " + meta
	}

	fmt.Fprintf(w, "%s%s %s\n    %s", prefix, box, title, meta)
}
