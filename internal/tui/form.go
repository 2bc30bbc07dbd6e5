package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/ui"
	"github.com/idilsaglam/todo/internal/view"
)

type field int

const (
	fieldTitle field = iota
	fieldDescription
	fieldPriority
)

// form is the creation form. Its draft is local to it; the store only
// sees a todo once it is submitted.
type form struct {
	title       textinput.Model
	description textinput.Model
	priority    model.Priority
	field       field
	focused     bool
	submitting  bool
	err         string
}

func newForm() form {
	f := form{
		title:       textinput.New(),
		description: textinput.New(),
		priority:    model.PriorityMedium,
	}
	f.title.Prompt = "> "
	f.title.Placeholder = "What needs to be done?"
	f.title.CharLimit = 200
	f.description.Prompt = "  "
	f.description.Placeholder = "Description (optional)"
	f.description.CharLimit = 500
	return f
}

func (f form) draft() view.Draft {
	return view.Draft{
		Title:       f.title.Value(),
		Description: f.description.Value(),
		Priority:    f.priority,
	}
}

func (f *form) reset() {
	d := view.NewDraft()
	f.title.SetValue(d.Title)
	f.description.SetValue(d.Description)
	f.priority = d.Priority
	f.err = ""
}

func (f *form) focus() tea.Cmd {
	f.focused = true
	return f.setField(fieldTitle)
}

func (f *form) blur() {
	f.focused = false
	f.title.Blur()
	f.description.Blur()
}

func (f *form) setField(fl field) tea.Cmd {
	f.field = fl
	f.title.Blur()
	f.description.Blur()
	switch fl {
	case fieldTitle:
		return f.title.Focus()
	case fieldDescription:
		return f.description.Focus()
	}
	return nil
}

func (f *form) nextField(back bool) tea.Cmd {
	n := (int(f.field) + 1) % 3
	if back {
		n = (int(f.field) + 2) % 3
	}
	return f.setField(field(n))
}

// update feeds msg to the focused field.
func (f form) update(msg tea.Msg) (form, tea.Cmd) {
	var cmd tea.Cmd
	switch f.field {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldDescription:
		f.description, cmd = f.description.Update(msg)
	case fieldPriority:
		if k, ok := msg.(tea.KeyMsg); ok {
			switch k.String() {
			case " ", "right", "l":
				f.priority = f.priority.Next()
			case "left", "h":
				f.priority = f.priority.Next().Next()
			}
		}
	}
	if f.err != "" && strings.TrimSpace(f.title.Value()) != "" {
		f.err = ""
	}
	return f, cmd
}

func (f form) view(width int) string {
	th := ui.Current()
	head := "Add todo"
	switch {
	case f.submitting:
		head += "  " + th.Muted.Render("saving...")
	case f.err != "":
		head += ": " + th.Error.Render(f.err)
	case !f.focused:
		head += "  " + th.Muted.Render("(a to focus)")
	}

	f.title.Width = max(width-8, 10)
	f.description.Width = max(width-8, 10)

	lines := []string{
		head,
		f.title.View(),
		f.description.View(),
		priorityPicker(f.priority, f.focused && f.field == fieldPriority),
	}
	return inputBar(lines, f.focused)
}

func priorityPicker(p model.Priority, focused bool) string {
	th := ui.Current()
	label := fmt.Sprintf("‹ %s ›", th.PriorityBadge(p))
	if focused {
		label = th.Selected.Render("‹") + " " + th.PriorityBadge(p) + " " + th.Selected.Render("›")
	}
	return "  priority: " + label
}

// inputBar frames an input area like the list's panel.
func inputBar(lines []string, active bool) string {
	th := ui.Current()
	color := th.BorderColor
	if active {
		color = th.Accent.GetForeground()
	}
	return lipgloss.NewStyle().
		Border(th.Border).
		BorderForeground(color).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}
