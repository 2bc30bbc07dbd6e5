// Package tui is the interactive terminal front end. It renders the store
// and turns key presses into store operations that run off the event loop.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/store"
	"github.com/idilsaglam/todo/internal/ui"
	"github.com/idilsaglam/todo/internal/view"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	minListHeight = 6
	chromeHeight  = 14
)

type focusArea int

const (
	focusList focusArea = iota
	focusForm
)

// Model is the Bubble Tea model of the todo screen.
type Model struct {
	ctx    context.Context
	store  *store.Store
	logger *slog.Logger
	keys   keyMap

	list    list.Model
	spinner spinner.Model
	help    help.Model
	form    form
	states  map[model.ID]*itemState
	focus   focusArea

	// loaded is set by the first load result; until then the spinner shows.
	loaded bool

	// selected follows the cursor across re-sorts.
	selected      model.ID
	width, height int
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		m.logger = logger
	}
}

// New builds the model. Nothing is fetched until Init runs.
func New(ctx context.Context, s *store.Store, opts ...Option) Model {
	th := ui.Current()
	states := make(map[model.ID]*itemState)
	keys := newKeyMap()

	l := list.New(nil, itemDelegate{states: states}, 0, 0)
	l.Title = "Todos"
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	l.Styles.Title = th.Title
	l.Styles.HelpStyle = th.Help
	l.Styles.PaginationStyle = th.Help
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("todo", "todos")
	l.AdditionalShortHelpKeys = keys.listHelp
	l.AdditionalFullHelpKeys = keys.listHelp

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = th.Accent

	hp := help.New()
	hp.Styles.ShortKey = th.Help
	hp.Styles.ShortDesc = th.Muted
	hp.Styles.ShortSeparator = th.Muted

	m := Model{
		ctx:     ctx,
		store:   s,
		logger:  slog.New(slog.DiscardHandler),
		keys:    keys,
		list:    l,
		spinner: sp,
		help:    hp,
		form:    newForm(),
		states:  states,
		width:   defaultWidth,
		height:  defaultHeight,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.resizeList()
	return m
}

// resizeList gives the list a size before the first render so paging in
// Update works; View refines it once the chrome above it is known.
func (m *Model) resizeList() {
	m.list.SetSize(max(m.width-4, 20), max(m.height-chromeHeight, minListHeight))
}

// Run starts the program and blocks until the user quits or ctx ends.
func Run(ctx context.Context, s *store.Store, opts ...Option) error {
	p := tea.NewProgram(New(ctx, s, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resizeList()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadedMsg:
		m.loaded = true
		m.logger.Debug("todos loaded", "count", len(m.store.Items()))
		return m, m.syncList()

	case createdMsg:
		m.form.submitting = false
		if msg.err == nil {
			m.form.reset()
			m.selected = msg.todo.ID
		}
		return m, m.syncList()

	case savedMsg:
		st := m.states[msg.id]
		if st == nil {
			// Row deleted while the save was in flight.
			return m, nil
		}
		st.saving = false
		if msg.err == nil {
			st.editing = false
			st.title.Blur()
			st.description.Blur()
		}
		return m, m.syncList()

	case toggledMsg, deletedMsg:
		return m, m.syncList()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.loading() {
			if key.Matches(msg, m.keys.Quit) {
				return m, tea.Quit
			}
			return m, nil
		}
		if st, td, ok := m.editing(); ok {
			return m.updateEditor(st, td, msg)
		}
		if m.focus == focusForm {
			return m.updateForm(msg)
		}
		return m.updateList(msg)
	}

	// Cursor blinks and similar go to whatever has focus.
	var cmd tea.Cmd
	switch st, _, ok := m.editing(); {
	case ok:
		cmd = st.update(msg)
	case m.focus == focusForm:
		m.form, cmd = m.form.update(msg)
	default:
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.list.SettingFilter() {
		return m.forwardList(msg)
	}

	td, hasItem := m.current()
	if hasItem {
		m.selected = td.ID
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.list.FilterState() != list.Unfiltered {
			return m.forwardList(msg)
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.Add):
		m.focus = focusForm
		return m, m.form.focus()
	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadCmd()
	case key.Matches(msg, m.keys.Dismiss):
		m.store.ClearError()
		return m, nil
	case !hasItem:
	case key.Matches(msg, m.keys.Toggle):
		return m, m.toggleCmd(td.ID)
	case key.Matches(msg, m.keys.Delete):
		return m, m.deleteCmd(td.ID)
	case key.Matches(msg, m.keys.Edit):
		return m, m.state(td.ID).begin(td)
	}
	return m.forwardList(msg)
}

func (m Model) forwardList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	if td, ok := m.current(); ok {
		m.selected = td.ID
	}
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.form.blur()
		m.focus = focusList
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		return m, m.form.nextField(msg.String() == "shift+tab")
	case key.Matches(msg, m.keys.CyclePriority):
		m.form.priority = m.form.priority.Next()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		if m.form.submitting {
			return m, nil
		}
		in, ok := m.form.draft().Input()
		if !ok {
			m.form.err = "Title cannot be empty"
			return m, nil
		}
		m.form.submitting = true
		m.form.err = ""
		return m, m.createCmd(in)
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m Model) updateEditor(st *itemState, td model.Todo, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		st.cancel(td)
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		return m, st.nextField(msg.String() == "shift+tab")
	case key.Matches(msg, m.keys.CyclePriority):
		st.priority = st.priority.Next()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		if st.saving {
			return m, nil
		}
		patch, err := st.draft().Patch()
		if err != nil {
			st.err = "Title cannot be empty"
			return m, nil
		}
		st.saving = true
		st.err = ""
		return m, m.saveCmd(td.ID, patch)
	}
	return m, st.update(msg)
}

// loading is true before the first load completes and during reloads.
func (m Model) loading() bool {
	return !m.loaded || m.store.Loading()
}

// current is the todo under the cursor.
func (m Model) current() (model.Todo, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Todo{}, false
	}
	return it.todo, true
}

// editing returns the row under the cursor if it is in edit mode.
func (m Model) editing() (*itemState, model.Todo, bool) {
	td, ok := m.current()
	if !ok {
		return nil, model.Todo{}, false
	}
	st := m.states[td.ID]
	if st == nil || !st.editing {
		return nil, model.Todo{}, false
	}
	return st, td, true
}

func (m Model) state(id model.ID) *itemState {
	st := m.states[id]
	if st == nil {
		st = newItemState()
		m.states[id] = st
	}
	return st
}

// syncList rebuilds the rows from the store, keeps the cursor on the same
// todo and drops edit state of todos that are gone.
func (m *Model) syncList() tea.Cmd {
	items := view.Sort(m.store.Items())
	rows := make([]list.Item, len(items))
	live := make(map[model.ID]bool, len(items))
	for i, td := range items {
		rows[i] = listItem{todo: td}
		live[td.ID] = true
	}
	for id := range m.states {
		if !live[id] {
			delete(m.states, id)
		}
	}

	cmd := m.list.SetItems(rows)
	for i, it := range m.list.VisibleItems() {
		if it.(listItem).todo.ID == m.selected {
			m.list.Select(i)
			break
		}
	}
	m.list.Title = listTitle(view.Summarize(items))
	return cmd
}

func listTitle(s view.Summary) string {
	th := ui.Current()
	return fmt.Sprintf("Todos   %s %d  %s %d  %s %d",
		th.Success.Render(th.SymDone), s.Completed,
		th.Pending.Render(th.SymPending), s.Pending(),
		th.Accent.Render("Total"), s.Total,
	)
}

func (m Model) View() string {
	th := ui.Current()
	snap := m.store.Snapshot()
	inner := max(m.width-4, 20)

	if !m.loaded || snap.Loading {
		return ui.Panel([]string{m.spinner.View() + " Loading todos..."})
	}

	top := []string{
		th.Title.Render("Todo App"),
		th.Muted.Render("Stay organized and get things done"),
	}
	if snap.LastError != "" {
		top = append(top, th.Error.Render(th.SymFail+" "+snap.LastError)+"  "+th.Muted.Render("(c to dismiss)"))
	}
	top = append(top, m.form.view(inner))
	if m.focus == focusForm {
		top = append(top, m.inputHelp())
	}
	if s := summaryView(view.Summarize(snap.Items), inner); s != "" {
		top = append(top, s)
	}

	var bottom []string
	if st, _, ok := m.editing(); ok {
		bottom = append(bottom, st.view(inner), m.inputHelp())
	}

	var body string
	if len(snap.Items) == 0 {
		body = emptyView()
	} else {
		used := lipgloss.Height(strings.Join(top, "\n")) + 2
		if len(bottom) > 0 {
			used += lipgloss.Height(strings.Join(bottom, "\n"))
		}
		m.list.SetSize(inner, max(m.height-used, minListHeight))
		body = m.list.View()
	}

	lines := append(top, body)
	lines = append(lines, bottom...)
	return ui.Panel(lines)
}

// inputHelp is the key legend shown under the form or editor while typing.
func (m Model) inputHelp() string {
	return m.help.ShortHelpView(m.keys.inputHelp())
}

// summaryView is the progress section; it is empty when there are no todos.
func summaryView(s view.Summary, width int) string {
	if s.Empty() {
		return ""
	}
	bar := ui.ProgressBar(s.Completed, s.Total, min(width-6, 40))
	return fmt.Sprintf("Progress: %d of %d completed\n%s", s.Completed, s.Total, bar)
}

func emptyView() string {
	th := ui.Current()
	return th.Muted.Render("No todos yet!") + "\n" + th.Muted.Render("Add one above to get started.")
}
