package cli

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"

	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/ui"
	"github.com/idilsaglam/todo/internal/view"
)

const titleWidth = 72

// listLines is the body of the `ls` panel: counts, progress, then rows.
func listLines(items []model.Todo, group bool) []string {
	th := ui.Current()
	s := view.Summarize(items)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		th.Title.Render("Todos"),
		th.Success.Render(th.SymDone), s.Completed,
		th.Pending.Render(th.SymPending), s.Pending(),
		th.Accent.Render("Total"), s.Total,
	)

	lines := []string{header}
	if !s.Empty() {
		lines = append(lines,
			th.Muted.Render(fmt.Sprintf("Progress: %d of %d completed", s.Completed, s.Total)),
			th.Muted.Render(ui.ProgressBar(s.Completed, s.Total, 28)))
	}
	lines = append(lines, "")

	switch {
	case s.Empty():
		lines = append(lines, th.Muted.Render("No todos yet!"))
	case group:
		lines = append(lines, groupLines(items)...)
	default:
		lines = append(lines, flatLines(items)...)
	}
	lines = append(lines, "")
	lines = append(lines, th.Muted.Render("Tip: add with `todo add \"Buy milk\"`"))
	return lines
}

func flatLines(items []model.Todo) []string {
	th := ui.Current()
	if len(items) == 0 {
		return []string{th.Muted.Render("(none)")}
	}
	out := make([]string, 0, len(items))
	for _, td := range items {
		box := th.Muted.Render(th.BoxUnchecked)
		title := ui.Truncate(td.Title, titleWidth)
		if td.Completed {
			box = th.Success.Render(th.BoxChecked)
			title = th.Done.Render(title)
		}
		out = append(out, fmt.Sprintf("%s %s %s  %s  %s",
			th.Muted.Render(fmt.Sprintf("#%-3s", td.ID)), box, title,
			th.PriorityBadge(td.Priority),
			th.Muted.Render(view.FormatDate(td.CreatedAt)),
		))
		if td.HasDescription() {
			out = append(out, "       "+th.Muted.Render(ui.Truncate(firstLine(*td.Description), titleWidth)))
		}
	}
	return out
}

func groupLines(items []model.Todo) []string {
	th := ui.Current()
	var pend, done []model.Todo
	for _, td := range items {
		if td.Completed {
			done = append(done, td)
		} else {
			pend = append(pend, td)
		}
	}
	var lines []string
	lines = append(lines, th.Accent.Render("Pending"))
	lines = append(lines, flatLines(pend)...)
	lines = append(lines, "")
	lines = append(lines, th.Accent.Render("Done"))
	lines = append(lines, flatLines(done)...)
	return lines
}

// detailLines is the `show` panel; the description is rendered after it.
func detailLines(td model.Todo) []string {
	th := ui.Current()
	box, status := th.Muted.Render(th.BoxUnchecked), th.Pending.Render("open")
	if td.Completed {
		box, status = th.Success.Render(th.BoxChecked), th.Success.Render("completed")
	}
	lines := []string{
		fmt.Sprintf("%s %s", box, th.Title.Render(td.Title)),
		"",
		fmt.Sprintf("%s %s", th.Muted.Render("id:      "), td.ID),
		fmt.Sprintf("%s %s", th.Muted.Render("status:  "), status),
		fmt.Sprintf("%s %s", th.Muted.Render("priority:"), th.PriorityBadge(td.Priority)),
		fmt.Sprintf("%s %s", th.Muted.Render("created: "), view.FormatDate(td.CreatedAt)),
	}
	if !td.UpdatedAt.IsZero() {
		lines = append(lines, fmt.Sprintf("%s %s", th.Muted.Render("updated: "), view.FormatDate(td.UpdatedAt)))
	}
	return lines
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}

var (
	mdMu        sync.Mutex
	mdRenderers = map[string]*glamour.TermRenderer{}
)

// renderMarkdown renders a description for the terminal. Rendering errors
// fall back to the raw text.
func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	style := styles.DarkStyle
	if ui.Current().Name == "mono" {
		style = styles.NoTTYStyle
	}
	key := fmt.Sprintf("%s:%d", style, width)

	mdMu.Lock()
	r := mdRenderers[key]
	if r == nil {
		// WithAutoStyle queries the terminal and can block; use a fixed style.
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			mdMu.Unlock()
			return md
		}
		mdRenderers[key] = rr
		r = rr
	}
	mdMu.Unlock()

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
