package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/idilsaglam/todo/internal/model"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, Done, Help                          lipgloss.Style
	PriorityHigh, PriorityMedium, PriorityLow     lipgloss.Style
	PriorityOther                                 lipgloss.Style

	BoxUnchecked, BoxChecked string
	SymDone, SymPending      string
	SymOK, SymFail           string
	BarFull, BarEmpty        string
	Border                   lipgloss.Border
	BorderColor              lipgloss.TerminalColor
}

// Themes lists the names SetTheme understands.
var Themes = []string{"classic", "neon", "mono"}

var current = classic()

// SetTheme switches the current theme. Unknown names fall back to classic.
func SetTheme(name string) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "neon":
		current = neon()
	case "mono":
		lipgloss.SetColorProfile(termenv.Ascii)
		current = mono()
	default:
		current = classic()
	}
}

// Current exposes what renderers need.
func Current() Theme { return current }

// ValidTheme reports whether name is a known theme.
func ValidTheme(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, t := range Themes {
		if t == name {
			return true
		}
	}
	return false
}

// DisableColor drops all color regardless of what the terminal supports.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// PriorityBadge renders a priority as a short colored label.
func (t Theme) PriorityBadge(p model.Priority) string {
	style := t.PriorityOther
	switch p {
	case model.PriorityHigh:
		style = t.PriorityHigh
	case model.PriorityMedium:
		style = t.PriorityMedium
	case model.PriorityLow:
		style = t.PriorityLow
	}
	label := p.String()
	if label == "" {
		label = "none"
	}
	return style.Render(label)
}

func classic() Theme {
	return Theme{
		Name:           "classic",
		Title:          lipgloss.NewStyle().Bold(true),
		Muted:          lipgloss.NewStyle().Faint(true),
		Accent:         lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:        lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:          lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Pending:        lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Selected:       lipgloss.NewStyle().Bold(true).Reverse(true),
		Done:           lipgloss.NewStyle().Faint(true).Strikethrough(true),
		Help:           lipgloss.NewStyle().Faint(true),
		PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		PriorityOther:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		BoxUnchecked:   "☐",
		BoxChecked:     "☑",
		SymDone:        "✔",
		SymPending:     "•",
		SymOK:          "✔",
		SymFail:        "✖",
		BarFull:        "█",
		BarEmpty:       "░",
		Border:         lipgloss.NormalBorder(),
		BorderColor:    lipgloss.Color("8"),
	}
}

func neon() Theme {
	t := classic()
	t.Name = "neon"
	t.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")) // bright magenta
	t.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	t.Pending = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	t.BoxUnchecked, t.BoxChecked = "◻", "◼"
	t.Border = lipgloss.RoundedBorder()
	t.BorderColor = lipgloss.Color("13")
	return t
}

func mono() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Name:           "mono",
		Title:          plain,
		Muted:          plain,
		Accent:         plain,
		Success:        plain,
		Error:          plain,
		Pending:        plain,
		Selected:       plain,
		Done:           plain,
		Help:           plain,
		PriorityHigh:   plain,
		PriorityMedium: plain,
		PriorityLow:    plain,
		PriorityOther:  plain,
		BoxUnchecked:   "[ ]",
		BoxChecked:     "[x]",
		SymDone:        "x",
		SymPending:     "-",
		SymOK:          "ok",
		SymFail:        "error:",
		BarFull:        "#",
		BarEmpty:       "-",
		Border:         lipgloss.Border{Top: "-", Bottom: "-", Left: "|", Right: "|", TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+"},
		BorderColor:    lipgloss.NoColor{},
	}
}
