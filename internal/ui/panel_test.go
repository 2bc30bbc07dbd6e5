package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/idilsaglam/todo/internal/model"
)

func TestProgressBar(t *testing.T) {
	SetTheme("classic")
	assert.Equal(t, "█████░░░░░  50%", ProgressBar(1, 2, 10))
	assert.Equal(t, "░░░░░░░░░░   0%", ProgressBar(0, 0, 10))
	assert.Equal(t, "█████ 100%", ProgressBar(3, 3, 2), "width floors at 5")
}

func TestProgressBar_Mono(t *testing.T) {
	SetTheme("mono")
	defer SetTheme("classic")
	assert.Equal(t, "##--------  25%", ProgressBar(1, 4, 10))
}

func TestPanel_FramesEveryLine(t *testing.T) {
	SetTheme("mono")
	defer SetTheme("classic")

	out := Panel([]string{"a", "longer line"})
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "+-"))
	assert.Contains(t, lines[2], "longer line")
	w := ansi.StringWidth(lines[0])
	for _, ln := range lines {
		assert.Equal(t, w, ansi.StringWidth(ln))
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "anything", Truncate("anything", 0))
}

func TestStatusLines(t *testing.T) {
	SetTheme("mono")
	defer SetTheme("classic")

	var buf bytes.Buffer
	OK(&buf, "added")
	Fail(&buf, "Failed to create todo")
	assert.Equal(t, "ok added\nerror: Failed to create todo\n", buf.String())
}

func TestValidTheme(t *testing.T) {
	assert.True(t, ValidTheme("Neon"))
	assert.False(t, ValidTheme("solarized"))
}

func TestPriorityBadge(t *testing.T) {
	SetTheme("mono")
	defer SetTheme("classic")
	th := Current()
	assert.Equal(t, "high", th.PriorityBadge(model.PriorityHigh))
	assert.Equal(t, "none", th.PriorityBadge(""))
}
