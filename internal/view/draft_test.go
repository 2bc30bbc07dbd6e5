package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todo/internal/model"
)

func TestDraft_InputTrimsAndDefaults(t *testing.T) {
	d := Draft{Title: "  Buy milk ", Description: "   ", Priority: model.PriorityLow}

	in, ok := d.Input()
	require.True(t, ok)
	assert.Equal(t, "Buy milk", in.Title)
	assert.Nil(t, in.Description, "blank description is absent")
	assert.Equal(t, model.PriorityLow, in.Priority)
	assert.False(t, in.Completed)

	in, ok = Draft{Title: "x", Description: " 2% "}.Input()
	require.True(t, ok)
	require.NotNil(t, in.Description)
	assert.Equal(t, "2%", *in.Description)
	assert.Equal(t, model.PriorityMedium, in.Priority)
}

func TestDraft_BlankTitleRejected(t *testing.T) {
	for _, title := range []string{"", "   ", "\t\n"} {
		_, ok := Draft{Title: title, Description: "d"}.Input()
		assert.False(t, ok, "%q", title)
	}
}

func TestDraft_Reset(t *testing.T) {
	d := Draft{Title: "a", Description: "b", Priority: model.PriorityHigh}
	d.Reset()
	assert.Equal(t, NewDraft(), d)
	assert.Equal(t, model.PriorityMedium, d.Priority)
}

func TestEditDraft_Patch(t *testing.T) {
	desc := "old"
	d := EditDraftOf(model.Todo{Title: "t", Description: &desc, Priority: model.PriorityHigh})
	assert.Equal(t, "old", d.Description)

	d.Title = "  new  "
	d.Description = " "
	p, err := d.Patch()
	require.NoError(t, err)
	assert.Equal(t, "new", *p.Title)
	require.NotNil(t, p.Description)
	assert.False(t, p.Description.Valid, "blank description clears it")
	assert.Equal(t, model.PriorityHigh, *p.Priority)
	assert.Nil(t, p.Completed)

	d.Title = " "
	_, err = d.Patch()
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestEditDraft_Revert(t *testing.T) {
	td := model.Todo{Title: "keep", Priority: model.PriorityLow}
	d := EditDraftOf(td)
	d.Title = "changed"
	d.Description = "typed"
	d.Priority = model.PriorityHigh

	d.Revert(td)
	assert.Equal(t, EditDraft{Title: "keep", Priority: model.PriorityLow}, d)
}

func TestSummarize(t *testing.T) {
	s := Summarize([]model.Todo{{Completed: true}, {}, {}, {Completed: true}})
	assert.Equal(t, Summary{Completed: 2, Total: 4}, s)
	assert.Equal(t, 2, s.Pending())
	assert.InDelta(t, 0.5, s.Ratio(), 1e-9)
	assert.False(t, s.Empty())

	empty := Summarize(nil)
	assert.True(t, empty.Empty())
	assert.Zero(t, empty.Ratio())
}

func TestFormatDate(t *testing.T) {
	ts := model.NewTimestamp(time.Date(2024, 3, 9, 23, 30, 0, 0, time.UTC))
	assert.Equal(t, "Mar 9, 2024", formatDateIn(ts, time.UTC))
	assert.Equal(t, "Mar 10, 2024", formatDateIn(ts, time.FixedZone("x", 2*3600)))
	assert.Equal(t, "", FormatDate(model.Timestamp{}))
}
