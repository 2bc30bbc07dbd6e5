package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/idilsaglam/todo/internal/model"
)

func at(day int) model.Timestamp {
	return model.NewTimestamp(time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC))
}

func ids(items []model.Todo) []model.ID {
	out := make([]model.ID, len(items))
	for i, td := range items {
		out[i] = td.ID
	}
	return out
}

func TestSort_IncompleteHighFirst(t *testing.T) {
	items := []model.Todo{
		{ID: "done-low", Completed: true, Priority: model.PriorityLow, CreatedAt: at(1)},
		{ID: "open-high", Completed: false, Priority: model.PriorityHigh, CreatedAt: at(1)},
	}
	assert.Equal(t, []model.ID{"open-high", "done-low"}, ids(Sort(items)))
}

func TestSort_FullOrder(t *testing.T) {
	items := []model.Todo{
		{ID: "a", Completed: true, Priority: model.PriorityHigh, CreatedAt: at(5)},
		{ID: "b", Priority: model.PriorityLow, CreatedAt: at(9)},
		{ID: "c", Priority: model.PriorityHigh, CreatedAt: at(1)},
		{ID: "d", Priority: model.PriorityMedium, CreatedAt: at(2)},
		{ID: "e", Priority: model.PriorityHigh, CreatedAt: at(3)},
		{ID: "f", Completed: true, Priority: model.PriorityLow, CreatedAt: at(8)},
		{ID: "g", Priority: model.Priority("someday"), CreatedAt: at(10)},
	}
	assert.Equal(t, []model.ID{"e", "c", "d", "b", "g", "a", "f"}, ids(Sort(items)))
}

func TestSort_StableForEqualKeys(t *testing.T) {
	items := []model.Todo{
		{ID: "1", Priority: model.PriorityMedium, CreatedAt: at(1)},
		{ID: "2", Priority: model.PriorityMedium, CreatedAt: at(1)},
		{ID: "3", Priority: model.PriorityMedium, CreatedAt: at(1)},
	}
	assert.Equal(t, []model.ID{"1", "2", "3"}, ids(Sort(items)))
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	items := []model.Todo{
		{ID: "old", CreatedAt: at(1), Priority: model.PriorityLow},
		{ID: "new", CreatedAt: at(2), Priority: model.PriorityLow},
	}
	_ = Sort(items)
	assert.Equal(t, []model.ID{"old", "new"}, ids(items))
}

func TestCompare_IsAntisymmetric(t *testing.T) {
	pool := []model.Todo{
		{Completed: true, Priority: model.PriorityLow, CreatedAt: at(1)},
		{Completed: false, Priority: model.PriorityLow, CreatedAt: at(2)},
		{Completed: false, Priority: model.PriorityHigh, CreatedAt: at(2)},
		{Completed: false, Priority: model.PriorityHigh, CreatedAt: at(3)},
		{Completed: true, Priority: model.PriorityMedium, CreatedAt: at(3)},
	}
	for _, a := range pool {
		for _, b := range pool {
			assert.Equal(t, Compare(a, b), -Compare(b, a))
		}
	}
}

func TestSort_Empty(t *testing.T) {
	assert.Empty(t, Sort(nil))
}
