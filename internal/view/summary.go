package view

import "github.com/idilsaglam/todo/internal/model"

type Summary struct {
	Completed int
	Total     int
}

func Summarize(items []model.Todo) Summary {
	s := Summary{Total: len(items)}
	for _, td := range items {
		if td.Completed {
			s.Completed++
		}
	}
	return s
}

func (s Summary) Empty() bool { return s.Total == 0 }
func (s Summary) Pending() int { return s.Total - s.Completed }

// Ratio is the completed share in [0, 1]; 0 for an empty collection.
func (s Summary) Ratio() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Total)
}
