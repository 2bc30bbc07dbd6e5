package view

import (
	"errors"
	"strings"

	"github.com/idilsaglam/todo/internal/model"
)

var ErrEmptyTitle = errors.New("title cannot be empty")

// Draft is the creation form's unsaved input. It belongs to the form,
// never to the store.
type Draft struct {
	Title       string
	Description string
	Priority    model.Priority
}

func NewDraft() Draft { return Draft{Priority: model.PriorityMedium} }

// Input builds the create request. ok is false when the title is blank,
// in which case nothing should be sent.
func (d Draft) Input() (in model.NewTodo, ok bool) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return model.NewTodo{}, false
	}
	p := d.Priority
	if !p.Valid() {
		p = model.PriorityMedium
	}
	return model.NewTodo{
		Title:       title,
		Description: optional(d.Description),
		Priority:    p,
		Completed:   false,
	}, true
}

func (d *Draft) Reset() { *d = NewDraft() }

// EditDraft is an item's unsaved edit-mode input.
type EditDraft struct {
	Title       string
	Description string
	Priority    model.Priority
}

// EditDraftOf copies the editable fields of td.
func EditDraftOf(td model.Todo) EditDraft {
	d := EditDraft{Title: td.Title, Priority: td.Priority}
	if td.Description != nil {
		d.Description = *td.Description
	}
	return d
}

// Revert discards unsaved input and reloads the fields of td.
func (d *EditDraft) Revert(td model.Todo) { *d = EditDraftOf(td) }

// Patch builds the update request from the draft. Title and description
// are trimmed and a blank description is sent as null.
func (d EditDraft) Patch() (model.Patch, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return model.Patch{}, ErrEmptyTitle
	}
	p := model.Patch{
		Title:    &title,
		Priority: model.Ptr(d.Priority),
	}
	if desc := optional(d.Description); desc != nil {
		p.Description = model.Value(*desc)
	} else {
		p.Description = model.Null[string]()
	}
	return p, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
