package model

import "encoding/json"

// NewTodo is the body of a create request. The server assigns id and
// created_at and echoes the full record back.
type NewTodo struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Priority    Priority `json:"priority"`
	Completed   bool     `json:"completed"`
}

// Nullable is a patch value that may be an explicit null.
type Nullable[T any] struct {
	Valid bool // false sends null
	V     T
}

func Value[T any](v T) *Nullable[T] { return &Nullable[T]{Valid: true, V: v} }
func Null[T any]() *Nullable[T]     { return &Nullable[T]{} }

// Patch is a partial update. Nil fields are left out of the request body
// and so left unchanged by the server.
type Patch struct {
	Title       *string
	Description *Nullable[string]
	Priority    *Priority
	Completed   *bool
}

func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil && p.Completed == nil
}

func (p Patch) MarshalJSON() ([]byte, error) {
	body := make(map[string]any, 4)
	if p.Title != nil {
		body["title"] = *p.Title
	}
	if p.Description != nil {
		if p.Description.Valid {
			body["description"] = p.Description.V
		} else {
			body["description"] = nil
		}
	}
	if p.Priority != nil {
		body["priority"] = *p.Priority
	}
	if p.Completed != nil {
		body["completed"] = *p.Completed
	}
	return json.Marshal(body)
}

// UnmarshalJSON keeps the distinction between a missing description and
// an explicit null.
func (p *Patch) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*p = Patch{}
	if v, ok := raw["title"]; ok {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return err
		}
		p.Title = &s
	}
	if v, ok := raw["description"]; ok {
		var s *string
		if err := json.Unmarshal(v, &s); err != nil {
			return err
		}
		if s == nil {
			p.Description = Null[string]()
		} else {
			p.Description = Value(*s)
		}
	}
	if v, ok := raw["priority"]; ok {
		var pr Priority
		if err := json.Unmarshal(v, &pr); err != nil {
			return err
		}
		p.Priority = &pr
	}
	if v, ok := raw["completed"]; ok {
		var c bool
		if err := json.Unmarshal(v, &c); err != nil {
			return err
		}
		p.Completed = &c
	}
	return nil
}

// Apply returns t with the patch's fields written over it. The fake
// service in tests uses it; the client never applies patches locally.
func (p Patch) Apply(t Todo) Todo {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		if p.Description.Valid {
			d := p.Description.V
			t.Description = &d
		} else {
			t.Description = nil
		}
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	return t
}

// Ptr is a small helper for building patches.
func Ptr[T any](v T) *T { return &v }
