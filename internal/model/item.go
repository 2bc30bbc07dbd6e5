package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Todo is the domain model for a todo entry as the server reports it.
// Every field except the mutable four is owned by the server.
type Todo struct {
	ID          ID        `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description *string   `json:"description" yaml:"description"`
	Priority    Priority  `json:"priority" yaml:"priority"`
	Completed   bool      `json:"completed" yaml:"completed"`
	CreatedAt   Timestamp `json:"created_at" yaml:"created_at"`
	UpdatedAt   Timestamp `json:"updated_at,omitzero" yaml:"updated_at,omitempty"`
}

// HasDescription reports whether the todo carries a non-empty description.
func (t Todo) HasDescription() bool {
	return t.Description != nil && *t.Description != ""
}

// ---------------------------------------------------
// ID
// ---------------------------------------------------

// ID is the opaque server-assigned identifier. The server may send it as a
// JSON number or a string; both decode to the same textual form.
type ID string

func (id ID) String() string { return string(id) }

// MarshalJSON writes canonical integers as JSON numbers and everything
// else, "007" and "+5" included, as strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// ---------------------------------------------------
// Priority
// ---------------------------------------------------

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var ErrInvalidPriority = errors.New("invalid priority")

// Priorities lists the known values from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func ParsePriority(s string) (Priority, error) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	case "":
		return PriorityMedium, nil
	}
	return "", fmt.Errorf("%w: %q (want low, medium or high)", ErrInvalidPriority, s)
}

// Rank orders priorities for display: high=3, medium=2, low=1.
// Values the client does not know rank 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

func (p Priority) Valid() bool { return p.Rank() > 0 }

// Next cycles low -> medium -> high -> low. Unknown values restart at low.
func (p Priority) Next() Priority {
	switch p {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	}
	return PriorityLow
}

func (p Priority) String() string { return string(p) }

// ---------------------------------------------------
// Timestamp
// ---------------------------------------------------

// Timestamp is a server time. Besides RFC 3339 it accepts the zone-less
// ISO form some backends emit for naive datetimes; those are read as UTC.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func NewTimestamp(t time.Time) Timestamp { return Timestamp{Time: t} }

func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("timestamp: unrecognized format %q", s)
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ts.UTC().Format(time.RFC3339Nano))
}

// MarshalYAML writes the same RFC 3339 text as MarshalJSON.
func (ts Timestamp) MarshalYAML() (any, error) {
	if ts.IsZero() {
		return nil, nil
	}
	return ts.UTC().Format(time.RFC3339Nano), nil
}

func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*ts = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if s == "" {
		*ts = Timestamp{}
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}
