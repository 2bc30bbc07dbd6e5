// Package store keeps the session's todo collection in step with the
// remote service. Nothing is applied locally before the server confirms it.
package store

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/idilsaglam/todo/internal/model"
)

// Messages recorded as LastError. The UI shows them verbatim.
const (
	MsgFetchFailed  = "Failed to fetch todos"
	MsgCreateFailed = "Failed to create todo"
	MsgUpdateFailed = "Failed to update todo"
	MsgDeleteFailed = "Failed to delete todo"
)

// Remote is the subset of the REST client the store needs.
type Remote interface {
	List(ctx context.Context) ([]model.Todo, error)
	Create(ctx context.Context, in model.NewTodo) (model.Todo, error)
	Update(ctx context.Context, id model.ID, patch model.Patch) (model.Todo, error)
	Delete(ctx context.Context, id model.ID) error
}

// Snapshot is a consistent copy of the store's state.
type Snapshot struct {
	Items     []model.Todo
	Loading   bool
	LastError string
}

// Store owns the canonical in-memory collection.
//
// Methods are safe to call from several goroutines. The lock is held only
// while local state is read or reconciled, never across a network call,
// so concurrent operations interleave only while waiting on the server.
type Store struct {
	remote Remote
	logger *slog.Logger

	mu        sync.Mutex
	items     []model.Todo
	loading   bool
	lastError string
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

func New(r Remote, opts ...Option) *Store {
	s := &Store{
		remote: r,
		logger: slog.Default(),
		items:  []model.Todo{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize replaces the collection with the server's. A failure is
// recorded in LastError and the previous items are kept; there is no
// caller to hand the error to.
func (s *Store) Initialize(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	todos, err := s.remote.List(ctx)
	if err != nil {
		s.fail("fetch todos", MsgFetchFailed, err)
		return
	}

	s.mu.Lock()
	s.items = slices.Clone(todos)
	s.lastError = ""
	s.mu.Unlock()
	s.logger.Debug("todos loaded", "count", len(todos))
}

// Refetch reloads the collection from the server.
func (s *Store) Refetch(ctx context.Context) { s.Initialize(ctx) }

// Create adds the server's record for in once it confirms it.
func (s *Store) Create(ctx context.Context, in model.NewTodo) (model.Todo, error) {
	td, err := s.remote.Create(ctx, in)
	if err != nil {
		s.fail("create todo", MsgCreateFailed, err)
		return model.Todo{}, err
	}

	s.mu.Lock()
	// Keep ids unique even if the server echoes one we already hold.
	if i := s.indexOf(td.ID); i >= 0 {
		s.items[i] = td
	} else {
		s.items = append(s.items, td)
	}
	s.mu.Unlock()
	return td, nil
}

// Update replaces the matching item with the server's full record. An id
// that is not in the collection is a no-op: no request, zero Todo, nil.
func (s *Store) Update(ctx context.Context, id model.ID, patch model.Patch) (model.Todo, error) {
	if _, ok := s.Get(id); !ok {
		s.logger.Debug("update skipped: unknown id", "id", id)
		return model.Todo{}, nil
	}

	td, err := s.remote.Update(ctx, id, patch)
	if err != nil {
		s.fail("update todo", MsgUpdateFailed, err, "id", id)
		return model.Todo{}, err
	}

	s.mu.Lock()
	if i := s.indexOf(id); i >= 0 {
		s.items[i] = td
	}
	s.mu.Unlock()
	return td, nil
}

// Delete removes the item once the server confirms the deletion.
func (s *Store) Delete(ctx context.Context, id model.ID) error {
	if err := s.remote.Delete(ctx, id); err != nil {
		s.fail("delete todo", MsgDeleteFailed, err, "id", id)
		return err
	}

	s.mu.Lock()
	if i := s.indexOf(id); i >= 0 {
		s.items = slices.Delete(s.items, i, i+1)
	}
	s.mu.Unlock()
	return nil
}

// ToggleCompleted flips the completed flag of id. Unknown ids are a no-op.
func (s *Store) ToggleCompleted(ctx context.Context, id model.ID) (model.Todo, error) {
	cur, ok := s.Get(id)
	if !ok {
		return model.Todo{}, nil
	}
	return s.Update(ctx, id, model.Patch{Completed: model.Ptr(!cur.Completed)})
}

// Items returns a copy of the collection in insertion order.
func (s *Store) Items() []model.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Get returns the item with id, if present.
func (s *Store) Get(id model.ID) (model.Todo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	return model.Todo{}, false
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastError is the message of the most recent failure, or "".
func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// ClearError dismisses the last recorded failure.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = ""
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Items:     slices.Clone(s.items),
		Loading:   s.loading,
		LastError: s.lastError,
	}
}

func (s *Store) fail(what, msg string, err error, attrs ...any) {
	s.mu.Lock()
	s.lastError = msg
	s.mu.Unlock()
	s.logger.Warn("failed to "+what, append(attrs, "error", err)...)
}

// indexOf must be called with mu held.
func (s *Store) indexOf(id model.ID) int {
	return slices.IndexFunc(s.items, func(td model.Todo) bool { return td.ID == id })
}
