// Package remotetest runs an in-memory todo service for tests.
package remotetest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/idilsaglam/todo/internal/model"
)

// Server is a fake of the remote todo resource. Records are kept in
// insertion order; ids are sequential integers.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	todos      []model.Todo
	nextID     int
	now        func() time.Time
	failures   map[string][]int // op -> queued status codes
	calls      map[string]int
	requestIDs []string
}

// New starts a fake server. Call Close when done (or use NewT).
func New() *Server {
	s := &Server{
		nextID:   1,
		now:      func() time.Time { return time.Now().UTC() },
		failures: map[string][]int{},
		calls:    map[string]int{},
	}
	s.Server = httptest.NewServer(s.routes())
	return s
}

// NewT starts a fake server that is closed with the test.
func NewT(t interface{ Cleanup(func()) }) *Server {
	s := New()
	t.Cleanup(s.Close)
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.recordRequestID)

	r.Route("/todos", func(r chi.Router) {
		r.Get("/", s.handle("list", s.list))
		r.Post("/", s.handle("create", s.create))
		r.Get("/{id}", s.handle("get", s.get))
		r.Put("/{id}", s.handle("update", s.update))
		r.Delete("/{id}", s.handle("delete", s.remove))
	})
	return r
}

// SetClock fixes the time source used for created_at/updated_at.
func (s *Server) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Seed inserts records as-is. Missing ids are assigned.
func (s *Server) Seed(todos ...model.Todo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, td := range todos {
		if td.ID == "" {
			td.ID = s.allocID()
		} else if n, err := strconv.Atoi(string(td.ID)); err == nil && n >= s.nextID {
			s.nextID = n + 1
		}
		if td.CreatedAt.IsZero() {
			td.CreatedAt = model.NewTimestamp(s.now())
		}
		if td.Priority == "" {
			td.Priority = model.PriorityMedium
		}
		s.todos = append(s.todos, td)
	}
}

// Todos returns a copy of the server-side collection.
func (s *Server) Todos() []model.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.todos)
}

// FailNext makes the next call of op ("list", "get", "create", "update",
// "delete") answer with status. Calls queue up in order.
func (s *Server) FailNext(op string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = append(s.failures[op], status)
}

// Calls reports how many requests reached op, failed ones included.
func (s *Server) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// TotalCalls reports how many requests reached any op.
func (s *Server) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		n += c
	}
	return n
}

// RequestIDs returns the X-Request-ID headers seen so far.
func (s *Server) RequestIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requestIDs)
}

func (s *Server) recordRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rid := r.Header.Get(middleware.RequestIDHeader); rid != "" {
			s.mu.Lock()
			s.requestIDs = append(s.requestIDs, rid)
			s.mu.Unlock()
		}
		next.ServeHTTP(w, r)
	})
}

// handle counts the call and serves an injected failure if one is queued.
func (s *Server) handle(op string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls[op]++
		var status int
		if q := s.failures[op]; len(q) > 0 {
			status, s.failures[op] = q[0], q[1:]
		}
		s.mu.Unlock()

		if status != 0 {
			writeJSON(w, status, map[string]string{"detail": "injected failure"})
			return
		}
		h(w, r)
	}
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Todos())
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(model.ID(chi.URLParam(r, "id")))
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Todo not found"})
		return
	}
	writeJSON(w, http.StatusOK, s.todos[i])
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var in model.NewTodo
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		return
	}
	if strings.TrimSpace(in.Title) == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "title is required"})
		return
	}
	if in.Priority == "" {
		in.Priority = model.PriorityMedium
	}

	s.mu.Lock()
	now := model.NewTimestamp(s.now())
	td := model.Todo{
		ID:          s.allocID(),
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Completed:   in.Completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.todos = append(s.todos, td)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, td)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	var patch model.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(model.ID(chi.URLParam(r, "id")))
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Todo not found"})
		return
	}
	td := patch.Apply(s.todos[i])
	td.UpdatedAt = model.NewTimestamp(s.now())
	s.todos[i] = td
	writeJSON(w, http.StatusOK, td)
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(model.ID(chi.URLParam(r, "id")))
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Todo not found"})
		return
	}
	s.todos = slices.Delete(s.todos, i, i+1)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Todo deleted successfully"})
}

func (s *Server) indexOf(id model.ID) int {
	return slices.IndexFunc(s.todos, func(td model.Todo) bool { return td.ID == id })
}

func (s *Server) allocID() model.ID {
	id := model.ID(strconv.Itoa(s.nextID))
	s.nextID++
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
