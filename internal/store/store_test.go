package store_test

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/remote"
	"github.com/idilsaglam/todo/internal/remote/remotetest"
	"github.com/idilsaglam/todo/internal/store"
)

func setup(t *testing.T, seed ...model.Todo) (*store.Store, *remotetest.Server) {
	t.Helper()
	srv := remotetest.NewT(t)
	srv.SetClock(func() time.Time { return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC) })
	srv.Seed(seed...)
	c, err := remote.NewClient(srv.URL)
	require.NoError(t, err)
	return store.New(c), srv
}

func TestInitialize_LoadsCollection(t *testing.T) {
	s, _ := setup(t, model.Todo{Title: "a"}, model.Todo{Title: "b"})

	s.Initialize(context.Background())

	snap := s.Snapshot()
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.LastError)
	require.Len(t, snap.Items, 2)
	assert.Equal(t, "a", snap.Items[0].Title)
	assert.Equal(t, "b", snap.Items[1].Title)
}

func TestInitialize_FailureKeepsItemsAndRecordsError(t *testing.T) {
	s, srv := setup(t, model.Todo{Title: "a"})
	ctx := context.Background()
	s.Initialize(ctx)
	require.Len(t, s.Items(), 1)

	srv.Seed(model.Todo{Title: "b"})
	srv.FailNext("list", http.StatusInternalServerError)
	s.Initialize(ctx)

	assert.Equal(t, store.MsgFetchFailed, s.LastError())
	assert.Len(t, s.Items(), 1, "previous items kept")
	assert.False(t, s.Loading(), "loading released on failure")

	s.Refetch(ctx)
	assert.Empty(t, s.LastError(), "successful reload clears the error")
	assert.Len(t, s.Items(), 2)
}

func TestInitialize_FirstLoadFailureLeavesEmpty(t *testing.T) {
	s, srv := setup(t)
	srv.FailNext("list", http.StatusBadGateway)

	s.Initialize(context.Background())

	assert.Empty(t, s.Items())
	assert.NotNil(t, s.Items())
	assert.Equal(t, store.MsgFetchFailed, s.LastError())
}

// gatedRemote blocks List until release is closed.
type gatedRemote struct {
	store.Remote
	entered chan struct{}
	release chan struct{}
}

func (g *gatedRemote) List(ctx context.Context) ([]model.Todo, error) {
	close(g.entered)
	<-g.release
	return []model.Todo{{ID: "1", Title: "x"}}, nil
}

func TestInitialize_LoadingWhileInFlight(t *testing.T) {
	g := &gatedRemote{entered: make(chan struct{}), release: make(chan struct{})}
	s := store.New(g)

	done := make(chan struct{})
	go func() {
		s.Initialize(context.Background())
		close(done)
	}()

	<-g.entered
	assert.True(t, s.Loading())
	close(g.release)
	<-done
	assert.False(t, s.Loading())
	assert.Len(t, s.Items(), 1)
}

func TestCreate_AppendsServerRecord(t *testing.T) {
	s, srv := setup(t)
	t0 := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	srv.SetClock(func() time.Time { return t0 })
	ctx := context.Background()
	s.Initialize(ctx)

	td, err := s.Create(ctx, model.NewTodo{Title: "Buy milk", Priority: model.PriorityLow})
	require.NoError(t, err)

	assert.Equal(t, model.ID("1"), td.ID)
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, model.ID("1"), items[0].ID)
	assert.Equal(t, "Buy milk", items[0].Title)
	assert.Nil(t, items[0].Description)
	assert.Equal(t, model.PriorityLow, items[0].Priority)
	assert.False(t, items[0].Completed)
	assert.True(t, t0.Equal(items[0].CreatedAt.Time))
}

func TestCreate_FailureRecordsErrorAndReturnsIt(t *testing.T) {
	s, srv := setup(t)
	srv.FailNext("create", http.StatusInternalServerError)

	_, err := s.Create(context.Background(), model.NewTodo{Title: "x", Priority: model.PriorityMedium})

	var re *remote.RequestError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusInternalServerError, re.StatusCode)
	assert.Equal(t, store.MsgCreateFailed, s.LastError())
	assert.Empty(t, s.Items(), "nothing inserted before confirmation")
}

func TestUpdate_ReplacesWithServerRecord(t *testing.T) {
	desc := "old"
	s, srv := setup(t, model.Todo{Title: "a", Description: &desc, Priority: model.PriorityLow})
	ctx := context.Background()
	s.Initialize(ctx)
	id := s.Items()[0].ID

	td, err := s.Update(ctx, id, model.Patch{Title: model.Ptr("b"), Description: model.Null[string]()})
	require.NoError(t, err)
	assert.Equal(t, "b", td.Title)
	assert.Nil(t, td.Description)

	got, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, srv.Todos()[0], got, "local item is the server's record")
}

func TestUpdate_UnknownIDIsNoOp(t *testing.T) {
	s, srv := setup(t, model.Todo{Title: "a"})
	ctx := context.Background()
	s.Initialize(ctx)
	before := srv.TotalCalls()

	td, err := s.Update(ctx, "99", model.Patch{Title: model.Ptr("b")})

	assert.NoError(t, err)
	assert.Equal(t, model.Todo{}, td)
	assert.Equal(t, before, srv.TotalCalls(), "no request issued")
	assert.Empty(t, s.LastError())
}

func TestUpdate_FailureKeepsItem(t *testing.T) {
	s, srv := setup(t, model.Todo{Title: "a"})
	ctx := context.Background()
	s.Initialize(ctx)
	id := s.Items()[0].ID
	srv.FailNext("update", http.StatusUnprocessableEntity)

	_, err := s.Update(ctx, id, model.Patch{Title: model.Ptr("b")})

	require.Error(t, err)
	assert.Equal(t, store.MsgUpdateFailed, s.LastError())
	got, _ := s.Get(id)
	assert.Equal(t, "a", got.Title)
}

func TestDelete_RemovesOnSuccess(t *testing.T) {
	s, _ := setup(t, model.Todo{Title: "a"}, model.Todo{Title: "b"})
	ctx := context.Background()
	s.Initialize(ctx)

	require.NoError(t, s.Delete(ctx, "1"))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, model.ID("2"), items[0].ID)
}

func TestDelete_NotFoundLeavesItems(t *testing.T) {
	s, srv := setup(t, model.Todo{Title: "a"})
	ctx := context.Background()
	s.Initialize(ctx)
	srv.FailNext("delete", http.StatusNotFound)
	before := s.Items()

	err := s.Delete(ctx, "1")

	require.Error(t, err)
	assert.True(t, remote.IsNotFound(err))
	assert.Equal(t, store.MsgDeleteFailed, s.LastError())
	assert.Equal(t, before, s.Items())
}

func TestToggleCompleted_TwiceRestores(t *testing.T) {
	s, _ := setup(t, model.Todo{Title: "a"})
	ctx := context.Background()
	s.Initialize(ctx)

	td, err := s.ToggleCompleted(ctx, "1")
	require.NoError(t, err)
	assert.True(t, td.Completed)

	td, err = s.ToggleCompleted(ctx, "1")
	require.NoError(t, err)
	assert.False(t, td.Completed)

	got, _ := s.Get("1")
	assert.False(t, got.Completed)
}

func TestToggleCompleted_UnknownIDIsNoOp(t *testing.T) {
	s, srv := setup(t)
	s.Initialize(context.Background())
	before := srv.TotalCalls()

	_, err := s.ToggleCompleted(context.Background(), "7")
	assert.NoError(t, err)
	assert.Equal(t, before, srv.TotalCalls())
}

func TestSuccessfulMutationKeepsPreviousError(t *testing.T) {
	s, srv := setup(t)
	ctx := context.Background()
	srv.FailNext("create", http.StatusInternalServerError)
	_, _ = s.Create(ctx, model.NewTodo{Title: "a"})

	_, err := s.Create(ctx, model.NewTodo{Title: "b"})
	require.NoError(t, err)
	assert.Equal(t, store.MsgCreateFailed, s.LastError())

	s.ClearError()
	assert.Empty(t, s.LastError())
}

func TestItemsIsACopy(t *testing.T) {
	s, _ := setup(t, model.Todo{Title: "a"})
	s.Initialize(context.Background())

	items := s.Items()
	items[0].Title = "mutated"

	got, _ := s.Get(items[0].ID)
	assert.Equal(t, "a", got.Title)
}

func TestConcurrentMutations_ConvergeOnServerState(t *testing.T) {
	s, srv := setup(t, model.Todo{Title: "keep"}, model.Todo{Title: "drop"})
	ctx := context.Background()
	s.Initialize(ctx)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Create(ctx, model.NewTodo{Title: fmt.Sprintf("t%d", i), Priority: model.PriorityMedium})
			assert.NoError(t, err)
		}(i)
	}
	wg.Add(2)
	go func() {
		defer wg.Done()
		assert.NoError(t, s.Delete(ctx, "2"))
	}()
	go func() {
		defer wg.Done()
		_, err := s.ToggleCompleted(ctx, "1")
		assert.NoError(t, err)
	}()
	wg.Wait()

	assert.ElementsMatch(t, srv.Todos(), s.Items())
}
