package backend

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deweydb/dewey/internal/apperr"
	"github.com/deweydb/dewey/internal/connection"
	"github.com/deweydb/dewey/internal/model"
)

var fastRetry = RetryPolicy{
	InitialInterval: time.Millisecond,
	MaxInterval:     2 * time.Millisecond,
	MaxElapsedTime:  time.Second,
	MaxRetries:      3,
}

type call struct {
	command string
	args    any
}

// fakeBackend answers commands from a table of results or errors.
type fakeBackend struct {
	mu      sync.Mutex
	calls   []call
	results map[string]any
	errs    map[string][]error
}

func (f *fakeBackend) Invoke(ctx context.Context, command string, args, out any) error {
	f.mu.Lock()
	f.calls = append(f.calls, call{command, args})
	var err error
	if queue := f.errs[command]; len(queue) > 0 {
		err = queue[0]
		f.errs[command] = queue[1:]
	}
	result := f.results[command]
	f.mu.Unlock()

	if err != nil {
		return err
	}
	return Decode(result, out)
}

func (f *fakeBackend) count(command string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.command == command {
			n++
		}
	}
	return n
}

func TestClient_GetUserProjectsRetriesTransient(t *testing.T) {
	fb := &fakeBackend{
		results: map[string]any{CmdGetUserProjects: []model.Project{{ID: 7, Name: "A"}, {ID: 9, Name: "B"}}},
		errs: map[string][]error{CmdGetUserProjects: {
			apperr.New(apperr.CategoryDatabase, apperr.SeverityError, "database is locked", "", nil),
		}},
	}
	c := NewClient(fb, WithRetryPolicy(fastRetry))

	projects, err := c.GetUserProjects(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, []int64{7, 9}, []int64{projects[0].ID, projects[1].ID})
	assert.Equal(t, 2, fb.count(CmdGetUserProjects))
}

func TestClient_PermanentErrorNotRetried(t *testing.T) {
	keyErr := apperr.New(apperr.CategoryKeyring, apperr.SeverityCritical, "no key", apperr.SubKeyNotFound, nil)
	fb := &fakeBackend{errs: map[string][]error{CmdHasEncryptionKey: {keyErr, keyErr}}}
	c := NewClient(fb, WithRetryPolicy(fastRetry))

	_, err := c.HasEncryptionKey(context.Background())

	assert.Same(t, keyErr, err)
	assert.Equal(t, 1, fb.count(CmdHasEncryptionKey))
}

func TestClient_RetryGivesUp(t *testing.T) {
	ioErr := apperr.New(apperr.CategoryIO, apperr.SeverityError, "read failed", "", nil)
	fb := &fakeBackend{errs: map[string][]error{CmdShouldRunOnboarding: {ioErr, ioErr, ioErr, ioErr, ioErr}}}
	c := NewClient(fb, WithRetryPolicy(fastRetry))

	_, err := c.ShouldRunOnboarding(context.Background())

	assert.Equal(t, ioErr, err)
	assert.Equal(t, 4, fb.count(CmdShouldRunOnboarding))
}

func TestClient_MutationsNotRetried(t *testing.T) {
	connErr := apperr.New(apperr.CategoryConnection, apperr.SeverityError, "down", "", nil)
	fb := &fakeBackend{
		errs: map[string][]error{CmdCreateProject: {connErr}},
	}
	c := NewClient(fb, WithRetryPolicy(fastRetry))

	_, err := c.CreateProject(context.Background(), model.CreateProjectParams{Name: "x", UserID: "u"})

	assert.Error(t, err)
	assert.Equal(t, 1, fb.count(CmdCreateProject))
}

func TestClient_CreateProjectAndConnectionArgs(t *testing.T) {
	fb := &fakeBackend{results: map[string]any{CmdCreateProject: 42}}
	c := NewClient(fb)

	id, err := c.CreateProject(context.Background(), model.CreateProjectParams{Name: "x", UserID: "u"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	var tester connection.Tester = c.Tester()
	require.NoError(t, tester.Test(context.Background(), connection.Params{DBType: connection.SQLite, SQLiteMode: connection.SQLiteFile, Database: "a.db"}))

	args := fb.calls[len(fb.calls)-1].args.(map[string]any)
	assert.Equal(t, "sqlite", args["dbType"])
	assert.Equal(t, connection.SQLiteFile, args["sqliteType"])
	assert.Equal(t, "a.db", args["database"])
}

func TestClient_LoadState(t *testing.T) {
	fb := &fakeBackend{results: map[string]any{
		CmdGetUserProjects:     []model.Project{{ID: 3}},
		CmdShouldRunOnboarding: true,
	}}

	st, err := NewClient(fb).LoadState(context.Background(), "u1")

	require.NoError(t, err)
	assert.True(t, st.OnboardingRequired)
	require.Len(t, st.Projects, 1)
	assert.Equal(t, int64(3), st.Projects[0].ID)
}

func TestClient_LoadStateFailureCancelsSibling(t *testing.T) {
	var cancelled atomic.Bool
	inv := FuncInvoker(func(ctx context.Context, command string, args, out any) error {
		if command == CmdShouldRunOnboarding {
			return apperr.New(apperr.CategoryAuth, apperr.SeverityError, "expired", "", nil)
		}
		select {
		case <-ctx.Done():
			cancelled.Store(true)
			return ctx.Err()
		case <-time.After(time.Second):
			return nil
		}
	})

	_, err := NewClient(inv, WithRetryPolicy(NoRetry)).LoadState(context.Background(), "u1")

	require.Error(t, err)
	assert.Equal(t, apperr.CategoryAuth, apperr.Normalize(err).Category)
	assert.True(t, cancelled.Load())
}

func TestClient_ContextCancelStopsRetry(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	inv := FuncInvoker(func(context.Context, string, any, any) error {
		cancel()
		return context.Canceled
	})

	_, err := NewClient(inv, WithRetryPolicy(fastRetry)).HasEncryptionKey(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}
