package api_test

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vytor/ghlookup/internal/api"
	"github.com/vytor/ghlookup/internal/github"
	"github.com/vytor/ghlookup/internal/jobs"
	"github.com/vytor/ghlookup/internal/repository/sqlite"
	"github.com/vytor/ghlookup/internal/search"
	"github.com/vytor/ghlookup/internal/services"
	"github.com/vytor/ghlookup/internal/testutil"
	"github.com/vytor/ghlookup/internal/theme"
	"github.com/vytor/ghlookup/internal/worker"
)

const octocatJSON = `{
  "login": "octocat",
  "avatar_url": "https://avatars.githubusercontent.com/u/583231?v=4",
  "name": "The Octocat",
  "company": "@github",
  "location": "San Francisco",
  "bio": null,
  "twitter_username": null,
  "public_repos": 8,
  "followers": 9000,
  "following": 9,
  "created_at": "2011-01-25T18:44:36Z"
}`

// fakeGitHub serves octocat and 404s everyone else.
func fakeGitHub(t *testing.T, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			calls.Add(1)
		}
		if r.URL.Path == "/users/octocat" {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, octocatJSON)
			return
		}
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

type testEnv struct {
	server  *api.Server
	http    *httptest.Server
	ghCalls *atomic.Int32
	pool    *worker.Pool
}

type envOption func(*api.Server)

func withMode(m search.Mode) envOption {
	return func(s *api.Server) { s.Mode = m }
}

func withRateLimit(rps float64, burst int) envOption {
	return func(s *api.Server) { s.RateLimiter = api.NewRateLimiter(rps, burst) }
}

func withPinger(p api.Pinger) envOption {
	return func(s *api.Server) { s.DB = p }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	calls := &atomic.Int32{}
	gh := fakeGitHub(t, calls)
	client := github.New(github.Config{BaseURL: gh.URL}, gh.Client())

	sqlDB := testutil.NewTestDB(t)
	t.Cleanup(func() { sqlDB.Close() })
	repo := sqlite.NewLookupRepository(sqlDB)

	pool := worker.NewPool(1, 16)
	pool.Start(context.Background())
	t.Cleanup(pool.Stop)

	tmpl, err := api.LoadTemplates()
	require.NoError(t, err)

	s := &api.Server{
		LookupService:  services.NewLookupService(client, jobs.NewWorkerQueue(pool, repo)),
		HistoryService: services.NewHistoryService(repo),
		Templates:      tmpl,
		Palette:        theme.Default(),
		Mode:           search.ModeLive,
		Debounce:       100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}

	srv := httptest.NewServer(s.Routes())
	t.Cleanup(srv.Close)
	return &testEnv{server: s, http: srv, ghCalls: calls, pool: pool}
}

func (e *testEnv) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := e.http.Client().Get(e.http.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

var errDown = stderrors.New("database is locked")
