package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/ghlookup/internal/models"
	"github.com/vytor/ghlookup/internal/services"
)

func TestHome_RendersSearchForm(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.get(t, "/")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `placeholder="Search"`)
	assert.Contains(t, body, `id="search-button"`)
	assert.Contains(t, body, `data-mode="live"`)
	assert.NotContains(t, body, `class="profile"`)
	assert.NotContains(t, body, "This user is not available.")
	assert.Equal(t, int32(0), env.ghCalls.Load())
}

func TestHome_ModeOverride(t *testing.T) {
	env := newTestEnv(t)

	_, body := env.get(t, "/?mode=submit")
	assert.Contains(t, body, `data-mode="submit"`)

	_, body = env.get(t, "/?mode=bogus")
	assert.Contains(t, body, `data-mode="live"`)
}

func TestHome_FormLookupShowsProfile(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.get(t, "/?username=octocat")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "@octocat")
	assert.Contains(t, body, "The Octocat")
	assert.Contains(t, body, "Joined Tue Jan 25 2011")
	assert.Contains(t, body, `<dd class="repos">8</dd>`)
	assert.Contains(t, body, `<dd class="followers">9000</dd>`)
	assert.Contains(t, body, `<dd class="following">9</dd>`)
	assert.Contains(t, body, `<li class="twitter">Not Available</li>`)
	assert.Contains(t, body, `<li class="location">San Francisco</li>`)
	assert.NotContains(t, body, "This user is not available.")
}

func TestHome_FormLookupUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.get(t, "/?username=this-user-should-not-exist-xyz")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `<div class="error">This user is not available.</div>`)
	assert.NotContains(t, body, `class="profile"`)
	assert.NotContains(t, body, "@this-user")
}

func TestHome_BlankUsernameDoesNotFetch(t *testing.T) {
	env := newTestEnv(t)

	env.get(t, "/?username=%20%20")

	assert.Equal(t, int32(0), env.ghCalls.Load())
}

func TestGetUser_JSON(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.get(t, "/api/users/octocat")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var profile map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &profile))
	assert.Equal(t, "octocat", profile["login"])
	assert.Nil(t, profile["twitter_username"])
}

func TestGetUser_NotFound(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.get(t, "/api/users/ghost-xyz")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var payload struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	assert.Equal(t, "LOOKUP_FAILED", payload.Error.Code)
	assert.Equal(t, "This user is not available.", payload.Error.Message)
}

func TestHistory_RecordsLookups(t *testing.T) {
	env := newTestEnv(t)

	env.get(t, "/api/users/octocat")
	env.get(t, "/?username=ghost-xyz")

	var page services.HistoryPage
	require.Eventually(t, func() bool {
		_, body := env.get(t, "/api/history")
		return json.Unmarshal([]byte(body), &page) == nil && page.Total == 2
	}, 2*time.Second, 10*time.Millisecond)

	require.Len(t, page.Lookups, 2)
	byName := map[string]bool{}
	triggers := map[string]string{}
	for _, l := range page.Lookups {
		byName[l.Username] = l.Found
		triggers[l.Username] = l.Trigger
	}
	assert.True(t, byName["octocat"])
	assert.False(t, byName["ghost-xyz"])
	assert.Equal(t, "api", triggers["octocat"])
	assert.Equal(t, "form", triggers["ghost-xyz"])

	_, body := env.get(t, "/api/history?found=false")
	var missed services.HistoryPage
	require.NoError(t, json.Unmarshal([]byte(body), &missed))
	assert.Equal(t, 1, missed.Total)
	assert.Equal(t, 50, missed.Limit)
}

func TestHistory_GetEntry(t *testing.T) {
	env := newTestEnv(t)

	env.get(t, "/api/users/octocat")

	var page services.HistoryPage
	require.Eventually(t, func() bool {
		_, body := env.get(t, "/api/history")
		return json.Unmarshal([]byte(body), &page) == nil && page.Total == 1
	}, 2*time.Second, 10*time.Millisecond)
	id := page.Lookups[0].ID

	resp, body := env.get(t, fmt.Sprintf("/api/history/%d", id))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var lookup models.Lookup
	require.NoError(t, json.Unmarshal([]byte(body), &lookup))
	assert.Equal(t, id, lookup.ID)
	assert.Equal(t, "octocat", lookup.Username)
	assert.True(t, lookup.Found)

	resp, _ = env.get(t, fmt.Sprintf("/api/history/%d", id+100))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	for _, bad := range []string{"abc", "0", "-2"} {
		resp, _ = env.get(t, "/api/history/"+bad)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, bad)
	}
}

func TestHistory_BadParams(t *testing.T) {
	env := newTestEnv(t)

	for _, q := range []string{"?found=maybe", "?limit=-1", "?offset=x"} {
		resp, _ := env.get(t, "/api/history"+q)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
	}
}

func TestAPI_RateLimited(t *testing.T) {
	env := newTestEnv(t, withRateLimit(0.001, 1))

	first, _ := env.get(t, "/api/history")
	second, body := env.get(t, "/api/history")

	assert.Equal(t, http.StatusOK, first.StatusCode)
	assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)
	assert.Contains(t, body, "RATE_LIMITED")

	page, _ := env.get(t, "/")
	assert.Equal(t, http.StatusOK, page.StatusCode, "pages are not rate limited")
}

func TestThemeCSS(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.get(t, "/static/theme.css")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/css")
	assert.Contains(t, body, "--color-bg: #2B193D;")
	assert.Contains(t, body, "var(--color-300)")
}

func TestHealthAndReady(t *testing.T) {
	env := newTestEnv(t, withPinger(pingerFunc(func(context.Context) error { return nil })))

	resp, _ := env.get(t, "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = env.get(t, "/readyz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestReady_DatabaseDown(t *testing.T) {
	env := newTestEnv(t, withPinger(pingerFunc(func(context.Context) error { return errDown })))

	resp, body := env.get(t, "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "Database unavailable", body)
}

func TestHome_EmptyPageIsNotMarkedRendered(t *testing.T) {
	env := newTestEnv(t)

	_, body := env.get(t, "/")

	assert.Contains(t, body, `data-rendered=""`)
	assert.Contains(t, body, `document.addEventListener("keyup"`)
}
