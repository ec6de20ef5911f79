package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/vytor/ghlookup/internal/errors"
	"github.com/vytor/ghlookup/internal/logger"
	"github.com/vytor/ghlookup/internal/models"
)

const (
	DefaultBaseURL = "https://api.github.com"
	apiVersion     = "2022-11-28"
	userAgent      = "ghlookup"
	maxBodyBytes   = 1 << 20
)

// HTTPClient is the subset of *http.Client the client needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds the client settings.
type Config struct {
	BaseURL string
	Token   string
	// RPS bounds outbound requests per second; zero means unlimited.
	RPS int
	// Timeout applies when no HTTPClient is supplied.
	Timeout time.Duration
}

type Client struct {
	baseURL    string
	token      string
	httpClient HTTPClient
	limiter    *rate.Limiter
}

// New creates a client. httpClient may be nil.
func New(cfg Config, httpClient HTTPClient) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RPS), cfg.RPS)
	}

	return &Client{
		baseURL:    baseURL,
		token:      cfg.Token,
		httpClient: httpClient,
		limiter:    limiter,
	}
}

// FetchUser retrieves the profile for username. Every failure, including an
// unknown user, a transport error and an undecodable body, comes back as a
// LOOKUP_FAILED *errors.AppError.
func (c *Client) FetchUser(ctx context.Context, username string) (*models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("github").WithField("username", username)

	if strings.TrimSpace(username) == "" {
		return nil, errors.NewLookupFailedError(username, fmt.Errorf("empty username"))
	}

	endpoint := fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(username))
	log.Debug("fetching profile from: %s", endpoint)

	if err := c.limiter.Wait(ctx); err != nil {
		log.Warn("rate limiter wait aborted: %v", err)
		return nil, errors.NewLookupFailedError(username, err)
	}

	start := time.Now()
	var profile models.Profile
	status, err := c.doRequest(ctx, endpoint, &profile)
	if err != nil {
		log.Warn("profile lookup failed after %v: status=%d err=%v", time.Since(start), status, err)
		return nil, errors.NewLookupFailedError(username, err)
	}

	if profile.Login == "" {
		log.Warn("profile response missing login")
		return nil, errors.NewLookupFailedError(username, fmt.Errorf("malformed profile: missing login"))
	}

	log.Info("fetched profile %s in %v", profile.Login, time.Since(start))
	return &profile, nil
}

// doRequest performs a GET and decodes a 200 JSON body into result.
func (c *Client) doRequest(ctx context.Context, endpoint string, result any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return resp.StatusCode, fmt.Errorf("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(result); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
	}

	return resp.StatusCode, nil
}
