// Package jobsapi talks to the Jobby REST API. Request builders return
// fetch.RequestFunc values so that every call runs through a fetch
// state machine; decoders turn 2xx bodies into domain values.
package jobsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/project-tktt/jobby/internal/domain"
	"github.com/project-tktt/jobby/internal/fetch"
	"github.com/project-tktt/jobby/internal/filter"
	"github.com/project-tktt/jobby/internal/session"
)

const (
	DefaultBaseURL   = "https://apis.ccbp.in"
	DefaultUserAgent = "jobby/1.0"
	DefaultTimeout   = 15 * time.Second
)

// Config for the API client
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Client builds authenticated requests against the API
type Client struct {
	client    *http.Client
	baseURL   string
	userAgent string
	store     session.Store
	logger    *zap.Logger
}

// NewClient creates a new API client. The session store is read on
// every request so a login or logout takes effect immediately.
func NewClient(cfg Config, store session.Store, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		client:    &http.Client{Timeout: cfg.Timeout},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		store:     store,
		logger:    logger,
	}
}

// JobsQuery encodes a filter snapshot. search is always present;
// employment_type and minimum_package only when selected.
func JobsQuery(st filter.State) url.Values {
	q := url.Values{}
	if len(st.EmploymentTypes) > 0 {
		ids := make([]string, len(st.EmploymentTypes))
		for i, t := range st.EmploymentTypes {
			ids[i] = string(t)
		}
		q.Set("employment_type", strings.Join(ids, ","))
	}
	if st.SalaryRange != domain.SalaryAny {
		q.Set("minimum_package", string(st.SalaryRange))
	}
	q.Set("search", st.SearchText)
	return q
}

// JobsRequest fetches the job list for a filter snapshot
func (c *Client) JobsRequest(st filter.State) fetch.RequestFunc {
	return func(ctx context.Context) (*http.Response, error) {
		return c.do(ctx, http.MethodGet, "/jobs", JobsQuery(st), nil, true)
	}
}

// JobRequest fetches one job's detail and its similar jobs
func (c *Client) JobRequest(id string) fetch.RequestFunc {
	return func(ctx context.Context) (*http.Response, error) {
		return c.do(ctx, http.MethodGet, "/jobs/"+url.PathEscape(id), nil, nil, true)
	}
}

// ProfileRequest fetches the signed-in user's profile
func (c *Client) ProfileRequest() fetch.RequestFunc {
	return func(ctx context.Context) (*http.Response, error) {
		return c.do(ctx, http.MethodGet, "/profile", nil, nil, true)
	}
}

// LoginRequest exchanges credentials for a token. It never carries a
// bearer header.
func (c *Client) LoginRequest(creds Credentials) fetch.RequestFunc {
	return func(ctx context.Context) (*http.Response, error) {
		body, err := json.Marshal(creds)
		if err != nil {
			return nil, fmt.Errorf("encode credentials: %w", err)
		}
		return c.do(ctx, http.MethodPost, "/login", nil, body, false)
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte, authed bool) (*http.Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	c.setHeaders(req, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed && c.store != nil {
		if s := session.Current(ctx, c.store, c.logger); s.Authenticated() {
			req.Header.Set("Authorization", "Bearer "+s.Token)
		}
	}

	log := c.logger.With(
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("path", path),
	)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		log.Debug("request error", zap.Duration("duration", time.Since(start)), zap.Error(err))
		return nil, fmt.Errorf("do request: %w", err)
	}
	log.Debug("request done",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))
	return resp, nil
}

func (c *Client) setHeaders(req *http.Request, requestID string) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", requestID)
}
