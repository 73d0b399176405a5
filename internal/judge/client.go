// Ascent - Competitive Programming Practice Recommender
// Copyright 2026 Raunak B. (raunakbh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raunakbh/ascent

/*
client.go - Core Judge API Client

This file provides the core Client struct and HTTP communication layer for
interacting with the judge's REST API (Codeforces-shaped: /problemset.problems,
/user.info, /user.status, /user.rating).

Client Features:
  - HTTP client with configurable timeout
  - Client-side rate limiting (x/time/rate token bucket)
  - Automatic HTTP 429 handling with exponential backoff
  - JSON envelope parsing with status validation
  - Context support for cancellation and timeouts

Resilience Mechanisms:
  - Rate Limiting: Exponential backoff (1s, 2s, 4s, 8s, 16s) on HTTP 429
  - Retries: Max 5 attempts for rate-limited requests
  - Context: All methods accept context for cancellation
  - Circuit breaker protection lives in breaker.go (BreakerClient)
*/

//nolint:staticcheck // File documentation, not package doc
package judge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/raunakbh/ascent/internal/config"
	"github.com/raunakbh/ascent/internal/metrics"
)

// maxErrorBodySize limits the maximum amount of response body read for error
// reporting. This prevents unbounded memory allocation when reading large
// error responses.
const maxErrorBodySize = 64 * 1024 // 64KB

// readBodyForError reads the response body for error reporting (max 64KB).
// Returns the body content or a placeholder message if reading fails.
func readBodyForError(r io.Reader) []byte {
	limitedReader := io.LimitReader(r, maxErrorBodySize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// API defines the judge operations the rest of the service depends on.
//
// It is implemented by Client for direct access and by BreakerClient for
// circuit-breaker-protected access; tests substitute mocks.
//
// All methods follow a consistent pattern:
//   - Accept context.Context as first parameter for cancellation/timeout support
//   - Return typed payload structs from models.go
//   - Return sentinel errors (ErrUserNotFound, ErrMalformedPayload,
//     ErrUpstreamUnavailable) for conditions callers branch on
//
// Thread Safety: All methods are safe for concurrent use.
type API interface {
	Ping(ctx context.Context) error
	ProblemSet(ctx context.Context) (*ProblemSetResult, error)
	UserInfo(ctx context.Context, handle string) (*User, error)
	UserStatus(ctx context.Context, handle string, from, count int) ([]Submission, error)
	UserRating(ctx context.Context, handle string) ([]RatingChange, error)
}

// Client handles communication with the judge HTTP API.
//
// Features:
//   - Configurable request timeout
//   - Token-bucket rate limiting ahead of every request
//   - Automatic retry on rate limiting (up to 5 retries)
//   - Exponential backoff (1s, 2s, 4s, 8s, 16s delays)
//   - Envelope parsing with typed payload structs
//
// Thread Safety: Safe for concurrent use. Each request creates its own HTTP
// request; the shared limiter serializes bursts.
type Client struct {
	baseURL        string
	client         *http.Client
	limiter        *rate.Limiter
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewClient creates a new judge API client with the provided configuration.
func NewClient(cfg *config.JudgeConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter:        rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		maxRetries:     5,
		retryBaseDelay: 1 * time.Second,
	}
}

// doRequestWithRateLimit performs an HTTP request with client-side rate
// limiting and automatic HTTP 429 handling. Implements exponential backoff
// for 429 responses (1s, 2s, 4s, 8s, 16s). The context is used for
// cancellation during limiter and backoff waits.
func (c *Client) doRequestWithRateLimit(ctx context.Context, reqURL string) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		_ = resp.Body.Close() // will retry anyway

		if attempt == c.maxRetries {
			lastErr = fmt.Errorf("%w: rate limit exceeded after %d retries (HTTP 429)", ErrUpstreamUnavailable, c.maxRetries)
			break
		}

		delay := c.retryBaseDelay * time.Duration(1<<uint(attempt))

		// Honor Retry-After (RFC 6585) when the judge provides it
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if seconds, err := strconv.Atoi(retryAfter); err == nil {
				delay = time.Duration(seconds) * time.Second
			}
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, lastErr
}

// makeRequest is a generic helper that handles common judge API request
// boilerplate. It builds the method URL, makes the request, checks HTTP
// status, decodes the response envelope, validates status == "OK", and
// unmarshals the result payload.
//
// Parameters:
//   - ctx: Context for cancellation and timeout support
//   - method: Judge API method name (e.g., "problemset.problems")
//   - params: URL parameters for the method
//   - result: Pointer to payload struct populated from envelope.result;
//     nil when the caller only cares about success
//
// Returns ErrMalformedPayload if the body does not parse, and an apiError
// wrapping the judge's comment when status != "OK".
func (c *Client) makeRequest(ctx context.Context, method string, params url.Values, result interface{}) error {
	reqURL := fmt.Sprintf("%s/%s", c.baseURL, method)
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	start := time.Now()
	resp, err := c.doRequestWithRateLimit(ctx, reqURL)
	if err != nil {
		metrics.RecordJudgeRequest(method, "transport_error", time.Since(start))
		return fmt.Errorf("failed to make %s request: %w", method, err)
	}
	defer resp.Body.Close()

	// The judge answers 400 with a well-formed FAILED envelope for bad
	// arguments (unknown handles included), so only reject other statuses.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusBadRequest {
		body := readBodyForError(resp.Body)
		metrics.RecordJudgeRequest(method, "http_error", time.Since(start))
		return fmt.Errorf("%w: %s request failed with status %d: %s",
			ErrUpstreamUnavailable, method, resp.StatusCode, string(body))
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		metrics.RecordJudgeRequest(method, "decode_error", time.Since(start))
		return fmt.Errorf("%w: failed to decode %s response: %w", ErrMalformedPayload, method, err)
	}

	if env.Status != "OK" {
		metrics.RecordJudgeRequest(method, "failed", time.Since(start))
		return &apiError{Method: method, Comment: env.Comment}
	}

	if result != nil {
		if err := json.Unmarshal(env.Result, result); err != nil {
			metrics.RecordJudgeRequest(method, "decode_error", time.Since(start))
			return fmt.Errorf("%w: failed to decode %s result: %w", ErrMalformedPayload, method, err)
		}
	}

	metrics.RecordJudgeRequest(method, "ok", time.Since(start))
	return nil
}

// apiError is a FAILED envelope from the judge, carrying its comment.
type apiError struct {
	Method  string
	Comment string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%s request failed: %s", e.Method, e.Comment)
}

// asUserError translates a FAILED envelope on a user-scoped method into
// ErrUserNotFound. The judge reports unknown handles as FAILED with a
// comment rather than a distinct status, and a FAILED envelope on these
// methods has no other cause worth distinguishing.
func asUserError(err error) error {
	if err == nil {
		return nil
	}
	var ae *apiError
	if errors.As(err, &ae) {
		return fmt.Errorf("%w: %s", ErrUserNotFound, ae.Comment)
	}
	return err
}

// Ping verifies connectivity to the judge API using the cheapest user-scoped
// method. The context is used for cancellation and timeout support.
func (c *Client) Ping(ctx context.Context) error {
	params := url.Values{}
	params.Set("handles", "MikeMirzayanov")
	return c.makeRequest(ctx, "user.info", params, nil)
}

// ProblemSet retrieves the full problem set with per-problem statistics.
func (c *Client) ProblemSet(ctx context.Context) (*ProblemSetResult, error) {
	var result ProblemSetResult
	if err := c.makeRequest(ctx, "problemset.problems", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UserInfo retrieves the public profile for a handle.
// Returns ErrUserNotFound when the judge rejects the handle.
func (c *Client) UserInfo(ctx context.Context, handle string) (*User, error) {
	params := url.Values{}
	params.Set("handles", handle)

	var result []User
	if err := c.makeRequest(ctx, "user.info", params, &result); err != nil {
		return nil, asUserError(err)
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("%w: empty user.info result for %q", ErrMalformedPayload, handle)
	}
	return &result[0], nil
}

// UserStatus retrieves submissions for a handle, most recent first.
// Pass from <= 0 and count <= 0 to fetch the full history.
// Returns ErrUserNotFound when the judge rejects the handle.
func (c *Client) UserStatus(ctx context.Context, handle string, from, count int) ([]Submission, error) {
	params := url.Values{}
	params.Set("handle", handle)
	if from > 0 {
		params.Set("from", strconv.Itoa(from))
	}
	if count > 0 {
		params.Set("count", strconv.Itoa(count))
	}

	var result []Submission
	if err := c.makeRequest(ctx, "user.status", params, &result); err != nil {
		return nil, asUserError(err)
	}
	return result, nil
}

// UserRating retrieves the rated contest history for a handle in
// chronological order. Unrated users yield an empty slice.
// Returns ErrUserNotFound when the judge rejects the handle.
func (c *Client) UserRating(ctx context.Context, handle string) ([]RatingChange, error) {
	params := url.Values{}
	params.Set("handle", handle)

	var result []RatingChange
	if err := c.makeRequest(ctx, "user.rating", params, &result); err != nil {
		return nil, asUserError(err)
	}
	return result, nil
}
