// Ascent - Competitive Programming Practice Recommender
// Copyright 2026 Raunak B. (raunakbh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raunakbh/ascent

package judge

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/raunakbh/ascent/internal/config"
	"github.com/raunakbh/ascent/internal/logging"
	"github.com/raunakbh/ascent/internal/metrics"
)

// BreakerClient wraps Client with the circuit breaker pattern to prevent
// cascading failures when the judge API is unavailable or slow.
//
// DETERMINISM NOTE: The circuit breaker uses real time (via sony/gobreaker)
// for its interval and timeout calculations. This is intentional for
// production resilience: the timing determines when to recover from failures,
// not data integrity. For unit tests, test the wrapped client directly.
type BreakerClient struct {
	client API
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
}

// NewBreakerClient creates a judge client with circuit breaker protection.
// Circuit breaker configuration:
//   - Max 3 concurrent requests in half-open state
//   - 1 minute measurement window
//   - 2 minute timeout before attempting recovery
//   - Opens after 60% failure rate with minimum 10 requests
func NewBreakerClient(cfg *config.JudgeConfig) *BreakerClient {
	return newBreakerClient(NewClient(cfg))
}

func newBreakerClient(client API) *BreakerClient {
	cbName := "judge-api"

	metrics.JudgeBreakerState.Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		// Opens when failure rate >= 60% with minimum 10 requests
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6

			if shouldTrip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}

			return shouldTrip
		},

		// Unknown handles are judge answers, not judge failures
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrUserNotFound)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("from", stateToString(from)).
				Str("to", stateToString(to)).
				Msg("[CIRCUIT BREAKER] State transition")

			metrics.JudgeBreakerState.Set(stateToFloat(to))
		},
	})

	return &BreakerClient{
		client: client,
		cb:     cb,
		name:   cbName,
	}
}

// execute wraps a judge API call with circuit breaker protection.
// Rejections by an open breaker surface as ErrUpstreamUnavailable so callers
// handle them the same way as an unreachable judge.
func (bc *BreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := bc.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
			return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
		}
		return nil, err
	}
	return result, nil
}

// castResult safely type-casts the circuit breaker result with error checking.
func castResult[T any](result interface{}, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// stateToFloat converts circuit breaker state to a numeric value for metrics.
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to a string for logging.
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Ping verifies connectivity to the judge API with circuit breaker protection.
func (bc *BreakerClient) Ping(ctx context.Context) error {
	_, err := bc.execute(func() (interface{}, error) {
		return nil, bc.client.Ping(ctx)
	})
	return err
}

// ProblemSet retrieves the full problem set with circuit breaker protection.
func (bc *BreakerClient) ProblemSet(ctx context.Context) (*ProblemSetResult, error) {
	return castResult[*ProblemSetResult](bc.execute(func() (interface{}, error) {
		return bc.client.ProblemSet(ctx)
	}))
}

// UserInfo retrieves a user profile with circuit breaker protection.
func (bc *BreakerClient) UserInfo(ctx context.Context, handle string) (*User, error) {
	return castResult[*User](bc.execute(func() (interface{}, error) {
		return bc.client.UserInfo(ctx, handle)
	}))
}

// UserStatus retrieves user submissions with circuit breaker protection.
func (bc *BreakerClient) UserStatus(ctx context.Context, handle string, from, count int) ([]Submission, error) {
	return castResult[[]Submission](bc.execute(func() (interface{}, error) {
		return bc.client.UserStatus(ctx, handle, from, count)
	}))
}

// UserRating retrieves contest history with circuit breaker protection.
func (bc *BreakerClient) UserRating(ctx context.Context, handle string) ([]RatingChange, error) {
	return castResult[[]RatingChange](bc.execute(func() (interface{}, error) {
		return bc.client.UserRating(ctx, handle)
	}))
}
