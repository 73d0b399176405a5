// Ascent - Competitive Programming Practice Recommender
// Copyright 2026 Raunak B. (raunakbh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raunakbh/ascent

// Package profile resolves a judge handle into an in-memory session that the
// recommendation and analysis engines consume. A session bundles the user's
// public profile, their full submission history collapsed into lookup sets,
// and the locally stored skip and snooze state.
package profile

import (
	"context"
	"time"

	"github.com/raunakbh/ascent/internal/catalog"
	"github.com/raunakbh/ascent/internal/judge"
	"github.com/raunakbh/ascent/internal/logging"
)

// DefaultMaxRating is assumed for users the judge reports as unrated.
const DefaultMaxRating = 1000

// Store is the slice of persistence the resolver needs: locally recorded
// skips and snoozes, plus the activity timestamp that drives inactive-user
// purging.
type Store interface {
	SkippedProblems(ctx context.Context, handle string) ([]string, error)
	SnoozedProblems(ctx context.Context, handle string) ([]string, error)
	TouchUser(ctx context.Context, handle string) error
}

// Session is everything known about a user at resolution time. It is built
// once per request and passed by pointer; nothing mutates it afterwards.
type Session struct {
	Handle       string
	FirstName    string
	LastName     string
	Rank         string
	Avatar       string
	Organization string

	// MaxRating is the user's peak rating, or DefaultMaxRating when the
	// judge reports none.
	MaxRating int

	// SlabIndex is the rating band MaxRating falls into.
	SlabIndex int

	// Solvability estimates how approachable a problem must be for this
	// user, derived from the difficulty and popularity of their accepted
	// solutions.
	Solvability float64

	// Accepted holds problem ids the user has solved, plus ids they asked
	// to skip. Both are excluded from suggestions the same way.
	Accepted map[string]struct{}

	// Snoozed holds problem ids temporarily hidden from upsolve suggestions.
	Snoozed map[string]struct{}

	// TouchedContests holds every contest the user has submitted in,
	// whether or not the submission was accepted.
	TouchedContests map[int]struct{}

	// LastContestID is the user's most recent rated contest, or 0 for
	// users with no rated participation.
	LastContestID int

	// Submissions is the full history, newest first, as the judge returns it.
	Submissions []judge.Submission
}

// Solved reports whether the user has an accepted (or skipped) problem id.
func (s *Session) Solved(id string) bool {
	_, ok := s.Accepted[id]
	return ok
}

// IsSnoozed reports whether the problem id is currently snoozed.
func (s *Session) IsSnoozed(id string) bool {
	_, ok := s.Snoozed[id]
	return ok
}

// Resolver builds sessions from the judge API and the local store.
type Resolver struct {
	client judge.API
	store  Store
}

// NewResolver creates a session resolver.
func NewResolver(client judge.API, store Store) *Resolver {
	return &Resolver{client: client, store: store}
}

// Resolve fetches the user's profile, full submission history and rating
// changes, merges in locally stored skips and snoozes, and records the
// access for inactivity tracking. The snapshot is used to price accepted
// problems for the solvability estimate; accepted problems absent from the
// catalog are ignored there.
//
// Judge errors propagate unchanged so callers can distinguish an unknown
// handle from an unavailable upstream.
func (r *Resolver) Resolve(ctx context.Context, handle string, snap *catalog.Snapshot) (*Session, error) {
	start := time.Now()

	user, err := r.client.UserInfo(ctx, handle)
	if err != nil {
		return nil, err
	}

	subs, err := r.client.UserStatus(ctx, handle, 0, 0)
	if err != nil {
		return nil, err
	}

	changes, err := r.client.UserRating(ctx, handle)
	if err != nil {
		return nil, err
	}

	maxRating := DefaultMaxRating
	if user.MaxRating != nil {
		maxRating = *user.MaxRating
	}

	sess := &Session{
		Handle:          user.Handle,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Rank:            user.Rank,
		Avatar:          user.Avatar,
		Organization:    user.Organization,
		MaxRating:       maxRating,
		SlabIndex:       catalog.SlabIndex(maxRating),
		Accepted:        make(map[string]struct{}),
		Snoozed:         make(map[string]struct{}),
		TouchedContests: make(map[int]struct{}),
		Submissions:     subs,
	}

	// Solvability starts from a generous baseline, accumulates over every
	// accepted submission the catalog can price (resubmitted solves count
	// again), and is averaged over the distinct accepted problems. Users
	// with no accepted submissions keep the baseline.
	solvability := 10000.0
	for _, sub := range subs {
		if sub.ContestID != 0 {
			sess.TouchedContests[sub.ContestID] = struct{}{}
		}
		if sub.Verdict != judge.VerdictOK {
			continue
		}
		id := sub.Problem.ID()
		sess.Accepted[id] = struct{}{}
		prob, ok := snap.Problems[id]
		if !ok {
			continue
		}
		solvability += float64(prob.SolvedBy) * float64(prob.Rating) / 4000.0
	}
	if len(sess.Accepted) > 0 {
		solvability /= float64(len(sess.Accepted))
	}
	sess.Solvability = solvability

	if len(changes) > 0 {
		sess.LastContestID = changes[len(changes)-1].ContestID
	}

	skipped, err := r.store.SkippedProblems(ctx, handle)
	if err != nil {
		return nil, err
	}
	for _, id := range skipped {
		sess.Accepted[id] = struct{}{}
	}

	snoozed, err := r.store.SnoozedProblems(ctx, handle)
	if err != nil {
		return nil, err
	}
	for _, id := range snoozed {
		sess.Snoozed[id] = struct{}{}
	}

	if err := r.store.TouchUser(ctx, handle); err != nil {
		return nil, err
	}

	logging.Debug().
		Str("handle", handle).
		Int("submissions", len(subs)).
		Int("accepted", len(sess.Accepted)).
		Int("max_rating", maxRating).
		Dur("took", time.Since(start)).
		Msg("Session resolved")

	return sess, nil
}
