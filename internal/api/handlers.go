// Ascent - Competitive Programming Practice Recommender
// Copyright 2026 Raunak B. (raunakbh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raunakbh/ascent

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/raunakbh/ascent/internal/catalog"
	"github.com/raunakbh/ascent/internal/judge"
	"github.com/raunakbh/ascent/internal/logging"
	"github.com/raunakbh/ascent/internal/profile"
	"github.com/raunakbh/ascent/internal/suggest"
	"github.com/raunakbh/ascent/internal/swot"
)

// User-facing error messages. Upstream failures never leak internals.
const (
	msgJudgeDown    = "Judge seems to be down at the moment!"
	msgCatalogBusy  = "Problem catalog is warming up. Please try again shortly!"
	msgUnknownUser  = "Invalid user handle"
	msgGenericError = "Some error occurred! Please try again later!"
)

// PracticeStore is the slice of persistence the handlers write to.
type PracticeStore interface {
	SkipProblem(ctx context.Context, handle, problemID string) error
	SnoozeProblem(ctx context.Context, handle, problemID string) error
}

// Handler serves the recommendation API.
type Handler struct {
	client       judge.API
	probe        *judge.Probe
	cache        *catalog.Cache
	resolver     *profile.Resolver
	engine       *suggest.Engine
	analyzer     *swot.Analyzer
	store        PracticeStore
	verifyWindow int
}

// NewHandler creates the API handler.
func NewHandler(client judge.API, probe *judge.Probe, cache *catalog.Cache, resolver *profile.Resolver, store PracticeStore, verifyWindow int) *Handler {
	return &Handler{
		client:       client,
		probe:        probe,
		cache:        cache,
		resolver:     resolver,
		engine:       suggest.NewEngine(),
		analyzer:     swot.NewAnalyzer(),
		store:        store,
		verifyWindow: verifyWindow,
	}
}

// VerifyResult is the Verify endpoint payload.
type VerifyResult struct {
	Verified bool `json:"verified"`
}

// SwotResult is the Swot endpoint payload.
type SwotResult struct {
	UserRating int                `json:"userRating"`
	UserHandle string             `json:"userHandle"`
	Swot       []swot.TagScore    `json:"swot"`
	Slab       []catalog.TagCount `json:"slab"`
}

// gate fails fast when the judge is unreachable or the catalog has not been
// populated yet. It returns the snapshot to use for the request.
func (h *Handler) gate(rw *ResponseWriter) (*catalog.Snapshot, bool) {
	if !h.probe.Available() {
		rw.ServiceUnavailable(msgJudgeDown)
		return nil, false
	}
	snap := h.cache.Snapshot()
	if snap == nil {
		rw.ServiceUnavailable(msgCatalogBusy)
		return nil, false
	}
	return snap, true
}

// Suggest handles GET /suggest/{handle}/{easy}/{medium}/{hard}.
// Either rating window bound may be overridden via ?low= and ?high=.
func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	snap, ok := h.gate(rw)
	if !ok {
		return
	}

	handle := chi.URLParam(r, "handle")

	req := suggest.Request{}
	var err error
	if req.Easy, err = strconv.Atoi(chi.URLParam(r, "easy")); err != nil {
		rw.BadRequest("easy count must be an integer")
		return
	}
	if req.Medium, err = strconv.Atoi(chi.URLParam(r, "medium")); err != nil {
		rw.BadRequest("medium count must be an integer")
		return
	}
	if req.Hard, err = strconv.Atoi(chi.URLParam(r, "hard")); err != nil {
		rw.BadRequest("hard count must be an integer")
		return
	}

	if lowStr := r.URL.Query().Get("low"); lowStr != "" {
		low, err := strconv.Atoi(lowStr)
		if err != nil {
			rw.BadRequest("low must be an integer")
			return
		}
		req.Low, req.HasLow = low, true
	}
	if highStr := r.URL.Query().Get("high"); highStr != "" {
		high, err := strconv.Atoi(highStr)
		if err != nil {
			rw.BadRequest("high must be an integer")
			return
		}
		req.High, req.HasHigh = high, true
	}

	sess, err := h.resolver.Resolve(r.Context(), handle, snap)
	if err != nil {
		h.judgeError(rw, err)
		return
	}

	rw.Success(h.engine.Suggest(snap, sess, req))
}

// Verify handles GET /verify/{handle}/{contestId}/{index}: reports whether
// the user's recent submissions include an accepted one for that problem.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if !h.probe.Available() {
		rw.ServiceUnavailable(msgJudgeDown)
		return
	}

	handle := chi.URLParam(r, "handle")
	contestID, err := strconv.Atoi(chi.URLParam(r, "contestId"))
	if err != nil {
		rw.BadRequest("contestId must be an integer")
		return
	}
	index := chi.URLParam(r, "index")

	subs, err := h.client.UserStatus(r.Context(), handle, 1, h.verifyWindow)
	if err != nil {
		h.judgeError(rw, err)
		return
	}

	found := false
	for _, sub := range subs {
		if sub.Problem.ContestID == contestID && sub.Problem.Index == index && sub.Verdict == judge.VerdictOK {
			found = true
			break
		}
	}

	rw.Success(VerifyResult{Verified: found})
}

// Swot handles GET /swot/{handle}: the per-tag weakness ranking.
func (h *Handler) Swot(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	snap, ok := h.gate(rw)
	if !ok {
		return
	}

	handle := chi.URLParam(r, "handle")

	sess, err := h.resolver.Resolve(r.Context(), handle, snap)
	if err != nil {
		h.judgeError(rw, err)
		return
	}

	ranking, slab := h.analyzer.Analyze(snap, sess)

	rw.Success(SwotResult{
		UserRating: sess.MaxRating,
		UserHandle: sess.Handle,
		Swot:       ranking,
		Slab:       slab,
	})
}

// Skip handles POST /skip/{handle}/{problemId}.
func (h *Handler) Skip(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	handle := chi.URLParam(r, "handle")
	problemID := chi.URLParam(r, "problemId")

	if err := h.store.SkipProblem(r.Context(), handle, problemID); err != nil {
		logging.Error().Err(err).Str("handle", handle).Msg("Failed to record skip")
		rw.InternalError(msgGenericError)
		return
	}

	rw.Success(nil)
}

// Snooze handles POST /snooze/{handle}/{problemId}.
func (h *Handler) Snooze(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	handle := chi.URLParam(r, "handle")
	problemID := chi.URLParam(r, "problemId")

	if err := h.store.SnoozeProblem(r.Context(), handle, problemID); err != nil {
		logging.Error().Err(err).Str("handle", handle).Msg("Failed to record snooze")
		rw.InternalError(msgGenericError)
		return
	}

	rw.Success(nil)
}

// judgeError maps judge sentinel errors onto HTTP statuses.
func (h *Handler) judgeError(rw *ResponseWriter, err error) {
	switch {
	case errors.Is(err, judge.ErrUserNotFound):
		rw.NotFound(msgUnknownUser)
	case errors.Is(err, judge.ErrUpstreamUnavailable):
		rw.ServiceUnavailable(msgJudgeDown)
	case errors.Is(err, judge.ErrMalformedPayload):
		rw.BadGateway(msgGenericError)
	default:
		rw.InternalError(msgGenericError)
	}
}
