// Ascent - Competitive Programming Practice Recommender
// Copyright 2026 Raunak B. (raunakbh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raunakbh/ascent

// Package suggest scores and buckets unsolved catalog problems for a user.
//
// A problem inside the user's rating window is scored on three components,
// proximity to the user's rounded rating, rarity of its tags in the user's
// rating band, and popularity relative to the window's most-solved problem,
// then classified as easy, medium or hard against the user's solvability
// baseline. Problems from contests the user already entered land in the
// "past" lists, and unsolved problems from the user's latest rated contest
// form the upsolve list.
package suggest

import (
	"math"
	"sort"

	"github.com/raunakbh/ascent/internal/catalog"
	"github.com/raunakbh/ascent/internal/profile"
)

// Engine computes suggestion results. It is stateless and safe for
// concurrent use.
type Engine struct{}

// NewEngine creates a suggestion engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Suggest buckets the snapshot's problems for the given session. The
// snapshot is read only, never retained.
func (e *Engine) Suggest(snap *catalog.Snapshot, sess *profile.Session, req Request) *Result {
	r := sess.MaxRating / 100 * 100

	low, high := r-200, r+400
	if req.HasLow {
		low = req.Low
	}
	if req.HasHigh {
		high = req.High
	}

	subMax := 0
	for _, p := range snap.Problems {
		if p.Rating >= low && p.Rating <= high && p.SolvedBy > subMax {
			subMax = p.SolvedBy
		}
	}

	slabLen := len(snap.Slabs[sess.SlabIndex])
	s := sess.Solvability

	// Buckets start non-nil so empty ones serialize as [] rather than null.
	easy := []ScoredProblem{}
	medium := []ScoredProblem{}
	hard := []ScoredProblem{}
	upsolve := []ScoredProblem{}
	past := PastBuckets{
		Easy:   []ScoredProblem{},
		Medium: []ScoredProblem{},
		Hard:   []ScoredProblem{},
	}

	for id, p := range snap.Problems {
		if sess.Solved(id) || sess.IsSnoozed(id) {
			continue
		}

		if sess.LastContestID != 0 && p.ContestID == sess.LastContestID {
			upsolve = append(upsolve, scored(p, 0, PracticeTimeHard))
			continue
		}

		if p.Rating < low || p.Rating > high {
			continue
		}

		score := e.score(snap, sess, p, r, subMax, slabLen)
		solvedBy := float64(p.SolvedBy)

		var bucket *[]ScoredProblem
		var practiceTime int
		switch {
		case p.Rating < r-100 && s*2 < solvedBy && solvedBy < s*4:
			bucket, practiceTime = &easy, PracticeTimeEasy
		case p.Rating > r+200 && solvedBy < s/2:
			bucket, practiceTime = &hard, PracticeTimeHard
		case s/2 <= solvedBy && solvedBy <= s*2 && r-100 <= p.Rating && p.Rating <= r+200:
			bucket, practiceTime = &medium, PracticeTimeMedium
		default:
			continue
		}

		if _, touched := sess.TouchedContests[p.ContestID]; touched {
			switch bucket {
			case &easy:
				bucket = &past.Easy
			case &medium:
				bucket = &past.Medium
			case &hard:
				bucket = &past.Hard
			}
		}

		*bucket = append(*bucket, scored(p, score, practiceTime))
	}

	sortByScore(easy)
	sortByScore(medium)
	sortByScore(hard)
	sortByScore(past.Easy)
	sortByScore(past.Medium)
	sortByScore(past.Hard)
	sort.SliceStable(upsolve, func(i, j int) bool {
		return upsolve[i].SolvedBy > upsolve[j].SolvedBy
	})

	return &Result{
		RatingLow:  low,
		RatingHigh: high,
		ProblemData: ProblemData{
			Easy:    truncate(easy, req.Easy),
			Medium:  truncate(medium, req.Medium),
			Hard:    truncate(hard, req.Hard),
			Upsolve: upsolve,
			Past: PastBuckets{
				Easy:   truncate(past.Easy, MaxPastPerBucket),
				Medium: truncate(past.Medium, MaxPastPerBucket),
				Hard:   truncate(past.Hard, MaxPastPerBucket),
			},
		},
	}
}

// score combines the three components and rounds to two decimals.
func (e *Engine) score(snap *catalog.Snapshot, sess *profile.Session, p catalog.Problem, r, subMax, slabLen int) float64 {
	var proximity float64
	if r > 0 {
		proximity = 100.0 * (1.0 - math.Abs(float64(r-p.Rating))/float64(r))
	}

	var affinity float64
	if len(p.Tags) > 0 && slabLen > 0 {
		rankSum := 0
		for _, tag := range p.Tags {
			if rank := snap.TagRank(sess.SlabIndex, tag); rank > 0 {
				rankSum += rank
			}
		}
		avgRank := float64(rankSum) / float64(len(p.Tags))
		affinity = avgRank * 200.0 / float64(slabLen)
	}

	var popularity float64
	if subMax > 0 {
		popularity = 300.0 * float64(p.SolvedBy) / float64(subMax)
	}

	return math.Round((proximity+affinity+popularity)/6.0*100.0) / 100.0
}

func scored(p catalog.Problem, score float64, practiceTime int) ScoredProblem {
	return ScoredProblem{
		ContestID:    p.ContestID,
		Index:        p.Index,
		Name:         p.Name,
		Tags:         p.Tags,
		Rating:       p.Rating,
		SolvedBy:     p.SolvedBy,
		Score:        score,
		PracticeTime: practiceTime,
	}
}

func sortByScore(problems []ScoredProblem) {
	sort.SliceStable(problems, func(i, j int) bool {
		return problems[i].Score > problems[j].Score
	})
}

// truncate clamps the requested count into [0, len] and shortens the slice.
func truncate(problems []ScoredProblem, count int) []ScoredProblem {
	if count < 0 {
		count = 0
	}
	if count > len(problems) {
		count = len(problems)
	}
	return problems[:count]
}
