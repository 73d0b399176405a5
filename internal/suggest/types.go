// Ascent - Competitive Programming Practice Recommender
// Copyright 2026 Raunak B. (raunakbh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raunakbh/ascent

package suggest

// Practice time estimates in minutes, by bucket.
const (
	PracticeTimeEasy   = 30
	PracticeTimeMedium = 45
	PracticeTimeHard   = 60
)

// MaxPastPerBucket caps each of the past.{easy,medium,hard} lists.
const MaxPastPerBucket = 3

// Request carries the caller's per-bucket counts and optional rating window.
// Negative counts are treated as zero; counts above what is available are
// clamped. Each window bound defaults independently from the user's rounded
// rating when not supplied.
type Request struct {
	Easy   int
	Medium int
	Hard   int

	Low     int
	High    int
	HasLow  bool
	HasHigh bool
}

// ScoredProblem is a catalog problem annotated for presentation.
type ScoredProblem struct {
	ContestID    int      `json:"contestId"`
	Index        string   `json:"index"`
	Name         string   `json:"name"`
	Tags         []string `json:"tags"`
	Rating       int      `json:"rating"`
	SolvedBy     int      `json:"solvedBy"`
	Score        float64  `json:"score"`
	PracticeTime int      `json:"practiceTime"`
	Solved       bool     `json:"solved"`
}

// PastBuckets groups already-attempted contests' problems by difficulty.
type PastBuckets struct {
	Easy   []ScoredProblem `json:"easy"`
	Medium []ScoredProblem `json:"medium"`
	Hard   []ScoredProblem `json:"hard"`
}

// ProblemData is the bucketed suggestion payload.
type ProblemData struct {
	Easy    []ScoredProblem `json:"easy"`
	Medium  []ScoredProblem `json:"medium"`
	Hard    []ScoredProblem `json:"hard"`
	Upsolve []ScoredProblem `json:"upsolve"`
	Past    PastBuckets     `json:"past"`
}

// Result is the full suggestion response for one user.
type Result struct {
	RatingLow   int         `json:"ratingLow"`
	RatingHigh  int         `json:"ratingHigh"`
	ProblemData ProblemData `json:"problemData"`
}
