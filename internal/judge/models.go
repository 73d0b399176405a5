// Ascent - Competitive Programming Practice Recommender
// Copyright 2026 Raunak B. (raunakbh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raunakbh/ascent

package judge

import (
	"strconv"

	"github.com/goccy/go-json"
)

// problemID builds the catalog key used throughout the service: the contest
// id concatenated with the problem index, matching the judge's own display
// convention ("1915" + "C" = "1915C").
func problemID(contestID int, index string) string {
	return strconv.Itoa(contestID) + index
}

// Verdict values the recommender cares about. The judge reports many more
// (WRONG_ANSWER, TIME_LIMIT_EXCEEDED, ...) but only these two change behavior.
const (
	VerdictOK      = "OK"
	VerdictSkipped = "SKIPPED"
)

// envelope is the common wrapper around every judge API response.
// Status is "OK" on success and "FAILED" otherwise, with Comment explaining
// the failure. Result is decoded lazily into the method's payload type.
type envelope struct {
	Status  string          `json:"status"`
	Comment string          `json:"comment"`
	Result  json.RawMessage `json:"result"`
}

// Problem is a single problem from the judge's problem set.
// Rating is absent for unrated problems.
type Problem struct {
	ContestID int      `json:"contestId"`
	Index     string   `json:"index"`
	Name      string   `json:"name"`
	Type      string   `json:"type,omitempty"`
	Rating    int      `json:"rating,omitempty"`
	Tags      []string `json:"tags"`
}

// ID returns the catalog key for the problem: contest id concatenated with
// the problem index, e.g. "1915C".
func (p Problem) ID() string {
	return problemID(p.ContestID, p.Index)
}

// ProblemStatistic carries the solve count for a problem, keyed by the same
// contest id + index pair as Problem.
type ProblemStatistic struct {
	ContestID   int    `json:"contestId"`
	Index       string `json:"index"`
	SolvedCount int    `json:"solvedCount"`
}

// ID returns the catalog key for the statistic.
func (s ProblemStatistic) ID() string {
	return problemID(s.ContestID, s.Index)
}

// ProblemSetResult is the payload of problemset.problems: the full problem
// list plus per-problem statistics. The two slices are not index-aligned and
// must be merged by problem id.
type ProblemSetResult struct {
	Problems          []Problem          `json:"problems"`
	ProblemStatistics []ProblemStatistic `json:"problemStatistics"`
}

// User is the judge's public user profile.
// MaxRating is a pointer because unrated users omit the field entirely, and
// the recommender substitutes a default rating in that case.
type User struct {
	Handle       string `json:"handle"`
	FirstName    string `json:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty"`
	Rank         string `json:"rank,omitempty"`
	MaxRating    *int   `json:"maxRating,omitempty"`
	Avatar       string `json:"avatar,omitempty"`
	Organization string `json:"organization,omitempty"`
}

// Submission is a single submission from user.status. Only the problem
// reference and verdict matter for recommendation purposes.
type Submission struct {
	ID                  int64   `json:"id"`
	ContestID           int     `json:"contestId,omitempty"`
	CreationTimeSeconds int64   `json:"creationTimeSeconds"`
	Problem             Problem `json:"problem"`
	Verdict             string  `json:"verdict,omitempty"`
}

// RatingChange is a single contest participation from user.rating.
// The last entry identifies the user's most recent rated contest.
type RatingChange struct {
	ContestID   int    `json:"contestId"`
	ContestName string `json:"contestName,omitempty"`
	Handle      string `json:"handle"`
	Rank        int    `json:"rank,omitempty"`
	OldRating   int    `json:"oldRating"`
	NewRating   int    `json:"newRating"`
}
