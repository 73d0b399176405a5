// Ascent - Competitive Programming Practice Recommender
// Copyright 2026 Raunak B. (raunakbh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raunakbh/ascent

package catalog

import (
	"sort"

	"github.com/raunakbh/ascent/internal/judge"
)

// SlabCount is the number of rating bands the catalog maintains.
// Bands: <1200, <1600, <1900, <2100, <2400, >=2400.
const SlabCount = 6

// UnratedSentinel marks problems explicitly flagged unrated by the judge.
// They stay in the problem map but are excluded from tag slabs.
const UnratedSentinel = -1

// Problem is a catalog entry built from the judge's problem set.
// Rating is 0 when the judge omits it (unrated so far), and UnratedSentinel
// when the judge marks the problem permanently unrated.
type Problem struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Tags      []string `json:"tags"`
	ContestID int      `json:"contestId"`
	Index     string   `json:"index"`
	Rating    int      `json:"rating"`
	SolvedBy  int      `json:"solvedBy"`
}

// TagCount is one tag's problem count within a rating slab.
type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Snapshot is one immutable build of the catalog: the problem map plus six
// tag slabs sorted ascending by count. A snapshot is never mutated after
// publication; refreshes replace the whole snapshot atomically.
type Snapshot struct {
	Problems map[string]Problem
	Slabs    [SlabCount][]TagCount
}

// SlabIndex maps a rating to its band. Ratings below 1200, including the
// 0 default for unrated users, land in band 0.
func SlabIndex(rating int) int {
	switch {
	case rating >= 2400:
		return 5
	case rating >= 2100:
		return 4
	case rating >= 1900:
		return 3
	case rating >= 1600:
		return 2
	case rating >= 1200:
		return 1
	default:
		return 0
	}
}

// buildSnapshot constructs a snapshot from a raw problem set payload.
//
// Problems with an index below "A" are dropped. Statistics are merged by
// problem id; statistics for unknown ids are ignored and problems without
// statistics keep SolvedBy 0. Problems rated UnratedSentinel are kept in the
// map but skipped during slab banding. Each slab ends up sorted ascending by
// count, ties keeping first-seen tag order.
func buildSnapshot(result *judge.ProblemSetResult) *Snapshot {
	snap := &Snapshot{
		Problems: make(map[string]Problem, len(result.Problems)),
	}

	// First-seen position per tag per slab, so the ascending sort below is
	// deterministic for equal counts.
	var tagIndex [SlabCount]map[string]int
	for i := range tagIndex {
		tagIndex[i] = make(map[string]int)
	}

	for _, p := range result.Problems {
		if p.Index < "A" {
			continue
		}

		id := p.ID()
		snap.Problems[id] = Problem{
			ID:        id,
			Name:      p.Name,
			Tags:      p.Tags,
			ContestID: p.ContestID,
			Index:     p.Index,
			Rating:    p.Rating,
		}

		if p.Rating == UnratedSentinel {
			continue
		}

		slab := SlabIndex(p.Rating)
		for _, tag := range p.Tags {
			if idx, ok := tagIndex[slab][tag]; ok {
				snap.Slabs[slab][idx].Count++
				continue
			}
			tagIndex[slab][tag] = len(snap.Slabs[slab])
			snap.Slabs[slab] = append(snap.Slabs[slab], TagCount{Name: tag, Count: 1})
		}
	}

	for _, stat := range result.ProblemStatistics {
		id := stat.ID()
		p, ok := snap.Problems[id]
		if !ok {
			continue
		}
		p.SolvedBy = stat.SolvedCount
		snap.Problems[id] = p
	}

	for i := range snap.Slabs {
		sort.SliceStable(snap.Slabs[i], func(a, b int) bool {
			return snap.Slabs[i][a].Count < snap.Slabs[i][b].Count
		})
	}

	return snap
}

// TagRank returns the position of tag within the slab's ascending-count
// order, or -1 if the slab does not contain the tag. Rarer tags rank lower.
func (s *Snapshot) TagRank(slab int, tag string) int {
	for i, tc := range s.Slabs[slab] {
		if tc.Name == tag {
			return i
		}
	}
	return -1
}
