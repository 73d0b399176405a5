// Ascent - Competitive Programming Practice Recommender
// Copyright 2026 Raunak B. (raunakbh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raunakbh/ascent

// Package swot ranks the tags a user has practiced by weighted weakness.
//
// Every submission contributes to its problem's tags: accepted solutions at
// full weight, failed attempts at a fifth. Harder and less-solved problems
// weigh more, as do tags that are rare in the user's rating band. Tags the
// user keeps failing on rare, hard material therefore float to the top of
// the weakness ranking.
package swot

import (
	"sort"

	"github.com/raunakbh/ascent/internal/catalog"
	"github.com/raunakbh/ascent/internal/judge"
	"github.com/raunakbh/ascent/internal/profile"
)

// failedAttemptWeight discounts non-accepted submissions.
const failedAttemptWeight = 0.2

// commonTagThreshold filters the user's band slab to tags common enough to
// be worth mentioning.
const commonTagThreshold = 50

// TagScore is one tag's accumulated weakness weight with the number of
// accepted submissions that touched it.
type TagScore struct {
	Tag    string  `json:"tag"`
	Points float64 `json:"points"`
	Count  int     `json:"count"`
}

// Analyzer computes tag weakness rankings. Stateless and safe for
// concurrent use.
type Analyzer struct{}

// NewAnalyzer creates a swot analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze walks the session's submission history against the catalog and
// returns the tag ranking, ascending by points, together with the user's
// band slab filtered to commonly seen tags. Submissions the judge marked
// skipped, problems absent from the catalog, and problems with no recorded
// solves are ignored.
func (a *Analyzer) Analyze(snap *catalog.Snapshot, sess *profile.Session) ([]TagScore, []catalog.TagCount) {
	points := make(map[string]float64)
	counts := make(map[string]int)

	for _, sub := range sess.Submissions {
		if sub.Verdict == judge.VerdictSkipped {
			continue
		}
		p, ok := snap.Problems[sub.Problem.ID()]
		if !ok || p.SolvedBy == 0 {
			continue
		}

		weight := failedAttemptWeight
		accepted := sub.Verdict == judge.VerdictOK
		if accepted {
			weight = 1.0
		}
		base := weight * float64(p.Rating) * float64(p.Rating) / float64(p.SolvedBy)

		for _, tag := range p.Tags {
			// A tag absent from the band slab contributes zero weight but
			// still appears in the ranking with its accepted count.
			rank := snap.TagRank(sess.SlabIndex, tag)
			points[tag] += base * float64(rank+1)
			if accepted {
				counts[tag]++
			}
		}
	}

	ranking := make([]TagScore, 0, len(points))
	for tag, pts := range points {
		ranking = append(ranking, TagScore{Tag: tag, Points: pts, Count: counts[tag]})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Points != ranking[j].Points {
			return ranking[i].Points < ranking[j].Points
		}
		return ranking[i].Tag < ranking[j].Tag
	})

	slab := make([]catalog.TagCount, 0)
	for _, tc := range snap.Slabs[sess.SlabIndex] {
		if tc.Count > commonTagThreshold {
			slab = append(slab, tc)
		}
	}

	return ranking, slab
}
