// Ascent - Competitive Programming Practice Recommender
// Copyright 2026 Raunak B. (raunakbh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raunakbh/ascent

package profile

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/raunakbh/ascent/internal/catalog"
	"github.com/raunakbh/ascent/internal/judge"
)

type mockJudge struct {
	user    *judge.User
	userErr error
	subs    []judge.Submission
	changes []judge.RatingChange
}

func (m *mockJudge) Ping(ctx context.Context) error { return nil }

func (m *mockJudge) ProblemSet(ctx context.Context) (*judge.ProblemSetResult, error) {
	return nil, errors.New("not implemented")
}

func (m *mockJudge) UserInfo(ctx context.Context, handle string) (*judge.User, error) {
	if m.userErr != nil {
		return nil, m.userErr
	}
	return m.user, nil
}

func (m *mockJudge) UserStatus(ctx context.Context, handle string, from, count int) ([]judge.Submission, error) {
	return m.subs, nil
}

func (m *mockJudge) UserRating(ctx context.Context, handle string) ([]judge.RatingChange, error) {
	return m.changes, nil
}

type mockStore struct {
	skipped []string
	snoozed []string
	touched []string
}

func (m *mockStore) SkippedProblems(ctx context.Context, handle string) ([]string, error) {
	return m.skipped, nil
}

func (m *mockStore) SnoozedProblems(ctx context.Context, handle string) ([]string, error) {
	return m.snoozed, nil
}

func (m *mockStore) TouchUser(ctx context.Context, handle string) error {
	m.touched = append(m.touched, handle)
	return nil
}

func testSnapshot() *catalog.Snapshot {
	return &catalog.Snapshot{
		Problems: map[string]catalog.Problem{
			"1A": {ID: "1A", Rating: 800, SolvedBy: 4000},
			"2B": {ID: "2B", Rating: 1600, SolvedBy: 1000},
		},
	}
}

func intPtr(v int) *int { return &v }

func TestResolveBuildsSession(t *testing.T) {
	api := &mockJudge{
		user: &judge.User{Handle: "tourist", Rank: "legendary grandmaster", MaxRating: intPtr(3800)},
		subs: []judge.Submission{
			{ID: 3, ContestID: 5, Problem: judge.Problem{ContestID: 5, Index: "C"}, Verdict: "WRONG_ANSWER"},
			{ID: 2, ContestID: 2, Problem: judge.Problem{ContestID: 2, Index: "B"}, Verdict: judge.VerdictOK},
			{ID: 1, ContestID: 1, Problem: judge.Problem{ContestID: 1, Index: "A"}, Verdict: judge.VerdictOK},
		},
		changes: []judge.RatingChange{
			{ContestID: 1, NewRating: 1500},
			{ContestID: 2, NewRating: 1700},
		},
	}
	store := &mockStore{skipped: []string{"9Z"}, snoozed: []string{"8Y"}}
	r := NewResolver(api, store)

	sess, err := r.Resolve(context.Background(), "tourist", testSnapshot())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if sess.MaxRating != 3800 {
		t.Errorf("MaxRating = %d, want 3800", sess.MaxRating)
	}
	if sess.SlabIndex != 5 {
		t.Errorf("SlabIndex = %d, want 5", sess.SlabIndex)
	}
	if !sess.Solved("1A") || !sess.Solved("2B") {
		t.Error("accepted problems missing from session")
	}
	if !sess.Solved("9Z") {
		t.Error("skipped problems should count as solved")
	}
	if sess.Solved("5C") {
		t.Error("rejected submission should not count as solved")
	}
	if !sess.IsSnoozed("8Y") {
		t.Error("snoozed problem missing from session")
	}
	for _, c := range []int{1, 2, 5} {
		if _, ok := sess.TouchedContests[c]; !ok {
			t.Errorf("contest %d missing from touched set", c)
		}
	}
	if sess.LastContestID != 2 {
		t.Errorf("LastContestID = %d, want 2", sess.LastContestID)
	}
	if len(store.touched) != 1 || store.touched[0] != "tourist" {
		t.Errorf("TouchUser not recorded: %v", store.touched)
	}

	// (10000 + 4000*800/4000 + 1000*1600/4000) / 2
	want := (10000.0 + 800.0 + 400.0) / 2.0
	if math.Abs(sess.Solvability-want) > 1e-9 {
		t.Errorf("Solvability = %f, want %f", sess.Solvability, want)
	}
}

func TestResolveUnratedUserDefaults(t *testing.T) {
	api := &mockJudge{user: &judge.User{Handle: "newbie"}}
	r := NewResolver(api, &mockStore{})

	sess, err := r.Resolve(context.Background(), "newbie", testSnapshot())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if sess.MaxRating != DefaultMaxRating {
		t.Errorf("MaxRating = %d, want %d", sess.MaxRating, DefaultMaxRating)
	}
	if sess.SlabIndex != 0 {
		t.Errorf("SlabIndex = %d, want 0", sess.SlabIndex)
	}
	if sess.Solvability != 10000.0 {
		t.Errorf("Solvability = %f, want baseline 10000", sess.Solvability)
	}
	if sess.LastContestID != 0 {
		t.Errorf("LastContestID = %d, want 0", sess.LastContestID)
	}
}

func TestResolveSkipsCatalogMissingSolves(t *testing.T) {
	api := &mockJudge{
		user: &judge.User{Handle: "old", MaxRating: intPtr(1400)},
		subs: []judge.Submission{
			{ID: 1, ContestID: 777, Problem: judge.Problem{ContestID: 777, Index: "F"}, Verdict: judge.VerdictOK},
			{ID: 2, ContestID: 1, Problem: judge.Problem{ContestID: 1, Index: "A"}, Verdict: judge.VerdictOK},
		},
	}
	r := NewResolver(api, &mockStore{})

	sess, err := r.Resolve(context.Background(), "old", testSnapshot())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	// 777F is solved but absent from the catalog: it never accumulates but
	// still counts toward the average.
	if !sess.Solved("777F") {
		t.Error("catalog-missing solve should still appear in the accepted set")
	}
	want := (10000.0 + 800.0) / 2.0
	if math.Abs(sess.Solvability-want) > 1e-9 {
		t.Errorf("Solvability = %f, want %f", sess.Solvability, want)
	}
}

func TestResolveRepeatedSolvesAccumulateAgain(t *testing.T) {
	api := &mockJudge{
		user: &judge.User{Handle: "retry", MaxRating: intPtr(1200)},
		subs: []judge.Submission{
			{ID: 2, ContestID: 1, Problem: judge.Problem{ContestID: 1, Index: "A"}, Verdict: judge.VerdictOK},
			{ID: 1, ContestID: 1, Problem: judge.Problem{ContestID: 1, Index: "A"}, Verdict: judge.VerdictOK},
		},
	}
	r := NewResolver(api, &mockStore{})

	sess, err := r.Resolve(context.Background(), "retry", testSnapshot())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	// Each accepted submission prices separately; the average divides by the
	// single distinct problem.
	want := 10000.0 + 800.0 + 800.0
	if math.Abs(sess.Solvability-want) > 1e-9 {
		t.Errorf("Solvability = %f, want %f", sess.Solvability, want)
	}
	if !sess.Solved("1A") {
		t.Error("resubmitted problem missing from accepted set")
	}
}

func TestResolvePropagatesJudgeErrors(t *testing.T) {
	api := &mockJudge{userErr: judge.ErrUserNotFound}
	r := NewResolver(api, &mockStore{})

	_, err := r.Resolve(context.Background(), "ghost", testSnapshot())
	if !errors.Is(err, judge.ErrUserNotFound) {
		t.Errorf("got %v, want ErrUserNotFound", err)
	}
}
