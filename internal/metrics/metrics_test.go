// Ascent - Competitive Programming Practice Recommender
// Copyright 2026 Raunak B. (raunakbh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/raunakbh/ascent

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestRecordCatalogRefresh tests catalog refresh metric recording
func TestRecordCatalogRefresh(t *testing.T) {
	before := testutil.ToFloat64(CatalogRefreshErrors)

	RecordCatalogRefresh(2*time.Second, 9000, nil)

	if testutil.ToFloat64(CatalogRefreshErrors) != before {
		t.Error("successful refresh should not increment error counter")
	}
	if got := testutil.ToFloat64(CatalogProblems); got != 9000 {
		t.Errorf("CatalogProblems = %v, want 9000", got)
	}
	if testutil.ToFloat64(CatalogLastRefresh) == 0 {
		t.Error("CatalogLastRefresh should be set after success")
	}
}

func TestRecordCatalogRefreshError(t *testing.T) {
	before := testutil.ToFloat64(CatalogRefreshErrors)
	problemsBefore := testutil.ToFloat64(CatalogProblems)

	RecordCatalogRefresh(time.Second, 0, errors.New("upstream down"))

	if got := testutil.ToFloat64(CatalogRefreshErrors); got != before+1 {
		t.Errorf("CatalogRefreshErrors = %v, want %v", got, before+1)
	}
	// Failed refresh must not disturb the published snapshot size
	if got := testutil.ToFloat64(CatalogProblems); got != problemsBefore {
		t.Errorf("CatalogProblems changed on failure: %v -> %v", problemsBefore, got)
	}
}

// TestRecordJudgeRequest tests judge API request metric recording
func TestRecordJudgeRequest(t *testing.T) {
	counter := JudgeRequestsTotal.WithLabelValues("problemset.problems", "ok")
	before := testutil.ToFloat64(counter)

	RecordJudgeRequest("problemset.problems", "ok", 100*time.Millisecond)

	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Errorf("JudgeRequestsTotal = %v, want %v", got, before+1)
	}
}

// TestRecordAPIRequest tests API request metric recording
func TestRecordAPIRequest(t *testing.T) {
	counter := APIRequestsTotal.WithLabelValues("GET", "/api/v1/suggest", "200")
	before := testutil.ToFloat64(counter)

	RecordAPIRequest("GET", "/api/v1/suggest", "200", 50*time.Millisecond)

	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Errorf("APIRequestsTotal = %v, want %v", got, before+1)
	}
}

// TestRecordDBQuery tests database query metric recording
func TestRecordDBQuery(t *testing.T) {
	errCounter := DBQueryErrors.WithLabelValues("INSERT", "snoozed")
	before := testutil.ToFloat64(errCounter)

	RecordDBQuery("INSERT", "snoozed", 5*time.Millisecond, nil)
	if got := testutil.ToFloat64(errCounter); got != before {
		t.Error("successful query should not increment error counter")
	}

	RecordDBQuery("INSERT", "snoozed", 5*time.Millisecond, errors.New("constraint violation"))
	if got := testutil.ToFloat64(errCounter); got != before+1 {
		t.Errorf("DBQueryErrors = %v, want %v", got, before+1)
	}
}

// TestTrackActiveRequest tests the in-flight request gauge
func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("APIActiveRequests = %v, want %v", got, before+1)
	}

	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("APIActiveRequests = %v, want %v", got, before)
	}
}

// TestSetJudgeAvailable tests the availability gauge
func TestSetJudgeAvailable(t *testing.T) {
	SetJudgeAvailable(true)
	if got := testutil.ToFloat64(JudgeAvailable); got != 1 {
		t.Errorf("JudgeAvailable = %v, want 1", got)
	}

	SetJudgeAvailable(false)
	if got := testutil.ToFloat64(JudgeAvailable); got != 0 {
		t.Errorf("JudgeAvailable = %v, want 0", got)
	}
}
