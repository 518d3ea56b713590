// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Counters(t *testing.T) {
	m := NewManager()

	m.ScoreSubmitted("Best Paper")
	m.ScoreSubmitted("Best Paper")
	m.ValidationFailed("out_of_range")
	m.ScoresDeleted(3)
	m.ExportServed("csv")
	m.StoreError("list_scores")
	m.SetRankedParticipants("Young Researcher", 7)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.scoresSubmitted.WithLabelValues("Best Paper")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.validationFailures.WithLabelValues("out_of_range")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.scoresDeleted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.exports.WithLabelValues("csv")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeErrors.WithLabelValues("list_scores")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.rankedParticipants.WithLabelValues("Young Researcher")))
}

func TestManager_ObserveHTTP(t *testing.T) {
	m := NewManager(WithHistogramBuckets([]float64{0.01, 0.1, 1}))

	m.ObserveHTTP("GET /results", "GET", 200, 5*time.Millisecond)
	m.ObserveHTTP("GET /results", "GET", 200, 50*time.Millisecond)
	m.ObserveHTTP("POST /scores", "POST", 400, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET /results", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("POST /scores", "POST", "400")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.httpRequestDuration))
}

func TestManager_Isolated(t *testing.T) {
	a, b := NewManager(), NewManager()
	a.ExportServed("xls")

	assert.Equal(t, 1.0, testutil.ToFloat64(a.exports.WithLabelValues("xls")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.exports.WithLabelValues("xls")))
}

func TestManager_Handler(t *testing.T) {
	m := NewManager(WithNamespace("test"))
	m.ScoreSubmitted("Best Paper")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `test_scores_submitted_total{section="Best Paper"} 1`), body)
}

func TestManager_NilIsNoop(t *testing.T) {
	var m *Manager
	assert.NotPanics(t, func() {
		m.ScoreSubmitted("Best Paper")
		m.ObserveHTTP("GET /", "GET", 200, time.Millisecond)
		m.SetRankedParticipants("Best Paper", 1)
	})
}
