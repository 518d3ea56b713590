// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/judgeboard/metrics"
	"github.com/danielhkuo/judgeboard/models"
	"github.com/danielhkuo/judgeboard/testutil"
)

func newTestRouter(t *testing.T) *http.ServeMux {
	t.Helper()
	_, s := testutil.SetupTestStore(t)
	ev := testutil.TestEvent(t)
	testutil.SeedParticipants(t, s, ev)
	return NewRouter(s, ev, testutil.GetTestConfig(), metrics.NewManager())
}

func TestHealthEndpoint(t *testing.T) {
	mux := newTestRouter(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux := newTestRouter(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	if w.Body.String() != "judgeboard API v1" {
		t.Errorf("Unexpected root body '%s'", w.Body.String())
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/no-such-route", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown path, got %d", w.Code)
	}
}

func TestRouteExistence(t *testing.T) {
	mux := newTestRouter(t)

	// 400, 401, 404 are all valid responses depending on handler logic
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/metrics"},
		{"GET", "/rubric"},
		{"GET", "/participants"},
		{"POST", "/participants"},
		{"PATCH", "/participants/P01"},
		{"DELETE", "/participants/P01"},
		{"DELETE", "/participants/P01/scores"},
		{"GET", "/scores"},
		{"POST", "/scores"},
		{"DELETE", "/scores"},
		{"GET", "/results"},
		{"GET", "/results/best-paper"},
		{"GET", "/results/young-researcher/chart"},
		{"GET", "/export/scores.csv"},
		{"GET", "/export/scores.xls"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux := newTestRouter(t)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"PUT", "/scores"},
		{"POST", "/results"},
		{"DELETE", "/rubric"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestAdminRoutesRequirePassword(t *testing.T) {
	mux := newTestRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{"DELETE", "/scores?confirm=true"},
		{"DELETE", "/participants/P01"},
		{"DELETE", "/participants/P01/scores"},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, testutil.MakeRequest(p.method, p.path, nil, nil))
			testutil.AssertStatus(t, w, http.StatusUnauthorized)

			w = httptest.NewRecorder()
			mux.ServeHTTP(w, testutil.MakeRequest(p.method, p.path, nil, map[string]string{"X-Admin-Password": "wrong"}))
			testutil.AssertStatus(t, w, http.StatusForbidden)
		})
	}
}

func TestPathParameterExtraction(t *testing.T) {
	mux := newTestRouter(t)

	body := map[string]string{"title": "Routing in Sparse Graphs"}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("PATCH", "/participants/P03", body, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var p models.Participant
	testutil.AssertJSON(t, w, &p)
	if p.ID != "P03" || p.Title != "Routing in Sparse Graphs" {
		t.Errorf("Unexpected participant %+v", p)
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/results/best-poster", nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestMetricsEndpointRecordsRoutes(t *testing.T) {
	mux := newTestRouter(t)

	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/rubric", nil))

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	want := `judgeboard_http_requests_total{method="GET",route="GET /rubric",status_code="200"} 1`
	if !strings.Contains(w.Body.String(), want) {
		t.Errorf("Expected %q in:\n%s", want, w.Body.String())
	}
}
