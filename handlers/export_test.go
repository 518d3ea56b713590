// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/danielhkuo/judgeboard/models"
	"github.com/danielhkuo/judgeboard/testutil"
)

func newExportHandler(f fixture) *ExportHandler {
	h := NewExportHandler(f.store, f.ev, f.cfg, f.metrics)
	h.now = func() time.Time { return testTime }
	return h
}

func TestExportCSV(t *testing.T) {
	f := newFixture(t)
	handler := newExportHandler(f)
	f.addScore(t, "P01", "Judge A", models.SectionBestPaper, 4, testTime)
	f.addScore(t, "P02", "Judge B", models.SectionYoungResearcher, 3, testTime.Add(time.Minute))

	w := httptest.NewRecorder()
	handler.ExportCSV(w, testutil.MakeRequest("GET", "/export/scores.csv", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Unexpected content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="ICCIET_2025_Scores_2025-11-20.csv"` {
		t.Errorf("Unexpected Content-Disposition %q", cd)
	}

	lines := strings.Split(w.Body.String(), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header and 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], `"Participant ID","Participant Name","Paper Title","Judge","Section"`) {
		t.Errorf("Unexpected header %q", lines[0])
	}
	if !strings.HasSuffix(lines[0], `"Total Score","Remarks","Submitted At"`) {
		t.Errorf("Unexpected header %q", lines[0])
	}
	// newest first
	if !strings.HasPrefix(lines[1], `"P02","Rashmi R Nath"`) {
		t.Errorf("Unexpected first row %q", lines[1])
	}
	if !strings.Contains(lines[2], `"2025-11-20 10:00:00"`) {
		t.Errorf("Expected the UTC timestamp in %q", lines[2])
	}
}

func TestExportCSV_Empty(t *testing.T) {
	f := newFixture(t)
	handler := newExportHandler(f)

	w := httptest.NewRecorder()
	handler.ExportCSV(w, testutil.MakeRequest("GET", "/export/scores.csv", nil, nil))

	testutil.AssertStatus(t, w, http.StatusNotFound)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Message != "No scores to export." {
		t.Errorf("Unexpected message %q", resp.Message)
	}
}

func TestExportCSV_ScoresUnavailable(t *testing.T) {
	f := newFixture(t)
	f.addScore(t, "P01", "Judge A", models.SectionBestPaper, 4, testTime)

	handler := NewExportHandler(brokenStore{Store: f.store, scores: true}, f.ev, f.cfg, f.metrics)

	w := httptest.NewRecorder()
	handler.ExportCSV(w, testutil.MakeRequest("GET", "/export/scores.csv", nil, nil))

	testutil.AssertStatus(t, w, http.StatusServiceUnavailable)
}

func TestExportSpreadsheet(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		expectedStatus int
		rankingTables  int
	}{
		{"with rankings", "", http.StatusOK, 2},
		{"rankings explicitly on", "?rankings=true", http.StatusOK, 2},
		{"scores only", "?rankings=false", http.StatusOK, 0},
		{"bad flag", "?rankings=maybe", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			handler := newExportHandler(f)
			f.addScore(t, "P01", "Judge A", models.SectionBestPaper, 4, testTime)
			f.addScore(t, "P02", "Judge B", models.SectionYoungResearcher, 3, testTime)

			w := httptest.NewRecorder()
			handler.ExportSpreadsheet(w, testutil.MakeRequest("GET", "/export/scores.xls"+tt.query, nil, nil))

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			if ct := w.Header().Get("Content-Type"); ct != "application/vnd.ms-excel" {
				t.Errorf("Unexpected content type %q", ct)
			}
			if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "ICCIET_2025_Scores_2025-11-20.xls") {
				t.Errorf("Unexpected Content-Disposition %q", cd)
			}

			doc, err := goquery.NewDocumentFromReader(w.Body)
			if err != nil {
				t.Fatalf("Failed to parse spreadsheet: %v", err)
			}
			if n := doc.Find(`table[id^="rankings-"]`).Length(); n != tt.rankingTables {
				t.Errorf("Expected %d ranking tables, got %d", tt.rankingTables, n)
			}
			if n := doc.Find("table#scores tr").Length(); n != 3 {
				t.Errorf("Expected header and 2 score rows, got %d", n)
			}
		})
	}
}
