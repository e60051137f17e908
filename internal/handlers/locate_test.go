package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/lehigh-university-libraries/wayfinder/internal/hostprobe"
	"github.com/lehigh-university-libraries/wayfinder/internal/models"
	"github.com/lehigh-university-libraries/wayfinder/internal/shelf"
)

func testHandler() *Handler {
	table := &shelf.Table{
		Policy: shelf.MatchContains,
		Ranges: []shelf.Range{
			{Library: "Main Library", CallNumberLow: "QA1", CallNumberHigh: "QA76", SVGCode: "m2-east-01", Floor: "2", Description: "Mathematics"},
			{Library: "Main Library", CallNumberLow: "QA76", CallNumberHigh: "QA99", SVGCode: "m2-east-02", Floor: "2", Description: "Computer science"},
		},
	}
	return New(table, nil)
}

func doLocate(t *testing.T, h *Handler, params url.Values) (*httptest.ResponseRecorder, models.LocateResponse) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/locate?"+params.Encode(), nil)
	rec := httptest.NewRecorder()
	h.HandleLocate(rec, req)

	var resp models.LocateResponse
	if rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return rec, resp
}

func TestHandleLocate(t *testing.T) {
	h := testHandler()

	rec, resp := doLocate(t, h, url.Values{
		"call":    {"QA76 .C49 2015"},
		"library": {"Main Library"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	// The cutter is stripped before matching, and QA76 sits on the
	// boundary of both configured ranges.
	if resp.CallNumber != "QA76" {
		t.Errorf("call number %q, want QA76", resp.CallNumber)
	}
	if len(resp.Matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(resp.Matches))
	}
	if resp.Matches[0].SVGCode != "m2-east-01" || resp.Matches[1].SVGCode != "m2-east-02" {
		t.Errorf("svg codes %q, %q out of configured order", resp.Matches[0].SVGCode, resp.Matches[1].SVGCode)
	}
}

func TestHandleLocateNoMatch(t *testing.T) {
	h := testHandler()

	rec, resp := doLocate(t, h, url.Values{
		"call":    {"Z665"},
		"library": {"Main Library"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("no-match must be 200, got %d", rec.Code)
	}
	if resp.Matches == nil {
		t.Error("matches must be an empty list, not null")
	}
	if len(resp.Matches) != 0 {
		t.Errorf("got %d matches, want 0", len(resp.Matches))
	}
}

func TestHandleLocateEmptyCallNumber(t *testing.T) {
	h := testHandler()

	rec, resp := doLocate(t, h, url.Values{"library": {"Main Library"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("missing call number must degrade to no-match, got %d", rec.Code)
	}
	if len(resp.Matches) != 0 {
		t.Errorf("got %d matches, want 0", len(resp.Matches))
	}
}

func TestHandleLocateMethodNotAllowed(t *testing.T) {
	h := testHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/locate", nil)
	rec := httptest.NewRecorder()
	h.HandleLocate(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestHandleRanges(t *testing.T) {
	h := testHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/ranges", nil)
	rec := httptest.NewRecorder()
	h.HandleRanges(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var table shelf.Table
	if err := json.Unmarshal(rec.Body.Bytes(), &table); err != nil {
		t.Fatalf("failed to decode table: %v", err)
	}
	if len(table.Ranges) != 2 {
		t.Errorf("got %d ranges, want 2", len(table.Ranges))
	}
}

func TestHandleLabelsWithoutProbe(t *testing.T) {
	h := testHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/labels?table=libraries", nil)
	rec := httptest.NewRecorder()
	h.HandleLabels(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 when no host is configured", rec.Code)
	}
}

func TestHandleLabels(t *testing.T) {
	host := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/codetables/libraries" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"rows":[{"code":"MAIN","description":"Main Library"}]}`))
	}))
	defer host.Close()

	h := New(testHandler().table, hostprobe.New(host.URL, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/labels?table=libraries", nil)
	rec := httptest.NewRecorder()
	h.HandleLabels(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var labels map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &labels); err != nil {
		t.Fatalf("failed to decode labels: %v", err)
	}
	if labels["MAIN"] != "Main Library" {
		t.Errorf("labels[MAIN] = %q, want %q", labels["MAIN"], "Main Library")
	}
}

func TestHandleLabelsMissingTable(t *testing.T) {
	// Parameter validation runs after the probe presence check, so a
	// probe must be configured to reach it. No table name means no
	// request to the host.
	h := New(testHandler().table, hostprobe.New("http://127.0.0.1:0", nil))

	req := httptest.NewRequest(http.MethodGet, "/api/labels", nil)
	rec := httptest.NewRecorder()
	h.HandleLabels(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleLabelsMissingTableWithoutProbe(t *testing.T) {
	h := testHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/labels", nil)
	rec := httptest.NewRecorder()
	h.HandleLabels(rec, req)
	// Without a probe the endpoint is down regardless of parameters.
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
