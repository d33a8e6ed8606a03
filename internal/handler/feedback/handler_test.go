package feedback

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	feedbackService "github.com/mohitvuyala/portfolio/backend/internal/service/feedback"
	"github.com/mohitvuyala/portfolio/backend/internal/storage/sqlite"
)

func setupRouter(t *testing.T) (*chi.Mux, *feedbackService.Service, *sqlite.Store) {
	t.Helper()

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "feedback.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	feedbackSvc := feedbackService.NewService(store, nil)
	handler := New(feedbackSvc)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	handler.RegisterOperatorRoutes(r)
	return r, feedbackSvc, store
}

func postJSON(r http.Handler, target string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, target, nil))
	return resp
}

func decode(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode %q: %v", resp.Body.String(), err)
	}
	return payload
}

func TestSubmitFeedback(t *testing.T) {
	r, _, _ := setupRouter(t)

	resp := postJSON(r, "/feedback", map[string]string{"name": "A", "email": "b@x.com", "message": "hello"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	payload := decode(t, resp)
	if payload["ok"] != true || payload["id"] != float64(1) {
		t.Fatalf("unexpected payload: %v", payload)
	}
}

func TestSubmitFeedbackEmptyMessage(t *testing.T) {
	r, _, _ := setupRouter(t)

	resp := postJSON(r, "/feedback", map[string]string{"name": "", "email": "", "message": "   "})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	payload := decode(t, resp)
	if payload["ok"] != false || payload["error"] != "empty-message" {
		t.Fatalf("unexpected payload: %v", payload)
	}
}

func TestSubmitFeedbackForm(t *testing.T) {
	r, _, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/feedback", strings.NewReader("message=from+a+form"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestSubmitFeedbackStoreFailure(t *testing.T) {
	r, _, store := setupRouter(t)
	_ = store.Close()

	resp := postJSON(r, "/feedback", map[string]string{"message": "hello"})
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if payload := decode(t, resp); payload["error"] != "db-error" {
		t.Fatalf("unexpected payload: %v", payload)
	}
}

func TestListFeedbacksPagination(t *testing.T) {
	r, _, _ := setupRouter(t)
	for _, msg := range []string{"R1", "R2", "R3"} {
		if resp := postJSON(r, "/feedback", map[string]string{"message": msg}); resp.Code != http.StatusOK {
			t.Fatalf("submit %s: %d", msg, resp.Code)
		}
	}

	resp := get(r, "/feedbacks?page=1&pageSize=2")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	payload := decode(t, resp)
	if payload["ok"] != true || payload["total"] != float64(3) || payload["pageSize"] != float64(2) {
		t.Fatalf("unexpected payload: %v", payload)
	}
	items := payload["feedbacks"].([]any)
	if len(items) != 2 {
		t.Fatalf("expected 2 feedbacks, got %d", len(items))
	}
	if items[0].(map[string]any)["message"] != "R3" || items[1].(map[string]any)["message"] != "R2" {
		t.Fatalf("unexpected order: %v", items)
	}
}

func TestListFeedbacksClampsPageSize(t *testing.T) {
	r, _, _ := setupRouter(t)

	tests := map[string]float64{
		"/feedbacks?pageSize=10000": 500,
		"/feedbacks?pageSize=0":     1,
		"/feedbacks?pageSize=-4":    1,
		"/feedbacks?pageSize=abc":   20,
		"/feedbacks":                20,
	}
	for target, want := range tests {
		payload := decode(t, get(r, target))
		if payload["pageSize"] != want {
			t.Fatalf("%s: pageSize = %v, want %v", target, payload["pageSize"], want)
		}
		if payload["page"] != float64(1) {
			t.Fatalf("%s: page = %v, want 1", target, payload["page"])
		}
	}

	payload := decode(t, get(r, "/feedbacks"))
	if items, ok := payload["feedbacks"].([]any); !ok || len(items) != 0 {
		t.Fatalf("expected empty list, got %v", payload["feedbacks"])
	}
}

func TestExportFeedbacksCSV(t *testing.T) {
	r, _, _ := setupRouter(t)
	postJSON(r, "/feedback", map[string]string{"name": "Ann", "message": `He said "hi"`})
	postJSON(r, "/feedback", map[string]string{"message": "second"})

	resp := get(r, "/feedbacks.csv?all=TRUE")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "text/csv; charset=utf-8" {
		t.Fatalf("content type = %q", ct)
	}
	if cd := resp.Header().Get("Content-Disposition"); !strings.Contains(cd, "feedbacks.csv") {
		t.Fatalf("content disposition = %q", cd)
	}

	rows, err := csv.NewReader(resp.Body).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[2][1] != "Ann" || rows[2][3] != `He said "hi"` {
		t.Fatalf("unexpected oldest row: %v", rows[2])
	}
}

func TestExportFeedbacksCSVPaginated(t *testing.T) {
	r, _, _ := setupRouter(t)
	for _, msg := range []string{"R1", "R2", "R3"} {
		postJSON(r, "/feedback", map[string]string{"message": msg})
	}

	rows, err := csv.NewReader(get(r, "/feedbacks.csv?page=2&pageSize=2").Body).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 2 || rows[1][3] != "R1" {
		t.Fatalf("unexpected rows: %v", rows)
	}
}

func TestExportFeedbacksCSVStoreFailure(t *testing.T) {
	r, _, store := setupRouter(t)
	_ = store.Close()

	resp := get(r, "/feedbacks.csv?all=1")
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if cd := resp.Header().Get("Content-Disposition"); cd != "" {
		t.Fatalf("unexpected content disposition on error: %q", cd)
	}
	if payload := decode(t, resp); payload["error"] != "db-error" {
		t.Fatalf("unexpected payload: %v", payload)
	}
}

func TestQueryHelpers(t *testing.T) {
	q := map[string][]string{"a": {"7"}, "b": {"x"}, "all": {"Yes"}}
	if got := queryInt(q, "a", 1); got != 7 {
		t.Fatalf("queryInt a = %d", got)
	}
	if got := queryInt(q, "b", 3); got != 3 {
		t.Fatalf("queryInt b = %d", got)
	}
	if !queryBool(q, "all") || queryBool(q, "missing") {
		t.Fatal("unexpected queryBool result")
	}
}
