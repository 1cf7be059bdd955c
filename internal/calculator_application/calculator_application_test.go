package calculator_application

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	db "github.com/ERRORIK404/Scientific_Calculator/database"
	conf "github.com/ERRORIK404/Scientific_Calculator/pkg/config"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	database, err := db.InitDB(":memory:")
	if err != nil {
		t.Fatalf("init db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	cfg := &conf.Config{JWT_SECRET: "test-secret", TOKEN_TTL: time.Minute, DEFAULT_PRECISION: 10}
	clock := func() time.Time { return time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC) }
	app := New(cfg, database, WithClock(clock))

	srv := httptest.NewServer(app.Routes())
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, srv *httptest.Server, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	if err != nil {
		t.Fatal(err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	out := map[string]any{}
	if resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
	return resp.StatusCode, out
}

func register(t *testing.T, srv *httptest.Server, login string) string {
	t.Helper()
	creds := map[string]string{"login": login, "password": "pa55word"}
	if code, _ := call(t, srv, "POST", "/api/v1/register", "", creds); code != http.StatusCreated {
		t.Fatalf("register %s: status %d", login, code)
	}
	code, body := call(t, srv, "POST", "/api/v1/login", "", creds)
	if code != http.StatusOK {
		t.Fatalf("login %s: status %d", login, code)
	}
	return body["token"].(string)
}

func TestAuth(t *testing.T) {
	srv := newTestServer(t)
	register(t, srv, "alice")

	if code, _ := call(t, srv, "POST", "/api/v1/register", "", map[string]string{"login": "alice", "password": "x"}); code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate login, got %d", code)
	}
	if code, _ := call(t, srv, "POST", "/api/v1/login", "", map[string]string{"login": "alice", "password": "wrong"}); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", code)
	}
	if code, _ := call(t, srv, "POST", "/api/v1/login", "", map[string]string{"login": "bob", "password": "x"}); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown user, got %d", code)
	}
	if code, _ := call(t, srv, "GET", "/api/v1/calculator", "", nil); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", code)
	}
	if code, _ := call(t, srv, "GET", "/api/v1/calculator", "garbage", nil); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", code)
	}
}

func TestCalculatorFlow(t *testing.T) {
	srv := newTestServer(t)
	token := register(t, srv, "alice")

	code, state := call(t, srv, "GET", "/api/v1/calculator", token, nil)
	if code != http.StatusOK || state["buffer"] != "0" || state["precision"] != float64(10) {
		t.Fatalf("unexpected initial state %d %v", code, state)
	}

	call(t, srv, "POST", "/api/v1/calculator/append", token, map[string]string{"token": "2+2"})
	code, state = call(t, srv, "POST", "/api/v1/calculator/evaluate", token, nil)
	if code != http.StatusOK || state["result"] != "4" || state["buffer"] != "4" {
		t.Fatalf("unexpected evaluation %d %v", code, state)
	}

	call(t, srv, "POST", "/api/v1/calculator/append", token, map[string]string{"token": "/0"})
	code, body := call(t, srv, "POST", "/api/v1/calculator/evaluate", token, nil)
	if code != http.StatusUnprocessableEntity || body["kind"] != "ArithmeticError" {
		t.Fatalf("expected 422 ArithmeticError, got %d %v", code, body)
	}
	_, state = call(t, srv, "GET", "/api/v1/calculator", token, nil)
	if state["buffer"] != "4/0" {
		t.Fatalf("failed evaluation must keep the buffer, got %v", state["buffer"])
	}

	_, state = call(t, srv, "POST", "/api/v1/calculator/toggle-sign", token, nil)
	if state["buffer"] != "-4/0" {
		t.Fatalf("unexpected toggle %v", state["buffer"])
	}
	_, state = call(t, srv, "POST", "/api/v1/calculator/clear", token, nil)
	if state["buffer"] != "0" {
		t.Fatalf("unexpected clear %v", state["buffer"])
	}

	if code, _ := call(t, srv, "PUT", "/api/v1/calculator/precision", token, map[string]int{"precision": 99}); code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for precision 99, got %d", code)
	}
	code, state = call(t, srv, "PUT", "/api/v1/calculator/precision", token, map[string]int{"precision": 3})
	if code != http.StatusOK || state["precision"] != float64(3) {
		t.Fatalf("unexpected precision update %d %v", code, state)
	}

	code, body = call(t, srv, "GET", "/api/v1/history", token, nil)
	if history := body["history"].([]any); code != http.StatusOK || len(history) != 1 {
		t.Fatalf("expected one history entry, got %d %v", code, body)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	srv := newTestServer(t)
	alice := register(t, srv, "alice")
	bob := register(t, srv, "bob")

	call(t, srv, "POST", "/api/v1/calculator/append", alice, map[string]string{"token": "7"})
	_, state := call(t, srv, "GET", "/api/v1/calculator", bob, nil)
	if state["buffer"] != "0" {
		t.Fatalf("bob must not see alice's buffer, got %v", state["buffer"])
	}
}

func TestExportFlow(t *testing.T) {
	srv := newTestServer(t)
	token := register(t, srv, "alice")

	if code, _ := call(t, srv, "POST", "/api/v1/history/export", token, nil); code != http.StatusNotFound {
		t.Fatalf("expected 404 for empty history, got %d", code)
	}

	call(t, srv, "POST", "/api/v1/calculator/append", token, map[string]string{"token": "5!"})
	call(t, srv, "POST", "/api/v1/calculator/evaluate", token, nil)

	code, export := call(t, srv, "POST", "/api/v1/history/export", token, nil)
	if code != http.StatusCreated {
		t.Fatalf("expected 201, got %d %v", code, export)
	}
	content := export["content"].(string)
	if !strings.HasPrefix(content, "=== ADVANCED CALCULATOR HISTORY ===\n\n") || !strings.Contains(content, "[09:30:00] 5! = 120") {
		t.Fatalf("unexpected export content %q", content)
	}
	if export["file_name"] != "calculator_history_20261015_093000.txt" {
		t.Fatalf("unexpected file name %v", export["file_name"])
	}

	_, list := call(t, srv, "GET", "/api/v1/exports", token, nil)
	if exports := list["exports"].([]any); len(exports) != 1 {
		t.Fatalf("expected one archived export, got %v", list)
	}

	id := strconv.Itoa(int(export["id"].(float64)))
	req, _ := http.NewRequest("GET", srv.URL+"/api/v1/exports/"+id, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(raw) != content {
		t.Fatalf("unexpected download %d %q", resp.StatusCode, raw)
	}
	if !strings.Contains(resp.Header.Get("Content-Disposition"), "calculator_history_20261015_093000.txt") {
		t.Fatalf("expected attachment header, got %q", resp.Header.Get("Content-Disposition"))
	}

	other := register(t, srv, "bob")
	if code, _ := call(t, srv, "GET", "/api/v1/exports/"+id, other, nil); code != http.StatusNotFound {
		t.Fatalf("foreign export must be 404, got %d", code)
	}

	if code, _ := call(t, srv, "DELETE", "/api/v1/history", token, nil); code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", code)
	}
	if code, _ := call(t, srv, "POST", "/api/v1/history/export", token, nil); code != http.StatusNotFound {
		t.Fatalf("expected 404 after clearing history, got %d", code)
	}
}

func TestPlotEndpoint(t *testing.T) {
	srv := newTestServer(t)

	code, body := call(t, srv, "POST", "/api/v1/plot", "", map[string]any{
		"expression": "log(x)", "x_min": -1, "x_max": 1, "points": 100,
	})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d %v", code, body)
	}
	ys := body["y"].([]any)
	if len(ys) != 100 || ys[0] != nil || ys[99] != float64(0) {
		t.Fatalf("unexpected samples: first %v last %v", ys[0], ys[99])
	}
	if !strings.Contains(body["chart"].(string), "f(x) = log(x)") {
		t.Fatalf("expected legend in chart")
	}

	if code, _ := call(t, srv, "POST", "/api/v1/plot", "", map[string]any{"expression": "x", "x_min": 5, "x_max": 1}); code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for inverted range, got %d", code)
	}
	if code, body := call(t, srv, "POST", "/api/v1/plot", "", map[string]any{"expression": "__import__('os')"}); code != http.StatusUnprocessableEntity || body["kind"] != "NameError" {
		t.Fatalf("expected 422 NameError, got %d %v", code, body)
	}

	for _, expr := range []string{"4**4611686018427387904 + x", strings.Repeat("5000!+", 9) + "x"} {
		code, body := call(t, srv, "POST", "/api/v1/plot", "", map[string]any{"expression": expr, "points": 10000})
		if code != http.StatusUnprocessableEntity || body["kind"] != "DomainError" {
			t.Fatalf("%s: expected 422 DomainError, got %d %v", expr, code, body)
		}
	}
}

func TestDecodeLimitsBody(t *testing.T) {
	body := `{"expression": "x + ` + strings.Repeat("1+", maxBodyBytes) + `1"}`
	rec := httptest.NewRecorder()
	var req struct {
		Expression string `json:"expression"`
	}
	if decode(rec, httptest.NewRequest(http.MethodPost, "/api/v1/plot", strings.NewReader(body)), &req) {
		t.Fatalf("oversized body must be rejected")
	}
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	if !decode(rec, httptest.NewRequest(http.MethodPost, "/api/v1/plot", strings.NewReader(`{"expression": "x"}`)), &req) || req.Expression != "x" {
		t.Fatalf("small body must be decoded, got %d", rec.Code)
	}
}

func TestStatisticsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	code, body := call(t, srv, "POST", "/api/v1/statistics", "", map[string]any{"data": "1, 2, 2, 3", "precision": 2})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d %v", code, body)
	}
	summary := body["summary"].(map[string]any)
	if summary["count"] != float64(4) || summary["mode"] != float64(2) {
		t.Fatalf("unexpected summary %v", summary)
	}
	rows := body["rows"].([]any)
	if mean := rows[1].(map[string]any); mean["value"] != "2.00" {
		t.Fatalf("unexpected mean row %v", mean)
	}

	if code, _ := call(t, srv, "POST", "/api/v1/statistics", "", map[string]any{"data": "1"}); code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for a single value, got %d", code)
	}
	if code, _ := call(t, srv, "POST", "/api/v1/statistics", "", map[string]any{"data": "1, x"}); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad data, got %d", code)
	}
}

func TestSymbolicEndpoint(t *testing.T) {
	srv := newTestServer(t)

	code, body := call(t, srv, "POST", "/api/v1/symbolic", "", map[string]any{"expression": "sin(x)/x", "operation": "limit", "point": "0"})
	if code != http.StatusOK || body["value"] != float64(1) {
		t.Fatalf("unexpected limit %d %v", code, body)
	}
	if code, _ := call(t, srv, "POST", "/api/v1/symbolic", "", map[string]any{"expression": "x", "operation": "solve"}); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown operation, got %d", code)
	}
}
