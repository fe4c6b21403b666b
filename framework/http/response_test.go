package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	gohttp "github.com/km-arc/go-inject/framework/http"
	"github.com/km-arc/go-inject/framework/http/validation"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func newResponse(t *testing.T) (*gohttp.Response, *httptest.ResponseRecorder) {
	t.Helper()
	rr := httptest.NewRecorder()
	return gohttp.NewResponse(rr), rr
}

func decodeJSON(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&m); err != nil {
		t.Fatalf("decodeJSON: %v", err)
	}
	return m
}

// ── JSON ──────────────────────────────────────────────────────────────────────

func TestResponse_JSON(t *testing.T) {
	res, rr := newResponse(t)
	res.JSON(http.StatusOK, map[string]any{"key": "val"})

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q want application/json", ct)
	}
	m := decodeJSON(t, rr)
	if m["key"] != "val" {
		t.Errorf("body key: got %v want val", m["key"])
	}
}

func TestResponse_SuccessAndCreated(t *testing.T) {
	tests := []struct {
		name   string
		send   func(*gohttp.Response)
		status int
	}{
		{"success", func(r *gohttp.Response) { r.Success(map[string]any{"id": 1}) }, http.StatusOK},
		{"created", func(r *gohttp.Response) { r.Created(map[string]any{"id": 1}) }, http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, rr := newResponse(t)
			tt.send(res)

			if rr.Code != tt.status {
				t.Errorf("status: got %d want %d", rr.Code, tt.status)
			}
			data, ok := decodeJSON(t, rr)["data"].(map[string]any)
			if !ok {
				t.Fatal("expected 'data' envelope")
			}
			if data["id"] != float64(1) {
				t.Errorf("data.id: got %v want 1", data["id"])
			}
		})
	}
}

func TestResponse_NoContent(t *testing.T) {
	res, rr := newResponse(t)
	res.NoContent()

	if rr.Code != http.StatusNoContent {
		t.Errorf("status: got %d want 204", rr.Code)
	}
	if rr.Body.Len() != 0 {
		t.Errorf("body should be empty, got %q", rr.Body.String())
	}
}

// ── Errors ────────────────────────────────────────────────────────────────────

func TestResponse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		send    func(*gohttp.Response)
		status  int
		message string
	}{
		{"error", func(r *gohttp.Response) { r.Error(http.StatusBadRequest, "bad id") }, 400, "bad id"},
		{"not found default", func(r *gohttp.Response) { r.NotFound() }, 404, "Not found."},
		{"not found custom", func(r *gohttp.Response) { r.NotFound("Todo not found.") }, 404, "Todo not found."},
		{"server error", func(r *gohttp.Response) { r.ServerError() }, 500, "Server Error."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, rr := newResponse(t)
			tt.send(res)

			if rr.Code != tt.status {
				t.Errorf("status: got %d want %d", rr.Code, tt.status)
			}
			if got := decodeJSON(t, rr)["message"]; got != tt.message {
				t.Errorf("message: got %v want %q", got, tt.message)
			}
		})
	}
}

// ── ValidationError ───────────────────────────────────────────────────────────

func TestResponse_ValidationError(t *testing.T) {
	res, rr := newResponse(t)

	v := validation.Make(
		map[string]string{"title": ""},
		validation.Rules{"title": "required|max:200"},
	)
	_ = v.Fails()
	res.ValidationError(v.Errors())

	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("status: got %d want 422", rr.Code)
	}

	var body struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Message == "" {
		t.Error("expected a message")
	}
	if _, ok := body.Errors["title"]; !ok {
		t.Error("expected 'title' key in errors")
	}
}

func TestResponse_Raw(t *testing.T) {
	res, rr := newResponse(t)
	if res.Raw() != rr {
		t.Error("Raw should return the wrapped writer")
	}
}
