package httpjson

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	Message(rec, http.StatusCreated, "Item created successfully")

	if rec.Code != http.StatusCreated {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusCreated)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type: got %q", ct)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["message"] != "Item created successfully" {
		t.Errorf("message: got %q", body["message"])
	}
}

func TestInternal_DoesNotLeakDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	Internal(rec)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d", rec.Code)
	}
	if got := rec.Body.String(); strings.Contains(got, "mongo") {
		t.Errorf("internal detail leaked: %q", got)
	}
}

func TestDecode_Invalid(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	var dst struct{}
	if Decode(rec, req, &dst) {
		t.Fatal("expected Decode to fail")
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestDecode_Valid(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"case"}`))
	rec := httptest.NewRecorder()

	var dst struct {
		Name string `json:"name"`
	}
	if !Decode(rec, req, &dst) {
		t.Fatal("expected Decode to succeed")
	}
	if dst.Name != "case" {
		t.Errorf("decoded name: got %q", dst.Name)
	}
}
