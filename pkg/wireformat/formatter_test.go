package wireformat

import (
	"net/http/httptest"
	"strings"
	"testing"
)

type payload struct {
	Depth float64 `json:"depth"`
}

func TestWriteResponseDefaultsToJSON(t *testing.T) {
	f := New()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/snapshot", nil)
	if err := f.WriteResponse(rr, req, payload{Depth: 30}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if !strings.Contains(rr.Body.String(), "30") {
		t.Errorf("expected body to contain the depth value, got %q", rr.Body.String())
	}
}

func TestWriteResponseMsgPack(t *testing.T) {
	f := New()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/snapshot?format=msgpack", nil)
	if err := f.WriteResponse(rr, req, payload{Depth: 30}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/x-msgpack" {
		t.Errorf("Content-Type = %q, want application/x-msgpack", ct)
	}
	if rr.Body.Len() == 0 {
		t.Errorf("expected non-empty msgpack body")
	}
}
