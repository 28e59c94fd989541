package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestResponseBuilderDefaults(t *testing.T) {
	rec := httptest.NewRecorder()
	NewResponse().BodyHTML("<p>ok</p>").Write(rec)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Header().Get("HX-Trigger") != "" {
		t.Error("HX-Trigger set without triggers")
	}
}

func TestResponseBuilderTriggers(t *testing.T) {
	rec := httptest.NewRecorder()
	NewResponse().
		TriggerFormReset().
		TriggerSuccessNotification("saved").
		Write(rec)

	var triggers map[string]any
	if err := json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &triggers); err != nil {
		t.Fatalf("HX-Trigger not valid JSON: %v", err)
	}
	if _, ok := triggers["form:reset"]; !ok {
		t.Error("missing form:reset trigger")
	}
	note, ok := triggers["show-notification"].(map[string]any)
	if !ok {
		t.Fatal("missing show-notification trigger")
	}
	if note["message"] != "saved" || note["type"] != "success" {
		t.Errorf("notification = %v", note)
	}
}

func TestErrorResponseEscapesHTML(t *testing.T) {
	rec := httptest.NewRecorder()
	UnprocessableEntityError(`<script>alert("x")</script>`).Write(rec)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "<script>") {
		t.Errorf("body not escaped: %q", body)
	}
	if !strings.Contains(body, `class="error"`) {
		t.Errorf("body missing error fragment: %q", body)
	}
}
