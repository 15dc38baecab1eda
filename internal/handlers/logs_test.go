package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	dw "controlling_dishwasher"
	"controlling_dishwasher/internal/service"
)

func TestLogsHandler_ListAndValidation(t *testing.T) {
	auth := &mockAuth{parseID: 99}
	now := time.Now().UTC().Truncate(time.Second)
	events := []dw.HardwareEvent{
		{EventID: "e1", OccurredAt: now, Type: "DOOR", Description: "door locked"},
		{EventID: "e2", OccurredAt: now.Add(1 * time.Second), Type: "FAULT", Description: "pour failed"},
	}
	logs := &mockEventLog{resp: events}
	s := &service.Service{
		Authorization: auth,
		EventLog:      logs,
	}
	r := newTestRouter(s)

	// Missing/invalid 'from' → 400
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/logs/?from=notatime", nil)
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid 'from', got %d", w.Code)
	}

	// Valid range and type (lowercase type should be normalized to upper in service call)
	w = httptest.NewRecorder()
	q := "/api/v1/logs/?from=" + now.Format(time.RFC3339) + "&to=" + now.Add(2*time.Second).Format(time.RFC3339) + "&type=fault"
	req = httptest.NewRequest(http.MethodGet, q, nil)
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("logs status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count  int                   `json:"count"`
		Events []dw.HardwareEvent `json:"events"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Count != 2 || len(out.Events) != 2 {
		t.Fatalf("unexpected response: %+v", out)
	}
	if logs.lastType != "FAULT" {
		t.Fatalf("expected lastType FAULT, got %q", logs.lastType)
	}

	// Date-only 'to' covers the whole day
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/logs/?to=2025-08-31", nil)
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("logs status=%d, body=%s", w.Code, w.Body.String())
	}
	wantTo := time.Date(2025, time.August, 31, 23, 59, 59, 999999999, time.UTC)
	if !logs.lastTo.Equal(wantTo) {
		t.Fatalf("expected lastTo %v, got %v", wantTo, logs.lastTo)
	}

	// Range errors from the service → 400
	logs.err = service.ErrInvalidTimeRange
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/logs/?from=2025-09-02&to=2025-09-01", nil)
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted range, got %d", w.Code)
	}

	// Unknown journal category → 400 naming the accepted types
	logs.err = fmt.Errorf("%w %q", service.ErrUnknownEventType, "rinse")
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/logs/?type=rinse", nil)
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown type, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "MAINTENANCE") {
		t.Fatalf("expected accepted types in body, got %s", w.Body.String())
	}
}
