package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wolfman30/yt-re-growth-api/internal/http/respond"
	"github.com/wolfman30/yt-re-growth-api/pkg/logging"
)

func newTestHandler(store *recordingStore) *Handler {
	logger := logging.Discard()
	return NewHandler(NewService(store, logger), logger)
}

func TestCreateLead_Success(t *testing.T) {
	store := &recordingStore{id: "abc123"}
	handler := newTestHandler(store)

	reqBody := Lead{
		Name:  "John Doe",
		Email: "john@example.com",
		Phone: "+1234567890",
		Niche: "luxury",
	}

	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/api/leads", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreateLead(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var result CaptureResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.ID != "abc123" {
		t.Errorf("expected id abc123, got %s", result.ID)
	}
	if result.Message != "Lead captured" {
		t.Errorf("expected capture message, got %s", result.Message)
	}
	if store.document["niche"] != "luxury" {
		t.Errorf("expected niche to be stored, got %v", store.document["niche"])
	}
}

func TestCreateLead_InvalidEmail(t *testing.T) {
	store := &recordingStore{id: "abc123"}
	handler := newTestHandler(store)

	req := httptest.NewRequest(http.MethodPost, "/api/leads", strings.NewReader(`{"name":"John","email":"nope"}`))
	w := httptest.NewRecorder()

	handler.CreateLead(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, w.Code)
	}
	var body respond.ValidationBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body.Detail) != 1 || body.Detail[0].Loc[1] != "email" {
		t.Fatalf("expected single email error, got %+v", body.Detail)
	}
	if store.calls != 0 {
		t.Fatalf("store must not be called, got %d calls", store.calls)
	}
}

func TestCreateLead_MissingName(t *testing.T) {
	store := &recordingStore{id: "abc123"}
	handler := newTestHandler(store)

	req := httptest.NewRequest(http.MethodPost, "/api/leads", strings.NewReader(`{"email":"john@example.com"}`))
	w := httptest.NewRecorder()

	handler.CreateLead(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, w.Code)
	}
	if store.calls != 0 {
		t.Fatalf("store must not be called, got %d calls", store.calls)
	}
}

func TestCreateLead_InvalidJSON(t *testing.T) {
	store := &recordingStore{id: "abc123"}
	handler := newTestHandler(store)

	req := httptest.NewRequest(http.MethodPost, "/api/leads", strings.NewReader("{"))
	w := httptest.NewRecorder()

	handler.CreateLead(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, w.Code)
	}
	if store.calls != 0 {
		t.Fatalf("store must not be called, got %d calls", store.calls)
	}
}

func TestCreateLead_StorageError(t *testing.T) {
	store := &recordingStore{err: errors.New("mongo: server selection timeout")}
	handler := newTestHandler(store)

	req := httptest.NewRequest(http.MethodPost, "/api/leads", strings.NewReader(`{"name":"John","email":"john@example.com"}`))
	w := httptest.NewRecorder()

	handler.CreateLead(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected %d, got %d", http.StatusInternalServerError, w.Code)
	}
	if strings.Contains(w.Body.String(), "server selection") {
		t.Fatalf("storage cause must not leak to clients: %s", w.Body.String())
	}
}

type stubCapturer struct {
	err error
}

func (s stubCapturer) Capture(context.Context, Lead) (*CaptureResult, error) {
	return nil, s.err
}

func TestCreateLead_UnexpectedError(t *testing.T) {
	handler := NewHandler(stubCapturer{err: errors.New("boom")}, logging.Discard())

	req := httptest.NewRequest(http.MethodPost, "/api/leads", strings.NewReader(`{"name":"John","email":"john@example.com"}`))
	w := httptest.NewRecorder()

	handler.CreateLead(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected %d, got %d", http.StatusInternalServerError, w.Code)
	}
}
