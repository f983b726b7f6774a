package history

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/vedannt004/careerprep-chatbot/internal/dto"
)

func newTestHandler(t *testing.T) (*Handler, *Store) {
	store := setupTestStore(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(store, logger), store
}

func TestHandler_RegisterRoutes(t *testing.T) {
	h, _ := newTestHandler(t)
	e := echo.New()
	h.RegisterRoutes(e.Group("/history"))

	found := false
	for _, r := range e.Routes() {
		if r.Path == "/history/:session_id" {
			found = true
		}
	}
	if !found {
		t.Error("expected /history/:session_id to be registered")
	}
}

func TestHandler_Get(t *testing.T) {
	h, store := newTestHandler(t)
	ctx := context.Background()
	_ = store.RecordTurn(ctx, &Turn{SessionID: "prep_1", Mode: "interview", Answer: "answer", NextQuestion: "next?", AskedIdx: 1})
	_ = store.RecordReport(ctx, &Report{SessionID: "prep_1", Score: 55})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/history/prep_1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("session_id")
	c.SetParamValues("prep_1")

	if err := h.Get(c); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.HistoryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Turns) != 1 || resp.Turns[0].NextQuestion != "next?" {
		t.Errorf("unexpected turns %+v", resp.Turns)
	}
	if len(resp.Reports) != 1 || resp.Reports[0].Score != 55 {
		t.Errorf("unexpected reports %+v", resp.Reports)
	}
	if resp.Reports[0].PresentKeywords == nil {
		t.Error("keyword lists must encode as arrays")
	}
}

func TestHandler_Get_Empty(t *testing.T) {
	h, _ := newTestHandler(t)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/history/unknown", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("session_id")
	c.SetParamValues("unknown")

	if err := h.Get(c); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if rec.Body.String() == "" {
		t.Fatal("expected body")
	}
	var resp dto.HistoryResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Turns == nil || len(resp.Turns) != 0 {
		t.Errorf("expected empty turns array, got %v", resp.Turns)
	}
}

func TestHandler_Get_MissingSession(t *testing.T) {
	h, _ := newTestHandler(t)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/history/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Get(c)
	if err == nil {
		t.Fatal("expected error")
	}
	httpErr := err.(*echo.HTTPError)
	if httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, httpErr.Code)
	}
}

func TestHandler_Delete(t *testing.T) {
	h, store := newTestHandler(t)
	_ = store.RecordTurn(context.Background(), &Turn{SessionID: "prep_1", Mode: "interview"})

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/history/prep_1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("session_id")
	c.SetParamValues("prep_1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
	turns, _ := store.Turns(context.Background(), "prep_1", 0)
	if len(turns) != 0 {
		t.Error("expected turns to be deleted")
	}
}
