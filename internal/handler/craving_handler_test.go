package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/craving"
	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/model"
)

// mockCravingService はCravingServiceInterfaceのモック実装。
type mockCravingService struct {
	startFn    func(ctx context.Context, userID string, input craving.StartInput) (*model.CravingSession, error)
	completeFn func(ctx context.Context, userID, sessionID string) (*model.CravingSession, error)
	listFn     func(ctx context.Context, userID string) ([]*model.CravingSession, error)
}

func (m *mockCravingService) Start(ctx context.Context, userID string, input craving.StartInput) (*model.CravingSession, error) {
	if m.startFn != nil {
		return m.startFn(ctx, userID, input)
	}
	return nil, nil
}

func (m *mockCravingService) Complete(ctx context.Context, userID, sessionID string) (*model.CravingSession, error) {
	if m.completeFn != nil {
		return m.completeFn(ctx, userID, sessionID)
	}
	return nil, nil
}

func (m *mockCravingService) List(ctx context.Context, userID string) ([]*model.CravingSession, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

func TestCravingHandler_Start_Success(t *testing.T) {
	svc := &mockCravingService{
		startFn: func(ctx context.Context, userID string, input craving.StartInput) (*model.CravingSession, error) {
			if input.NeedType != model.NeedTypeEscape {
				t.Errorf("need_type = %q, want escape", input.NeedType)
			}
			return &model.CravingSession{
				ID:        "session-1",
				UserID:    userID,
				StartedAt: time.Now(),
				Triggers:  input.Triggers,
				Intensity: input.Intensity,
				NeedType:  input.NeedType,
			}, nil
		},
	}
	h := NewCravingHandler(svc)

	body := `{"triggers": ["Stress"], "intensity": 7, "need_type": "escape"}`
	req := withUserID(httptest.NewRequest(http.MethodPost, "/api/craving-sessions", bytes.NewBufferString(body)), "user-1")
	w := httptest.NewRecorder()
	h.Start(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}

	resp := decodeJSONBody(t, w)
	if resp["id"] != "session-1" {
		t.Errorf("id = %v, want session-1", resp["id"])
	}
	if resp["completed_at"] != nil {
		t.Errorf("completed_at = %v, want null", resp["completed_at"])
	}
}

func TestCravingHandler_Start_InvalidIntensityMapped(t *testing.T) {
	svc := &mockCravingService{
		startFn: func(ctx context.Context, userID string, input craving.StartInput) (*model.CravingSession, error) {
			return nil, model.NewInvalidIntensityError(input.Intensity)
		},
	}
	h := NewCravingHandler(svc)

	body := `{"intensity": 11, "need_type": "escape"}`
	req := withUserID(httptest.NewRequest(http.MethodPost, "/api/craving-sessions", bytes.NewBufferString(body)), "user-1")
	w := httptest.NewRecorder()
	h.Start(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	parseErrorResponse(t, w)
}

func TestCravingHandler_Complete_PassesURLParam(t *testing.T) {
	completedAt := time.Now()
	svc := &mockCravingService{
		completeFn: func(ctx context.Context, userID, sessionID string) (*model.CravingSession, error) {
			if sessionID != "session-1" {
				t.Errorf("sessionID = %q, want session-1", sessionID)
			}
			return &model.CravingSession{
				ID:          sessionID,
				UserID:      userID,
				StartedAt:   completedAt.Add(-10 * time.Minute),
				CompletedAt: &completedAt,
				Intensity:   7,
				NeedType:    model.NeedTypeEscape,
			}, nil
		},
	}
	h := NewCravingHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/craving-sessions/session-1/complete", nil)
	req = withUserID(withChiURLParam(req, "id", "session-1"), "user-1")
	w := httptest.NewRecorder()
	h.Complete(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	resp := decodeJSONBody(t, w)
	if resp["completed_at"] == nil {
		t.Error("completed_at must be set after completion")
	}
}

func TestCravingHandler_Complete_AlreadyCompletedMapped(t *testing.T) {
	svc := &mockCravingService{
		completeFn: func(ctx context.Context, userID, sessionID string) (*model.CravingSession, error) {
			return nil, model.NewSessionAlreadyCompletedError(sessionID)
		},
	}
	h := NewCravingHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/craving-sessions/session-1/complete", nil)
	req = withUserID(withChiURLParam(req, "id", "session-1"), "user-1")
	w := httptest.NewRecorder()
	h.Complete(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	parseErrorResponse(t, w)
}

func TestCravingHandler_List_EmptyIsArray(t *testing.T) {
	h := NewCravingHandler(&mockCravingService{})

	req := withUserID(httptest.NewRequest(http.MethodGet, "/api/craving-sessions", nil), "user-1")
	w := httptest.NewRecorder()
	h.List(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Body.String(); got != "[]\n" {
		t.Errorf("body = %q, want empty JSON array", got)
	}
}
