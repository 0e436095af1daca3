package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/craving"
	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/model"
)

// CravingServiceInterface はクレービングセッションハンドラーが必要とするサービスインターフェース。
type CravingServiceInterface interface {
	Start(ctx context.Context, userID string, input craving.StartInput) (*model.CravingSession, error)
	Complete(ctx context.Context, userID, sessionID string) (*model.CravingSession, error)
	List(ctx context.Context, userID string) ([]*model.CravingSession, error)
}

// CravingHandler はクレービングセッションのHTTPハンドラー。
type CravingHandler struct {
	service CravingServiceInterface
}

// NewCravingHandler はCravingHandlerを生成する。
func NewCravingHandler(service CravingServiceInterface) *CravingHandler {
	return &CravingHandler{service: service}
}

type startCravingRequest struct {
	Triggers  []string `json:"triggers"`
	Intensity int      `json:"intensity"`
	NeedType  string   `json:"need_type"`
}

// cravingSessionResponse はセッションのAPIレスポンス。
type cravingSessionResponse struct {
	ID          string     `json:"id"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	Triggers    []string   `json:"triggers"`
	Intensity   int        `json:"intensity"`
	NeedType    string     `json:"need_type"`
}

// Start は新しいセッションを開始する。
// POST /api/craving-sessions
func (h *CravingHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID := requireUserID(w, r)
	if userID == "" {
		return
	}

	var req startCravingRequest
	if !decodeBody(w, r, &req) {
		return
	}

	session, err := h.service.Start(r.Context(), userID, craving.StartInput{
		Triggers:  req.Triggers,
		Intensity: req.Intensity,
		NeedType:  model.NeedType(req.NeedType),
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCravingSessionResponse(session))
}

// Complete はセッションを完了にする。
// POST /api/craving-sessions/:id/complete
func (h *CravingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID := requireUserID(w, r)
	if userID == "" {
		return
	}
	sessionID := chi.URLParam(r, "id")

	session, err := h.service.Complete(r.Context(), userID, sessionID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCravingSessionResponse(session))
}

// List は呼び出しユーザーのセッション一覧を新しい順で返す。
// GET /api/craving-sessions
func (h *CravingHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := requireUserID(w, r)
	if userID == "" {
		return
	}

	sessions, err := h.service.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]cravingSessionResponse, 0, len(sessions))
	for _, session := range sessions {
		resp = append(resp, toCravingSessionResponse(session))
	}
	writeJSON(w, http.StatusOK, resp)
}

func toCravingSessionResponse(session *model.CravingSession) cravingSessionResponse {
	return cravingSessionResponse{
		ID:          session.ID,
		StartedAt:   session.StartedAt,
		CompletedAt: session.CompletedAt,
		Triggers:    emptyIfNil(session.Triggers),
		Intensity:   session.Intensity,
		NeedType:    string(session.NeedType),
	}
}
