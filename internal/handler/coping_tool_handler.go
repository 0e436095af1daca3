package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/copingtool"
	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/model"
)

// CopingToolServiceInterface はコーピングツールハンドラーが必要とするサービスインターフェース。
type CopingToolServiceInterface interface {
	ListCatalog(ctx context.Context) ([]*model.CopingTool, error)
	ListCompletions(ctx context.Context, userID string, sessionID *string) ([]*model.CopingToolCompletion, error)
	Complete(ctx context.Context, userID string, input copingtool.CompleteInput) (*copingtool.CompletionResult, error)
}

// CopingToolHandler はコーピングツールのHTTPハンドラー。
type CopingToolHandler struct {
	service CopingToolServiceInterface
}

// NewCopingToolHandler はCopingToolHandlerを生成する。
func NewCopingToolHandler(service CopingToolServiceInterface) *CopingToolHandler {
	return &CopingToolHandler{service: service}
}

// copingToolResponse はツール情報のAPIレスポンス。
type copingToolResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Duration    string   `json:"duration"`
	Steps       []string `json:"steps"`
	WhenToUse   string   `json:"when_to_use"`
	IsMandatory bool     `json:"is_mandatory"`
	Position    int      `json:"position"`
}

// completionResponse は完了レコードのAPIレスポンス。
type completionResponse struct {
	ID          string    `json:"id"`
	ToolID      string    `json:"tool_id"`
	SessionID   *string   `json:"session_id"`
	CompletedAt time.Time `json:"completed_at"`
}

type completeRequest struct {
	ToolID          string  `json:"tool_id"`
	SessionID       *string `json:"session_id"`
	FromCravingFlow bool    `json:"from_craving_flow"`
}

// completeResponse は完了記録のAPIレスポンス。
// 自動ジャーナル作成の結果はどちらか片方のフィールドにのみ現れる。
type completeResponse struct {
	Success               bool                  `json:"success"`
	Completion            completionResponse    `json:"completion"`
	AllMandatoryCompleted bool                  `json:"all_mandatory_completed"`
	CompletedMandatory    int                   `json:"completed_mandatory"`
	TotalMandatory        int                   `json:"total_mandatory"`
	AutoJournal           *journalEntryResponse `json:"auto_journal,omitempty"`
	AutoJournalError      string                `json:"auto_journal_error,omitempty"`
}

// ListCatalog はカタログ全件を返す。公開エンドポイント。
// GET /api/coping-tools
func (h *CopingToolHandler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	tools, err := h.service.ListCatalog(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]copingToolResponse, 0, len(tools))
	for _, tool := range tools {
		resp = append(resp, toCopingToolResponse(tool))
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListCompletions は呼び出しユーザーの完了一覧を返す。
// GET /api/coping-tools/completions?session_id=
func (h *CopingToolHandler) ListCompletions(w http.ResponseWriter, r *http.Request) {
	userID := requireUserID(w, r)
	if userID == "" {
		return
	}

	var sessionID *string
	if raw := r.URL.Query().Get("session_id"); raw != "" {
		sessionID = &raw
	}

	completions, err := h.service.ListCompletions(r.Context(), userID, sessionID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]completionResponse, 0, len(completions))
	for _, c := range completions {
		resp = append(resp, toCompletionResponse(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Complete はツール完了を記録する。
// POST /api/coping-tools/complete
func (h *CopingToolHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID := requireUserID(w, r)
	if userID == "" {
		return
	}

	var req completeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ToolID == "" {
		writeBadRequest(w, "tool_id is required")
		return
	}

	result, err := h.service.Complete(r.Context(), userID, copingtool.CompleteInput{
		ToolID:          req.ToolID,
		SessionID:       req.SessionID,
		FromCravingFlow: req.FromCravingFlow,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := completeResponse{
		Success:               true,
		Completion:            toCompletionResponse(result.Completion),
		AllMandatoryCompleted: result.AllMandatoryCompleted,
		CompletedMandatory:    result.CompletedMandatory,
		TotalMandatory:        result.TotalMandatory,
		AutoJournalError:      result.AutoJournalError,
	}
	if result.AutoJournal != nil {
		entry := toJournalEntryResponse(result.AutoJournal)
		resp.AutoJournal = &entry
	}
	writeJSON(w, http.StatusCreated, resp)
}

// --- ヘルパー関数 ---

func toCopingToolResponse(tool *model.CopingTool) copingToolResponse {
	return copingToolResponse{
		ID:          tool.ID,
		Title:       tool.Title,
		Duration:    tool.DurationLabel,
		Steps:       tool.Steps,
		WhenToUse:   tool.WhenToUse,
		IsMandatory: tool.IsMandatory,
		Position:    tool.Position,
	}
}

func toCompletionResponse(c *model.CopingToolCompletion) completionResponse {
	return completionResponse{
		ID:          c.ID,
		ToolID:      c.ToolID,
		SessionID:   c.SessionID,
		CompletedAt: c.CompletedAt,
	}
}
