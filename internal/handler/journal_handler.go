package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/journal"
	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/model"
)

// JournalServiceInterface はジャーナルハンドラーが必要とするサービスインターフェース。
type JournalServiceInterface interface {
	Create(ctx context.Context, userID string, input journal.CreateInput) (*model.JournalEntry, error)
	List(ctx context.Context, userID string) ([]*model.JournalEntry, error)
	Patch(ctx context.Context, userID, entryID string, patch journal.PatchInput) (*model.JournalEntry, error)
	Delete(ctx context.Context, userID, entryID string) error
	GetStats(ctx context.Context, userID string) (*journal.Stats, error)
}

// JournalHandler はジャーナルのHTTPハンドラー。
type JournalHandler struct {
	service JournalServiceInterface
}

// NewJournalHandler はJournalHandlerを生成する。
func NewJournalHandler(service JournalServiceInterface) *JournalHandler {
	return &JournalHandler{service: service}
}

// journalEntryResponse はエントリのAPIレスポンス。
type journalEntryResponse struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	HadCraving    bool      `json:"had_craving"`
	Triggers      []string  `json:"triggers"`
	Intensity     *int      `json:"intensity"`
	ToolsUsed     []string  `json:"tools_used"`
	Outcome       string    `json:"outcome"`
	Notes         *string   `json:"notes"`
	AutoGenerated bool      `json:"auto_generated"`
}

type createJournalRequest struct {
	HadCraving bool     `json:"had_craving"`
	Triggers   []string `json:"triggers"`
	Intensity  *int     `json:"intensity"`
	ToolsUsed  []string `json:"tools_used"`
	Outcome    string   `json:"outcome"`
	Notes      *string  `json:"notes"`
}

type patchJournalRequest struct {
	HadCraving *bool    `json:"had_craving"`
	Triggers   []string `json:"triggers"`
	Intensity  *int     `json:"intensity"`
	ToolsUsed  []string `json:"tools_used"`
	Outcome    *string  `json:"outcome"`
	Notes      *string  `json:"notes"`
}

// nameCountResponse は頻度付き名前のAPIレスポンス。
type nameCountResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// statsResponse はジャーナル統計のAPIレスポンス。
type statsResponse struct {
	TotalEntries     int                 `json:"total_entries"`
	CravingCount     int                 `json:"craving_count"`
	ResistedCount    int                 `json:"resisted_count"`
	AverageIntensity float64             `json:"average_intensity"`
	CommonTriggers   []nameCountResponse `json:"common_triggers"`
	CommonTools      []nameCountResponse `json:"common_tools"`
}

// Create はエントリを作成する。
// POST /api/journal
func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := requireUserID(w, r)
	if userID == "" {
		return
	}

	var req createJournalRequest
	if !decodeBody(w, r, &req) {
		return
	}

	entry, err := h.service.Create(r.Context(), userID, journal.CreateInput{
		HadCraving: req.HadCraving,
		Triggers:   req.Triggers,
		Intensity:  req.Intensity,
		ToolsUsed:  req.ToolsUsed,
		Outcome:    model.Outcome(req.Outcome),
		Notes:      req.Notes,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toJournalEntryResponse(entry))
}

// List は呼び出しユーザーのエントリ一覧を新しい順で返す。
// GET /api/journal
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := requireUserID(w, r)
	if userID == "" {
		return
	}

	entries, err := h.service.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]journalEntryResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, toJournalEntryResponse(entry))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Patch はエントリを部分更新する。
// PUT /api/journal/:id
func (h *JournalHandler) Patch(w http.ResponseWriter, r *http.Request) {
	userID := requireUserID(w, r)
	if userID == "" {
		return
	}
	entryID := chi.URLParam(r, "id")

	var req patchJournalRequest
	if !decodeBody(w, r, &req) {
		return
	}

	patch := journal.PatchInput{
		HadCraving: req.HadCraving,
		Triggers:   req.Triggers,
		Intensity:  req.Intensity,
		ToolsUsed:  req.ToolsUsed,
		Notes:      req.Notes,
	}
	if req.Outcome != nil {
		outcome := model.Outcome(*req.Outcome)
		patch.Outcome = &outcome
	}

	entry, err := h.service.Patch(r.Context(), userID, entryID, patch)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toJournalEntryResponse(entry))
}

// Delete はエントリを削除する。
// DELETE /api/journal/:id
func (h *JournalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := requireUserID(w, r)
	if userID == "" {
		return
	}
	entryID := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), userID, entryID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Stats は直近エントリの統計を返す。
// GET /api/journal/stats
func (h *JournalHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID := requireUserID(w, r)
	if userID == "" {
		return
	}

	stats, err := h.service.GetStats(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toStatsResponse(stats))
}

// --- ヘルパー関数 ---

func toJournalEntryResponse(entry *model.JournalEntry) journalEntryResponse {
	return journalEntryResponse{
		ID:            entry.ID,
		CreatedAt:     entry.CreatedAt,
		HadCraving:    entry.HadCraving,
		Triggers:      emptyIfNil(entry.Triggers),
		Intensity:     entry.Intensity,
		ToolsUsed:     emptyIfNil(entry.ToolsUsed),
		Outcome:       string(entry.Outcome),
		Notes:         entry.Notes,
		AutoGenerated: entry.AutoGenerated,
	}
}

func toStatsResponse(stats *journal.Stats) statsResponse {
	resp := statsResponse{
		TotalEntries:     stats.TotalEntries,
		CravingCount:     stats.CravingCount,
		ResistedCount:    stats.ResistedCount,
		AverageIntensity: stats.AverageIntensity,
		CommonTriggers:   make([]nameCountResponse, 0, len(stats.CommonTriggers)),
		CommonTools:      make([]nameCountResponse, 0, len(stats.CommonTools)),
	}
	for _, nc := range stats.CommonTriggers {
		resp.CommonTriggers = append(resp.CommonTriggers, nameCountResponse(nc))
	}
	for _, nc := range stats.CommonTools {
		resp.CommonTools = append(resp.CommonTools, nameCountResponse(nc))
	}
	return resp
}

// emptyIfNil はnilスライスを空配列としてJSONに出すための変換。
func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
