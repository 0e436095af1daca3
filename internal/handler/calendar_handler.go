package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/calendar"
	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/model"
)

// CalendarServiceInterface はカレンダーハンドラーが必要とするサービスインターフェース。
type CalendarServiceInterface interface {
	Create(ctx context.Context, userID string, input calendar.CreateInput) (*model.CalendarEvent, error)
	List(ctx context.Context, userID string, filter calendar.ListFilter) ([]*model.CalendarEvent, error)
	Patch(ctx context.Context, userID, eventID string, patch calendar.PatchInput) (*model.CalendarEvent, error)
	Delete(ctx context.Context, userID, eventID string) error
}

// CalendarHandler はカレンダーイベントのHTTPハンドラー。
type CalendarHandler struct {
	service CalendarServiceInterface
}

// NewCalendarHandler はCalendarHandlerを生成する。
func NewCalendarHandler(service CalendarServiceInterface) *CalendarHandler {
	return &CalendarHandler{service: service}
}

type createEventRequest struct {
	Title           string  `json:"title"`
	Description     *string `json:"description"`
	Date            string  `json:"date"`
	Time            string  `json:"time"`
	DurationMinutes int     `json:"duration_minutes"`
	ReminderMinutes int     `json:"reminder_minutes"`
	ReminderEnabled bool    `json:"reminder_enabled"`
}

type patchEventRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	Date            *string `json:"date"`
	Time            *string `json:"time"`
	DurationMinutes *int    `json:"duration_minutes"`
	ReminderMinutes *int    `json:"reminder_minutes"`
	ReminderEnabled *bool   `json:"reminder_enabled"`
}

// calendarEventResponse はイベントのAPIレスポンス。
type calendarEventResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     *string   `json:"description"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	DurationMinutes int       `json:"duration_minutes"`
	ReminderMinutes int       `json:"reminder_minutes"`
	ReminderEnabled bool      `json:"reminder_enabled"`
	CreatedAt       time.Time `json:"created_at"`
}

// Create はイベントを作成する。
// POST /api/calendar-events
func (h *CalendarHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := requireUserID(w, r)
	if userID == "" {
		return
	}

	var req createEventRequest
	if !decodeBody(w, r, &req) {
		return
	}

	event, err := h.service.Create(r.Context(), userID, calendar.CreateInput{
		Title:           req.Title,
		Description:     req.Description,
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: req.DurationMinutes,
		ReminderMinutes: req.ReminderMinutes,
		ReminderEnabled: req.ReminderEnabled,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCalendarEventResponse(event))
}

// List はイベント一覧を返す。dateとmonthのクエリパラメータで絞り込める。
// GET /api/calendar-events?date=|month=
func (h *CalendarHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := requireUserID(w, r)
	if userID == "" {
		return
	}

	filter := calendar.ListFilter{
		Date:  r.URL.Query().Get("date"),
		Month: r.URL.Query().Get("month"),
	}

	events, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]calendarEventResponse, 0, len(events))
	for _, event := range events {
		resp = append(resp, toCalendarEventResponse(event))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Patch はイベントを部分更新する。
// PUT /api/calendar-events/:id
func (h *CalendarHandler) Patch(w http.ResponseWriter, r *http.Request) {
	userID := requireUserID(w, r)
	if userID == "" {
		return
	}
	eventID := chi.URLParam(r, "id")

	var req patchEventRequest
	if !decodeBody(w, r, &req) {
		return
	}

	event, err := h.service.Patch(r.Context(), userID, eventID, calendar.PatchInput{
		Title:           req.Title,
		Description:     req.Description,
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: req.DurationMinutes,
		ReminderMinutes: req.ReminderMinutes,
		ReminderEnabled: req.ReminderEnabled,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCalendarEventResponse(event))
}

// Delete はイベントを削除する。
// DELETE /api/calendar-events/:id
func (h *CalendarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := requireUserID(w, r)
	if userID == "" {
		return
	}
	eventID := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), userID, eventID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toCalendarEventResponse(event *model.CalendarEvent) calendarEventResponse {
	return calendarEventResponse{
		ID:              event.ID,
		Title:           event.Title,
		Description:     event.Description,
		Date:            event.Date,
		Time:            event.Time,
		DurationMinutes: event.DurationMinutes,
		ReminderMinutes: event.ReminderMinutes,
		ReminderEnabled: event.ReminderEnabled,
		CreatedAt:       event.CreatedAt,
	}
}
