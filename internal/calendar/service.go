// Package calendar はカレンダーイベントのドメインロジックを提供する。
package calendar

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/model"
	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/repository"
	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/security"
)

// 日付・月トークンは形式のみを検証する。暦として実在する日付かは問わない。
var (
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern  = regexp.MustCompile(`^\d{2}:\d{2}$`)
	monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

// CreateInput はイベント作成のリクエスト内容。
type CreateInput struct {
	Title           string
	Description     *string
	Date            string // YYYY-MM-DD
	Time            string // HH:MM
	DurationMinutes int
	ReminderMinutes int
	ReminderEnabled bool
}

// PatchInput はイベント部分更新のリクエスト内容。
// nilのフィールドは更新しない。
type PatchInput struct {
	Title           *string
	Description     *string
	Date            *string
	Time            *string
	DurationMinutes *int
	ReminderMinutes *int
	ReminderEnabled *bool
}

// ListFilter はイベント一覧の絞り込み条件。DateとMonthは排他で、
// どちらも空の場合は全件を返す。
type ListFilter struct {
	Date  string // YYYY-MM-DD 単一日
	Month string // YYYY-MM 月全体
}

// Service はカレンダーイベントのサービス層。
type Service struct {
	eventRepo repository.CalendarEventRepository
	sanitizer security.TextSanitizerService
}

// NewService はServiceを生成する。
func NewService(eventRepo repository.CalendarEventRepository, sanitizer security.TextSanitizerService) *Service {
	return &Service{
		eventRepo: eventRepo,
		sanitizer: sanitizer,
	}
}

// MonthRange は月トークンを [月初日, 翌月初日の前日] の両端含む日付範囲に展開する。
// time.AddDateに委譲するため閏年も正しく扱える。
func MonthRange(month string) (startDate, endDate string, err error) {
	if !monthPattern.MatchString(month) {
		return "", "", model.NewInvalidMonthError(month)
	}

	first, err := time.Parse("2006-01", month)
	if err != nil {
		return "", "", model.NewInvalidMonthError(month)
	}

	last := first.AddDate(0, 1, 0).AddDate(0, 0, -1)
	return first.Format("2006-01-02"), last.Format("2006-01-02"), nil
}

// Create は新しいイベントを作成する。
func (s *Service) Create(ctx context.Context, userID string, input CreateInput) (*model.CalendarEvent, error) {
	title := s.sanitizer.Sanitize(input.Title)
	if title == "" {
		return nil, model.NewValidationError(model.ErrCodeInvalidRequest, "title is required")
	}
	if !datePattern.MatchString(input.Date) {
		return nil, model.NewInvalidDateError(input.Date)
	}
	if !timePattern.MatchString(input.Time) {
		return nil, model.NewInvalidTimeError(input.Time)
	}
	if input.DurationMinutes <= 0 {
		return nil, model.NewValidationError(model.ErrCodeInvalidDuration, "duration_minutes must be greater than 0")
	}
	if input.ReminderMinutes < 0 {
		return nil, model.NewValidationError(model.ErrCodeInvalidReminder, "reminder_minutes must not be negative")
	}

	event := &model.CalendarEvent{
		ID:              uuid.New().String(),
		UserID:          userID,
		Title:           title,
		Description:     s.sanitizeDescription(input.Description),
		Date:            input.Date,
		Time:            input.Time,
		DurationMinutes: input.DurationMinutes,
		ReminderMinutes: input.ReminderMinutes,
		ReminderEnabled: input.ReminderEnabled,
		CreatedAt:       time.Now(),
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create calendar event: %w", err)
	}
	return event, nil
}

// List はフィルタ条件に従ってユーザーのイベントを返す。
// 並び順はdate降順、time降順。
func (s *Service) List(ctx context.Context, userID string, filter ListFilter) ([]*model.CalendarEvent, error) {
	switch {
	case filter.Date != "":
		if !datePattern.MatchString(filter.Date) {
			return nil, model.NewInvalidDateError(filter.Date)
		}
		events, err := s.eventRepo.ListByUserAndDateRange(ctx, userID, filter.Date, filter.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to list calendar events: %w", err)
		}
		return events, nil

	case filter.Month != "":
		startDate, endDate, err := MonthRange(filter.Month)
		if err != nil {
			return nil, err
		}
		events, err := s.eventRepo.ListByUserAndDateRange(ctx, userID, startDate, endDate)
		if err != nil {
			return nil, fmt.Errorf("failed to list calendar events: %w", err)
		}
		return events, nil

	default:
		events, err := s.eventRepo.ListByUserID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to list calendar events: %w", err)
		}
		return events, nil
	}
}

// Patch はイベントを部分更新する。
// フロー: 取得 → 存在チェック(404) → 所有者チェック(403) → フィールド検証 → 上書き
func (s *Service) Patch(ctx context.Context, userID, eventID string, patch PatchInput) (*model.CalendarEvent, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to find calendar event: %w", err)
	}
	if event == nil {
		return nil, model.NewCalendarEventNotFoundError(eventID)
	}
	if event.UserID != userID {
		return nil, model.NewForbiddenError()
	}

	if patch.Title == nil && patch.Description == nil && patch.Date == nil &&
		patch.Time == nil && patch.DurationMinutes == nil &&
		patch.ReminderMinutes == nil && patch.ReminderEnabled == nil {
		return nil, model.NewNothingToUpdateError()
	}

	if patch.Title != nil {
		title := s.sanitizer.Sanitize(*patch.Title)
		if title == "" {
			return nil, model.NewValidationError(model.ErrCodeInvalidRequest, "title is required")
		}
		event.Title = title
	}
	if patch.Date != nil {
		if !datePattern.MatchString(*patch.Date) {
			return nil, model.NewInvalidDateError(*patch.Date)
		}
		event.Date = *patch.Date
	}
	if patch.Time != nil {
		if !timePattern.MatchString(*patch.Time) {
			return nil, model.NewInvalidTimeError(*patch.Time)
		}
		event.Time = *patch.Time
	}
	if patch.DurationMinutes != nil {
		if *patch.DurationMinutes <= 0 {
			return nil, model.NewValidationError(model.ErrCodeInvalidDuration, "duration_minutes must be greater than 0")
		}
		event.DurationMinutes = *patch.DurationMinutes
	}
	if patch.ReminderMinutes != nil {
		if *patch.ReminderMinutes < 0 {
			return nil, model.NewValidationError(model.ErrCodeInvalidReminder, "reminder_minutes must not be negative")
		}
		event.ReminderMinutes = *patch.ReminderMinutes
	}
	if patch.Description != nil {
		event.Description = s.sanitizeDescription(patch.Description)
	}
	if patch.ReminderEnabled != nil {
		event.ReminderEnabled = *patch.ReminderEnabled
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update calendar event: %w", err)
	}
	return event, nil
}

// Delete はイベントを削除する。所有者のみが削除できる。
func (s *Service) Delete(ctx context.Context, userID, eventID string) error {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to find calendar event: %w", err)
	}
	if event == nil {
		return model.NewCalendarEventNotFoundError(eventID)
	}
	if event.UserID != userID {
		return model.NewForbiddenError()
	}

	if err := s.eventRepo.DeleteByID(ctx, eventID); err != nil {
		return fmt.Errorf("failed to delete calendar event: %w", err)
	}
	return nil
}

func (s *Service) sanitizeDescription(description *string) *string {
	if description == nil {
		return nil
	}
	sanitized := s.sanitizer.Sanitize(*description)
	return &sanitized
}
