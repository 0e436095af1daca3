package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/model"
)

// PostgresCalendarEventRepo はPostgreSQLを使用したカレンダーイベントリポジトリ。
type PostgresCalendarEventRepo struct {
	db *sql.DB
}

// NewPostgresCalendarEventRepo はPostgresCalendarEventRepoを生成する。
func NewPostgresCalendarEventRepo(db *sql.DB) *PostgresCalendarEventRepo {
	return &PostgresCalendarEventRepo{db: db}
}

const calendarColumns = `id, user_id, title, description, date, time, duration_minutes, reminder_minutes, reminder_enabled, created_at`

// scanCalendarEvent は1行分のカレンダーイベントをスキャンする。
func scanCalendarEvent(scan func(dest ...any) error) (*model.CalendarEvent, error) {
	event := &model.CalendarEvent{}
	if err := scan(
		&event.ID, &event.UserID, &event.Title, &event.Description,
		&event.Date, &event.Time, &event.DurationMinutes,
		&event.ReminderMinutes, &event.ReminderEnabled, &event.CreatedAt,
	); err != nil {
		return nil, err
	}
	return event, nil
}

// Create はイベントを作成する。
func (r *PostgresCalendarEventRepo) Create(ctx context.Context, event *model.CalendarEvent) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO calendar_events (id, user_id, title, description, date, time, duration_minutes, reminder_minutes, reminder_enabled, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		event.ID, event.UserID, event.Title, event.Description,
		event.Date, event.Time, event.DurationMinutes,
		event.ReminderMinutes, event.ReminderEnabled, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert calendar event: %w", err)
	}
	return nil
}

// FindByID は指定IDのイベントを取得する。見つからない場合はnilを返す。
func (r *PostgresCalendarEventRepo) FindByID(ctx context.Context, id string) (*model.CalendarEvent, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+calendarColumns+` FROM calendar_events WHERE id = $1`,
		id,
	)
	event, err := scanCalendarEvent(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find calendar event: %w", err)
	}
	return event, nil
}

// ListByUserID はユーザーの全イベントをdate降順、time降順で返す。
func (r *PostgresCalendarEventRepo) ListByUserID(ctx context.Context, userID string) ([]*model.CalendarEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+calendarColumns+` FROM calendar_events
		 WHERE user_id = $1
		 ORDER BY date DESC, time DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}
	defer rows.Close()

	return collectCalendarEvents(rows)
}

// ListByUserAndDateRange は [startDate, endDate]（両端含む）に入る
// ユーザーのイベントをdate降順、time降順で返す。
// dateカラムはYYYY-MM-DD形式のため文字列比較で日付順になる。
func (r *PostgresCalendarEventRepo) ListByUserAndDateRange(ctx context.Context, userID, startDate, endDate string) ([]*model.CalendarEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+calendarColumns+` FROM calendar_events
		 WHERE user_id = $1 AND date >= $2 AND date <= $3
		 ORDER BY date DESC, time DESC`,
		userID, startDate, endDate,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar events by range: %w", err)
	}
	defer rows.Close()

	return collectCalendarEvents(rows)
}

// collectCalendarEvents は結果セット全行をスキャンして返す。
func collectCalendarEvents(rows *sql.Rows) ([]*model.CalendarEvent, error) {
	var events []*model.CalendarEvent
	for rows.Next() {
		event, err := scanCalendarEvent(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan calendar event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate calendar events: %w", err)
	}
	return events, nil
}

// Update はイベントを上書き更新する。
func (r *PostgresCalendarEventRepo) Update(ctx context.Context, event *model.CalendarEvent) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE calendar_events
		 SET title = $2, description = $3, date = $4, time = $5,
		     duration_minutes = $6, reminder_minutes = $7, reminder_enabled = $8
		 WHERE id = $1`,
		event.ID, event.Title, event.Description, event.Date, event.Time,
		event.DurationMinutes, event.ReminderMinutes, event.ReminderEnabled,
	)
	if err != nil {
		return fmt.Errorf("failed to update calendar event: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("calendar event not found: %s", event.ID)
	}
	return nil
}

// DeleteByID は指定IDのイベントを削除する。
func (r *PostgresCalendarEventRepo) DeleteByID(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM calendar_events WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete calendar event: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("calendar event not found: %s", id)
	}
	return nil
}

// compile-time interface check
var _ CalendarEventRepository = (*PostgresCalendarEventRepo)(nil)
