// Package model はドメインモデルを定義する。
package model

import "time"

// CalendarEvent はリマインダー付きのカレンダーイベントを表す。
// DateとTimeは表示・検索の単純さのため "YYYY-MM-DD" / "HH:MM" の
// 文字列形式のまま保持する（形式はAPI層で検証される）。
type CalendarEvent struct {
	ID              string
	UserID          string
	Title           string
	Description     *string
	Date            string // YYYY-MM-DD
	Time            string // HH:MM
	DurationMinutes int    // > 0
	ReminderMinutes int    // >= 0（通知リードタイム）
	ReminderEnabled bool
	CreatedAt       time.Time
}
