// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"time"

	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail はメールアドレスでユーザーを検索する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create はユーザーを作成する。
	Create(ctx context.Context, user *model.User) error

	// Update はユーザーのプロフィールフィールドを上書き更新する。
	// 部分更新の組み立てはサービス層で行い、ここでは全フィールドを書き込む。
	Update(ctx context.Context, user *model.User) error

	// UpdatePasswordHash はパスワードハッシュのみを更新する。
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) error

	// DeleteByID は指定IDのユーザーを削除する。
	// 関連するsessions、completions、journal_entries等はCASCADE削除される。
	DeleteByID(ctx context.Context, id string) error
}

// SessionRepository はログインセッションの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error
	// FindByID は指定IDのセッションを取得する。期限切れの場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// DeleteByID は指定IDのセッションを削除する。
	DeleteByID(ctx context.Context, id string) error
	// DeleteByUserID は指定ユーザーの全セッションを削除する。
	DeleteByUserID(ctx context.Context, userID string) error
}

// CopingToolRepository はコーピングツールカタログの読み取りインターフェース。
// カタログはマイグレーションでシードされるため書き込み操作はない。
type CopingToolRepository interface {
	// ListAll はカタログ全件をposition昇順で返す。
	ListAll(ctx context.Context) ([]*model.CopingTool, error)

	// FindByID は指定IDのツールを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.CopingTool, error)
}

// CompletionRepository はツール完了台帳の永続化インターフェース。
// 台帳は追記のみで、更新・削除操作はない。
type CompletionRepository interface {
	// Create は完了レコードを追記する。
	Create(ctx context.Context, completion *model.CopingToolCompletion) error

	// ListByUser はユーザーの完了一覧をcompleted_at昇順で返す。
	// sessionIDが非nilの場合は該当セッションの完了のみに絞り込む。
	ListByUser(ctx context.Context, userID string, sessionID *string) ([]*model.CopingToolCompletion, error)
}

// CravingSessionRepository はクレービングセッションの永続化インターフェース。
type CravingSessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.CravingSession) error

	// FindByID は指定IDのセッションを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.CravingSession, error)

	// ListByUserID はユーザーのセッション一覧をstarted_at降順で返す。
	ListByUserID(ctx context.Context, userID string) ([]*model.CravingSession, error)

	// MarkCompleted は完了時刻を設定する。
	MarkCompleted(ctx context.Context, id string, completedAt time.Time) error
}

// JournalRepository はジャーナルエントリの永続化インターフェース。
type JournalRepository interface {
	// Create はエントリを作成する。
	Create(ctx context.Context, entry *model.JournalEntry) error

	// FindByID は指定IDのエントリを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.JournalEntry, error)

	// ListByUserID はユーザーのエントリ一覧をcreated_at降順で返す。
	ListByUserID(ctx context.Context, userID string) ([]*model.JournalEntry, error)

	// ListRecentByUserID はユーザーの直近limit件のエントリをcreated_at降順で返す。
	ListRecentByUserID(ctx context.Context, userID string, limit int) ([]*model.JournalEntry, error)

	// Update はエントリを上書き更新する。
	Update(ctx context.Context, entry *model.JournalEntry) error

	// DeleteByID は指定IDのエントリを削除する。
	DeleteByID(ctx context.Context, id string) error
}

// CalendarEventRepository はカレンダーイベントの永続化インターフェース。
type CalendarEventRepository interface {
	// Create はイベントを作成する。
	Create(ctx context.Context, event *model.CalendarEvent) error

	// FindByID は指定IDのイベントを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.CalendarEvent, error)

	// ListByUserID はユーザーの全イベントをdate降順、time降順で返す。
	ListByUserID(ctx context.Context, userID string) ([]*model.CalendarEvent, error)

	// ListByUserAndDateRange は [startDate, endDate]（両端含む）に入る
	// ユーザーのイベントをdate降順、time降順で返す。
	// 単一日付の検索はstartDate == endDateで表現する。
	ListByUserAndDateRange(ctx context.Context, userID, startDate, endDate string) ([]*model.CalendarEvent, error)

	// Update はイベントを上書き更新する。
	Update(ctx context.Context, event *model.CalendarEvent) error

	// DeleteByID は指定IDのイベントを削除する。
	DeleteByID(ctx context.Context, id string) error
}
