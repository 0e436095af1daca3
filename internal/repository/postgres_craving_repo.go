package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/model"
)

// PostgresCravingSessionRepo はPostgreSQLを使用したクレービングセッションリポジトリ。
type PostgresCravingSessionRepo struct {
	db *sql.DB
}

// NewPostgresCravingSessionRepo はPostgresCravingSessionRepoを生成する。
func NewPostgresCravingSessionRepo(db *sql.DB) *PostgresCravingSessionRepo {
	return &PostgresCravingSessionRepo{db: db}
}

// Create はセッションを作成する。
func (r *PostgresCravingSessionRepo) Create(ctx context.Context, session *model.CravingSession) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO craving_sessions (id, user_id, started_at, completed_at, triggers, intensity, need_type)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		session.ID, session.UserID, session.StartedAt, session.CompletedAt,
		pq.Array(session.Triggers), session.Intensity, string(session.NeedType),
	)
	if err != nil {
		return fmt.Errorf("failed to insert craving session: %w", err)
	}
	return nil
}

// FindByID は指定IDのセッションを取得する。見つからない場合はnilを返す。
func (r *PostgresCravingSessionRepo) FindByID(ctx context.Context, id string) (*model.CravingSession, error) {
	session := &model.CravingSession{}
	var needType string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, started_at, completed_at, triggers, intensity, need_type
		 FROM craving_sessions WHERE id = $1`,
		id,
	).Scan(
		&session.ID, &session.UserID, &session.StartedAt, &session.CompletedAt,
		pq.Array(&session.Triggers), &session.Intensity, &needType,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find craving session: %w", err)
	}

	session.NeedType = model.NeedType(needType)
	return session, nil
}

// ListByUserID はユーザーのセッション一覧をstarted_at降順で返す。
func (r *PostgresCravingSessionRepo) ListByUserID(ctx context.Context, userID string) ([]*model.CravingSession, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, started_at, completed_at, triggers, intensity, need_type
		 FROM craving_sessions WHERE user_id = $1
		 ORDER BY started_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list craving sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*model.CravingSession
	for rows.Next() {
		session := &model.CravingSession{}
		var needType string
		if err := rows.Scan(
			&session.ID, &session.UserID, &session.StartedAt, &session.CompletedAt,
			pq.Array(&session.Triggers), &session.Intensity, &needType,
		); err != nil {
			return nil, fmt.Errorf("failed to scan craving session: %w", err)
		}
		session.NeedType = model.NeedType(needType)
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate craving sessions: %w", err)
	}

	return sessions, nil
}

// MarkCompleted は完了時刻を設定する。
func (r *PostgresCravingSessionRepo) MarkCompleted(ctx context.Context, id string, completedAt time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE craving_sessions SET completed_at = $2 WHERE id = $1`,
		id, completedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to mark craving session completed: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("craving session not found: %s", id)
	}
	return nil
}

// compile-time interface check
var _ CravingSessionRepository = (*PostgresCravingSessionRepo)(nil)
