package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/model"
)

// PostgresCompletionRepo はPostgreSQLを使用したツール完了台帳リポジトリ。
// 台帳は追記のみ。重複防止のための一意制約は意図的に設けていない。
type PostgresCompletionRepo struct {
	db *sql.DB
}

// NewPostgresCompletionRepo はPostgresCompletionRepoを生成する。
func NewPostgresCompletionRepo(db *sql.DB) *PostgresCompletionRepo {
	return &PostgresCompletionRepo{db: db}
}

// Create は完了レコードを追記する。
func (r *PostgresCompletionRepo) Create(ctx context.Context, completion *model.CopingToolCompletion) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO coping_tool_completions (id, user_id, tool_id, session_id, completed_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		completion.ID, completion.UserID, completion.ToolID, completion.SessionID, completion.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert completion: %w", err)
	}
	return nil
}

// ListByUser はユーザーの完了一覧をcompleted_at昇順で返す。
// sessionIDが非nilの場合は該当セッションの完了のみに絞り込む。
func (r *PostgresCompletionRepo) ListByUser(ctx context.Context, userID string, sessionID *string) ([]*model.CopingToolCompletion, error) {
	var rows *sql.Rows
	var err error

	if sessionID != nil {
		rows, err = r.db.QueryContext(ctx,
			`SELECT id, user_id, tool_id, session_id, completed_at
			 FROM coping_tool_completions
			 WHERE user_id = $1 AND session_id = $2
			 ORDER BY completed_at ASC`,
			userID, *sessionID,
		)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT id, user_id, tool_id, session_id, completed_at
			 FROM coping_tool_completions
			 WHERE user_id = $1
			 ORDER BY completed_at ASC`,
			userID,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}
	defer rows.Close()

	var completions []*model.CopingToolCompletion
	for rows.Next() {
		c := &model.CopingToolCompletion{}
		if err := rows.Scan(&c.ID, &c.UserID, &c.ToolID, &c.SessionID, &c.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan completion: %w", err)
		}
		completions = append(completions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate completions: %w", err)
	}

	return completions, nil
}

// compile-time interface check
var _ CompletionRepository = (*PostgresCompletionRepo)(nil)
