package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/model"
)

// PostgresCopingToolRepo はPostgreSQLを使用したコーピングツールカタログリポジトリ。
type PostgresCopingToolRepo struct {
	db *sql.DB
}

// NewPostgresCopingToolRepo はPostgresCopingToolRepoを生成する。
func NewPostgresCopingToolRepo(db *sql.DB) *PostgresCopingToolRepo {
	return &PostgresCopingToolRepo{db: db}
}

// ListAll はカタログ全件をposition昇順で返す。
func (r *PostgresCopingToolRepo) ListAll(ctx context.Context) ([]*model.CopingTool, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, duration_label, steps, when_to_use, is_mandatory, position, created_at
		 FROM coping_tools ORDER BY position ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list coping tools: %w", err)
	}
	defer rows.Close()

	var tools []*model.CopingTool
	for rows.Next() {
		tool := &model.CopingTool{}
		if err := rows.Scan(
			&tool.ID, &tool.Title, &tool.DurationLabel, pq.Array(&tool.Steps),
			&tool.WhenToUse, &tool.IsMandatory, &tool.Position, &tool.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan coping tool: %w", err)
		}
		tools = append(tools, tool)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate coping tools: %w", err)
	}

	return tools, nil
}

// FindByID は指定IDのツールを取得する。見つからない場合はnilを返す。
func (r *PostgresCopingToolRepo) FindByID(ctx context.Context, id string) (*model.CopingTool, error) {
	tool := &model.CopingTool{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, duration_label, steps, when_to_use, is_mandatory, position, created_at
		 FROM coping_tools WHERE id = $1`,
		id,
	).Scan(
		&tool.ID, &tool.Title, &tool.DurationLabel, pq.Array(&tool.Steps),
		&tool.WhenToUse, &tool.IsMandatory, &tool.Position, &tool.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find coping tool: %w", err)
	}

	return tool, nil
}

// compile-time interface check
var _ CopingToolRepository = (*PostgresCopingToolRepo)(nil)
