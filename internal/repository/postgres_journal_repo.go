package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/model"
)

// PostgresJournalRepo はPostgreSQLを使用したジャーナルリポジトリ。
type PostgresJournalRepo struct {
	db *sql.DB
}

// NewPostgresJournalRepo はPostgresJournalRepoを生成する。
func NewPostgresJournalRepo(db *sql.DB) *PostgresJournalRepo {
	return &PostgresJournalRepo{db: db}
}

const journalColumns = `id, user_id, created_at, had_craving, triggers, intensity, tools_used, outcome, notes, auto_generated`

// scanJournalEntry は1行分のジャーナルエントリをスキャンする。
func scanJournalEntry(scan func(dest ...any) error) (*model.JournalEntry, error) {
	entry := &model.JournalEntry{}
	var outcome string
	if err := scan(
		&entry.ID, &entry.UserID, &entry.CreatedAt, &entry.HadCraving,
		pq.Array(&entry.Triggers), &entry.Intensity, pq.Array(&entry.ToolsUsed),
		&outcome, &entry.Notes, &entry.AutoGenerated,
	); err != nil {
		return nil, err
	}
	entry.Outcome = model.Outcome(outcome)
	return entry, nil
}

// Create はエントリを作成する。
func (r *PostgresJournalRepo) Create(ctx context.Context, entry *model.JournalEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO journal_entries (id, user_id, created_at, had_craving, triggers, intensity, tools_used, outcome, notes, auto_generated)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		entry.ID, entry.UserID, entry.CreatedAt, entry.HadCraving,
		pq.Array(entry.Triggers), entry.Intensity, pq.Array(entry.ToolsUsed),
		string(entry.Outcome), entry.Notes, entry.AutoGenerated,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry: %w", err)
	}
	return nil
}

// FindByID は指定IDのエントリを取得する。見つからない場合はnilを返す。
func (r *PostgresJournalRepo) FindByID(ctx context.Context, id string) (*model.JournalEntry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+journalColumns+` FROM journal_entries WHERE id = $1`,
		id,
	)
	entry, err := scanJournalEntry(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find journal entry: %w", err)
	}
	return entry, nil
}

// ListByUserID はユーザーのエントリ一覧をcreated_at降順で返す。
func (r *PostgresJournalRepo) ListByUserID(ctx context.Context, userID string) ([]*model.JournalEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+journalColumns+` FROM journal_entries WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer rows.Close()

	return collectJournalEntries(rows)
}

// ListRecentByUserID はユーザーの直近limit件のエントリをcreated_at降順で返す。
func (r *PostgresJournalRepo) ListRecentByUserID(ctx context.Context, userID string, limit int) ([]*model.JournalEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+journalColumns+` FROM journal_entries WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent journal entries: %w", err)
	}
	defer rows.Close()

	return collectJournalEntries(rows)
}

// collectJournalEntries は結果セット全行をスキャンして返す。
func collectJournalEntries(rows *sql.Rows) ([]*model.JournalEntry, error) {
	var entries []*model.JournalEntry
	for rows.Next() {
		entry, err := scanJournalEntry(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate journal entries: %w", err)
	}
	return entries, nil
}

// Update はエントリを上書き更新する。
func (r *PostgresJournalRepo) Update(ctx context.Context, entry *model.JournalEntry) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE journal_entries
		 SET had_craving = $2, triggers = $3, intensity = $4, tools_used = $5, outcome = $6, notes = $7
		 WHERE id = $1`,
		entry.ID, entry.HadCraving, pq.Array(entry.Triggers), entry.Intensity,
		pq.Array(entry.ToolsUsed), string(entry.Outcome), entry.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update journal entry: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("journal entry not found: %s", entry.ID)
	}
	return nil
}

// DeleteByID は指定IDのエントリを削除する。
func (r *PostgresJournalRepo) DeleteByID(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM journal_entries WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("journal entry not found: %s", id)
	}
	return nil
}

// compile-time interface check
var _ JournalRepository = (*PostgresJournalRepo)(nil)
