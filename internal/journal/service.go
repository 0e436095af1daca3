// Package journal はジャーナルエントリと統計のドメインロジックを提供する。
package journal

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/model"
	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/repository"
	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/security"
)

// statsWindowSize は統計の対象とする直近エントリ数。
const statsWindowSize = 20

// topListSize は統計で返すトリガー・ツールの上位件数。
const topListSize = 10

// autoEntryIntensity は自動生成エントリの固定強度。
const autoEntryIntensity = 5

// autoEntryNotes は自動生成エントリの固定本文。
const autoEntryNotes = "Automatically logged after completing all mandatory coping tools during a craving."

// MetricsRecorder はジャーナル作成に関するメトリクス収集のインターフェース。
type MetricsRecorder interface {
	RecordJournalEntry(source string)
}

// CreateInput はエントリ作成のリクエスト内容。
type CreateInput struct {
	HadCraving bool
	Triggers   []string
	Intensity  *int
	ToolsUsed  []string
	Outcome    model.Outcome
	Notes      *string
}

// PatchInput はエントリ部分更新のリクエスト内容。
// nilのフィールドは更新しない。
type PatchInput struct {
	HadCraving *bool
	Triggers   []string
	Intensity  *int
	ToolsUsed  []string
	Outcome    *model.Outcome
	Notes      *string
}

// Stats はジャーナル統計。直近statsWindowSize件のエントリを対象とする。
type Stats struct {
	TotalEntries     int
	CravingCount     int
	ResistedCount    int
	AverageIntensity float64 // 強度が記録されたエントリの平均。対象なしの場合は0
	CommonTriggers   []NameCount
	CommonTools      []NameCount
}

// NameCount は出現頻度付きの名前。
type NameCount struct {
	Name  string
	Count int
}

// Service はジャーナルのサービス層。
type Service struct {
	journalRepo repository.JournalRepository
	sanitizer   security.TextSanitizerService
	metrics     MetricsRecorder
}

// NewService はServiceを生成する。
func NewService(
	journalRepo repository.JournalRepository,
	sanitizer security.TextSanitizerService,
	metrics MetricsRecorder,
) *Service {
	return &Service{
		journalRepo: journalRepo,
		sanitizer:   sanitizer,
		metrics:     metrics,
	}
}

// Create は手動入力のエントリを作成する。
// 自由テキストフィールドはすべてサニタイズする。
func (s *Service) Create(ctx context.Context, userID string, input CreateInput) (*model.JournalEntry, error) {
	if !model.IsValidOutcome(input.Outcome) {
		return nil, model.NewInvalidOutcomeError(string(input.Outcome))
	}
	if input.Intensity != nil && (*input.Intensity < 1 || *input.Intensity > 10) {
		return nil, model.NewInvalidIntensityError(*input.Intensity)
	}

	entry := &model.JournalEntry{
		ID:            uuid.New().String(),
		UserID:        userID,
		CreatedAt:     time.Now(),
		HadCraving:    input.HadCraving,
		Triggers:      s.sanitizer.SanitizeAll(input.Triggers),
		Intensity:     input.Intensity,
		ToolsUsed:     s.sanitizer.SanitizeAll(input.ToolsUsed),
		Outcome:       input.Outcome,
		Notes:         s.sanitizeNotes(input.Notes),
		AutoGenerated: false,
	}

	if err := s.journalRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create journal entry: %w", err)
	}
	s.metrics.RecordJournalEntry("manual")
	return entry, nil
}

// CreateAutoEntry は必須ツール全完了時の自動エントリを作成する。
// 固定値: had_craving=true, intensity=5, outcome=resisted, triggers=[], auto_generated=true。
// toolsUsedはカタログ由来のタイトルのためサニタイズしない。
func (s *Service) CreateAutoEntry(ctx context.Context, userID string, toolsUsed []string) (*model.JournalEntry, error) {
	intensity := autoEntryIntensity
	notes := autoEntryNotes
	entry := &model.JournalEntry{
		ID:            uuid.New().String(),
		UserID:        userID,
		CreatedAt:     time.Now(),
		HadCraving:    true,
		Triggers:      []string{},
		Intensity:     &intensity,
		ToolsUsed:     toolsUsed,
		Outcome:       model.OutcomeResisted,
		Notes:         &notes,
		AutoGenerated: true,
	}

	if err := s.journalRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create auto journal entry: %w", err)
	}
	s.metrics.RecordJournalEntry("auto")
	return entry, nil
}

// List はユーザーのエントリ一覧を新しい順で返す。
func (s *Service) List(ctx context.Context, userID string) ([]*model.JournalEntry, error) {
	entries, err := s.journalRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return entries, nil
}

// Patch はエントリを部分更新する。
// フロー: 取得 → 存在チェック(404) → 所有者チェック(403) → フィールド検証 → 上書き
func (s *Service) Patch(ctx context.Context, userID, entryID string, patch PatchInput) (*model.JournalEntry, error) {
	entry, err := s.journalRepo.FindByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal entry: %w", err)
	}
	if entry == nil {
		return nil, model.NewJournalEntryNotFoundError(entryID)
	}
	if entry.UserID != userID {
		return nil, model.NewForbiddenError()
	}

	if patch.HadCraving == nil && patch.Triggers == nil && patch.Intensity == nil &&
		patch.ToolsUsed == nil && patch.Outcome == nil && patch.Notes == nil {
		return nil, model.NewNothingToUpdateError()
	}

	if patch.Outcome != nil {
		if !model.IsValidOutcome(*patch.Outcome) {
			return nil, model.NewInvalidOutcomeError(string(*patch.Outcome))
		}
		entry.Outcome = *patch.Outcome
	}
	if patch.Intensity != nil {
		if *patch.Intensity < 1 || *patch.Intensity > 10 {
			return nil, model.NewInvalidIntensityError(*patch.Intensity)
		}
		entry.Intensity = patch.Intensity
	}
	if patch.HadCraving != nil {
		entry.HadCraving = *patch.HadCraving
	}
	if patch.Triggers != nil {
		entry.Triggers = s.sanitizer.SanitizeAll(patch.Triggers)
	}
	if patch.ToolsUsed != nil {
		entry.ToolsUsed = s.sanitizer.SanitizeAll(patch.ToolsUsed)
	}
	if patch.Notes != nil {
		entry.Notes = s.sanitizeNotes(patch.Notes)
	}

	if err := s.journalRepo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to update journal entry: %w", err)
	}
	return entry, nil
}

// Delete はエントリを削除する。所有者のみが削除できる。
func (s *Service) Delete(ctx context.Context, userID, entryID string) error {
	entry, err := s.journalRepo.FindByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("failed to find journal entry: %w", err)
	}
	if entry == nil {
		return model.NewJournalEntryNotFoundError(entryID)
	}
	if entry.UserID != userID {
		return model.NewForbiddenError()
	}

	if err := s.journalRepo.DeleteByID(ctx, entryID); err != nil {
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}
	return nil
}

// GetStats は直近statsWindowSize件のエントリから統計を計算する。
func (s *Service) GetStats(ctx context.Context, userID string) (*Stats, error) {
	entries, err := s.journalRepo.ListRecentByUserID(ctx, userID, statsWindowSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent journal entries: %w", err)
	}

	stats := &Stats{TotalEntries: len(entries)}
	triggerCounts := make(map[string]int)
	toolCounts := make(map[string]int)
	intensitySum := 0
	intensityCount := 0

	for _, e := range entries {
		if e.HadCraving {
			stats.CravingCount++
		}
		if e.Outcome == model.OutcomeResisted {
			stats.ResistedCount++
		}
		if e.Intensity != nil {
			intensitySum += *e.Intensity
			intensityCount++
		}
		for _, trigger := range e.Triggers {
			triggerCounts[trigger]++
		}
		for _, tool := range e.ToolsUsed {
			toolCounts[tool]++
		}
	}

	if intensityCount > 0 {
		stats.AverageIntensity = float64(intensitySum) / float64(intensityCount)
	}
	stats.CommonTriggers = topByCount(triggerCounts, topListSize)
	stats.CommonTools = topByCount(toolCounts, topListSize)
	return stats, nil
}

func (s *Service) sanitizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	sanitized := s.sanitizer.Sanitize(*notes)
	return &sanitized
}

// topByCount は頻度マップから上位limit件を返す。
// 頻度降順、同数は名前昇順で並べる。
func topByCount(counts map[string]int, limit int) []NameCount {
	items := make([]NameCount, 0, len(counts))
	for name, count := range counts {
		items = append(items, NameCount{Name: name, Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Name < items[j].Name
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}
