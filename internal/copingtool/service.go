package copingtool

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/model"
	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/repository"
)

// autoJournalFailureMessage は自動ジャーナル作成に失敗した際にクライアントへ返すメッセージ。
// 完了記録自体は成功しているため、手動での追記を促す。
const autoJournalFailureMessage = "journal entry could not be created, please add it manually"

// AutoJournalCreator は自動ジャーナルエントリ作成のインターフェース。
// journalパッケージへの直接依存を避けるため抽象化する。
type AutoJournalCreator interface {
	CreateAutoEntry(ctx context.Context, userID string, toolsUsed []string) (*model.JournalEntry, error)
}

// MetricsRecorder は完了記録に関するメトリクス収集のインターフェース。
type MetricsRecorder interface {
	RecordCompletion()
	RecordAutoJournal(result string)
}

// CompleteInput はツール完了記録のリクエスト内容。
type CompleteInput struct {
	ToolID          string
	SessionID       *string // 紐づくクレービングセッション（任意）
	FromCravingFlow bool    // クレービングフロー経由の完了かどうか
}

// CompletionResult はツール完了記録の結果。
// 必須セット評価は直前に追記した行を含む台帳に対して行われる。
type CompletionResult struct {
	Completion            *model.CopingToolCompletion
	AllMandatoryCompleted bool
	CompletedMandatory    int
	TotalMandatory        int
	AutoJournal           *model.JournalEntry // 自動作成されたエントリ（作成時のみ）
	AutoJournalError      string              // 自動作成に失敗した場合のメッセージ
}

// Service はコーピングツールカタログと完了台帳のサービス層。
type Service struct {
	toolRepo       repository.CopingToolRepository
	completionRepo repository.CompletionRepository
	cravingRepo    repository.CravingSessionRepository
	autoJournal    AutoJournalCreator
	metrics        MetricsRecorder
}

// NewService はServiceを生成する。
func NewService(
	toolRepo repository.CopingToolRepository,
	completionRepo repository.CompletionRepository,
	cravingRepo repository.CravingSessionRepository,
	autoJournal AutoJournalCreator,
	metrics MetricsRecorder,
) *Service {
	return &Service{
		toolRepo:       toolRepo,
		completionRepo: completionRepo,
		cravingRepo:    cravingRepo,
		autoJournal:    autoJournal,
		metrics:        metrics,
	}
}

// ListCatalog はカタログ全件をposition昇順で返す。
func (s *Service) ListCatalog(ctx context.Context) ([]*model.CopingTool, error) {
	tools, err := s.toolRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list coping tools: %w", err)
	}
	return tools, nil
}

// ListCompletions はユーザーの完了一覧を返す。
// sessionIDが指定された場合は該当セッションの完了のみに絞り込む。
func (s *Service) ListCompletions(ctx context.Context, userID string, sessionID *string) ([]*model.CopingToolCompletion, error) {
	completions, err := s.completionRepo.ListByUser(ctx, userID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}
	return completions, nil
}

// Complete はツール完了を台帳に追記し、必須セットを再評価する。
// フロー: ツール存在チェック → セッション所有者チェック → 追記 → マージ済み台帳で評価 → 自動ジャーナル判定
// 重複完了の排除は行わない。自動ジャーナル作成はベストエフォートで、
// 失敗しても完了記録はロールバックされない。
func (s *Service) Complete(ctx context.Context, userID string, input CompleteInput) (*CompletionResult, error) {
	tool, err := s.toolRepo.FindByID(ctx, input.ToolID)
	if err != nil {
		return nil, fmt.Errorf("failed to find coping tool: %w", err)
	}
	if tool == nil {
		return nil, model.NewToolNotFoundError(input.ToolID)
	}

	if input.SessionID != nil {
		session, err := s.cravingRepo.FindByID(ctx, *input.SessionID)
		if err != nil {
			return nil, fmt.Errorf("failed to find craving session: %w", err)
		}
		if session == nil {
			return nil, model.NewCravingSessionNotFoundError(*input.SessionID)
		}
		if session.UserID != userID {
			return nil, model.NewForbiddenError()
		}
	}

	// 追記前の台帳を取得しておき、評価は追記行を加えたマージ済み台帳に対して行う。
	// 追記後に再読み込みすると並行リクエストの行が混ざり結果が不安定になる。
	prior, err := s.completionRepo.ListByUser(ctx, userID, input.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}

	completion := &model.CopingToolCompletion{
		ID:          uuid.New().String(),
		UserID:      userID,
		ToolID:      input.ToolID,
		SessionID:   input.SessionID,
		CompletedAt: time.Now(),
	}
	if err := s.completionRepo.Create(ctx, completion); err != nil {
		return nil, fmt.Errorf("failed to create completion: %w", err)
	}
	s.metrics.RecordCompletion()

	merged := append(prior, completion)

	tools, err := s.toolRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list coping tools: %w", err)
	}

	completed, total := MandatoryProgress(tools, merged)
	result := &CompletionResult{
		Completion:            completion,
		AllMandatoryCompleted: MandatorySatisfied(tools, merged),
		CompletedMandatory:    completed,
		TotalMandatory:        total,
	}

	if result.AllMandatoryCompleted && input.FromCravingFlow {
		entry, err := s.autoJournal.CreateAutoEntry(ctx, userID, completedToolTitles(tools, merged))
		if err != nil {
			// 完了記録は成功しているためエラーは返さず、メッセージで通知する
			slog.Warn("auto journal entry creation failed",
				"user_id", userID,
				"tool_id", input.ToolID,
				"error", err)
			result.AutoJournalError = autoJournalFailureMessage
			s.metrics.RecordAutoJournal("failed")
		} else {
			result.AutoJournal = entry
			s.metrics.RecordAutoJournal("created")
		}
	}

	return result, nil
}

// completedToolTitles は完了済みツールのタイトル一覧をカタログ順で返す。
// 必須ツールに限らず、台帳に現れる全ツールが対象。重複完了は1件に畳む。
func completedToolTitles(tools []*model.CopingTool, completions []*model.CopingToolCompletion) []string {
	completedToolIDs := make(map[string]bool, len(completions))
	for _, c := range completions {
		completedToolIDs[c.ToolID] = true
	}

	titles := make([]string, 0, len(completedToolIDs))
	for _, tool := range tools {
		if completedToolIDs[tool.ID] {
			titles = append(titles, tool.Title)
		}
	}
	return titles
}
