// Package craving はクレービングセッションのドメインロジックを提供する。
package craving

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/model"
	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/repository"
	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/security"
)

// StartInput はセッション開始のリクエスト内容。
type StartInput struct {
	Triggers  []string
	Intensity int
	NeedType  model.NeedType
}

// Service はクレービングセッションのサービス層。
type Service struct {
	cravingRepo repository.CravingSessionRepository
	sanitizer   security.TextSanitizerService
}

// NewService はServiceを生成する。
func NewService(cravingRepo repository.CravingSessionRepository, sanitizer security.TextSanitizerService) *Service {
	return &Service{
		cravingRepo: cravingRepo,
		sanitizer:   sanitizer,
	}
}

// Start は新しいセッションを開始する。started_atはサーバー側で付与する。
func (s *Service) Start(ctx context.Context, userID string, input StartInput) (*model.CravingSession, error) {
	if input.Intensity < 1 || input.Intensity > 10 {
		return nil, model.NewInvalidIntensityError(input.Intensity)
	}
	if !model.IsValidNeedType(input.NeedType) {
		return nil, model.NewInvalidNeedTypeError(string(input.NeedType))
	}

	session := &model.CravingSession{
		ID:        uuid.New().String(),
		UserID:    userID,
		StartedAt: time.Now(),
		Triggers:  s.sanitizer.SanitizeAll(input.Triggers),
		Intensity: input.Intensity,
		NeedType:  input.NeedType,
	}

	if err := s.cravingRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create craving session: %w", err)
	}
	return session, nil
}

// Complete はセッションを完了にする。完了時刻は一度だけ設定でき、
// 完了済みセッションの再完了はエラーになる。
func (s *Service) Complete(ctx context.Context, userID, sessionID string) (*model.CravingSession, error) {
	session, err := s.cravingRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find craving session: %w", err)
	}
	if session == nil {
		return nil, model.NewCravingSessionNotFoundError(sessionID)
	}
	if session.UserID != userID {
		return nil, model.NewForbiddenError()
	}
	if session.CompletedAt != nil {
		return nil, model.NewSessionAlreadyCompletedError(sessionID)
	}

	completedAt := time.Now()
	if err := s.cravingRepo.MarkCompleted(ctx, sessionID, completedAt); err != nil {
		return nil, fmt.Errorf("failed to mark craving session completed: %w", err)
	}
	session.CompletedAt = &completedAt
	return session, nil
}

// List はユーザーのセッション一覧を新しい順で返す。
func (s *Service) List(ctx context.Context, userID string) ([]*model.CravingSession, error) {
	sessions, err := s.cravingRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list craving sessions: %w", err)
	}
	return sessions, nil
}
