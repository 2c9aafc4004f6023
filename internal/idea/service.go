// Package idea はスタートアップアイデアのドメインロジックを提供する。
package idea

import (
	"context"
	"log/slog"

	"github.com/hitoshi/startuplaunch/internal/model"
	"github.com/hitoshi/startuplaunch/internal/repository"
)

// DeletePolicy は所有者・IDに一致する行がなかった場合の削除の扱いを表す。
type DeletePolicy int

const (
	// DeleteLenient は一致する行がなくても成功として扱う（冪等な削除）。
	DeleteLenient DeletePolicy = iota
	// DeleteStrict は一致する行がない場合にIDEA_NOT_FOUNDを返す。
	DeleteStrict
)

// Service はアイデアのサービス層。
type Service struct {
	repo         repository.IdeaRepository
	deletePolicy DeletePolicy
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.IdeaRepository, deletePolicy DeletePolicy) *Service {
	return &Service{repo: repo, deletePolicy: deletePolicy}
}

// Create はアイデアを作成する。
func (s *Service) Create(ctx context.Context, idea *model.StartupIdea) (*model.StartupIdea, error) {
	if !idea.Difficulty.IsValid() {
		return nil, model.NewInvalidDifficultyError(string(idea.Difficulty))
	}
	return s.repo.Create(ctx, idea)
}

// List はユーザーのアイデア一覧を新しい順に返す。
func (s *Service) List(ctx context.Context, userID string) ([]*model.StartupIdea, error) {
	return s.repo.ListByUserID(ctx, userID)
}

// Update はユーザーが所有するアイデアを部分更新する。
func (s *Service) Update(ctx context.Context, userID, ideaID string, patch model.IdeaPatch) (*model.StartupIdea, error) {
	if patch.Difficulty != nil && !patch.Difficulty.IsValid() {
		return nil, model.NewInvalidDifficultyError(string(*patch.Difficulty))
	}

	updated, err := s.repo.UpdateOwned(ctx, ideaID, userID, patch)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwnedWrite(ctx, updated != nil, userID, ideaID); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete はユーザーが所有するアイデアを削除する。
// DeleteLenientの場合、一致する行がなくても成功を返す。
func (s *Service) Delete(ctx context.Context, userID, ideaID string) error {
	deleted, err := s.repo.DeleteOwned(ctx, ideaID, userID)
	if err != nil {
		return err
	}
	if s.deletePolicy == DeleteStrict {
		return authorizeOwnedWrite(ctx, deleted, userID, ideaID)
	}
	if !deleted {
		slog.DebugContext(ctx, "delete matched no idea",
			slog.String("user_id", userID),
			slog.String("idea_id", ideaID),
		)
	}
	return nil
}

// authorizeOwnedWrite は所有権チェックを行う。
// 書き込みはidと所有者の両方で絞り込まれているため、0行は「存在しない」か「他ユーザー所有」を意味する。
// 両者は呼び出し側に区別させず、いずれもIDEA_NOT_FOUNDとする。
func authorizeOwnedWrite(ctx context.Context, matched bool, userID, ideaID string) error {
	if matched {
		return nil
	}
	slog.InfoContext(ctx, "idea write rejected: not found or not owned",
		slog.String("user_id", userID),
		slog.String("idea_id", ideaID),
	)
	return model.NewIdeaNotFoundError()
}
