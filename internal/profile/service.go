// Package profile はプロフィール管理のドメインロジックを提供する。
package profile

import (
	"context"

	"github.com/hitoshi/startuplaunch/internal/model"
	"github.com/hitoshi/startuplaunch/internal/repository"
)

// Service はプロフィールのサービス層。
type Service struct {
	repo repository.ProfileRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.ProfileRepository) *Service {
	return &Service{repo: repo}
}

// Get は指定ユーザーのプロフィールを返す。存在しない場合はPROFILE_NOT_FOUND。
func (s *Service) Get(ctx context.Context, userID string) (*model.Profile, error) {
	p, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, model.NewProfileNotFoundError()
	}
	return p, nil
}

// Ensure はプロフィールが存在しなければ作成する。
// 既に存在する場合は保存済みの内容をそのまま返し、createdはfalseになる。
func (s *Service) Ensure(ctx context.Context, p *model.Profile) (saved *model.Profile, created bool, err error) {
	return s.repo.Create(ctx, p)
}

// Update はプロフィールを部分更新する。存在しない場合はPROFILE_NOT_FOUND。
func (s *Service) Update(ctx context.Context, userID string, patch model.ProfilePatch) (*model.Profile, error) {
	p, err := s.repo.Update(ctx, userID, patch)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, model.NewProfileNotFoundError()
	}
	return p, nil
}
