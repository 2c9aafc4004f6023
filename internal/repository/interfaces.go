// Package repository はデータ永続化のインターフェースを定義する。
// SQLを発行してよいのはこのパッケージのみで、値はすべてプレースホルダで渡す。
package repository

import (
	"context"

	"github.com/hitoshi/startuplaunch/internal/model"
)

// ProfileRepository はプロフィールデータの永続化インターフェース。
type ProfileRepository interface {
	// FindByID は指定IDのプロフィールを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Profile, error)

	// Create はプロフィールを作成する。同じIDが既に存在する場合は何もせず、
	// 既存のプロフィールとcreated=falseを返す。
	Create(ctx context.Context, profile *model.Profile) (saved *model.Profile, created bool, err error)

	// Update はnilでないフィールドのみを更新し、updated_atを現在時刻にする。
	// 該当行がない場合はnilを返す。
	Update(ctx context.Context, id string, patch model.ProfilePatch) (*model.Profile, error)
}

// IdeaRepository はスタートアップアイデアの永続化インターフェース。
// 既存行への書き込みは必ずidと所有者のuser_idの両方で絞り込む。
type IdeaRepository interface {
	// Create はアイデアを作成し、採番されたIDと作成日時を含む行を返す。
	Create(ctx context.Context, idea *model.StartupIdea) (*model.StartupIdea, error)

	// ListByUserID はユーザーのアイデア一覧をcreated_at降順で返す。
	ListByUserID(ctx context.Context, userID string) ([]*model.StartupIdea, error)

	// UpdateOwned はidとuserIDの両方に一致する行のnilでないフィールドのみを更新する。
	// 一致する行がない場合（存在しない・他ユーザー所有）はnilを返す。
	UpdateOwned(ctx context.Context, id, userID string, patch model.IdeaPatch) (*model.StartupIdea, error)

	// DeleteOwned はidとuserIDの両方に一致する行を削除し、削除したかどうかを返す。
	DeleteOwned(ctx context.Context, id, userID string) (bool, error)
}
