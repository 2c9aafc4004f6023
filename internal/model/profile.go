package model

import (
	"encoding/json"
	"time"
)

// Profile は外部IdPのユーザーIDをキーとするアプリケーション側のユーザーレコードを表す。
type Profile struct {
	ID                 string
	Email              string
	DisplayName        *string
	AvatarURL          *string
	OnboardingMetadata json.RawMessage
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ProfilePatch はプロフィールの部分更新内容を表す。
// nilのフィールドは既存の値を維持する。
// OnboardingMetadataは指定された場合、ドキュメント全体を置き換える（キー単位のマージは行わない）。
type ProfilePatch struct {
	Email              *string
	DisplayName        *string
	AvatarURL          *string
	OnboardingMetadata json.RawMessage
}

// IsEmpty は更新対象フィールドが1つも指定されていない場合にtrueを返す。
func (p ProfilePatch) IsEmpty() bool {
	return p.Email == nil && p.DisplayName == nil && p.AvatarURL == nil && len(p.OnboardingMetadata) == 0
}

// EmptyOnboardingMetadata はonboarding_metadataのデフォルト値。
var EmptyOnboardingMetadata = json.RawMessage(`{}`)
