package model

import "time"

// UserTemplate はプロフィールが購入したテンプレートを表す。
// 同一プロフィールが同じテンプレートを2回購入することはできない（UNIQUE(user_id, template_id)）。
// 現時点ではスキーマ定義のみで、更新するエンドポイントは存在しない。
type UserTemplate struct {
	ID          string
	UserID      string
	TemplateID  string
	PurchasedAt time.Time
}
