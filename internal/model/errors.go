// Package model はドメインモデルを定義する。
package model

import (
	"fmt"
	"strings"
)

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: request, validation, idea, profile, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeMethodNotAllowed  = "METHOD_NOT_ALLOWED"
	ErrCodeInvalidRequest    = "INVALID_REQUEST"
	ErrCodeMissingFields     = "MISSING_FIELDS"
	ErrCodeInvalidDifficulty = "INVALID_DIFFICULTY"
	ErrCodeIdeaNotFound      = "IDEA_NOT_FOUND"
	ErrCodeProfileNotFound   = "PROFILE_NOT_FOUND"
	ErrCodeRateLimited       = "RATE_LIMITED"
	ErrCodeSchemaInitFailed  = "SCHEMA_INIT_FAILED"
	ErrCodeInternal          = "INTERNAL_ERROR"
)

// NewMethodNotAllowedError は許可されていないHTTPメソッドのエラーを生成する。
func NewMethodNotAllowedError(allowed ...string) *APIError {
	return &APIError{
		Code:     ErrCodeMethodNotAllowed,
		Message:  "Method not allowed",
		Category: "request",
		Action:   fmt.Sprintf("Use one of: %s.", strings.Join(allowed, ", ")),
	}
}

// NewInvalidRequestError はリクエストボディの解析失敗エラーを生成する。
func NewInvalidRequestError(message string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  message,
		Category: "validation",
		Action:   "Send a valid JSON request body.",
	}
}

// NewMissingFieldsError は必須項目の欠落エラーを生成する。
// fieldsにはリクエスト上のフィールド名を渡す。
func NewMissingFieldsError(fields ...string) *APIError {
	return &APIError{
		Code:     ErrCodeMissingFields,
		Message:  fmt.Sprintf("Missing required fields: %s", strings.Join(fields, ", ")),
		Category: "validation",
		Action:   "Provide every required field with a non-empty value.",
	}
}

// NewInvalidDifficultyError は難易度が列挙値以外だった場合のエラーを生成する。
func NewInvalidDifficultyError(value string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidDifficulty,
		Message:  fmt.Sprintf("Invalid difficulty: %q", value),
		Category: "validation",
		Action:   "Difficulty must be one of Easy, Medium, Hard.",
	}
}

// NewIdeaNotFoundError はアイデア未検出エラーを生成する。
// 存在しない場合と他ユーザー所有の場合を区別しない。
func NewIdeaNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeIdeaNotFound,
		Message:  "Idea not found or unauthorized",
		Category: "idea",
		Action:   "Check the idea id and the owning user id.",
	}
}

// NewProfileNotFoundError はプロフィール未検出エラーを生成する。
func NewProfileNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeProfileNotFound,
		Message:  "Profile not found",
		Category: "profile",
		Action:   "Check the user id.",
	}
}

// NewRateLimitedError はレート制限超過エラーを生成する。
func NewRateLimitedError() *APIError {
	return &APIError{
		Code:     ErrCodeRateLimited,
		Message:  "Too many requests",
		Category: "request",
		Action:   "Wait a moment and try again.",
	}
}

// NewSchemaInitFailedError はスキーマ初期化失敗エラーを生成する。
func NewSchemaInitFailedError() *APIError {
	return &APIError{
		Code:     ErrCodeSchemaInitFailed,
		Message:  "Failed to initialize database",
		Category: "system",
		Action:   "Check the server logs and retry; initialization is safe to repeat.",
	}
}

// NewInternalError は内部エラーを生成する。詳細はログのみに記録する。
func NewInternalError() *APIError {
	return &APIError{
		Code:     ErrCodeInternal,
		Message:  "Internal server error",
		Category: "system",
		Action:   "Please try again later.",
	}
}
