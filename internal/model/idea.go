package model

import "time"

// Difficulty はスタートアップアイデアの難易度を表す。
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// IsValid はDBのCHECK制約と同じ3値のいずれかであればtrueを返す。
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// StartupIdea はプロフィールが所有するスタートアップアイデアを表す。
// EstimatedRevenueとTimeToLaunchは数値ではなく自由記述のラベル。
type StartupIdea struct {
	ID               string
	UserID           string
	Title            string
	Description      string
	Category         string
	EstimatedRevenue string
	Difficulty       Difficulty
	TimeToLaunch     string
	CreatedAt        time.Time
}

// IdeaPatch はアイデアの部分更新内容を表す。
// nilのフィールドは既存の値を維持する。
type IdeaPatch struct {
	Title            *string
	Description      *string
	Category         *string
	EstimatedRevenue *string
	Difficulty       *Difficulty
	TimeToLaunch     *string
}
