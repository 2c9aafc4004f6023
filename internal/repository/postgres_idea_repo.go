package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hitoshi/startuplaunch/internal/model"
)

const ideaColumns = `id, user_id, title, description, category, estimated_revenue, difficulty, time_to_launch, created_at`

// rowScanner は*sql.Rowと*sql.Rowsの共通インターフェース。
type rowScanner interface {
	Scan(dest ...any) error
}

// PostgresIdeaRepo はPostgreSQLを使用したスタートアップアイデアリポジトリ。
type PostgresIdeaRepo struct {
	db *sql.DB
}

// NewPostgresIdeaRepo はPostgresIdeaRepoを生成する。
func NewPostgresIdeaRepo(db *sql.DB) *PostgresIdeaRepo {
	return &PostgresIdeaRepo{db: db}
}

// Create はアイデアを作成する。IDはUUIDv4で採番する。
func (r *PostgresIdeaRepo) Create(ctx context.Context, idea *model.StartupIdea) (*model.StartupIdea, error) {
	created, err := scanIdea(r.db.QueryRowContext(ctx,
		`INSERT INTO startup_ideas (id, user_id, title, description, category, estimated_revenue, difficulty, time_to_launch)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+ideaColumns,
		uuid.New().String(), idea.UserID, idea.Title, idea.Description, idea.Category,
		idea.EstimatedRevenue, idea.Difficulty, idea.TimeToLaunch,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert idea: %w", err)
	}
	return created, nil
}

// ListByUserID はユーザーのアイデア一覧をcreated_at降順で返す。
// 同時刻の行はidの降順で並べ、順序を安定させる。
func (r *PostgresIdeaRepo) ListByUserID(ctx context.Context, userID string) ([]*model.StartupIdea, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+ideaColumns+`
		 FROM startup_ideas WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list ideas: %w", err)
	}
	defer rows.Close()

	ideas := []*model.StartupIdea{}
	for rows.Next() {
		idea, err := scanIdea(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan idea row: %w", err)
		}
		ideas = append(ideas, idea)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate idea rows: %w", err)
	}
	return ideas, nil
}

// UpdateOwned はidとuserIDの両方に一致する行のnilでないフィールドのみを更新する。
// UUIDとして解釈できないidはどの行にも一致しないため、問い合わせずにnilを返す。
func (r *PostgresIdeaRepo) UpdateOwned(ctx context.Context, id, userID string, patch model.IdeaPatch) (*model.StartupIdea, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	updated, err := scanIdea(r.db.QueryRowContext(ctx,
		`UPDATE startup_ideas SET
			title = COALESCE($3, title),
			description = COALESCE($4, description),
			category = COALESCE($5, category),
			estimated_revenue = COALESCE($6, estimated_revenue),
			difficulty = COALESCE($7, difficulty),
			time_to_launch = COALESCE($8, time_to_launch)
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+ideaColumns,
		id, userID, patch.Title, patch.Description, patch.Category,
		patch.EstimatedRevenue, patch.Difficulty, patch.TimeToLaunch,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update idea: %w", err)
	}
	return updated, nil
}

// DeleteOwned はidとuserIDの両方に一致する行を削除する。
func (r *PostgresIdeaRepo) DeleteOwned(ctx context.Context, id, userID string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}

	result, err := r.db.ExecContext(ctx,
		`DELETE FROM startup_ideas WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete idea: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

func scanIdea(s rowScanner) (*model.StartupIdea, error) {
	idea := &model.StartupIdea{}
	var difficulty string
	if err := s.Scan(
		&idea.ID, &idea.UserID, &idea.Title, &idea.Description, &idea.Category,
		&idea.EstimatedRevenue, &difficulty, &idea.TimeToLaunch, &idea.CreatedAt,
	); err != nil {
		return nil, err
	}
	idea.Difficulty = model.Difficulty(difficulty)
	return idea, nil
}

// compile-time interface check
var _ IdeaRepository = (*PostgresIdeaRepo)(nil)
