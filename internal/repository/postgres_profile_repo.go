package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hitoshi/startuplaunch/internal/model"
)

const profileColumns = `id, email, display_name, avatar_url, onboarding_metadata, created_at, updated_at`

// PostgresProfileRepo はPostgreSQLを使用したプロフィールリポジトリ。
type PostgresProfileRepo struct {
	db *sql.DB
}

// NewPostgresProfileRepo はPostgresProfileRepoを生成する。
func NewPostgresProfileRepo(db *sql.DB) *PostgresProfileRepo {
	return &PostgresProfileRepo{db: db}
}

// FindByID は指定IDのプロフィールを取得する。見つからない場合はnilを返す。
func (r *PostgresProfileRepo) FindByID(ctx context.Context, id string) (*model.Profile, error) {
	p, err := scanProfile(r.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`,
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find profile by ID: %w", err)
	}
	return p, nil
}

// Create はプロフィールを作成する。
// ON CONFLICT (id) DO NOTHING で冪等に作成し、既存の場合はその行を返す。
func (r *PostgresProfileRepo) Create(ctx context.Context, profile *model.Profile) (*model.Profile, bool, error) {
	metadata := profile.OnboardingMetadata
	if len(metadata) == 0 {
		metadata = model.EmptyOnboardingMetadata
	}

	p, err := scanProfile(r.db.QueryRowContext(ctx,
		`INSERT INTO profiles (id, email, display_name, avatar_url, onboarding_metadata)
		 VALUES ($1, $2, $3, $4, $5::jsonb)
		 ON CONFLICT (id) DO NOTHING
		 RETURNING `+profileColumns,
		profile.ID, profile.Email, profile.DisplayName, profile.AvatarURL, string(metadata),
	))
	if errors.Is(err, sql.ErrNoRows) {
		existing, ferr := r.FindByID(ctx, profile.ID)
		if ferr != nil {
			return nil, false, ferr
		}
		if existing == nil {
			return nil, false, fmt.Errorf("profile %s vanished after insert conflict", profile.ID)
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to insert profile: %w", err)
	}
	return p, true, nil
}

// Update はnilでないフィールドのみを更新する（COALESCEで既存値を維持）。
// onboarding_metadataは指定された場合ドキュメント全体を置き換える。
func (r *PostgresProfileRepo) Update(ctx context.Context, id string, patch model.ProfilePatch) (*model.Profile, error) {
	p, err := scanProfile(r.db.QueryRowContext(ctx,
		`UPDATE profiles SET
			email = COALESCE($2, email),
			display_name = COALESCE($3, display_name),
			avatar_url = COALESCE($4, avatar_url),
			onboarding_metadata = COALESCE($5::jsonb, onboarding_metadata),
			updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+profileColumns,
		id, patch.Email, patch.DisplayName, patch.AvatarURL, nullableJSON(patch.OnboardingMetadata),
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return p, nil
}

func scanProfile(row *sql.Row) (*model.Profile, error) {
	p := &model.Profile{}
	var displayName, avatarURL sql.NullString
	var metadata []byte

	if err := row.Scan(&p.ID, &p.Email, &displayName, &avatarURL, &metadata, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}

	if displayName.Valid {
		p.DisplayName = &displayName.String
	}
	if avatarURL.Valid {
		p.AvatarURL = &avatarURL.String
	}
	p.OnboardingMetadata = metadata
	return p, nil
}

// nullableJSON は空のJSONをSQLのNULLに変換する。
func nullableJSON(doc []byte) any {
	if len(doc) == 0 {
		return nil
	}
	return string(doc)
}

// compile-time interface check
var _ ProfileRepository = (*PostgresProfileRepo)(nil)
