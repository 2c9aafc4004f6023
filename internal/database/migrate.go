// Package database はデータベース接続とスキーマ管理を提供する。
package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// NewMigrator はマイグレーション実行用のmigrateインスタンスを生成する。
// databaseURLはPostgreSQLの接続URLを指定する。
func NewMigrator(databaseURL string) (*migrate.Migrate, error) {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}

	return m, nil
}

// SchemaManager はprofiles、startup_ideas、user_templatesの3テーブルと
// インデックスを冪等に作成する。
// すべてのDDLは "IF NOT EXISTS" で書かれているため、何度呼び出しても既存データは変わらない。
type SchemaManager struct {
	databaseURL string
	logger      *slog.Logger
}

// NewSchemaManager はSchemaManagerを生成する。
// migrateのpostgresドライバはCloseで*sql.DBも閉じるため、共有プールではなくURLを保持する。
func NewSchemaManager(databaseURL string, logger *slog.Logger) *SchemaManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &SchemaManager{databaseURL: databaseURL, logger: logger}
}

// Init は未適用のマイグレーションをすべて適用する。
// すでに最新の場合はエラーなしで返る。
// 前回の失敗でマイグレーション履歴がdirtyになっている場合は、1つ前のバージョンに
// 戻してから再適用する。
func (s *SchemaManager) Init(ctx context.Context) error {
	m, err := NewMigrator(s.databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()

	err = m.Up()

	var dirty migrate.ErrDirty
	if errors.As(err, &dirty) {
		s.logger.WarnContext(ctx, "schema history is dirty, re-applying",
			slog.Int("version", dirty.Version),
		)
		if err := m.Force(previousVersion(dirty.Version)); err != nil {
			return fmt.Errorf("failed to reset dirty schema version: %w", err)
		}
		err = m.Up()
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, _, verr := m.Version()
	if verr == nil {
		s.logger.InfoContext(ctx, "schema is up to date", slog.Uint64("version", uint64(version)))
	}

	return nil
}

// previousVersion はdirtyになったバージョンの直前のバージョンを返す。
// マイグレーション番号は1からの連番。
func previousVersion(v int) int {
	if v <= 1 {
		return migratedb.NilVersion
	}
	return v - 1
}
