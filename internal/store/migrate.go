package store

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fhd3v0p/fsr-backend/internal/store/migrations"
)

const migrationTable = "schema_migrations"

type schemaMigration struct {
	Name      string    `gorm:"column:name;primaryKey"`
	AppliedAt time.Time `gorm:"column:applied_at;not null"`
}

func (schemaMigration) TableName() string {
	return migrationTable
}

// Migrate applies the embedded migrations and returns the names of the files it applied
func Migrate(ctx context.Context, db *gorm.DB) ([]string, error) {
	return ApplyMigrations(ctx, db, migrations.FS)
}

// ApplyMigrations executes every *.sql file of migrationFS at most once, in name order.
// Each file runs in its own transaction together with its bookkeeping row.
func ApplyMigrations(ctx context.Context, db *gorm.DB, migrationFS fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(migrationFS, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	if err := db.WithContext(ctx).Exec(`CREATE TABLE IF NOT EXISTS ` + migrationTable + ` (
		name       TEXT PRIMARY KEY,
		applied_at DATETIME NOT NULL
	)`).Error; err != nil {
		return nil, fmt.Errorf("failed to ensure migration table: %w", err)
	}

	applied := []string{}
	for _, file := range files {
		content, err := fs.ReadFile(migrationFS, file)
		if err != nil {
			return applied, fmt.Errorf("failed to read migration %s: %w", file, err)
		}

		upSQL := extractUpMigration(string(content))
		if strings.TrimSpace(upSQL) == "" {
			continue
		}

		ran := false
		err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var count int64
			if err := tx.Model(&schemaMigration{}).Where("name = ?", file).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check migration %s: %w", file, err)
			}
			if count > 0 {
				return nil
			}

			if err := tx.Exec(upSQL).Error; err != nil {
				return fmt.Errorf("failed to exec migration %s: %w", file, err)
			}

			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&schemaMigration{
				Name:      file,
				AppliedAt: time.Now().UTC(),
			}).Error; err != nil {
				return fmt.Errorf("failed to record migration %s: %w", file, err)
			}
			ran = true
			return nil
		})
		if err != nil {
			return applied, err
		}
		if ran {
			applied = append(applied, file)
		}
	}

	return applied, nil
}

// extractUpMigration returns the SQL in the -- +migrate Up section
func extractUpMigration(content string) string {
	const up, down = "-- +migrate Up", "-- +migrate Down"

	upIdx := strings.Index(content, up)
	if upIdx == -1 {
		return content
	}
	downIdx := strings.Index(content, down)
	if downIdx == -1 || downIdx < upIdx {
		return content[upIdx+len(up):]
	}
	return content[upIdx+len(up) : downIdx]
}
