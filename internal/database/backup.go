package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dockside/internal/config"

	"github.com/rs/zerolog"
)

// Backuper периодически снимает резервную копию базы через VACUUM INTO.
type Backuper struct {
	db     *DB
	config config.BackupConfig
	logger *zerolog.Logger
}

func NewBackuper(db *DB, cfg config.BackupConfig, logger *zerolog.Logger) *Backuper {
	return &Backuper{db: db, config: cfg, logger: logger}
}

func (b *Backuper) Start(ctx context.Context) {
	if !b.config.Enabled {
		b.logger.Info().Msg("backups disabled")
		return
	}

	interval := 24 * time.Hour
	if b.config.Schedule != "" {
		if d, err := time.ParseDuration(b.config.Schedule); err == nil {
			interval = d
		} else {
			b.logger.Warn().Err(err).Str("schedule", b.config.Schedule).Msg("bad backup schedule, using 24h")
		}
	}
	b.logger.Info().Dur("interval", interval).Msg("backup loop started")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := b.Backup(ctx); err != nil {
			b.logger.Error().Err(err).Msg("backup failed")
		}
		b.sweep()

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Backup снимает онлайн-копию базы в каталог StoragePath.
func (b *Backuper) Backup(ctx context.Context) error {
	if err := os.MkdirAll(b.config.StoragePath, 0o755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	name := fmt.Sprintf("backup_%s.db", time.Now().Format("20060102_150405"))
	path := filepath.Join(b.config.StoragePath, name)

	// VACUUM INTO дает консистентный снимок без остановки записи
	if _, err := b.db.ExecContext(ctx, fmt.Sprintf("VACUUM INTO '%s'", path)); err != nil {
		return fmt.Errorf("vacuum into failed: %w", err)
	}

	b.logger.Info().Str("path", path).Msg("backup completed")
	return nil
}

// sweep удаляет копии старше RetentionDays.
func (b *Backuper) sweep() {
	if b.config.RetentionDays <= 0 {
		return
	}

	files, err := os.ReadDir(b.config.StoragePath)
	if err != nil {
		b.logger.Error().Err(err).Msg("failed to read backup directory")
		return
	}

	cutoff := time.Now().AddDate(0, 0, -b.config.RetentionDays)
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		info, err := file.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			b.logger.Info().Str("file", file.Name()).Msg("deleting old backup")
			os.Remove(filepath.Join(b.config.StoragePath, file.Name()))
		}
	}
}
