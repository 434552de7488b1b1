package keyvalue

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

type record struct {
	Key       string `gorm:"primaryKey;column:key"`
	Value     string `gorm:"column:value"`
	UpdatedAt time.Time
}

func (record) TableName() string { return "client_state" }

// File persists client state in a local SQLite database.
type File struct {
	conn *gorm.DB
}

// OpenFile boots the SQLite-backed store at the given path and ensures the
// schema exists.
func OpenFile(path string) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	silent := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)

	conn, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:                 silent,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	if err := conn.AutoMigrate(&record{}); err != nil {
		return nil, fmt.Errorf("migrating state db: %w", err)
	}

	return &File{conn: conn}, nil
}

func (f *File) Get(ctx context.Context, key string) (string, error) {
	var rec record
	err := f.conn.WithContext(ctx).First(&rec, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading %q: %w", key, err)
	}
	return rec.Value, nil
}

func (f *File) Set(ctx context.Context, key, value string) error {
	rec := record{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := f.conn.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&rec).Error
	if err != nil {
		return fmt.Errorf("writing %q: %w", key, err)
	}
	return nil
}

func (f *File) Clear(ctx context.Context, key string) error {
	if err := f.conn.WithContext(ctx).Delete(&record{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("clearing %q: %w", key, err)
	}
	return nil
}

// Close releases the underlying SQLite handle.
func (f *File) Close() error {
	sqlDB, err := f.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
