// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file covers the mood catalog, per-user mood
// selections, and the append-only numeric mood log.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/astrelia/go-astro-backend/internal/domain"
)

// ListMoods returns the full mood catalog.
func ListMoods(ctx context.Context, db *gorm.DB) ([]domain.Mood, error) {
	var out []domain.Mood
	err := db.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, err
}

// GetMood fetches a catalog mood by ID, or ErrNotFound.
func GetMood(ctx context.Context, db *gorm.DB, id string) (*domain.Mood, error) {
	var m domain.Mood
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateUserMood appends a mood selection for a user. The selection date is
// set server-side; rows are never updated afterwards.
func CreateUserMood(ctx context.Context, db *gorm.DB, userID, moodID string) (*domain.UserMood, error) {
	now := time.Now().UTC()
	um := &domain.UserMood{
		ID:        uuid.NewString(),
		UserID:    userID,
		MoodID:    moodID,
		Date:      now,
		CreatedAt: now,
	}
	if err := db.WithContext(ctx).Create(um).Error; err != nil {
		return nil, err
	}
	return um, nil
}

// ListUserMoods returns a user's most recent mood selections (newest first)
// with the catalog mood preloaded. An empty slice, not an error, is returned
// when the user has no selections.
func ListUserMoods(ctx context.Context, db *gorm.DB, userID string, limit int) ([]domain.UserMood, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []domain.UserMood
	err := db.WithContext(ctx).
		Preload("Mood").
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CreateMoodLog appends a numeric mood check-in with an optional note.
func CreateMoodLog(ctx context.Context, db *gorm.DB, userID string, score int, note string) (*domain.MoodLog, error) {
	ml := &domain.MoodLog{
		ID:        uuid.NewString(),
		UserID:    userID,
		MoodScore: score,
		Note:      note,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(ml).Error; err != nil {
		return nil, err
	}
	return ml, nil
}
