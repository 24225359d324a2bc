// Package services – MoodService
//
// This file implements MoodService, covering the mood catalog, user mood
// check-ins against the catalog, and free-form numeric mood logs.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/astrelia/go-astro-backend/internal/domain"
	"github.com/astrelia/go-astro-backend/internal/repo"
)

// MoodService provides mood catalog reads and check-in writes.
type MoodService struct {
	DB *gorm.DB
}

// NewMoodService constructs a MoodService.
func NewMoodService(db *gorm.DB) *MoodService {
	return &MoodService{DB: db}
}

// List returns the mood catalog.
func (s *MoodService) List(ctx context.Context) ([]domain.Mood, error) {
	return repo.ListMoods(ctx, s.DB)
}

// CheckIn records that a user selected a catalog mood. Unknown users yield
// ErrUserNotFound, unknown moods ErrMoodNotFound. The check-in date is set
// server-side.
func (s *MoodService) CheckIn(ctx context.Context, userID, moodID string) (*domain.UserMood, error) {
	if _, err := repo.GetUser(ctx, s.DB, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if _, err := repo.GetMood(ctx, s.DB, moodID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMoodNotFound
		}
		return nil, err
	}
	return repo.CreateUserMood(ctx, s.DB, userID, moodID)
}

// History returns a user's check-ins, newest first. Users with none get an
// empty slice.
func (s *MoodService) History(ctx context.Context, userID string, limit int) ([]domain.UserMood, error) {
	return repo.ListUserMoods(ctx, s.DB, userID, limit)
}

// Log records a numeric mood score (1..10) with an optional note.
func (s *MoodService) Log(ctx context.Context, userID string, score int, note string) (*domain.MoodLog, error) {
	if score < 1 || score > 10 {
		return nil, ErrInvalidScore
	}
	if _, err := repo.GetUser(ctx, s.DB, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return repo.CreateMoodLog(ctx, s.DB, userID, score, strings.TrimSpace(note))
}
