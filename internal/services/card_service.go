// Package services – CardService
//
// This file implements CardService, covering the cosmic energy type catalog,
// the daily card feed, and per-user read markers.
package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/astrelia/go-astro-backend/internal/domain"
	"github.com/astrelia/go-astro-backend/internal/repo"
)

// CardService provides cosmic energy card reads and read-marker writes.
type CardService struct {
	DB *gorm.DB
}

// NewCardService constructs a CardService.
func NewCardService(db *gorm.DB) *CardService {
	return &CardService{DB: db}
}

// ListTypes returns the cosmic energy type catalog.
func (s *CardService) ListTypes(ctx context.Context) ([]domain.CosmicEnergyType, error) {
	return repo.ListEnergyTypes(ctx, s.DB)
}

// ListCards returns the cards for a date, optionally filtered by zodiac
// sign. A blank date defaults to today (UTC). No cards yields an empty
// slice, not an error.
func (s *CardService) ListCards(ctx context.Context, zodiacSign, date string) ([]domain.CosmicEnergyCard, error) {
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}
	return repo.ListCards(ctx, s.DB, zodiacSign, date)
}

// MarkRead records that a user has read a card. Unknown users yield
// ErrUserNotFound, unknown cards ErrCardNotFound.
func (s *CardService) MarkRead(ctx context.Context, userID, cardID string) (*domain.UserCosmicEnergyCard, error) {
	if _, err := repo.GetUser(ctx, s.DB, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if _, err := repo.GetCard(ctx, s.DB, cardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	return repo.MarkCardRead(ctx, s.DB, userID, cardID)
}
