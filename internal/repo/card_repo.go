// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file covers cosmic energy types, daily cards, and
// per-user read markers.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/astrelia/go-astro-backend/internal/domain"
)

// ListEnergyTypes returns the cosmic energy type catalog.
func ListEnergyTypes(ctx context.Context, db *gorm.DB) ([]domain.CosmicEnergyType, error) {
	var out []domain.CosmicEnergyType
	err := db.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, err
}

// ListCards returns the cards for a date (YYYY-MM-DD), optionally filtered
// by zodiac sign, with the energy type preloaded.
func ListCards(ctx context.Context, db *gorm.DB, zodiacSign, date string) ([]domain.CosmicEnergyCard, error) {
	q := db.WithContext(ctx).Preload("EnergyType").Where("date = ?", date)
	if zodiacSign != "" {
		q = q.Where("zodiac_sign = ?", zodiacSign)
	}
	var out []domain.CosmicEnergyCard
	err := q.Find(&out).Error
	return out, err
}

// GetCard fetches a card by ID, or ErrNotFound.
func GetCard(ctx context.Context, db *gorm.DB, id string) (*domain.CosmicEnergyCard, error) {
	var c domain.CosmicEnergyCard
	if err := db.WithContext(ctx).Preload("EnergyType").Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// MarkCardRead records that a user has read a card.
func MarkCardRead(ctx context.Context, db *gorm.DB, userID, cardID string) (*domain.UserCosmicEnergyCard, error) {
	link := &domain.UserCosmicEnergyCard{
		ID:        uuid.NewString(),
		UserID:    userID,
		CardID:    cardID,
		IsRead:    true,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(link).Error; err != nil {
		return nil, err
	}
	return link, nil
}
