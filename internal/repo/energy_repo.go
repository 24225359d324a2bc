// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file covers companion energies and the "at most one
// active per user" selection relation.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/astrelia/go-astro-backend/internal/domain"
)

// ListCompanionEnergies returns the companion energy catalog.
func ListCompanionEnergies(ctx context.Context, db *gorm.DB) ([]domain.CompanionEnergy, error) {
	var out []domain.CompanionEnergy
	err := db.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, err
}

// GetCompanionEnergy fetches a catalog energy by ID, or ErrNotFound.
func GetCompanionEnergy(ctx context.Context, db *gorm.DB, id string) (*domain.CompanionEnergy, error) {
	var e domain.CompanionEnergy
	if err := db.WithContext(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// SetActiveEnergy makes energyID the user's single active companion energy.
//
// Deactivate-then-insert runs inside one transaction so two concurrent calls
// cannot both observe "no active rows" and leave the user with two active
// energies. The invariant "at most one active row per user" holds at commit.
func SetActiveEnergy(ctx context.Context, db *gorm.DB, userID, energyID string) (*domain.UserCompanionEnergy, error) {
	link := &domain.UserCompanionEnergy{
		ID:                uuid.NewString(),
		UserID:            userID,
		CompanionEnergyID: energyID,
		IsActive:          true,
		CreatedAt:         time.Now().UTC(),
	}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.UserCompanionEnergy{}).
			Where("user_id = ? AND is_active = ?", userID, true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Create(link).Error
	})
	if err != nil {
		return nil, err
	}
	return link, nil
}

// GetActiveEnergy returns the user's active companion energy with the
// catalog entry preloaded, or ErrNotFound when none is active.
func GetActiveEnergy(ctx context.Context, db *gorm.DB, userID string) (*domain.UserCompanionEnergy, error) {
	var link domain.UserCompanionEnergy
	err := db.WithContext(ctx).
		Preload("CompanionEnergy").
		Where("user_id = ? AND is_active = ?", userID, true).
		First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}
