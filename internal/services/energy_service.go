// Package services – EnergyService
//
// This file implements EnergyService, covering the companion energy catalog
// and each user's single active selection.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/astrelia/go-astro-backend/internal/domain"
	"github.com/astrelia/go-astro-backend/internal/repo"
)

// EnergyService provides companion energy catalog reads and selection writes.
type EnergyService struct {
	DB *gorm.DB
}

// NewEnergyService constructs an EnergyService.
func NewEnergyService(db *gorm.DB) *EnergyService {
	return &EnergyService{DB: db}
}

// List returns the companion energy catalog.
func (s *EnergyService) List(ctx context.Context) ([]domain.CompanionEnergy, error) {
	return repo.ListCompanionEnergies(ctx, s.DB)
}

// SetActive makes energyID the user's active companion energy, deactivating
// any prior selection in the same transaction.
func (s *EnergyService) SetActive(ctx context.Context, userID, energyID string) (*domain.UserCompanionEnergy, error) {
	if _, err := repo.GetUser(ctx, s.DB, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if _, err := repo.GetCompanionEnergy(ctx, s.DB, energyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnergyNotFound
		}
		return nil, err
	}
	return repo.SetActiveEnergy(ctx, s.DB, userID, energyID)
}

// Active returns the user's active companion energy, or ErrEnergyNotFound
// when the user has never selected one.
func (s *EnergyService) Active(ctx context.Context, userID string) (*domain.UserCompanionEnergy, error) {
	link, err := repo.GetActiveEnergy(ctx, s.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnergyNotFound
		}
		return nil, err
	}
	return link, nil
}
