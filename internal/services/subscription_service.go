// Package services – SubscriptionService
//
// This file implements SubscriptionService. Creating a subscription and
// flipping the owner's premium flag happen in one transaction so the two
// can never diverge.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/astrelia/go-astro-backend/internal/domain"
	"github.com/astrelia/go-astro-backend/internal/repo"
)

var validBillingPeriods = map[string]struct{}{
	"weekly": {}, "monthly": {}, "yearly": {},
}

// SubscriptionService provides subscription writes and reads.
type SubscriptionService struct {
	DB *gorm.DB
}

// NewSubscriptionService constructs a SubscriptionService.
func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{DB: db}
}

// Create records a purchased plan and marks the owning user premium
// atomically. Unknown users yield ErrUserNotFound.
func (s *SubscriptionService) Create(ctx context.Context, sub *domain.Subscription) (*domain.Subscription, error) {
	if _, ok := validBillingPeriods[sub.BillingPeriod]; !ok {
		return nil, ErrInvalidBillingPeriod
	}
	if _, err := repo.GetUser(ctx, s.DB, sub.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.CreateSubscription(ctx, tx, sub); err != nil {
			return err
		}
		return repo.SetUserPremium(ctx, tx, sub.UserID, true)
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// List returns a user's subscriptions, newest first.
func (s *SubscriptionService) List(ctx context.Context, userID string) ([]domain.Subscription, error) {
	return repo.ListSubscriptions(ctx, s.DB, userID)
}
