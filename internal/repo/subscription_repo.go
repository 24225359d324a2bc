// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// Subscription model.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/astrelia/go-astro-backend/internal/domain"
)

// CreateSubscription inserts a new subscription row. EndDate is derived from
// the billing period when the caller leaves it nil.
func CreateSubscription(ctx context.Context, db *gorm.DB, s *domain.Subscription) error {
	now := time.Now().UTC()
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.StartDate.IsZero() {
		s.StartDate = now
	}
	if s.EndDate == nil {
		end := periodEnd(s.StartDate, s.BillingPeriod)
		s.EndDate = &end
	}
	s.IsActive = true
	s.CreatedAt = now
	s.UpdatedAt = now
	return db.WithContext(ctx).Create(s).Error
}

// ListSubscriptions returns a user's subscriptions, newest first.
func ListSubscriptions(ctx context.Context, db *gorm.DB, userID string) ([]domain.Subscription, error) {
	var out []domain.Subscription
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func periodEnd(start time.Time, billingPeriod string) time.Time {
	switch billingPeriod {
	case "weekly":
		return start.AddDate(0, 0, 7)
	case "yearly":
		return start.AddDate(1, 0, 0)
	default: // monthly
		return start.AddDate(0, 1, 0)
	}
}
