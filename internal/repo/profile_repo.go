// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file covers the upsert-by-key records consumed by the
// response pipeline: astro profiles (keyed by user), daily contexts (keyed
// by user+date), and preferences (keyed by user).
//
// Upserts use ON CONFLICT DO UPDATE against the unique key, so a second
// write with the same key overwrites rather than duplicates and concurrent
// writers degrade to last-write-wins. That is safe here because every one of
// these records is a pure function of its key (plus birth data that does not
// change between the writes).
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/astrelia/go-astro-backend/internal/domain"
)

// UpsertAstroProfile writes a user's natal profile, overwriting any existing
// row for that user.
func UpsertAstroProfile(ctx context.Context, db *gorm.DB, p *domain.AstroProfile) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.UpdatedAt = time.Now().UTC()
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"sun_sign", "moon_sign", "rising_sign", "natal_chart", "updated_at",
		}),
	}).Create(p).Error
}

// GetAstroProfile fetches a user's natal profile, or ErrNotFound.
func GetAstroProfile(ctx context.Context, db *gorm.DB, userID string) (*domain.AstroProfile, error) {
	var p domain.AstroProfile
	if err := db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// UpsertDailyContext writes a user's transit snapshot for one day,
// overwriting any existing row for (user, date). Exactly one row per key
// exists after any number of calls.
func UpsertDailyContext(ctx context.Context, db *gorm.DB, dc *domain.DailyContext) error {
	if dc.ID == "" {
		dc.ID = uuid.NewString()
	}
	dc.UpdatedAt = time.Now().UTC()
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"transits", "aspects", "summary", "updated_at",
		}),
	}).Create(dc).Error
}

// GetDailyContext fetches the snapshot for (user, date), or ErrNotFound.
func GetDailyContext(ctx context.Context, db *gorm.DB, userID, date string) (*domain.DailyContext, error) {
	var dc domain.DailyContext
	err := db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&dc).Error
	if err != nil {
		return nil, err
	}
	return &dc, nil
}

// UpsertPreferences writes a user's preference document, overwriting any
// existing row for that user.
func UpsertPreferences(ctx context.Context, db *gorm.DB, p *domain.Preference) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.UpdatedAt = time.Now().UTC()
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"preferences", "updated_at"}),
	}).Create(p).Error
}

// GetPreferences fetches a user's preference document, or ErrNotFound.
func GetPreferences(ctx context.Context, db *gorm.DB, userID string) (*domain.Preference, error) {
	var p domain.Preference
	if err := db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
