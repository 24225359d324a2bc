// Package services – ProfileService
//
// This file implements ProfileService, which exposes the astro context the
// chat pipeline consumes: the natal profile, the generate-on-miss daily
// context, user preferences, and the durable chat history feed.
package services

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/astrelia/go-astro-backend/internal/astro"
	"github.com/astrelia/go-astro-backend/internal/domain"
	"github.com/astrelia/go-astro-backend/internal/repo"
)

// ProfileService provides astro profile, daily context, preference, and
// chat history operations.
type ProfileService struct {
	DB *gorm.DB
}

// NewProfileService constructs a ProfileService.
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{DB: db}
}

// Profile returns a user's natal profile, or ErrProfileNotFound.
func (s *ProfileService) Profile(ctx context.Context, userID string) (*domain.AstroProfile, error) {
	p, err := repo.GetAstroProfile(ctx, s.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

// RecomputeProfile re-derives the natal profile from the user's stored birth
// data and upserts it. Unknown users yield ErrUserNotFound.
func (s *ProfileService) RecomputeProfile(ctx context.Context, userID string) (*domain.AstroProfile, error) {
	u, err := repo.GetUser(ctx, s.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	chart := astro.NatalChart(u.BirthDate, u.BirthTime)
	p := &domain.AstroProfile{
		UserID:     u.ID,
		SunSign:    chart.SunSign,
		MoonSign:   chart.MoonSign,
		RisingSign: chart.RisingSign,
		NatalChart: chart.Positions,
	}
	if err := repo.UpsertAstroProfile(ctx, s.DB, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DailyContext returns the user's transit snapshot for today, generating
// and storing it on first access. Repeated calls on the same day return the
// same row. Unknown users yield ErrUserNotFound.
func (s *ProfileService) DailyContext(ctx context.Context, userID string) (*domain.DailyContext, error) {
	tr := otel.Tracer("services/ProfileService")
	ctx, span := tr.Start(ctx, "DailyContext",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	if _, err := repo.GetUser(ctx, s.DB, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	today := now.Format("2006-01-02")
	dc, err := repo.GetDailyContext(ctx, s.DB, userID, today)
	if err == nil {
		return dc, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	t := astro.DailyTransits(now)
	dc = &domain.DailyContext{
		UserID:   userID,
		Date:     today,
		Transits: t.Positions,
		Aspects:  t.Aspects,
		Summary:  t.Summary,
	}
	if err := repo.UpsertDailyContext(ctx, s.DB, dc); err != nil {
		return nil, err
	}
	return dc, nil
}

// Preferences returns a user's preference document; users who never saved
// one get an empty map.
func (s *ProfileService) Preferences(ctx context.Context, userID string) (map[string]string, error) {
	p, err := repo.GetPreferences(ctx, s.DB, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return p.Preferences, nil
}

// SavePreferences overwrites a user's preference document. Unknown users
// yield ErrUserNotFound.
func (s *ProfileService) SavePreferences(ctx context.Context, userID string, prefs map[string]string) error {
	if _, err := repo.GetUser(ctx, s.DB, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return repo.UpsertPreferences(ctx, s.DB, &domain.Preference{
		UserID:      userID,
		Preferences: prefs,
	})
}

// ChatHistory returns a page of the user's durable chat history in
// insertion order, plus the total row count.
func (s *ProfileService) ChatHistory(ctx context.Context, userID string, limit, offset int) ([]domain.ChatTurn, int64, error) {
	total, err := repo.CountChatHistory(ctx, s.DB, userID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.ChatTurn{}, 0, nil
	}
	items, err := repo.ListChatHistory(ctx, s.DB, userID, limit, offset)
	return items, total, err
}
