// Package services – UserService
//
// This file implements UserService, which owns user onboarding. Creating a
// user validates birth data, computes and stores the natal astro profile,
// and best-effort provisions a Welcome conversation seeded with an assistant
// greeting so the app opens on a non-empty thread. Provisioning failures are
// logged, never surfaced; the user row is the only hard requirement.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/astrelia/go-astro-backend/internal/astro"
	"github.com/astrelia/go-astro-backend/internal/domain"
	"github.com/astrelia/go-astro-backend/internal/repo"
)

// welcomeMessage seeds the assistant side of every new user's first
// conversation.
const welcomeMessage = "Welcome to Astro! I'm your personal cosmic companion. How can I assist you today?"

// welcomeTitle is the provisioned conversation's placeholder title; the
// first real user message replaces it via auto-titling.
const welcomeTitle = "Welcome"

// UserService provides user CRUD plus onboarding side effects.
type UserService struct {
	DB *gorm.DB
}

// NewUserService constructs a UserService.
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// Create inserts a new user, computes their natal profile, and provisions
// the Welcome conversation. BirthDate must parse as YYYY-MM-DD.
func (s *UserService) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	tr := otel.Tracer("services/UserService")
	ctx, span := tr.Start(ctx, "Create")
	defer span.End()

	u.Name = strings.TrimSpace(u.Name)
	if _, err := time.Parse("2006-01-02", u.BirthDate); err != nil {
		return nil, ErrInvalidBirthDate
	}

	created, err := repo.CreateUser(ctx, s.DB, u)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("user.id", created.ID))

	s.computeProfile(ctx, created)
	s.provisionWelcome(ctx, created.ID)

	return created, nil
}

// Get fetches a user by ID, or ErrUserNotFound.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	u, err := repo.GetUser(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// computeProfile derives and stores the natal astro profile. Best-effort:
// the chat pipeline degrades gracefully when the profile is absent.
func (s *UserService) computeProfile(ctx context.Context, u *domain.User) {
	chart := astro.NatalChart(u.BirthDate, u.BirthTime)
	p := &domain.AstroProfile{
		UserID:     u.ID,
		SunSign:    chart.SunSign,
		MoonSign:   chart.MoonSign,
		RisingSign: chart.RisingSign,
		NatalChart: chart.Positions,
	}
	if err := repo.UpsertAstroProfile(ctx, s.DB, p); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("user_id", u.ID).Msg("astro profile write failed")
	}
}

// provisionWelcome creates the Welcome conversation with its assistant
// greeting. Best-effort; a failure leaves the user without a seeded thread.
func (s *UserService) provisionWelcome(ctx context.Context, userID string) {
	conv, err := repo.CreateConversation(ctx, s.DB, userID, welcomeTitle)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("user_id", userID).Msg("welcome conversation create failed")
		return
	}
	if _, err := repo.CreateMessage(s.DB.WithContext(ctx), conv.ID, domain.RoleAssistant, welcomeMessage); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("user_id", userID).Msg("welcome message create failed")
	}
}
