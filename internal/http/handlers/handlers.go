// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the Handlers aggregate, the service contracts the
// transport layer depends on, and shared DTO/validation helpers. Handlers are
// transport-thin: they validate and normalize inputs, delegate to application
// services, and translate results into HTTP responses.
package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/astrelia/go-astro-backend/internal/domain"
	"github.com/astrelia/go-astro-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// UserService defines user lifecycle operations consumed by HTTP handlers.
type UserService interface {
	// Create inserts a user and runs onboarding side effects.
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	// Get fetches a user by ID.
	Get(ctx context.Context, id string) (*domain.User, error)
}

// MoodService defines mood catalog and check-in operations.
type MoodService interface {
	List(ctx context.Context) ([]domain.Mood, error)
	CheckIn(ctx context.Context, userID, moodID string) (*domain.UserMood, error)
	History(ctx context.Context, userID string, limit int) ([]domain.UserMood, error)
	Log(ctx context.Context, userID string, score int, note string) (*domain.MoodLog, error)
}

// EnergyService defines companion energy catalog and selection operations.
type EnergyService interface {
	List(ctx context.Context) ([]domain.CompanionEnergy, error)
	SetActive(ctx context.Context, userID, energyID string) (*domain.UserCompanionEnergy, error)
	Active(ctx context.Context, userID string) (*domain.UserCompanionEnergy, error)
}

// CardService defines cosmic energy card operations.
type CardService interface {
	ListTypes(ctx context.Context) ([]domain.CosmicEnergyType, error)
	ListCards(ctx context.Context, zodiacSign, date string) ([]domain.CosmicEnergyCard, error)
	MarkRead(ctx context.Context, userID, cardID string) (*domain.UserCosmicEnergyCard, error)
}

// ConversationService defines conversation lifecycle operations.
type ConversationService interface {
	Create(ctx context.Context, userID, title string) (*domain.Conversation, error)
	List(ctx context.Context, userID string) ([]domain.Conversation, error)
	UpdateTitle(ctx context.Context, userID, conversationID, title string) error
}

// MessageService defines message send and list operations.
type MessageService interface {
	// Send persists a user message, generates the companion reply, and
	// returns both rows.
	Send(ctx context.Context, conversationID, content, intentOverride string) (*domain.Message, *domain.Message, error)
	// ListPage returns a page of messages within a conversation and the total count.
	ListPage(ctx context.Context, conversationID string, page, pageSize int) ([]domain.Message, int64, error)
}

// SubscriptionService defines subscription operations.
type SubscriptionService interface {
	Create(ctx context.Context, sub *domain.Subscription) (*domain.Subscription, error)
	List(ctx context.Context, userID string) ([]domain.Subscription, error)
}

// ProfileService defines astro profile, daily context, preference, and chat
// history operations.
type ProfileService interface {
	Profile(ctx context.Context, userID string) (*domain.AstroProfile, error)
	RecomputeProfile(ctx context.Context, userID string) (*domain.AstroProfile, error)
	DailyContext(ctx context.Context, userID string) (*domain.DailyContext, error)
	Preferences(ctx context.Context, userID string) (map[string]string, error)
	SavePreferences(ctx context.Context, userID string, prefs map[string]string) error
	ChatHistory(ctx context.Context, userID string, limit, offset int) ([]domain.ChatTurn, int64, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for the public API. It depends on
// abstract service interfaces to keep transport concerns separate from
// business logic.
type Handlers struct {
	userSvc UserService
	moodSvc MoodService
	nrgSvc  EnergyService
	cardSvc CardService
	convSvc ConversationService
	msgSvc  MessageService
	subSvc  SubscriptionService
	profSvc ProfileService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(
	userSvc UserService,
	moodSvc MoodService,
	nrgSvc EnergyService,
	cardSvc CardService,
	convSvc ConversationService,
	msgSvc MessageService,
	subSvc SubscriptionService,
	profSvc ProfileService,
) *Handlers {
	return &Handlers{
		userSvc: userSvc,
		moodSvc: moodSvc,
		nrgSvc:  nrgSvc,
		cardSvc: cardSvc,
		convSvc: convSvc,
		msgSvc:  msgSvc,
		subSvc:  subSvc,
		profSvc: profSvc,
	}
}

// userID extracts the authenticated user id from Gin context (set by upstream
// middleware). If absent, it falls back to "X-User-ID" header (tests use it),
// and finally to "demo-user". It never touches c.Request if it's nil.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			return h
		}
	}
	return "demo-user"
}

//
// Shared DTOs / helpers
//

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}
