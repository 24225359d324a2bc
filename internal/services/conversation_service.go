// Package services – ConversationService
//
// This file implements the ConversationService, which manages the lifecycle of
// conversation threads. It validates and normalizes titles, enforces ownership
// rules, and coordinates repository operations for creating, listing (with
// pagination), and updating conversations. Title handling is intentionally
// minimal here because automatic title generation is performed in
// MessageService on the first user message.
//
// Service-level errors (e.g., ErrConversationNotFound) are returned for
// predictable cases so handlers can map them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/astrelia/go-astro-backend/internal/domain"
	"github.com/astrelia/go-astro-backend/internal/repo"
	"golang.org/x/text/language"
)

// ConversationService provides conversation-level operations such as
// creating, listing, and updating conversation metadata. It enforces title
// rules and ensures ownership constraints.
type ConversationService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB

	// TitleMaxLen caps stored titles by rune length.
	TitleMaxLen int
	// TitleLocale is retained for compatibility; auto-titling is handled in MessageService.
	TitleLocale language.Tag
}

// NewConversationService constructs a ConversationService with sane defaults
// for title handling.
func NewConversationService(db *gorm.DB) *ConversationService {
	return &ConversationService{
		DB:          db,
		TitleMaxLen: 60,
		TitleLocale: language.Und,
	}
}

// Create inserts a new conversation owned by userID with the provided title.
// Titles are normalized, trimmed, clipped, and a default fallback is applied.
// Unknown users yield ErrUserNotFound.
func (s *ConversationService) Create(ctx context.Context, userID, title string) (*domain.Conversation, error) {
	if _, err := repo.GetUser(ctx, s.DB, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	title = normalizeTitle(title)
	if title == "" {
		title = "New chat"
	}
	return repo.CreateConversation(ctx, s.DB, userID, s.clip(title))
}

// List returns all conversations for a user, most recently updated first.
// Users with none get an empty slice, not an error.
func (s *ConversationService) List(ctx context.Context, userID string) ([]domain.Conversation, error) {
	return repo.ListConversations(ctx, s.DB, userID)
}

// Get fetches a conversation owned by userID, or ErrConversationNotFound.
func (s *ConversationService) Get(ctx context.Context, userID, conversationID string) (*domain.Conversation, error) {
	c, err := repo.GetConversation(ctx, s.DB, conversationID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	return c, nil
}

// UpdateTitle updates a conversation's title, ensuring the conversation
// exists and belongs to the given user. Falls back to "Untitled" if the
// title is blank.
func (s *ConversationService) UpdateTitle(ctx context.Context, userID, conversationID, title string) error {
	title = normalizeTitle(title)
	if title == "" {
		title = "Untitled"
	}
	err := repo.UpdateConversationTitle(ctx, s.DB, conversationID, userID, s.clip(title))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrConversationNotFound
	}
	return err
}

// clip truncates a conversation title to the configured maximum rune length.
func (s *ConversationService) clip(title string) string {
	if s.TitleMaxLen > 0 && utf8.RuneCountInString(title) > s.TitleMaxLen {
		return string([]rune(title)[:s.TitleMaxLen])
	}
	return title
}

// normalizeTitle trims whitespace and collapses multiple spaces to one.
func normalizeTitle(s string) string {
	return whitespaceRE.ReplaceAllString(strings.TrimSpace(s), " ")
}

// whitespaceRE collapses consecutive whitespace to a single space.
var whitespaceRE = regexp.MustCompile(`\s+`)
