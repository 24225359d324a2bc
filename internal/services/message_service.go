// Package services – MessageService
//
// This file implements MessageService, the application-level component that
// owns the lifecycle of conversation messages. It validates inputs, resolves
// the conversation (and its owner), delegates reply generation to the
// ResponderService, and persists the user/assistant message pair atomically.
//
// Optional enhancement: it also auto-generates a conversation title from the
// first user message when the conversation still has a default/empty title.
//
// Observability: all public methods are OpenTelemetry-instrumented; spans
// include conversation identifiers and pagination parameters where applicable.
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

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// default titles we consider placeholders, eligible for auto-generation
	defaultTitleNew      = "New chat"
	defaultTitleUntitled = "Untitled"
	defaultTitleWelcome  = "Welcome"
)

// MessageService coordinates message persistence and companion replies.
type MessageService struct {
	DB        *gorm.DB
	Responder *ResponderService

	// MaxMessageRunes caps inbound message length; 0 disables the check.
	MaxMessageRunes int

	// Title generation config
	TitleLocale language.Tag
	TitleMaxLen int
}

// Send validates the message, resolves the conversation and its owner,
// obtains a companion reply from the responder pipeline, and persists the
// user and assistant rows in one transaction. It may auto-generate the
// conversation title from the first real user message.
func (s *MessageService) Send(ctx context.Context, conversationID, content, intentOverride string) (*domain.Message, *domain.Message, error) {
	tr := otel.Tracer("services/MessageService")
	ctx, span := tr.Start(ctx, "Send",
		trace.WithAttributes(attribute.String("conversation.id", conversationID)),
	)
	defer span.End()

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, nil, ErrEmptyMessage
	}
	if s.MaxMessageRunes > 0 && utf8.RuneCountInString(content) > s.MaxMessageRunes {
		return nil, nil, ErrTooLong
	}

	conv, err := repo.GetConversationByID(ctx, s.DB, conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrConversationNotFound
		}
		return nil, nil, err
	}

	// Respond commits chat history and memory-window writes before the
	// message transaction below opens. If that transaction fails, history
	// and memory keep turns with no matching messages rows; the two stores
	// are per-user and per-conversation respectively and are not kept
	// atomic with each other.
	reply, err := s.Responder.Respond(ctx, conv.UserID, content, intentOverride)
	if err != nil {
		return nil, nil, err
	}

	var userMsg, assistantMsg *domain.Message
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := repo.CreateMessage(tx, conversationID, domain.RoleUser, content)
		if err != nil {
			return err
		}
		userMsg = m

		a, err := repo.CreateMessage(tx, conversationID, domain.RoleAssistant, reply)
		if err != nil {
			return err
		}
		assistantMsg = a

		if err := repo.TouchConversation(ctx, tx, conversationID); err != nil {
			return err
		}

		// Auto-title if placeholder
		if s.shouldAutoTitle(conv.Title) {
			if gen := s.generateTitle(content); gen != "" {
				gen = s.clipTitle(gen)
				if uerr := tx.Model(&domain.Conversation{}).Where("id = ?", conversationID).Update("title", gen).Error; uerr == nil {
					conv.Title = gen
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return userMsg, assistantMsg, nil
}

// ListPage returns paginated messages for a conversation, oldest first.
func (s *MessageService) ListPage(ctx context.Context, conversationID string, page, pageSize int) ([]domain.Message, int64, error) {
	tr := otel.Tracer("services/MessageService")
	ctx, span := tr.Start(ctx, "ListPage",
		trace.WithAttributes(
			attribute.String("conversation.id", conversationID),
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	if _, err := repo.GetConversationByID(ctx, s.DB, conversationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrConversationNotFound
		}
		return nil, 0, err
	}

	total, err := repo.CountMessages(s.DB.WithContext(ctx), conversationID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Message{}, 0, nil
	}

	items, err := repo.ListMessagesPage(s.DB.WithContext(ctx), conversationID, offset, pageSize)
	return items, total, err
}

// shouldAutoTitle reports whether the current title is a placeholder.
func (s *MessageService) shouldAutoTitle(current string) bool {
	t := strings.TrimSpace(strings.ToLower(current))
	return t == "" ||
		t == strings.ToLower(defaultTitleNew) ||
		t == strings.ToLower(defaultTitleUntitled) ||
		t == strings.ToLower(defaultTitleWelcome)
}

// generateTitle derives a concise title from the first message.
func (s *MessageService) generateTitle(content string) string {
	toks := titleWordRE.FindAllString(strings.ToLower(strings.TrimSpace(content)), -1)
	if len(toks) == 0 {
		return ""
	}

	titleCaser := cases.Title(s.titleLocaleOrDefault())
	out := make([]string, 0, 8)
	for _, w := range toks {
		if _, skip := titleStopWords[w]; skip {
			continue
		}
		out = append(out, titleCaser.String(w))
		if len(out) >= 8 {
			break
		}
	}
	if len(out) == 0 {
		return ""
	}
	return strings.Join(out, " ")
}

// clipTitle truncates a generated title to the configured maximum rune length.
func (s *MessageService) clipTitle(title string) string {
	max := s.TitleMaxLen
	if max <= 0 {
		max = 60
	}
	if utf8.RuneCountInString(title) > max {
		return string([]rune(title)[:max])
	}
	return title
}

// titleLocaleOrDefault returns the configured locale for casing or English if unset.
func (s *MessageService) titleLocaleOrDefault() language.Tag {
	if s.TitleLocale == language.Und {
		return language.English
	}
	return s.TitleLocale
}

// Extract Unicode letters with optional trailing numbers (e.g., "virgo2026").
var titleWordRE = regexp.MustCompile(`[\p{L}]+[\p{N}]*`)

// Minimal English stop-words set for compact titles.
var titleStopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "of": {}, "to": {}, "in": {},
	"is": {}, "are": {}, "for": {}, "on": {}, "with": {}, "by": {}, "from": {},
	"at": {}, "as": {}, "that": {}, "this": {}, "it": {}, "be": {}, "was": {}, "were": {},
	"i": {}, "im": {}, "my": {}, "me": {},
}
