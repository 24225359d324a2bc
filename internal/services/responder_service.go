// Package services – ResponderService
//
// This file implements ResponderService, the application-level component that
// turns an inbound user message into a companion reply. It owns the full
// response pipeline: the small-talk short circuit, intent classification,
// persona prompt lookup, astro context assembly, the model call, and the
// durable history / memory-window writes.
//
// Observability: Respond is OpenTelemetry-instrumented; spans include the
// user identifier and the resolved intent.
package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/astrelia/go-astro-backend/internal/astro"
	"github.com/astrelia/go-astro-backend/internal/chat"
	"github.com/astrelia/go-astro-backend/internal/domain"
	"github.com/astrelia/go-astro-backend/internal/llm"
	"github.com/astrelia/go-astro-backend/internal/repo"
)

// apologyReply is returned verbatim whenever the model call fails. The
// inbound user turn is still persisted; the apology itself is not.
const apologyReply = "I'm sorry, I couldn't generate a response at this time. Please try again later."

// ResponderService orchestrates the chat response pipeline.
type ResponderService struct {
	DB     *gorm.DB
	Model  llm.Client
	Memory *chat.MemoryStore

	// MaxMessageRunes caps inbound message length; 0 disables the check.
	MaxMessageRunes int
}

// NewResponderService constructs a ResponderService with the default
// memory-window capacity.
func NewResponderService(db *gorm.DB, model llm.Client) *ResponderService {
	return &ResponderService{
		DB:     db,
		Model:  model,
		Memory: chat.NewMemoryStore(chat.DefaultMemoryCapacity),
	}
}

// Respond produces the companion reply for one inbound user message.
//
// Very short or filler messages take the short-circuit path: a tiny
// acknowledgement is returned without touching the user's profile, daily
// context, or the model. Everything else runs the full pipeline: classify
// (unless intentOverride names a valid intent), assemble astro context,
// compose the persona prompt, call the model, and persist both turns.
//
// A model failure degrades to a fixed apology; it is never surfaced as an
// error to the caller.
func (s *ResponderService) Respond(ctx context.Context, userID, text, intentOverride string) (string, error) {
	tr := otel.Tracer("services/ResponderService")
	ctx, span := tr.Start(ctx, "Respond",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyMessage
	}
	if s.MaxMessageRunes > 0 && utf8.RuneCountInString(text) > s.MaxMessageRunes {
		return "", ErrTooLong
	}

	if chat.IsSmallTalk(text) {
		span.SetAttributes(attribute.Bool("short_circuit", true))
		s.persistTurn(ctx, userID, domain.RoleUser, text, "")
		s.Memory.Add(userID, domain.RoleUser, text)
		return chat.TinyReply(), nil
	}

	intent := chat.Classify(text)
	if override, ok := chat.ParseIntent(intentOverride); ok {
		intent = override
	}
	span.SetAttributes(attribute.String("chat.intent", string(intent)))
	tmpl := chat.Lookup(intent)

	profile, daily := s.assembleContext(ctx, userID)
	recent := s.Memory.Recent(userID)
	prompt := composePrompt(recent, text, profile, daily)

	reply, err := s.Model.Complete(ctx, tmpl.System, prompt)
	if err != nil || strings.TrimSpace(reply) == "" {
		log.Ctx(ctx).Warn().Err(err).Str("user_id", userID).Msg("model call failed; returning apology")
		s.persistTurn(ctx, userID, domain.RoleUser, text, string(intent))
		s.Memory.Add(userID, domain.RoleUser, text)
		return apologyReply, nil
	}
	reply = strings.TrimSpace(reply)

	s.persistTurn(ctx, userID, domain.RoleUser, text, string(intent))
	s.persistTurn(ctx, userID, domain.RoleAssistant, reply, string(intent))
	s.Memory.Add(userID, domain.RoleUser, text)
	s.Memory.Add(userID, domain.RoleAssistant, reply)

	return reply, nil
}

// assembleContext loads the user's natal profile and today's transit
// snapshot. Either being absent or failing degrades to nil; the pipeline
// never aborts on missing enrichment.
func (s *ResponderService) assembleContext(ctx context.Context, userID string) (*domain.AstroProfile, *domain.DailyContext) {
	profile, err := repo.GetAstroProfile(ctx, s.DB, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Ctx(ctx).Warn().Err(err).Str("user_id", userID).Msg("astro profile lookup failed")
		}
		profile = nil
	}

	today := time.Now().UTC().Format("2006-01-02")
	daily, err := repo.GetDailyContext(ctx, s.DB, userID, today)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		daily = s.generateDailyContext(ctx, userID, today)
	} else if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("user_id", userID).Msg("daily context lookup failed")
		daily = nil
	}
	return profile, daily
}

// generateDailyContext computes and stores today's transit snapshot. The
// write is an upsert keyed (user, date), so concurrent misses converge on
// one row. A failed write still returns the computed snapshot.
func (s *ResponderService) generateDailyContext(ctx context.Context, userID, date string) *domain.DailyContext {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil
	}
	tr := astro.DailyTransits(t)
	dc := &domain.DailyContext{
		UserID:   userID,
		Date:     date,
		Transits: tr.Positions,
		Aspects:  tr.Aspects,
		Summary:  tr.Summary,
	}
	if err := repo.UpsertDailyContext(ctx, s.DB, dc); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("user_id", userID).Msg("daily context write failed")
	}
	return dc
}

// persistTurn appends one turn to durable chat history. Failures are logged
// and swallowed; a reply that already exists is still returned to the user.
func (s *ResponderService) persistTurn(ctx context.Context, userID, role, text, tone string) {
	if _, err := repo.AppendChatTurn(ctx, s.DB, userID, role, text, tone); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("user_id", userID).Str("role", role).Msg("chat history write failed")
	}
}

// composePrompt renders the model-facing user prompt: the recent transcript
// with role labels, a blank line, then the new user block carrying the raw
// message and whatever astro context is available.
func composePrompt(recent []chat.Turn, text string, profile *domain.AstroProfile, daily *domain.DailyContext) string {
	var b strings.Builder
	for _, t := range recent {
		b.WriteString(t.Role)
		b.WriteString(": ")
		b.WriteString(t.Text)
		b.WriteString("\n")
	}
	if len(recent) > 0 {
		b.WriteString("\n")
	}
	b.WriteString("user: ")
	b.WriteString(text)
	if profile != nil {
		b.WriteString("\nsun sign: ")
		b.WriteString(profile.SunSign)
		if profile.MoonSign != "" {
			b.WriteString("\nmoon sign: ")
			b.WriteString(profile.MoonSign)
		}
		if profile.RisingSign != "" {
			b.WriteString("\nrising sign: ")
			b.WriteString(profile.RisingSign)
		}
	}
	if daily != nil {
		if daily.Summary != "" {
			b.WriteString("\ntoday: ")
			b.WriteString(daily.Summary)
		}
		if len(daily.Aspects) > 0 {
			b.WriteString("\nactive aspects: ")
			b.WriteString(strings.Join(daily.Aspects, ", "))
		}
	}
	return b.String()
}
