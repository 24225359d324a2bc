// Message HTTP handlers.
//
// This file exposes REST endpoints for conversation messages:
//   - POST /messages                     (send a message, get the companion reply)
//   - GET  /messages/{conversationID}    (list paginated messages, ETag support)
//
// Idempotency:
// If the client supplies an Idempotency-Key header and a previous successful
// result exists for (user, conversation, key), the handler returns that
// recorded assistant message and sets `Idempotency-Replayed: true`.
package handlers

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/astrelia/go-astro-backend/internal/domain"
	"github.com/astrelia/go-astro-backend/internal/repo"
	"github.com/astrelia/go-astro-backend/internal/services"
)

//
// DTOs
//

// PostMessageRequest is the JSON payload for sending a user message.
//
// Content is normalized by the handler (line endings and excessive blank
// lines) before being passed to the service layer. Intent optionally forces
// the persona; unknown values fall back to classification.
type PostMessageRequest struct {
	ConversationID string `json:"conversation_id" binding:"required" format:"uuid"`
	// Content is the user message. It must be non-empty.
	Content string `json:"content" binding:"required,min=1" example:"I've been feeling anxious about my career lately"`
	// Intent optionally overrides classification (mood_checkin, relationship, life_advice, daily_vibe, default).
	Intent string `json:"intent,omitempty" example:"life_advice"`
}

// PostMessageResponse is the JSON envelope for a processed user message.
type PostMessageResponse struct {
	// Message is the persisted user message.
	Message *domain.Message `json:"message"`
	// AssistantResponse is the companion reply created for the message.
	AssistantResponse *domain.Message `json:"assistant_response"`
}

// ListMessagesResponse contains a page of messages and pagination metadata.
type ListMessagesResponse struct {
	Messages   []domain.Message `json:"messages"`
	Pagination Pagination       `json:"pagination"`
}

//
// Helpers
//

// nlCollapseRE collapses runs of 3+ newlines to two, preserving paragraphs.
var nlCollapseRE = regexp.MustCompile(`\n{3,}`)

// sanitizeContent normalizes user text for consistent downstream behavior:
//   - converts CRLF/CR to LF,
//   - collapses runs of 3+ LFs to exactly two (paragraph separation),
//   - trims surrounding whitespace.
func sanitizeContent(raw string) string {
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = nlCollapseRE.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// discoverMaxMessageRunes inspects the concrete MessageService for a
// configured length limit. If unavailable, it returns a conservative fallback.
func discoverMaxMessageRunes(msgSvc MessageService) int {
	const fallback = 4000
	if ms, okSvc := msgSvc.(*services.MessageService); okSvc {
		if ms.MaxMessageRunes > 0 {
			return ms.MaxMessageRunes
		}
	}
	return fallback
}

//
// Handlers
//

// PostMessage godoc
// @ID          postMessage
// @Summary     Send a message and get the companion reply
// @Description Persists the user message, runs the response pipeline, and returns both the user message and the assistant reply.
// @Description Supports idempotency via the Idempotency-Key header (same key → same result).
// @Tags        Messages
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string  false  "Idempotency key for safe retries (UUID recommended)"
// @Param       body             body    handlers.PostMessageRequest  true  "User message payload"
//
// @Success     200  {object}  handlers.PostMessageResponse  "User message and companion reply"
// @Failure     400  {object}  handlers.ErrorResponse        "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse        "Conversation not found"
// @Failure     500  {object}  handlers.ErrorResponse        "Internal error"
// @Router      /messages [post]
func (h *Handlers) PostMessage(c *gin.Context) {
	ctx := c.Request.Context()

	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "conversation_id and content required")
		return
	}
	if _, err := uuid.Parse(req.ConversationID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "conversation id must be a UUID")
		return
	}

	// Sanitize + early size cap to fail fast at the edge.
	content := sanitizeContent(req.Content)
	maxRunes := discoverMaxMessageRunes(h.msgSvc)
	if maxRunes > 0 && utf8.RuneCountInString(content) > maxRunes {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, fmt.Sprintf("content too long: max %d runes", maxRunes))
		return
	}
	if content == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "content required")
		return
	}

	// Idempotency (replay path) – keyed by the conversation owner.
	var db *gorm.DB
	if svc, okSvc := h.msgSvc.(*services.MessageService); okSvc {
		db = svc.DB
	}
	idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
	var ownerID string
	if db != nil {
		if conv, err := repo.GetConversationByID(ctx, db, req.ConversationID); err == nil {
			ownerID = conv.UserID
		}
	}
	if idemKey != "" && db != nil && ownerID != "" {
		if rec, err := repo.GetIdempotency(ctx, db, ownerID, req.ConversationID, idemKey, time.Now().UTC()); err == nil && rec != nil {
			if prev, err2 := repo.GetMessage(db, rec.MessageID); err2 == nil {
				c.Header("Idempotency-Replayed", "true")
				ok(c, http.StatusOK, PostMessageResponse{AssistantResponse: prev})
				return
			}
		}
	}

	// Normal processing (service has a second guard for length).
	userMsg, assistantMsg, err := h.msgSvc.Send(ctx, req.ConversationID, content, req.Intent)
	if err != nil {
		switch err {
		case services.ErrConversationNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "conversation not found")
		case services.ErrTooLong:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, fmt.Sprintf("content too long: max %d runes", maxRunes))
		case services.ErrEmptyMessage:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "content required")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeAnswerFailed, err.Error())
		}
		return
	}

	// Idempotency (store path) – best effort.
	if idemKey != "" && db != nil && ownerID != "" {
		ttl := 24 * time.Hour
		_, _ = repo.CreateIdempotency(ctx, db, ownerID, req.ConversationID, idemKey, assistantMsg.ID, http.StatusOK, ttl)
	}

	ok(c, http.StatusOK, PostMessageResponse{Message: userMsg, AssistantResponse: assistantMsg})
}

// ListMessages godoc
// @ID          listMessages
// @Summary     List messages in a conversation
// @Description Returns a paginated list of messages, oldest first.
// @Tags        Messages
// @Produce     json
//
// @Param       conversationID  path   string  true   "Conversation ID (UUID)"  format(uuid)
// @Param       page            query  int     false  "Page number"             minimum(1) default(1)
// @Param       page_size       query  int     false  "Items per page"          minimum(1) maximum(100) default(20)
//
// @Success     200  {object}  handlers.ListMessagesResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Conversation not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /messages/{conversationID} [get]
func (h *Handlers) ListMessages(c *gin.Context) {
	ctx := c.Request.Context()
	convID := c.Param("conversationID")

	if _, err := uuid.Parse(convID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "conversation id must be a UUID")
		return
	}

	// ETag pre-check (best effort).
	var db *gorm.DB
	if svc, okSvc := h.msgSvc.(*services.MessageService); okSvc {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.MessagesStats(ctx, db, convID)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"messages:%s:%d:%d"`, convID, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	page, pageSize := clampPagination(c)

	items, total, err := h.msgSvc.ListPage(ctx, convID, page, pageSize)
	if err != nil {
		switch err {
		case services.ErrConversationNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "conversation not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		}
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListMessagesResponse{
		Messages: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}
