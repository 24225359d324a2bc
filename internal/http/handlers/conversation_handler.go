// Conversation HTTP handlers.
//
// This file exposes REST endpoints for conversation threads:
//   - POST /conversations                 (create)
//   - GET  /conversations/{userID}        (list, ETag support)
//   - PUT  /conversations/{id}/title      (rename)
package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/astrelia/go-astro-backend/internal/repo"
	"github.com/astrelia/go-astro-backend/internal/services"
)

// CreateConversationRequest is the JSON payload for creating a conversation.
type CreateConversationRequest struct {
	UserID string `json:"user_id" binding:"required" format:"uuid"`
	// Title optionally sets the conversation title; a default is used when empty.
	Title string `json:"title" example:"Mercury retrograde worries"`
}

// UpdateConversationTitleRequest is the JSON payload for renaming a conversation.
type UpdateConversationTitleRequest struct {
	// Title is the new name (1–255 chars).
	Title string `json:"title" binding:"required,min=1,max=255"`
}

// CreateConversation godoc
// @ID          createConversation
// @Summary     Create a new conversation
// @Tags        Conversations
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateConversationRequest  true  "Create conversation payload"
//
// @Success     201  {object}  domain.Conversation
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /conversations [post]
func (h *Handlers) CreateConversation(c *gin.Context) {
	var req CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "user_id required")
		return
	}

	conv, err := h.convSvc.Create(c.Request.Context(), req.UserID, strings.TrimSpace(req.Title))
	if err != nil {
		switch err {
		case services.ErrUserNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, conv)
}

// ListConversations godoc
// @ID          listConversations
// @Summary     List a user's conversations
// @Description Returns the user's conversations, most recently updated first. Supports weak ETag via If-None-Match.
// @Tags        Conversations
// @Produce     json
//
// @Param       id             path    string  true   "User ID (UUID)"              format(uuid)
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"
//
// @Success     200  {array}   domain.Conversation
// @Success     304  {string}  string  "Not Modified"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /conversations/{id} [get]
func (h *Handlers) ListConversations(c *gin.Context) {
	ctx := c.Request.Context()
	uid := c.Param("id")
	if _, err := uuid.Parse(uid); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "user id must be a UUID")
		return
	}

	// ETag pre-check (best effort).
	var db *gorm.DB
	if svc, okSvc := h.convSvc.(*services.ConversationService); okSvc {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.ConversationsStats(ctx, db, uid)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"conversations:%s:%d:%d"`, uid, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	items, err := h.convSvc.List(ctx, uid)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// UpdateConversationTitle godoc
// @ID          updateConversationTitle
// @Summary     Rename a conversation
// @Tags        Conversations
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false  "User ID that owns the conversation"
// @Param       id         path    string  true   "Conversation ID (UUID)"  format(uuid)
// @Param       body       body    handlers.UpdateConversationTitleRequest  true  "New title"
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Conversation not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /conversations/{id}/title [put]
func (h *Handlers) UpdateConversationTitle(c *gin.Context) {
	convID := c.Param("id")
	if _, err := uuid.Parse(convID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "conversation id must be a UUID")
		return
	}

	var req UpdateConversationTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "title required (1-255 chars)")
		return
	}

	if err := h.convSvc.UpdateTitle(c.Request.Context(), userID(c), convID, req.Title); err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "conversation not found")
		return
	}
	noContent(c)
}
