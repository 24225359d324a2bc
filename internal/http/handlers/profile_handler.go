// Astro profile, daily context, preferences, and chat history HTTP handlers.
//
// This file exposes the per-user astro context the chat pipeline consumes:
//   - GET /users/{id}/astro-profile
//   - PUT /users/{id}/astro-profile        (recompute from stored birth data)
//   - GET /users/{id}/daily-context        (generate-on-miss, idempotent)
//   - GET /users/{id}/preferences
//   - PUT /users/{id}/preferences
//   - GET /users/{id}/chat-history?limit=&offset=
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/astrelia/go-astro-backend/internal/domain"
	"github.com/astrelia/go-astro-backend/internal/services"
	"github.com/astrelia/go-astro-backend/internal/utils"
)

// SavePreferencesRequest is the JSON payload for overwriting preferences.
type SavePreferencesRequest struct {
	Preferences map[string]string `json:"preferences" binding:"required"`
}

// ChatHistoryResponse contains a page of durable chat history rows.
type ChatHistoryResponse struct {
	History []domain.ChatTurn `json:"history"`
	Total   int64             `json:"total"`
	Limit   int               `json:"limit"`
	Offset  int               `json:"offset"`
}

// pathUserID validates the :id path param as a UUID, failing the request
// with 400 when it is not.
func pathUserID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "user id must be a UUID")
		return "", false
	}
	return id, true
}

// GetAstroProfile godoc
// @ID          getAstroProfile
// @Summary     Fetch a user's natal astro profile
// @Tags        AstroProfile
// @Produce     json
//
// @Param       id  path  string  true  "User ID (UUID)"  format(uuid)
//
// @Success     200  {object}  domain.AstroProfile
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Profile not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users/{id}/astro-profile [get]
func (h *Handlers) GetAstroProfile(c *gin.Context) {
	uid, okID := pathUserID(c)
	if !okID {
		return
	}

	p, err := h.profSvc.Profile(c.Request.Context(), uid)
	if err != nil {
		switch err {
		case services.ErrProfileNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "astro profile not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, p)
}

// RecomputeAstroProfile godoc
// @ID          recomputeAstroProfile
// @Summary     Recompute a user's natal astro profile
// @Description Re-derives the profile from the user's stored birth data and overwrites the existing row.
// @Tags        AstroProfile
// @Produce     json
//
// @Param       id  path  string  true  "User ID (UUID)"  format(uuid)
//
// @Success     200  {object}  domain.AstroProfile
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users/{id}/astro-profile [put]
func (h *Handlers) RecomputeAstroProfile(c *gin.Context) {
	uid, okID := pathUserID(c)
	if !okID {
		return
	}

	p, err := h.profSvc.RecomputeProfile(c.Request.Context(), uid)
	if err != nil {
		switch err {
		case services.ErrUserNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, p)
}

// GetDailyContext godoc
// @ID          getDailyContext
// @Summary     Fetch today's transit snapshot for a user
// @Description Generates and stores the snapshot on first access; later calls on the same day return the same row.
// @Tags        AstroProfile
// @Produce     json
//
// @Param       id  path  string  true  "User ID (UUID)"  format(uuid)
//
// @Success     200  {object}  domain.DailyContext
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users/{id}/daily-context [get]
func (h *Handlers) GetDailyContext(c *gin.Context) {
	uid, okID := pathUserID(c)
	if !okID {
		return
	}

	dc, err := h.profSvc.DailyContext(c.Request.Context(), uid)
	if err != nil {
		switch err {
		case services.ErrUserNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, dc)
}

// GetPreferences godoc
// @ID          getPreferences
// @Summary     Fetch a user's preferences
// @Description Users who never saved preferences get an empty document.
// @Tags        Preferences
// @Produce     json
//
// @Param       id  path  string  true  "User ID (UUID)"  format(uuid)
//
// @Success     200  {object}  map[string]string
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users/{id}/preferences [get]
func (h *Handlers) GetPreferences(c *gin.Context) {
	uid, okID := pathUserID(c)
	if !okID {
		return
	}

	prefs, err := h.profSvc.Preferences(c.Request.Context(), uid)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, gin.H{"preferences": prefs})
}

// SavePreferences godoc
// @ID          savePreferences
// @Summary     Overwrite a user's preferences
// @Tags        Preferences
// @Accept      json
// @Produce     json
//
// @Param       id    path  string  true  "User ID (UUID)"  format(uuid)
// @Param       body  body  handlers.SavePreferencesRequest  true  "Preference document"
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users/{id}/preferences [put]
func (h *Handlers) SavePreferences(c *gin.Context) {
	uid, okID := pathUserID(c)
	if !okID {
		return
	}

	var req SavePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "preferences object required")
		return
	}

	if err := h.profSvc.SavePreferences(c.Request.Context(), uid, req.Preferences); err != nil {
		switch err {
		case services.ErrUserNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	noContent(c)
}

// GetChatHistory godoc
// @ID          getChatHistory
// @Summary     Fetch a user's durable chat history
// @Description Returns history rows in insertion order with offset/limit paging.
// @Tags        ChatHistory
// @Produce     json
//
// @Param       id      path   string  true   "User ID (UUID)"  format(uuid)
// @Param       limit   query  int     false  "Max rows"        default(50)
// @Param       offset  query  int     false  "Rows to skip"    default(0)
//
// @Success     200  {object}  handlers.ChatHistoryResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users/{id}/chat-history [get]
func (h *Handlers) GetChatHistory(c *gin.Context) {
	uid, okID := pathUserID(c)
	if !okID {
		return
	}

	limit := utils.AtoiDefault(c.Query("limit"), 50)
	if limit < 1 {
		limit = 1
	}
	if limit > 200 {
		limit = 200
	}
	offset := utils.AtoiDefault(c.Query("offset"), 0)
	if offset < 0 {
		offset = 0
	}

	items, total, err := h.profSvc.ChatHistory(c.Request.Context(), uid, limit, offset)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, ChatHistoryResponse{
		History: items,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	})
}
