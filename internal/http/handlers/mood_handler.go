// Mood HTTP handlers.
//
// This file exposes REST endpoints for the mood catalog and check-ins:
//   - GET  /moods                        (catalog)
//   - POST /user-moods                   (catalog check-in)
//   - GET  /user-moods/{userID}          (check-in history)
//   - POST /users/{id}/mood-checkins     (numeric score + note log)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/astrelia/go-astro-backend/internal/services"
	"github.com/astrelia/go-astro-backend/internal/utils"
)

// CreateUserMoodRequest is the JSON payload for a catalog mood check-in.
type CreateUserMoodRequest struct {
	UserID string `json:"user_id" binding:"required" format:"uuid"`
	MoodID string `json:"mood_id" binding:"required" format:"uuid"`
}

// MoodCheckinRequest is the JSON payload for a numeric mood log.
type MoodCheckinRequest struct {
	// Score is the mood rating, 1..10.
	Score int `json:"score" binding:"required,min=1,max=10" example:"7"`
	// Note is an optional free-text annotation.
	Note string `json:"note" example:"slept badly but the afternoon picked up"`
}

// ListMoods godoc
// @ID          listMoods
// @Summary     List the mood catalog
// @Tags        Moods
// @Produce     json
// @Success     200  {array}   domain.Mood
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /moods [get]
func (h *Handlers) ListMoods(c *gin.Context) {
	moods, err := h.moodSvc.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, moods)
}

// CreateUserMood godoc
// @ID          createUserMood
// @Summary     Record a mood check-in
// @Description Records that the user selected a catalog mood today.
// @Tags        Moods
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateUserMoodRequest  true  "Check-in payload"
//
// @Success     201  {object}  domain.UserMood
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "User or mood not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /user-moods [post]
func (h *Handlers) CreateUserMood(c *gin.Context) {
	var req CreateUserMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "user_id and mood_id required")
		return
	}

	um, err := h.moodSvc.CheckIn(c.Request.Context(), req.UserID, req.MoodID)
	if err != nil {
		switch err {
		case services.ErrUserNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
		case services.ErrMoodNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "mood not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, um)
}

// ListUserMoods godoc
// @ID          listUserMoods
// @Summary     List a user's mood check-ins
// @Description Returns the user's check-ins, newest first. Users with none get an empty list.
// @Tags        Moods
// @Produce     json
//
// @Param       userID  path   string  true   "User ID (UUID)"  format(uuid)
// @Param       limit   query  int     false  "Max rows"        default(10)
//
// @Success     200  {array}   domain.UserMood
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /user-moods/{userID} [get]
func (h *Handlers) ListUserMoods(c *gin.Context) {
	uid := c.Param("userID")
	if _, err := uuid.Parse(uid); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "user id must be a UUID")
		return
	}
	limit := utils.AtoiDefault(c.Query("limit"), 10)

	items, err := h.moodSvc.History(c.Request.Context(), uid, limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// CreateMoodCheckin godoc
// @ID          createMoodCheckin
// @Summary     Log a numeric mood score
// @Tags        Moods
// @Accept      json
// @Produce     json
//
// @Param       id    path  string  true  "User ID (UUID)"  format(uuid)
// @Param       body  body  handlers.MoodCheckinRequest  true  "Score payload"
//
// @Success     201  {object}  domain.MoodLog
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users/{id}/mood-checkins [post]
func (h *Handlers) CreateMoodCheckin(c *gin.Context) {
	uid := c.Param("id")
	if _, err := uuid.Parse(uid); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "user id must be a UUID")
		return
	}

	var req MoodCheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "score required (1-10)")
		return
	}

	logRow, err := h.moodSvc.Log(c.Request.Context(), uid, req.Score, req.Note)
	if err != nil {
		switch err {
		case services.ErrUserNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
		case services.ErrInvalidScore:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "score must be between 1 and 10")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, logRow)
}
