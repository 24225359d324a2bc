// User HTTP handlers.
//
// This file exposes REST endpoints for user resources:
//   - POST /users        (create, with onboarding side effects)
//   - GET  /users/{id}   (fetch)
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/astrelia/go-astro-backend/internal/domain"
	"github.com/astrelia/go-astro-backend/internal/services"
)

// CreateUserRequest is the JSON payload for creating a user.
type CreateUserRequest struct {
	// Name is the display name (required).
	Name string `json:"name" binding:"required,min=1,max=120" example:"Luna"`
	// Pronouns is optional free text.
	Pronouns string `json:"pronouns" example:"she/her"`
	// BirthDate must be YYYY-MM-DD.
	BirthDate string `json:"birth_date" binding:"required" example:"1995-08-23"`
	// BirthTime is optional HH:MM; the rising sign degrades without it.
	BirthTime string `json:"birth_time" example:"07:45"`
	// BirthPlace is optional free text.
	BirthPlace string `json:"birth_place" example:"Lisbon, Portugal"`
	// Email is optional.
	Email string `json:"email" example:"luna@example.com"`
	// ProfilePictureURL is optional.
	ProfilePictureURL string `json:"profile_picture_url"`
}

// CreateUser godoc
// @ID          createUser
// @Summary     Create a new user
// @Description Creates a user, computes their natal astro profile, and provisions a Welcome conversation.
// @Tags        Users
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateUserRequest  true  "Create user payload"
//
// @Success     201  {object}  domain.User
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users [post]
func (h *Handlers) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name and birth_date required")
		return
	}

	u := &domain.User{
		Name:              strings.TrimSpace(req.Name),
		Pronouns:          strings.TrimSpace(req.Pronouns),
		BirthDate:         strings.TrimSpace(req.BirthDate),
		BirthTime:         strings.TrimSpace(req.BirthTime),
		BirthPlace:        strings.TrimSpace(req.BirthPlace),
		Email:             strings.TrimSpace(req.Email),
		ProfilePictureURL: strings.TrimSpace(req.ProfilePictureURL),
	}

	created, err := h.userSvc.Create(c.Request.Context(), u)
	if err != nil {
		switch err {
		case services.ErrInvalidBirthDate:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "birth_date must be YYYY-MM-DD")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, created)
}

// GetUser godoc
// @ID          getUser
// @Summary     Fetch a user
// @Tags        Users
// @Produce     json
//
// @Param       id  path  string  true  "User ID (UUID)"  format(uuid)
//
// @Success     200  {object}  domain.User
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users/{id} [get]
func (h *Handlers) GetUser(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "user id must be a UUID")
		return
	}

	u, err := h.userSvc.Get(c.Request.Context(), id)
	if err != nil {
		switch err {
		case services.ErrUserNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, u)
}
