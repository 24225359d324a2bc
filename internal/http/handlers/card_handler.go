// Cosmic energy card HTTP handlers.
//
// This file exposes REST endpoints for the card feed:
//   - GET  /cosmic-energy-types
//   - GET  /cosmic-energy-cards?zodiac_sign=&date=   (date defaults to today)
//   - POST /user-cosmic-energy-cards                 (mark read)
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/astrelia/go-astro-backend/internal/services"
)

// MarkCardReadRequest is the JSON payload for recording a card read.
type MarkCardReadRequest struct {
	UserID string `json:"user_id" binding:"required" format:"uuid"`
	CardID string `json:"card_id" binding:"required" format:"uuid"`
}

// ListCosmicEnergyTypes godoc
// @ID          listCosmicEnergyTypes
// @Summary     List the cosmic energy type catalog
// @Tags        CosmicEnergyCards
// @Produce     json
// @Success     200  {array}   domain.CosmicEnergyType
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /cosmic-energy-types [get]
func (h *Handlers) ListCosmicEnergyTypes(c *gin.Context) {
	items, err := h.cardSvc.ListTypes(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// ListCosmicEnergyCards godoc
// @ID          listCosmicEnergyCards
// @Summary     List cosmic energy cards
// @Description Returns cards for a date (default today, UTC), optionally filtered by zodiac sign.
// @Tags        CosmicEnergyCards
// @Produce     json
//
// @Param       zodiac_sign  query  string  false  "Zodiac sign filter"  example(Virgo)
// @Param       date         query  string  false  "YYYY-MM-DD (defaults to today)"
//
// @Success     200  {array}   domain.CosmicEnergyCard
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /cosmic-energy-cards [get]
func (h *Handlers) ListCosmicEnergyCards(c *gin.Context) {
	date := c.Query("date")
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "date must be YYYY-MM-DD")
			return
		}
	}

	items, err := h.cardSvc.ListCards(c.Request.Context(), c.Query("zodiac_sign"), date)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// MarkCardRead godoc
// @ID          markCardRead
// @Summary     Mark a card as read
// @Tags        CosmicEnergyCards
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.MarkCardReadRequest  true  "Read marker payload"
//
// @Success     201  {object}  domain.UserCosmicEnergyCard
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "User or card not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /user-cosmic-energy-cards [post]
func (h *Handlers) MarkCardRead(c *gin.Context) {
	var req MarkCardReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "user_id and card_id required")
		return
	}
	if _, err := uuid.Parse(req.CardID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "card id must be a UUID")
		return
	}

	link, err := h.cardSvc.MarkRead(c.Request.Context(), req.UserID, req.CardID)
	if err != nil {
		switch err {
		case services.ErrUserNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
		case services.ErrCardNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "card not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, link)
}
