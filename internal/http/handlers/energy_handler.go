// Companion energy HTTP handlers.
//
// This file exposes REST endpoints for the companion energy catalog and each
// user's single active selection:
//   - GET  /companion-energies
//   - POST /user-companion-energies             (set active)
//   - GET  /user-companion-energies/{userID}    (fetch active)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/astrelia/go-astro-backend/internal/services"
)

// SetEnergyRequest is the JSON payload for selecting a companion energy.
type SetEnergyRequest struct {
	UserID            string `json:"user_id" binding:"required" format:"uuid"`
	CompanionEnergyID string `json:"companion_energy_id" binding:"required" format:"uuid"`
}

// ListCompanionEnergies godoc
// @ID          listCompanionEnergies
// @Summary     List the companion energy catalog
// @Tags        CompanionEnergies
// @Produce     json
// @Success     200  {array}   domain.CompanionEnergy
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /companion-energies [get]
func (h *Handlers) ListCompanionEnergies(c *gin.Context) {
	items, err := h.nrgSvc.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// SetCompanionEnergy godoc
// @ID          setCompanionEnergy
// @Summary     Set a user's active companion energy
// @Description Deactivates any prior selection and activates the given energy atomically.
// @Tags        CompanionEnergies
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.SetEnergyRequest  true  "Selection payload"
//
// @Success     201  {object}  domain.UserCompanionEnergy
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "User or energy not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /user-companion-energies [post]
func (h *Handlers) SetCompanionEnergy(c *gin.Context) {
	var req SetEnergyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "user_id and companion_energy_id required")
		return
	}

	link, err := h.nrgSvc.SetActive(c.Request.Context(), req.UserID, req.CompanionEnergyID)
	if err != nil {
		switch err {
		case services.ErrUserNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
		case services.ErrEnergyNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "companion energy not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, link)
}

// GetActiveCompanionEnergy godoc
// @ID          getActiveCompanionEnergy
// @Summary     Fetch a user's active companion energy
// @Tags        CompanionEnergies
// @Produce     json
//
// @Param       userID  path  string  true  "User ID (UUID)"  format(uuid)
//
// @Success     200  {object}  domain.UserCompanionEnergy
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "No active energy"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /user-companion-energies/{userID} [get]
func (h *Handlers) GetActiveCompanionEnergy(c *gin.Context) {
	uid := c.Param("userID")
	if _, err := uuid.Parse(uid); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "user id must be a UUID")
		return
	}

	link, err := h.nrgSvc.Active(c.Request.Context(), uid)
	if err != nil {
		switch err {
		case services.ErrEnergyNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "no active companion energy")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, link)
}
