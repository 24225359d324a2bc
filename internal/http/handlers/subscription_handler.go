// Subscription HTTP handlers.
//
// This file exposes REST endpoints for subscriptions:
//   - POST /subscriptions            (purchase; flips the user's premium flag)
//   - GET  /subscriptions/{userID}   (history)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/astrelia/go-astro-backend/internal/domain"
	"github.com/astrelia/go-astro-backend/internal/services"
)

// CreateSubscriptionRequest is the JSON payload for recording a purchase.
type CreateSubscriptionRequest struct {
	UserID   string  `json:"user_id" binding:"required" format:"uuid"`
	PlanName string  `json:"plan_name" binding:"required,min=1,max=64" example:"Cosmic Plus"`
	Price    float64 `json:"price" binding:"required,gt=0" example:"4.99"`
	// BillingPeriod must be weekly, monthly, or yearly.
	BillingPeriod string `json:"billing_period" binding:"required" example:"monthly"`
}

// CreateSubscription godoc
// @ID          createSubscription
// @Summary     Record a subscription purchase
// @Description Creates the subscription and marks the user premium in the same transaction.
// @Tags        Subscriptions
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateSubscriptionRequest  true  "Purchase payload"
//
// @Success     201  {object}  domain.Subscription
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /subscriptions [post]
func (h *Handlers) CreateSubscription(c *gin.Context) {
	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "user_id, plan_name, price, and billing_period required")
		return
	}

	sub := &domain.Subscription{
		UserID:        req.UserID,
		PlanName:      req.PlanName,
		Price:         req.Price,
		BillingPeriod: req.BillingPeriod,
	}
	created, err := h.subSvc.Create(c.Request.Context(), sub)
	if err != nil {
		switch err {
		case services.ErrUserNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
		case services.ErrInvalidBillingPeriod:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "billing_period must be weekly, monthly, or yearly")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, created)
}

// ListSubscriptions godoc
// @ID          listSubscriptions
// @Summary     List a user's subscriptions
// @Tags        Subscriptions
// @Produce     json
//
// @Param       userID  path  string  true  "User ID (UUID)"  format(uuid)
//
// @Success     200  {array}   domain.Subscription
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /subscriptions/{userID} [get]
func (h *Handlers) ListSubscriptions(c *gin.Context) {
	uid := c.Param("userID")
	if _, err := uuid.Parse(uid); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "user id must be a UUID")
		return
	}

	items, err := h.subSvc.List(c.Request.Context(), uid)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}
