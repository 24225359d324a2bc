// Package services defines the business logic for users, moods, companion
// energies, cosmic cards, conversations, and the chat response pipeline.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and translation
// into user-facing messages or HTTP status codes should be performed at the
// handler/controller layer.
package services

import "errors"

var (
	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrConversationNotFound indicates that the requested conversation does
	// not exist or is not accessible to the current user.
	ErrConversationNotFound = errors.New("conversation not found")

	// ErrMessageNotFound indicates that the requested message does not exist.
	ErrMessageNotFound = errors.New("message not found")

	// ErrMoodNotFound indicates that the requested mood does not exist.
	ErrMoodNotFound = errors.New("mood not found")

	// ErrEnergyNotFound indicates that the requested companion energy does
	// not exist, or that the user has never selected one.
	ErrEnergyNotFound = errors.New("companion energy not found")

	// ErrCardNotFound indicates that the requested cosmic energy card does
	// not exist.
	ErrCardNotFound = errors.New("card not found")

	// ErrProfileNotFound indicates that the user has no computed astro
	// profile, usually because their birth date is missing or unparseable.
	ErrProfileNotFound = errors.New("astro profile not found")

	// ErrEmptyMessage is returned when a request to send a message contains
	// only whitespace.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrTooLong is returned when a message exceeds the maximum configured
	// length limit.
	ErrTooLong = errors.New("message too long")

	// ErrInvalidScore is returned when a mood log score is outside 1..10.
	ErrInvalidScore = errors.New("score must be between 1 and 10")

	// ErrInvalidBirthDate is returned when a user's birth date cannot be
	// parsed as YYYY-MM-DD.
	ErrInvalidBirthDate = errors.New("birth date must be YYYY-MM-DD")

	// ErrInvalidBillingPeriod is returned when a subscription request names a
	// billing period outside the allowed set.
	ErrInvalidBillingPeriod = errors.New("billing period must be weekly, monthly, or yearly")
)
