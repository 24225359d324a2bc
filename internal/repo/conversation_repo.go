// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// Conversation model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/astrelia/go-astro-backend/internal/domain"
)

// CreateConversation inserts a new conversation row owned by userID.
// The ID is a randomly generated UUID and CreatedAt is set to UTC.
func CreateConversation(ctx context.Context, db *gorm.DB, userID, title string) (*domain.Conversation, error) {
	now := time.Now().UTC()
	c := &domain.Conversation{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// ListConversations returns all conversations belonging to userID, most
// recently updated first. An empty slice is returned when the user has none.
func ListConversations(ctx context.Context, db *gorm.DB, userID string) ([]domain.Conversation, error) {
	var out []domain.Conversation
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at desc").
		Find(&out).Error
	return out, err
}

// GetConversation fetches a single conversation by ID and owner, or
// ErrNotFound.
func GetConversation(ctx context.Context, db *gorm.DB, id, userID string) (*domain.Conversation, error) {
	var c domain.Conversation
	err := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetConversationByID fetches a conversation regardless of owner; the
// message pipeline resolves the owner from the conversation itself.
func GetConversationByID(ctx context.Context, db *gorm.DB, id string) (*domain.Conversation, error) {
	var c domain.Conversation
	if err := db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// TouchConversation bumps a conversation's updated_at to now.
func TouchConversation(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).
		Model(&domain.Conversation{}).
		Where("id = ?", id).
		Update("updated_at", time.Now().UTC()).Error
}

// UpdateConversationTitle updates the title of a conversation identified by
// id and owned by userID. Returns ErrNotFound if no row is affected.
func UpdateConversationTitle(ctx context.Context, db *gorm.DB, id, userID, title string) error {
	res := db.WithContext(ctx).
		Model(&domain.Conversation{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("title", title)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
