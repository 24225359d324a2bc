// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file covers the durable per-user chat history written
// by the response pipeline. Rows are append-only and immutable.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/astrelia/go-astro-backend/internal/domain"
)

// AppendChatTurn appends one turn to a user's durable chat history.
func AppendChatTurn(ctx context.Context, db *gorm.DB, userID, role, text, tone string) (*domain.ChatTurn, error) {
	turn := &domain.ChatTurn{
		ID:        uuid.NewString(),
		UserID:    userID,
		Role:      role,
		Text:      text,
		Tone:      tone,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(turn).Error; err != nil {
		return nil, err
	}
	return turn, nil
}

// ListChatHistory returns a user's history in insertion order
// (CreatedAt ASC, ID ASC) with offset/limit paging. Unknown users yield an
// empty slice.
func ListChatHistory(ctx context.Context, db *gorm.DB, userID string, limit, offset int) ([]domain.ChatTurn, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	var out []domain.ChatTurn
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CountChatHistory returns the number of history rows for a user.
func CountChatHistory(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.ChatTurn{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, err
}
