// Package domain defines the core persistence models for the application.
// This file holds the astrological context models consumed by the chat
// pipeline: natal profiles, per-day transit snapshots, preferences, mood
// logs, and the durable per-user chat history.
package domain

import "time"

// AstroProfile holds a user's natal placements. It is computed once from
// birth data and upserted; it is re-derivable and never hand-edited, so the
// (user_id) unique key makes a second write overwrite rather than duplicate.
type AstroProfile struct {
	ID         string             `json:"id"          gorm:"type:char(36);primaryKey"`
	UserID     string             `json:"user_id"     gorm:"type:char(36);not null;uniqueIndex:ux_profile_user"`
	SunSign    string             `json:"sun_sign"    gorm:"type:varchar(16)"`
	MoonSign   string             `json:"moon_sign"   gorm:"type:varchar(16)"`
	RisingSign string             `json:"rising_sign" gorm:"type:varchar(16)"`
	NatalChart map[string]float64 `json:"natal_chart" gorm:"serializer:json"` // planet -> ecliptic longitude (degrees)
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// TableName returns the database table name for AstroProfile.
func (AstroProfile) TableName() string { return "astro_profiles" }

// DailyContext is a per-user, per-day snapshot of transiting influence.
// It is generated at most once per calendar day per user; the (user_id, date)
// unique key makes regeneration idempotent (last write wins, which is safe
// because the content is a pure function of the key).
type DailyContext struct {
	ID        string             `json:"id"       gorm:"type:char(36);primaryKey"`
	UserID    string             `json:"user_id"  gorm:"type:char(36);not null;uniqueIndex:ux_context_user_date,priority:1"`
	Date      string             `json:"date"     gorm:"type:varchar(10);not null;uniqueIndex:ux_context_user_date,priority:2"` // YYYY-MM-DD
	Transits  map[string]float64 `json:"transits" gorm:"serializer:json"`
	Aspects   []string           `json:"aspects_today" gorm:"serializer:json"`
	Summary   string             `json:"summary"  gorm:"type:text"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// TableName returns the database table name for DailyContext.
func (DailyContext) TableName() string { return "daily_contexts" }

// Preference stores free-form user preferences as a JSON document, upserted
// by user.
type Preference struct {
	ID          string            `json:"id"          gorm:"type:char(36);primaryKey"`
	UserID      string            `json:"user_id"     gorm:"type:char(36);not null;uniqueIndex:ux_pref_user"`
	Preferences map[string]string `json:"preferences" gorm:"serializer:json"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// TableName returns the database table name for Preference.
func (Preference) TableName() string { return "preferences" }

// MoodLog is an append-only numeric mood check-in with an optional note,
// independent of the Mood catalog.
type MoodLog struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"user_id"    gorm:"type:char(36);not null;index"`
	MoodScore int       `json:"mood_score" gorm:"not null"`
	Note      string    `json:"note"       gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for MoodLog.
func (MoodLog) TableName() string { return "mood_logs" }

// ChatTurn is one durable turn of the companion chat pipeline, keyed by user
// rather than by conversation. Rows are append-only and immutable once
// written; ordering is (created_at, id).
type ChatTurn struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"user_id"   gorm:"type:char(36);not null;index:idx_history_user,priority:1"`
	Role      string    `json:"role"      gorm:"type:varchar(16);not null;check:role IN ('user','assistant')"`
	Text      string    `json:"text"      gorm:"type:text;not null"`
	Tone      string    `json:"tone,omitempty" gorm:"type:varchar(32)"` // optional emotional tone tag
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_history_user,priority:2"`
}

// TableName returns the database table name for ChatTurn.
func (ChatTurn) TableName() string { return "chat_history" }
