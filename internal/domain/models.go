// Package domain defines the persistence models for the astro companion
// application: users, moods, companion energies, cosmic energy cards,
// conversations, messages, and subscriptions. These types are mapped with
// GORM and form the core data layer of the service.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// Role values for chat messages and history turns.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// User represents an app user with the birth data needed for natal chart
// derivation.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Name / Pronouns: display identity.
//   - BirthDate / BirthTime / BirthPlace: natal input; BirthTime may be empty
//     when unknown (rising sign degrades accordingly).
//   - IsPremium: flipped by subscription creation.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//   - DeletedAt: soft deletion marker.
type User struct {
	ID                string         `json:"id"         gorm:"type:char(36);primaryKey"`
	Name              string         `json:"name"       gorm:"type:varchar(120);not null"`
	Pronouns          string         `json:"pronouns"   gorm:"type:varchar(32)"`
	BirthDate         string         `json:"birth_date" gorm:"type:varchar(10);not null"` // YYYY-MM-DD
	BirthTime         string         `json:"birth_time,omitempty" gorm:"type:varchar(8)"` // HH:MM, optional
	BirthPlace        string         `json:"birth_place" gorm:"type:varchar(255)"`
	Email             string         `json:"email,omitempty" gorm:"type:varchar(255)"`
	ProfilePictureURL string         `json:"profile_picture_url,omitempty" gorm:"type:varchar(512)"`
	IsPremium         bool           `json:"is_premium" gorm:"not null;default:false"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `json:"-"          gorm:"index"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Mood is a catalog entry users can pick during a check-in.
type Mood struct {
	ID          string    `json:"id"          gorm:"type:char(36);primaryKey"`
	Name        string    `json:"name"        gorm:"type:varchar(64);not null"`
	Emoji       string    `json:"emoji"       gorm:"type:varchar(16)"`
	Description string    `json:"description" gorm:"type:text"`
	Color       string    `json:"color"       gorm:"type:varchar(16)"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName returns the database table name for Mood.
func (Mood) TableName() string { return "moods" }

// UserMood records that a user selected a mood at a point in time.
// Rows are append-only; history is never rewritten.
type UserMood struct {
	ID        string    `json:"id"      gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"user_id" gorm:"type:char(36);not null;index:idx_user_moods"`
	MoodID    string    `json:"mood_id" gorm:"type:char(36);not null"`
	Date      time.Time `json:"date"    gorm:"index:idx_user_moods"`
	CreatedAt time.Time `json:"created_at"`

	Mood Mood `json:"mood" gorm:"foreignKey:MoodID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for UserMood.
func (UserMood) TableName() string { return "user_moods" }

// CompanionEnergy is a selectable persona flavour for the companion
// (e.g. "Wise & Calm").
type CompanionEnergy struct {
	ID          string    `json:"id"          gorm:"type:char(36);primaryKey"`
	Name        string    `json:"name"        gorm:"type:varchar(64);not null"`
	Emoji       string    `json:"emoji"       gorm:"type:varchar(16)"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName returns the database table name for CompanionEnergy.
func (CompanionEnergy) TableName() string { return "companion_energies" }

// UserCompanionEnergy links a user to a companion energy. At most one row per
// user may be active; the repo layer enforces this by running
// deactivate-then-insert inside a single transaction.
type UserCompanionEnergy struct {
	ID                string    `json:"id"                  gorm:"type:char(36);primaryKey"`
	UserID            string    `json:"user_id"             gorm:"type:char(36);not null;index:idx_user_energies"`
	CompanionEnergyID string    `json:"companion_energy_id" gorm:"type:char(36);not null"`
	IsActive          bool      `json:"is_active"           gorm:"not null;default:true;index:idx_user_energies"`
	CreatedAt         time.Time `json:"created_at"`

	CompanionEnergy CompanionEnergy `json:"companion_energy" gorm:"foreignKey:CompanionEnergyID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for UserCompanionEnergy.
func (UserCompanionEnergy) TableName() string { return "user_companion_energies" }

// CosmicEnergyType categorizes daily cards (e.g. "Fire", "Water").
type CosmicEnergyType struct {
	ID              string    `json:"id"               gorm:"type:char(36);primaryKey"`
	Name            string    `json:"name"             gorm:"type:varchar(64);not null"`
	Emoji           string    `json:"emoji"            gorm:"type:varchar(16)"`
	BackgroundColor string    `json:"background_color" gorm:"type:varchar(16)"`
	CreatedAt       time.Time `json:"created_at"`
}

// TableName returns the database table name for CosmicEnergyType.
func (CosmicEnergyType) TableName() string { return "cosmic_energy_types" }

// CosmicEnergyCard is the daily insight content for one zodiac sign.
type CosmicEnergyCard struct {
	ID              string    `json:"id"         gorm:"type:char(36);primaryKey"`
	TypeID          string    `json:"type_id"    gorm:"type:char(36);not null"`
	Insight         string    `json:"insight"    gorm:"type:text;not null"`
	ExtendedInsight string    `json:"extended_insight,omitempty" gorm:"type:text"`
	ZodiacSign      string    `json:"zodiac_sign" gorm:"type:varchar(16);not null;index:idx_cards_sign_date,priority:1"`
	Date            string    `json:"date"       gorm:"type:varchar(10);not null;index:idx_cards_sign_date,priority:2"` // YYYY-MM-DD
	CreatedAt       time.Time `json:"created_at"`

	EnergyType CosmicEnergyType `json:"energy_type" gorm:"foreignKey:TypeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for CosmicEnergyCard.
func (CosmicEnergyCard) TableName() string { return "cosmic_energy_cards" }

// UserCosmicEnergyCard marks a card as seen/read by a user.
type UserCosmicEnergyCard struct {
	ID        string    `json:"id"      gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"user_id" gorm:"type:char(36);not null;index"`
	CardID    string    `json:"card_id" gorm:"type:char(36);not null"`
	IsRead    bool      `json:"is_read" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`

	Card CosmicEnergyCard `json:"card" gorm:"foreignKey:CardID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for UserCosmicEnergyCard.
func (UserCosmicEnergyCard) TableName() string { return "user_cosmic_energy_cards" }

// Conversation represents a chat thread owned by a user. Each conversation
// has a title (auto-generated from the first real user message while still a
// placeholder) and contains messages exchanged with the companion.
type Conversation struct {
	ID        string         `json:"id"         gorm:"type:char(36);primaryKey"`
	UserID    string         `json:"user_id"    gorm:"type:char(36);not null;index:idx_user_conversations"`
	Title     string         `json:"title"      gorm:"type:varchar(255);not null;default:'New chat'"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"          gorm:"index"`
}

// TableName returns the database table name for Conversation.
func (Conversation) TableName() string { return "conversations" }

// Message is a single utterance within a conversation, authored by either
// the "user" or the "assistant".
type Message struct {
	ID             string         `json:"id"              gorm:"type:char(36);primaryKey"`
	ConversationID string         `json:"conversation_id" gorm:"type:char(36);not null;index:idx_conv_msgs,priority:1"`
	Role           string         `json:"role"            gorm:"type:varchar(16);not null;check:role IN ('user','assistant')"`
	Content        string         `json:"content"         gorm:"type:text;not null"`
	CreatedAt      time.Time      `json:"created_at"      gorm:"index:idx_conv_msgs,priority:2"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-"               gorm:"index"`

	// Conversation is the parent thread. Messages are cascade-deleted if
	// their conversation is removed.
	Conversation Conversation `json:"-" gorm:"foreignKey:ConversationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Message.
func (Message) TableName() string { return "messages" }

// Subscription records a purchased plan. Creating one flips the owning
// user's IsPremium flag in the same transaction.
type Subscription struct {
	ID            string     `json:"id"             gorm:"type:char(36);primaryKey"`
	UserID        string     `json:"user_id"        gorm:"type:char(36);not null;index"`
	PlanName      string     `json:"plan_name"      gorm:"type:varchar(64);not null"`
	Price         float64    `json:"price"          gorm:"not null"`
	BillingPeriod string     `json:"billing_period" gorm:"type:varchar(16);not null;check:billing_period IN ('weekly','monthly','yearly')"`
	StartDate     time.Time  `json:"start_date"     gorm:"not null"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	IsActive      bool       `json:"is_active"      gorm:"not null;default:true"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName returns the database table name for Subscription.
func (Subscription) TableName() string { return "subscriptions" }
