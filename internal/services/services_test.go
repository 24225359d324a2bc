package services

import (
	"context"
	"path/filepath"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/astrelia/go-astro-backend/internal/chat"
	"github.com/astrelia/go-astro-backend/internal/domain"
	"github.com/astrelia/go-astro-backend/internal/repo"
)

// newTestDB opens a throwaway on-disk sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "services.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// fakeModel is a canned llm.Client.
type fakeModel struct {
	reply string
	err   error
	calls int

	lastSystem string
	lastUser   string
}

func (f *fakeModel) Complete(_ context.Context, system, user string) (string, error) {
	f.calls++
	f.lastSystem = system
	f.lastUser = user
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

// newResponder wires a ResponderService around the fake model and a fresh
// memory window.
func newResponder(db *gorm.DB, model *fakeModel) *ResponderService {
	return &ResponderService{
		DB:     db,
		Model:  model,
		Memory: chat.NewMemoryStore(chat.DefaultMemoryCapacity),
	}
}

// seedUser creates a user directly through the repo layer, without the
// onboarding side effects of UserService.Create.
func seedUser(t *testing.T, db *gorm.DB) *domain.User {
	t.Helper()
	u, err := repo.CreateUser(context.Background(), db, &domain.User{
		Name:      "Luna",
		BirthDate: "1993-04-12",
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

// historyRows returns the user's durable chat history rows in order.
func historyRows(t *testing.T, db *gorm.DB, userID string) []domain.ChatTurn {
	t.Helper()
	rows, err := repo.ListChatHistory(context.Background(), db, userID, 100, 0)
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	return rows
}
