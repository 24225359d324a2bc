package services

import (
	"context"
	"strings"
	"testing"
)

func TestConversationCreate_TitleNormalization(t *testing.T) {
	db := newTestDB(t)
	svc := NewConversationService(db)
	ctx := context.Background()
	u := seedUser(t, db)

	conv, err := svc.Create(ctx, u.ID, "  mercury   retrograde \n worries  ")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if conv.Title != "mercury retrograde worries" {
		t.Fatalf("title = %q", conv.Title)
	}

	// Blank titles fall back to the default.
	conv, err = svc.Create(ctx, u.ID, "   ")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if conv.Title != "New chat" {
		t.Fatalf("default title = %q", conv.Title)
	}

	// Long titles are clipped to the configured rune cap.
	conv, err = svc.Create(ctx, u.ID, strings.Repeat("z", 100))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len([]rune(conv.Title)) != 60 {
		t.Fatalf("clipped title len = %d", len([]rune(conv.Title)))
	}
}

func TestConversationCreate_UnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewConversationService(db)
	if _, err := svc.Create(context.Background(), "nobody", "t"); err != ErrUserNotFound {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestConversationGetAndList(t *testing.T) {
	db := newTestDB(t)
	svc := NewConversationService(db)
	ctx := context.Background()
	u := seedUser(t, db)

	conv, err := svc.Create(ctx, u.ID, "t")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.Get(ctx, u.ID, conv.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != conv.ID {
		t.Fatalf("id mismatch")
	}
	if _, err := svc.Get(ctx, "someone-else", conv.ID); err != ErrConversationNotFound {
		t.Fatalf("foreign get err = %v", err)
	}

	items, err := svc.List(ctx, u.ID)
	if err != nil || len(items) != 1 {
		t.Fatalf("List: %v len=%d", err, len(items))
	}
}

func TestConversationUpdateTitle(t *testing.T) {
	db := newTestDB(t)
	svc := NewConversationService(db)
	ctx := context.Background()
	u := seedUser(t, db)

	conv, err := svc.Create(ctx, u.ID, "old")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.UpdateTitle(ctx, u.ID, conv.ID, "  brand   new  "); err != nil {
		t.Fatalf("UpdateTitle: %v", err)
	}
	got, _ := svc.Get(ctx, u.ID, conv.ID)
	if got.Title != "brand new" {
		t.Fatalf("title = %q", got.Title)
	}

	// Blank renames fall back to "Untitled".
	if err := svc.UpdateTitle(ctx, u.ID, conv.ID, "   "); err != nil {
		t.Fatalf("UpdateTitle blank: %v", err)
	}
	got, _ = svc.Get(ctx, u.ID, conv.ID)
	if got.Title != "Untitled" {
		t.Fatalf("title = %q", got.Title)
	}

	if err := svc.UpdateTitle(ctx, u.ID, "missing", "x"); err != ErrConversationNotFound {
		t.Fatalf("missing err = %v", err)
	}
	if err := svc.UpdateTitle(ctx, "intruder", conv.ID, "x"); err != ErrConversationNotFound {
		t.Fatalf("foreign rename err = %v", err)
	}
}
