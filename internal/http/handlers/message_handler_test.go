package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"golang.org/x/text/language"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/astrelia/go-astro-backend/internal/chat"
	"github.com/astrelia/go-astro-backend/internal/domain"
	"github.com/astrelia/go-astro-backend/internal/repo"
	"github.com/astrelia/go-astro-backend/internal/services"
)

type fakeModel struct {
	reply string
	calls int
}

func (f *fakeModel) Complete(context.Context, string, string) (string, error) {
	f.calls++
	return f.reply, nil
}

// messageFixture wires a Gin engine with only the message routes, backed by
// a real service stack over a throwaway database.
type messageFixture struct {
	r     *gin.Engine
	db    *gorm.DB
	model *fakeModel
	user  *domain.User
	conv  *domain.Conversation
}

func newMessageFixture(t *testing.T) *messageFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "handlers.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	ctx := context.Background()
	u, err := repo.CreateUser(ctx, db, &domain.User{Name: "Luna", BirthDate: "1993-04-12"})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	conv, err := repo.CreateConversation(ctx, db, u.ID, "New chat")
	if err != nil {
		t.Fatalf("seed conversation: %v", err)
	}

	model := &fakeModel{reply: "The moon approves."}
	responder := &services.ResponderService{
		DB:     db,
		Model:  model,
		Memory: chat.NewMemoryStore(chat.DefaultMemoryCapacity),
	}
	msgSvc := &services.MessageService{
		DB:          db,
		Responder:   responder,
		TitleMaxLen: 60,
		TitleLocale: language.English,
	}

	h := &Handlers{msgSvc: msgSvc}
	r := gin.New()
	r.POST("/messages", h.PostMessage)
	r.GET("/messages/:conversationID", h.ListMessages)

	return &messageFixture{r: r, db: db, model: model, user: u, conv: conv}
}

func (f *messageFixture) post(t *testing.T, payload map[string]any, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	b, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/messages", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	f.r.ServeHTTP(w, req)
	return w
}

func TestPostMessage_HappyPath(t *testing.T) {
	f := newMessageFixture(t)

	w := f.post(t, map[string]any{
		"conversation_id": f.conv.ID,
		"content":         "what does my chart say about my career",
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}

	var resp PostMessageResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Message == nil || resp.Message.Role != domain.RoleUser {
		t.Fatalf("user message missing: %+v", resp.Message)
	}
	if resp.AssistantResponse == nil || resp.AssistantResponse.Content != "The moon approves." {
		t.Fatalf("assistant reply missing: %+v", resp.AssistantResponse)
	}
}

func TestPostMessage_Validation(t *testing.T) {
	f := newMessageFixture(t)

	// Missing fields.
	if w := f.post(t, map[string]any{"content": "hi"}, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("missing conversation_id: %d", w.Code)
	}
	// Non-UUID conversation id.
	if w := f.post(t, map[string]any{"conversation_id": "nope", "content": "hi"}, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("bad uuid: %d", w.Code)
	}
	// Unknown conversation.
	w := f.post(t, map[string]any{
		"conversation_id": "123e4567-e89b-12d3-a456-426614174000",
		"content":         "hello out there friend",
	}, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown conversation: %d body=%s", w.Code, w.Body.String())
	}
}

func TestPostMessage_IdempotentReplay(t *testing.T) {
	f := newMessageFixture(t)
	hdr := map[string]string{"Idempotency-Key": "retry-1"}
	payload := map[string]any{
		"conversation_id": f.conv.ID,
		"content":         "should I take the new job offer",
	}

	first := f.post(t, payload, hdr)
	if first.Code != http.StatusOK {
		t.Fatalf("first post: %d body=%s", first.Code, first.Body.String())
	}
	if f.model.calls != 1 {
		t.Fatalf("model calls = %d, want 1", f.model.calls)
	}

	second := f.post(t, payload, hdr)
	if second.Code != http.StatusOK {
		t.Fatalf("replay: %d body=%s", second.Code, second.Body.String())
	}
	if got := second.Header().Get("Idempotency-Replayed"); got != "true" {
		t.Fatalf("Idempotency-Replayed = %q", got)
	}
	if f.model.calls != 1 {
		t.Fatalf("replay re-ran the pipeline: %d calls", f.model.calls)
	}

	var firstResp, secondResp PostMessageResponse
	_ = json.Unmarshal(first.Body.Bytes(), &firstResp)
	_ = json.Unmarshal(second.Body.Bytes(), &secondResp)
	if secondResp.AssistantResponse == nil ||
		secondResp.AssistantResponse.ID != firstResp.AssistantResponse.ID {
		t.Fatalf("replay returned a different assistant message")
	}

	// A fresh key runs the pipeline again.
	third := f.post(t, payload, map[string]string{"Idempotency-Key": "retry-2"})
	if third.Code != http.StatusOK || f.model.calls != 2 {
		t.Fatalf("new key: status=%d calls=%d", third.Code, f.model.calls)
	}
}

func TestListMessages_ETagAndPagination(t *testing.T) {
	f := newMessageFixture(t)

	for i := 0; i < 3; i++ {
		if _, err := repo.CreateMessage(f.db, f.conv.ID, domain.RoleUser, "hello"); err != nil {
			t.Fatalf("seed message: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/messages/"+f.conv.ID+"?page=1&page_size=2", nil)
	w := httptest.NewRecorder()
	f.r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("list: %d body=%s", w.Code, w.Body.String())
	}
	etag := w.Header().Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}

	var resp ListMessagesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Messages) != 2 || resp.Pagination.Total != 3 || !resp.Pagination.HasNext {
		t.Fatalf("pagination = %+v len=%d", resp.Pagination, len(resp.Messages))
	}

	// Conditional request with the same ETag short-circuits to 304.
	req = httptest.NewRequest(http.MethodGet, "/messages/"+f.conv.ID+"?page=1&page_size=2", nil)
	req.Header.Set("If-None-Match", etag)
	w = httptest.NewRecorder()
	f.r.ServeHTTP(w, req)
	if w.Code != http.StatusNotModified {
		t.Fatalf("conditional get: %d", w.Code)
	}
}

func Test_sanitizeContent(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"a\r\nb", "a\nb"},
		{"a\rb", "a\nb"},
		{"a\n\n\n\n\nb", "a\n\nb"},
		{"  padded  ", "padded"},
	}
	for _, tc := range cases {
		if got := sanitizeContent(tc.in); got != tc.want {
			t.Errorf("sanitizeContent(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
