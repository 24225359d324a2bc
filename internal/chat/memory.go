package chat

import "sync"

// DefaultMemoryCapacity is the per-user window size used when a MemoryStore
// is constructed with a non-positive capacity.
const DefaultMemoryCapacity = 5

// Turn is one remembered exchange entry in a user's memory window.
type Turn struct {
	Role string // "user" or "assistant"
	Text string
}

// MemoryStore keeps a bounded FIFO window of recent turns per user. Content
// is process-local and lost on restart; durable history lives in the
// persistence layer. All methods are safe for concurrent use: the windows
// map and every read-modify-write on a window are guarded by one mutex, so
// the evict-then-append sequence is atomic per call.
type MemoryStore struct {
	mu       sync.Mutex
	capacity int
	windows  map[string][]Turn
}

// NewMemoryStore constructs a MemoryStore with the given per-user capacity.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &MemoryStore{
		capacity: capacity,
		windows:  make(map[string][]Turn),
	}
}

// Add appends a turn to the user's window, evicting the oldest entry first
// when the window is at capacity. The window is created lazily on first use.
func (m *MemoryStore) Add(userID, role, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w := m.windows[userID]
	if len(w) >= m.capacity {
		w = w[len(w)-m.capacity+1:]
	}
	m.windows[userID] = append(w, Turn{Role: role, Text: text})
}

// Recent returns the user's current window, oldest to newest. Unknown users
// yield an empty slice, never an error. The returned slice is a copy.
func (m *MemoryStore) Recent(userID string) []Turn {
	m.mu.Lock()
	defer m.mu.Unlock()

	w := m.windows[userID]
	out := make([]Turn, len(w))
	copy(out, w)
	return out
}

// Clear removes the user's window entirely.
func (m *MemoryStore) Clear(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.windows, userID)
}
