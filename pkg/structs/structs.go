package structs

import (
	"sync"
)

const (
	HistoryLimit    = 20
	TimestampLayout = "15:04:05"
)

// Запись истории: время вычисления, исходная строка и результат
type HistoryEntry struct {
	Timestamp  string `json:"timestamp"`
	Expression string `json:"expression"`
	Result     string `json:"result"`
}

func (e HistoryEntry) String() string {
	return "[" + e.Timestamp + "] " + e.Expression + " = " + e.Result
}

// Ограниченная история: новые записи в начале, старые вытесняются за пределом limit
type History struct {
	entries []HistoryEntry
	limit   int
}

func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = HistoryLimit
	}
	return &History{entries: make([]HistoryEntry, 0, limit), limit: limit}
}

func (h *History) Push(entry HistoryEntry) {
	if len(h.entries) < h.limit {
		h.entries = append(h.entries, HistoryEntry{})
	}
	copy(h.entries[1:], h.entries[:len(h.entries)-1])
	h.entries[0] = entry
}

func (h *History) Entries() []HistoryEntry {
	out := make([]HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *History) Len() int { return len(h.entries) }

func (h *History) Clear() {
	h.entries = h.entries[:0]
}

type sessionSlot[T any] struct {
	mu    sync.Mutex
	value T
}

// Структура для хранения сессий всех пользователей, безопасная для конкурентного кода.
// Сама сессия блокируется отдельно, поэтому разные пользователи не мешают друг другу
type SafeSessionMap[T any] struct {
	sessionMap   map[string]*sessionSlot[T]
	sessionMutex sync.RWMutex
	newSession   func() T
}

func NewSafeSessionMap[T any](newSession func() T) *SafeSessionMap[T] {
	return &SafeSessionMap[T]{
		sessionMap: make(map[string]*sessionSlot[T]),
		newSession: newSession,
	}
}

// With выполняет fn над сессией владельца, создавая её при первом обращении
func (m *SafeSessionMap[T]) With(owner string, fn func(T) error) error {
	slot := m.slot(owner)
	slot.mu.Lock()
	defer slot.mu.Unlock()
	return fn(slot.value)
}

func (m *SafeSessionMap[T]) slot(owner string) *sessionSlot[T] {
	m.sessionMutex.RLock()
	slot, ok := m.sessionMap[owner]
	m.sessionMutex.RUnlock()
	if ok {
		return slot
	}

	m.sessionMutex.Lock()
	defer m.sessionMutex.Unlock()
	if slot, ok := m.sessionMap[owner]; ok {
		return slot
	}
	slot = &sessionSlot[T]{value: m.newSession()}
	m.sessionMap[owner] = slot
	return slot
}

// Delete завершает сессию владельца
func (m *SafeSessionMap[T]) Delete(owner string) {
	m.sessionMutex.Lock()
	defer m.sessionMutex.Unlock()
	delete(m.sessionMap, owner)
}

func (m *SafeSessionMap[T]) Len() int {
	m.sessionMutex.RLock()
	defer m.sessionMutex.RUnlock()
	return len(m.sessionMap)
}
