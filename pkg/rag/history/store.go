// Package history keeps short-lived multi-turn conversation context in
// process memory. State is best-effort: it is never persisted and a crash
// between producing an answer and appending the turn loses that turn.
package history

import (
	"strings"
	"sync"
	"time"
)

const (
	// Header and labels are spliced verbatim into the language-model
	// prompt, so their exact text is part of the observable contract.
	historyHeader = "The following is the previous conversation history:\n"
	questionLabel = "Question: "
	answerLabel   = "Answer: "

	// DefaultRetention is how long a turn stays visible before the sweep
	// evicts it.
	DefaultRetention = 24 * time.Hour
)

// Turn is one question/answer exchange. Immutable once created.
type Turn struct {
	Question  string
	Answer    string
	CreatedAt time.Time
}

// conversation holds one id's turns behind its own lock, so appends and
// reads on different conversations never contend. removed is set, under
// both the table lock and mu, when the struct leaves the table; a caller
// that finds it set holds a stale pointer and must look the id up again.
type conversation struct {
	mu      sync.Mutex
	removed bool
	turns   []Turn
}

// Store maps a conversation id to its ordered turns. Entry creation and
// removal go through the table lock; everything touching a single
// conversation's turns holds only that conversation's lock.
type Store struct {
	mu            sync.RWMutex
	conversations map[string]*conversation
	retention     time.Duration

	now func() time.Time // test hook
}

func NewStore(retention time.Duration) *Store {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Store{
		conversations: make(map[string]*conversation),
		retention:     retention,
		now:           time.Now,
	}
}

// Append atomically adds a turn stamped with the current time, creating the
// conversation on first use. A blank id is a no-op.
func (s *Store) Append(id, question, answer string) {
	if strings.TrimSpace(id) == "" {
		return
	}

	turn := Turn{
		Question:  question,
		Answer:    answer,
		CreatedAt: s.now(),
	}

	for {
		conv := s.lookupOrCreate(id)

		conv.mu.Lock()
		if conv.removed {
			// The sweep or a Clear evicted this struct between lookup and
			// lock; the map entry is already gone, so retry on a fresh one.
			conv.mu.Unlock()
			continue
		}
		conv.turns = append(conv.turns, turn)
		conv.mu.Unlock()
		return
	}
}

func (s *Store) lookupOrCreate(id string) *conversation {
	s.mu.RLock()
	conv, ok := s.conversations[id]
	s.mu.RUnlock()
	if ok {
		return conv
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if conv, ok := s.conversations[id]; ok {
		return conv
	}
	conv = &conversation{}
	s.conversations[id] = conv
	return conv
}

// History renders all turns for the id in chronological order, or "" when
// the conversation is absent or empty.
func (s *Store) History(id string) string {
	if strings.TrimSpace(id) == "" {
		return ""
	}

	s.mu.RLock()
	conv, ok := s.conversations[id]
	s.mu.RUnlock()
	if !ok {
		return ""
	}

	conv.mu.Lock()
	turns := make([]Turn, len(conv.turns))
	copy(turns, conv.turns)
	conv.mu.Unlock()

	if len(turns) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(historyHeader)
	for _, turn := range turns {
		sb.WriteString(questionLabel)
		sb.WriteString(turn.Question)
		sb.WriteString("\n")
		sb.WriteString(answerLabel)
		sb.WriteString(turn.Answer)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Clear removes the conversation entirely. Idempotent.
func (s *Store) Clear(id string) {
	if strings.TrimSpace(id) == "" {
		return
	}
	s.mu.Lock()
	if conv, ok := s.conversations[id]; ok {
		conv.mu.Lock()
		conv.removed = true
		conv.mu.Unlock()
		delete(s.conversations, id)
	}
	s.mu.Unlock()
}

// Len returns the number of live conversations.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conversations)
}

// SweepExpired drops every turn older than the retention window, then drops
// conversations left with no turns. Each conversation is rewritten under
// its own lock, so an append or read on another id is never blocked for
// longer than one conversation's scan.
func (s *Store) SweepExpired() {
	cutoff := s.now().Add(-s.retention)

	s.mu.RLock()
	ids := make([]string, 0, len(s.conversations))
	for id := range s.conversations {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	for _, id := range ids {
		s.mu.RLock()
		conv, ok := s.conversations[id]
		s.mu.RUnlock()
		if !ok {
			continue
		}

		conv.mu.Lock()
		kept := conv.turns[:0]
		for _, turn := range conv.turns {
			if turn.CreatedAt.After(cutoff) {
				kept = append(kept, turn)
			}
		}
		conv.turns = kept
		empty := len(kept) == 0
		conv.mu.Unlock()

		if empty {
			s.mu.Lock()
			// Re-check under the table lock: a concurrent append may have
			// revived the conversation since we released its lock.
			if current, ok := s.conversations[id]; ok && current == conv {
				current.mu.Lock()
				if len(current.turns) == 0 {
					current.removed = true
					delete(s.conversations, id)
				}
				current.mu.Unlock()
			}
			s.mu.Unlock()
		}
	}
}
