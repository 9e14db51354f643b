package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/krishisahay/backend/internal/models"
)

// Session is one user's advisor conversation. It lives in memory only and
// always begins with the advisor's greeting.
type Session struct {
	mu      sync.Mutex
	id      string
	turns   []models.ChatTurn
	pending bool
}

func NewSession() *Session {
	s := &Session{}
	s.seed()
	return s
}

func (s *Session) seed() {
	s.id = uuid.NewString()
	s.turns = []models.ChatTurn{{
		Role:      models.RoleAssistant,
		Content:   greeting,
		Timestamp: time.Now(),
	}}
	s.pending = false
}

// Begin records the farmer's message and marks the session pending. It
// reports false when a send is already in flight; sends never overlap.
func (s *Session) Begin(message string) ([]models.ChatTurn, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending {
		return nil, false
	}

	history := make([]models.ChatTurn, len(s.turns))
	copy(history, s.turns)

	s.turns = append(s.turns, models.ChatTurn{
		Role:      models.RoleUser,
		Content:   message,
		Timestamp: time.Now(),
	})
	s.pending = true
	return history, true
}

// Finish commits the advisor's reply. On failure the farmer's message stays
// in the transcript and the session simply stops being pending, so the
// farmer can retry.
func (s *Session) Finish(reply string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = false
	if !ok {
		return
	}
	s.turns = append(s.turns, models.ChatTurn{
		Role:      models.RoleAssistant,
		Content:   reply,
		Timestamp: time.Now(),
	})
}

// Transcript returns a copy of the session state.
func (s *Session) Transcript() models.ChatTranscriptResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	turns := make([]models.ChatTurn, len(s.turns))
	copy(turns, s.turns)
	return models.ChatTranscriptResponse{
		SessionID: s.id,
		Turns:     turns,
		Pending:   s.pending,
	}
}

// Reset discards the conversation and reseeds the greeting under a new
// session ID.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seed()
}
