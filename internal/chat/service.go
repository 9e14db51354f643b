package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/krishisahay/backend/internal/inference"
	"github.com/krishisahay/backend/internal/models"
)

// Service runs the farming-advisor conversation. Replies are free text and
// may be grounded with live external data; nothing is persisted.
type Service struct {
	client inference.Client

	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewService(client inference.Client) *Service {
	return &Service{
		client:   client,
		sessions: make(map[int64]*Session),
	}
}

func (s *Service) session(userID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		sess = NewSession()
		s.sessions[userID] = sess
	}
	return sess
}

// Send appends the farmer's message, gets the advisor's reply, and returns
// the updated transcript. Only one send per session may be in flight.
func (s *Service) Send(ctx context.Context, userID int64, message string) (models.ChatTranscriptResponse, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return models.ChatTranscriptResponse{}, fmt.Errorf("message is required")
	}

	sess := s.session(userID)
	history, ok := sess.Begin(message)
	if !ok {
		return sess.Transcript(), fmt.Errorf("a reply is already in progress")
	}

	res, err := s.client.Invoke(ctx, inference.Request{
		Prompt:               buildPrompt(history, message),
		AllowExternalContext: true,
	})
	if err != nil {
		sess.Finish("", false)
		return sess.Transcript(), err
	}

	sess.Finish(res.Text(), true)
	return sess.Transcript(), nil
}

// Transcript returns the user's current conversation.
func (s *Service) Transcript(userID int64) models.ChatTranscriptResponse {
	return s.session(userID).Transcript()
}

// Reset starts the user's conversation over with a fresh greeting.
func (s *Service) Reset(userID int64) models.ChatTranscriptResponse {
	sess := s.session(userID)
	sess.Reset()
	return sess.Transcript()
}
