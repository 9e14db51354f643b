package quiz

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/krishisahay/backend/internal/inference"
	"github.com/krishisahay/backend/internal/models"
	"github.com/krishisahay/backend/internal/orchestrator"
)

const scoreListLimit = 10

// ScoreStore is the persistence surface the service needs.
type ScoreStore interface {
	CreateScore(ctx context.Context, score *models.QuizScore) error
	ListScores(ctx context.Context, userID int64, limit int) ([]models.QuizScore, error)
}

// Service generates quizzes and runs their sessions. Question generation
// uses a per-user slot, so starting a new quiz supersedes a generation still
// in flight; the running session is a separate machine layered on top.
type Service struct {
	client       inference.Client
	store        ScoreStore
	advanceDelay time.Duration

	mu       sync.Mutex
	slots    map[int64]*orchestrator.Slot[[]models.QuizQuestion]
	sessions map[int64]*Session
}

func NewService(client inference.Client, store ScoreStore, advanceDelay time.Duration) *Service {
	return &Service{
		client:       client,
		store:        store,
		advanceDelay: advanceDelay,
		slots:        make(map[int64]*orchestrator.Slot[[]models.QuizQuestion]),
		sessions:     make(map[int64]*Session),
	}
}

func (s *Service) slot(userID int64) *orchestrator.Slot[[]models.QuizQuestion] {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl, ok := s.slots[userID]
	if !ok {
		sl = orchestrator.NewSlot[[]models.QuizQuestion]()
		s.slots[userID] = sl
	}
	return sl
}

// Start generates a fresh quiz for category and installs its session. Any
// previous session for the user is closed first: its advance timer stops
// and its score will never be saved.
func (s *Service) Start(ctx context.Context, userID int64, category models.QuizCategory) (models.QuizSessionView, error) {
	if !models.ValidQuizCategories[category] {
		return models.QuizSessionView{}, fmt.Errorf("unknown quiz category: %q", category)
	}

	s.closeSession(userID)

	task := func(ctx context.Context) ([]models.QuizQuestion, error) {
		res, err := s.client.Invoke(ctx, inference.Request{
			Prompt: generationPrompt(category),
			Schema: inference.QuizSchema(),
		})
		if err != nil {
			return nil, err
		}
		return parseQuestions(res)
	}

	effect := func(questions *[]models.QuizQuestion) {
		sess := NewSession(category, *questions, s.advanceDelay, s.saveFunc(userID))
		s.mu.Lock()
		s.sessions[userID] = sess
		s.mu.Unlock()
	}

	if _, err := s.slot(userID).Submit(ctx, task, effect); err != nil {
		return models.QuizSessionView{}, err
	}

	sess, ok := s.session(userID)
	if !ok {
		return models.QuizSessionView{}, orchestrator.ErrSuperseded
	}
	return sess.View(), nil
}

// saveFunc builds the exactly-once score writer for a session. Completion
// fires on the advance timer's goroutine, so the write gets its own context.
func (s *Service) saveFunc(userID int64) saveFunc {
	return func(score models.QuizScore) error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		score.UserID = userID
		if err := s.store.CreateScore(ctx, &score); err != nil {
			log.Printf("WARN: failed to save quiz score for user %d: %v", userID, err)
			return err
		}
		return nil
	}
}

func (s *Service) session(userID int64) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	return sess, ok
}

func (s *Service) closeSession(userID int64) {
	s.mu.Lock()
	sess := s.sessions[userID]
	delete(s.sessions, userID)
	s.mu.Unlock()
	if sess != nil {
		sess.Close()
	}
}

// SelectAnswer submits the farmer's answer for the current question.
func (s *Service) SelectAnswer(userID int64, answer int) (models.QuizSessionView, error) {
	sess, ok := s.session(userID)
	if !ok {
		return models.QuizSessionView{}, fmt.Errorf("no active quiz session")
	}
	if !sess.SelectAnswer(answer) {
		return sess.View(), fmt.Errorf("answer not accepted in the current phase")
	}
	return sess.View(), nil
}

// View returns the running session, if any.
func (s *Service) View(userID int64) (models.QuizSessionView, bool) {
	sess, ok := s.session(userID)
	if !ok {
		return models.QuizSessionView{}, false
	}
	return sess.View(), true
}

// Reset abandons the running session and clears the generation slot. An
// abandoned session never saves a score.
func (s *Service) Reset(userID int64) {
	s.closeSession(userID)
	s.slot(userID).Reset()
}

// Scores lists the user's saved results, newest first.
func (s *Service) Scores(ctx context.Context, userID int64) ([]models.QuizScore, error) {
	return s.store.ListScores(ctx, userID, scoreListLimit)
}
