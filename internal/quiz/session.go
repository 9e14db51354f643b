package quiz

import (
	"sync"
	"time"

	"github.com/krishisahay/backend/internal/models"
)

// Session phases. A session moves Answering → Revealed per question, then
// either back to Answering for the next question or to Complete after the
// last one.
const (
	phaseAnswering = "answering"
	phaseRevealed  = "revealed"
	phaseComplete  = "complete"
)

// saveFunc persists the final score. Called exactly once, at the moment the
// session completes; the returned error becomes a warning on the view, not
// a session failure.
type saveFunc func(score models.QuizScore) error

// Session is one running quiz. Answer selection is driven by the client;
// advancing past a revealed answer happens on a timer so the farmer gets a
// moment to read the explanation.
type Session struct {
	mu           sync.Mutex
	category     models.QuizCategory
	questions    []models.QuizQuestion
	idx          int
	phase        string
	selected     *int
	score        int
	advanceDelay time.Duration
	timer        *time.Timer
	save         saveFunc
	saved        bool
	saveErr      string
	closed       bool
}

func NewSession(category models.QuizCategory, questions []models.QuizQuestion, advanceDelay time.Duration, save saveFunc) *Session {
	return &Session{
		category:     category,
		questions:    questions,
		phase:        phaseAnswering,
		advanceDelay: advanceDelay,
		save:         save,
	}
}

// SelectAnswer locks in the farmer's choice for the current question. The
// score is captured at the moment of submission; a second select while the
// answer is revealed is ignored, as is any select after completion.
func (s *Session) SelectAnswer(answer int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.phase != phaseAnswering {
		return false
	}
	if answer < 0 || answer >= optionsPerQuestion {
		return false
	}

	s.selected = &answer
	if answer == s.questions[s.idx].CorrectAnswer {
		s.score++
	}
	s.phase = phaseRevealed

	s.timer = time.AfterFunc(s.advanceDelay, s.advance)
	return true
}

// advance fires after the reveal delay. On the last question it completes
// the session and persists the score once.
func (s *Session) advance() {
	s.mu.Lock()

	if s.closed || s.phase != phaseRevealed {
		s.mu.Unlock()
		return
	}

	if s.idx+1 < len(s.questions) {
		s.idx++
		s.selected = nil
		s.phase = phaseAnswering
		s.mu.Unlock()
		return
	}

	s.phase = phaseComplete
	shouldSave := !s.saved
	s.saved = true
	score := models.QuizScore{
		Category:       s.category,
		Score:          s.score,
		TotalQuestions: len(s.questions),
		Difficulty:     "medium",
	}
	s.mu.Unlock()

	if !shouldSave || s.save == nil {
		return
	}
	if err := s.save(score); err != nil {
		s.mu.Lock()
		s.saveErr = "Quiz finished but the score could not be saved"
		s.mu.Unlock()
	}
}

// Close cancels the advance timer and freezes the session. A closed session
// never persists its score.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
	}
}

// View renders the session for the client. The answer key and explanation
// for the current question appear only once it has been revealed.
func (s *Session) View() models.QuizSessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := models.QuizSessionView{
		Category:       s.category,
		Phase:          s.phase,
		TotalQuestions: len(s.questions),
		CurrentIndex:   s.idx,
		Score:          s.score,
		ScoreSaveError: s.saveErr,
	}

	if s.phase == phaseComplete {
		return view
	}

	q := s.questions[s.idx]
	view.Question = q.Question
	view.Options = append([]string{}, q.Options...)

	if s.phase == phaseRevealed {
		view.SelectedAnswer = s.selected
		correct := q.CorrectAnswer
		view.CorrectAnswer = &correct
		view.Explanation = q.Explanation
	}

	return view
}
