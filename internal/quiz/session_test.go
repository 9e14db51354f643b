package quiz

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/krishisahay/backend/internal/models"
)

var errTest = errors.New("store down")

// scoreRecorder collects persisted scores and can simulate a failing store.
type scoreRecorder struct {
	mu     sync.Mutex
	scores []models.QuizScore
	fail   error
}

func (r *scoreRecorder) save(score models.QuizScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	r.scores = append(r.scores, score)
	return nil
}

func (r *scoreRecorder) saved() []models.QuizScore {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.QuizScore, len(r.scores))
	copy(out, r.scores)
	return out
}

// newTestSession builds a session whose advance timer never fires on its
// own; tests call advance() directly so transitions are deterministic.
func newTestSession(t *testing.T, category models.QuizCategory, questions []models.QuizQuestion, save saveFunc) *Session {
	t.Helper()
	s := NewSession(category, questions, time.Hour, save)
	t.Cleanup(s.Close)
	return s
}

// playThrough answers every question; correct answers for the question
// indexes listed in correctOn.
func playThrough(t *testing.T, s *Session, questions []models.QuizQuestion, correctOn map[int]bool) {
	t.Helper()
	for i := range questions {
		view := s.View()
		if view.Phase != phaseAnswering || view.CurrentIndex != i {
			t.Fatalf("expected question %d in answering phase, got %d in %q", i, view.CurrentIndex, view.Phase)
		}

		answer := questions[i].CorrectAnswer
		if !correctOn[i] {
			answer = (answer + 1) % optionsPerQuestion
		}
		if !s.SelectAnswer(answer) {
			t.Fatalf("question %d: answer rejected", i)
		}
		s.advance()
	}
}

func TestSession_ScoresThreeOfFive(t *testing.T) {
	questions := validBatch(5)
	rec := &scoreRecorder{}
	s := newTestSession(t, models.CategoryIrrigation, questions, rec.save)

	playThrough(t, s, questions, map[int]bool{0: true, 2: true, 4: true})

	view := s.View()
	if view.Phase != phaseComplete {
		t.Fatalf("expected complete phase, got %q", view.Phase)
	}
	if view.Score != 3 {
		t.Errorf("expected score 3, got %d", view.Score)
	}
	if view.ScoreSaveError != "" {
		t.Errorf("unexpected save error: %s", view.ScoreSaveError)
	}

	saved := rec.saved()
	if len(saved) != 1 {
		t.Fatalf("expected exactly one saved score, got %d", len(saved))
	}
	if saved[0].Score != 3 || saved[0].TotalQuestions != 5 {
		t.Errorf("saved score %d/%d, expected 3/5", saved[0].Score, saved[0].TotalQuestions)
	}
	if saved[0].Category != models.CategoryIrrigation {
		t.Errorf("saved category %q, expected irrigation", saved[0].Category)
	}
}

func TestSession_RevealShowsAnswerKey(t *testing.T) {
	questions := validBatch(5)
	s := newTestSession(t, models.CategoryGeneral, questions, nil)

	before := s.View()
	if before.CorrectAnswer != nil || before.Explanation != "" {
		t.Error("answer key leaked before selection")
	}

	if !s.SelectAnswer(questions[0].CorrectAnswer) {
		t.Fatal("answer rejected")
	}

	after := s.View()
	if after.Phase != phaseRevealed {
		t.Fatalf("expected revealed phase, got %q", after.Phase)
	}
	if after.CorrectAnswer == nil || *after.CorrectAnswer != questions[0].CorrectAnswer {
		t.Error("correct answer missing from revealed view")
	}
	if after.Explanation == "" {
		t.Error("explanation missing from revealed view")
	}
	if after.Score != 1 {
		t.Errorf("score captured at submission: expected 1, got %d", after.Score)
	}
}

func TestSession_SecondSelectDuringRevealIgnored(t *testing.T) {
	questions := validBatch(5)
	s := newTestSession(t, models.CategoryGeneral, questions, nil)

	wrong := (questions[0].CorrectAnswer + 1) % optionsPerQuestion
	if !s.SelectAnswer(wrong) {
		t.Fatal("first answer rejected")
	}
	if s.SelectAnswer(questions[0].CorrectAnswer) {
		t.Error("select accepted while answer revealed")
	}
	if s.View().Score != 0 {
		t.Errorf("score changed by ignored select: %d", s.View().Score)
	}
}

func TestSession_OutOfRangeAnswerRejected(t *testing.T) {
	s := newTestSession(t, models.CategoryGeneral, validBatch(5), nil)

	for _, answer := range []int{-1, 4} {
		if s.SelectAnswer(answer) {
			t.Errorf("answer %d accepted", answer)
		}
	}
	if s.View().Phase != phaseAnswering {
		t.Errorf("phase moved on rejected answer: %q", s.View().Phase)
	}
}

func TestSession_ScoreSavedExactlyOnce(t *testing.T) {
	questions := validBatch(5)
	rec := &scoreRecorder{}
	s := newTestSession(t, models.CategoryGeneral, questions, rec.save)

	playThrough(t, s, questions, map[int]bool{})

	// Completed sessions ignore further input and never save again.
	s.SelectAnswer(0)
	s.advance()
	s.advance()

	if got := len(rec.saved()); got != 1 {
		t.Errorf("expected exactly one save, got %d", got)
	}
}

func TestSession_SaveFailureSurfacesAsWarning(t *testing.T) {
	questions := validBatch(5)
	rec := &scoreRecorder{fail: errTest}
	s := newTestSession(t, models.CategoryGeneral, questions, rec.save)

	playThrough(t, s, questions, map[int]bool{1: true})

	view := s.View()
	if view.Phase != phaseComplete {
		t.Fatalf("expected complete phase, got %q", view.Phase)
	}
	if view.Score != 1 {
		t.Errorf("expected score 1, got %d", view.Score)
	}
	if view.ScoreSaveError == "" {
		t.Error("expected a score save warning, got none")
	}
}

func TestSession_CloseMidQuizNeverSaves(t *testing.T) {
	questions := validBatch(5)
	rec := &scoreRecorder{}
	s := newTestSession(t, models.CategoryGeneral, questions, rec.save)

	for i := 0; i < 4; i++ {
		if !s.SelectAnswer(questions[i].CorrectAnswer) {
			t.Fatalf("question %d: answer rejected", i)
		}
		s.advance()
	}

	s.Close()

	if s.SelectAnswer(0) {
		t.Error("closed session accepted an answer")
	}
	s.advance()
	if got := len(rec.saved()); got != 0 {
		t.Errorf("abandoned session saved a score: %d", got)
	}
}
