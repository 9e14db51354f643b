package quiz

import (
	"fmt"

	"github.com/krishisahay/backend/internal/inference"
	"github.com/krishisahay/backend/internal/models"
)

type questionBatch struct {
	Questions []models.QuizQuestion `json:"questions"`
}

// parseQuestions decodes and checks a generated batch. Anything short of a
// full, well-formed quiz is a malformed response: a quiz with a missing
// option or an out-of-range answer key is unplayable.
func parseQuestions(res *inference.Result) ([]models.QuizQuestion, error) {
	var batch questionBatch
	if err := res.Decode(&batch); err != nil {
		return nil, err
	}

	if len(batch.Questions) != questionsPerQuiz {
		return nil, inference.MalformedResponse(
			fmt.Errorf("expected %d questions, got %d", questionsPerQuiz, len(batch.Questions)))
	}

	for i, q := range batch.Questions {
		if q.Question == "" {
			return nil, inference.MalformedResponse(fmt.Errorf("question %d has no text", i))
		}
		if len(q.Options) != optionsPerQuestion {
			return nil, inference.MalformedResponse(
				fmt.Errorf("question %d has %d options, expected %d", i, len(q.Options), optionsPerQuestion))
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= optionsPerQuestion {
			return nil, inference.MalformedResponse(
				fmt.Errorf("question %d has answer index %d out of range", i, q.CorrectAnswer))
		}
	}

	return batch.Questions, nil
}
