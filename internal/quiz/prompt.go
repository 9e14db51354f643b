package quiz

import (
	"fmt"

	"github.com/krishisahay/backend/internal/models"
)

const questionsPerQuiz = 5
const optionsPerQuestion = 4

func generationPrompt(category models.QuizCategory) string {
	return fmt.Sprintf(`Generate %d multiple-choice quiz questions about %s for Indian farmers.

Each question must have exactly %d answer options, a correctAnswer index (0-%d) pointing at the right option, and a short explanation of why that answer is correct.

Questions should be practical and relevant to farming in India. Mix difficulty levels. Do not repeat questions.`,
		questionsPerQuiz, models.CategoryName(category), optionsPerQuestion, optionsPerQuestion-1)
}
