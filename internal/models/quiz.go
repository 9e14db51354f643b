package models

import "time"

type QuizCategory string

const (
	CategoryCropManagement  QuizCategory = "crop_management"
	CategoryPestControl     QuizCategory = "pest_control"
	CategoryIrrigation      QuizCategory = "irrigation"
	CategorySoilHealth      QuizCategory = "soil_health"
	CategoryMarketKnowledge QuizCategory = "market_knowledge"
	CategoryGeneral         QuizCategory = "general"
)

// CategoryInfo is a selectable quiz topic.
type CategoryInfo struct {
	ID   QuizCategory `json:"id"`
	Name string       `json:"name"`
	Icon string       `json:"icon"`
}

// QuizCategories is the fixed topic catalog, in display order.
var QuizCategories = []CategoryInfo{
	{ID: CategoryCropManagement, Name: "Crop Management", Icon: "🌾"},
	{ID: CategoryPestControl, Name: "Pest Control", Icon: "🐛"},
	{ID: CategoryIrrigation, Name: "Irrigation", Icon: "💧"},
	{ID: CategorySoilHealth, Name: "Soil Health", Icon: "🌱"},
	{ID: CategoryMarketKnowledge, Name: "Market Knowledge", Icon: "📈"},
	{ID: CategoryGeneral, Name: "General Farming", Icon: "🚜"},
}

var ValidQuizCategories = map[QuizCategory]bool{
	CategoryCropManagement:  true,
	CategoryPestControl:     true,
	CategoryIrrigation:      true,
	CategorySoilHealth:      true,
	CategoryMarketKnowledge: true,
	CategoryGeneral:         true,
}

// CategoryName returns the display name for a category ID.
func CategoryName(c QuizCategory) string {
	for _, info := range QuizCategories {
		if info.ID == c {
			return info.Name
		}
	}
	return string(c)
}

type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// QuizScore is the persisted outcome of one completed quiz session.
type QuizScore struct {
	ID             int64        `json:"id"`
	UserID         int64        `json:"user_id"`
	Category       QuizCategory `json:"category"`
	Score          int          `json:"score"`
	TotalQuestions int          `json:"total_questions"`
	Difficulty     string       `json:"difficulty"`
	CreatedAt      time.Time    `json:"created_at"`
}

// ── Request/Response Types ──────────────────────────────

type StartQuizRequest struct {
	Category QuizCategory `json:"category"`
}

type SelectAnswerRequest struct {
	Answer int `json:"answer"`
}

// QuizSessionView is what the client sees of a running session. The correct
// answer and explanation are withheld until the current question is revealed.
type QuizSessionView struct {
	Category       QuizCategory `json:"category"`
	Phase          string       `json:"phase"`
	TotalQuestions int          `json:"total_questions"`
	CurrentIndex   int          `json:"current_index"`
	Question       string       `json:"question,omitempty"`
	Options        []string     `json:"options,omitempty"`
	SelectedAnswer *int         `json:"selected_answer,omitempty"`
	CorrectAnswer  *int         `json:"correct_answer,omitempty"`
	Explanation    string       `json:"explanation,omitempty"`
	Score          int          `json:"score"`
	ScoreSaveError string       `json:"score_save_error,omitempty"`
}

type QuizScoreListResponse struct {
	Scores []QuizScore `json:"scores"`
}
