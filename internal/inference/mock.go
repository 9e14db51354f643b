package inference

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// MockClient serves canned payloads for local development. It keys off the
// request's contract name, so every flow works without an API key.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Invoke(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, MalformedResponse(fmt.Errorf("empty prompt"))
	}

	var payload string
	switch {
	case req.Schema == nil:
		text, _ := json.Marshal("[Mock] For kharif sowing in black soil, consider short-duration pulses. Expect seed cost around ₹1,200 per acre.")
		payload = string(text)
	case req.Schema.Name == "crop-diagnosis":
		payload = mockDiagnosisJSON()
	case req.Schema.Name == "quiz-questions":
		payload = mockQuizJSON()
	case req.Schema.Name == "price-feed":
		payload = mockPriceFeedJSON()
	default:
		return nil, MalformedResponse(fmt.Errorf("no mock payload for contract %q", req.Schema.Name))
	}

	content := json.RawMessage(payload)
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}

	return &Result{
		Content: content,
		Model:   "mock",
		Usage:   Usage{InputTokens: 800, OutputTokens: 600},
	}, nil
}

func (m *MockClient) ModelID() string { return "mock" }

func mockDiagnosisJSON() string {
	return `{
		"disease_detected": true,
		"crop_name": "Tomato",
		"disease_name": "Early Blight",
		"confidence_percentage": 88,
		"severity": "moderate",
		"symptoms": ["Dark concentric spots on lower leaves", "Yellowing around lesions"],
		"treatment": "[Mock] Spray mancozeb 75% WP at 2g per litre at 10-day intervals.",
		"prevention": "[Mock] Rotate with non-solanaceous crops and avoid overhead irrigation."
	}`
}

func mockQuizJSON() string {
	questions := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		q := fmt.Sprintf(`{
			"question": "[Mock] Practice question %d: which option is the recommended choice for this farming scenario?",
			"options": ["Option A for question %d", "Option B for question %d", "Option C for question %d", "Option D for question %d"],
			"correctAnswer": %d,
			"explanation": "[Mock] The recommended practice balances cost and yield for question %d."
		}`, i+1, i+1, i+1, i+1, i+1, i%4, i+1)
		questions = append(questions, q)
	}
	return fmt.Sprintf(`{"questions":[%s]}`, strings.Join(questions, ","))
}

func mockPriceFeedJSON() string {
	crops := []struct {
		name, market, state string
		price, change       float64
	}{
		{"Wheat", "Khanna", "Punjab", 2350, 1.2},
		{"Paddy", "Karnal", "Haryana", 2200, -0.8},
		{"Cotton", "Rajkot", "Gujarat", 7100, 2.5},
		{"Soybean", "Indore", "Madhya Pradesh", 4600, -1.1},
		{"Mustard", "Alwar", "Rajasthan", 5400, 0.4},
		{"Maize", "Davangere", "Karnataka", 2100, 0.9},
		{"Tur", "Latur", "Maharashtra", 9800, 3.2},
		{"Onion", "Lasalgaon", "Maharashtra", 1800, -4.5},
		{"Potato", "Agra", "Uttar Pradesh", 1200, -2.0},
		{"Tomato", "Kolar", "Karnataka", 1500, 6.3},
		{"Groundnut", "Junagadh", "Gujarat", 6300, 1.7},
		{"Sugarcane", "Muzaffarnagar", "Uttar Pradesh", 340, 0.0},
		{"Turmeric", "Nizamabad", "Telangana", 13500, 5.1},
		{"Chana", "Bikaner", "Rajasthan", 5600, 0.6},
		{"Jowar", "Solapur", "Maharashtra", 3100, -0.3},
	}

	rows := make([]string, 0, len(crops))
	for _, c := range crops {
		rows = append(rows, fmt.Sprintf(
			`{"crop":%q,"price":%.0f,"change_percent":%.1f,"market":%q,"state":%q}`,
			c.name, c.price, c.change, c.market, c.state))
	}
	return fmt.Sprintf(`{"prices":[%s],"last_updated":"today"}`, strings.Join(rows, ","))
}
