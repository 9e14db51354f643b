package inference

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateResponse_AcceptsValidDiagnosis(t *testing.T) {
	payload := json.RawMessage(`{
		"disease_detected": true,
		"crop_name": "Rice",
		"confidence_percentage": 72.5,
		"severity": "severe",
		"symptoms": ["brown spots"]
	}`)

	require.NoError(t, validateResponse(DiagnosisSchema(), payload))
}

func TestValidateResponse_FieldsAreOptional(t *testing.T) {
	require.NoError(t, validateResponse(DiagnosisSchema(), json.RawMessage(`{}`)))
}

func TestValidateResponse_RejectsWrongType(t *testing.T) {
	payload := json.RawMessage(`{"disease_detected": "yes"}`)

	err := validateResponse(DiagnosisSchema(), payload)
	require.Error(t, err)
	assert.Equal(t, KindMalformedResponse, KindOf(err))
}

func TestValidateResponse_RejectsBadSeverity(t *testing.T) {
	payload := json.RawMessage(`{"severity": "catastrophic"}`)

	err := validateResponse(DiagnosisSchema(), payload)
	require.Error(t, err)
	assert.Equal(t, KindMalformedResponse, KindOf(err))
}

func TestValidateResponse_RejectsInvalidJSON(t *testing.T) {
	err := validateResponse(QuizSchema(), json.RawMessage(`{"questions": [`))
	require.Error(t, err)
	assert.Equal(t, KindMalformedResponse, KindOf(err))
}

func TestValidateResponse_AcceptsQuizBatch(t *testing.T) {
	payload := json.RawMessage(`{"questions": [
		{"question": "Q1", "options": ["a","b","c","d"], "correctAnswer": 2, "explanation": "because"}
	]}`)

	require.NoError(t, validateResponse(QuizSchema(), payload))
}

func TestValidateResponse_AcceptsPriceFeed(t *testing.T) {
	payload := json.RawMessage(`{
		"prices": [{"crop": "Wheat", "price": 2300, "change_percent": -0.5, "market": "Khanna", "state": "Punjab"}],
		"last_updated": "2026-08-30"
	}`)

	require.NoError(t, validateResponse(PriceFeedSchema(), payload))
}
