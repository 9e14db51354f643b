package models

import "time"

type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
	SeverityCritical Severity = "critical"
)

var ValidSeverities = map[Severity]bool{
	SeverityMild:     true,
	SeverityModerate: true,
	SeveritySevere:   true,
	SeverityCritical: true,
}

// DiagnosisAnalysis is the decoded inference payload for a crop scan.
// Every field is optional at the boundary: the service may omit any of
// them, and consumers must handle the nil case.
type DiagnosisAnalysis struct {
	DiseaseDetected      *bool    `json:"disease_detected"`
	CropName             *string  `json:"crop_name"`
	DiseaseName          *string  `json:"disease_name"`
	ConfidencePercentage *float64 `json:"confidence_percentage"`
	Severity             *string  `json:"severity"`
	Symptoms             []string `json:"symptoms"`
	Treatment            *string  `json:"treatment"`
	Prevention           *string  `json:"prevention"`
}

// Detected reports whether the analysis affirmatively found a disease.
func (a DiagnosisAnalysis) Detected() bool {
	return a.DiseaseDetected != nil && *a.DiseaseDetected
}

// DiagnosisReport is the persisted record of a positive scan. Created only
// when the analysis detected a disease; never updated afterwards.
type DiagnosisReport struct {
	ID                   int64     `json:"id"`
	UserID               int64     `json:"user_id"`
	DiseaseDetected      bool      `json:"disease_detected"`
	CropName             string    `json:"crop_name"`
	DiseaseName          string    `json:"disease_name"`
	ConfidencePercentage float64   `json:"confidence_percentage"`
	Severity             Severity  `json:"severity"`
	Symptoms             []string  `json:"symptoms"`
	Treatment            string    `json:"treatment"`
	Prevention           string    `json:"prevention"`
	ImageURL             string    `json:"image_url"`
	CreatedAt            time.Time `json:"created_at"`
}

// ── Request/Response Types ──────────────────────────────

type AnalyzeRequest struct {
	ImageURL string `json:"image_url"`
}

type AnalyzeResponse struct {
	State        string             `json:"state"`
	Analysis     *DiagnosisAnalysis `json:"analysis,omitempty"`
	Report       *DiagnosisReport   `json:"report,omitempty"`
	PersistError string             `json:"persist_error,omitempty"`
}

type DiagnosisHistoryResponse struct {
	Reports []DiagnosisReport `json:"reports"`
}
