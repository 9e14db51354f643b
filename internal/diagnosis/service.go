package diagnosis

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/krishisahay/backend/internal/inference"
	"github.com/krishisahay/backend/internal/models"
	"github.com/krishisahay/backend/internal/orchestrator"
)

// Outcome is what a completed analysis commits into the user's slot.
// Report and PersistError are filled during the commit, after the
// conditional save.
type Outcome struct {
	Analysis     models.DiagnosisAnalysis
	ImageURL     string
	Report       *models.DiagnosisReport
	PersistError string
}

// ReportStore is the persistence surface the service needs.
type ReportStore interface {
	CreateReport(ctx context.Context, report *models.DiagnosisReport) error
	ListReports(ctx context.Context, userID int64, limit int) ([]models.DiagnosisReport, error)
}

// Service runs crop scans. Each user owns one slot: a new scan supersedes
// any scan still in flight for that user.
type Service struct {
	client inference.Client
	store  ReportStore

	mu    sync.Mutex
	slots map[int64]*orchestrator.Slot[Outcome]
}

func NewService(client inference.Client, store ReportStore) *Service {
	return &Service{
		client: client,
		store:  store,
		slots:  make(map[int64]*orchestrator.Slot[Outcome]),
	}
}

func (s *Service) slot(userID int64) *orchestrator.Slot[Outcome] {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl, ok := s.slots[userID]
	if !ok {
		sl = orchestrator.NewSlot[Outcome]()
		s.slots[userID] = sl
	}
	return sl
}

// Analyze runs the scan for imageURL and commits the outcome. A detected
// disease is saved as a report during the commit; a save failure does not
// fail the analysis, it is surfaced as a warning on the outcome.
func (s *Service) Analyze(ctx context.Context, userID int64, imageURL string) (*Outcome, error) {
	if imageURL == "" {
		return nil, fmt.Errorf("image URL is required")
	}

	task := func(ctx context.Context) (Outcome, error) {
		res, err := s.client.Invoke(ctx, inference.Request{
			Prompt:    analysisPrompt,
			Artifacts: []string{imageURL},
			Schema:    inference.DiagnosisSchema(),
		})
		if err != nil {
			return Outcome{}, err
		}

		var analysis models.DiagnosisAnalysis
		if err := res.Decode(&analysis); err != nil {
			return Outcome{}, err
		}

		return Outcome{Analysis: analysis, ImageURL: imageURL}, nil
	}

	effect := func(o *Outcome) {
		if !o.Analysis.Detected() {
			return
		}
		report := reportFromAnalysis(userID, o.Analysis, o.ImageURL)
		if err := s.store.CreateReport(ctx, report); err != nil {
			log.Printf("WARN: failed to save diagnosis report for user %d: %v", userID, err)
			o.PersistError = "Analysis succeeded but the report could not be saved"
			return
		}
		o.Report = report
	}

	return s.slot(userID).Submit(ctx, task, effect)
}

// State returns the user's current slot snapshot.
func (s *Service) State(userID int64) orchestrator.Snapshot[Outcome] {
	return s.slot(userID).Snapshot()
}

// Reset clears the user's slot. Any in-flight scan is invalidated.
func (s *Service) Reset(userID int64) {
	s.slot(userID).Reset()
}

// History returns the user's saved reports, newest first.
func (s *Service) History(ctx context.Context, userID int64, limit int) ([]models.DiagnosisReport, error) {
	return s.store.ListReports(ctx, userID, limit)
}

func reportFromAnalysis(userID int64, a models.DiagnosisAnalysis, imageURL string) *models.DiagnosisReport {
	report := &models.DiagnosisReport{
		UserID:          userID,
		DiseaseDetected: true,
		Severity:        models.SeverityMild,
		Symptoms:        []string{},
		ImageURL:        imageURL,
	}
	if a.CropName != nil {
		report.CropName = *a.CropName
	}
	if a.DiseaseName != nil {
		report.DiseaseName = *a.DiseaseName
	}
	if a.ConfidencePercentage != nil {
		report.ConfidencePercentage = *a.ConfidencePercentage
	}
	if a.Severity != nil && models.ValidSeverities[models.Severity(*a.Severity)] {
		report.Severity = models.Severity(*a.Severity)
	}
	if len(a.Symptoms) > 0 {
		report.Symptoms = a.Symptoms
	}
	if a.Treatment != nil {
		report.Treatment = *a.Treatment
	}
	if a.Prevention != nil {
		report.Prevention = *a.Prevention
	}
	return report
}
