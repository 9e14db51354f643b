package diagnosis

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/krishisahay/backend/internal/models"
	"github.com/lib/pq"
)

// Store persists diagnosis reports.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateReport inserts a new report and fills its ID and CreatedAt.
func (s *Store) CreateReport(ctx context.Context, report *models.DiagnosisReport) error {
	report.CreatedAt = time.Now()
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO diagnosis_reports
		   (user_id, disease_detected, crop_name, disease_name,
		    confidence_percentage, severity, symptoms, treatment, prevention,
		    image_url, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id`,
		report.UserID, report.DiseaseDetected, report.CropName, report.DiseaseName,
		report.ConfidencePercentage, report.Severity, pq.Array(report.Symptoms),
		report.Treatment, report.Prevention, report.ImageURL, report.CreatedAt,
	).Scan(&report.ID)
	if err != nil {
		return fmt.Errorf("insert diagnosis report: %w", err)
	}
	return nil
}

// ListReports returns the user's most recent reports, newest first.
func (s *Store) ListReports(ctx context.Context, userID int64, limit int) ([]models.DiagnosisReport, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, disease_detected, crop_name, disease_name,
		        confidence_percentage, severity, symptoms, treatment, prevention,
		        image_url, created_at
		 FROM diagnosis_reports
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list diagnosis reports: %w", err)
	}
	defer rows.Close()

	reports := []models.DiagnosisReport{}
	for rows.Next() {
		var r models.DiagnosisReport
		var symptoms pq.StringArray
		if err := rows.Scan(
			&r.ID, &r.UserID, &r.DiseaseDetected, &r.CropName, &r.DiseaseName,
			&r.ConfidencePercentage, &r.Severity, &symptoms, &r.Treatment,
			&r.Prevention, &r.ImageURL, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan diagnosis report: %w", err)
		}
		r.Symptoms = symptoms
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// PurgeUser removes every report belonging to the user. Returns the number
// of rows removed.
func (s *Store) PurgeUser(ctx context.Context, userID int64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM diagnosis_reports WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("purge diagnosis reports: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
