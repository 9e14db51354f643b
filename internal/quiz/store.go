package quiz

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/krishisahay/backend/internal/models"
)

// Store persists completed quiz scores.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateScore(ctx context.Context, score *models.QuizScore) error {
	score.CreatedAt = time.Now()
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO quiz_scores (user_id, category, score, total_questions, difficulty, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		score.UserID, score.Category, score.Score, score.TotalQuestions,
		score.Difficulty, score.CreatedAt,
	).Scan(&score.ID)
	if err != nil {
		return fmt.Errorf("insert quiz score: %w", err)
	}
	return nil
}

func (s *Store) ListScores(ctx context.Context, userID int64, limit int) ([]models.QuizScore, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, category, score, total_questions, difficulty, created_at
		 FROM quiz_scores
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list quiz scores: %w", err)
	}
	defer rows.Close()

	scores := []models.QuizScore{}
	for rows.Next() {
		var sc models.QuizScore
		if err := rows.Scan(&sc.ID, &sc.UserID, &sc.Category, &sc.Score,
			&sc.TotalQuestions, &sc.Difficulty, &sc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan quiz score: %w", err)
		}
		scores = append(scores, sc)
	}
	return scores, rows.Err()
}

// PurgeUser removes every score belonging to the user.
func (s *Store) PurgeUser(ctx context.Context, userID int64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM quiz_scores WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("purge quiz scores: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
