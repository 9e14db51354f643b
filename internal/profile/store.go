package profile

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/krishisahay/backend/internal/models"
	"github.com/lib/pq"
)

// Store persists farm profiles. Each user has at most one.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Get returns the user's profile, or sql.ErrNoRows when none exists.
func (s *Store) Get(ctx context.Context, userID int64) (*models.FarmProfile, error) {
	var p models.FarmProfile
	var crops pq.StringArray
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, farm_name, location, state, district, total_land_acres,
		        irrigation_type, soil_type, current_crops, preferred_language,
		        created_at, updated_at
		 FROM farm_profiles
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT 1`,
		userID,
	).Scan(&p.ID, &p.UserID, &p.FarmName, &p.Location, &p.State, &p.District,
		&p.TotalLandAcres, &p.IrrigationType, &p.SoilType, &crops,
		&p.PreferredLanguage, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.CurrentCrops = crops
	return &p, nil
}

// Save upserts by existence: the first save creates the profile, every save
// after that updates it in place.
func (s *Store) Save(ctx context.Context, userID int64, req models.SaveProfileRequest) (*models.FarmProfile, error) {
	existing, err := s.Get(ctx, userID)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("load farm profile: %w", err)
	}

	crops := req.CurrentCrops
	if crops == nil {
		crops = []string{}
	}
	now := time.Now()

	if existing == nil {
		var p models.FarmProfile
		err := s.db.QueryRowContext(ctx,
			`INSERT INTO farm_profiles
			   (user_id, farm_name, location, state, district, total_land_acres,
			    irrigation_type, soil_type, current_crops, preferred_language,
			    created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
			 RETURNING id, created_at, updated_at`,
			userID, req.FarmName, req.Location, req.State, req.District,
			req.TotalLandAcres, req.IrrigationType, req.SoilType,
			pq.Array(crops), req.PreferredLanguage, now,
		).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("create farm profile: %w", err)
		}
		fillProfile(&p, userID, req, crops)
		return &p, nil
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE farm_profiles
		 SET farm_name = $1, location = $2, state = $3, district = $4,
		     total_land_acres = $5, irrigation_type = $6, soil_type = $7,
		     current_crops = $8, preferred_language = $9, updated_at = $10
		 WHERE id = $11`,
		req.FarmName, req.Location, req.State, req.District, req.TotalLandAcres,
		req.IrrigationType, req.SoilType, pq.Array(crops),
		req.PreferredLanguage, now, existing.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update farm profile: %w", err)
	}

	p := models.FarmProfile{ID: existing.ID, CreatedAt: existing.CreatedAt, UpdatedAt: now}
	fillProfile(&p, userID, req, crops)
	return &p, nil
}

// PurgeUser removes the user's profile rows.
func (s *Store) PurgeUser(ctx context.Context, userID int64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM farm_profiles WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("purge farm profiles: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// PurgeChatHistory removes the user's saved chat turns.
func (s *Store) PurgeChatHistory(ctx context.Context, userID int64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM chat_history WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("purge chat history: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func fillProfile(p *models.FarmProfile, userID int64, req models.SaveProfileRequest, crops []string) {
	p.UserID = userID
	p.FarmName = req.FarmName
	p.Location = req.Location
	p.State = req.State
	p.District = req.District
	p.TotalLandAcres = req.TotalLandAcres
	p.IrrigationType = req.IrrigationType
	p.SoilType = req.SoilType
	p.CurrentCrops = crops
	p.PreferredLanguage = req.PreferredLanguage
}
