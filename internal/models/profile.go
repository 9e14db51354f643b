package models

import "time"

// FarmProfile is a singleton-per-user record: created on first save,
// updated in place on every save after that.
type FarmProfile struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"user_id"`
	FarmName          string    `json:"farm_name"`
	Location          string    `json:"location"`
	State             string    `json:"state"`
	District          string    `json:"district"`
	TotalLandAcres    float64   `json:"total_land_acres"`
	IrrigationType    string    `json:"irrigation_type"`
	SoilType          string    `json:"soil_type"`
	CurrentCrops      []string  `json:"current_crops"`
	PreferredLanguage string    `json:"preferred_language"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type SaveProfileRequest struct {
	FarmName          string   `json:"farm_name"`
	Location          string   `json:"location"`
	State             string   `json:"state"`
	District          string   `json:"district"`
	TotalLandAcres    float64  `json:"total_land_acres"`
	IrrigationType    string   `json:"irrigation_type"`
	SoilType          string   `json:"soil_type"`
	CurrentCrops      []string `json:"current_crops"`
	PreferredLanguage string   `json:"preferred_language"`
}

// ── Account Deletion ────────────────────────────────────

// DeleteAccountConfirmation is the phrase the client must echo before any
// account data is removed.
const DeleteAccountConfirmation = "DELETE"

type DeleteAccountRequest struct {
	Confirm string `json:"confirm"`
}

// DeleteAccountResponse reports the aggregate outcome of a best-effort
// teardown. Failures list the records that could not be removed; the rest
// are gone regardless.
type DeleteAccountResponse struct {
	Deleted   int      `json:"deleted"`
	Failures  []string `json:"failures,omitempty"`
	LoggedOut bool     `json:"logged_out"`
}
