package models

import "time"

// MarketPrice is one crop's mandi quote inside a snapshot. Fields are
// optional at the inference boundary; rows missing a crop name are dropped
// during normalization.
type MarketPrice struct {
	Crop          string  `json:"crop"`
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"change_percent"`
	Market        string  `json:"market"`
	State         string  `json:"state"`
}

// MarketPriceSnapshot is ephemeral: replaced wholesale on every fetch and
// never persisted.
type MarketPriceSnapshot struct {
	Prices      []MarketPrice `json:"prices"`
	LastUpdated string        `json:"last_updated,omitempty"`
	FetchedAt   time.Time     `json:"fetched_at"`
}

type MarketPricesResponse struct {
	State     string        `json:"state"`
	Prices    []MarketPrice `json:"prices"`
	States    []string      `json:"states"`
	FetchedAt *time.Time    `json:"fetched_at,omitempty"`
}
