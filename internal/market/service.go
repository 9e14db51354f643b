package market

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/krishisahay/backend/internal/inference"
	"github.com/krishisahay/backend/internal/models"
	"github.com/krishisahay/backend/internal/orchestrator"
)

// Service serves the mandi price board. The snapshot is shared by every
// user and replaced wholesale on each fetch; one slot for the whole
// process means concurrent refreshes collapse to the newest one.
type Service struct {
	client inference.Client
	slot   *orchestrator.Slot[models.MarketPriceSnapshot]
}

func NewService(client inference.Client) *Service {
	return &Service{
		client: client,
		slot:   orchestrator.NewSlot[models.MarketPriceSnapshot](),
	}
}

// Prices returns the board filtered by search text and state. A fetch runs
// when no snapshot exists yet or when refresh is set; otherwise the cached
// snapshot is filtered as-is.
func (s *Service) Prices(ctx context.Context, search, state string, refresh bool) (models.MarketPricesResponse, error) {
	snap := s.slot.Snapshot()

	if refresh || snap.Result == nil {
		if _, err := s.slot.Submit(ctx, s.fetch, nil); err != nil {
			// A stale board beats an empty screen: serve the previous
			// snapshot when the refresh fails and one exists.
			if snap.Result == nil {
				return models.MarketPricesResponse{}, err
			}
		}
		snap = s.slot.Snapshot()
	}

	return buildResponse(snap, search, state), nil
}

// State returns the lifecycle snapshot of the shared price slot.
func (s *Service) State() orchestrator.Snapshot[models.MarketPriceSnapshot] {
	return s.slot.Snapshot()
}

func (s *Service) fetch(ctx context.Context) (models.MarketPriceSnapshot, error) {
	res, err := s.client.Invoke(ctx, inference.Request{
		Prompt:               feedPrompt,
		AllowExternalContext: true,
		Schema:               inference.PriceFeedSchema(),
	})
	if err != nil {
		return models.MarketPriceSnapshot{}, err
	}

	var snap models.MarketPriceSnapshot
	if err := res.Decode(&snap); err != nil {
		return models.MarketPriceSnapshot{}, err
	}

	snap.Prices = normalize(snap.Prices)
	snap.FetchedAt = time.Now()
	return snap, nil
}

// normalize drops rows without a crop name. Everything else is served
// as the feed reported it.
func normalize(prices []models.MarketPrice) []models.MarketPrice {
	out := make([]models.MarketPrice, 0, len(prices))
	for _, p := range prices {
		if strings.TrimSpace(p.Crop) == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func buildResponse(snap orchestrator.Snapshot[models.MarketPriceSnapshot], search, state string) models.MarketPricesResponse {
	resp := models.MarketPricesResponse{
		State:  string(snap.Phase),
		Prices: []models.MarketPrice{},
		States: []string{},
	}
	if snap.Result == nil {
		return resp
	}

	fetchedAt := snap.Result.FetchedAt
	resp.FetchedAt = &fetchedAt
	resp.States = distinctStates(snap.Result.Prices)

	search = strings.ToLower(strings.TrimSpace(search))
	for _, p := range snap.Result.Prices {
		if search != "" && !strings.Contains(strings.ToLower(p.Crop), search) {
			continue
		}
		if state != "" && !strings.EqualFold(p.State, state) {
			continue
		}
		resp.Prices = append(resp.Prices, p)
	}
	return resp
}

func distinctStates(prices []models.MarketPrice) []string {
	seen := map[string]bool{}
	states := []string{}
	for _, p := range prices {
		if p.State == "" || seen[p.State] {
			continue
		}
		seen[p.State] = true
		states = append(states, p.State)
	}
	sort.Strings(states)
	return states
}
