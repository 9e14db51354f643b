package market

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/krishisahay/backend/internal/inference"
	"github.com/krishisahay/backend/internal/orchestrator"
)

// feedClient serves a configurable price payload and counts fetches.
type feedClient struct {
	payload atomic.Value
	fail    atomic.Bool
	fetches atomic.Int32
}

func newFeedClient(payload string) *feedClient {
	c := &feedClient{}
	c.payload.Store(payload)
	return c
}

func (c *feedClient) Invoke(ctx context.Context, req inference.Request) (*inference.Result, error) {
	c.fetches.Add(1)
	if c.fail.Load() {
		return nil, inference.ServiceUnavailable(fmt.Errorf("feed outage"))
	}
	return &inference.Result{
		Content: json.RawMessage(c.payload.Load().(string)),
		Model:   "feed",
	}, nil
}

func (c *feedClient) ModelID() string { return "feed" }

const boardPayload = `{
	"prices": [
		{"crop": "Wheat", "price": 2350, "change_percent": 1.2, "market": "Khanna", "state": "Punjab"},
		{"crop": "Cotton", "price": 7100, "change_percent": 2.5, "market": "Rajkot", "state": "Gujarat"},
		{"crop": "Groundnut", "price": 6300, "change_percent": 1.7, "market": "Junagadh", "state": "Gujarat"},
		{"crop": "", "price": 999, "change_percent": 0, "market": "Nowhere", "state": "Nowhere"}
	],
	"last_updated": "2026-08-30"
}`

func TestPrices_FirstCallFetchesAndNormalizes(t *testing.T) {
	client := newFeedClient(boardPayload)
	svc := NewService(client)

	resp, err := svc.Prices(context.Background(), "", "", false)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(resp.Prices) != 3 {
		t.Errorf("expected 3 rows after dropping the nameless one, got %d", len(resp.Prices))
	}
	if resp.State != string(orchestrator.PhaseSucceeded) {
		t.Errorf("state %q, expected succeeded", resp.State)
	}
	if resp.FetchedAt == nil {
		t.Error("expected a fetch timestamp")
	}
	if client.fetches.Load() != 1 {
		t.Errorf("expected 1 fetch, got %d", client.fetches.Load())
	}
}

func TestPrices_CachedSnapshotServedWithoutRefetch(t *testing.T) {
	client := newFeedClient(boardPayload)
	svc := NewService(client)

	if _, err := svc.Prices(context.Background(), "", "", false); err != nil {
		t.Fatalf("warm-up fetch: %v", err)
	}
	if _, err := svc.Prices(context.Background(), "", "", false); err != nil {
		t.Fatalf("cached read: %v", err)
	}

	if client.fetches.Load() != 1 {
		t.Errorf("cached read must not refetch: %d fetches", client.fetches.Load())
	}
}

func TestPrices_RefreshReplacesSnapshotWholesale(t *testing.T) {
	client := newFeedClient(boardPayload)
	svc := NewService(client)

	if _, err := svc.Prices(context.Background(), "", "", false); err != nil {
		t.Fatalf("warm-up fetch: %v", err)
	}

	client.payload.Store(`{
		"prices": [{"crop": "Onion", "price": 1800, "change_percent": -4.5, "market": "Lasalgaon", "state": "Maharashtra"}],
		"last_updated": "2026-08-31"
	}`)

	resp, err := svc.Prices(context.Background(), "", "", true)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if len(resp.Prices) != 1 || resp.Prices[0].Crop != "Onion" {
		t.Errorf("old rows survived the refresh: %+v", resp.Prices)
	}
	if client.fetches.Load() != 2 {
		t.Errorf("expected 2 fetches, got %d", client.fetches.Load())
	}
}

func TestPrices_SearchAndStateFilters(t *testing.T) {
	svc := NewService(newFeedClient(boardPayload))

	bySearch, err := svc.Prices(context.Background(), "cot", "", false)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(bySearch.Prices) != 1 || bySearch.Prices[0].Crop != "Cotton" {
		t.Errorf("search filter: %+v", bySearch.Prices)
	}

	byState, err := svc.Prices(context.Background(), "", "gujarat", false)
	if err != nil {
		t.Fatalf("state filter: %v", err)
	}
	if len(byState.Prices) != 2 {
		t.Errorf("state filter: expected 2 Gujarat rows, got %d", len(byState.Prices))
	}

	// Filters narrow the view; the state list always covers the full board.
	want := []string{"Gujarat", "Punjab"}
	if len(byState.States) != len(want) {
		t.Fatalf("states %v, expected %v", byState.States, want)
	}
	for i, s := range want {
		if byState.States[i] != s {
			t.Errorf("states[%d] = %q, expected %q", i, byState.States[i], s)
		}
	}
}

func TestPrices_FailedRefreshServesStaleBoard(t *testing.T) {
	client := newFeedClient(boardPayload)
	svc := NewService(client)

	if _, err := svc.Prices(context.Background(), "", "", false); err != nil {
		t.Fatalf("warm-up fetch: %v", err)
	}

	client.fail.Store(true)
	resp, err := svc.Prices(context.Background(), "", "", true)
	if err != nil {
		t.Fatalf("stale board should be served, got: %v", err)
	}
	if len(resp.Prices) != 3 {
		t.Errorf("expected the previous 3 rows, got %d", len(resp.Prices))
	}
	if resp.State != string(orchestrator.PhaseFailed) {
		t.Errorf("state %q, expected failed", resp.State)
	}
}

func TestPrices_FirstFetchFailureReturnsError(t *testing.T) {
	client := newFeedClient(boardPayload)
	client.fail.Store(true)
	svc := NewService(client)

	if _, err := svc.Prices(context.Background(), "", "", false); err == nil {
		t.Fatal("expected error with no snapshot to fall back on")
	}
}
