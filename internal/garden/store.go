// Package garden owns the authenticated user's garden state: plants,
// unlocked scenes, aggregate stats, and the seed inventory.
//
// The server is the source of truth. Local mutations (optimistic appends and
// the simulated planting fallback) are provisional and are superseded
// wholesale by the next successful fetch, with one exception: the unlocked
// scene set only ever grows within a session.
package garden

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/taskbloom/taskbloom/internal/apiclient"
	"github.com/taskbloom/taskbloom/internal/dependencies/clock"
	"github.com/taskbloom/taskbloom/internal/model"
)

// SimulatedPlantReward is the coin grant applied when planting is simulated
// locally because the server lacks the endpoint
const SimulatedPlantReward = 5

// Session is the slice of the session store the garden store depends on
type Session interface {
	IsAuthenticated() bool
	Subscribe(fn func())
}

// PlantResult is the response to a planting request
type PlantResult struct {
	Plant   *model.Plant `json:"plant"`
	Message string       `json:"message,omitempty"`
	// Simulated marks results produced by the local fallback rather than
	// the server
	Simulated bool `json:"-"`
}

// Store is the garden store
type Store struct {
	api    *apiclient.Client
	sess   Session
	clock  clock.Clock
	logger *slog.Logger

	mu        sync.RWMutex
	garden    *model.Garden
	stats     *model.GardenStats
	inventory *model.Inventory
	loading   bool
}

// New creates a garden store subscribed to the session store's auth-state
// changes: any change triggers a refetch (which no-ops when logged out).
func New(api *apiclient.Client, sess Session, clk clock.Clock, logger *slog.Logger) *Store {
	s := &Store{
		api:    api,
		sess:   sess,
		clock:  clk,
		logger: logger,
	}
	sess.Subscribe(func() {
		if err := s.FetchGarden(context.Background()); err != nil {
			logger.Warn("garden refresh after auth change failed", slog.String("error", err.Error()))
		}
	})
	return s
}

// Garden returns a copy of the current garden document, or nil
func (s *Store) Garden() *model.Garden {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.garden == nil {
		return nil
	}
	g := *s.garden
	g.Plants = append([]model.Plant(nil), s.garden.Plants...)
	g.UnlockedScenes = append([]string(nil), s.garden.UnlockedScenes...)
	g.Decorations = append([]string(nil), s.garden.Decorations...)
	return &g
}

// Stats returns a copy of the current aggregate stats, or nil
func (s *Store) Stats() *model.GardenStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.stats == nil {
		return nil
	}
	st := *s.stats
	return &st
}

// Inventory returns a copy of the current inventory, or nil
func (s *Store) Inventory() *model.Inventory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.inventory == nil {
		return nil
	}
	inv := *s.inventory
	inv.Seeds = append([]string(nil), s.inventory.Seeds...)
	return &inv
}

// Loading reports whether a fetch is in flight
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

type gardenResponse struct {
	Garden    *model.Garden      `json:"garden"`
	Stats     *model.GardenStats `json:"stats"`
	Inventory *model.Inventory   `json:"inventory"`
}

// FetchGarden fetches garden, stats, and inventory in one response and
// replaces all three wholesale. When unauthenticated it returns immediately
// without issuing a request. On a 401 all three are cleared; any other
// failure leaves prior state untouched and returns the error.
func (s *Store) FetchGarden(ctx context.Context) error {
	if !s.sess.IsAuthenticated() {
		s.logger.Debug("not authenticated, skipping garden fetch")
		return nil
	}

	s.setLoading(true)
	defer s.setLoading(false)

	var resp gardenResponse
	if err := s.api.Get(ctx, "/api/garden", &resp); err != nil {
		if apiclient.IsUnauthorized(err) {
			s.mu.Lock()
			s.garden = nil
			s.stats = nil
			s.inventory = nil
			s.mu.Unlock()
		}
		s.logger.Warn("failed to fetch garden", slog.String("error", err.Error()))
		return err
	}

	s.mu.Lock()
	if resp.Garden != nil && s.garden != nil {
		// Unlocked scenes never shrink client-side
		resp.Garden.UnlockedScenes = unionScenes(s.garden.UnlockedScenes, resp.Garden.UnlockedScenes)
	}
	s.garden = resp.Garden
	s.stats = resp.Stats
	s.inventory = resp.Inventory
	s.mu.Unlock()

	return nil
}

type plantRequest struct {
	Species  string         `json:"species"`
	Position model.Position `json:"position"`
}

// PlantNewFlower requests server-side planting of species at position. On
// success the returned plant (if any) is appended locally and a full fetch
// reconciles authoritative stats. A 404 means the server lacks the endpoint
// and planting degrades to a local simulation; any other failure propagates.
func (s *Store) PlantNewFlower(ctx context.Context, species string, position model.Position) (*PlantResult, error) {
	var resp PlantResult
	err := s.api.Post(ctx, "/api/garden/plant", plantRequest{Species: species, Position: position}, &resp)
	if err != nil {
		if apiclient.IsNotFound(err) {
			s.logger.Info("planting endpoint unavailable, simulating locally",
				slog.String("species", species))
			return s.SimulateLocalPlanting(species, position), nil
		}
		s.logger.Warn("failed to plant flower", slog.String("error", err.Error()))
		return nil, err
	}

	if resp.Plant != nil {
		s.AddPlant(*resp.Plant)
	}

	// Reconcile stats with the server; fetch failures are already logged and
	// do not undo the planting
	_ = s.FetchGarden(ctx)

	return &resp, nil
}

// AddPlant appends a plant to the local garden, preserving all other garden
// fields
func (s *Store) AddPlant(plant model.Plant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.garden == nil {
		s.garden = &model.Garden{}
	}
	s.garden.Plants = append(s.garden.Plants, plant)
}

// SimulateLocalPlanting constructs a plant record client-side and applies
// the fixed reward to local stats. It exists so the reward loop keeps
// working when the server has no planting endpoint; an authoritative fetch
// supersedes its effects.
func (s *Store) SimulateLocalPlanting(species string, position model.Position) *PlantResult {
	now := s.clock.Now()
	plant := model.Plant{
		ID:          strconv.FormatInt(now.UnixMilli(), 10),
		Species:     species,
		Position:    position,
		PlantedAt:   now,
		GrowthStage: 1,
	}

	s.AddPlant(plant)

	s.mu.Lock()
	if s.stats == nil {
		s.stats = &model.GardenStats{}
	}
	s.stats.Coins += SimulatedPlantReward
	s.stats.TotalPlants++
	s.mu.Unlock()

	return &PlantResult{Plant: &plant, Message: "Flower planted locally", Simulated: true}
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func unionScenes(prev, next []string) []string {
	seen := make(map[string]bool, len(prev))
	out := append([]string(nil), prev...)
	for _, sc := range prev {
		seen[sc] = true
	}
	for _, sc := range next {
		if !seen[sc] {
			seen[sc] = true
			out = append(out, sc)
		}
	}
	return out
}
