package memory

import (
	"context"
	"sync"

	"carbon-bazar/internal/core/domain"
)

// SeedListings returns the marketplace's launch catalog, in display order.
func SeedListings() []domain.Listing {
	return []domain.Listing{
		{
			ID: "listing-1", ProjectName: "Mangrove Forest Restoration", Location: "Indonesia",
			AvailableCredits: 1000, PricePerCredit: 28, Verified: true,
			ImageRef: "images/mangrove-restoration-guidelines.png", Position: 1,
		},
		{
			ID: "listing-2", ProjectName: "Seagrass Meadow Conservation", Location: "Australia",
			AvailableCredits: 750, PricePerCredit: 25, Verified: true,
			ImageRef: "images/Sanc0209_-_Flickr_-_NOAA_Photo_Library.jpg", Position: 2,
		},
		{
			ID: "listing-3", ProjectName: "Salt Marsh Restoration", Location: "United Kingdom",
			AvailableCredits: 500, PricePerCredit: 22, Verified: true,
			ImageRef: "images/Marsh-shutterstock_1575966571-scaled-e1670426591587-1024x682.jpg", Position: 3,
		},
		{
			ID: "listing-4", ProjectName: "Coastal Wetland Protection", Location: "Mexico",
			AvailableCredits: 800, PricePerCredit: 24, Verified: true,
			ImageRef: "images/Coasts-and-Deltas-Healthy-Wetlands.jpg", Position: 4,
		},
	}
}

// SeedStats returns the marketplace headline figures.
func SeedStats() []domain.MarketStat {
	return []domain.MarketStat{
		{Label: "Total Credits Traded", Value: "2.5M"},
		{Label: "Active Projects", Value: "156"},
		{Label: "Avg. Settlement Time", Value: "48h"},
	}
}

// CatalogStore keeps listings in memory. Listing identity and order are
// fixed after construction; only available supply changes.
type CatalogStore struct {
	mu       sync.RWMutex
	order    []string
	listings map[string]*domain.Listing
	stats    []domain.MarketStat
}

// NewCatalogStore builds a store seeded with the given listings and stats.
func NewCatalogStore(listings []domain.Listing, stats []domain.MarketStat) *CatalogStore {
	s := &CatalogStore{
		order:    make([]string, 0, len(listings)),
		listings: make(map[string]*domain.Listing, len(listings)),
		stats:    stats,
	}
	for i := range listings {
		l := listings[i]
		s.order = append(s.order, l.ID)
		s.listings[l.ID] = &l
	}
	return s
}

func (s *CatalogStore) List(_ context.Context) ([]domain.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Listing, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.listings[id])
	}
	return out, nil
}

func (s *CatalogStore) GetByID(_ context.Context, id string) (*domain.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	listing, ok := s.listings[id]
	if !ok {
		return nil, nil
	}
	cp := *listing
	return &cp, nil
}

func (s *CatalogStore) DecrementSupply(_ context.Context, id string, credits int64) (*domain.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	listing, ok := s.listings[id]
	if !ok {
		return nil, nil
	}
	if !listing.CanFill(credits) {
		return nil, domain.ErrSupplyExhausted
	}

	// Snapshot-replace keeps previously handed-out copies untouched.
	updated := listing.WithSupply(listing.AvailableCredits - credits)
	s.listings[id] = updated
	cp := *updated
	return &cp, nil
}

func (s *CatalogStore) RestoreSupply(_ context.Context, id string, credits int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	listing, ok := s.listings[id]
	if !ok {
		return nil
	}
	s.listings[id] = listing.WithSupply(listing.AvailableCredits + credits)
	return nil
}

func (s *CatalogStore) Stats(_ context.Context) ([]domain.MarketStat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.MarketStat, len(s.stats))
	copy(out, s.stats)
	return out, nil
}
