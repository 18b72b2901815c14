package memory

import (
	"context"
	"sync"
	"testing"

	"carbon-bazar/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogStore_ListSeedOrder(t *testing.T) {
	store := NewCatalogStore(SeedListings(), SeedStats())

	listings, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, listings, 4)

	names := make([]string, 0, 4)
	for _, l := range listings {
		names = append(names, l.ProjectName)
	}
	assert.Equal(t, []string{
		"Mangrove Forest Restoration",
		"Seagrass Meadow Conservation",
		"Salt Marsh Restoration",
		"Coastal Wetland Protection",
	}, names)

	for _, l := range listings {
		assert.True(t, l.Verified)
		assert.NotEmpty(t, l.ImageRef, "every seeded listing carries an asset reference")
	}
}

func TestCatalogStore_GetByID(t *testing.T) {
	store := NewCatalogStore(SeedListings(), SeedStats())
	ctx := context.Background()

	listing, err := store.GetByID(ctx, "listing-3")
	require.NoError(t, err)
	require.NotNil(t, listing)
	assert.Equal(t, "Salt Marsh Restoration", listing.ProjectName)
	assert.Equal(t, "United Kingdom", listing.Location)
	assert.Equal(t, float64(22), listing.PricePerCredit)
	assert.Equal(t, "images/Marsh-shutterstock_1575966571-scaled-e1670426591587-1024x682.jpg", listing.ImageRef)

	missing, err := store.GetByID(ctx, "listing-99")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCatalogStore_DecrementSupply(t *testing.T) {
	store := NewCatalogStore(SeedListings(), SeedStats())
	ctx := context.Background()

	updated, err := store.DecrementSupply(ctx, "listing-1", 100)
	require.NoError(t, err)
	assert.Equal(t, int64(900), updated.AvailableCredits)

	// Supply checks use the new figure.
	_, err = store.DecrementSupply(ctx, "listing-1", 901)
	assert.ErrorIs(t, err, domain.ErrSupplyExhausted)

	// Missing listing -> (nil, nil).
	got, err := store.DecrementSupply(ctx, "listing-99", 10)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCatalogStore_RestoreSupply(t *testing.T) {
	store := NewCatalogStore(SeedListings(), SeedStats())
	ctx := context.Background()

	_, err := store.DecrementSupply(ctx, "listing-2", 200)
	require.NoError(t, err)
	require.NoError(t, store.RestoreSupply(ctx, "listing-2", 200))

	listing, err := store.GetByID(ctx, "listing-2")
	require.NoError(t, err)
	assert.Equal(t, int64(750), listing.AvailableCredits)
}

func TestCatalogStore_Stats(t *testing.T) {
	store := NewCatalogStore(SeedListings(), SeedStats())

	stats, err := store.Stats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 3)
	assert.Equal(t, domain.MarketStat{Label: "Total Credits Traded", Value: "2.5M"}, stats[0])
	assert.Equal(t, domain.MarketStat{Label: "Active Projects", Value: "156"}, stats[1])
	assert.Equal(t, domain.MarketStat{Label: "Avg. Settlement Time", Value: "48h"}, stats[2])
}

func TestCatalogStore_ConcurrentDecrement(t *testing.T) {
	store := NewCatalogStore([]domain.Listing{
		{ID: "listing-1", ProjectName: "Mangrove Forest Restoration", AvailableCredits: 100, Position: 1},
	}, nil)
	ctx := context.Background()

	const workers = 150 // more demand than supply
	var wg sync.WaitGroup
	var mu sync.Mutex
	filled := 0

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if _, err := store.DecrementSupply(ctx, "listing-1", 1); err == nil {
				mu.Lock()
				filled++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, filled)

	listing, err := store.GetByID(ctx, "listing-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), listing.AvailableCredits)
}
