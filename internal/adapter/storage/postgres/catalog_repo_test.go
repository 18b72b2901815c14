package postgres

import (
	"context"
	"testing"

	"carbon-bazar/internal/core/domain"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listingColumns() []string {
	return []string{"id", "project_name", "location", "available_credits", "price_per_credit", "verified", "image_ref", "position"}
}

func mangroveListing() *domain.Listing {
	return &domain.Listing{
		ID:               "listing-1",
		ProjectName:      "Mangrove Forest Restoration",
		Location:         "Indonesia",
		AvailableCredits: 1000,
		PricePerCredit:   28,
		Verified:         true,
		ImageRef:         "images/mangrove-restoration-guidelines.png",
		Position:         1,
	}
}

func listingRow(l *domain.Listing) *pgxmock.Rows {
	return pgxmock.NewRows(listingColumns()).AddRow(
		l.ID, l.ProjectName, l.Location, l.AvailableCredits,
		l.PricePerCredit, l.Verified, l.ImageRef, l.Position,
	)
}

func TestCatalogRepo_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCatalogRepo(mock)

	rows := pgxmock.NewRows(listingColumns()).
		AddRow("listing-1", "Mangrove Forest Restoration", "Indonesia", int64(1000), float64(28), true, "images/mangrove-restoration-guidelines.png", 1).
		AddRow("listing-2", "Seagrass Meadow Conservation", "Australia", int64(750), float64(25), true, "images/Sanc0209_-_Flickr_-_NOAA_Photo_Library.jpg", 2)

	mock.ExpectQuery("SELECT .+ FROM listings ORDER BY position").
		WillReturnRows(rows)

	listings, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, "Mangrove Forest Restoration", listings[0].ProjectName)
	assert.Equal(t, "Seagrass Meadow Conservation", listings[1].ProjectName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCatalogRepo(mock)
	l := mangroveListing()

	mock.ExpectQuery("SELECT .+ FROM listings WHERE id").
		WithArgs(l.ID).
		WillReturnRows(listingRow(l))

	result, err := repo.GetByID(context.Background(), l.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, l.ProjectName, result.ProjectName)
	assert.Equal(t, int64(1000), result.AvailableCredits)
	assert.Equal(t, l.ImageRef, result.ImageRef)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCatalogRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM listings WHERE id").
		WithArgs("listing-99").
		WillReturnRows(pgxmock.NewRows(listingColumns()))

	result, err := repo.GetByID(context.Background(), "listing-99")
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepo_DecrementSupply(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCatalogRepo(mock)
	updated := mangroveListing().WithSupply(900)

	mock.ExpectQuery("UPDATE listings").
		WithArgs("listing-1", int64(100)).
		WillReturnRows(listingRow(updated))

	result, err := repo.DecrementSupply(context.Background(), "listing-1", 100)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, int64(900), result.AvailableCredits)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepo_DecrementSupply_Exhausted(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCatalogRepo(mock)
	l := mangroveListing()

	// Guarded UPDATE matches no row, but the listing exists.
	mock.ExpectQuery("UPDATE listings").
		WithArgs(l.ID, int64(5000)).
		WillReturnRows(pgxmock.NewRows(listingColumns()))
	mock.ExpectQuery("SELECT .+ FROM listings WHERE id").
		WithArgs(l.ID).
		WillReturnRows(listingRow(l))

	_, err = repo.DecrementSupply(context.Background(), l.ID, 5000)
	assert.ErrorIs(t, err, domain.ErrSupplyExhausted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepo_DecrementSupply_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCatalogRepo(mock)

	mock.ExpectQuery("UPDATE listings").
		WithArgs("listing-99", int64(10)).
		WillReturnRows(pgxmock.NewRows(listingColumns()))
	mock.ExpectQuery("SELECT .+ FROM listings WHERE id").
		WithArgs("listing-99").
		WillReturnRows(pgxmock.NewRows(listingColumns()))

	result, err := repo.DecrementSupply(context.Background(), "listing-99", 10)
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepo_RestoreSupply(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCatalogRepo(mock)

	mock.ExpectExec("UPDATE listings").
		WithArgs("listing-1", int64(100)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.RestoreSupply(context.Background(), "listing-1", 100)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepo_Stats(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCatalogRepo(mock)

	rows := pgxmock.NewRows([]string{"label", "value"}).
		AddRow("Total Credits Traded", "2.5M").
		AddRow("Active Projects", "156").
		AddRow("Avg. Settlement Time", "48h")

	mock.ExpectQuery("SELECT label, value FROM market_stats").
		WillReturnRows(rows)

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 3)
	assert.Equal(t, "2.5M", stats[0].Value)
	assert.NoError(t, mock.ExpectationsWereMet())
}
