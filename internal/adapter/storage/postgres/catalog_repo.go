package postgres

import (
	"context"
	"errors"
	"fmt"

	"carbon-bazar/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// CatalogRepo implements ports.CatalogRepository.
type CatalogRepo struct {
	pool Pool
}

// NewCatalogRepo creates a new CatalogRepo.
func NewCatalogRepo(pool Pool) *CatalogRepo {
	return &CatalogRepo{pool: pool}
}

// List fetches all listings in catalog display order.
func (r *CatalogRepo) List(ctx context.Context) ([]domain.Listing, error) {
	query := `SELECT id, project_name, location, available_credits, price_per_credit, verified, image_ref, position
		FROM listings ORDER BY position`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		var l domain.Listing
		if err := rows.Scan(&l.ID, &l.ProjectName, &l.Location, &l.AvailableCredits,
			&l.PricePerCredit, &l.Verified, &l.ImageRef, &l.Position); err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listings: %w", err)
	}
	return listings, nil
}

// GetByID fetches a listing by ID.
func (r *CatalogRepo) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	query := `SELECT id, project_name, location, available_credits, price_per_credit, verified, image_ref, position
		FROM listings WHERE id = $1`

	l := &domain.Listing{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.ProjectName, &l.Location, &l.AvailableCredits,
		&l.PricePerCredit, &l.Verified, &l.ImageRef, &l.Position,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get listing by id: %w", err)
	}
	return l, nil
}

// DecrementSupply reserves credits with a guarded UPDATE. The WHERE
// clause makes the supply check and the decrement one atomic statement.
func (r *CatalogRepo) DecrementSupply(ctx context.Context, id string, credits int64) (*domain.Listing, error) {
	query := `UPDATE listings
		SET available_credits = available_credits - $2, updated_at = NOW()
		WHERE id = $1 AND available_credits >= $2
		RETURNING id, project_name, location, available_credits, price_per_credit, verified, image_ref, position`

	l := &domain.Listing{}
	err := r.pool.QueryRow(ctx, query, id, credits).Scan(
		&l.ID, &l.ProjectName, &l.Location, &l.AvailableCredits,
		&l.PricePerCredit, &l.Verified, &l.ImageRef, &l.Position,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Distinguish a missing listing from exhausted supply.
			existing, getErr := r.GetByID(ctx, id)
			if getErr != nil {
				return nil, getErr
			}
			if existing == nil {
				return nil, nil
			}
			return nil, domain.ErrSupplyExhausted
		}
		return nil, fmt.Errorf("decrement listing supply: %w", err)
	}
	return l, nil
}

// RestoreSupply returns reserved credits to a listing.
func (r *CatalogRepo) RestoreSupply(ctx context.Context, id string, credits int64) error {
	query := `UPDATE listings
		SET available_credits = available_credits + $2, updated_at = NOW()
		WHERE id = $1`

	_, err := r.pool.Exec(ctx, query, id, credits)
	if err != nil {
		return fmt.Errorf("restore listing supply: %w", err)
	}
	return nil
}

// Stats fetches the marketplace headline figures in display order.
func (r *CatalogRepo) Stats(ctx context.Context) ([]domain.MarketStat, error) {
	query := `SELECT label, value FROM market_stats ORDER BY position`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list market stats: %w", err)
	}
	defer rows.Close()

	var stats []domain.MarketStat
	for rows.Next() {
		var s domain.MarketStat
		if err := rows.Scan(&s.Label, &s.Value); err != nil {
			return nil, fmt.Errorf("scan market stat: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate market stats: %w", err)
	}
	return stats, nil
}
