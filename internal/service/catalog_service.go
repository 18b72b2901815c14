package service

import (
	"context"

	"carbon-bazar/internal/core/domain"
	"carbon-bazar/internal/core/ports"
	"carbon-bazar/pkg/apperror"
)

// CatalogService implements ports.CatalogService. It is a thin read
// layer over the catalog repository; catalog contents never change
// through this service.
type CatalogService struct {
	repo ports.CatalogRepository
}

// NewCatalogService creates the catalog service.
func NewCatalogService(repo ports.CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// Listings returns all listings in catalog display order.
func (s *CatalogService) Listings(ctx context.Context) ([]domain.Listing, error) {
	listings, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	return listings, nil
}

// Listing returns one listing, or CAT_001 when it does not exist.
func (s *CatalogService) Listing(ctx context.Context, id string) (*domain.Listing, error) {
	listing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if listing == nil {
		return nil, apperror.ErrListingNotFound(id)
	}
	return listing, nil
}

// Stats returns the marketplace headline figures.
func (s *CatalogService) Stats(ctx context.Context) ([]domain.MarketStat, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	return stats, nil
}
