package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/leadboard/leadboard-server/internal/domain"
	domainerrors "github.com/leadboard/leadboard-server/internal/errors"
	"github.com/leadboard/leadboard-server/internal/store"
)

// WebsiteService exposes the scraped websites. Websites are written by the
// scraper, so there are no mutations here.
type WebsiteService struct {
	store store.Store
}

// NewWebsiteService creates a new website service.
func NewWebsiteService(store store.Store) *WebsiteService {
	return &WebsiteService{store: store}
}

// ListWebsites returns every website ordered by URL.
func (s *WebsiteService) ListWebsites(ctx context.Context) ([]*domain.Website, error) {
	websites, err := s.store.ListWebsites(ctx)
	if err != nil {
		return nil, fmt.Errorf("list websites: %w", err)
	}
	return websites, nil
}

// GetWebsite returns a website by id.
func (s *WebsiteService) GetWebsite(ctx context.Context, id int64) (*domain.Website, error) {
	w, err := s.store.GetWebsite(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFoundf("website %d not found", id)
		}
		return nil, fmt.Errorf("get website: %w", err)
	}
	return w, nil
}
