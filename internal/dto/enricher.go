package dto

import (
	"context"
	"fmt"

	"github.com/leadboard/leadboard-server/internal/domain"
)

// Store defines the reads Enricher needs. Batch getters skip unknown ids.
type Store interface {
	GetWebsitesByIDs(ctx context.Context, ids []int64) ([]*domain.Website, error)
	GetUsersByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	GetTagsForLeads(ctx context.Context, leadIDs []int64) (map[int64][]*domain.Tag, error)
}

// Enricher turns lead rows into LeadViews.
//
// It issues one batched read per related entity type regardless of how many
// leads are enriched. Any failed read fails the whole call; there are no
// partially enriched results.
type Enricher struct {
	store Store
}

// NewEnricher creates a new enricher.
func NewEnricher(store Store) *Enricher {
	return &Enricher{store: store}
}

// Enrich builds views for leads, preserving their order.
func (e *Enricher) Enrich(ctx context.Context, leads []*domain.Lead) ([]*LeadView, error) {
	if len(leads) == 0 {
		return []*LeadView{}, nil
	}

	websiteIDs := make([]int64, 0, len(leads))
	userIDs := make([]string, 0, len(leads))
	leadIDs := make([]int64, 0, len(leads))
	seenWebsite := make(map[int64]struct{}, len(leads))
	seenUser := make(map[string]struct{})

	for _, l := range leads {
		leadIDs = append(leadIDs, l.ID)
		if _, ok := seenWebsite[l.WebsiteID]; !ok {
			seenWebsite[l.WebsiteID] = struct{}{}
			websiteIDs = append(websiteIDs, l.WebsiteID)
		}
		if l.IsAssigned() {
			if _, ok := seenUser[*l.AssignedTo]; !ok {
				seenUser[*l.AssignedTo] = struct{}{}
				userIDs = append(userIDs, *l.AssignedTo)
			}
		}
	}

	websites, err := e.store.GetWebsitesByIDs(ctx, websiteIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch websites: %w", err)
	}
	websiteMap := make(map[int64]*domain.Website, len(websites))
	for _, w := range websites {
		websiteMap[w.ID] = w
	}

	var userMap map[string]*domain.User
	if len(userIDs) > 0 {
		users, err := e.store.GetUsersByIDs(ctx, userIDs)
		if err != nil {
			return nil, fmt.Errorf("fetch assignees: %w", err)
		}
		userMap = make(map[string]*domain.User, len(users))
		for _, u := range users {
			userMap[u.ID] = u
		}
	}

	tagsByLead, err := e.store.GetTagsForLeads(ctx, leadIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch tags: %w", err)
	}

	return BuildLeadViews(leads, websiteMap, userMap, tagsByLead), nil
}

// EnrichOne builds the view for a single lead.
func (e *Enricher) EnrichOne(ctx context.Context, lead *domain.Lead) (*LeadView, error) {
	views, err := e.Enrich(ctx, []*domain.Lead{lead})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}
