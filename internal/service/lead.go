package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leadboard/leadboard-server/internal/domain"
	"github.com/leadboard/leadboard-server/internal/dto"
	domainerrors "github.com/leadboard/leadboard-server/internal/errors"
	"github.com/leadboard/leadboard-server/internal/leadfilter"
	"github.com/leadboard/leadboard-server/internal/metrics"
	"github.com/leadboard/leadboard-server/internal/store"
)

// LeadService reads leads as LeadViews and manages their assignment.
// Views are rebuilt from the store on every call.
type LeadService struct {
	store    store.Store
	enricher *dto.Enricher
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewLeadService creates a new lead service. m may be nil.
func NewLeadService(store store.Store, m *metrics.Metrics, logger *slog.Logger) *LeadService {
	return &LeadService{
		store:    store,
		enricher: dto.NewEnricher(store),
		metrics:  m,
		logger:   logger,
	}
}

// ListLeadsFilter holds the pre-filters of the plain lead listing.
type ListLeadsFilter struct {
	// UserID restricts to leads assigned to this user.
	UserID string
	// AssignedTo is "all", "unassigned" or a user id. Ignored when UserID is set.
	AssignedTo string
	// TagID is "all", "untagged" or a tag id.
	TagID string
}

// List returns lead views ordered by id. Assignment filters run in the store,
// the tag filter runs on the built views.
func (s *LeadService) List(ctx context.Context, f ListLeadsFilter) ([]*dto.LeadView, error) {
	var q domain.LeadQuery
	switch assigned := strings.TrimSpace(f.AssignedTo); {
	case f.UserID != "":
		q.AssignedTo = f.UserID
	case assigned == leadfilter.Unassigned:
		q.Unassigned = true
	case assigned != "" && assigned != leadfilter.All:
		q.AssignedTo = assigned
	}

	leads, err := s.store.ListLeads(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}

	views, err := s.enricher.Enrich(ctx, leads)
	if err != nil {
		return nil, fmt.Errorf("build lead views: %w", err)
	}

	views = leadfilter.Apply(views, leadfilter.Criteria{Tag: strings.TrimSpace(f.TagID)})
	s.metrics.ObserveLeadsServed(len(views))
	return views, nil
}

// Page filters every lead view with c and returns the requested page.
func (s *LeadService) Page(ctx context.Context, c leadfilter.Criteria, page, pageSize int) (leadfilter.Page[*dto.LeadView], error) {
	views, err := s.allViews(ctx)
	if err != nil {
		return leadfilter.Page[*dto.LeadView]{}, err
	}

	p := leadfilter.Paginate(leadfilter.Apply(views, c), page, pageSize)
	s.metrics.ObserveLeadsServed(len(p.Items))
	return p, nil
}

// Stats summarizes every lead.
func (s *LeadService) Stats(ctx context.Context) (leadfilter.Stats, error) {
	views, err := s.allViews(ctx)
	if err != nil {
		return leadfilter.Stats{}, err
	}
	return leadfilter.Summarize(views), nil
}

// FilterOptions returns the values offered by the company and website filters.
func (s *LeadService) FilterOptions(ctx context.Context) (leadfilter.FilterOptions, error) {
	views, err := s.allViews(ctx)
	if err != nil {
		return leadfilter.FilterOptions{}, err
	}
	return leadfilter.Options(views), nil
}

func (s *LeadService) allViews(ctx context.Context) ([]*dto.LeadView, error) {
	leads, err := s.store.ListLeads(ctx, domain.LeadQuery{})
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	views, err := s.enricher.Enrich(ctx, leads)
	if err != nil {
		return nil, fmt.Errorf("build lead views: %w", err)
	}
	return views, nil
}

// Get returns a single lead view.
func (s *LeadService) Get(ctx context.Context, id int64) (*dto.LeadView, error) {
	lead, err := s.getLead(ctx, id)
	if err != nil {
		return nil, err
	}

	view, err := s.enricher.EnrichOne(ctx, lead)
	if err != nil {
		return nil, fmt.Errorf("build lead view: %w", err)
	}
	s.metrics.ObserveLeadsServed(1)
	return view, nil
}

// Assign sets the lead's owner. A nil or blank userID clears the assignment.
func (s *LeadService) Assign(ctx context.Context, actorID string, leadID int64, userID *string) error {
	if _, err := s.getLead(ctx, leadID); err != nil {
		return err
	}

	var target *string
	if userID != nil && strings.TrimSpace(*userID) != "" {
		id := strings.TrimSpace(*userID)
		if _, err := s.store.GetUser(ctx, id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domainerrors.Validationf("user %s does not exist", id)
			}
			return fmt.Errorf("get user: %w", err)
		}
		target = &id
	}

	if err := s.store.AssignLead(ctx, leadID, target); err != nil {
		return storeError(err, "assign lead")
	}

	s.logger.Info("lead assigned",
		"lead_id", leadID,
		"assigned_to", domain.Deref(target),
		"actor_id", actorID,
	)
	return nil
}

// Tags returns the tags on a lead, ordered by name.
func (s *LeadService) Tags(ctx context.Context, leadID int64) ([]*domain.Tag, error) {
	if _, err := s.getLead(ctx, leadID); err != nil {
		return nil, err
	}
	tags, err := s.store.GetTagsForLead(ctx, leadID)
	if err != nil {
		return nil, fmt.Errorf("get lead tags: %w", err)
	}
	return tags, nil
}

func (s *LeadService) getLead(ctx context.Context, id int64) (*domain.Lead, error) {
	lead, err := s.store.GetLead(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFoundf("lead %d not found", id)
		}
		return nil, fmt.Errorf("get lead: %w", err)
	}
	return lead, nil
}
