package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/leadboard/leadboard-server/internal/domain"
	"github.com/leadboard/leadboard-server/internal/dto"
	"github.com/leadboard/leadboard-server/internal/leadfilter"
	"github.com/leadboard/leadboard-server/internal/service"
)

func (s *Server) registerLeadRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listLeads",
		Method:      http.MethodGet,
		Path:        "/api/v1/leads",
		Summary:     "List leads",
		Description: "Returns every lead with its website, owner and tags, ordered by id",
		Tags:        []string{"Leads"},
		Security:    dashboardSecurity,
	}, s.handleListLeads)

	huma.Register(s.api, huma.Operation{
		OperationID: "pageLeads",
		Method:      http.MethodGet,
		Path:        "/api/v1/leads/page",
		Summary:     "Filter and page leads",
		Description: "Applies the dashboard filters and returns one page of leads",
		Tags:        []string{"Leads"},
		Security:    dashboardSecurity,
	}, s.handlePageLeads)

	huma.Register(s.api, huma.Operation{
		OperationID: "leadStats",
		Method:      http.MethodGet,
		Path:        "/api/v1/leads/stats",
		Summary:     "Lead statistics",
		Description: "Returns summary counts across all leads",
		Tags:        []string{"Leads"},
		Security:    dashboardSecurity,
	}, s.handleLeadStats)

	huma.Register(s.api, huma.Operation{
		OperationID: "leadFilterOptions",
		Method:      http.MethodGet,
		Path:        "/api/v1/leads/filters",
		Summary:     "Lead filter options",
		Description: "Returns the companies, website hostnames and page sizes offered by the dashboard filters",
		Tags:        []string{"Leads"},
		Security:    dashboardSecurity,
	}, s.handleLeadFilterOptions)

	huma.Register(s.api, huma.Operation{
		OperationID: "getLead",
		Method:      http.MethodGet,
		Path:        "/api/v1/leads/{id}",
		Summary:     "Get lead",
		Description: "Returns a lead by ID",
		Tags:        []string{"Leads"},
		Security:    dashboardSecurity,
	}, s.handleGetLead)

	huma.Register(s.api, huma.Operation{
		OperationID: "assignLead",
		Method:      http.MethodPatch,
		Path:        "/api/v1/leads/{id}/assign",
		Summary:     "Assign lead",
		Description: "Sets or clears the user working the lead",
		Tags:        []string{"Leads"},
		Security:    dashboardSecurity,
	}, s.handleAssignLead)

	huma.Register(s.api, huma.Operation{
		OperationID: "listLeadTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/leads/{id}/tags",
		Summary:     "List lead tags",
		Description: "Returns the tags attached to a lead",
		Tags:        []string{"Leads"},
		Security:    dashboardSecurity,
	}, s.handleListLeadTags)

	huma.Register(s.api, huma.Operation{
		OperationID:   "addLeadTag",
		Method:        http.MethodPost,
		Path:          "/api/v1/leads/{id}/tags",
		Summary:       "Tag lead",
		Description:   "Attaches a tag to a lead",
		Tags:          []string{"Leads"},
		Security:      dashboardSecurity,
		DefaultStatus: http.StatusCreated,
	}, s.handleAddLeadTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeLeadTag",
		Method:      http.MethodDelete,
		Path:        "/api/v1/leads/{id}/tags",
		Summary:     "Untag lead",
		Description: "Detaches a tag from a lead. Succeeds when the tag was not attached.",
		Tags:        []string{"Leads"},
		Security:    dashboardSecurity,
	}, s.handleRemoveLeadTag)
}

// === DTOs ===

// ListLeadsInput contains the pre-filters for listing leads.
type ListLeadsInput struct {
	UserID     string `query:"userId" doc:"Only leads assigned to this user"`
	AssignedTo string `query:"assignedTo" doc:"all, unassigned or a user ID"`
	TagID      string `query:"tagId" doc:"all, untagged or a tag ID"`
}

// LeadsOutput wraps a list of leads for Huma.
type LeadsOutput struct {
	Body []*dto.LeadView
}

// PageLeadsInput contains the dashboard filters and page position.
type PageLeadsInput struct {
	Search   string `query:"search" doc:"Case-insensitive match on name, company, email and job title"`
	Company  string `query:"company" doc:"Exact company, or all"`
	Website  string `query:"website" doc:"Website hostname, or all"`
	Assignee string `query:"assignee" doc:"all, unassigned or a user ID"`
	Tag      string `query:"tag" doc:"all, untagged or a tag ID"`
	Page     int    `query:"page" default:"1" doc:"1-based page number, clamped to the last page"`
	PageSize int    `query:"pageSize" default:"10" doc:"Items per page (max 100)"`
}

// LeadPageOutput wraps a page of leads for Huma.
type LeadPageOutput struct {
	Body leadfilter.Page[*dto.LeadView]
}

// LeadStatsOutput wraps lead statistics for Huma.
type LeadStatsOutput struct {
	Body leadfilter.Stats
}

// FilterOptionsOutput wraps the filter options for Huma.
type FilterOptionsOutput struct {
	Body leadfilter.FilterOptions
}

// LeadIDInput identifies a lead.
type LeadIDInput struct {
	ID int64 `path:"id" doc:"Lead ID"`
}

// LeadOutput wraps a lead for Huma.
type LeadOutput struct {
	Body *dto.LeadView
}

// AssignLeadRequest is the request body for assigning a lead.
type AssignLeadRequest struct {
	AssignedTo *string `json:"assignedTo,omitempty" nullable:"true" doc:"User ID; null or empty clears the assignment"`
}

// AssignLeadInput wraps the assign request for Huma.
type AssignLeadInput struct {
	ID   int64 `path:"id" doc:"Lead ID"`
	Body AssignLeadRequest
}

// TagsOutput wraps a list of tags for Huma.
type TagsOutput struct {
	Body []*domain.Tag
}

// AddLeadTagRequest is the request body for tagging a lead.
type AddLeadTagRequest struct {
	TagID int64 `json:"tagId" doc:"Tag ID"`
}

// AddLeadTagInput wraps the add tag request for Huma.
type AddLeadTagInput struct {
	ID   int64 `path:"id" doc:"Lead ID"`
	Body AddLeadTagRequest
}

// LeadTagOutput wraps a lead-tag association for Huma.
type LeadTagOutput struct {
	Body *domain.LeadTag
}

// RemoveLeadTagInput identifies the association to delete.
type RemoveLeadTagInput struct {
	ID    int64 `path:"id" doc:"Lead ID"`
	TagID int64 `query:"tagId" doc:"Tag ID"`
}

// === Handlers ===

func (s *Server) handleListLeads(ctx context.Context, input *ListLeadsInput) (*LeadsOutput, error) {
	if _, err := RequireEmployee(ctx); err != nil {
		return nil, err
	}

	views, err := s.services.Lead.List(ctx, service.ListLeadsFilter{
		UserID:     input.UserID,
		AssignedTo: input.AssignedTo,
		TagID:      input.TagID,
	})
	if err != nil {
		return nil, err
	}
	return &LeadsOutput{Body: views}, nil
}

func (s *Server) handlePageLeads(ctx context.Context, input *PageLeadsInput) (*LeadPageOutput, error) {
	if _, err := RequireEmployee(ctx); err != nil {
		return nil, err
	}

	page, err := s.services.Lead.Page(ctx, leadfilter.Criteria{
		Search:   input.Search,
		Company:  input.Company,
		Website:  input.Website,
		Assignee: input.Assignee,
		Tag:      input.Tag,
	}, input.Page, input.PageSize)
	if err != nil {
		return nil, err
	}
	return &LeadPageOutput{Body: page}, nil
}

func (s *Server) handleLeadStats(ctx context.Context, _ *struct{}) (*LeadStatsOutput, error) {
	if _, err := RequireEmployee(ctx); err != nil {
		return nil, err
	}

	stats, err := s.services.Lead.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &LeadStatsOutput{Body: stats}, nil
}

func (s *Server) handleLeadFilterOptions(ctx context.Context, _ *struct{}) (*FilterOptionsOutput, error) {
	if _, err := RequireEmployee(ctx); err != nil {
		return nil, err
	}

	opts, err := s.services.Lead.FilterOptions(ctx)
	if err != nil {
		return nil, err
	}
	return &FilterOptionsOutput{Body: opts}, nil
}

func (s *Server) handleGetLead(ctx context.Context, input *LeadIDInput) (*LeadOutput, error) {
	if _, err := RequireEmployee(ctx); err != nil {
		return nil, err
	}

	view, err := s.services.Lead.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &LeadOutput{Body: view}, nil
}

func (s *Server) handleAssignLead(ctx context.Context, input *AssignLeadInput) (*SuccessOutput, error) {
	user, err := RequireEmployee(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Lead.Assign(ctx, user.ID, input.ID, input.Body.AssignedTo); err != nil {
		return nil, err
	}
	return success(), nil
}

func (s *Server) handleListLeadTags(ctx context.Context, input *LeadIDInput) (*TagsOutput, error) {
	if _, err := RequireEmployee(ctx); err != nil {
		return nil, err
	}

	tags, err := s.services.Lead.Tags(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &TagsOutput{Body: tags}, nil
}

func (s *Server) handleAddLeadTag(ctx context.Context, input *AddLeadTagInput) (*LeadTagOutput, error) {
	user, err := RequireEmployee(ctx)
	if err != nil {
		return nil, err
	}

	lt, err := s.services.Tag.AddTagToLead(ctx, user.ID, input.ID, input.Body.TagID)
	if err != nil {
		return nil, err
	}
	return &LeadTagOutput{Body: lt}, nil
}

func (s *Server) handleRemoveLeadTag(ctx context.Context, input *RemoveLeadTagInput) (*SuccessOutput, error) {
	if _, err := RequireEmployee(ctx); err != nil {
		return nil, err
	}

	if err := s.services.Tag.RemoveTagFromLead(ctx, input.ID, input.TagID); err != nil {
		return nil, err
	}
	return success(), nil
}
