package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/leadboard/leadboard-server/internal/domain"
)

func (s *Server) registerWebsiteRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listWebsites",
		Method:      http.MethodGet,
		Path:        "/api/v1/websites",
		Summary:     "List websites",
		Description: "Returns the scraped websites ordered by URL",
		Tags:        []string{"Websites"},
		Security:    dashboardSecurity,
	}, s.handleListWebsites)

	huma.Register(s.api, huma.Operation{
		OperationID: "getWebsite",
		Method:      http.MethodGet,
		Path:        "/api/v1/websites/{id}",
		Summary:     "Get website",
		Description: "Returns a website by ID",
		Tags:        []string{"Websites"},
		Security:    dashboardSecurity,
	}, s.handleGetWebsite)
}

// WebsitesOutput wraps a list of websites for Huma.
type WebsitesOutput struct {
	Body []*domain.Website
}

// WebsiteIDInput identifies a website.
type WebsiteIDInput struct {
	ID int64 `path:"id" doc:"Website ID"`
}

// WebsiteOutput wraps a website for Huma.
type WebsiteOutput struct {
	Body *domain.Website
}

func (s *Server) handleListWebsites(ctx context.Context, _ *struct{}) (*WebsitesOutput, error) {
	if _, err := RequireEmployee(ctx); err != nil {
		return nil, err
	}

	websites, err := s.services.Website.ListWebsites(ctx)
	if err != nil {
		return nil, err
	}
	return &WebsitesOutput{Body: websites}, nil
}

func (s *Server) handleGetWebsite(ctx context.Context, input *WebsiteIDInput) (*WebsiteOutput, error) {
	if _, err := RequireEmployee(ctx); err != nil {
		return nil, err
	}

	website, err := s.services.Website.GetWebsite(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &WebsiteOutput{Body: website}, nil
}
