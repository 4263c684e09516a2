package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

// healthCheckTimeout bounds the database ping.
const healthCheckTimeout = 2 * time.Second

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns server health status. Responds 503 when the database is unreachable.",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status   string `json:"status" doc:"Overall status: healthy or unhealthy"`
	Database string `json:"database" doc:"Database status: connected or unreachable"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Status int
	Body   HealthResponse
}

func (s *Server) handleHealthCheck(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if s.db == nil {
		return &HealthOutput{
			Status: http.StatusServiceUnavailable,
			Body:   HealthResponse{Status: "unhealthy", Database: "not configured"},
		}, nil
	}

	if err := s.db.Ping(ctx); err != nil {
		s.logger.Error("health check: database ping failed", "error", err)
		return &HealthOutput{
			Status: http.StatusServiceUnavailable,
			Body:   HealthResponse{Status: "unhealthy", Database: "unreachable"},
		}, nil
	}

	return &HealthOutput{
		Status: http.StatusOK,
		Body:   HealthResponse{Status: "healthy", Database: "connected"},
	}, nil
}
