package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/leadboard/leadboard-server/internal/errors"
)

// APIError is the body of every failed request. It implements huma.StatusError.
type APIError struct { //nolint:revive // API prefix is intentional for clarity
	status  int
	Message string `json:"error" doc:"Human-readable error message"`
	Code    string `json:"code" doc:"Machine-readable error code"`
	Details any    `json:"details,omitempty" doc:"Additional error details"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *APIError) GetStatus() int {
	return e.status
}

// ContentType returns the content type for the error response.
func (e *APIError) ContentType(_ string) string {
	return "application/json"
}

// RegisterErrorHandler configures huma to render domain errors.
// Call this after creating the huma.API but before registering routes.
func RegisterErrorHandler(logger *slog.Logger) {
	huma.NewError = func(status int, message string, errs ...error) huma.StatusError {
		for _, err := range errs {
			var domainErr *domainerrors.Error
			if errors.As(err, &domainErr) {
				if domainErr.Code == domainerrors.CodeInternal {
					logger.Error("internal error", "error", err)
				}
				return &APIError{
					status:  domainErr.HTTPStatus(),
					Code:    string(domainErr.Code),
					Message: domainErr.Message,
					Details: domainErr.Details,
				}
			}
		}

		// Huma reports request schema violations as 422.
		if status == http.StatusUnprocessableEntity {
			status = http.StatusBadRequest
		}

		if status >= http.StatusInternalServerError {
			for _, err := range errs {
				logger.Error("unhandled error", "status", status, "error", err)
			}
			return &APIError{
				status:  status,
				Code:    string(domainerrors.CodeInternal),
				Message: "internal server error",
			}
		}

		apiErr := &APIError{
			status:  status,
			Code:    statusToCode(status),
			Message: message,
		}
		if details := fieldDetails(errs); len(details) > 0 {
			apiErr.Details = details
		}
		return apiErr
	}
}

// fieldDetails collects huma validation failures keyed by field.
func fieldDetails(errs []error) map[string]string {
	var details map[string]string
	for _, err := range errs {
		var detail *huma.ErrorDetail
		if !errors.As(err, &detail) {
			continue
		}
		if details == nil {
			details = make(map[string]string)
		}
		field := strings.TrimPrefix(detail.Location, "body.")
		details[field] = detail.Message
	}
	return details
}

// statusToCode maps HTTP status codes to our domain error codes.
func statusToCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return string(domainerrors.CodeValidation)
	case http.StatusUnauthorized:
		return string(domainerrors.CodeUnauthorized)
	case http.StatusForbidden:
		return string(domainerrors.CodeForbidden)
	case http.StatusNotFound:
		return string(domainerrors.CodeNotFound)
	case http.StatusConflict:
		return string(domainerrors.CodeConflict)
	case http.StatusTooManyRequests:
		return string(domainerrors.CodeRateLimited)
	default:
		return string(domainerrors.CodeInternal)
	}
}
