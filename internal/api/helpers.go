package api

// SuccessResponse acknowledges a mutation with no other result.
type SuccessResponse struct {
	Success bool `json:"success" doc:"Always true"`
}

// SuccessOutput wraps the success response for Huma.
type SuccessOutput struct {
	Body SuccessResponse
}

func success() *SuccessOutput {
	return &SuccessOutput{Body: SuccessResponse{Success: true}}
}
