package api

import (
	"github.com/leadboard/leadboard-server/internal/service"
)

// Services groups all business logic services used by the API server.
type Services struct {
	Auth    *service.AuthService
	Lead    *service.LeadService
	Tag     *service.TagService
	User    *service.UserService
	Website *service.WebsiteService
	Admin   *service.AdminService
}
