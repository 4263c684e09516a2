// Package store defines the persistence interfaces for the lead dashboard.
package store

import (
	"context"

	"github.com/leadboard/leadboard-server/internal/domain"
)

// Store persists websites, leads, tags, lead/tag associations and users.
//
// Get* methods return ErrNotFound for unknown ids. Batch getters skip unknown ids.
// List methods return an empty, non-nil slice when nothing matches.
type Store interface {
	Close() error
	Ping(ctx context.Context) error

	// Websites
	CreateWebsite(ctx context.Context, w *domain.Website) error
	GetWebsite(ctx context.Context, id int64) (*domain.Website, error)
	GetWebsitesByIDs(ctx context.Context, ids []int64) ([]*domain.Website, error)
	ListWebsites(ctx context.Context) ([]*domain.Website, error)

	// Leads
	CreateLead(ctx context.Context, l *domain.Lead) error
	GetLead(ctx context.Context, id int64) (*domain.Lead, error)
	ListLeads(ctx context.Context, q domain.LeadQuery) ([]*domain.Lead, error)
	// AssignLead sets or, with a nil userID, clears the lead's owner.
	AssignLead(ctx context.Context, leadID int64, userID *string) error

	// Tags
	CreateTag(ctx context.Context, t *domain.Tag) error
	GetTag(ctx context.Context, id int64) (*domain.Tag, error)
	ListTags(ctx context.Context) ([]*domain.Tag, error)
	UpdateTag(ctx context.Context, t *domain.Tag) error
	DeleteTag(ctx context.Context, id int64) error

	// Lead tags
	// AddLeadTag returns ErrAlreadyExists when the pair is already present.
	AddLeadTag(ctx context.Context, lt *domain.LeadTag) error
	// RemoveLeadTag reports whether an association was deleted.
	RemoveLeadTag(ctx context.Context, leadID, tagID int64) (bool, error)
	LeadTagExists(ctx context.Context, leadID, tagID int64) (bool, error)
	GetTagsForLead(ctx context.Context, leadID int64) ([]*domain.Tag, error)
	// GetTagsForLeads returns each lead's tags ordered by name, keyed by lead id.
	// Leads without tags are absent from the map.
	GetTagsForLeads(ctx context.Context, leadIDs []int64) (map[int64][]*domain.Tag, error)

	// Users
	CreateUser(ctx context.Context, u *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUsersByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	UpdateUser(ctx context.Context, u *domain.User) error
	DeleteUser(ctx context.Context, id string) error
	CountUsers(ctx context.Context) (int, error)
}

// SessionStore persists login sessions.
type SessionStore interface {
	Close() error

	CreateSession(ctx context.Context, s *domain.Session) error
	// GetSession returns ErrSessionNotFound or ErrSessionExpired when the session is unusable.
	GetSession(ctx context.Context, id string) (*domain.Session, error)
	// TouchSession records activity on the session.
	TouchSession(ctx context.Context, id string) error
	DeleteSession(ctx context.Context, id string) error
	ListUserSessions(ctx context.Context, userID string) ([]*domain.Session, error)
	// DeleteUserSessions signs a user out everywhere and returns how many sessions were removed.
	DeleteUserSessions(ctx context.Context, userID string) (int, error)
}
