package domain

import "time"

// Lead is a contact discovered on a Website. Every field describing the
// contact is optional because scrapers fill in whatever they find.
type Lead struct {
	ID          int64   `json:"id"`
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	JobTitle    *string `json:"jobTitle"`
	Location    *string `json:"location"`
	Company     *string `json:"company"`
	Description *string `json:"description"`
	ContactLink *string `json:"contactLink"`
	WebsiteID   int64   `json:"websiteId"`
	// AssignedTo is the id of the user working the lead, nil when unassigned.
	AssignedTo *string   `json:"assignedTo"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// IsAssigned reports whether the lead has an owner.
func (l *Lead) IsAssigned() bool {
	return l.AssignedTo != nil && *l.AssignedTo != ""
}

// LeadQuery narrows a lead listing at the store.
type LeadQuery struct {
	// AssignedTo restricts to leads owned by this user id.
	AssignedTo string
	// Unassigned restricts to leads without an owner. Ignored when AssignedTo is set.
	Unassigned bool
}

// Deref returns *s or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
