package domain

import "time"

// DefaultTagColor is used when a tag is created without a color.
const DefaultTagColor = "#3b82f6"

// Tag is a user-defined label that can be attached to any number of leads.
// Names are unique across the system.
type Tag struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
	Description *string   `json:"description"`
	CreatedBy   *string   `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// LeadTag associates a Tag with a Lead. A (LeadID, TagID) pair exists at most once.
type LeadTag struct {
	ID        int64     `json:"id"`
	LeadID    int64     `json:"leadId"`
	TagID     int64     `json:"tagId"`
	CreatedBy *string   `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}
