// Package dto provides the denormalized views returned by the API.
//
// Views keep the normalized ids of their source rows and add the display
// fields a dashboard needs to render a row without further requests.
package dto

import "github.com/leadboard/leadboard-server/internal/domain"

// LeadView is the client-facing representation of a lead.
type LeadView struct {
	domain.Lead // Embeds all database fields

	// WebsiteURL is the URL of the website the lead was found on. Empty when
	// the website row is missing.
	WebsiteURL string `json:"websiteUrl"`
	// AssignedToUser is the resolved owner, nil when the lead is unassigned or the
	// owner no longer exists.
	AssignedToUser *domain.UserRef `json:"assignedToUser"`
	// Tags is never nil.
	Tags []*domain.Tag `json:"tags"`
}

// HasTag reports whether the view carries the tag with the given id.
func (v *LeadView) HasTag(tagID int64) bool {
	for _, t := range v.Tags {
		if t.ID == tagID {
			return true
		}
	}
	return false
}

// BuildLeadViews joins leads with their website, owner and tags.
// Views come back in input order, one per lead. The lookup maps may be nil.
func BuildLeadViews(
	leads []*domain.Lead,
	websites map[int64]*domain.Website,
	users map[string]*domain.User,
	tagsByLead map[int64][]*domain.Tag,
) []*LeadView {
	views := make([]*LeadView, 0, len(leads))
	for _, lead := range leads {
		view := &LeadView{Lead: *lead}

		if w, ok := websites[lead.WebsiteID]; ok {
			view.WebsiteURL = w.URL
		}

		if lead.IsAssigned() {
			if u, ok := users[*lead.AssignedTo]; ok {
				view.AssignedToUser = u.Ref()
			}
		}

		if tags := tagsByLead[lead.ID]; len(tags) > 0 {
			view.Tags = tags
		} else {
			view.Tags = []*domain.Tag{}
		}

		views = append(views, view)
	}
	return views
}
