package leadfilter

import (
	"github.com/leadboard/leadboard-server/internal/domain"
	"github.com/leadboard/leadboard-server/internal/dto"
)

// Stats summarizes a set of leads for the dashboard header cards.
type Stats struct {
	TotalLeads      int `json:"totalLeads"`
	Companies       int `json:"companies"`
	Websites        int `json:"websites"`
	WithContactLink int `json:"withContactLink"`
	Assigned        int `json:"assigned"`
	Unassigned      int `json:"unassigned"`
	Tagged          int `json:"tagged"`
	Untagged        int `json:"untagged"`
}

// Summarize counts views. Companies and websites count distinct non-empty values.
func Summarize(views []*dto.LeadView) Stats {
	s := Stats{TotalLeads: len(views)}
	companies := make(map[string]struct{})
	websites := make(map[string]struct{})

	for _, v := range views {
		if c := domain.Deref(v.Company); c != "" {
			companies[c] = struct{}{}
		}
		if v.WebsiteURL != "" {
			websites[v.WebsiteURL] = struct{}{}
		}
		if domain.Deref(v.ContactLink) != "" {
			s.WithContactLink++
		}
		if v.IsAssigned() {
			s.Assigned++
		} else {
			s.Unassigned++
		}
		if len(v.Tags) > 0 {
			s.Tagged++
		} else {
			s.Untagged++
		}
	}

	s.Companies = len(companies)
	s.Websites = len(websites)
	return s
}
