package leadfilter

import "github.com/leadboard/leadboard-server/internal/dto"

// State is the filter and paging position of one dashboard view.
// Changing any filter or the page size returns to the first page.
type State struct {
	Criteria Criteria `json:"criteria"`
	Page     int      `json:"page"`
	PageSize int      `json:"pageSize"`
}

// NewState returns the initial state: no filters, first page, default size.
func NewState() State {
	return State{
		Criteria: Criteria{Company: All, Website: All, Assignee: All, Tag: All},
		Page:     1,
		PageSize: DefaultPageSize,
	}
}

// SetSearch sets the free-text search and returns to the first page.
func (s *State) SetSearch(v string) {
	s.Criteria.Search = v
	s.Page = 1
}

// SetCompany sets the company filter and returns to the first page.
func (s *State) SetCompany(v string) {
	s.Criteria.Company = v
	s.Page = 1
}

// SetWebsite sets the website filter and returns to the first page.
func (s *State) SetWebsite(v string) {
	s.Criteria.Website = v
	s.Page = 1
}

// SetAssignee sets the assignee filter and returns to the first page.
func (s *State) SetAssignee(v string) {
	s.Criteria.Assignee = v
	s.Page = 1
}

// SetTag sets the tag filter and returns to the first page.
func (s *State) SetTag(v string) {
	s.Criteria.Tag = v
	s.Page = 1
}

// SetPageSize changes the page size and returns to the first page.
func (s *State) SetPageSize(size int) {
	s.PageSize = NormalizePageSize(size)
	s.Page = 1
}

// GoTo moves to page, clamped to [1, max(1, totalPages)].
func (s *State) GoTo(page, totalPages int) {
	s.Page = ClampPage(page, totalPages)
}

// Apply filters views with the current criteria and returns the current page.
// The stored page index is updated if it had to be clamped.
func (s *State) Apply(views []*dto.LeadView) Page[*dto.LeadView] {
	p := Paginate(Apply(views, s.Criteria), s.Page, s.PageSize)
	s.Page = p.Page
	s.PageSize = p.PageSize
	return p
}
