// Package leadfilter narrows lists of lead views and splits them into pages.
//
// Every function here is pure: it reads the views it is given and returns new
// slices without touching the originals.
package leadfilter

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/leadboard/leadboard-server/internal/domain"
	"github.com/leadboard/leadboard-server/internal/dto"
)

// Keywords accepted by the Criteria fields.
const (
	All        = "all"
	Unassigned = "unassigned"
	Untagged   = "untagged"
)

// Criteria combines independent predicates with logical AND.
// An empty field behaves like All.
type Criteria struct {
	Search   string `json:"search,omitempty"`
	Company  string `json:"company,omitempty"`
	Website  string `json:"website,omitempty"`
	Assignee string `json:"assignee,omitempty"`
	Tag      string `json:"tag,omitempty"`
}

// IsZero reports whether the criteria match every view.
func (c Criteria) IsZero() bool {
	return strings.TrimSpace(c.Search) == "" &&
		isAll(c.Company) && isAll(c.Website) && isAll(c.Assignee) && isAll(c.Tag)
}

func isAll(v string) bool {
	return v == "" || v == All
}

// Apply returns the views matching c, in input order.
// When nothing is filtered the input slice itself is returned.
func Apply(views []*dto.LeadView, c Criteria) []*dto.LeadView {
	if c.IsZero() {
		return views
	}

	m := newMatcher(c)
	out := make([]*dto.LeadView, 0, len(views))
	for _, v := range views {
		if m.match(v) {
			out = append(out, v)
		}
	}
	return out
}

// matcher holds the per-call state of Apply. A cases.Caser is not safe for
// concurrent use, so each call gets its own.
type matcher struct {
	c      Criteria
	fold   cases.Caser
	needle string

	tagID    int64
	tagValid bool
}

func newMatcher(c Criteria) *matcher {
	m := &matcher{c: c, fold: cases.Fold()}
	if s := strings.TrimSpace(c.Search); s != "" {
		m.needle = m.fold.String(s)
	}
	if !isAll(c.Tag) && c.Tag != Untagged {
		id, err := strconv.ParseInt(c.Tag, 10, 64)
		m.tagID, m.tagValid = id, err == nil
	}
	return m
}

func (m *matcher) match(v *dto.LeadView) bool {
	return m.matchSearch(v) &&
		m.matchCompany(v) &&
		m.matchWebsite(v) &&
		m.matchAssignee(v) &&
		m.matchTag(v)
}

func (m *matcher) matchSearch(v *dto.LeadView) bool {
	if m.needle == "" {
		return true
	}
	for _, field := range []*string{v.Name, v.Company, v.Email, v.JobTitle} {
		if field != nil && strings.Contains(m.fold.String(*field), m.needle) {
			return true
		}
	}
	return false
}

func (m *matcher) matchCompany(v *dto.LeadView) bool {
	if isAll(m.c.Company) {
		return true
	}
	return domain.Deref(v.Company) == m.c.Company
}

func (m *matcher) matchWebsite(v *dto.LeadView) bool {
	if isAll(m.c.Website) {
		return true
	}
	return Hostname(v.WebsiteURL) == m.c.Website
}

func (m *matcher) matchAssignee(v *dto.LeadView) bool {
	switch m.c.Assignee {
	case "", All:
		return true
	case Unassigned:
		return !v.IsAssigned()
	default:
		return domain.Deref(v.AssignedTo) == m.c.Assignee
	}
}

func (m *matcher) matchTag(v *dto.LeadView) bool {
	switch m.c.Tag {
	case "", All:
		return true
	case Untagged:
		return len(v.Tags) == 0
	default:
		return m.tagValid && v.HasTag(m.tagID)
	}
}
