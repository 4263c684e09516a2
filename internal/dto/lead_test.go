package dto

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/leadboard/leadboard-server/internal/domain"
)

var epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func str(s string) *string { return &s }

func lead(id, websiteID int64, assignedTo *string) *domain.Lead {
	return &domain.Lead{
		ID:         id,
		Name:       str("Lead"),
		WebsiteID:  websiteID,
		AssignedTo: assignedTo,
		CreatedAt:  epoch,
		UpdatedAt:  epoch,
	}
}

func TestBuildLeadViews(t *testing.T) {
	ada := &domain.User{ID: "usr-ada", Name: "Ada", Email: "ada@example.com", Role: domain.RoleEmployee}
	vip := &domain.Tag{ID: 7, Name: "VIP", Color: "#ff0000"}

	leads := []*domain.Lead{
		lead(2, 10, str("usr-ada")),
		lead(1, 11, nil),
		lead(3, 99, str("usr-gone")),
	}
	websites := map[int64]*domain.Website{
		10: {ID: 10, URL: "https://acme.example"},
		11: {ID: 11, URL: "https://globex.example/about"},
	}
	users := map[string]*domain.User{"usr-ada": ada}
	tags := map[int64][]*domain.Tag{2: {vip}}

	got := BuildLeadViews(leads, websites, users, tags)

	want := []*LeadView{
		{
			Lead:           *leads[0],
			WebsiteURL:     "https://acme.example",
			AssignedToUser: &domain.UserRef{ID: "usr-ada", Name: "Ada", Email: "ada@example.com"},
			Tags:           []*domain.Tag{vip},
		},
		{
			Lead:       *leads[1],
			WebsiteURL: "https://globex.example/about",
			Tags:       []*domain.Tag{},
		},
		{
			Lead: *leads[2],
			Tags: []*domain.Tag{},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildLeadViews mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildLeadViews_Empty(t *testing.T) {
	got := BuildLeadViews(nil, nil, nil, nil)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestBuildLeadViews_TagsNeverNil(t *testing.T) {
	got := BuildLeadViews([]*domain.Lead{lead(1, 1, nil)}, nil, nil, map[int64][]*domain.Tag{1: nil})
	if got[0].Tags == nil {
		t.Error("Tags should be an empty slice, not nil")
	}
}

func TestLeadView_HasTag(t *testing.T) {
	v := &LeadView{Tags: []*domain.Tag{{ID: 1}, {ID: 5}}}
	if !v.HasTag(5) {
		t.Error("expected HasTag(5)")
	}
	if v.HasTag(2) {
		t.Error("unexpected HasTag(2)")
	}
}
