package dto

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/leadboard/leadboard-server/internal/domain"
)

type fakeStore struct {
	websites map[int64]*domain.Website
	users    map[string]*domain.User
	tags     map[int64][]*domain.Tag

	websiteCalls, userCalls, tagCalls int
	lastWebsiteIDs                    []int64
	lastUserIDs                       []string
	tagErr                            error
}

func (f *fakeStore) GetWebsitesByIDs(_ context.Context, ids []int64) ([]*domain.Website, error) {
	f.websiteCalls++
	f.lastWebsiteIDs = ids
	out := []*domain.Website{}
	for _, id := range ids {
		if w, ok := f.websites[id]; ok {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeStore) GetUsersByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	f.userCalls++
	f.lastUserIDs = ids
	out := []*domain.User{}
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeStore) GetTagsForLeads(_ context.Context, ids []int64) (map[int64][]*domain.Tag, error) {
	f.tagCalls++
	if f.tagErr != nil {
		return nil, f.tagErr
	}
	out := map[int64][]*domain.Tag{}
	for _, id := range ids {
		if tags, ok := f.tags[id]; ok {
			out[id] = tags
		}
	}
	return out, nil
}

func TestEnricher_BatchesLookups(t *testing.T) {
	fs := &fakeStore{
		websites: map[int64]*domain.Website{1: {ID: 1, URL: "https://a.example"}, 2: {ID: 2, URL: "https://b.example"}},
		users:    map[string]*domain.User{"usr-1": {ID: "usr-1", Name: "One", Email: "one@example.com"}},
		tags:     map[int64][]*domain.Tag{11: {{ID: 3, Name: "Hot"}}},
	}
	e := NewEnricher(fs)

	leads := []*domain.Lead{
		lead(10, 1, str("usr-1")),
		lead(11, 1, str("usr-1")),
		lead(12, 2, nil),
	}

	views, err := e.Enrich(context.Background(), leads)
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}

	if fs.websiteCalls != 1 || fs.userCalls != 1 || fs.tagCalls != 1 {
		t.Errorf("expected one call per entity type, got websites=%d users=%d tags=%d",
			fs.websiteCalls, fs.userCalls, fs.tagCalls)
	}
	if diff := cmp.Diff([]int64{1, 2}, fs.lastWebsiteIDs); diff != "" {
		t.Errorf("website ids not deduplicated (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"usr-1"}, fs.lastUserIDs); diff != "" {
		t.Errorf("user ids not deduplicated (-want +got):\n%s", diff)
	}

	ids := make([]int64, len(views))
	for i, v := range views {
		ids[i] = v.ID
	}
	if !slices.Equal(ids, []int64{10, 11, 12}) {
		t.Errorf("order not preserved: %v", ids)
	}
	if views[1].Tags[0].Name != "Hot" || len(views[0].Tags) != 0 {
		t.Errorf("unexpected tags: %+v / %+v", views[0].Tags, views[1].Tags)
	}
	if views[2].AssignedToUser != nil || views[2].WebsiteURL != "https://b.example" {
		t.Errorf("unexpected view: %+v", views[2])
	}
}

func TestEnricher_SkipsUserLookupWhenNobodyAssigned(t *testing.T) {
	fs := &fakeStore{}
	e := NewEnricher(fs)

	if _, err := e.Enrich(context.Background(), []*domain.Lead{lead(1, 1, nil)}); err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if fs.userCalls != 0 {
		t.Errorf("expected no user lookup, got %d", fs.userCalls)
	}
}

func TestEnricher_Empty(t *testing.T) {
	fs := &fakeStore{}
	views, err := NewEnricher(fs).Enrich(context.Background(), nil)
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if views == nil || len(views) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", views)
	}
	if fs.websiteCalls+fs.userCalls+fs.tagCalls != 0 {
		t.Error("expected no store calls for an empty input")
	}
}

func TestEnricher_FailureAbortsWholeCall(t *testing.T) {
	boom := errors.New("disk on fire")
	fs := &fakeStore{tagErr: boom}

	views, err := NewEnricher(fs).Enrich(context.Background(), []*domain.Lead{lead(1, 1, nil)})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if views != nil {
		t.Errorf("expected no views on failure, got %+v", views)
	}
}

func TestEnricher_EnrichOne(t *testing.T) {
	fs := &fakeStore{websites: map[int64]*domain.Website{4: {ID: 4, URL: "https://d.example"}}}

	view, err := NewEnricher(fs).EnrichOne(context.Background(), lead(9, 4, nil))
	if err != nil {
		t.Fatalf("EnrichOne: %v", err)
	}
	if view.ID != 9 || view.WebsiteURL != "https://d.example" {
		t.Errorf("unexpected view: %+v", view)
	}
}
