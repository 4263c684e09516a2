package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/leadboard/leadboard-server/internal/domain"
	"github.com/leadboard/leadboard-server/internal/store"
)

func TestCreateAndGetWebsite(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	scraped := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	w := &domain.Website{
		URL:           "https://acme.example/team",
		Description:   domain.StringPtr("Acme team page"),
		LastScrapedAt: &scraped,
	}
	if err := s.CreateWebsite(ctx, w); err != nil {
		t.Fatalf("CreateWebsite: %v", err)
	}
	if w.ID == 0 {
		t.Fatal("expected ID to be set")
	}

	got, err := s.GetWebsite(ctx, w.ID)
	if err != nil {
		t.Fatalf("GetWebsite: %v", err)
	}
	if got.URL != w.URL {
		t.Errorf("URL: got %q, want %q", got.URL, w.URL)
	}
	if domain.Deref(got.Description) != "Acme team page" {
		t.Errorf("Description: got %v", got.Description)
	}
	if got.LastScrapedAt == nil || !got.LastScrapedAt.Equal(scraped) {
		t.Errorf("LastScrapedAt: got %v, want %v", got.LastScrapedAt, scraped)
	}
}

func TestCreateWebsite_DuplicateURL(t *testing.T) {
	s := newTestStore(t)
	seedWebsite(t, s, "https://dup.example")

	err := s.CreateWebsite(context.Background(), &domain.Website{URL: "https://dup.example"})
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestGetWebsite_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetWebsite(context.Background(), 999)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetWebsitesByIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := seedWebsite(t, s, "https://a.example")
	seedWebsite(t, s, "https://b.example")
	c := seedWebsite(t, s, "https://c.example")

	got, err := s.GetWebsitesByIDs(ctx, []int64{a.ID, c.ID, 12345})
	if err != nil {
		t.Fatalf("GetWebsitesByIDs: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 websites, got %d", len(got))
	}

	empty, err := s.GetWebsitesByIDs(ctx, nil)
	if err != nil {
		t.Fatalf("GetWebsitesByIDs(nil): %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", empty)
	}
}

func TestListWebsites_OrderedByURL(t *testing.T) {
	s := newTestStore(t)
	seedWebsite(t, s, "https://zeta.example")
	seedWebsite(t, s, "https://alpha.example")

	got, err := s.ListWebsites(context.Background())
	if err != nil {
		t.Fatalf("ListWebsites: %v", err)
	}
	if len(got) != 2 || got[0].URL != "https://alpha.example" {
		t.Errorf("unexpected order: %+v", got)
	}
}
