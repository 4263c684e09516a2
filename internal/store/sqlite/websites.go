package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/leadboard/leadboard-server/internal/domain"
)

// websiteColumns must match the scan order in scanWebsite.
const websiteColumns = `id, url, description, last_scraped_at, created_at, updated_at`

func scanWebsite(scanner interface{ Scan(dest ...any) error }) (*domain.Website, error) {
	var (
		w           domain.Website
		description sql.NullString
		lastScraped sql.NullString
		createdAt   string
		updatedAt   string
	)

	if err := scanner.Scan(&w.ID, &w.URL, &description, &lastScraped, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	w.Description = stringPtr(description)
	if w.LastScrapedAt, err = parseNullableTime(lastScraped); err != nil {
		return nil, fmt.Errorf("parse last_scraped_at: %w", err)
	}
	if w.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if w.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &w, nil
}

// CreateWebsite inserts w and sets its ID. Timestamps default to now.
// Returns store.ErrAlreadyExists for a duplicate URL.
func (s *Store) CreateWebsite(ctx context.Context, w *domain.Website) error {
	now := s.now().UTC()
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
	if w.UpdatedAt.IsZero() {
		w.UpdatedAt = now
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO websites (url, description, last_scraped_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		w.URL,
		nullableString(w.Description),
		nullTimeString(w.LastScrapedAt),
		formatTime(w.CreatedAt),
		formatTime(w.UpdatedAt),
	)
	if err != nil {
		return mapConstraintErr(err)
	}

	w.ID, err = res.LastInsertId()
	return err
}

// GetWebsite returns the website with id, or store.ErrNotFound.
func (s *Store) GetWebsite(ctx context.Context, id int64) (*domain.Website, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+websiteColumns+` FROM websites WHERE id = ?`, id)
	w, err := scanWebsite(row)
	if err != nil {
		return nil, notFound(err)
	}
	return w, nil
}

// GetWebsitesByIDs returns the websites among ids that exist, in no particular order.
func (s *Store) GetWebsitesByIDs(ctx context.Context, ids []int64) ([]*domain.Website, error) {
	websites := make([]*domain.Website, 0, len(ids))
	for _, chunk := range chunks(ids) {
		rows, err := s.db.QueryContext(ctx,
			`SELECT `+websiteColumns+` FROM websites WHERE id IN (`+placeholders(len(chunk))+`)`,
			toArgs(chunk)...)
		if err != nil {
			return nil, err
		}
		websites, err = collectWebsites(rows, websites)
		if err != nil {
			return nil, err
		}
	}
	return websites, nil
}

// ListWebsites returns all websites ordered by URL.
func (s *Store) ListWebsites(ctx context.Context) ([]*domain.Website, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+websiteColumns+` FROM websites ORDER BY url ASC`)
	if err != nil {
		return nil, err
	}
	return collectWebsites(rows, []*domain.Website{})
}

func collectWebsites(rows *sql.Rows, dst []*domain.Website) ([]*domain.Website, error) {
	defer rows.Close()
	for rows.Next() {
		w, err := scanWebsite(rows)
		if err != nil {
			return nil, err
		}
		dst = append(dst, w)
	}
	return dst, rows.Err()
}
