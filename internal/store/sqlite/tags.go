package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/leadboard/leadboard-server/internal/domain"
	"github.com/leadboard/leadboard-server/internal/store"
)

// tagColumns must match the scan order in scanTag.
const tagColumns = `id, name, color, description, created_by, created_at, updated_at`

func scanTag(scanner interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var (
		t           domain.Tag
		description sql.NullString
		createdBy   sql.NullString
		createdAt   string
		updatedAt   string
	)

	if err := scanner.Scan(&t.ID, &t.Name, &t.Color, &description, &createdBy, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	t.Description = stringPtr(description)
	t.CreatedBy = stringPtr(createdBy)
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &t, nil
}

// CreateTag inserts t and sets its ID. An empty color gets the default.
// Returns store.ErrAlreadyExists on a duplicate name.
func (s *Store) CreateTag(ctx context.Context, t *domain.Tag) error {
	now := s.now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}
	if t.Color == "" {
		t.Color = domain.DefaultTagColor
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO tags (name, color, description, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.Name,
		t.Color,
		nullableString(t.Description),
		nullableString(t.CreatedBy),
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
	)
	if err != nil {
		return mapConstraintErr(err)
	}

	t.ID, err = res.LastInsertId()
	return err
}

// GetTag returns the tag with id, or store.ErrNotFound.
func (s *Store) GetTag(ctx context.Context, id int64) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+tagColumns+` FROM tags WHERE id = ?`, id)
	t, err := scanTag(row)
	if err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

// ListTags returns all tags ordered by name.
func (s *Store) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+tagColumns+` FROM tags ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []*domain.Tag{}
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// UpdateTag writes name, color and description of t and refreshes UpdatedAt.
// Returns store.ErrNotFound for an unknown tag and store.ErrAlreadyExists for a taken name.
func (s *Store) UpdateTag(ctx context.Context, t *domain.Tag) error {
	t.UpdatedAt = s.now().UTC()

	res, err := s.db.ExecContext(ctx, `
		UPDATE tags SET name = ?, color = ?, description = ?, updated_at = ?
		WHERE id = ?`,
		t.Name,
		t.Color,
		nullableString(t.Description),
		formatTime(t.UpdatedAt),
		t.ID,
	)
	if err != nil {
		return mapConstraintErr(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteTag removes the tag; its lead associations go with it.
// Returns store.ErrNotFound for an unknown tag.
func (s *Store) DeleteTag(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
