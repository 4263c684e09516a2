package sqlite

import (
	"context"
	"database/sql"

	"github.com/leadboard/leadboard-server/internal/domain"
)

// AddLeadTag inserts the association and sets lt.ID.
// The UNIQUE(lead_id, tag_id) index turns a concurrent duplicate into store.ErrAlreadyExists;
// a missing lead or tag yields store.ErrInvalidReference.
func (s *Store) AddLeadTag(ctx context.Context, lt *domain.LeadTag) error {
	if lt.CreatedAt.IsZero() {
		lt.CreatedAt = s.now().UTC()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO lead_tags (lead_id, tag_id, created_by, created_at)
		VALUES (?, ?, ?, ?)`,
		lt.LeadID,
		lt.TagID,
		nullableString(lt.CreatedBy),
		formatTime(lt.CreatedAt),
	)
	if err != nil {
		return mapConstraintErr(err)
	}

	lt.ID, err = res.LastInsertId()
	return err
}

// RemoveLeadTag deletes the association if present.
func (s *Store) RemoveLeadTag(ctx context.Context, leadID, tagID int64) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM lead_tags WHERE lead_id = ? AND tag_id = ?`, leadID, tagID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// LeadTagExists reports whether the lead already carries the tag.
func (s *Store) LeadTagExists(ctx context.Context, leadID, tagID int64) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM lead_tags WHERE lead_id = ? AND tag_id = ?`, leadID, tagID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetTagsForLead returns the lead's tags ordered by name.
func (s *Store) GetTagsForLead(ctx context.Context, leadID int64) ([]*domain.Tag, error) {
	byLead, err := s.GetTagsForLeads(ctx, []int64{leadID})
	if err != nil {
		return nil, err
	}
	if tags, ok := byLead[leadID]; ok {
		return tags, nil
	}
	return []*domain.Tag{}, nil
}

// GetTagsForLeads joins lead_tags to tags for all leadIDs in one query per chunk.
func (s *Store) GetTagsForLeads(ctx context.Context, leadIDs []int64) (map[int64][]*domain.Tag, error) {
	result := make(map[int64][]*domain.Tag, len(leadIDs))

	for _, chunk := range chunks(leadIDs) {
		rows, err := s.db.QueryContext(ctx, `
			SELECT lt.lead_id, t.id, t.name, t.color, t.description, t.created_by, t.created_at, t.updated_at
			FROM lead_tags lt
			JOIN tags t ON t.id = lt.tag_id
			WHERE lt.lead_id IN (`+placeholders(len(chunk))+`)
			ORDER BY lt.lead_id, t.name`,
			toArgs(chunk)...)
		if err != nil {
			return nil, err
		}

		if err := collectLeadTags(rows, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func collectLeadTags(rows *sql.Rows, dst map[int64][]*domain.Tag) error {
	defer rows.Close()
	for rows.Next() {
		var leadID int64
		t, err := scanTag(scanFunc(func(dest ...any) error {
			return rows.Scan(append([]any{&leadID}, dest...)...)
		}))
		if err != nil {
			return err
		}
		dst[leadID] = append(dst[leadID], t)
	}
	return rows.Err()
}

// scanFunc adapts a function to the Scan interface used by the scanners.
type scanFunc func(dest ...any) error

func (f scanFunc) Scan(dest ...any) error { return f(dest...) }
