package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/leadboard/leadboard-server/internal/domain"
	"github.com/leadboard/leadboard-server/internal/store"
)

// leadColumns must match the scan order in scanLead.
const leadColumns = `id, name, email, phone, job_title, location, company, description,
	contact_link, website_id, assigned_to, created_at, updated_at`

func scanLead(scanner interface{ Scan(dest ...any) error }) (*domain.Lead, error) {
	var (
		l                              domain.Lead
		name, email, phone, jobTitle   sql.NullString
		location, company, description sql.NullString
		contactLink, assignedTo        sql.NullString
		createdAt, updatedAt           string
	)

	err := scanner.Scan(
		&l.ID,
		&name,
		&email,
		&phone,
		&jobTitle,
		&location,
		&company,
		&description,
		&contactLink,
		&l.WebsiteID,
		&assignedTo,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	l.Name = stringPtr(name)
	l.Email = stringPtr(email)
	l.Phone = stringPtr(phone)
	l.JobTitle = stringPtr(jobTitle)
	l.Location = stringPtr(location)
	l.Company = stringPtr(company)
	l.Description = stringPtr(description)
	l.ContactLink = stringPtr(contactLink)
	l.AssignedTo = stringPtr(assignedTo)

	if l.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if l.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &l, nil
}

// CreateLead inserts l and sets its ID.
// Returns store.ErrInvalidReference when the website or assignee does not exist.
func (s *Store) CreateLead(ctx context.Context, l *domain.Lead) error {
	now := s.now().UTC()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	if l.UpdatedAt.IsZero() {
		l.UpdatedAt = now
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO leads (
			name, email, phone, job_title, location, company, description,
			contact_link, website_id, assigned_to, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nullableString(l.Name),
		nullableString(l.Email),
		nullableString(l.Phone),
		nullableString(l.JobTitle),
		nullableString(l.Location),
		nullableString(l.Company),
		nullableString(l.Description),
		nullableString(l.ContactLink),
		l.WebsiteID,
		nullableString(l.AssignedTo),
		formatTime(l.CreatedAt),
		formatTime(l.UpdatedAt),
	)
	if err != nil {
		return mapConstraintErr(err)
	}

	l.ID, err = res.LastInsertId()
	return err
}

// GetLead returns the lead with id, or store.ErrNotFound.
func (s *Store) GetLead(ctx context.Context, id int64) (*domain.Lead, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = ?`, id)
	l, err := scanLead(row)
	if err != nil {
		return nil, notFound(err)
	}
	return l, nil
}

// ListLeads returns leads matching q ordered by id.
func (s *Store) ListLeads(ctx context.Context, q domain.LeadQuery) ([]*domain.Lead, error) {
	var (
		where []string
		args  []any
	)
	switch {
	case q.AssignedTo != "":
		where = append(where, "assigned_to = ?")
		args = append(args, q.AssignedTo)
	case q.Unassigned:
		where = append(where, "assigned_to IS NULL")
	}

	query := `SELECT ` + leadColumns + ` FROM leads`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []*domain.Lead{}
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

// AssignLead sets the lead's owner, or clears it when userID is nil.
// Returns store.ErrNotFound for an unknown lead and store.ErrInvalidReference for an unknown user.
func (s *Store) AssignLead(ctx context.Context, leadID int64, userID *string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE leads SET assigned_to = ?, updated_at = ? WHERE id = ?`,
		nullableString(userID), formatTime(s.now()), leadID)
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
