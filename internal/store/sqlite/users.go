package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/leadboard/leadboard-server/internal/domain"
	"github.com/leadboard/leadboard-server/internal/store"
)

// userColumns must match the scan order in scanUser.
const userColumns = `id, name, email, password_hash, role, banned, ban_reason, ban_expires, created_at, updated_at`

func scanUser(scanner interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var (
		u          domain.User
		role       string
		banned     int
		banReason  sql.NullString
		banExpires sql.NullString
		createdAt  string
		updatedAt  string
	)

	err := scanner.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&role,
		&banned,
		&banReason,
		&banExpires,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.Role = domain.Role(role)
	u.Banned = banned != 0
	u.BanReason = stringPtr(banReason)
	if u.BanExpires, err = parseNullableTime(banExpires); err != nil {
		return nil, fmt.Errorf("parse ban_expires: %w", err)
	}
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if u.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &u, nil
}

// CreateUser inserts u. Emails are unique regardless of case.
// Returns store.ErrAlreadyExists for a duplicate id or email.
func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	now := s.now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}
	if u.Role == "" {
		u.Role = domain.RoleUser
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (
			id, name, email, email_lower, password_hash, role,
			banned, ban_reason, ban_expires, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID,
		u.Name,
		u.Email,
		strings.ToLower(u.Email),
		u.PasswordHash,
		string(u.Role),
		boolToInt(u.Banned),
		nullableString(u.BanReason),
		nullTimeString(u.BanExpires),
		formatTime(u.CreatedAt),
		formatTime(u.UpdatedAt),
	)
	return mapConstraintErr(err)
}

// GetUser returns the user with id, or store.ErrNotFound.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// GetUserByEmail looks a user up by case-insensitive email, or returns store.ErrNotFound.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email_lower = ?`, strings.ToLower(strings.TrimSpace(email)))
	u, err := scanUser(row)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// GetUsersByIDs returns the users among ids that exist, in no particular order.
func (s *Store) GetUsersByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(ids))
	for _, chunk := range chunks(ids) {
		rows, err := s.db.QueryContext(ctx,
			`SELECT `+userColumns+` FROM users WHERE id IN (`+placeholders(len(chunk))+`)`,
			toArgs(chunk)...)
		if err != nil {
			return nil, err
		}
		if users, err = collectUsers(rows, users); err != nil {
			return nil, err
		}
	}
	return users, nil
}

// ListUsers returns all users ordered by name.
func (s *Store) ListUsers(ctx context.Context) ([]*domain.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows, []*domain.User{})
}

// UpdateUser writes every mutable field of u and refreshes UpdatedAt.
func (s *Store) UpdateUser(ctx context.Context, u *domain.User) error {
	u.UpdatedAt = s.now().UTC()

	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET
			name = ?, email = ?, email_lower = ?, password_hash = ?, role = ?,
			banned = ?, ban_reason = ?, ban_expires = ?, updated_at = ?
		WHERE id = ?`,
		u.Name,
		u.Email,
		strings.ToLower(u.Email),
		u.PasswordHash,
		string(u.Role),
		boolToInt(u.Banned),
		nullableString(u.BanReason),
		nullTimeString(u.BanExpires),
		formatTime(u.UpdatedAt),
		u.ID,
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

// DeleteUser removes the user. Leads they owned become unassigned and
// tags or associations they created lose their creator.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
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

// CountUsers returns the number of accounts.
func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func collectUsers(rows *sql.Rows, dst []*domain.User) ([]*domain.User, error) {
	defer rows.Close()
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		dst = append(dst, u)
	}
	return dst, rows.Err()
}
