package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/findyourad/internal/domain"
)

// Users persists marketplace participants and their chosen role.
type Users struct {
	db *sqlx.DB
}

// NewUsers returns a user repository over the shared connection pool.
func NewUsers(db *sqlx.DB) *Users {
	return &Users{db: db}
}

// GetRole resolves the role registered for the given user id.
// Returns domain.ErrNotFound when the user never picked a role.
func (r *Users) GetRole(ctx context.Context, userID int64) (domain.Role, error) {
	query, args, err := sq.Select("role").
		From("users").
		Where(sq.Eq{"user_id": userID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build sql query: %v", err)
	}

	var role domain.Role
	if err := r.db.GetContext(ctx, &role, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return role, nil
}

// CountUsers returns the number of registered participants.
func (r *Users) CountUsers(ctx context.Context) (int, error) {
	query, args, err := sq.Select("COUNT(*)").
		From("users").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build sql query: %v", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, err
	}
	return total, nil
}

// SetRole registers or replaces the role for the given user id.
// A later selection overwrites the prior role; rows are never deleted.
func (r *Users) SetRole(ctx context.Context, userID int64, username string, role domain.Role) error {
	query, args, err := sq.Insert("users").
		Columns("user_id", "role", "username").
		Values(userID, role, username).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role, username = EXCLUDED.username").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}
