package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/studyspace/study-space-api/internal/model"
)

// UtilityRepo provides data access to the utilities table.  Deleting a
// utility removes its join rows via the foreign key but does not revisit the
// spaces that referenced the key; the admin console documents this as
// accepted behavior.
type UtilityRepo struct{ db *sql.DB }

func NewUtilityRepo(db *sql.DB) *UtilityRepo { return &UtilityRepo{db: db} }

// List returns all utilities ordered by label.
func (r *UtilityRepo) List(ctx context.Context) ([]model.Utility, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, `key`, label, description FROM utilities ORDER BY label")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Utility{}
	for rows.Next() {
		var u model.Utility
		if err := rows.Scan(&u.ID, &u.Key, &u.Label, &u.Description); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// GetByID fetches a single utility.
func (r *UtilityRepo) GetByID(ctx context.Context, id uint64) (model.Utility, error) {
	var u model.Utility
	err := r.db.QueryRowContext(ctx,
		"SELECT id, `key`, label, description FROM utilities WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Key, &u.Label, &u.Description)
	return u, err
}

// Create inserts a utility and returns its ID.  A duplicate key collides
// with the unique index and is reported as ErrUtilityKeyExists.
func (r *UtilityRepo) Create(ctx context.Context, u *model.Utility) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO utilities (`key`, label, description) VALUES (?,?,?)",
		u.Key, u.Label, u.Description)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrUtilityKeyExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update changes label and/or description.  The key column is never part of
// the SET clause; it is immutable after creation.
func (r *UtilityRepo) Update(ctx context.Context, id uint64, label, description *string) error {
	set := []string{}
	args := []any{}
	if label != nil {
		set = append(set, "label=?")
		args = append(args, *label)
	}
	if description != nil {
		set = append(set, "description=?")
		args = append(args, *description)
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)
	res, err := r.db.ExecContext(ctx,
		"UPDATE utilities SET "+strings.Join(set, ", ")+" WHERE id=?", args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish "row missing" from "values unchanged".
		var exists uint64
		if err := r.db.QueryRowContext(ctx,
			"SELECT id FROM utilities WHERE id=? LIMIT 1", id).Scan(&exists); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a utility.  Returns sql.ErrNoRows when nothing was deleted.
func (r *UtilityRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM utilities WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
