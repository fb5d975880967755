package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/studyspace/study-space-api/internal/model"
)

type SpaceRepo struct{ db *sql.DB }

func NewSpaceRepo(db *sql.DB) *SpaceRepo { return &SpaceRepo{db: db} }

// SpaceQuery defines filters & pagination for browsing spaces.  Utilities
// lists amenity keys that must ALL be present on a matching space.
type SpaceQuery struct {
	Q           string
	Building    string
	Floor       string
	CapacityMin int
	CapacityMax int
	Utilities   []string
	Status      string
	Limit       int
	Offset      int
}

const spaceColumns = `s.id, s.name, s.building, s.floor, s.location, s.capacity,
	s.image_url, s.status, s.created_at, s.updated_at`

func scanSpace(sc interface{ Scan(...any) error }) (model.Space, error) {
	var sp model.Space
	err := sc.Scan(&sp.ID, &sp.Name, &sp.Building, &sp.Floor, &sp.Location,
		&sp.Capacity, &sp.ImageURL, &sp.Status, &sp.CreatedAt, &sp.UpdatedAt)
	return sp, err
}

// List returns one page of spaces with their utility key sets plus the total
// match count.  Each requested utility key adds an IN-subquery condition, so
// filtering is AND semantics across keys.
func (r *SpaceRepo) List(ctx context.Context, q SpaceQuery) ([]model.Space, int64, error) {
	where := []string{}
	args := []any{}

	if q.Q != "" {
		needle := "%" + strings.ToLower(q.Q) + "%"
		where = append(where, "(LOWER(s.name) LIKE ? OR LOWER(s.building) LIKE ?)")
		args = append(args, needle, needle)
	}
	if q.Building != "" {
		where = append(where, "s.building = ?")
		args = append(args, q.Building)
	}
	if q.Floor != "" {
		where = append(where, "s.floor = ?")
		args = append(args, q.Floor)
	}
	if q.CapacityMin > 0 {
		where = append(where, "s.capacity >= ?")
		args = append(args, q.CapacityMin)
	}
	if q.CapacityMax > 0 {
		where = append(where, "s.capacity <= ?")
		args = append(args, q.CapacityMax)
	}
	if q.Status != "" {
		where = append(where, "s.status = ?")
		args = append(args, q.Status)
	}
	for _, key := range q.Utilities {
		where = append(where,
			`s.id IN (SELECT su.space_id FROM space_utilities su
				JOIN utilities ut ON ut.id = su.utility_id WHERE ut.`+"`key`"+` = ?)`)
		args = append(args, key)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM spaces s WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := "SELECT " + spaceColumns + " FROM spaces s WHERE " + cond +
		" ORDER BY s.building, s.name LIMIT ? OFFSET ?"
	argsData := append(append([]any{}, args...), q.Limit, q.Offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Space, 0, q.Limit)
	for rows.Next() {
		sp, err := scanSpace(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	ptrs := make([]*model.Space, len(out))
	for i := range out {
		ptrs[i] = &out[i]
	}
	if err := attachUtilities(ctx, r.db, ptrs); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetByID fetches a single space with its utility keys.
func (r *SpaceRepo) GetByID(ctx context.Context, id uint64) (model.Space, error) {
	sp, err := scanSpace(r.db.QueryRowContext(ctx,
		"SELECT "+spaceColumns+" FROM spaces s WHERE s.id=? LIMIT 1", id))
	if err != nil {
		return model.Space{}, err
	}
	if err := attachUtilities(ctx, r.db, []*model.Space{&sp}); err != nil {
		return model.Space{}, err
	}
	return sp, nil
}

// Create inserts a space and links the given utility keys, then returns the
// new ID.  Unknown keys are silently skipped, matching the behavior the
// admin console relies on.
func (r *SpaceRepo) Create(ctx context.Context, sp *model.Space, utilities []string) (uint64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO spaces (name,building,floor,location,capacity,image_url,status)
		 VALUES (?,?,?,?,?,?,?)`,
		sp.Name, sp.Building, sp.Floor, sp.Location, sp.Capacity, sp.ImageURL, sp.Status)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err := linkUtilities(ctx, tx, uint64(id), utilities); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// SpaceUpdate carries the optional space fields for a partial update.  A nil
// Utilities pointer leaves the key set untouched; a non-nil pointer replaces
// it wholesale (including with an empty set).
type SpaceUpdate struct {
	Name      *string
	Building  *string
	Floor     *string
	Location  *string
	Capacity  *int
	ImageURL  *string
	Status    *string
	Utilities *[]string
}

// Update applies the non-nil fields of upd, bumping updated_at.  It returns
// sql.ErrNoRows when the space does not exist.
func (r *SpaceRepo) Update(ctx context.Context, id uint64, upd SpaceUpdate) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var exists uint64
	if err := tx.QueryRowContext(ctx,
		"SELECT id FROM spaces WHERE id=? LIMIT 1", id).Scan(&exists); err != nil {
		return err
	}

	set := []string{"updated_at=UTC_TIMESTAMP()"}
	args := []any{}
	add := func(col string, v any) {
		set = append(set, col+"=?")
		args = append(args, v)
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Building != nil {
		add("building", *upd.Building)
	}
	if upd.Floor != nil {
		add("floor", *upd.Floor)
	}
	if upd.Location != nil {
		add("location", *upd.Location)
	}
	if upd.Capacity != nil {
		add("capacity", *upd.Capacity)
	}
	if upd.ImageURL != nil {
		add("image_url", *upd.ImageURL)
	}
	if upd.Status != nil {
		add("status", *upd.Status)
	}
	args = append(args, id)
	if _, err := tx.ExecContext(ctx,
		"UPDATE spaces SET "+strings.Join(set, ", ")+" WHERE id=?", args...); err != nil {
		return err
	}

	if upd.Utilities != nil {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM space_utilities WHERE space_id=?", id); err != nil {
			return err
		}
		if err := linkUtilities(ctx, tx, id, *upd.Utilities); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Delete removes a space.  Returns sql.ErrNoRows when nothing was deleted.
func (r *SpaceRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM spaces WHERE id=?", id)
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

// linkUtilities resolves keys to utility rows and inserts the join records.
func linkUtilities(ctx context.Context, tx *sql.Tx, spaceID uint64, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	placeholders := strings.TrimRight(strings.Repeat("?,", len(keys)), ",")
	args := make([]any, 0, len(keys)+1)
	args = append(args, spaceID)
	for _, k := range keys {
		args = append(args, k)
	}
	_, err := tx.ExecContext(ctx,
		"INSERT INTO space_utilities (space_id, utility_id) SELECT ?, id FROM utilities WHERE `key` IN ("+placeholders+")",
		args...)
	return err
}

// attachUtilities loads the utility key sets for the given spaces in one
// query and fills their Utilities slices.  Spaces without amenities get an
// empty (non-nil) slice so the JSON stays `[]` rather than `null`.  Shared
// with the booking repository, which embeds spaces in its responses.
func attachUtilities(ctx context.Context, db *sql.DB, spaces []*model.Space) error {
	for _, sp := range spaces {
		sp.Utilities = []string{}
	}
	if len(spaces) == 0 {
		return nil
	}
	args := make([]any, 0, len(spaces))
	index := make(map[uint64][]*model.Space, len(spaces))
	seen := make(map[uint64]bool, len(spaces))
	for _, sp := range spaces {
		if !seen[sp.ID] {
			seen[sp.ID] = true
			args = append(args, sp.ID)
		}
		index[sp.ID] = append(index[sp.ID], sp)
	}
	placeholders := strings.TrimRight(strings.Repeat("?,", len(args)), ",")
	rows, err := db.QueryContext(ctx,
		"SELECT su.space_id, ut.`key` FROM space_utilities su JOIN utilities ut ON ut.id = su.utility_id WHERE su.space_id IN ("+placeholders+") ORDER BY ut.`key`",
		args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var spaceID uint64
		var key string
		if err := rows.Scan(&spaceID, &key); err != nil {
			return err
		}
		for _, sp := range index[spaceID] {
			sp.Utilities = append(sp.Utilities, key)
		}
	}
	return rows.Err()
}
