package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/studyspace/study-space-api/internal/model"
)

type PenaltyRepo struct{ db *sql.DB }

func NewPenaltyRepo(db *sql.DB) *PenaltyRepo { return &PenaltyRepo{db: db} }

// PenaltyQuery defines filters & pagination for listing penalties.
type PenaltyQuery struct {
	Q      string
	Status string
	UserID uint64
	Limit  int
	Offset int
}

const penaltyColumns = `id, user_id, booking_id, reason, points, status, created_at, created_by`

// List returns one page of penalties (newest first) plus the total count.
func (r *PenaltyRepo) List(ctx context.Context, q PenaltyQuery) ([]model.Penalty, int64, error) {
	where := []string{}
	args := []any{}

	if q.Q != "" {
		where = append(where, "LOWER(reason) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Q)+"%")
	}
	if q.Status != "" {
		where = append(where, "status = ?")
		args = append(args, q.Status)
	}
	if q.UserID > 0 {
		where = append(where, "user_id = ?")
		args = append(args, q.UserID)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM user_penalties WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	argsData := append(append([]any{}, args...), q.Limit, q.Offset)
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+penaltyColumns+" FROM user_penalties WHERE "+cond+
			" ORDER BY created_at DESC LIMIT ? OFFSET ?", argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Penalty, 0, q.Limit)
	for rows.Next() {
		var p model.Penalty
		if err := rows.Scan(&p.ID, &p.UserID, &p.BookingID, &p.Reason, &p.Points,
			&p.Status, &p.CreatedAt, &p.CreatedBy); err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

// ListByUser returns all penalties of one user, newest first.  Used by the
// admin user summary, which is not paginated.
func (r *PenaltyRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Penalty, error) {
	items, _, err := r.List(ctx, PenaltyQuery{UserID: userID, Limit: 1000})
	return items, err
}

// GetByID fetches a single penalty.
func (r *PenaltyRepo) GetByID(ctx context.Context, id uint64) (model.Penalty, error) {
	var p model.Penalty
	err := r.db.QueryRowContext(ctx,
		"SELECT "+penaltyColumns+" FROM user_penalties WHERE id=? LIMIT 1",
		id).Scan(&p.ID, &p.UserID, &p.BookingID, &p.Reason, &p.Points,
		&p.Status, &p.CreatedAt, &p.CreatedBy)
	return p, err
}

// Create inserts a penalty and returns its ID.
func (r *PenaltyRepo) Create(ctx context.Context, p *model.Penalty) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO user_penalties (user_id, booking_id, reason, points, status, created_by)
		 VALUES (?,?,?,?,?,?)`,
		p.UserID, p.BookingID, p.Reason, p.Points, p.Status, p.CreatedBy)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// UpdateStatus sets the penalty status.  Writing the same status twice is
// harmless; the handler re-reads the row afterwards either way.
func (r *PenaltyRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE user_penalties SET status=? WHERE id=?", status, id)
	return err
}
