package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/studyspace/study-space-api/internal/model"
)

type RatingRepo struct{ db *sql.DB }

func NewRatingRepo(db *sql.DB) *RatingRepo { return &RatingRepo{db: db} }

// RatingQuery defines filters & pagination for listing ratings.
type RatingQuery struct {
	Q           string
	RatedUserID uint64
	Limit       int
	Offset      int
}

const ratingColumns = `id, rated_user_id, booking_id, rating, comment, created_at, created_by`

// List returns one page of ratings (newest first) plus the total count.
func (r *RatingRepo) List(ctx context.Context, q RatingQuery) ([]model.Rating, int64, error) {
	where := []string{}
	args := []any{}

	if q.Q != "" {
		where = append(where, "LOWER(COALESCE(comment,'')) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Q)+"%")
	}
	if q.RatedUserID > 0 {
		where = append(where, "rated_user_id = ?")
		args = append(args, q.RatedUserID)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM user_ratings WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	argsData := append(append([]any{}, args...), q.Limit, q.Offset)
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+ratingColumns+" FROM user_ratings WHERE "+cond+
			" ORDER BY created_at DESC LIMIT ? OFFSET ?", argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Rating, 0, q.Limit)
	for rows.Next() {
		var rt model.Rating
		if err := rows.Scan(&rt.ID, &rt.RatedUserID, &rt.BookingID, &rt.Rating,
			&rt.Comment, &rt.CreatedAt, &rt.CreatedBy); err != nil {
			return nil, 0, err
		}
		out = append(out, rt)
	}
	return out, total, rows.Err()
}

// ListByUser returns all ratings received by one user, newest first.
func (r *RatingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Rating, error) {
	items, _, err := r.List(ctx, RatingQuery{RatedUserID: userID, Limit: 1000})
	return items, err
}

// GetByID fetches a single rating.
func (r *RatingRepo) GetByID(ctx context.Context, id uint64) (model.Rating, error) {
	var rt model.Rating
	err := r.db.QueryRowContext(ctx,
		"SELECT "+ratingColumns+" FROM user_ratings WHERE id=? LIMIT 1",
		id).Scan(&rt.ID, &rt.RatedUserID, &rt.BookingID, &rt.Rating,
		&rt.Comment, &rt.CreatedAt, &rt.CreatedBy)
	return rt, err
}

// ExistsForBooking reports whether a rating already references the booking.
// The admin console enforces one rating per completed booking.
func (r *RatingRepo) ExistsForBooking(ctx context.Context, bookingID uint64) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM user_ratings WHERE booking_id=?", bookingID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create inserts a rating and returns its ID.
func (r *RatingRepo) Create(ctx context.Context, rt *model.Rating) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO user_ratings (rated_user_id, booking_id, rating, comment, created_by)
		 VALUES (?,?,?,?,?)`,
		rt.RatedUserID, rt.BookingID, rt.Rating, rt.Comment, rt.CreatedBy)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update changes the score and comment of a rating.
func (r *RatingRepo) Update(ctx context.Context, id uint64, rating int, comment *string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE user_ratings SET rating=?, comment=? WHERE id=?", rating, comment, id)
	return err
}

// Delete removes a rating.  Returns sql.ErrNoRows when nothing was deleted.
func (r *RatingRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM user_ratings WHERE id=?", id)
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
