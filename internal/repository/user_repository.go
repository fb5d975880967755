package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/studyspace/study-space-api/internal/model"
	"github.com/studyspace/study-space-api/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = `id,role,status,email,password_hash,full_name,first_name,last_name,
	student_id,department,year_of_study,phone,profile_image_url,joined_at`

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Role, &u.Status, &u.Email, &u.PasswordHash, &u.FullName,
		&u.FirstName, &u.LastName, &u.StudentID, &u.Department, &u.YearOfStudy,
		&u.Phone, &u.ProfileImageURL, &u.JoinedAt)
	return u, err
}

// Create inserts a new student account and returns its ID.  Duplicate key
// violations on email and student_id are mapped to sentinel errors by
// inspecting the MySQL 1062 message for the index name.
func (r *UserRepo) Create(ctx context.Context, u *model.User, password string, cost int) (uint64, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (role,status,email,password_hash,full_name,first_name,last_name,student_id,department,year_of_study,phone)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		u.Role, u.Status, u.Email, hash, u.FullName, u.FirstName, u.LastName,
		u.StudentID, u.Department, u.YearOfStudy, u.Phone)
	if err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "1062") {
			if strings.Contains(msg, "student") {
				return 0, ErrStudentIDExists
			}
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// ProfileUpdate carries the optional profile fields a user may change about
// themselves.  Nil pointers mean "leave unchanged"; role, status and email
// are deliberately absent.
type ProfileUpdate struct {
	FullName        *string
	FirstName       *string
	LastName        *string
	Department      *string
	YearOfStudy     *int
	Phone           *string
	ProfileImageURL *string
}

// UpdateProfile applies the non-nil fields of upd to the user row.  When no
// field is set the call is a no-op returning nil.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, upd ProfileUpdate) error {
	set := []string{}
	args := []any{}
	add := func(col string, v any) {
		set = append(set, col+"=?")
		args = append(args, v)
	}
	if upd.FullName != nil {
		add("full_name", *upd.FullName)
	}
	if upd.FirstName != nil {
		add("first_name", *upd.FirstName)
	}
	if upd.LastName != nil {
		add("last_name", *upd.LastName)
	}
	if upd.Department != nil {
		add("department", *upd.Department)
	}
	if upd.YearOfStudy != nil {
		add("year_of_study", *upd.YearOfStudy)
	}
	if upd.Phone != nil {
		add("phone", *upd.Phone)
	}
	if upd.ProfileImageURL != nil {
		add("profile_image_url", *upd.ProfileImageURL)
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(set, ", ")+" WHERE id=?", args...)
	return err
}

// AdminUpdate sets role and/or status on a user row.  Nil means unchanged.
func (r *UserRepo) AdminUpdate(ctx context.Context, id uint64, role, status *string) error {
	set := []string{}
	args := []any{}
	if role != nil {
		set = append(set, "role=?")
		args = append(args, *role)
	}
	if status != nil {
		set = append(set, "status=?")
		args = append(args, *status)
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(set, ", ")+" WHERE id=?", args...)
	return err
}

// UserQuery defines filters & pagination for the admin user list.
type UserQuery struct {
	Q      string
	Status string
	Limit  int
	Offset int
}

// List returns one page of user summaries plus the total match count.  The
// booking count and average rating are computed with correlated subqueries
// so the page stays a single round trip.
func (r *UserRepo) List(ctx context.Context, q UserQuery) ([]model.UserSummary, int64, error) {
	where := []string{}
	args := []any{}

	if q.Q != "" {
		needle := "%" + strings.ToLower(q.Q) + "%"
		where = append(where,
			"(LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(COALESCE(student_id,'')) LIKE ?)")
		args = append(args, needle, needle, needle)
	}
	if q.Status != "" {
		where = append(where, "status=?")
		args = append(args, q.Status)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := `SELECT
			u.id, u.full_name, u.email, u.student_id, u.department,
			u.profile_image_url, u.status,
			(SELECT COUNT(*) FROM bookings b WHERE b.user_id = u.id) AS total_bookings,
			(SELECT AVG(r.rating) FROM user_ratings r WHERE r.rated_user_id = u.id) AS average_rating
		FROM users u
		WHERE ` + cond + `
		ORDER BY u.joined_at DESC
		LIMIT ? OFFSET ?`
	argsData := append(append([]any{}, args...), q.Limit, q.Offset)

	rows, err := r.DB.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.UserSummary, 0, q.Limit)
	for rows.Next() {
		var s model.UserSummary
		if err := rows.Scan(&s.ID, &s.FullName, &s.Email, &s.StudentID, &s.Department,
			&s.ProfileImageURL, &s.Status, &s.TotalBookings, &s.AverageRating); err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}
	return out, total, rows.Err()
}
