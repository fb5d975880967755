package client

import (
	"context"
	"fmt"
	"strconv"
)

// PenaltiesService wraps the admin penalty endpoints.
type PenaltiesService struct {
	c *Client
}

type PenaltyFilter struct {
	Q      string
	Status string
	UserID uint64
	Limit  int
	Offset int
}

func (f PenaltyFilter) params() Params {
	p := Params{"q": f.Q, "status": f.Status}
	if f.UserID > 0 {
		p["userId"] = strconv.FormatUint(f.UserID, 10)
	}
	if f.Limit > 0 {
		p["limit"] = strconv.Itoa(f.Limit)
	}
	if f.Offset > 0 {
		p["offset"] = strconv.Itoa(f.Offset)
	}
	return p
}

type CreatePenaltyRequest struct {
	UserID    uint64  `json:"user_id"`
	BookingID *uint64 `json:"booking_id,omitempty"`
	Reason    string  `json:"reason"`
	Points    int     `json:"points"`
}

func (s *PenaltiesService) List(ctx context.Context, f PenaltyFilter) (Page[Penalty], error) {
	var out Page[Penalty]
	err := s.c.get(ctx, "/penalties", f.params(), &out)
	return out, err
}

func (s *PenaltiesService) Create(ctx context.Context, req CreatePenaltyRequest) (Penalty, error) {
	var out Penalty
	err := s.c.post(ctx, "/penalties", req, &out)
	return out, err
}

// Resolve marks an active penalty resolved. Resolving twice is a no-op
// server-side and still returns the row.
func (s *PenaltiesService) Resolve(ctx context.Context, id uint64) (Penalty, error) {
	var out Penalty
	err := s.c.patch(ctx, fmt.Sprintf("/penalties/%d", id), map[string]string{"status": "resolved"}, &out)
	return out, err
}

// RatingsService wraps the admin rating endpoints.
type RatingsService struct {
	c *Client
}

type RatingFilter struct {
	Q           string
	RatedUserID uint64
	Limit       int
	Offset      int
}

func (f RatingFilter) params() Params {
	p := Params{"q": f.Q}
	if f.RatedUserID > 0 {
		p["ratedUserId"] = strconv.FormatUint(f.RatedUserID, 10)
	}
	if f.Limit > 0 {
		p["limit"] = strconv.Itoa(f.Limit)
	}
	if f.Offset > 0 {
		p["offset"] = strconv.Itoa(f.Offset)
	}
	return p
}

type CreateRatingRequest struct {
	RatedUserID uint64  `json:"rated_user_id"`
	BookingID   *uint64 `json:"booking_id,omitempty"`
	Rating      int     `json:"rating"`
	Comment     *string `json:"comment,omitempty"`
}

type UpdateRatingRequest struct {
	Rating  int     `json:"rating"`
	Comment *string `json:"comment,omitempty"`
}

func (s *RatingsService) List(ctx context.Context, f RatingFilter) (Page[Rating], error) {
	var out Page[Rating]
	err := s.c.get(ctx, "/ratings", f.params(), &out)
	return out, err
}

func (s *RatingsService) Create(ctx context.Context, req CreateRatingRequest) (Rating, error) {
	var out Rating
	err := s.c.post(ctx, "/ratings", req, &out)
	return out, err
}

func (s *RatingsService) Update(ctx context.Context, id uint64, req UpdateRatingRequest) (Rating, error) {
	var out Rating
	err := s.c.patch(ctx, fmt.Sprintf("/ratings/%d", id), req, &out)
	return out, err
}

func (s *RatingsService) Delete(ctx context.Context, id uint64) error {
	return s.c.delete(ctx, fmt.Sprintf("/ratings/%d", id))
}

// AdminUsersService wraps user administration.
type AdminUsersService struct {
	c *Client
}

type UserFilter struct {
	Q      string
	Status string
	Limit  int
	Offset int
}

func (f UserFilter) params() Params {
	p := Params{"q": f.Q, "status": f.Status}
	if f.Limit > 0 {
		p["limit"] = strconv.Itoa(f.Limit)
	}
	if f.Offset > 0 {
		p["offset"] = strconv.Itoa(f.Offset)
	}
	return p
}

type UpdateUserRequest struct {
	Role   *string `json:"role,omitempty"`
	Status *string `json:"status,omitempty"`
}

func (s *AdminUsersService) List(ctx context.Context, f UserFilter) (Page[UserRow], error) {
	var out Page[UserRow]
	err := s.c.get(ctx, "/admin/users", f.params(), &out)
	return out, err
}

func (s *AdminUsersService) Get(ctx context.Context, id uint64) (User, error) {
	var out User
	err := s.c.get(ctx, fmt.Sprintf("/admin/users/%d", id), nil, &out)
	return out, err
}

func (s *AdminUsersService) Update(ctx context.Context, id uint64, req UpdateUserRequest) (User, error) {
	var out User
	err := s.c.patch(ctx, fmt.Sprintf("/admin/users/%d", id), req, &out)
	return out, err
}

func (s *AdminUsersService) Summary(ctx context.Context, id uint64) (UserSummary, error) {
	var out UserSummary
	err := s.c.get(ctx, fmt.Sprintf("/admin/users/%d/summary", id), nil, &out)
	return out, err
}
