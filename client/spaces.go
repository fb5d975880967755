package client

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// SpacesService wraps the space catalogue endpoints.
type SpacesService struct {
	c *Client
}

// SpaceFilter narrows the space listing. Utilities filter with AND
// semantics: only spaces carrying every key match.
type SpaceFilter struct {
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

func (f SpaceFilter) params() Params {
	p := Params{
		"q":        f.Q,
		"building": f.Building,
		"floor":    f.Floor,
		"status":   f.Status,
	}
	if f.CapacityMin > 0 {
		p["capacityMin"] = strconv.Itoa(f.CapacityMin)
	}
	if f.CapacityMax > 0 {
		p["capacityMax"] = strconv.Itoa(f.CapacityMax)
	}
	if len(f.Utilities) > 0 {
		p["utilities"] = strings.Join(f.Utilities, ",")
	}
	if f.Limit > 0 {
		p["limit"] = strconv.Itoa(f.Limit)
	}
	if f.Offset > 0 {
		p["offset"] = strconv.Itoa(f.Offset)
	}
	return p
}

type SpaceRequest struct {
	Name      *string   `json:"name,omitempty"`
	Building  *string   `json:"building,omitempty"`
	Floor     *string   `json:"floor,omitempty"`
	Location  *string   `json:"location,omitempty"`
	Capacity  *int      `json:"capacity,omitempty"`
	ImageURL  *string   `json:"image_url,omitempty"`
	Status    *string   `json:"status,omitempty"`
	Utilities *[]string `json:"utilities,omitempty"`
}

func (s *SpacesService) List(ctx context.Context, f SpaceFilter) (Page[Space], error) {
	var out Page[Space]
	err := s.c.get(ctx, "/spaces", f.params(), &out)
	return out, err
}

func (s *SpacesService) Get(ctx context.Context, id uint64) (Space, error) {
	var out Space
	err := s.c.get(ctx, fmt.Sprintf("/spaces/%d", id), nil, &out)
	return out, err
}

func (s *SpacesService) Create(ctx context.Context, req SpaceRequest) (Space, error) {
	var out Space
	err := s.c.post(ctx, "/spaces", req, &out)
	return out, err
}

func (s *SpacesService) Update(ctx context.Context, id uint64, req SpaceRequest) (Space, error) {
	var out Space
	err := s.c.patch(ctx, fmt.Sprintf("/spaces/%d", id), req, &out)
	return out, err
}

func (s *SpacesService) Delete(ctx context.Context, id uint64) error {
	return s.c.delete(ctx, fmt.Sprintf("/spaces/%d", id))
}

// UtilitiesService wraps the amenity catalogue. The utility key is fixed at
// creation; UpdateUtilityRequest has no key field on purpose.
type UtilitiesService struct {
	c *Client
}

type CreateUtilityRequest struct {
	Key         string  `json:"key"`
	Label       string  `json:"label"`
	Description *string `json:"description,omitempty"`
}

type UpdateUtilityRequest struct {
	Label       *string `json:"label,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (s *UtilitiesService) List(ctx context.Context) ([]Utility, error) {
	var out []Utility
	err := s.c.get(ctx, "/utilities", nil, &out)
	return out, err
}

func (s *UtilitiesService) Create(ctx context.Context, req CreateUtilityRequest) (Utility, error) {
	var out Utility
	err := s.c.post(ctx, "/utilities", req, &out)
	return out, err
}

func (s *UtilitiesService) Update(ctx context.Context, id uint64, req UpdateUtilityRequest) (Utility, error) {
	var out Utility
	err := s.c.patch(ctx, fmt.Sprintf("/utilities/%d", id), req, &out)
	return out, err
}

func (s *UtilitiesService) Delete(ctx context.Context, id uint64) error {
	return s.c.delete(ctx, fmt.Sprintf("/utilities/%d", id))
}
