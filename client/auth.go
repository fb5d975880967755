package client

import "context"

// AuthService wraps the /auth endpoints. Login and Register store the
// returned token on the client so subsequent calls are authenticated.
type AuthService struct {
	c *Client
}

type RegisterRequest struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	FullName    string  `json:"full_name"`
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	StudentID   *string `json:"student_id,omitempty"`
	Department  *string `json:"department,omitempty"`
	YearOfStudy *int    `json:"year_of_study,omitempty"`
	Phone       *string `json:"phone,omitempty"`
}

type UpdateProfileRequest struct {
	FullName        *string `json:"full_name,omitempty"`
	FirstName       *string `json:"first_name,omitempty"`
	LastName        *string `json:"last_name,omitempty"`
	Department      *string `json:"department,omitempty"`
	YearOfStudy     *int    `json:"year_of_study,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	ProfileImageURL *string `json:"profile_image_url,omitempty"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	var out AuthResponse
	if err := s.c.post(ctx, "/auth/register", req, &out); err != nil {
		return AuthResponse{}, err
	}
	s.c.SetToken(out.Token)
	return out, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	var out AuthResponse
	body := map[string]string{"email": email, "password": password}
	if err := s.c.post(ctx, "/auth/login", body, &out); err != nil {
		return AuthResponse{}, err
	}
	s.c.SetToken(out.Token)
	return out, nil
}

// Logout drops the local session. The API is stateless, so there is
// nothing to revoke server-side.
func (s *AuthService) Logout() {
	s.c.ClearToken()
}

func (s *AuthService) Me(ctx context.Context) (User, error) {
	var out User
	err := s.c.get(ctx, "/auth/me", nil, &out)
	return out, err
}

func (s *AuthService) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (User, error) {
	var out User
	err := s.c.patch(ctx, "/auth/me", req, &out)
	return out, err
}
