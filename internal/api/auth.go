package api

import "context"

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents a login response
type LoginResponse struct {
	Token string `json:"token"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
}

// UserProfile represents a platform user
type UserProfile struct {
	UID           string `json:"uid"`
	Name          string `json:"name"`
	Surname       string `json:"surname"`
	Email         string `json:"email"`
	ProfilePicURL string `json:"profile_pic_url,omitempty"`
}

// Login authenticates with the platform and returns the bearer token.
// The token is not attached to the client here; the session manager owns it
// and exposes it through the client's TokenSource.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	req := LoginRequest{
		Email:    email,
		Password: password,
	}

	var loginResp LoginResponse
	if err := c.do(ctx, "POST", "/login", req, &loginResp); err != nil {
		return "", err
	}

	return loginResp.Token, nil
}

// Register creates a new user account. The response carries no usable
// session token; callers follow up with Login using the same credentials.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, "POST", "/register", req, nil)
}

// ForgotPassword requests a password-reset email
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	req := map[string]string{"email": email}
	return c.do(ctx, "POST", "/users/forgot-password", req, nil)
}

// CurrentUser retrieves the currently authenticated user
func (c *Client) CurrentUser(ctx context.Context) (*UserProfile, error) {
	var user UserProfile
	if err := c.do(ctx, "GET", "/users/me", nil, &user); err != nil {
		return nil, err
	}

	return &user, nil
}
