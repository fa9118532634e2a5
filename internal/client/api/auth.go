package api

import (
	"context"
	"net/http"

	"github.com/easyflowhq/easyflow/internal/client/models"
)

// AuthResponse is the token pair plus the account record returned by the
// register, login, and refresh endpoints.
type AuthResponse struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         models.User `json:"user"`
}

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"companyName,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (c *Client) Register(ctx context.Context, email, password, companyName string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/api/auth/register",
		body:   registerRequest{Email: email, Password: password, CompanyName: companyName},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/api/auth/login",
		body:   loginRequest{Email: email, Password: password},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Refresh exchanges the refresh token for a new token pair. The call is made
// with unauthorized escalation suppressed: a 401 here is reported to the
// caller only, never to the registered handler.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, call{
		method:               http.MethodPost,
		path:                 "/api/auth/refresh",
		body:                 refreshRequest{RefreshToken: refreshToken},
		suppressUnauthorized: true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout invalidates the session on the backend. Escalation is suppressed so
// a stale token cannot trigger a logout-of-logout loop.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, call{
		method:               http.MethodPost,
		path:                 "/api/auth/logout",
		suppressUnauthorized: true,
	}, nil)
}
