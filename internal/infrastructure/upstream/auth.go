package upstream

import (
	"context"
	"net/http"

	"github.com/ifds/dashboard/internal/core/domain"
	"github.com/ifds/dashboard/internal/core/ports"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	User        *domain.User `json:"user"`
}

// Login exchanges credentials for an access token and user record.
func (c *Client) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	var resp loginResponse
	err := c.send(ctx, http.MethodPost, "/auth/login", loginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return "", nil, err
	}
	return resp.AccessToken, resp.User, nil
}

// Register creates a new account upstream.
func (c *Client) Register(ctx context.Context, input ports.RegisterInput) error {
	return c.send(ctx, http.MethodPost, "/auth/register", input, nil)
}

type profileResponse struct {
	User *domain.User `json:"user"`
}

// Profile fetches the authenticated user's record.
func (c *Client) Profile(ctx context.Context) (*domain.User, error) {
	var resp profileResponse
	if err := c.getJSON(ctx, "/auth/profile", &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}
