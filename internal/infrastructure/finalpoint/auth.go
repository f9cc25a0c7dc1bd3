package finalpoint

import (
	"context"
	"net/http"

	"github.com/riskibarqy/finalpoint-client/internal/domain/user"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Signup creates an account. The returned session is not saved; that is the
// caller's decision.
func (c *Client) Signup(ctx context.Context, input user.SignupInput) (user.Session, error) {
	var session user.Session
	_, err := c.do(ctx, http.MethodPost, "/users/signup", nil, signupRequest{
		Email:    input.Email,
		Password: input.Password,
		Name:     input.Name,
	}, &session)
	if err != nil {
		return user.Session{}, err
	}
	return session, nil
}

func (c *Client) Login(ctx context.Context, credentials user.Credentials) (user.Session, error) {
	var session user.Session
	_, err := c.do(ctx, http.MethodPost, "/users/login", nil, loginRequest{
		Email:    credentials.Email,
		Password: credentials.Password,
	}, &session)
	if err != nil {
		return user.Session{}, err
	}
	return session, nil
}

func (c *Client) GetUserStats(ctx context.Context) (user.Stats, error) {
	var stats user.Stats
	if _, err := c.do(ctx, http.MethodGet, "/users/stats", nil, nil, &stats); err != nil {
		return user.Stats{}, err
	}
	return stats, nil
}

func (c *Client) GetGlobalStats(ctx context.Context) (user.Stats, error) {
	var stats user.Stats
	if _, err := c.do(ctx, http.MethodGet, "/users/global-stats", nil, nil, &stats); err != nil {
		return user.Stats{}, err
	}
	return stats, nil
}
