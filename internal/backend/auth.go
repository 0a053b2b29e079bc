package backend

import (
	"context"
	"net/http"
)

type signInData struct {
	User
	Token TokenInfo `json:"token"`
}

// SignIn authenticates with email and password. The returned access token is
// persisted to the credential store so subsequent requests carry it.
func (c *Client) SignIn(ctx context.Context, req SignInRequest) (AuthResult, error) {
	var payload signInData
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/signin", req, &payload); err != nil {
		return AuthResult{}, err
	}
	if err := c.creds.Save(payload.Token.AccessToken); err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: payload.User, Token: payload.Token}, nil
}

func (c *Client) SignUp(ctx context.Context, req SignUpRequest) (AuthResult, error) {
	var payload signInData
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/signup", req, &payload); err != nil {
		return AuthResult{}, err
	}
	if err := c.creds.Save(payload.Token.AccessToken); err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: payload.User, Token: payload.Token}, nil
}

// UserInfo returns the account bound to the stored token.
func (c *Client) UserInfo(ctx context.Context) (User, error) {
	var user User
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/auth/info", nil, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// SignOut drops the stored token. Purely local; the backend keeps no session.
func (c *Client) SignOut() error {
	return c.creds.Clear()
}
