package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// User management endpoints are admin-only; the backend rejects non-admin
// tokens with 403 and the client surfaces that as an APIError.

func (c *Client) ListUsers(ctx context.Context, params UserListParams) (UserPage, error) {
	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if strings.TrimSpace(params.Search) != "" {
		query.Set("search", params.Search)
	}
	path := "/api/v1/users"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var page UserPage
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &page); err != nil {
		return UserPage{}, err
	}
	return page, nil
}

func (c *Client) GetUser(ctx context.Context, userID int64) (User, error) {
	var user User
	if err := c.doJSON(ctx, http.MethodGet, userPath(userID), nil, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

func (c *Client) CreateUser(ctx context.Context, req UserInCreate) (User, error) {
	var user User
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/users", req, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

func (c *Client) UpdateUser(ctx context.Context, userID int64, req UserInUpdate) (User, error) {
	var user User
	if err := c.doJSON(ctx, http.MethodPut, userPath(userID), req, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

func (c *Client) DeleteUser(ctx context.Context, userID int64) error {
	return c.doJSON(ctx, http.MethodDelete, userPath(userID), nil, nil)
}

func (c *Client) UserStats(ctx context.Context) (UserStats, error) {
	var stats UserStats
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/admin/users/stats", nil, &stats); err != nil {
		return UserStats{}, err
	}
	return stats, nil
}

func userPath(userID int64) string {
	return "/api/v1/users/" + strconv.FormatInt(userID, 10)
}
