package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

func (c *Client) ListTags(ctx context.Context, skip, limit int) ([]Tag, error) {
	query := url.Values{}
	if skip > 0 {
		query.Set("skip", strconv.Itoa(skip))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	path := "/api/v1/tags"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var tags []Tag
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (c *Client) GetTag(ctx context.Context, tagID int64) (Tag, error) {
	var tag Tag
	if err := c.doJSON(ctx, http.MethodGet, tagPath(tagID), nil, &tag); err != nil {
		return Tag{}, err
	}
	return tag, nil
}

func (c *Client) CreateTag(ctx context.Context, req TagInCreate) (Tag, error) {
	var tag Tag
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/tags", req, &tag); err != nil {
		return Tag{}, err
	}
	return tag, nil
}

func (c *Client) UpdateTag(ctx context.Context, tagID int64, req TagInUpdate) (Tag, error) {
	var tag Tag
	if err := c.doJSON(ctx, http.MethodPut, tagPath(tagID), req, &tag); err != nil {
		return Tag{}, err
	}
	return tag, nil
}

func (c *Client) DeleteTag(ctx context.Context, tagID int64) error {
	return c.doJSON(ctx, http.MethodDelete, tagPath(tagID), nil, nil)
}

func tagPath(tagID int64) string {
	return "/api/v1/tags/" + strconv.FormatInt(tagID, 10)
}
