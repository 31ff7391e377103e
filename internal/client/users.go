package client

import (
	"context"
	"net/http"

	"github.com/scoretalk/scoretalk-client/internal/core/domain"
)

// Me fetches the profile of the currently authenticated user.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, true, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns a page of all accounts. Admin only.
func (c *Client) ListUsers(ctx context.Context, p domain.PageParams) (*domain.Page[domain.User], error) {
	var page domain.Page[domain.User]
	if err := c.do(ctx, http.MethodGet, pagePath("/users/", p), nil, true, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
