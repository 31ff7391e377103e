package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/scoretalk/scoretalk-client/internal/core/domain"
)

// Register creates a new account. The caller must still exchange credentials
// for a token afterwards; registration alone does not establish a session.
func (c *Client) Register(ctx context.Context, username, nickname, password string) (*domain.User, error) {
	req := registerRequest{Username: username, Nickname: nickname, Password: password}
	if err := checkInput(req); err != nil {
		return nil, err
	}
	var user domain.User
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, false, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Token exchanges credentials for a bearer token. This is the one endpoint
// that deviates from the JSON contract: the service requires an OAuth2
// password-flow form submission, so the body is form-url-encoded.
func (c *Client) Token(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.prepare(ctx, req, false)

	var token tokenResponse
	if err := c.send(req, &token); err != nil {
		return "", err
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("client: token endpoint returned no access token")
	}
	return token.AccessToken, nil
}
