package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/scoretalk/scoretalk-client/internal/core/domain"
)

// CreatePost publishes a new forum post authored by the current user.
func (c *Client) CreatePost(ctx context.Context, title, content string) (*domain.Post, error) {
	req := postRequest{Title: title, Content: content}
	if err := checkInput(req); err != nil {
		return nil, err
	}
	var post domain.Post
	if err := c.do(ctx, http.MethodPost, "/posts/", req, true, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPosts returns a page of posts, newest first. Soft-deleted posts are
// excluded server-side.
func (c *Client) ListPosts(ctx context.Context, p domain.PageParams) (*domain.Page[domain.Post], error) {
	var page domain.Page[domain.Post]
	if err := c.do(ctx, http.MethodGet, pagePath("/posts/", p), nil, false, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetPost fetches a single post.
func (c *Client) GetPost(ctx context.Context, postID int) (*domain.Post, error) {
	var post domain.Post
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/posts/%d", postID), nil, false, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost soft-deletes a post. Only the author or an admin may delete.
func (c *Client) DeletePost(ctx context.Context, postID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/posts/%d", postID), nil, true, nil)
}

// CreateComment attaches a comment to a post.
func (c *Client) CreateComment(ctx context.Context, postID int, content string) (*domain.Comment, error) {
	req := commentRequest{PostID: postID, Content: content}
	if err := checkInput(req); err != nil {
		return nil, err
	}
	var comment domain.Comment
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/comments", postID), req, true, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListComments returns a page of comments for a post, oldest first.
func (c *Client) ListComments(ctx context.Context, postID int, p domain.PageParams) (*domain.Page[domain.Comment], error) {
	var page domain.Page[domain.Comment]
	if err := c.do(ctx, http.MethodGet, pagePath(fmt.Sprintf("/posts/%d/comments", postID), p), nil, false, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// DeleteComment removes a comment from a post.
func (c *Client) DeleteComment(ctx context.Context, postID, commentID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/posts/%d/comments/%d", postID, commentID), nil, true, nil)
}
