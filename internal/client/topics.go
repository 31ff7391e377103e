package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/scoretalk/scoretalk-client/internal/core/domain"
)

// CreateTopic creates a new rateable topic. Admin only.
func (c *Client) CreateTopic(ctx context.Context, name, description string) (*domain.Topic, error) {
	req := topicRequest{Name: name, Description: description}
	if err := checkInput(req); err != nil {
		return nil, err
	}
	var topic domain.Topic
	if err := c.do(ctx, http.MethodPost, "/topics/", req, true, &topic); err != nil {
		return nil, err
	}
	return &topic, nil
}

// ListTopics returns a page of topics, newest first.
func (c *Client) ListTopics(ctx context.Context, p domain.PageParams) (*domain.Page[domain.Topic], error) {
	var page domain.Page[domain.Topic]
	if err := c.do(ctx, http.MethodGet, pagePath("/topics/", p), nil, false, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetTopic fetches a single topic.
func (c *Client) GetTopic(ctx context.Context, topicID int) (*domain.Topic, error) {
	var topic domain.Topic
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/topics/%d", topicID), nil, false, &topic); err != nil {
		return nil, err
	}
	return &topic, nil
}

// DeleteTopic removes a topic. Admin only.
func (c *Client) DeleteTopic(ctx context.Context, topicID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/topics/%d", topicID), nil, true, nil)
}

// TopicStats fetches the aggregate rating figures for a topic.
func (c *Client) TopicStats(ctx context.Context, topicID int) (*domain.TopicStats, error) {
	var stats domain.TopicStats
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/topics/%d/stats", topicID), nil, false, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// RateTopic submits the caller's rating for a topic. A second submission by
// the same user updates the existing rating in place.
func (c *Client) RateTopic(ctx context.Context, topicID, score int, comment string) (*domain.Rating, error) {
	req := ratingRequest{TopicID: topicID, Score: score, Comment: comment}
	if err := checkInput(req); err != nil {
		return nil, err
	}
	var rating domain.Rating
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/topics/%d/ratings", topicID), req, true, &rating); err != nil {
		return nil, err
	}
	return &rating, nil
}

// ListRatings returns a page of ratings for a topic, newest first.
func (c *Client) ListRatings(ctx context.Context, topicID int, p domain.PageParams) (*domain.Page[domain.Rating], error) {
	var page domain.Page[domain.Rating]
	if err := c.do(ctx, http.MethodGet, pagePath(fmt.Sprintf("/topics/%d/ratings", topicID), p), nil, false, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// DeleteRating removes the given rating from a topic.
func (c *Client) DeleteRating(ctx context.Context, topicID, ratingID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/topics/%d/ratings/%d", topicID, ratingID), nil, true, nil)
}
