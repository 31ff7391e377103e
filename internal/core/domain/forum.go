package domain

// Topic is a rateable discussion subject. Created by administrators only.
type Topic struct {
	TopicID     int       `json:"topic_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   Timestamp `json:"created_at"`
}

// TopicStats carries the aggregate rating figures for a topic.
// AvgScore is nil when the topic has no ratings yet.
type TopicStats struct {
	TopicID     int      `json:"topic_id"`
	AvgScore    *float64 `json:"avg_score"`
	RatingCount int      `json:"rating_count"`
}

// Post is a forum post. Deleted posts are soft-deleted server-side and
// disappear from listings; IsDeleted is only ever true on direct fetches.
type Post struct {
	PostID    int       `json:"post_id"`
	AuthorID  int       `json:"author_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsDeleted bool      `json:"is_deleted"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

// Comment is a reply attached to a post.
type Comment struct {
	CommentID int       `json:"comment_id"`
	PostID    int       `json:"post_id"`
	AuthorID  int       `json:"author_id"`
	Content   string    `json:"content"`
	IsDeleted bool      `json:"is_deleted"`
	CreatedAt Timestamp `json:"created_at"`
}

// Rating is a user's 1-5 score for a topic. Each user holds at most one rating
// per topic; resubmitting updates it in place.
type Rating struct {
	RatingID  int       `json:"rating_id"`
	UserID    int       `json:"user_id"`
	TopicID   int       `json:"topic_id"`
	Score     int       `json:"score"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}
