package client

// Request payloads sent to the service. Validation tags mirror the remote
// contract so malformed input is rejected before the wire.

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Nickname string `json:"nickname" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=user admin"`
}

type topicRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
}

type ratingRequest struct {
	TopicID int    `json:"topic_id" validate:"required"`
	Score   int    `json:"score" validate:"gte=1,lte=5"`
	Comment string `json:"comment,omitempty" validate:"max=255"`
}

type postRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
}

type commentRequest struct {
	PostID  int    `json:"post_id" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// tokenResponse is the OAuth2-style payload returned by the token endpoint.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
