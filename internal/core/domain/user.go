package domain

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User models a ScoreTalk account as returned by the service. The client never
// mutates profiles locally; they are refetched whenever the session token changes.
type User struct {
	UserID    int       `json:"user_id"`
	Username  string    `json:"username"`
	Nickname  string    `json:"nickname"`
	Role      string    `json:"role"`
	CreatedAt Timestamp `json:"created_at"`
}

// IsAdmin reports whether the account carries the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
