package models

import (
	"time"
)

const RoleAdmin = "Admin"

type User struct {
	UserID             string    `json:"userId" db:"user_id"`
	Username           string    `json:"username" db:"username"`
	NormalizedUsername string    `json:"-" db:"normalized_username"`
	Email              string    `json:"email" db:"email"`
	PasswordHash       string    `json:"-" db:"password_hash"`
	SecurityStamp      string    `json:"-" db:"security_stamp"`
	CreatedAt          time.Time `json:"createdAt" db:"created_at"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=256,username"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email" validate:"required,email,max=256"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Post struct {
	PostID      int64      `json:"id" db:"post_id"`
	Title       string     `json:"title" db:"title"`
	Content     string     `json:"content" db:"content"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   *time.Time `json:"updatedAt" db:"updated_at"`
	AuthorID    string     `json:"-" db:"author_id"`
	AuthorName  string     `json:"authorName" db:"author_name"`
	IsPublished bool       `json:"isPublished" db:"is_published"`
	Version     int64      `json:"-" db:"version"`
}

type PostRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Content     string `json:"content" validate:"required"`
	IsPublished bool   `json:"isPublished"`
}

// Caller is the identity behind a request, taken from a verified access token.
// A nil *Caller is an anonymous request.
type Caller struct {
	Name  string
	roles map[string]struct{}
}

func NewCaller(name string, roles []string) *Caller {
	set := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		set[role] = struct{}{}
	}
	return &Caller{Name: name, roles: set}
}

func (c *Caller) IsAnonymous() bool {
	return c == nil || c.Name == ""
}

func (c *Caller) HasRole(role string) bool {
	if c == nil {
		return false
	}
	_, ok := c.roles[role]
	return ok
}

// Roles returns the caller's roles in no particular order.
func (c *Caller) Roles() []string {
	if c == nil {
		return nil
	}
	roles := make([]string, 0, len(c.roles))
	for role := range c.roles {
		roles = append(roles, role)
	}
	return roles
}
