package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User models a registered account. Follows (subscriptions) are kept in a
// separate collection, not embedded here.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsStaff      bool      `json:"-"`
	IsSuperuser  bool      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user may perform admin-only writes.
// The role field and the staff/superuser flags are equivalent grants.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.IsStaff || u.IsSuperuser
}

// Actor is the authenticated principal attached to a request. The zero value
// is the anonymous sentinel: reads are allowed, writes are not.
type Actor struct {
	UserID   string
	Username string
	Admin    bool
}

// Anonymous reports whether no authenticated user is behind the request.
func (a Actor) Anonymous() bool {
	return a.UserID == ""
}

// Follow is a (follower, followee) pair. follower != followee is enforced at
// write time; the pair itself is unique.
type Follow struct {
	FollowerID string    `json:"follower_id"`
	FolloweeID string    `json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`
}
