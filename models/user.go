package models

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// User is owned by the accounts service; the feed only reads it.
type User struct {
	ID              uint   `json:"id" gorm:"primary_key"`
	Name            string `json:"name"`
	Role            string `json:"role"`
	TwitterUsername string `json:"twitter_username,omitempty"`
	TwitterToken    string `json:"-"`
}

// TwitterHandle returns the "@name" mention for the user, or "" when the
// user has not linked an account.
func (u *User) TwitterHandle() string {
	if u.TwitterUsername == "" {
		return ""
	}
	return "@" + u.TwitterUsername
}
