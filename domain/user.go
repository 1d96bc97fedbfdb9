package domain

import (
	"fmt"
	"time"
)

// DefaultImageURL is the profile image assigned to users
// who sign up without providing one of their own.
const DefaultImageURL = "/static/images/default-pic.png"

type User struct {
	ID int `json:"id"`
	Username string `json:"username" gorm:"uniqueIndex;not null"`
	Email string `json:"email" gorm:"uniqueIndex;not null"`
	ImageURL string `json:"image_url"`

	// Password holds the plaintext only between signup input and hashing.
	// It is never persisted.
	Password string `json:"password,omitempty" gorm:"-"`
	PasswordHash string `json:"-" gorm:"not null"`

	Messages []Message `json:"messages" gorm:"constraint:OnDelete:CASCADE"`
	Likes []Like `json:"likes" gorm:"constraint:OnDelete:CASCADE"`
	Followers []Follow `json:"followers" gorm:"foreignKey:FollowedID;constraint:OnDelete:CASCADE"`
	Followings []Follow `json:"followings" gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// String renders the user the way it appears in logs and diagnostics.
func (u *User) String() string {
	return fmt.Sprintf("<User #%d: %s, %s>", u.ID, u.Username, u.Email)
}

type UserService interface {
	Signup(username, email, password, imageURL string) (*User, error)
	// Authenticate returns the matching user on success. A bad username
	// and a bad password both come back as a nil user with a nil error,
	// indistinguishable to the caller. The error is reserved for
	// infrastructure failure.
	Authenticate(username, password string) (*User, error)
	ByID(id int) (*User, error)
	ByUsername(username string) (*User, error)
	Delete(id int) error
}
