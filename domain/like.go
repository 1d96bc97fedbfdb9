package domain

import (
	"time"
)

// Like represents a many-to-many relationship between a User and a
// Message. A Like is created when a user likes a message. It's destroyed
// when the user toggles the like off again, or when the user or the
// message gets deleted. The (UserID, MessageID) pair is unique, so a
// user holds at most one like on a given message at any time.
type Like struct {
	ID int `json:"id"`
	UserID int `json:"user_id" gorm:"not null;uniqueIndex:idx_likes_user_message"`
	MessageID int `json:"message_id" gorm:"not null;uniqueIndex:idx_likes_user_message"`

	CreatedAt time.Time `json:"created_at"`
}

// LikeService is a set of methods to manipulate and work with the Like model.
type LikeService interface {
	// Toggle creates the like if it is absent and deletes it if it is
	// present. It reports whether the message ends up liked.
	Toggle(userID, messageID int) (bool, error)
	ByUserID(userID int) ([]Like, error)
	ByMessageID(messageID int) ([]Like, error)
}
