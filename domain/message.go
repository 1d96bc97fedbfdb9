package domain

import (
	"time"
)

// MaxMessageLength bounds the text of a single message.
const MaxMessageLength = 140

type Message struct {
	ID int `json:"id"`
	UserID int `json:"user_id" gorm:"not null;index"`
	Text string `json:"text" gorm:"not null"`

	Likes []Like `json:"likes" gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MessageService interface {
	Create(message *Message) error
	ByID(id int) (*Message, error)
	// ByUserID returns all messages of the given author, newest first.
	ByUserID(userID int) ([]Message, error)
	Delete(message *Message) error
}
