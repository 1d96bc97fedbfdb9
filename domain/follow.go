package domain

import "time"

// Follow represents a self-referential many-to-many relationship between
// two users. A Follow is created when one user decides to follow another
// user. The FollowerID is the ID of the user that follows, and the
// FollowedID is the ID of the user being followed. The pair is the
// primary key, so a user can follow another user at most once.
type Follow struct {
	FollowerID int `json:"follower_id" gorm:"primaryKey;autoIncrement:false"`
	Follower *User `json:"follower,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	FollowedID int `json:"followed_id" gorm:"primaryKey;autoIncrement:false"`
	Followed *User `json:"followed,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}

// FollowService is a set of methods to manipulate and work with the Follow model.
// Follower and following lists are derived from the edges on every call,
// never cached.
type FollowService interface {
	Create(follow *Follow) error
	Delete(follow *Follow) error
	IsFollowing(followerID, followedID int) (bool, error)
	IsFollowedBy(userID, otherID int) (bool, error)
	Followers(userID int) ([]User, error)
	Followings(userID int) ([]User, error)
}
