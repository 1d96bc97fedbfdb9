package database

import (
	"errors"

	"gorm.io/gorm"

	"warbler/domain"
	"warbler/errs"
)

// LikeService manages Likes.
// It implements the domain.LikeService interface.
type LikeService struct {
	likeGorm
}

// likeGorm runs CRUD operations on the database using incoming Like data.
type likeGorm struct {
	db *gorm.DB
}

// NewLikeService returns an instance of LikeService.
func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{
		likeGorm{
			db: db,
		},
	}
}

// Ensure the LikeService struct properly implements the domain.LikeService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.LikeService = &LikeService{}

// Toggle flips the like state of the given user on the given message.
// If no edge exists it creates one; if one exists it deletes it. Both
// halves of the toggle run against the unique (user, message) index, so
// there is never more than one edge for the pair. It reports whether
// the message ends up liked.
func (lg *likeGorm) Toggle(userID, messageID int) (bool, error) {
	err := lg.db.First(&domain.Message{}, "id = ?", messageID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, errs.Errorf(errs.ENOTFOUND, "The message does not exist.")
		}
		return false, err
	}

	var like domain.Like
	err = lg.db.First(&like, "user_id = ? AND message_id = ?", userID, messageID).Error
	if err == nil {
		// Edge exists, the toggle removes it.
		if err := lg.db.Delete(&domain.Like{}, like.ID).Error; err != nil {
			return false, err
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	like = domain.Like{UserID: userID, MessageID: messageID}
	if err := lg.db.Create(&like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, errs.Errorf(errs.ECONFLICT, "You already like this message.")
		}
		return false, err
	}
	return true, nil
}

// ByUserID retrieves all Like edges created by the given user.
func (lg *likeGorm) ByUserID(userID int) ([]domain.Like, error) {
	var likes []domain.Like
	err := lg.db.Where("user_id = ?", userID).Find(&likes).Error
	if err != nil {
		return nil, err
	}
	return likes, nil
}

// ByMessageID retrieves all Like edges on the given message.
func (lg *likeGorm) ByMessageID(messageID int) ([]domain.Like, error) {
	var likes []domain.Like
	err := lg.db.Where("message_id = ?", messageID).Find(&likes).Error
	if err != nil {
		return nil, err
	}
	return likes, nil
}
