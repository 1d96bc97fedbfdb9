package database

import (
	"errors"

	"gorm.io/gorm"

	"warbler/domain"
	"warbler/errs"
)

// FollowService manages Follow edges.
// It implements the domain.FollowService interface.
type FollowService struct {
	followValidator
}

// followValidator runs validations on incoming Follow data.
// On success, it passes the data on to followGorm.
// Otherwise, it returns the error of the validation that has failed.
type followValidator struct {
	followGorm
}

// followGorm runs CRUD operations on the database using incoming Follow data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type followGorm struct {
	db *gorm.DB
}

// NewFollowService returns an instance of FollowService.
func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{
		followValidator{
			followGorm{
				db: db,
			},
		},
	}
}

// Ensure the FollowService struct properly implements the domain.FollowService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.FollowService = &FollowService{}

// Create runs validations needed for creating new Follow database records.
// Whether a user may follow themselves is not a domain rule, so no
// validation prevents it.
func (fv *followValidator) Create(follow *domain.Follow) error {
	err := runFollowValFns(follow,
		fv.followedUserExists,
		fv.notAlreadyFollowed)
	if err != nil {
		return err
	}
	return fv.followGorm.Create(follow)
}

// Delete runs validations needed for deleting existing Follow database records.
func (fv *followValidator) Delete(follow *domain.Follow) error {
	err := runFollowValFns(follow, fv.followExists)
	if err != nil {
		return err
	}
	return fv.followGorm.Delete(follow)
}

// runFollowValFns runs any number of functions of type followValFn on the passed in Follow object.
// If none of them returns an error, it returns nil. Otherwise, it returns the respective error.
func runFollowValFns(follow *domain.Follow, fns ...followValFn) error {
	for _, fn := range fns {
		if err := fn(follow); err != nil {
			return err
		}
	}
	return nil
}

// A followValFn is any function that takes in a pointer to a domain.Follow object and returns an error.
type followValFn func(follow *domain.Follow) error

// followExists makes sure that the Follow record to be deleted actually exists.
func (fv *followValidator) followExists(follow *domain.Follow) error {
	err := fv.db.
		First(&domain.Follow{}, "follower_id = ? AND followed_id = ?", follow.FollowerID, follow.FollowedID).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.Errorf(errs.ENOTFOUND, "You don't follow this user.")
		}
		return err
	}
	return nil
}

// followedUserExists makes sure that the user to be followed actually exists.
func (fv *followValidator) followedUserExists(follow *domain.Follow) error {
	err := fv.db.First(&domain.User{}, "id = ?", follow.FollowedID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.Errorf(errs.ENOTFOUND, "The user to be followed does not exist.")
		}
		return err
	}
	return nil
}

// notAlreadyFollowed makes sure that the Follow edge does not exist yet.
func (fv *followValidator) notAlreadyFollowed(follow *domain.Follow) error {
	err := fv.db.
		First(&domain.Follow{}, "follower_id = ? AND followed_id = ?", follow.FollowerID, follow.FollowedID).
		Error
	if err == nil {
		return errs.Errorf(errs.ECONFLICT, "You already follow this user.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

// Create stores the data from the Follow object in a new database record.
// The composite primary key backs up the validator, so a concurrent
// duplicate still comes back as a conflict.
func (fg *followGorm) Create(follow *domain.Follow) error {
	err := fg.db.Create(follow).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.Errorf(errs.ECONFLICT, "You already follow this user.")
		}
		return err
	}
	return nil
}

// Delete removes a Follow record from the database.
func (fg *followGorm) Delete(follow *domain.Follow) error {
	return fg.db.
		Where("follower_id = ? AND followed_id = ?", follow.FollowerID, follow.FollowedID).
		Delete(&domain.Follow{}).Error
}

// IsFollowing reports whether an edge follower -> followed exists.
func (fg *followGorm) IsFollowing(followerID, followedID int) (bool, error) {
	var count int64
	err := fg.db.Model(&domain.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// IsFollowedBy reports whether an edge other -> user exists.
func (fg *followGorm) IsFollowedBy(userID, otherID int) (bool, error) {
	return fg.IsFollowing(otherID, userID)
}

// Followers returns the users that follow the given user.
// The list is derived from the current edge state on every call.
func (fg *followGorm) Followers(userID int) ([]domain.User, error) {
	var users []domain.User
	err := fg.db.
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followed_id = ?", userID).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Followings returns the users that the given user follows.
func (fg *followGorm) Followings(userID int) ([]domain.User, error) {
	var users []domain.User
	err := fg.db.
		Joins("JOIN follows ON follows.followed_id = users.id").
		Where("follows.follower_id = ?", userID).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
