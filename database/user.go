package database

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"warbler/domain"
	"warbler/errs"
)

// UserService manages Users. It also contains the part of the authentication
// system that deals with password hashing and credential checks. It's the
// "backend" of the auth system, with the session handling in the http package
// being the "frontend". It implements the domain.UserService interface.
type UserService struct {
	userValidator
}

// userValidator runs validations on incoming User data.
// On success, it passes the data on to userGorm.
// Otherwise, it returns the error of the validation that has failed.
type userValidator struct {
	pepper string
	userGorm
}

// userGorm runs CRUD operations on the database using incoming User data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type userGorm struct {
	db *gorm.DB
}

// NewUserService returns an instance of UserService.
func NewUserService(db *gorm.DB, pepper string) *UserService {
	return &UserService{
		userValidator{
			pepper: pepper,
			userGorm: userGorm{
				db: db,
			},
		},
	}
}

// Ensure the UserService struct properly implements the domain.UserService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.UserService = &UserService{}

// Signup creates a new user from the submitted credentials. A missing
// password fails immediately, before anything touches the database.
// Username and email are left to the not-null and unique constraints on
// the users table, so a duplicate or missing value surfaces as an error
// from the create itself.
func (uv *userValidator) Signup(username, email, password, imageURL string) (*domain.User, error) {
	user := &domain.User{
		Username: username,
		Email: email,
		Password: password,
		ImageURL: imageURL,
	}
	err := runUserValFns(user,
		uv.passwordRequired,
		uv.passwordBcrypt,
		uv.passwordHashRequired,
		uv.emailNormalize,
		uv.imageURLDefault)
	if err != nil {
		return nil, err
	}
	if err := uv.userGorm.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks a submitted username and password for existence and
// correctness. An unknown username and a wrong password both return a nil
// user without an error, so a caller cannot tell the two cases apart.
func (uv *userValidator) Authenticate(username, password string) (*domain.User, error) {
	found, err := uv.userGorm.ByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	// Append the predefined pepper to the submitted password, hash it, and
	// compare the result to the hash stored in the user's database record.
	err = bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(password+uv.pepper))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, nil
		}
		return nil, err
	}
	return found, nil
}

// ByUsername wraps userGorm.ByUsername, translating a missing record
// into a not-found error fit for a response.
func (uv *userValidator) ByUsername(username string) (*domain.User, error) {
	found, err := uv.userGorm.ByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Errorf(errs.ENOTFOUND, "The user does not exist.")
		}
		return nil, err
	}
	return found, nil
}

// runUserValFns runs any number of functions of type userValFn on the passed in User object.
// If none of them returns an error, it returns nil. Otherwise, it returns the respective error.
func runUserValFns(user *domain.User, fns ...userValFn) error {
	for _, fn := range fns {
		if err := fn(user); err != nil {
			return err
		}
	}
	return nil
}

// A userValFn is any function that takes in a pointer to a domain.User object and returns an error.
type userValFn func(user *domain.User) error

// passwordRequired makes sure that the user's password is not the empty string.
func (uv *userValidator) passwordRequired(user *domain.User) error {
	if user.Password == "" {
		return errs.Errorf(errs.EINVALID, "A password is required.")
	}
	return nil
}

// passwordBcrypt hashes a user's password with a predefined pepper.
// It then clears the plaintext on the user object in memory.
func (uv *userValidator) passwordBcrypt(user *domain.User) error {
	if user.Password == "" {
		return nil
	}
	pwBytes := []byte(user.Password + uv.pepper)
	hashedBytes, err := bcrypt.GenerateFromPassword(pwBytes, bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hashedBytes)
	user.Password = ""
	return nil
}

// passwordHashRequired makes sure that the user's password hash is not the empty string.
func (uv *userValidator) passwordHashRequired(user *domain.User) error {
	if user.PasswordHash == "" {
		return errs.Errorf(errs.EINVALID, "A password is required.")
	}
	return nil
}

// emailNormalize converts the email to all lowercase and trims its whitespaces.
func (uv *userValidator) emailNormalize(user *domain.User) error {
	user.Email = strings.ToLower(user.Email)
	user.Email = strings.TrimSpace(user.Email)
	return nil
}

// imageURLDefault assigns the placeholder profile image when none is provided.
func (uv *userValidator) imageURLDefault(user *domain.User) error {
	if user.ImageURL == "" {
		user.ImageURL = domain.DefaultImageURL
	}
	return nil
}

// ByID retrieves a User database record by ID, along with the user's
// Messages, newest first.
func (ug *userGorm) ByID(id int) (*domain.User, error) {
	var user domain.User
	err := ug.db.
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Errorf(errs.ENOTFOUND, "The user does not exist.")
		}
		return nil, err
	}
	return &user, nil
}

// ByUsername retrieves a User database record by Username.
func (ug *userGorm) ByUsername(username string) (*domain.User, error) {
	var user domain.User
	db := ug.db.Where("username = ?", username)
	err := first(db, &user)
	return &user, err
}

// Create stores the data from the User object in a new database record.
// A username or email collision violates a unique index and comes back
// as a conflict. A missing username or email violates a not-null
// constraint, which also only shows up here, at commit time.
func (ug *userGorm) Create(user *domain.User) error {
	err := ug.db.Create(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.Errorf(errs.ECONFLICT, "Username or email is already taken.")
		}
		return err
	}
	return nil
}

// Delete removes a user record along with everything hanging off it:
// likes the user gave, likes on the user's messages, follow edges in
// both directions, and the user's messages. All of it happens in one
// transaction, so a failure leaves no partial state behind.
func (ug *userGorm) Delete(id int) error {
	return ug.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&domain.Like{}).Error; err != nil {
			return err
		}
		if err := tx.
			Where("message_id IN (?)", tx.Model(&domain.Message{}).Select("id").Where("user_id = ?", id)).
			Delete(&domain.Like{}).Error; err != nil {
			return err
		}
		if err := tx.
			Where("follower_id = ? OR followed_id = ?", id, id).
			Delete(&domain.Follow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&domain.Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.User{}, id).Error
	})
}

// first is a helper for getting the first database record that matches a given query.
func first(db *gorm.DB, dst interface{}) error {
	return db.First(dst).Error
}
