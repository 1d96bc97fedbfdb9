package database

import (
	"errors"
	"unicode/utf8"

	"gorm.io/gorm"

	"warbler/domain"
	"warbler/errs"
)

// MessageService manages Messages.
// It implements the domain.MessageService interface.
type MessageService struct {
	messageValidator
}

// messageValidator runs validations on incoming Message data.
// On success, it passes the data on to messageGorm.
// Otherwise, it returns the error of the validation that has failed.
type messageValidator struct {
	messageGorm
}

// messageGorm runs CRUD operations on the database using incoming Message data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type messageGorm struct {
	db *gorm.DB
}

// NewMessageService returns an instance of MessageService.
func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{
		messageValidator{
			messageGorm{
				db: db,
			},
		},
	}
}

// Ensure the MessageService struct properly implements the domain.MessageService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.MessageService = &MessageService{}

// Create runs validations needed for creating new Message database records.
func (mv *messageValidator) Create(message *domain.Message) error {
	err := runMessageValFns(message,
		mv.userIDRequired,
		mv.textRequired,
		mv.textMaxLength)
	if err != nil {
		return err
	}
	return mv.messageGorm.Create(message)
}

// Delete runs validations needed for deleting existing Message database records.
func (mv *messageValidator) Delete(message *domain.Message) error {
	err := runMessageValFns(message, mv.messageExists)
	if err != nil {
		return err
	}
	return mv.messageGorm.Delete(message)
}

// runMessageValFns runs any number of functions of type messageValFn on the passed in Message object.
// If none of them returns an error, it returns nil. Otherwise, it returns the respective error.
func runMessageValFns(message *domain.Message, fns ...messageValFn) error {
	for _, fn := range fns {
		if err := fn(message); err != nil {
			return err
		}
	}
	return nil
}

// A messageValFn is any function that takes in a pointer to a domain.Message object and returns an error.
type messageValFn func(message *domain.Message) error

// userIDRequired makes sure that the message has an author.
func (mv *messageValidator) userIDRequired(message *domain.Message) error {
	if message.UserID <= 0 {
		return errs.Errorf(errs.EINVALID, "The message must have an author.")
	}
	return nil
}

// textRequired makes sure that the message text is not the empty string.
func (mv *messageValidator) textRequired(message *domain.Message) error {
	if message.Text == "" {
		return errs.Errorf(errs.EINVALID, "The message must not be empty.")
	}
	return nil
}

// textMaxLength makes sure that the message text does not exceed the length limit.
func (mv *messageValidator) textMaxLength(message *domain.Message) error {
	if utf8.RuneCountInString(message.Text) > domain.MaxMessageLength {
		return errs.Errorf(errs.EINVALID, "The message must not have more than %d characters.", domain.MaxMessageLength)
	}
	return nil
}

// messageExists makes sure that the Message record to be deleted actually exists.
func (mv *messageValidator) messageExists(message *domain.Message) error {
	err := mv.db.First(&domain.Message{}, "id = ?", message.ID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.Errorf(errs.ENOTFOUND, "The message does not exist.")
		}
		return err
	}
	return nil
}

// ByID retrieves a single Message by ID.
func (mg *messageGorm) ByID(id int) (*domain.Message, error) {
	var message domain.Message
	err := mg.db.First(&message, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Errorf(errs.ENOTFOUND, "The message does not exist.")
		}
		return nil, err
	}
	return &message, nil
}

// ByUserID retrieves all Messages of the given author, newest first.
func (mg *messageGorm) ByUserID(userID int) ([]domain.Message, error) {
	var messages []domain.Message
	err := mg.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// Create stores the data from the Message object in a new database record.
func (mg *messageGorm) Create(message *domain.Message) error {
	return mg.db.Create(message).Error
}

// Delete removes a Message record from the database, along with its likes.
func (mg *messageGorm) Delete(message *domain.Message) error {
	return mg.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id = ?", message.ID).Delete(&domain.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Message{}, message.ID).Error
	})
}
