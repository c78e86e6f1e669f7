package message

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lucky-tours-api/entities"
)

type (
	MessageRepository interface {
		CreateMessage(ctx context.Context, message *entities.Message) error
		GetMessages(ctx context.Context) ([]*entities.Message, error)
		GetMessageByID(ctx context.Context, id uuid.UUID) (*entities.Message, error)
		MarkRecipientSent(ctx context.Context, messageID, userID uuid.UUID) error
		MarkRecipientFailed(ctx context.Context, messageID, userID uuid.UUID, sendErr string) error
	}

	messageRepository struct {
		db *gorm.DB
	}
)

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{
		db: db,
	}
}

func (r *messageRepository) CreateMessage(ctx context.Context, message *entities.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *messageRepository) GetMessages(ctx context.Context) ([]*entities.Message, error) {
	var messages []*entities.Message
	if err := r.db.WithContext(ctx).
		Preload("SentBy").
		Preload("Recipients").
		Preload("Recipients.User").
		Order("created_at DESC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) GetMessageByID(ctx context.Context, id uuid.UUID) (*entities.Message, error) {
	var message entities.Message
	if err := r.db.WithContext(ctx).
		Preload("SentBy").
		Preload("Recipients").
		Preload("Recipients.User").
		Where("id = ?", id).
		First(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// Each recipient outcome is recorded independently together with the
// aggregate counter bump, so a crash mid-broadcast leaves consistent rows.
func (r *messageRepository) MarkRecipientSent(ctx context.Context, messageID, userID uuid.UUID) error {
	now := time.Now()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.MessageRecipient{}).
			Where("message_id = ? AND user_id = ?", messageID, userID).
			Updates(map[string]interface{}{
				"status":  entities.RecipientStatusSent,
				"sent_at": &now,
			}).Error; err != nil {
			return err
		}

		return tx.Model(&entities.Message{}).
			Where("id = ?", messageID).
			Update("success_count", gorm.Expr("success_count + 1")).Error
	})
}

func (r *messageRepository) MarkRecipientFailed(ctx context.Context, messageID, userID uuid.UUID, sendErr string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.MessageRecipient{}).
			Where("message_id = ? AND user_id = ?", messageID, userID).
			Updates(map[string]interface{}{
				"status": entities.RecipientStatusFailed,
				"error":  sendErr,
			}).Error; err != nil {
			return err
		}

		return tx.Model(&entities.Message{}).
			Where("id = ?", messageID).
			Update("failure_count", gorm.Expr("failure_count + 1")).Error
	})
}
