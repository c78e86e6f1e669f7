package message

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lucky-tours-api/domain"
	"lucky-tours-api/entities"
	"lucky-tours-api/pkg/notification"
	"lucky-tours-api/pkg/payment"
	"lucky-tours-api/pkg/user"
)

type (
	MessageService interface {
		SendMessage(ctx context.Context, req domain.SendMessageRequest, senderID string) (*entities.Message, error)
		GetMessages(ctx context.Context) ([]*entities.Message, error)
		SendSingleSMS(ctx context.Context, req domain.SingleSMSRequest) (string, error)
		SendSingleEmail(ctx context.Context, req domain.SingleEmailRequest) (string, error)
		SendBulkSMS(ctx context.Context, req domain.BulkSMSRequest) *domain.BulkDeliveryResult
		SendBulkEmail(ctx context.Context, req domain.BulkEmailRequest) *domain.BulkDeliveryResult
		SendPaymentReminders(ctx context.Context, req domain.PaymentReminderRequest) (*domain.BulkDeliveryResult, error)
	}

	messageService struct {
		messageRepository MessageRepository
		userRepository    user.UserRepository
		pendingRepository payment.PendingPaymentRepository
		notifier          notification.Notifier
	}
)

func NewMessageService(
	messageRepository MessageRepository,
	userRepository user.UserRepository,
	pendingRepository payment.PendingPaymentRepository,
	notifier notification.Notifier,
) MessageService {
	return &messageService{
		messageRepository: messageRepository,
		userRepository:    userRepository,
		pendingRepository: pendingRepository,
		notifier:          notifier,
	}
}

// SendMessage records the broadcast first, then walks the recipients
// sequentially. Partial failure is the normal outcome: each recipient row
// carries its own status and the batch never fails as a unit.
func (s *messageService) SendMessage(ctx context.Context, req domain.SendMessageRequest, senderID string) (*entities.Message, error) {
	sentBy, err := uuid.Parse(senderID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	if len(req.UserIDs) == 0 {
		return nil, domain.ErrNoRecipients
	}

	userIDs := make([]uuid.UUID, 0, len(req.UserIDs))
	for _, raw := range req.UserIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, domain.ErrParseUUID
		}
		userIDs = append(userIDs, id)
	}

	messageDoc := &entities.Message{
		ID:              uuid.New(),
		Title:           req.Title,
		Body:            req.Message,
		Type:            req.Type,
		SentByID:        sentBy,
		TotalRecipients: len(userIDs),
	}
	for _, id := range userIDs {
		messageDoc.Recipients = append(messageDoc.Recipients, &entities.MessageRecipient{
			ID:        uuid.New(),
			MessageID: messageDoc.ID,
			UserID:    id,
			Status:    entities.RecipientStatusPending,
		})
	}

	if err := s.messageRepository.CreateMessage(ctx, messageDoc); err != nil {
		return nil, err
	}

	recipients, err := s.userRepository.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	for _, recipient := range recipients {
		if err := s.deliver(req.Type, recipient, req.Title, req.Message); err != nil {
			_ = s.messageRepository.MarkRecipientFailed(ctx, messageDoc.ID, recipient.ID, err.Error())
			continue
		}
		_ = s.messageRepository.MarkRecipientSent(ctx, messageDoc.ID, recipient.ID)
	}

	// The response reflects the resolved outcomes, not the pre-delivery rows.
	return s.messageRepository.GetMessageByID(ctx, messageDoc.ID)
}

func (s *messageService) deliver(messageType string, recipient *entities.User, title, body string) error {
	if messageType == entities.MessageTypeEmail || messageType == entities.MessageTypeBoth {
		if err := s.notifier.SendEmail(recipient.Email, title, fmt.Sprintf("<p>%s</p>", body)); err != nil {
			return err
		}
	}
	if messageType == entities.MessageTypeSMS || messageType == entities.MessageTypeBoth {
		if err := s.notifier.SendSMS(recipient.Phone, body); err != nil {
			return err
		}
	}
	return nil
}

func (s *messageService) GetMessages(ctx context.Context) ([]*entities.Message, error) {
	return s.messageRepository.GetMessages(ctx)
}

func (s *messageService) SendSingleSMS(ctx context.Context, req domain.SingleSMSRequest) (string, error) {
	phone := req.Phone
	name := "User"

	if req.UserID != "" {
		recipient, err := s.lookupUser(ctx, req.UserID)
		if err != nil {
			return "", err
		}
		phone = recipient.Phone
		name = recipient.Name
	}

	if phone == "" {
		return "", domain.ErrMissingPhoneNumber
	}

	if err := s.notifier.SendSMS(phone, req.Message); err != nil {
		return "", err
	}
	return name, nil
}

func (s *messageService) SendSingleEmail(ctx context.Context, req domain.SingleEmailRequest) (string, error) {
	email := req.Email
	name := "User"

	if req.UserID != "" {
		recipient, err := s.lookupUser(ctx, req.UserID)
		if err != nil {
			return "", err
		}
		email = recipient.Email
		name = recipient.Name
	}

	if email == "" {
		return "", domain.ErrMissingEmail
	}

	if err := s.notifier.SendEmail(email, req.Subject, fmt.Sprintf("<p>%s</p>", req.Message)); err != nil {
		return "", err
	}
	return name, nil
}

func (s *messageService) SendBulkSMS(ctx context.Context, req domain.BulkSMSRequest) *domain.BulkDeliveryResult {
	result := &domain.BulkDeliveryResult{Results: []string{}, Errors: []domain.DeliveryError{}}
	for _, phone := range req.Recipients {
		if err := s.notifier.SendSMS(phone, req.Message); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, domain.DeliveryError{Recipient: phone, Error: err.Error()})
			continue
		}
		result.Sent++
		result.Results = append(result.Results, phone)
	}
	return result
}

func (s *messageService) SendBulkEmail(ctx context.Context, req domain.BulkEmailRequest) *domain.BulkDeliveryResult {
	result := &domain.BulkDeliveryResult{Results: []string{}, Errors: []domain.DeliveryError{}}
	for _, email := range req.Recipients {
		if err := s.notifier.SendEmail(email, req.Subject, req.Message); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, domain.DeliveryError{Recipient: email, Error: err.Error()})
			continue
		}
		result.Sent++
		result.Results = append(result.Results, email)
	}
	return result
}

// SendPaymentReminders walks every pending reminder row, one send per row,
// collecting per-recipient outcomes.
func (s *messageService) SendPaymentReminders(ctx context.Context, req domain.PaymentReminderRequest) (*domain.BulkDeliveryResult, error) {
	pendings, err := s.pendingRepository.GetPendingPaymentsByStatus(ctx, entities.PendingPaymentStatusPending)
	if err != nil {
		return nil, err
	}
	if len(pendings) == 0 {
		return nil, domain.ErrNoPendingPayments
	}

	result := &domain.BulkDeliveryResult{Results: []string{}, Errors: []domain.DeliveryError{}}
	for _, pending := range pendings {
		name := "User"
		if pending.User != nil {
			name = pending.User.Name
		}
		body := req.CustomMessage
		if body == "" {
			body = fmt.Sprintf(
				"Dear %s, you have a pending payment of ₹%.0f due on %s. Please make the payment at your earliest convenience.",
				name, pending.Amount, pending.DueDate.Format("Mon Jan 2 2006"),
			)
		}

		var recipient string
		var sendErr error
		switch req.Type {
		case entities.MessageTypeSMS:
			recipient = pending.Phone
			sendErr = s.notifier.SendSMS(pending.Phone, body)
		case entities.MessageTypeEmail:
			recipient = pending.Email
			sendErr = s.notifier.SendEmail(pending.Email, "Payment Reminder", fmt.Sprintf("<p>%s</p>", body))
		}

		if sendErr != nil {
			result.Failed++
			result.Errors = append(result.Errors, domain.DeliveryError{Recipient: recipient, Error: sendErr.Error()})
			continue
		}
		result.Sent++
		result.Results = append(result.Results, recipient)
	}

	return result, nil
}

func (s *messageService) lookupUser(ctx context.Context, id string) (*entities.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	recipient, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return recipient, nil
}
