package domain

import "errors"

var (
	MessageSuccessSendMessage   = "messages sent successfully"
	MessageSuccessGetMessages   = "messages retrieved successfully"
	MessageSuccessSendSMS       = "SMS sent successfully"
	MessageSuccessSendEmail     = "email sent successfully"
	MessageSuccessSendBulkSMS   = "bulk SMS processed"
	MessageSuccessSendBulkEmail = "bulk email processed"
	MessageSuccessSendReminders = "payment reminders processed"

	MessageFailedSendMessage   = "failed to send messages"
	MessageFailedGetMessages   = "failed to retrieve messages"
	MessageFailedSendSMS       = "failed to send SMS"
	MessageFailedSendEmail     = "failed to send email"
	MessageFailedSendReminders = "failed to send payment reminders"

	ErrNoRecipients       = errors.New("message and recipients are required")
	ErrNoPendingPayments  = errors.New("no pending payments found")
	ErrMissingPhoneNumber = errors.New("phone number is required")
	ErrMissingEmail       = errors.New("email address is required")
)

type (
	SendMessageRequest struct {
		Title   string   `json:"title" validate:"required"`
		Message string   `json:"message" validate:"required"`
		Type    string   `json:"type" validate:"required,oneof=email sms both"`
		UserIDs []string `json:"user_ids" validate:"required,min=1,dive,uuid"`
	}

	SingleSMSRequest struct {
		Phone   string `json:"phone"`
		Message string `json:"message" validate:"required"`
		UserID  string `json:"user_id" validate:"omitempty,uuid"`
	}

	SingleEmailRequest struct {
		Email   string `json:"email" validate:"omitempty,email"`
		Subject string `json:"subject" validate:"required"`
		Message string `json:"message" validate:"required"`
		UserID  string `json:"user_id" validate:"omitempty,uuid"`
	}

	BulkSMSRequest struct {
		Message    string   `json:"message" validate:"required"`
		Recipients []string `json:"recipients" validate:"required,min=1"`
	}

	BulkEmailRequest struct {
		Subject    string   `json:"subject" validate:"required"`
		Message    string   `json:"message" validate:"required"`
		Recipients []string `json:"recipients" validate:"required,min=1,dive,email"`
	}

	PaymentReminderRequest struct {
		Type          string `json:"type" validate:"required,oneof=sms email"`
		CustomMessage string `json:"custom_message"`
	}

	DeliveryError struct {
		Recipient string `json:"recipient"`
		Error     string `json:"error"`
	}

	// BulkDeliveryResult is the aggregate outcome of a batch send. Partial
	// failure is the normal case, never an error.
	BulkDeliveryResult struct {
		Sent    int             `json:"sent"`
		Failed  int             `json:"failed"`
		Results []string        `json:"results"`
		Errors  []DeliveryError `json:"errors"`
	}
)
