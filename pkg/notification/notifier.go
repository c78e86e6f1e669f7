package notification

import (
	"lucky-tours-api/internal/utils/mailing"
	"lucky-tours-api/internal/utils/sms"
)

type (
	// Notifier is the transport boundary for advisory messages. Delivery
	// failures are reported to the caller, which decides whether to record
	// or swallow them; a failed notification never blocks a mutation.
	Notifier interface {
		SendEmail(toEmail string, subject string, htmlBody string) error
		SendSMS(phone string, message string) error
	}

	notifier struct{}
)

func NewNotifier() Notifier {
	return &notifier{}
}

func (n *notifier) SendEmail(toEmail string, subject string, htmlBody string) error {
	return mailing.SendMail(toEmail, subject, htmlBody)
}

func (n *notifier) SendSMS(phone string, message string) error {
	return sms.SendSMS(phone, message)
}
