package message

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"lucky-tours-api/domain"
	"lucky-tours-api/entities"
	"lucky-tours-api/pkg/payment"
	"lucky-tours-api/pkg/user"
)

// fakeNotifier fails delivery for any recipient listed in bad.
type fakeNotifier struct {
	bad    map[string]bool
	emails []string
	sms    []string
}

func (f *fakeNotifier) SendEmail(toEmail, subject, htmlBody string) error {
	if f.bad[toEmail] {
		return errors.New("mailbox unavailable")
	}
	f.emails = append(f.emails, toEmail)
	return nil
}

func (f *fakeNotifier) SendSMS(phone, message string) error {
	if f.bad[phone] {
		return errors.New("number unreachable")
	}
	f.sms = append(f.sms, phone)
	return nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entities.User{}, &entities.Message{}, &entities.MessageRecipient{}, &entities.PendingPayment{},
	))
	return db
}

type fixture struct {
	svc      MessageService
	notifier *fakeNotifier
	db       *gorm.DB
	admin    *entities.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	notifier := &fakeNotifier{bad: map[string]bool{}}
	svc := NewMessageService(
		NewMessageRepository(db),
		user.NewUserRepository(db),
		payment.NewPendingPaymentRepository(db),
		notifier,
	)

	admin := &entities.User{
		ID:                uuid.New(),
		Name:              "Admin",
		Email:             "admin@example.com",
		Phone:             "+910000000000",
		Password:          "x",
		VirtualCardNumber: "HLT-2026-999999",
		Role:              entities.RoleAdmin,
		IsActive:          true,
	}
	require.NoError(t, db.Create(admin).Error)

	return &fixture{svc: svc, notifier: notifier, db: db, admin: admin}
}

func (f *fixture) createUser(t *testing.T, name, email, phone string) *entities.User {
	t.Helper()
	u := &entities.User{
		ID:                uuid.New(),
		Name:              name,
		Email:             email,
		Phone:             phone,
		Password:          "x",
		VirtualCardNumber: "HLT-2026-" + phone[len(phone)-6:],
		Role:              entities.RoleUser,
		IsActive:          true,
	}
	require.NoError(t, f.db.Create(u).Error)
	return u
}

func TestSendMessagePartialFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ok := f.createUser(t, "Asha", "asha@example.com", "+911111111111")
	bad := f.createUser(t, "Ravi", "ravi@example.com", "+912222222222")
	f.notifier.bad["ravi@example.com"] = true

	sent, err := f.svc.SendMessage(ctx, domain.SendMessageRequest{
		Title:   "Draw announcement",
		Message: "The September draw is on the 28th.",
		Type:    entities.MessageTypeEmail,
		UserIDs: []string{ok.ID.String(), bad.ID.String()},
	}, f.admin.ID.String())
	require.NoError(t, err)
	require.Equal(t, 2, sent.TotalRecipients)

	// The returned message carries the resolved outcomes, not the
	// pre-delivery state.
	require.Equal(t, 1, sent.SuccessCount)
	require.Equal(t, 1, sent.FailureCount)

	byUser := map[uuid.UUID]*entities.MessageRecipient{}
	for _, r := range sent.Recipients {
		byUser[r.UserID] = r
	}
	require.Equal(t, entities.RecipientStatusSent, byUser[ok.ID].Status)
	require.NotNil(t, byUser[ok.ID].SentAt)
	require.Equal(t, entities.RecipientStatusFailed, byUser[bad.ID].Status)
	require.NotEmpty(t, byUser[bad.ID].Error)

	// And the stored row agrees with the response.
	var stored entities.Message
	require.NoError(t, f.db.First(&stored, "id = ?", sent.ID).Error)
	require.Equal(t, 1, stored.SuccessCount)
	require.Equal(t, 1, stored.FailureCount)
}

func TestSendMessageRequiresRecipients(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.SendMessage(context.Background(), domain.SendMessageRequest{
		Title:   "Draw announcement",
		Message: "The September draw is on the 28th.",
		Type:    entities.MessageTypeEmail,
		UserIDs: []string{},
	}, f.admin.ID.String())
	require.ErrorIs(t, err, domain.ErrNoRecipients)
}

func TestSendMessageBothChannels(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u := f.createUser(t, "Asha", "asha@example.com", "+911111111111")

	_, err := f.svc.SendMessage(ctx, domain.SendMessageRequest{
		Title:   "Reminder",
		Message: "Installment due",
		Type:    entities.MessageTypeBoth,
		UserIDs: []string{u.ID.String()},
	}, f.admin.ID.String())
	require.NoError(t, err)
	require.Equal(t, []string{"asha@example.com"}, f.notifier.emails)
	require.Equal(t, []string{"+911111111111"}, f.notifier.sms)
}

func TestSendSingleSMS(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u := f.createUser(t, "Asha", "asha@example.com", "+911111111111")

	name, err := f.svc.SendSingleSMS(ctx, domain.SingleSMSRequest{
		UserID:  u.ID.String(),
		Message: "hello",
	})
	require.NoError(t, err)
	require.Equal(t, "Asha", name)

	_, err = f.svc.SendSingleSMS(ctx, domain.SingleSMSRequest{
		UserID:  uuid.NewString(),
		Message: "hello",
	})
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = f.svc.SendSingleSMS(ctx, domain.SingleSMSRequest{Message: "hello"})
	require.ErrorIs(t, err, domain.ErrMissingPhoneNumber)
}

func TestSendBulkSMSCollectsPerRecipientOutcomes(t *testing.T) {
	f := newFixture(t)
	f.notifier.bad["+912222222222"] = true

	res := f.svc.SendBulkSMS(context.Background(), domain.BulkSMSRequest{
		Message:    "hello",
		Recipients: []string{"+911111111111", "+912222222222", "+913333333333"},
	})
	require.Equal(t, 2, res.Sent)
	require.Equal(t, 1, res.Failed)
	require.Len(t, res.Errors, 1)
	require.Equal(t, "+912222222222", res.Errors[0].Recipient)
}

func TestSendPaymentReminders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.SendPaymentReminders(ctx, domain.PaymentReminderRequest{Type: entities.MessageTypeSMS})
	require.ErrorIs(t, err, domain.ErrNoPendingPayments)

	u := f.createUser(t, "Asha", "asha@example.com", "+911111111111")
	pending := &entities.PendingPayment{
		ID:      uuid.New(),
		UserID:  u.ID,
		Email:   u.Email,
		Phone:   u.Phone,
		Amount:  2000,
		DueDate: time.Now().AddDate(0, 0, 7),
		Status:  entities.PendingPaymentStatusPending,
	}
	require.NoError(t, f.db.Create(pending).Error)

	paid := &entities.PendingPayment{
		ID:      uuid.New(),
		UserID:  u.ID,
		Email:   u.Email,
		Phone:   u.Phone,
		Amount:  2000,
		DueDate: time.Now().AddDate(0, -1, 0),
		Status:  entities.PendingPaymentStatusPaid,
	}
	require.NoError(t, f.db.Create(paid).Error)

	res, err := f.svc.SendPaymentReminders(ctx, domain.PaymentReminderRequest{Type: entities.MessageTypeSMS})
	require.NoError(t, err)
	require.Equal(t, 1, res.Sent)
	require.Equal(t, 0, res.Failed)
	require.Equal(t, []string{u.Phone}, f.notifier.sms)
}
