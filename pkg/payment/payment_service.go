package payment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lucky-tours-api/domain"
	"lucky-tours-api/entities"
	"lucky-tours-api/internal/utils/spreadsheet"
	"lucky-tours-api/pkg/notification"
	"lucky-tours-api/pkg/packages"
	"lucky-tours-api/pkg/user"
)

const transactionIDAttempts = 10

type (
	PaymentService interface {
		CreatePayment(ctx context.Context, req domain.CreatePaymentRequest) (*entities.Payment, error)
		UpdatePayment(ctx context.Context, id string, req domain.UpdatePaymentRequest) (*entities.Payment, error)
		DeletePayment(ctx context.Context, id string) error
		GetPayments(ctx context.Context, page, limit int) ([]*entities.Payment, int64, error)
		GetPaymentForUser(ctx context.Context, id, userID string) (*entities.Payment, error)
		GetUserDashboard(ctx context.Context, userID string) (*domain.UserDashboard, error)
		GetPendingPayments(ctx context.Context, onlyPending bool) ([]*entities.PendingPayment, error)
		ImportPendingPayments(ctx context.Context, file io.Reader) (*domain.ImportResult, error)
		UpdatePendingPayment(ctx context.Context, id string, req domain.UpdatePendingPaymentRequest) (*entities.PendingPayment, error)
	}

	paymentService struct {
		paymentRepository PaymentRepository
		pendingRepository PendingPaymentRepository
		userRepository    user.UserRepository
		packageRepository packages.PackageRepository
		notifier          notification.Notifier
	}
)

func NewPaymentService(
	paymentRepository PaymentRepository,
	pendingRepository PendingPaymentRepository,
	userRepository user.UserRepository,
	packageRepository packages.PackageRepository,
	notifier notification.Notifier,
) PaymentService {
	return &paymentService{
		paymentRepository: paymentRepository,
		pendingRepository: pendingRepository,
		userRepository:    userRepository,
		packageRepository: packageRepository,
		notifier:          notifier,
	}
}

func (s *paymentService) CreatePayment(ctx context.Context, req domain.CreatePaymentRequest) (*entities.Payment, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	packageID, err := uuid.Parse(req.PackageID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	payer, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentRefsNotFound
		}
		return nil, err
	}
	pkg, err := s.packageRepository.GetPackageByID(ctx, packageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentRefsNotFound
		}
		return nil, err
	}

	transactionID, err := s.generateTransactionID(ctx)
	if err != nil {
		return nil, err
	}

	payment := &entities.Payment{
		ID:            uuid.New(),
		UserID:        userID,
		PackageID:     packageID,
		Amount:        req.Amount,
		PaymentMode:   req.PaymentMode,
		Month:         req.Month,
		Year:          req.Year,
		PaymentDate:   time.Now(),
		Status:        entities.PaymentStatusCompleted,
		TransactionID: transactionID,
		Notes:         req.Notes,
	}

	if err := s.paymentRepository.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}

	// Advisory only: a failed confirmation never rolls back the payment.
	s.sendPaymentConfirmation(payer, pkg, payment)

	return s.paymentRepository.GetPaymentByID(ctx, payment.ID)
}

func (s *paymentService) sendPaymentConfirmation(payer *entities.User, pkg *entities.Package, payment *entities.Payment) {
	smsBody := fmt.Sprintf(
		"Dear %s, your payment of ₹%.0f for %s has been received successfully. Transaction ID: %s",
		payer.Name, payment.Amount, pkg.Name, payment.TransactionID,
	)
	if err := s.notifier.SendSMS(payer.Phone, smsBody); err != nil {
		log.Warnf("payment confirmation SMS failed for %s: %v", payer.Phone, err)
	}

	emailBody := fmt.Sprintf(`
		<h2>Payment Confirmation</h2>
		<p>Dear %s,</p>
		<p>Your payment has been received successfully!</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li>Package: %s</li>
			<li>Amount: ₹%.0f</li>
			<li>Month: %s %d</li>
			<li>Transaction ID: %s</li>
			<li>Payment Mode: %s</li>
		</ul>
		<p>Thank you for choosing Lucky Tours!</p>
	`, payer.Name, pkg.Name, payment.Amount, payment.Month, payment.Year, payment.TransactionID, payment.PaymentMode)
	if err := s.notifier.SendEmail(payer.Email, "Payment Confirmation - Lucky Tours", emailBody); err != nil {
		log.Warnf("payment confirmation email failed for %s: %v", payer.Email, err)
	}
}

func (s *paymentService) UpdatePayment(ctx context.Context, id string, req domain.UpdatePaymentRequest) (*entities.Payment, error) {
	paymentID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	payment, err := s.paymentRepository.GetPaymentByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}

	prevAmount := payment.Amount
	prevStatus := payment.Status

	if req.Amount != nil {
		payment.Amount = *req.Amount
	}
	if req.PaymentMode != "" {
		payment.PaymentMode = req.PaymentMode
	}
	if req.Month != "" {
		payment.Month = req.Month
	}
	if req.Year != nil {
		payment.Year = *req.Year
	}
	if req.Status != "" {
		payment.Status = req.Status
	}
	if req.Notes != nil {
		payment.Notes = *req.Notes
	}

	if err := s.paymentRepository.SavePaymentReconciling(ctx, payment, prevAmount, prevStatus); err != nil {
		return nil, err
	}

	return s.paymentRepository.GetPaymentByID(ctx, payment.ID)
}

func (s *paymentService) DeletePayment(ctx context.Context, id string) error {
	paymentID, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrParseUUID
	}

	deleted, err := s.paymentRepository.DeletePayment(ctx, paymentID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrPaymentNotFound
	}
	return nil
}

func (s *paymentService) GetPayments(ctx context.Context, page, limit int) ([]*entities.Payment, int64, error) {
	return s.paymentRepository.GetPayments(ctx, page, limit)
}

func (s *paymentService) GetPaymentForUser(ctx context.Context, id, userID string) (*entities.Payment, error) {
	paymentID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	payment, err := s.paymentRepository.GetPaymentForUser(ctx, paymentID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	return payment, nil
}

// GetUserDashboard derives the participant totals from the ledger rather
// than the stored counters.
func (s *paymentService) GetUserDashboard(ctx context.Context, userID string) (*domain.UserDashboard, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	payments, err := s.paymentRepository.GetPaymentsByUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	currentPackage, err := s.packageRepository.GetCurrentPackage(ctx)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	totalPaid := 0.0
	monthsPaid := 0
	for _, p := range payments {
		if p.Status == entities.PaymentStatusCompleted {
			totalPaid += p.Amount
			monthsPaid++
		}
	}

	return &domain.UserDashboard{
		MonthsPaid:      monthsPaid,
		TotalAmountPaid: totalPaid,
		CurrentPackage:  currentPackage,
		NextDrawDate:    nextDrawDate(time.Now()).Format(time.RFC3339),
		Payments:        payments,
	}, nil
}

// nextDrawDate is the 28th of the current month, rolling into next month
// once it has passed.
func nextDrawDate(now time.Time) time.Time {
	draw := time.Date(now.Year(), now.Month(), 28, 0, 0, 0, 0, now.Location())
	if draw.Before(now) {
		draw = draw.AddDate(0, 1, 0)
	}
	return draw
}

func (s *paymentService) GetPendingPayments(ctx context.Context, onlyPending bool) ([]*entities.PendingPayment, error) {
	if onlyPending {
		return s.pendingRepository.GetPendingPaymentsByStatus(ctx, entities.PendingPaymentStatusPending)
	}
	return s.pendingRepository.GetPendingPayments(ctx)
}

// ImportPendingPayments resolves each row to a user by email; unknown
// emails become row errors without aborting the batch.
func (s *paymentService) ImportPendingPayments(ctx context.Context, file io.Reader) (*domain.ImportResult, error) {
	rows, err := spreadsheet.ReadRows(file)
	if err != nil {
		return nil, err
	}

	result := &domain.ImportResult{Errors: []domain.ImportRowError{}}
	for i, row := range rows {
		rowNum := i + 1

		email := row["email"]
		if email == "" {
			result.Errors = append(result.Errors, domain.ImportRowError{Row: rowNum, Error: "email is required"})
			continue
		}

		owner, err := s.userRepository.GetUserByEmail(ctx, email)
		if err != nil {
			result.Errors = append(result.Errors, domain.ImportRowError{
				Row:   rowNum,
				Error: fmt.Sprintf("user with email %s not found", email),
			})
			continue
		}

		amount, err := strconv.ParseFloat(row["amount"], 64)
		if err != nil {
			result.Errors = append(result.Errors, domain.ImportRowError{Row: rowNum, Error: "invalid amount"})
			continue
		}

		dueRaw := row["duedate"]
		if dueRaw == "" {
			dueRaw = row["due date"]
		}
		dueDate, err := time.Parse("2006-01-02", dueRaw)
		if err != nil {
			result.Errors = append(result.Errors, domain.ImportRowError{Row: rowNum, Error: "invalid due date"})
			continue
		}

		status := row["status"]
		if status == "" {
			status = entities.PendingPaymentStatusPending
		}

		pending := &entities.PendingPayment{
			ID:          uuid.New(),
			UserID:      owner.ID,
			Email:       owner.Email,
			Phone:       owner.Phone,
			Amount:      amount,
			DueDate:     dueDate,
			Status:      status,
			Description: row["description"],
		}
		if err := s.pendingRepository.CreatePendingPayment(ctx, pending); err != nil {
			result.Errors = append(result.Errors, domain.ImportRowError{Row: rowNum, Error: err.Error()})
			continue
		}
		result.Imported++
	}

	return result, nil
}

func (s *paymentService) UpdatePendingPayment(ctx context.Context, id string, req domain.UpdatePendingPaymentRequest) (*entities.PendingPayment, error) {
	pendingID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	pending, err := s.pendingRepository.GetPendingPaymentByID(ctx, pendingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPendingPaymentNotFound
		}
		return nil, err
	}

	if req.Amount != nil {
		pending.Amount = *req.Amount
	}
	if req.DueDate != nil {
		pending.DueDate = *req.DueDate
	}
	if req.Status != "" {
		pending.Status = req.Status
	}
	if req.Description != nil {
		pending.Description = *req.Description
	}

	if err := s.pendingRepository.UpdatePendingPayment(ctx, pending); err != nil {
		return nil, err
	}
	return pending, nil
}

func (s *paymentService) generateTransactionID(ctx context.Context) (string, error) {
	for i := 0; i < transactionIDAttempts; i++ {
		transactionID := fmt.Sprintf("TXN%d%04d", time.Now().UnixMilli(), rand.Intn(10000))
		exists, err := s.paymentRepository.TransactionIDExists(ctx, transactionID)
		if err != nil {
			return "", err
		}
		if !exists {
			return transactionID, nil
		}
	}
	return "", domain.ErrTransactionIDExhausted
}
