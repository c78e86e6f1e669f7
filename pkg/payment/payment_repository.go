package payment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lucky-tours-api/entities"
)

type (
	PaymentRepository interface {
		CreatePayment(ctx context.Context, payment *entities.Payment) error
		GetPaymentByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error)
		GetPaymentForUser(ctx context.Context, id, userID uuid.UUID) (*entities.Payment, error)
		GetPayments(ctx context.Context, page, limit int) ([]*entities.Payment, int64, error)
		GetPaymentsByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Payment, error)
		GetRecentPayments(ctx context.Context, limit int) ([]*entities.Payment, error)
		SavePaymentReconciling(ctx context.Context, payment *entities.Payment, prevAmount float64, prevStatus string) error
		DeletePayment(ctx context.Context, id uuid.UUID) (bool, error)
		SumCompletedAmount(ctx context.Context) (float64, error)
		TransactionIDExists(ctx context.Context, transactionID string) (bool, error)
	}

	paymentRepository struct {
		db *gorm.DB
	}
)

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{
		db: db,
	}
}

// adjustCounters is the single reconciliation routine for the denormalized
// totals on User and Package. Every ledger mutation goes through it; nothing
// else writes these fields.
func adjustCounters(tx *gorm.DB, userID, packageID uuid.UUID, amountDelta float64, countDelta int) error {
	if amountDelta == 0 && countDelta == 0 {
		return nil
	}

	if err := tx.Model(&entities.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"total_amount_paid": gorm.Expr("total_amount_paid + ?", amountDelta),
			"months_paid":       gorm.Expr("months_paid + ?", countDelta),
		}).Error; err != nil {
		return err
	}

	return tx.Model(&entities.Package{}).
		Where("id = ?", packageID).
		Updates(map[string]interface{}{
			"total_revenue":      gorm.Expr("total_revenue + ?", amountDelta),
			"total_participants": gorm.Expr("total_participants + ?", countDelta),
		}).Error
}

func countedAmount(status string, amount float64) (float64, int) {
	if status == entities.PaymentStatusCompleted {
		return amount, 1
	}
	return 0, 0
}

// CreatePayment inserts a ledger row and applies its counter effects in one
// transaction, so a crash can never leave the counters behind the ledger.
func (r *paymentRepository) CreatePayment(ctx context.Context, payment *entities.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		amountDelta, countDelta := countedAmount(payment.Status, payment.Amount)
		return adjustCounters(tx, payment.UserID, payment.PackageID, amountDelta, countDelta)
	})
}

// SavePaymentReconciling persists an updated ledger row and adjusts the
// counters by the delta between its previous and new counted value. A
// completed payment later marked failed has its effects reversed here.
func (r *paymentRepository) SavePaymentReconciling(ctx context.Context, payment *entities.Payment, prevAmount float64, prevStatus string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(payment).Error; err != nil {
			return err
		}

		prevCounted, prevCount := countedAmount(prevStatus, prevAmount)
		newCounted, newCount := countedAmount(payment.Status, payment.Amount)
		return adjustCounters(tx, payment.UserID, payment.PackageID, newCounted-prevCounted, newCount-prevCount)
	})
}

func (r *paymentRepository) DeletePayment(ctx context.Context, id uuid.UUID) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var payment entities.Payment
		if err := tx.Where("id = ?", id).First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		if err := tx.Delete(&payment).Error; err != nil {
			return err
		}

		amountDelta, countDelta := countedAmount(payment.Status, payment.Amount)
		if err := adjustCounters(tx, payment.UserID, payment.PackageID, -amountDelta, -countDelta); err != nil {
			return err
		}
		deleted = true
		return nil
	})
	return deleted, err
}

func (r *paymentRepository) GetPaymentByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error) {
	var payment entities.Payment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Package").
		Where("id = ?", id).
		First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) GetPaymentForUser(ctx context.Context, id, userID uuid.UUID) (*entities.Payment, error) {
	var payment entities.Payment
	if err := r.db.WithContext(ctx).
		Preload("Package").
		Where("id = ? AND user_id = ?", id, userID).
		First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) GetPayments(ctx context.Context, page, limit int) ([]*entities.Payment, int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Payment{}).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var payments []*entities.Payment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Package").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&payments).Error; err != nil {
		return nil, 0, err
	}

	return payments, count, nil
}

func (r *paymentRepository) GetPaymentsByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Payment, error) {
	var payments []*entities.Payment
	if err := r.db.WithContext(ctx).
		Preload("Package").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) GetRecentPayments(ctx context.Context, limit int) ([]*entities.Payment, error) {
	var payments []*entities.Payment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Package").
		Order("created_at DESC").
		Limit(limit).
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// SumCompletedAmount aggregates straight from the ledger, the source of
// truth, never from the denormalized counters.
func (r *paymentRepository) SumCompletedAmount(ctx context.Context) (float64, error) {
	var total float64
	if err := r.db.WithContext(ctx).
		Model(&entities.Payment{}).
		Where("status = ?", entities.PaymentStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *paymentRepository) TransactionIDExists(ctx context.Context, transactionID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Payment{}).
		Where("transaction_id = ?", transactionID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
