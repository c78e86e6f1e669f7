package payment

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lucky-tours-api/entities"
)

type (
	PendingPaymentRepository interface {
		CreatePendingPayment(ctx context.Context, pending *entities.PendingPayment) error
		GetPendingPayments(ctx context.Context) ([]*entities.PendingPayment, error)
		GetPendingPaymentsByStatus(ctx context.Context, status string) ([]*entities.PendingPayment, error)
		GetPendingPaymentByID(ctx context.Context, id uuid.UUID) (*entities.PendingPayment, error)
		UpdatePendingPayment(ctx context.Context, pending *entities.PendingPayment) error
	}

	pendingPaymentRepository struct {
		db *gorm.DB
	}
)

func NewPendingPaymentRepository(db *gorm.DB) PendingPaymentRepository {
	return &pendingPaymentRepository{
		db: db,
	}
}

func (r *pendingPaymentRepository) CreatePendingPayment(ctx context.Context, pending *entities.PendingPayment) error {
	return r.db.WithContext(ctx).Create(pending).Error
}

func (r *pendingPaymentRepository) GetPendingPayments(ctx context.Context) ([]*entities.PendingPayment, error) {
	var pendings []*entities.PendingPayment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Order("due_date ASC").
		Find(&pendings).Error; err != nil {
		return nil, err
	}
	return pendings, nil
}

func (r *pendingPaymentRepository) GetPendingPaymentsByStatus(ctx context.Context, status string) ([]*entities.PendingPayment, error) {
	var pendings []*entities.PendingPayment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("status = ?", status).
		Order("due_date ASC").
		Find(&pendings).Error; err != nil {
		return nil, err
	}
	return pendings, nil
}

func (r *pendingPaymentRepository) GetPendingPaymentByID(ctx context.Context, id uuid.UUID) (*entities.PendingPayment, error) {
	var pending entities.PendingPayment
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&pending).Error; err != nil {
		return nil, err
	}
	return &pending, nil
}

func (r *pendingPaymentRepository) UpdatePendingPayment(ctx context.Context, pending *entities.PendingPayment) error {
	return r.db.WithContext(ctx).Save(pending).Error
}
