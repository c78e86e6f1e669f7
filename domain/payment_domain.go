package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetPayments         = "payments retrieved successfully"
	MessageSuccessGetPayment          = "payment retrieved successfully"
	MessageSuccessCreatePayment       = "payment created successfully"
	MessageSuccessUpdatePayment       = "payment updated successfully"
	MessageSuccessDeletePayment       = "payment deleted successfully"
	MessageSuccessGetDashboard        = "dashboard retrieved successfully"
	MessageSuccessGetPendingPayments  = "pending payments retrieved successfully"
	MessageSuccessImportPendingRows   = "pending payments imported"
	MessageSuccessUpdatePendingStatus = "pending payment updated successfully"

	MessageFailedGetPayments         = "failed to retrieve payments"
	MessageFailedGetPayment          = "failed to retrieve payment"
	MessageFailedCreatePayment       = "failed to create payment"
	MessageFailedUpdatePayment       = "failed to update payment"
	MessageFailedDeletePayment       = "failed to delete payment"
	MessageFailedGetDashboard        = "failed to retrieve dashboard"
	MessageFailedGetPendingPayments  = "failed to retrieve pending payments"
	MessageFailedImportPendingRows   = "failed to import pending payments"
	MessageFailedUpdatePendingStatus = "failed to update pending payment"

	ErrPaymentNotFound        = errors.New("payment not found")
	ErrPaymentRefsNotFound    = errors.New("user or package not found")
	ErrPendingPaymentNotFound = errors.New("pending payment not found")
	ErrTransactionIDExhausted = errors.New("could not allocate a unique transaction id")
)

type (
	CreatePaymentRequest struct {
		UserID      string  `json:"user_id" validate:"required,uuid"`
		PackageID   string  `json:"package_id" validate:"required,uuid"`
		Amount      float64 `json:"amount" validate:"required,min=0"`
		PaymentMode string  `json:"payment_mode" validate:"required,oneof=UPI Cash Card 'Bank Transfer'"`
		Month       string  `json:"month" validate:"required"`
		Year        int     `json:"year" validate:"required"`
		Notes       string  `json:"notes"`
	}

	UpdatePaymentRequest struct {
		Amount      *float64 `json:"amount"`
		PaymentMode string   `json:"payment_mode" validate:"omitempty,oneof=UPI Cash Card 'Bank Transfer'"`
		Month       string   `json:"month"`
		Year        *int     `json:"year"`
		Status      string   `json:"status" validate:"omitempty,oneof=pending completed failed"`
		Notes       *string  `json:"notes"`
	}

	UpdatePendingPaymentRequest struct {
		Amount      *float64   `json:"amount"`
		DueDate     *time.Time `json:"due_date"`
		Status      string     `json:"status" validate:"omitempty,oneof=pending paid overdue"`
		Description *string    `json:"description"`
	}
)
