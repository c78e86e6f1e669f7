package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"lucky-tours-api/domain"
	"lucky-tours-api/internal/api/presenters"
	"lucky-tours-api/pkg/payment"
)

type (
	PendingPaymentHandler interface {
		GetPendingPayments(c *fiber.Ctx) error
		GetOnlyPending(c *fiber.Ctx) error
		ImportPendingPayments(c *fiber.Ctx) error
		UpdatePendingPayment(c *fiber.Ctx) error
	}

	pendingPaymentHandler struct {
		paymentService payment.PaymentService
		validator      *validator.Validate
	}
)

func NewPendingPaymentHandler(paymentService payment.PaymentService, validator *validator.Validate) PendingPaymentHandler {
	return &pendingPaymentHandler{
		paymentService: paymentService,
		validator:      validator,
	}
}

func (h *pendingPaymentHandler) GetPendingPayments(c *fiber.Ctx) error {
	res, err := h.paymentService.GetPendingPayments(c.Context(), false)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetPendingPayments, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetPendingPayments)
}

func (h *pendingPaymentHandler) GetOnlyPending(c *fiber.Ctx) error {
	res, err := h.paymentService.GetPendingPayments(c.Context(), true)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetPendingPayments, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetPendingPayments)
}

func (h *pendingPaymentHandler) ImportPendingPayments(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedImportPendingRows, err)
	}
	defer file.Close()

	res, err := h.paymentService.ImportPendingPayments(c.Context(), file)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedImportPendingRows, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessImportPendingRows)
}

func (h *pendingPaymentHandler) UpdatePendingPayment(c *fiber.Ctx) error {
	id := c.Params("id")
	req := new(domain.UpdatePendingPaymentRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdatePendingStatus, err)
	}

	res, err := h.paymentService.UpdatePendingPayment(c.Context(), id, *req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrParseUUID):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdatePendingStatus, err)
		case errors.Is(err, domain.ErrPendingPaymentNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedUpdatePendingStatus, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedUpdatePendingStatus, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdatePendingStatus)
}
