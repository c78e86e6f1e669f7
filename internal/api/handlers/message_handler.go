package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"lucky-tours-api/domain"
	"lucky-tours-api/internal/api/presenters"
	"lucky-tours-api/pkg/message"
)

type (
	MessageHandler interface {
		SendMessage(c *fiber.Ctx) error
		GetMessages(c *fiber.Ctx) error
		SendSingleSMS(c *fiber.Ctx) error
		SendSingleEmail(c *fiber.Ctx) error
		SendBulkSMS(c *fiber.Ctx) error
		SendBulkEmail(c *fiber.Ctx) error
		SendPaymentReminders(c *fiber.Ctx) error
	}

	messageHandler struct {
		messageService message.MessageService
		validator      *validator.Validate
	}
)

func NewMessageHandler(messageService message.MessageService, validator *validator.Validate) MessageHandler {
	return &messageHandler{
		messageService: messageService,
		validator:      validator,
	}
}

func (h *messageHandler) SendMessage(c *fiber.Ctx) error {
	senderID := c.Locals("user_id").(string)
	req := new(domain.SendMessageRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSendMessage, err)
	}

	res, err := h.messageService.SendMessage(c.Context(), *req, senderID)
	if err != nil {
		if errors.Is(err, domain.ErrParseUUID) || errors.Is(err, domain.ErrNoRecipients) {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSendMessage, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedSendMessage, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessSendMessage)
}

func (h *messageHandler) GetMessages(c *fiber.Ctx) error {
	res, err := h.messageService.GetMessages(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetMessages, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMessages)
}

func (h *messageHandler) SendSingleSMS(c *fiber.Ctx) error {
	req := new(domain.SingleSMSRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSendSMS, err)
	}

	name, err := h.messageService.SendSingleSMS(c.Context(), *req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedSendSMS, err)
		case errors.Is(err, domain.ErrMissingPhoneNumber), errors.Is(err, domain.ErrParseUUID):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSendSMS, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedSendSMS, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"recipient": name}, fiber.StatusOK, domain.MessageSuccessSendSMS)
}

func (h *messageHandler) SendSingleEmail(c *fiber.Ctx) error {
	req := new(domain.SingleEmailRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSendEmail, err)
	}

	name, err := h.messageService.SendSingleEmail(c.Context(), *req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedSendEmail, err)
		case errors.Is(err, domain.ErrMissingEmail), errors.Is(err, domain.ErrParseUUID):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSendEmail, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedSendEmail, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"recipient": name}, fiber.StatusOK, domain.MessageSuccessSendEmail)
}

func (h *messageHandler) SendBulkSMS(c *fiber.Ctx) error {
	req := new(domain.BulkSMSRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSendSMS, err)
	}

	res := h.messageService.SendBulkSMS(c.Context(), *req)
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSendBulkSMS)
}

func (h *messageHandler) SendBulkEmail(c *fiber.Ctx) error {
	req := new(domain.BulkEmailRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSendEmail, err)
	}

	res := h.messageService.SendBulkEmail(c.Context(), *req)
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSendBulkEmail)
}

// SendPaymentReminders treats an empty reminder queue as a successful no-op
// rather than an error.
func (h *messageHandler) SendPaymentReminders(c *fiber.Ctx) error {
	req := new(domain.PaymentReminderRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSendReminders, err)
	}

	res, err := h.messageService.SendPaymentReminders(c.Context(), *req)
	if err != nil {
		if errors.Is(err, domain.ErrNoPendingPayments) {
			return presenters.SuccessResponse(c, &domain.BulkDeliveryResult{
				Results: []string{},
				Errors:  []domain.DeliveryError{},
			}, fiber.StatusOK, domain.ErrNoPendingPayments.Error())
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedSendReminders, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSendReminders)
}
