package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"lucky-tours-api/domain"
	"lucky-tours-api/internal/api/presenters"
	"lucky-tours-api/pkg/packages"
)

type (
	PackageHandler interface {
		GetPackages(c *fiber.Ctx) error
		GetCurrentPackage(c *fiber.Ctx) error
		GetPackage(c *fiber.Ctx) error
		CreatePackage(c *fiber.Ctx) error
		UpdatePackage(c *fiber.Ctx) error
		DeletePackage(c *fiber.Ctx) error
		SetCurrent(c *fiber.Ctx) error
		UpdateCurrent(c *fiber.Ctx) error
		UploadPackageImage(c *fiber.Ctx) error
		GetLiveVideos(c *fiber.Ctx) error
	}

	packageHandler struct {
		packageService packages.PackageService
		validator      *validator.Validate
	}
)

func NewPackageHandler(packageService packages.PackageService, validator *validator.Validate) PackageHandler {
	return &packageHandler{
		packageService: packageService,
		validator:      validator,
	}
}

func (h *packageHandler) GetPackages(c *fiber.Ctx) error {
	pkgs, err := h.packageService.GetPackages(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetPackages, err)
	}

	return presenters.SuccessResponse(c, pkgs, fiber.StatusOK, domain.MessageSuccessGetPackages)
}

// GetCurrentPackage responds 200 with a null payload when no draw cycle is
// active; the absence of a current package is a normal state, not an error.
func (h *packageHandler) GetCurrentPackage(c *fiber.Ctx) error {
	pkg, err := h.packageService.GetCurrentPackage(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetPackage, err)
	}

	return presenters.SuccessResponse(c, pkg, fiber.StatusOK, domain.MessageSuccessGetCurrent)
}

func (h *packageHandler) GetPackage(c *fiber.Ctx) error {
	id := c.Params("id")

	pkg, err := h.packageService.GetPackage(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrParseUUID):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetPackage, err)
		case errors.Is(err, domain.ErrPackageNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetPackage, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetPackage, err)
	}

	return presenters.SuccessResponse(c, pkg, fiber.StatusOK, domain.MessageSuccessGetPackage)
}

func (h *packageHandler) CreatePackage(c *fiber.Ctx) error {
	req := new(domain.CreatePackageRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreatePackage, err)
	}

	pkg, err := h.packageService.CreatePackage(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedCreatePackage, err)
	}

	return presenters.SuccessResponse(c, pkg, fiber.StatusCreated, domain.MessageSuccessCreatePackage)
}

func (h *packageHandler) UpdatePackage(c *fiber.Ctx) error {
	id := c.Params("id")
	req := new(domain.UpdatePackageRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdatePackage, err)
	}

	pkg, err := h.packageService.UpdatePackage(c.Context(), id, *req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrParseUUID):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdatePackage, err)
		case errors.Is(err, domain.ErrPackageNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedUpdatePackage, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedUpdatePackage, err)
	}

	return presenters.SuccessResponse(c, pkg, fiber.StatusOK, domain.MessageSuccessUpdatePackage)
}

func (h *packageHandler) DeletePackage(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.packageService.DeletePackage(c.Context(), id); err != nil {
		switch {
		case errors.Is(err, domain.ErrParseUUID):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeletePackage, err)
		case errors.Is(err, domain.ErrPackageNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDeletePackage, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedDeletePackage, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeletePackage)
}

func (h *packageHandler) SetCurrent(c *fiber.Ctx) error {
	id := c.Params("id")

	pkg, err := h.packageService.SetCurrent(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrParseUUID):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSetCurrent, err)
		case errors.Is(err, domain.ErrPackageNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedSetCurrent, err)
		case errors.Is(err, domain.ErrDrawAlreadyClosed):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSetCurrent, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedSetCurrent, err)
	}

	return presenters.SuccessResponse(c, pkg, fiber.StatusOK, domain.MessageSuccessSetCurrent)
}

func (h *packageHandler) UpdateCurrent(c *fiber.Ctx) error {
	req := new(domain.UpdateCurrentPackageRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateCurrent, err)
	}

	pkg, err := h.packageService.UpdateCurrent(c.Context(), *req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoCurrentPackage):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedUpdateCurrent, err)
		case errors.Is(err, domain.ErrWinnerNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedUpdateCurrent, err)
		case errors.Is(err, domain.ErrParseUUID):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateCurrent, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedUpdateCurrent, err)
	}

	return presenters.SuccessResponse(c, pkg, fiber.StatusOK, domain.MessageSuccessUpdateCurrent)
}

func (h *packageHandler) UploadPackageImage(c *fiber.Ctx) error {
	id := c.Params("id")

	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	pkg, err := h.packageService.UploadPackageImage(c.Context(), id, file)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrParseUUID):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
		case errors.Is(err, domain.ErrPackageNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedUploadImage, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedUploadImage, err)
	}

	return presenters.SuccessResponse(c, pkg, fiber.StatusOK, domain.MessageSuccessUploadImage)
}

func (h *packageHandler) GetLiveVideos(c *fiber.Ctx) error {
	videos, err := h.packageService.GetLiveVideos(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetLiveVideos, err)
	}

	return presenters.SuccessResponse(c, videos, fiber.StatusOK, domain.MessageSuccessGetLiveVideos)
}
