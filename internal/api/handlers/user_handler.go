package handlers

import (
	"campuscook/domain"
	"campuscook/internal/api/presenters"
	"campuscook/internal/middleware"
	"campuscook/pkg/user"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	UserHandler interface {
		Register(c *fiber.Ctx) error
		Login(c *fiber.Ctx) error
		Me(c *fiber.Ctx) error
	}

	userHandler struct {
		userService user.UserService
		validator   *validator.Validate
	}
)

func NewUserHandler(userService user.UserService, validator *validator.Validate) UserHandler {
	return &userHandler{
		userService: userService,
		validator:   validator,
	}
}

func (h *userHandler) Register(c *fiber.Ctx) error {
	req := new(domain.SignupRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageRegisterRequired, err)
	}

	res, err := h.userService.Register(c.UserContext(), *req)
	if err != nil {
		return presenters.HandleError(c, err, domain.MessageFailedRegister)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated)
}

func (h *userHandler) Login(c *fiber.Ctx) error {
	req := new(domain.LoginRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageLoginRequired, err)
	}

	res, err := h.userService.Login(c.UserContext(), *req)
	if err != nil {
		return presenters.HandleError(c, err, domain.MessageFailedLogin)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *userHandler) Me(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return presenters.HandleError(c, domain.ErrNotAuthenticated, domain.MessageFailedGetUser)
	}

	res, err := h.userService.GetCurrentUser(c.UserContext(), identity.UserID)
	if err != nil {
		return presenters.HandleError(c, err, domain.MessageFailedGetUser)
	}
	return presenters.SuccessResponse(c, domain.MeResponse{User: res}, fiber.StatusOK)
}
