package rest

import (
	"context"
	"net/http"
	"strings"
	"time"

	"diaPredict/domain"
	"diaPredict/pkg/logger"
	"diaPredict/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	UserHandler struct {
		validate    *validator.Validate
		userService UserService
		timeout     time.Duration
	}

	UserService interface {
		Register(ctx context.Context, user *domain.User) (domain.User, error)
		Login(ctx context.Context, email, password string) (string, domain.User, error)
	}

	UserRegisterRequest struct {
		FullName string `json:"full_name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
	}

	UserLoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
)

func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{
		validate:    newValidator(),
		userService: userService,
		timeout:     10 * time.Second,
	}
}

func (h *UserHandler) Register(c echo.Context) error {
	var req UserRegisterRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, response.Error(bindMessage(err)))
	}

	if err := h.validate.Struct(&req); err != nil {
		logger.Error("Failed to validate user register", err)
		return c.JSON(http.StatusBadRequest, response.Error(validationMessage(err)))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.userService.Register(ctx, &domain.User{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		logger.Error("Failed to register user", err)
		if strings.Contains(err.Error(), "already exists") {
			return c.JSON(http.StatusBadRequest, response.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, response.Error(err.Error()))
	}

	return c.JSON(http.StatusCreated, response.SuccessMessage(
		"Registration successful",
		echo.Map{"user": user},
	))
}

func (h *UserHandler) Login(c echo.Context) error {
	var req UserLoginRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, response.Error(bindMessage(err)))
	}

	if err := h.validate.Struct(&req); err != nil {
		logger.Error("Failed to validate user login", err)
		return c.JSON(http.StatusBadRequest, response.Error(validationMessage(err)))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	token, user, err := h.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		logger.Error("Failed to login user", err)
		return c.JSON(http.StatusUnauthorized, response.Error(err.Error()))
	}

	return c.JSON(http.StatusOK, response.SuccessMessage(
		"Login successful",
		echo.Map{"token": token, "user": user},
	))
}
