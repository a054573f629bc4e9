package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/hamzahalilovic/social-network-developers/internal/delivery/http/dto"
	"github.com/hamzahalilovic/social-network-developers/internal/delivery/http/middleware"
	"github.com/hamzahalilovic/social-network-developers/internal/domain/user"
	"github.com/hamzahalilovic/social-network-developers/internal/pkg/validate"
	"github.com/hamzahalilovic/social-network-developers/internal/usecase"
	ucauth "github.com/hamzahalilovic/social-network-developers/internal/usecase/auth"
)

type AuthHandler struct {
	uc     usecase.AuthUsecase
	authMw *middleware.AuthMiddleware
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

var loginMessages = map[string]string{
	"Email":    "Please include a valid email",
	"Password": "Password is required",
}

func NewAuthHandler(uc usecase.AuthUsecase, authMw *middleware.AuthMiddleware) *AuthHandler {
	return &AuthHandler{uc: uc, authMw: authMw}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Login)
	r.Get("/", h.Me, h.authMw.Middleware())
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}

	if fieldErrs := validate.Struct(req, loginMessages); fieldErrs != nil {
		return middleware.NewValidationError(fieldErrs)
	}

	token, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		// Whether the email or the password was wrong stays hidden.
		if errors.Is(err, ucauth.ErrInvalidCredentials) {
			return middleware.NewValidationError([]validate.FieldError{{Msg: "Invalid credentials"}})
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, "", err)
	}

	return c.JSON(tokenResponse{Token: token})
}

func (h *AuthHandler) Me(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "No token, authorization denied", nil)
	}

	usr, err := h.uc.GetMe(c.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusBadRequest, "User not found", err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, "", err)
	}

	return c.JSON(dto.NewUserResponse(usr))
}
