package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/hamzahalilovic/social-network-developers/internal/delivery/http/middleware"
	"github.com/hamzahalilovic/social-network-developers/internal/pkg/validate"
	"github.com/hamzahalilovic/social-network-developers/internal/usecase"
	ucauth "github.com/hamzahalilovic/social-network-developers/internal/usecase/auth"
)

type UsersHandler struct {
	uc usecase.AuthUsecase
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=6"`
}

var registerMessages = map[string]string{
	"Name":     "Name is required",
	"Email":    "Please include a valid email",
	"Password": "Please enter a password with 6 or more characters",
}

func NewUsersHandler(uc usecase.AuthUsecase) *UsersHandler {
	return &UsersHandler{uc: uc}
}

func (h *UsersHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Register)
}

// Register creates an account and answers with a signed token. A duplicate
// email always short-circuits into a single 400 response.
func (h *UsersHandler) Register(c fiber.Ctx) error {
	var req registerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}

	if fieldErrs := validate.Struct(req, registerMessages); fieldErrs != nil {
		return middleware.NewValidationError(fieldErrs)
	}

	token, err := h.uc.Register(c.Context(), ucauth.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, ucauth.ErrEmailAlreadyRegistered) {
			return middleware.NewValidationError([]validate.FieldError{{Msg: "User already exists"}})
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, "", err)
	}

	return c.JSON(tokenResponse{Token: token})
}

type tokenResponse struct {
	Token string `json:"token"`
}
