package handler

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/hamzahalilovic/social-network-developers/internal/delivery/http/dto"
	"github.com/hamzahalilovic/social-network-developers/internal/delivery/http/middleware"
	domain "github.com/hamzahalilovic/social-network-developers/internal/domain/profile"
	"github.com/hamzahalilovic/social-network-developers/internal/domain/user"
	"github.com/hamzahalilovic/social-network-developers/internal/infrastructure/github"
	"github.com/hamzahalilovic/social-network-developers/internal/pkg/response"
	"github.com/hamzahalilovic/social-network-developers/internal/pkg/validate"
	ucprofile "github.com/hamzahalilovic/social-network-developers/internal/usecase/profile"
)

const (
	msgNoProfile          = "There is no profile for this user"
	msgProfileNotFound    = "Profile not found"
	msgExperienceNotFound = "Experience entry not found"
	msgEducationNotFound  = "Education entry not found"
	msgNoGithubProfile    = "No GitHub profile found"
)

type ProfileHandler struct {
	uc     *ucprofile.Service
	authMw *middleware.AuthMiddleware
}

func NewProfileHandler(uc *ucprofile.Service, authMw *middleware.AuthMiddleware) *ProfileHandler {
	return &ProfileHandler{uc: uc, authMw: authMw}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	auth := h.authMw.Middleware()

	r.Get("/", h.List)
	r.Get("/me", h.Me, auth)
	r.Post("/", h.Upsert, auth)
	r.Delete("/", h.DeleteAccount, auth)
	r.Get("/user/:user_id", h.ByUser)
	r.Get("/github/:username", h.GithubRepos)
	r.Put("/experience", h.AddExperience, auth)
	r.Delete("/experience/:exp_id", h.DeleteExperience, auth)
	r.Put("/education", h.AddEducation, auth)
	r.Delete("/education/:edu_id", h.DeleteEducation, auth)
}

type upsertProfileRequest struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Status         string `json:"status" validate:"required"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"githubusername"`
	Skills         string `json:"skills" validate:"required"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

var upsertProfileMessages = map[string]string{
	"Status": "Status is required",
	"Skills": "Skills is required",
}

type experienceRequest struct {
	Title       string `json:"title" validate:"required"`
	Company     string `json:"company" validate:"required"`
	Location    string `json:"location"`
	From        string `json:"from" validate:"required"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

var experienceMessages = map[string]string{
	"Title":   "Title is required",
	"Company": "Company is required",
	"From":    "From date is required",
}

type educationRequest struct {
	School       string `json:"school" validate:"required"`
	Degree       string `json:"degree" validate:"required"`
	FieldOfStudy string `json:"fieldofstudy" validate:"required"`
	From         string `json:"from" validate:"required"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

var educationMessages = map[string]string{
	"School":       "School is required",
	"Degree":       "Degree is required",
	"FieldOfStudy": "Field of study is required",
	"From":         "From date is required",
}

func (h *ProfileHandler) Me(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "No token, authorization denied", nil)
	}

	p, err := h.uc.GetMine(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusBadRequest, msgNoProfile, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, "", err)
	}

	return c.JSON(dto.NewProfileResponse(p))
}

func (h *ProfileHandler) Upsert(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "No token, authorization denied", nil)
	}

	var req upsertProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}

	if fieldErrs := validate.Struct(req, upsertProfileMessages); fieldErrs != nil {
		return middleware.NewValidationError(fieldErrs)
	}

	p, err := h.uc.Upsert(c.Context(), userID, ucprofile.UpsertInput{
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Status:         req.Status,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Skills:         req.Skills,
		Social: domain.SocialLinks{
			Youtube:   strings.TrimSpace(req.Youtube),
			Twitter:   strings.TrimSpace(req.Twitter),
			Facebook:  strings.TrimSpace(req.Facebook),
			Linkedin:  strings.TrimSpace(req.Linkedin),
			Instagram: strings.TrimSpace(req.Instagram),
		},
	})
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "", err)
	}

	return c.JSON(dto.NewProfileResponse(p))
}

func (h *ProfileHandler) List(c fiber.Ctx) error {
	profiles, err := h.uc.List(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "", err)
	}
	return c.JSON(dto.NewProfileListResponse(profiles))
}

func (h *ProfileHandler) ByUser(c fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		// A malformed identifier is indistinguishable from an unknown one
		// as far as the client is concerned.
		return middleware.NewAppError(fiber.StatusBadRequest, msgProfileNotFound, err)
	}

	p, err := h.uc.GetByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusBadRequest, msgProfileNotFound, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, "", err)
	}

	return c.JSON(dto.NewProfileResponse(p))
}

func (h *ProfileHandler) DeleteAccount(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "No token, authorization denied", nil)
	}

	if err := h.uc.DeleteAccount(c.Context(), userID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusBadRequest, "User not found", err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, "", err)
	}

	return response.Msg(c, fiber.StatusOK, "User deleted")
}

func (h *ProfileHandler) AddExperience(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "No token, authorization denied", nil)
	}

	var req experienceRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}

	if fieldErrs := validate.Struct(req, experienceMessages); fieldErrs != nil {
		return middleware.NewValidationError(fieldErrs)
	}

	from, to, fieldErrs := parseDateRange(req.From, req.To)
	if fieldErrs != nil {
		return middleware.NewValidationError(fieldErrs)
	}

	p, err := h.uc.AddExperience(c.Context(), userID, ucprofile.ExperienceInput{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        from,
		To:          to,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusBadRequest, msgNoProfile, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, "", err)
	}

	return c.JSON(dto.NewProfileResponse(p))
}

func (h *ProfileHandler) DeleteExperience(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "No token, authorization denied", nil)
	}

	expID, err := uuid.Parse(c.Params("exp_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, msgExperienceNotFound, err)
	}

	p, err := h.uc.DeleteExperience(c.Context(), userID, expID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return middleware.NewAppError(fiber.StatusBadRequest, msgNoProfile, err)
		case errors.Is(err, ucprofile.ErrExperienceNotFound):
			return middleware.NewAppError(fiber.StatusBadRequest, msgExperienceNotFound, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, "", err)
	}

	return c.JSON(dto.NewProfileResponse(p))
}

func (h *ProfileHandler) AddEducation(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "No token, authorization denied", nil)
	}

	var req educationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}

	if fieldErrs := validate.Struct(req, educationMessages); fieldErrs != nil {
		return middleware.NewValidationError(fieldErrs)
	}

	from, to, fieldErrs := parseDateRange(req.From, req.To)
	if fieldErrs != nil {
		return middleware.NewValidationError(fieldErrs)
	}

	p, err := h.uc.AddEducation(c.Context(), userID, ucprofile.EducationInput{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusBadRequest, msgNoProfile, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, "", err)
	}

	return c.JSON(dto.NewProfileResponse(p))
}

func (h *ProfileHandler) DeleteEducation(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "No token, authorization denied", nil)
	}

	eduID, err := uuid.Parse(c.Params("edu_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, msgEducationNotFound, err)
	}

	p, err := h.uc.DeleteEducation(c.Context(), userID, eduID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return middleware.NewAppError(fiber.StatusBadRequest, msgNoProfile, err)
		case errors.Is(err, ucprofile.ErrEducationNotFound):
			return middleware.NewAppError(fiber.StatusBadRequest, msgEducationNotFound, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, "", err)
	}

	return c.JSON(dto.NewProfileResponse(p))
}

func (h *ProfileHandler) GithubRepos(c fiber.Ctx) error {
	repos, err := h.uc.GithubRepos(c.Context(), c.Params("username"))
	if err != nil {
		if errors.Is(err, github.ErrUserNotFound) {
			return middleware.NewAppError(fiber.StatusBadRequest, msgNoGithubProfile, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, "", err)
	}
	return c.JSON(repos)
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func parseDateRange(fromRaw, toRaw string) (time.Time, *time.Time, []validate.FieldError) {
	from, err := parseDate(fromRaw)
	if err != nil {
		return time.Time{}, nil, []validate.FieldError{{Msg: "From date is invalid"}}
	}

	var to *time.Time
	if strings.TrimSpace(toRaw) != "" {
		t, err := parseDate(toRaw)
		if err != nil {
			return time.Time{}, nil, []validate.FieldError{{Msg: "To date is invalid"}}
		}
		to = &t
	}

	return from, to, nil
}
