package routes

import (
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/hamzahalilovic/social-network-developers/internal/config"
	"github.com/hamzahalilovic/social-network-developers/internal/database"
	"github.com/hamzahalilovic/social-network-developers/internal/delivery/http/handler"
	"github.com/hamzahalilovic/social-network-developers/internal/delivery/http/middleware"
	"github.com/hamzahalilovic/social-network-developers/internal/infrastructure/cache"
	"github.com/hamzahalilovic/social-network-developers/internal/infrastructure/github"
	"github.com/hamzahalilovic/social-network-developers/internal/infrastructure/persistence/postgres"
	"github.com/hamzahalilovic/social-network-developers/internal/pkg/jwt"
	"github.com/hamzahalilovic/social-network-developers/internal/usecase"
	ucprofile "github.com/hamzahalilovic/social-network-developers/internal/usecase/profile"
)

// Register wires repositories, services and handlers onto the app. Every
// dependency flows in through parameters; nothing reaches for globals.
func Register(app *fiber.App, cfg config.Config, db database.DB, c *cache.Redis, logger *log.Logger) {
	if app == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.ExpiresIn)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	gh := github.NewClient(cfg.Github, logger)

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	profileUC := ucprofile.NewService(profileRepo, userRepo, c, gh)

	handler.NewHealthHandler(db).RegisterRoutes(app)

	api := app.Group("/api")
	handler.NewUsersHandler(authUC).RegisterRoutes(api.Group("/users"))
	handler.NewAuthHandler(authUC, authMw).RegisterRoutes(api.Group("/auth"))
	handler.NewProfileHandler(profileUC, authMw).RegisterRoutes(api.Group("/profile"))
}
