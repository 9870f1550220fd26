package routes

import (
	"time"

	"github.com/Anway001/AI-Memory-Space/internal/config"
	"github.com/Anway001/AI-Memory-Space/internal/handlers"
	"github.com/Anway001/AI-Memory-Space/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Health   *handlers.HealthHandler
	Generate *handlers.GenerateHandler
	Story    *handlers.StoryHandler
	Settings *handlers.SettingsHandler
	Contact  *handlers.ContactHandler
}

func perIPLimiter(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               max,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
}

func Setup(app *fiber.App, cfg *config.Config, h Handlers) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	api.Use(perIPLimiter(60))

	api.Get("/health", h.Health.Check)

	// Generation is expensive: 10 req/min per IP, auth optional.
	api.Post("/generate-story", perIPLimiter(10), middleware.OptionalJWT(cfg), h.Generate.GenerateStory)

	api.Post("/contact", h.Contact.Submit)

	auth := api.Group("/auth")
	auth.Use(perIPLimiter(10))
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Get("/me", middleware.JWTProtected(cfg), h.Auth.Me)
	auth.Put("/me", middleware.JWTProtected(cfg), h.Auth.UpdateMe)

	stories := api.Group("/stories", middleware.JWTProtected(cfg))
	stories.Post("/", h.Story.Create)
	stories.Get("/", h.Story.List)
	stories.Put("/:id", h.Story.Update)
	stories.Delete("/:id", h.Story.Delete)

	settings := api.Group("/settings", middleware.JWTProtected(cfg))
	settings.Get("/", h.Settings.Get)
	settings.Post("/", h.Settings.Update)
	settings.Put("/", h.Settings.Update)
	settings.Post("/profile-picture", h.Settings.UploadProfilePicture)
}
