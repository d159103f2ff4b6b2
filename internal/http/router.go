package http

import (
	"log"
	"net/http"

	"careercard/internal/ai"
	"careercard/internal/auth"
	"careercard/internal/card"
	"careercard/internal/config"
	"careercard/internal/httputil"
	"careercard/internal/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	cfg *config.Config,
	authHandler *auth.Handler,
	authMiddleware *auth.Middleware,
	cardHandler *card.Handler,
	aiHandler *ai.Handler,
	logger *logging.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// CORS - must be first
	if len(cfg.Server.TrustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.TrustedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           300, // 5 minutes
		}))
	}

	// Global middleware
	r.Use(SecurityHeaders)               // Security headers on all responses
	r.Use(middleware.Recoverer)          // Recover from panics
	r.Use(middleware.RequestID)          // Add request ID
	r.Use(middleware.RealIP)             // Set RemoteAddr to real IP
	r.Use(logging.RequestLogger(logger)) // Structured logging with request context
	r.Use(middleware.Compress(5))        // Compress responses

	// Public routes
	r.Get("/health", handleHealth)

	// Swagger UI - only in development
	// Production builds will not have this route at all
	if cfg.Server.IsDevelopment() {
		log.Println("Swagger UI enabled at /swagger/*")
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	} else {
		log.Println("Swagger UI disabled (production mode)")
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			// Public
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)

			// Session required
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.RequireAuth)
				r.Post("/logout", authHandler.Logout)
				r.Get("/me", authHandler.Me)
				r.Put("/profile", authHandler.UpdateProfile)
				r.Put("/password", authHandler.UpdatePassword)
			})
		})

		r.Route("/cards", func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)
			r.Post("/", cardHandler.Create)
			r.Get("/", cardHandler.List)
			r.Get("/{id}", cardHandler.Get)
			r.Put("/{id}", cardHandler.Update)
		})

		r.Route("/ai", func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)
			r.Post("/parse-resume", aiHandler.ParseResume)
			r.Post("/parse-resume-experience", aiHandler.ParseResumeExperience)
			r.Post("/extract-resume-text", aiHandler.ExtractResumeText)
			r.Post("/parse-portfolio", aiHandler.ParsePortfolio)
			r.Post("/score-career-card", aiHandler.ScoreCareerCard)
		})
	})

	return r
}

// handleHealth is a simple health check endpoint
// @Summary      Health check
// @Description  Check if the API is running
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /health [get]
func handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, map[string]string{"status": "api is running"}, http.StatusOK)
}
