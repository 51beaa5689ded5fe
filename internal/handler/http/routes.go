package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ykarimov/authgate/internal/utils"
	"github.com/ykarimov/authgate/models"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{h.clientURL},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}))

	router.Get("/", h.health)

	// routes without authorization
	router.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Post("/reset-password", h.resetPassword)

		// routes available to any authenticated user
		r.Group(func(r chi.Router) {
			r.Use(h.authenticate)
			r.Post("/logout", h.logout)
			r.Get("/check-user", h.checkUser)
			r.Put("/update-profile", h.updateProfile)
		})
	})

	// admin-only user management
	router.Route("/api/admin", func(r chi.Router) {
		r.Use(h.requireAdmin)
		r.Get("/users", h.getAllUsers)
		r.Get("/users/{id}", h.getUserByID)
		r.Delete("/users/{id}", h.deleteUser)
		r.Put("/users/{id}", h.updateUser)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

// health is the liveness probe at GET /.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.Response{Success: true, Message: "Server is running!"}, http.StatusOK)
}
