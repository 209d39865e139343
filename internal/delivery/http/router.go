package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"planbook/internal/delivery/http/controllers"
	"planbook/internal/delivery/http/middleware"
	"planbook/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	categoryController *controllers.CategoryController,
	userController *controllers.UserController,
	verifier domain.TokenVerifier,
	logger *slog.Logger,
) *http.ServeMux {
	mux := http.NewServeMux()
	authed := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Users
	mux.HandleFunc("GET /users/me", authed(userController.GetMe))
	mux.HandleFunc("PATCH /users/me", authed(userController.UpdateMe))

	// Events and their reminders
	mux.HandleFunc("POST /events", authed(eventController.CreateEvent))
	mux.HandleFunc("GET /events", authed(eventController.ListEvents))
	mux.HandleFunc("GET /events/{eventID}", authed(eventController.GetEvent))
	mux.HandleFunc("PATCH /events/{eventID}", authed(eventController.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", authed(eventController.DeleteEvent))
	mux.HandleFunc("POST /events/{eventID}/reminders", authed(eventController.AddReminder))
	mux.HandleFunc("DELETE /events/{eventID}/reminders/{reminderID}", authed(eventController.RemoveReminder))

	// Categories
	mux.HandleFunc("POST /categories", authed(categoryController.CreateCategory))
	mux.HandleFunc("GET /categories", authed(categoryController.ListCategories))
	mux.HandleFunc("DELETE /categories/{categoryID}", authed(categoryController.DeleteCategory))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
