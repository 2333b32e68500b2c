package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"clubportal/internal/delivery/http/controllers"
	"clubportal/internal/delivery/http/middleware"
	"clubportal/internal/domain"
)

// Controllers bundles the controllers wired into the router.
type Controllers struct {
	Auth         *controllers.AuthController
	User         *controllers.UserController
	Event        *controllers.EventController
	Registration *controllers.RegistrationController
	Announcement *controllers.AnnouncementController
	Inquiry      *controllers.InquiryController
	Winner       *controllers.WinnerController
	Glimpse      *controllers.GlimpseController
}

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(c Controllers, verifier domain.TokenVerifier) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return auth(middleware.RequireAdmin(h))
	}

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)

	// Public catalog
	mux.HandleFunc("GET /events", c.Event.List)
	mux.HandleFunc("GET /events/{eventID}", c.Event.Get)
	mux.HandleFunc("GET /events/{eventID}/glimpses", c.Glimpse.ListByEvent)
	mux.HandleFunc("GET /announcements", c.Announcement.List)
	mux.HandleFunc("GET /winners", c.Winner.List)
	mux.HandleFunc("POST /inquiries", c.Inquiry.Submit)

	// Member
	mux.HandleFunc("GET /me", auth(c.User.GetMe))
	mux.HandleFunc("PATCH /me", auth(c.User.UpdateMe))
	mux.HandleFunc("GET /me/registrations", auth(c.Registration.ListMyRegistrations))
	mux.HandleFunc("POST /events/{eventID}/registrations", auth(c.Registration.Register))
	mux.HandleFunc("POST /registrations/{registrationID}/cancel", auth(c.Registration.Cancel))

	// Admin
	mux.HandleFunc("POST /admin/events", admin(c.Event.Create))
	mux.HandleFunc("PATCH /admin/events/{eventID}", admin(c.Event.Update))
	mux.HandleFunc("DELETE /admin/events/{eventID}", admin(c.Event.Delete))
	mux.HandleFunc("GET /admin/registrations", admin(c.Registration.AdminList))
	mux.HandleFunc("GET /admin/users", admin(c.User.AdminList))
	mux.HandleFunc("PATCH /admin/users/{userID}", admin(c.User.AdminUpdate))
	mux.HandleFunc("DELETE /admin/users/{userID}", admin(c.User.AdminDelete))
	mux.HandleFunc("POST /admin/announcements", admin(c.Announcement.Create))
	mux.HandleFunc("PUT /admin/announcements/{announcementID}", admin(c.Announcement.Update))
	mux.HandleFunc("DELETE /admin/announcements/{announcementID}", admin(c.Announcement.Delete))
	mux.HandleFunc("GET /admin/inquiries", admin(c.Inquiry.AdminList))
	mux.HandleFunc("DELETE /admin/inquiries/{inquiryID}", admin(c.Inquiry.AdminDelete))
	mux.HandleFunc("POST /admin/winners", admin(c.Winner.Create))
	mux.HandleFunc("DELETE /admin/winners/{winnerID}", admin(c.Winner.Delete))
	mux.HandleFunc("POST /admin/events/{eventID}/glimpses", admin(c.Glimpse.Upload))
	mux.HandleFunc("DELETE /admin/glimpses/{glimpseID}", admin(c.Glimpse.Delete))

	// Health
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
