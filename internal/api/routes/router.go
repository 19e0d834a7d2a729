package routes

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/zatekoja/unitycure/backend/internal/api/handlers"
	"github.com/zatekoja/unitycure/backend/internal/api/middleware"
	"github.com/zatekoja/unitycure/backend/internal/infrastructure/observability"
)

// Handlers groups every route handler. Admin may be nil to leave the backup
// endpoints unmounted.
type Handlers struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	Hospital    *handlers.HospitalHandler
	Appointment *handlers.AppointmentHandler
	Sos         *handlers.SosHandler
	Feedback    *handlers.FeedbackHandler
	Provider    *handlers.ProviderHandler
	Contact     *handlers.ContactHandler
	Chatbot     *handlers.ChatbotHandler
	Admin       *handlers.AdminHandler
}

// Router holds all route handlers
type Router struct {
	mux      *http.ServeMux
	handlers Handlers

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
	allowedOrigins  []string
	logger          zerolog.Logger
}

// NewRouter creates a new router. cacheMiddleware and metrics may be nil.
func NewRouter(
	h Handlers,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
	allowedOrigins []string,
	logger zerolog.Logger,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		handlers:        h,
		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
		allowedOrigins:  allowedOrigins,
		logger:          logger,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	h := r.handlers

	r.mux.HandleFunc("GET /api/health", h.Health.Health)

	// Accounts
	r.mux.HandleFunc("POST /api/login", h.Auth.Login)
	r.mux.HandleFunc("POST /api/register", h.Auth.Register)

	// Hospitals
	r.mux.HandleFunc("GET /api/hospitals", h.Hospital.ListHospitals)
	r.mux.HandleFunc("GET /api/hospitals/{id}", h.Hospital.GetHospital)
	r.mux.HandleFunc("GET /api/hospitals/nearby/{lat}/{lng}", h.Hospital.NearbyHospitals)

	// Appointments
	r.mux.HandleFunc("POST /api/appointments", h.Appointment.BookAppointment)
	r.mux.HandleFunc("GET /api/appointments", h.Appointment.ListAppointments)

	// Emergencies
	r.mux.HandleFunc("POST /api/sos", h.Sos.ReportSos)
	r.mux.HandleFunc("GET /api/sos", h.Sos.ListSos)

	// Feedback
	r.mux.HandleFunc("POST /api/feedback", h.Feedback.SubmitFeedback)
	r.mux.HandleFunc("GET /api/feedback/{serviceId}/{serviceType}", h.Feedback.ListFeedback)

	// Providers
	r.mux.HandleFunc("POST /api/providers", h.Provider.RegisterProvider)
	r.mux.HandleFunc("GET /api/providers", h.Provider.SearchProviders)

	// Contact form
	r.mux.HandleFunc("POST /api/contact", h.Contact.SubmitContact)
	r.mux.HandleFunc("GET /api/contact", h.Contact.ListContacts)

	// Chatbot history
	r.mux.HandleFunc("POST /api/chatbot/messages", h.Chatbot.RecordMessage)
	r.mux.HandleFunc("GET /api/chatbot/history/{userId}", h.Chatbot.History)

	if h.Admin != nil {
		r.mux.HandleFunc("POST /api/admin/backup", h.Admin.Backup)
		r.mux.HandleFunc("POST /api/admin/restore", h.Admin.Restore)
	}

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.RecoveryMiddleware(r.logger)(handler)
	handler = middleware.LoggingMiddleware(r.logger)(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// Compression, ETag and cache headers sit outside the response cache so
	// cached bodies are stored uncompressed.
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
