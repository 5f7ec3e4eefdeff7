package http

import (
	"net/http"

	"city-services-backend/internal/delivery/http/handler"
	"city-services-backend/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	serviceHandler     *handler.ServiceHandler
	scheduleHandler    *handler.ScheduleHandler
	appointmentHandler *handler.AppointmentHandler
	queueHandler       *handler.QueueHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	serviceHandler *handler.ServiceHandler,
	scheduleHandler *handler.ScheduleHandler,
	appointmentHandler *handler.AppointmentHandler,
	queueHandler *handler.QueueHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		serviceHandler:     serviceHandler,
		scheduleHandler:    scheduleHandler,
		appointmentHandler: appointmentHandler,
		queueHandler:       queueHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Public catalog and queue board
	api.HandleFunc("/appointments/services", r.serviceHandler.ListServices).Methods(http.MethodGet)
	api.HandleFunc("/appointments/services/{id}/schedules", r.scheduleHandler.ListServiceWindows).Methods(http.MethodGet)
	api.HandleFunc("/appointments/services/{id}/slots", r.scheduleHandler.GetSlots).Methods(http.MethodGet)
	api.HandleFunc("/queue/now", r.queueHandler.NowServing).Methods(http.MethodGet)
	api.HandleFunc("/queue/windows", r.queueHandler.ListWindows).Methods(http.MethodGet)
	api.HandleFunc("/queue/windows/{id}/current", r.queueHandler.CurrentTicket).Methods(http.MethodGet)

	// Check-in (the token is the credential, no login required)
	api.HandleFunc("/appointments/{id}/checkin", r.appointmentHandler.CheckIn).Methods(http.MethodPost)

	// Citizen routes (protected)
	citizen := api.PathPrefix("/appointments").Subrouter()
	citizen.Use(r.authMiddleware.Authenticate)
	citizen.HandleFunc("", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	citizen.HandleFunc("/me", r.appointmentHandler.GetMyAppointments).Methods(http.MethodGet)
	citizen.HandleFunc("/me/current", r.appointmentHandler.GetMyCurrentAppointment).Methods(http.MethodGet)
	citizen.HandleFunc("/{id}/cancel", r.appointmentHandler.CancelAppointment).Methods(http.MethodPost)

	// Staff routes (protected - counter staff or admin)
	staff := api.PathPrefix("/queue").Subrouter()
	staff.Use(r.authMiddleware.Authenticate)
	staff.Use(middleware.RequireStaff)
	staff.HandleFunc("/walkin", r.queueHandler.WalkIn).Methods(http.MethodPost)
	staff.HandleFunc("/windows/{id}/open", r.queueHandler.OpenWindow).Methods(http.MethodPost)
	staff.HandleFunc("/windows/{id}/close", r.queueHandler.CloseWindow).Methods(http.MethodPost)
	staff.HandleFunc("/windows/{id}/next", r.queueHandler.CallNext).Methods(http.MethodPost)
	staff.HandleFunc("/tickets/{id}/done", r.queueHandler.CompleteTicket).Methods(http.MethodPost)
	staff.HandleFunc("/tickets/{id}/no_show", r.queueHandler.MarkNoShow).Methods(http.MethodPost)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	// Service catalog management
	admin.HandleFunc("/services", r.serviceHandler.CreateService).Methods(http.MethodPost)
	admin.HandleFunc("/services/{id}", r.serviceHandler.UpdateService).Methods(http.MethodPut)
	admin.HandleFunc("/services/{id}/deactivate", r.serviceHandler.DeactivateService).Methods(http.MethodPost)

	// Schedule window management
	admin.HandleFunc("/schedules", r.scheduleHandler.ListAllWindows).Methods(http.MethodGet)
	admin.HandleFunc("/schedules", r.scheduleHandler.CreateWindows).Methods(http.MethodPost)

	// Serving window management
	admin.HandleFunc("/queue/windows", r.queueHandler.CreateWindow).Methods(http.MethodPost)
	admin.HandleFunc("/queue/windows/{id}", r.queueHandler.UpdateWindow).Methods(http.MethodPatch)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
