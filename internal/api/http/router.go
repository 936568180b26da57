package http

import (
	"net/http"

	"freight-booking-backend/internal/security"
	"freight-booking-backend/internal/service"
	"freight-booking-backend/internal/storage"

	"github.com/gorilla/mux"
)

// Services bundles what the router needs to build its handlers.
type Services struct {
	Bookings service.BookingService
	Payments service.PaymentService
	Ledger   service.LedgerService
	Parties  service.PartyService
	Vehicles service.VehicleService
	Storage  storage.StorageInterface
}

type RouterConfig struct {
	UploadBaseURL  string
	MaxUploadBytes int64
	AllowedOrigins []string
}

// NewRouter wires every route. Route names are the keys of
// config.EndpointSecurityConfig.
func NewRouter(svc Services, tm security.TokenManager, cfg RouterConfig) http.Handler {
	router := mux.NewRouter()
	router.Use(RequestID, AccessLog, Recover)
	router.Use(NewAuthMiddleware(tm).Middleware)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, "not_found", "route not found", nil)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed", nil)
	})

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet, http.MethodHead).Name("health")

	RegisterUploadRoutes(router, cfg.UploadBaseURL, svc.Storage)

	api := router.PathPrefix("/api/v1").Subrouter()

	bookings := NewBookingHandler(svc.Bookings, cfg.MaxUploadBytes)
	api.HandleFunc("/bookings", bookings.List).Methods(http.MethodGet).Name("bookings.list")
	api.HandleFunc("/bookings", bookings.Create).Methods(http.MethodPost).Name("bookings.create")
	api.HandleFunc("/bookings/migrate-structure", bookings.MigrateStructure).Methods(http.MethodPost).Name("bookings.migrateStructure")
	api.HandleFunc("/bookings/{id:[0-9]+}", bookings.Get).Methods(http.MethodGet).Name("bookings.get")
	api.HandleFunc("/bookings/{id:[0-9]+}", bookings.Update).Methods(http.MethodPut).Name("bookings.update")
	api.HandleFunc("/bookings/{id:[0-9]+}", bookings.Delete).Methods(http.MethodDelete).Name("bookings.delete")
	api.HandleFunc("/bookings/{id:[0-9]+}/delivery", bookings.UpdateDelivery).Methods(http.MethodPut).Name("bookings.delivery")

	payments := NewPaymentHandler(svc.Payments)
	api.HandleFunc("/bookings/{id:[0-9]+}/payments/party", payments.RecordParty).Methods(http.MethodPost).Name("payments.party")
	api.HandleFunc("/bookings/{id:[0-9]+}/payments/vehicle", payments.RecordVehicle).Methods(http.MethodPost).Name("payments.vehicle")

	ledger := NewLedgerHandler(svc.Ledger)
	api.HandleFunc("/bookings/{id:[0-9]+}/ledger", ledger.Booking).Methods(http.MethodGet).Name("ledger.booking")
	api.HandleFunc("/ledger", ledger.Report).Methods(http.MethodGet).Name("ledger.report")

	parties := NewPartyHandler(svc.Parties)
	api.HandleFunc("/parties", parties.List).Methods(http.MethodGet).Name("parties.list")
	api.HandleFunc("/parties", parties.Create).Methods(http.MethodPost).Name("parties.create")
	api.HandleFunc("/parties/{id:[0-9]+}", parties.Get).Methods(http.MethodGet).Name("parties.get")
	api.HandleFunc("/parties/{id:[0-9]+}", parties.Update).Methods(http.MethodPut).Name("parties.update")
	api.HandleFunc("/parties/{id:[0-9]+}", parties.Delete).Methods(http.MethodDelete).Name("parties.delete")

	vehicles := NewVehicleHandler(svc.Vehicles)
	api.HandleFunc("/vehicles", vehicles.List).Methods(http.MethodGet).Name("vehicles.list")
	api.HandleFunc("/vehicles", vehicles.Create).Methods(http.MethodPost).Name("vehicles.create")
	api.HandleFunc("/vehicles/{id:[0-9]+}", vehicles.Get).Methods(http.MethodGet).Name("vehicles.get")
	api.HandleFunc("/vehicles/{id:[0-9]+}", vehicles.Update).Methods(http.MethodPut).Name("vehicles.update")
	api.HandleFunc("/vehicles/{id:[0-9]+}", vehicles.Delete).Methods(http.MethodDelete).Name("vehicles.delete")

	// preflight requests never match a route, so CORS wraps the router
	return CORS(cfg.AllowedOrigins)(router)
}
