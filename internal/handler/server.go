// Package handler implements the HTTP handlers for the hotel reservations API.
// Handlers decode and validate requests, call the service layer, and map
// domain errors to HTTP status codes. All handlers are methods on Server;
// Routes mounts them on a chi router.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/hotel-reservations/internal/domain"
	"github.com/pkordes/hotel-reservations/openapi"
)

// ReservationServicer defines the business operations the reservation
// handlers depend on. Defining the interface here (in the consumer package)
// lets handler tests inject a mock without touching the database.
type ReservationServicer interface {
	List(ctx context.Context) ([]domain.ReservationView, error)
	Get(ctx context.Context, id uuid.UUID) (domain.ReservationView, error)
	Create(ctx context.Context, in domain.ReservationInput) (domain.ReservationView, error)
	Update(ctx context.Context, id uuid.UUID, in domain.ReservationInput) (domain.ReservationView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Pinger reports whether the database is reachable. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds the dependencies shared by every handler.
type Server struct {
	reservations ReservationServicer
	db           Pinger
	validate     *requestValidator
	log          *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// db may be nil, in which case /healthz reports ok without a ping.
func NewServer(reservations ReservationServicer, db Pinger, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		reservations: reservations,
		db:           db,
		validate:     newRequestValidator(),
		log:          log,
	}
}

// Routes returns a chi router with every API endpoint registered.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/reservations", func(r chi.Router) {
		r.Get("/", s.ListReservations)
		r.Post("/", s.CreateReservation)
		r.Get("/{id}", s.GetReservation)
		r.Put("/{id}", s.UpdateReservation)
		r.Delete("/{id}", s.DeleteReservation)
	})
	return r
}

// GetOpenAPI handles GET /openapi.yaml.
func (s *Server) GetOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(openapi.Document)
}
