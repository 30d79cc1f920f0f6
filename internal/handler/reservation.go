package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/hotel-reservations/internal/domain"
)

// ReservationRequest is the body of POST /reservations and PUT /reservations/{id}.
// Pointers distinguish a missing field from its zero value.
type ReservationRequest struct {
	GuestID    *uuid.UUID          `json:"guest_id" validate:"required"`
	RoomID     *uuid.UUID          `json:"room_id" validate:"required"`
	CheckIn    *openapi_types.Date `json:"check_in" validate:"required"`
	CheckOut   *openapi_types.Date `json:"check_out" validate:"required"`
	TotalPrice *float64            `json:"total_price,omitempty" validate:"omitempty,gte=0,lte=99999999.99"`
	Status     *string             `json:"status,omitempty" validate:"omitempty,max=32"`
}

// Reservation is the JSON form of domain.ReservationView.
type Reservation struct {
	ID            uuid.UUID          `json:"id"`
	GuestID       uuid.UUID          `json:"guest_id"`
	GuestFullName string             `json:"guest_full_name"`
	RoomID        uuid.UUID          `json:"room_id"`
	RoomNumber    string             `json:"room_number"`
	CheckIn       openapi_types.Date `json:"check_in"`
	CheckOut      openapi_types.Date `json:"check_out"`
	TotalPrice    float64            `json:"total_price"`
	Status        string             `json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// ReservationList is the body of GET /reservations.
type ReservationList struct {
	Data []Reservation `json:"data"`
}

// ListReservations handles GET /reservations.
func (s *Server) ListReservations(w http.ResponseWriter, r *http.Request) {
	views, err := s.reservations.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	data := make([]Reservation, len(views))
	for i, v := range views {
		data[i] = viewToResponse(v)
	}
	writeJSON(w, http.StatusOK, ReservationList{Data: data})
}

// CreateReservation handles POST /reservations.
func (s *Server) CreateReservation(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodeReservation(w, r)
	if !ok {
		return
	}

	created, err := s.reservations.Create(r.Context(), in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, viewToResponse(created))
}

// GetReservation handles GET /reservations/{id}.
func (s *Server) GetReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	view, err := s.reservations.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewToResponse(view))
}

// UpdateReservation handles PUT /reservations/{id}.
func (s *Server) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	in, ok := s.decodeReservation(w, r)
	if !ok {
		return
	}

	updated, err := s.reservations.Update(r.Context(), id, in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewToResponse(updated))
}

// DeleteReservation handles DELETE /reservations/{id}.
func (s *Server) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.reservations.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- request helpers --------------------------------------------------------

// pathID binds the {id} path parameter. On failure it writes a 400 and
// returns false.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

// decodeReservation reads and validates a ReservationRequest body.
// Malformed JSON, unknown fields and trailing data are a 400, an oversized
// body a 413, and a body that parses but fails its field rules a 422. On failure the response is already written.
func (s *Server) decodeReservation(w http.ResponseWriter, r *http.Request) (domain.ReservationInput, bool) {
	var req ReservationRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, codeValidation, "request body too large")
		case errors.Is(err, io.EOF):
			writeError(w, http.StatusBadRequest, codeValidation, "request body is required")
		default:
			writeError(w, http.StatusBadRequest, codeValidation, "invalid request body: "+err.Error())
		}
		return domain.ReservationInput{}, false
	}
	if dec.More() {
		writeError(w, http.StatusBadRequest, codeValidation, "invalid request body: unexpected data after JSON object")
		return domain.ReservationInput{}, false
	}

	if err := s.validate.Struct(req); err != nil {
		var fields FieldErrors
		if errors.As(err, &fields) {
			writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: ErrorDetail{
				Code:    codeValidation,
				Message: fields.Error(),
				Fields:  fields,
			}})
			return domain.ReservationInput{}, false
		}
		s.writeServiceError(w, r, err)
		return domain.ReservationInput{}, false
	}

	return requestToInput(req), true
}

// --- mapping helpers --------------------------------------------------------

// requestToInput converts a validated request into a domain.ReservationInput.
// Optional fields left out of the request become zero values; the service
// applies the status default.
func requestToInput(req ReservationRequest) domain.ReservationInput {
	in := domain.ReservationInput{
		GuestID:  *req.GuestID,
		RoomID:   *req.RoomID,
		CheckIn:  req.CheckIn.Time,
		CheckOut: req.CheckOut.Time,
	}
	if req.TotalPrice != nil {
		in.TotalPrice = *req.TotalPrice
	}
	if req.Status != nil {
		in.Status = *req.Status
	}
	return in
}

// viewToResponse converts a domain.ReservationView into its JSON form.
func viewToResponse(v domain.ReservationView) Reservation {
	return Reservation{
		ID:            v.ID,
		GuestID:       v.GuestID,
		GuestFullName: v.GuestFullName,
		RoomID:        v.RoomID,
		RoomNumber:    v.RoomNumber,
		CheckIn:       openapi_types.Date{Time: v.CheckIn},
		CheckOut:      openapi_types.Date{Time: v.CheckOut},
		TotalPrice:    v.TotalPrice,
		Status:        v.Status,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}
