package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/hotel-reservations/internal/domain"
)

// Error codes carried in ErrorDetail.Code.
const (
	codeNotFound      = "not_found"
	codeInvalidRange  = "invalid_range"
	codeRoomOccupied  = "room_occupied"
	codeValidation    = "validation_error"
	codeInternalError = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes what went wrong. Fields is set only for request
// validation failures.
type ErrorDetail struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// writeServiceError maps an error returned by the service layer to a status
// code and body. Unrecognised errors are logged and reported as a bare 500 so
// internal details never leak to clients.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var nf *domain.NotFoundError
	switch {
	case errors.As(err, &nf):
		writeError(w, http.StatusNotFound, codeNotFound, nf.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, domain.ErrNotFound.Error())
	case errors.Is(err, domain.ErrInvalidRange):
		writeError(w, http.StatusBadRequest, codeInvalidRange, unwrapMessage(err, domain.ErrInvalidRange))
	case errors.Is(err, domain.ErrRoomOccupied):
		writeError(w, http.StatusConflict, codeRoomOccupied, unwrapMessage(err, domain.ErrRoomOccupied))
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, codeValidation, unwrapMessage(err, domain.ErrValidation))
	default:
		s.log.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal server error")
	}
}

// unwrapMessage extracts the human-readable part that follows sentinel in a
// wrapped error.
// e.g. "service.ReservationService.Create: validation error: total_price must not be negative"
// → "total_price must not be negative"
func unwrapMessage(err, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, prefix); i >= 0 && len(msg) > i+len(prefix) {
		return msg[i+len(prefix):]
	}
	return sentinel.Error()
}
