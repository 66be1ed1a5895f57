package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/vango-dev/vdiff/internal/errors"
	"github.com/vango-dev/vdiff/pkg/reconcile"
)

// Sentinel errors for common session conditions.
var (
	// ErrSessionClosed is returned when writing to a closed session.
	ErrSessionClosed = stderrors.New("server: session closed")

	// ErrUnexpectedFrame is reported for frames a client must not send.
	ErrUnexpectedFrame = stderrors.New("server: unexpected frame type")
)

// errorBody is the JSON error response of the API endpoints.
type errorBody struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// statusFor maps an error to an HTTP status. Malformed input is a client
// error; operations that cannot be applied are unprocessable.
func statusFor(err error) int {
	switch {
	case errors.HasCode(err, "E004"), errors.HasCode(err, "E005"):
		return http.StatusBadRequest
	case stderrors.Is(err, reconcile.ErrPathNotFound),
		stderrors.Is(err, reconcile.ErrNotApplicable),
		errors.HasCode(err, "E003"):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Debug("response not written", "status", status, "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorBody{Code: errors.CodeOf(err), Message: err.Error()})
}
