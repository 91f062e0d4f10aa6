// Package httpapi is the C12 HTTP Boundary: a thin chi-routed adapter over
// the decision and scheduling engines (spec §4.12). It deserializes
// requests, calls into internal/decision and internal/scheduling, and
// serializes the typed results/errors.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/socialpulse/engine/internal/socialmodel"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, err error) {
	respondJSON(w, statusFor(err), ErrorResponse{Error: err.Error()})
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// ErrorResponse is the JSON body returned for every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusFor maps the §7 error taxonomy to an HTTP status code.
func statusFor(err error) int {
	var se *socialmodel.Error
	se, ok := err.(*socialmodel.Error)
	if !ok {
		return http.StatusInternalServerError
	}
	switch se.Kind {
	case socialmodel.KindValidation:
		return http.StatusBadRequest
	case socialmodel.KindConflict:
		return http.StatusConflict
	case socialmodel.KindCapacityExceeded:
		return http.StatusServiceUnavailable
	case socialmodel.KindTimeout:
		return http.StatusGatewayTimeout
	case socialmodel.KindNotFound:
		return http.StatusNotFound
	case socialmodel.KindState:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
