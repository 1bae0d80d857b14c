package render

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}

func Error(w http.ResponseWriter, r *http.Request, status int, err error) {
	logger := zerolog.Ctx(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Int("status", status).Msg("request failed")
	} else {
		logger.Debug().Err(err).Int("status", status).Msg("request rejected")
	}
	JSON(w, r, status, ErrorBody{Error: err.Error()})
}

// Decode reads a JSON body into v, rejecting unknown fields.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Join(ErrBadRequest, err)
	}
	return nil
}

var ErrBadRequest = errors.New("malformed request body")

// StatusMapping pairs a sentinel error with the status it maps to.
type StatusMapping struct {
	Err    error
	Status int
}

// StatusFor returns the status of the first mapping err matches, or 500.
func StatusFor(err error, mappings ...StatusMapping) int {
	if errors.Is(err, ErrBadRequest) {
		return http.StatusBadRequest
	}
	for _, m := range mappings {
		if errors.Is(err, m.Err) {
			return m.Status
		}
	}
	return http.StatusInternalServerError
}

// Wait reports whether the caller asked to block until an operation settles.
func Wait(r *http.Request) bool {
	return r.URL.Query().Get("wait") == "true"
}
