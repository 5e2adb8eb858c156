package presenter

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/sohelranaweb/hotelier-server/internal/core"
)

// ErrorResponse is the error envelope every failing request gets. The
// message field carries a short, fixed description; the correlation ID lets
// clients reference the server-side log line.
type ErrorResponse struct {
	Message       string `json:"message"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

func JSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to write json response")
	}
}

func Error(w http.ResponseWriter, r *http.Request, msg string, status int) {
	correlationID, _ := r.Context().Value("correlation_id").(string)
	resp := ErrorResponse{
		Message:       msg,
		CorrelationID: correlationID,
	}
	JSON(w, r, resp, status)
}

// Err maps a typed error to its HTTP status. Store-level failures that carry
// no status default to 500 so they are never silently swallowed.
func Err(w http.ResponseWriter, r *http.Request, err error, short string) {
	status := http.StatusInternalServerError
	var httpError *core.HTTPError
	if errors.As(err, &httpError) {
		status = httpError.StatusCode
	} else if errors.Is(err, core.ErrNotFound) {
		status = http.StatusNotFound
	}
	Error(w, r, short+": "+err.Error(), status)
}
