package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/couchcryptid/pine-weight-etl/internal/domain"
	"github.com/couchcryptid/pine-weight-etl/internal/observability"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

const maxRequestBody = 1 << 16

// EstimateAPI serves synchronous green-weight estimates.
type EstimateAPI struct {
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewEstimateAPI creates the /v1 estimate handlers.
func NewEstimateAPI(metrics *observability.Metrics, logger *slog.Logger) *EstimateAPI {
	return &EstimateAPI{metrics: metrics, logger: logger}
}

func (a *EstimateAPI) register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/estimates", a.handleEstimate)
	mux.HandleFunc("GET /v1/regions", a.handleRegions)
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func (a *EstimateAPI) handleEstimate(w http.ResponseWriter, r *http.Request) {
	const route = "/v1/estimates"

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		a.fail(w, route, status, err)
		return
	}

	rec, err := domain.ParseRawEvent(domain.RawEvent{Value: body})
	if err != nil {
		a.fail(w, route, http.StatusBadRequest, err)
		return
	}

	est, err := domain.EstimateRecord(rec)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrNumericDomain) {
			status = http.StatusUnprocessableEntity
		}
		a.fail(w, route, status, err)
		return
	}

	a.metrics.Estimates.WithLabelValues(string(est.Species), string(est.Method)).Inc()
	a.observe(route, http.StatusOK)
	sharedobs.WriteJSON(w, http.StatusOK, est)
}

func (a *EstimateAPI) handleRegions(w http.ResponseWriter, _ *http.Request) {
	byFamily := domain.RegionNamesByFamily()
	out := make(map[string][]string, len(byFamily))
	for fam, names := range byFamily {
		out[fam.String()] = names
	}
	a.observe("/v1/regions", http.StatusOK)
	sharedobs.WriteJSON(w, http.StatusOK, out)
}

func (a *EstimateAPI) fail(w http.ResponseWriter, route string, status int, err error) {
	kind := domain.ErrorKind(err)
	a.metrics.EstimateErrors.WithLabelValues(kind).Inc()
	a.observe(route, status)
	a.logger.Info("estimate request rejected", "route", route, "status", status, "kind", kind, "error", err)
	sharedobs.WriteJSON(w, status, errorResponse{Error: err.Error(), Kind: kind})
}

func (a *EstimateAPI) observe(route string, status int) {
	a.metrics.APIRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}
