package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/flighttime-data/internal/airports"
	"github.com/flighttime-data/internal/common/discord"
	"github.com/flighttime-data/internal/common/logger"
	"github.com/flighttime-data/internal/itinerary"
	"github.com/flighttime-data/internal/metrics"
	"github.com/flighttime-data/pkg/models"
)

const defaultSearchLimit = 25

type Handler struct {
	directory  *airports.Directory
	calculator *itinerary.Calculator
	alerts     *discord.Client
	logger     logger.Logger
}

func NewHandler(
	directory *airports.Directory,
	calculator *itinerary.Calculator,
	alerts *discord.Client,
	log logger.Logger,
) *Handler {
	return &Handler{
		directory:  directory,
		calculator: calculator,
		alerts:     alerts,
		logger:     log,
	}
}

// SearchAirports serves the directory listing used by clients to offer
// airport suggestions
func (h *Handler) SearchAirports(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	limit := defaultSearchLimit
	if ls := r.URL.Query().Get("limit"); ls != "" {
		if v, err := strconv.Atoi(ls); err == nil && v > 0 && v <= 200 {
			limit = v
		}
	}

	matches := h.directory.Search(query, limit)
	views := make([]models.AirportView, 0, len(matches))
	for _, a := range matches {
		views = append(views, models.AirportView{
			Label:   a.Label(),
			Name:    a.Name,
			City:    a.City,
			Country: a.Country,
			Code:    a.Code,
			Lat:     a.Lat,
			Lon:     a.Lon,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"airports": views,
		"total":    h.directory.Len(),
	})
}

// Calculate runs one itinerary calculation and replies with the
// totals, or maps the engine's failure taxonomy onto HTTP statuses
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	var req models.CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		metrics.ObserveCalculation("invalid", len(req.Legs), time.Since(start))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	legs := make(itinerary.Itinerary, 0, len(req.Legs))
	for _, l := range req.Legs {
		legs = append(legs, itinerary.Leg{
			DepAirport: l.DepartureAirport,
			ArrAirport: l.ArrivalAirport,
			DepDate:    l.DepartureDate.Time,
			ArrDate:    l.ArrivalDate.Time,
			DepTime:    itinerary.ClockTime{Hour: l.DepartureTime.Hour, Minute: l.DepartureTime.Minute},
			ArrTime:    itinerary.ClockTime{Hour: l.ArrivalTime.Hour, Minute: l.ArrivalTime.Minute},
		})
	}

	reporter := itinerary.ProgressFunc(func(value int) {
		h.logger.Debug("Calculation progress", "progress", value, "max", len(legs)*10)
	})

	select {
	case result := <-h.calculator.Calculate(ctx, legs, reporter):
		h.respond(w, result, legs, start)
	case <-ctx.Done():
		metrics.ObserveCalculation("cancelled", len(legs), time.Since(start))
	}
}

func (h *Handler) respond(w http.ResponseWriter, result itinerary.Result, legs itinerary.Itinerary, start time.Time) {
	if result.Err != nil {
		var resolveErr *itinerary.ResolveError
		var timeoutErr *itinerary.TimeoutError

		switch {
		case errors.As(result.Err, &resolveErr):
			metrics.ObserveCalculation("lookup_failure", len(legs), time.Since(start))
			h.alert("timezone lookup failed", len(legs), result.Err)
			http.Error(w, "network failure: "+result.Err.Error(), http.StatusBadGateway)
		case errors.As(result.Err, &timeoutErr):
			metrics.ObserveCalculation("timeout", len(legs), time.Since(start))
			h.alert("timezone lookup timed out", len(legs), result.Err)
			http.Error(w, result.Err.Error(), http.StatusGatewayTimeout)
		default:
			metrics.ObserveCalculation("invalid", len(legs), time.Since(start))
			http.Error(w, result.Err.Error(), http.StatusBadRequest)
		}
		return
	}

	outcome := "success"
	if result.Implausible {
		outcome = "implausible"
	}
	metrics.ObserveCalculation(outcome, len(legs), time.Since(start))

	writeJSON(w, http.StatusOK, models.CalculateResponse{
		FlightHours:        result.TotalFlightHours,
		LayoverHours:       result.TotalLayoverHours,
		TripHours:          result.TripHours(),
		FlightTime:         models.FormatHours(result.TotalFlightHours),
		LayoverTime:        models.FormatHours(result.TotalLayoverHours),
		TripTime:           models.FormatHours(result.TripHours()),
		Implausible:        result.Implausible,
		UnresolvedAirports: result.Unresolved,
	})
}

func (h *Handler) alert(reason string, legs int, err error) {
	if h.alerts == nil {
		return
	}
	if alertErr := h.alerts.SendCalculationAlert(reason, legs, err); alertErr != nil {
		h.logger.Warn("Failed to send alert", "error", alertErr)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
