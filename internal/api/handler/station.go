package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Shashankvwali/VoltGo/internal/api/models"
	"github.com/Shashankvwali/VoltGo/internal/api/response"
	"github.com/Shashankvwali/VoltGo/internal/station"
)

// StationHandler serves the read-only station catalog.
type StationHandler struct {
	catalog *station.Catalog
}

// NewStationHandler creates a new StationHandler.
func NewStationHandler(catalog *station.Catalog) *StationHandler {
	return &StationHandler{catalog: catalog}
}

// ListStations handles GET /v1/stations - the full catalog in order.
func (h *StationHandler) ListStations(w http.ResponseWriter, r *http.Request) {
	records := h.catalog.Records()

	items := make([]models.Station, len(records))
	for i, rec := range records {
		items[i] = toStation(rec)
	}

	response.JSON(w, r, http.StatusOK, models.StationList{
		Items: items,
		Total: len(items),
	})
}

// GetStation handles GET /v1/stations/{stationId} - one catalog record.
func (h *StationHandler) GetStation(w http.ResponseWriter, r *http.Request) {
	id, ok := stationIDParam(w, r)
	if !ok {
		return
	}

	rec, found := h.catalog.Get(id)
	if !found {
		response.NotFound(w, r, "station not found")
		return
	}

	response.JSON(w, r, http.StatusOK, toStation(rec))
}

// stationIDParam parses the stationId URL parameter, writing a 400 problem
// when it is not an integer.
func stationIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "stationId")
	id, err := strconv.Atoi(raw)
	if err != nil {
		response.BadRequest(w, r, "invalid station ID", []models.FieldError{
			{Field: "stationId", Message: "must be an integer"},
		})
		return 0, false
	}
	return id, true
}
