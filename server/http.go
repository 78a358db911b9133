package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-kit/log/level"

	dem "github.com/archlabjp/go-dem"
)

type elevationResponse struct {
	Elevation float64 `json:"elevation"`
	Dataset   string  `json:"dataset"`
	Zoom      int     `json:"zoom"`
	Partial   bool    `json:"partial,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ElevationHandler serves GET /elevation?lat=&lng=[&zoom=].
func (s *Server) ElevationHandler(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()

	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil || lat < -90 || lat > 90 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid lat"})

		return
	}
	lng, err := strconv.ParseFloat(q.Get("lng"), 64)
	if err != nil || lng < -180 || lng > 180 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid lng"})

		return
	}

	var result dem.Result
	if zoomStr := q.Get("zoom"); zoomStr != "" {
		zoom, err := strconv.Atoi(zoomStr)
		if err != nil || zoom < 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid zoom"})

			return
		}
		result, err = s.service.ElevationAtZoom(req.Context(), lat, lng, zoom)
		if err != nil {
			s.writeLookupError(w, lat, lng, err)

			return
		}
	} else {
		result, err = s.service.Elevation(req.Context(), lat, lng)
		if err != nil {
			s.writeLookupError(w, lat, lng, err)

			return
		}
	}

	writeJSON(w, http.StatusOK, elevationResponse{
		Elevation: result.Meters,
		Dataset:   result.Dataset,
		Zoom:      result.Zoom,
		Partial:   result.Partial(),
	})
}

func (s *Server) writeLookupError(w http.ResponseWriter, lat, lng float64, err error) {
	var unavailableErr *dem.TileUnavailableError
	switch {
	case errors.Is(err, dem.ErrNoCoverage):
		level.Debug(s.logger).Log(
			"msg", "no coverage",
			"lat", lat,
			"lng", lng,
		)

		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no coverage"})
	case errors.As(err, &unavailableErr):
		level.Error(s.logger).Log(
			"msg", "tile unavailable",
			"tile", unavailableErr.Key,
			"error", unavailableErr.Err,
		)

		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "tile unavailable"})
	default:
		level.Error(s.logger).Log("msg", "lookup failed", "error", err)

		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// HealthHandler reports liveness.
func (s *Server) HealthHandler(w http.ResponseWriter, req *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}
