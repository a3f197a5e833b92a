package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/domain"
)

type telemetryService interface {
	Ingest(ctx context.Context, reading *domain.TelemetryReading) (*domain.IngestResult, error)
	GetLatest(ctx context.Context) ([]domain.TelemetryReading, error)
	GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.TelemetryReading, error)
}

// locationPayload distinguishes an absent coordinate from zero; the
// reading only carries a location when both are present.
type locationPayload struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type telemetryRequest struct {
	VehicleID   string           `json:"vehicleId"`
	Location    *locationPayload `json:"location"`
	Speed       *float64         `json:"speed"`
	Temperature *float64         `json:"temperature"`
	Fuel        *float64         `json:"fuel"`
	Ignition    *bool            `json:"ignition"`
	Timestamp   *int64           `json:"timestamp"` // unix seconds
}

type TelemetryHandler struct {
	telemetrySvc telemetryService
}

func NewTelemetryHandler(telemetrySvc telemetryService) *TelemetryHandler {
	return &TelemetryHandler{telemetrySvc: telemetrySvc}
}

func (h *TelemetryHandler) Register(r *gin.RouterGroup) {
	r.POST("/telemetry", h.Ingest)
	r.GET("/telemetry", h.GetLatest)
	r.GET("/telemetry/history", h.GetHistory)
}

func (h *TelemetryHandler) Ingest(c *gin.Context) {
	var req telemetryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	reading := &domain.TelemetryReading{
		VehicleID:   req.VehicleID,
		Speed:       req.Speed,
		Temperature: req.Temperature,
		Fuel:        req.Fuel,
		Ignition:    req.Ignition,
	}
	if req.Location != nil && req.Location.Lat != nil && req.Location.Lng != nil {
		reading.Location = &domain.GeoPoint{Lat: *req.Location.Lat, Lng: *req.Location.Lng}
	}
	if req.Timestamp != nil {
		reading.Timestamp = time.Unix(*req.Timestamp, 0)
	}

	result, err := h.telemetrySvc.Ingest(c.Request.Context(), reading)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrVehicleIDRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrVehicleNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store telemetry"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "ok", "data": result})
}

func (h *TelemetryHandler) GetLatest(c *gin.Context) {
	latest, err := h.telemetrySvc.GetLatest(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch telemetry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": latest})
}

func (h *TelemetryHandler) GetHistory(c *gin.Context) {
	vehicleID := c.Query("vehicleId")
	if vehicleID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "vehicleId is required"})
		return
	}

	query := &domain.HistoryQuery{VehicleID: vehicleID, To: time.Now()}
	if v := c.Query("from"); v != "" {
		from, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from parameter"})
			return
		}
		query.From = time.Unix(from, 0)
	}
	if v := c.Query("to"); v != "" {
		to, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to parameter"})
			return
		}
		query.To = time.Unix(to, 0)
	}

	readings, err := h.telemetrySvc.GetHistory(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": readings})
}
