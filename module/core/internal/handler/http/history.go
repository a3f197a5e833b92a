package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/domain"
)

type historyService interface {
	Route(ctx context.Context, query *domain.HistoryQuery) ([]domain.TrackPoint, error)
	Summary(ctx context.Context, query *domain.HistoryQuery) (*domain.HistorySummary, error)
}

type HistoryHandler struct {
	historySvc historyService
}

func NewHistoryHandler(historySvc historyService) *HistoryHandler {
	return &HistoryHandler{historySvc: historySvc}
}

func (h *HistoryHandler) Register(r *gin.RouterGroup) {
	r.GET("/history/:vehicleId", h.Route)
	r.GET("/history/:vehicleId/summary", h.Summary)
}

func (h *HistoryHandler) Route(c *gin.Context) {
	query, ok := historyQuery(c)
	if !ok {
		return
	}

	points, err := h.historySvc.Route(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vehicle history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vehicleId": query.VehicleID,
		"startDate": query.From,
		"endDate":   query.To,
		"count":     len(points),
		"locations": points,
	})
}

func (h *HistoryHandler) Summary(c *gin.Context) {
	query, ok := historyQuery(c)
	if !ok {
		return
	}

	summary, err := h.historySvc.Summary(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch history summary"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// historyQuery resolves the period: explicit start/end unix seconds, or a
// days lookback (default 1) starting at midnight.
func historyQuery(c *gin.Context) (*domain.HistoryQuery, bool) {
	query := &domain.HistoryQuery{VehicleID: c.Param("vehicleId")}

	startParam, endParam := c.Query("start"), c.Query("end")
	if startParam != "" && endParam != "" {
		start, err := strconv.ParseInt(startParam, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start parameter"})
			return nil, false
		}
		end, err := strconv.ParseInt(endParam, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end parameter"})
			return nil, false
		}
		query.From = time.Unix(start, 0)
		query.To = time.Unix(end, 0)
		return query, true
	}

	days := 1
	if v := c.Query("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days parameter"})
			return nil, false
		}
		days = parsed
	}

	now := time.Now()
	start := now.AddDate(0, 0, -days)
	query.From = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	query.To = now
	return query, true
}
