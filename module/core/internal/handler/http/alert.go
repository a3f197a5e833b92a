package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/domain"
)

type alertService interface {
	Create(ctx context.Context, a *domain.AlertRecord) error
	List(ctx context.Context) ([]domain.AlertRecord, error)
	Acknowledge(ctx context.Context, id string) (*domain.AlertRecord, error)
}

type AlertHandler struct {
	alertSvc alertService
}

func NewAlertHandler(alertSvc alertService) *AlertHandler {
	return &AlertHandler{alertSvc: alertSvc}
}

func (h *AlertHandler) Register(r *gin.RouterGroup) {
	r.POST("/alerts", h.Create)
	r.GET("/alerts", h.List)
	r.PATCH("/alerts/:id/acknowledge", h.Acknowledge)
}

func (h *AlertHandler) Create(c *gin.Context) {
	var a domain.AlertRecord
	if err := c.ShouldBindJSON(&a); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.alertSvc.Create(c.Request.Context(), &a); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create alert"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "ok", "data": a})
}

func (h *AlertHandler) List(c *gin.Context) {
	alerts, err := h.alertSvc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch alerts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": alerts})
}

func (h *AlertHandler) Acknowledge(c *gin.Context) {
	alert, err := h.alertSvc.Acknowledge(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to acknowledge alert"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": alert})
}
