package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/domain"
)

type vehicleService interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
	List(ctx context.Context) ([]domain.Vehicle, error)
	Update(ctx context.Context, v *domain.Vehicle) error
	Delete(ctx context.Context, id string) error
}

type VehicleHandler struct {
	vehicleSvc vehicleService
}

func NewVehicleHandler(vehicleSvc vehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleSvc: vehicleSvc}
}

func (h *VehicleHandler) Register(r *gin.RouterGroup) {
	r.GET("/vehicles", h.List)
	r.GET("/vehicles/:id", h.GetByID)
	r.POST("/vehicles", h.Create)
	r.PUT("/vehicles/:id", h.Update)
	r.DELETE("/vehicles/:id", h.Delete)
}

func (h *VehicleHandler) List(c *gin.Context) {
	vehicles, err := h.vehicleSvc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch vehicles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": vehicles})
}

func (h *VehicleHandler) GetByID(c *gin.Context) {
	v, err := h.vehicleSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch vehicle"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": v})
}

func (h *VehicleHandler) Create(c *gin.Context) {
	var v domain.Vehicle
	if err := c.ShouldBindJSON(&v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.vehicleSvc.Create(c.Request.Context(), &v); err != nil {
		if errors.Is(err, domain.ErrVehicleIDRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create vehicle"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "ok", "data": v})
}

func (h *VehicleHandler) Update(c *gin.Context) {
	var v domain.Vehicle
	if err := c.ShouldBindJSON(&v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	v.ID = c.Param("id")

	if err := h.vehicleSvc.Update(c.Request.Context(), &v); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update vehicle"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": v})
}

func (h *VehicleHandler) Delete(c *gin.Context) {
	if err := h.vehicleSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete vehicle"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": gin.H{"message": "Deleted"}})
}
