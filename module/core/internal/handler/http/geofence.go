package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/domain"
)

type geofenceService interface {
	Create(ctx context.Context, g *domain.Geofence) error
	GetByID(ctx context.Context, id string) (*domain.Geofence, error)
	List(ctx context.Context, active *bool) ([]domain.Geofence, error)
	Update(ctx context.Context, g *domain.Geofence) error
	Delete(ctx context.Context, id string) (*domain.Geofence, error)
	Toggle(ctx context.Context, id string) (*domain.Geofence, error)
}

// geofenceRequest keeps the alert/active flags as pointers so an omitted
// flag defaults to true, matching the catalog's creation defaults.
type geofenceRequest struct {
	Name         string            `json:"name"`
	Kind         string            `json:"type"`
	Center       *locationPayload  `json:"center"`
	Radius       float64           `json:"radius"`
	Vertices     []domain.GeoPoint `json:"coordinates"`
	Color        string            `json:"color"`
	AlertOnEntry *bool             `json:"alertOnEntry"`
	AlertOnExit  *bool             `json:"alertOnExit"`
	Active       *bool             `json:"active"`
	Description  string            `json:"description"`
}

func (req *geofenceRequest) toDomain() *domain.Geofence {
	g := &domain.Geofence{
		Name:         req.Name,
		Kind:         domain.GeofenceKind(req.Kind),
		Radius:       req.Radius,
		Vertices:     req.Vertices,
		Color:        req.Color,
		AlertOnEntry: req.AlertOnEntry == nil || *req.AlertOnEntry,
		AlertOnExit:  req.AlertOnExit == nil || *req.AlertOnExit,
		Active:       req.Active == nil || *req.Active,
		Description:  req.Description,
	}
	if req.Center != nil && req.Center.Lat != nil && req.Center.Lng != nil {
		g.Center = &domain.GeoPoint{Lat: *req.Center.Lat, Lng: *req.Center.Lng}
	}
	return g
}

type GeofenceHandler struct {
	geofenceSvc geofenceService
}

func NewGeofenceHandler(geofenceSvc geofenceService) *GeofenceHandler {
	return &GeofenceHandler{geofenceSvc: geofenceSvc}
}

func (h *GeofenceHandler) Register(r *gin.RouterGroup) {
	r.POST("/geofences", h.Create)
	r.GET("/geofences", h.List)
	r.GET("/geofences/:id", h.GetByID)
	r.PUT("/geofences/:id", h.Update)
	r.DELETE("/geofences/:id", h.Delete)
	r.PATCH("/geofences/:id/toggle", h.Toggle)
}

func (h *GeofenceHandler) Create(c *gin.Context) {
	var req geofenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	g := req.toDomain()
	if err := h.geofenceSvc.Create(c.Request.Context(), g); err != nil {
		if errors.Is(err, domain.ErrInvalidGeofence) {
			c.JSON(http.StatusBadRequest, gin.H{"error": geofenceValidationMessage(g)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create geofence"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Geofence created successfully", "geofence": g})
}

func (h *GeofenceHandler) List(c *gin.Context) {
	var active *bool
	if v := c.Query("active"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid active parameter"})
			return
		}
		active = &parsed
	}

	geofences, err := h.geofenceSvc.List(c.Request.Context(), active)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch geofences"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(geofences), "geofences": geofences})
}

func (h *GeofenceHandler) GetByID(c *gin.Context) {
	g, err := h.geofenceSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Geofence not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch geofence"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"geofence": g})
}

func (h *GeofenceHandler) Update(c *gin.Context) {
	var req geofenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	g := req.toDomain()
	g.ID = c.Param("id")
	if err := h.geofenceSvc.Update(c.Request.Context(), g); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidGeofence):
			c.JSON(http.StatusBadRequest, gin.H{"error": geofenceValidationMessage(g)})
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Geofence not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update geofence"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Geofence updated successfully", "geofence": g})
}

func (h *GeofenceHandler) Delete(c *gin.Context) {
	g, err := h.geofenceSvc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Geofence not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete geofence"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Geofence deleted successfully", "geofence": g})
}

func (h *GeofenceHandler) Toggle(c *gin.Context) {
	g, err := h.geofenceSvc.Toggle(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Geofence not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle geofence"})
		return
	}

	message := "Geofence deactivated"
	if g.Active {
		message = "Geofence activated"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "geofence": g})
}

func geofenceValidationMessage(g *domain.Geofence) string {
	if g.Kind == domain.GeofencePolygon {
		return "Polygon geofences require at least 3 coordinates"
	}
	return "Circle geofences require center and radius"
}
