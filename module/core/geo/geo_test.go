package geo

import (
	"math"
	"testing"

	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/domain"
)

func TestDistance_SamePoint(t *testing.T) {
	p := domain.GeoPoint{Lat: -6.2088, Lng: 106.8456}
	if d := Distance(p, p); d != 0 {
		t.Errorf("expected 0, got %f", d)
	}
}

func TestDistance_KnownValue(t *testing.T) {
	// ~1067m due north along a meridian in Delhi.
	a := domain.GeoPoint{Lat: 28.6139, Lng: 77.2090}
	b := domain.GeoPoint{Lat: 28.6235, Lng: 77.2090}

	d := Distance(a, b)
	if math.Abs(d-1067) > 10 {
		t.Errorf("expected ~1067m, got %f", d)
	}
}

func TestDistance_Symmetric(t *testing.T) {
	a := domain.GeoPoint{Lat: -6.2088, Lng: 106.8456}
	b := domain.GeoPoint{Lat: -7.0, Lng: 107.0}

	if d1, d2 := Distance(a, b), Distance(b, a); math.Abs(d1-d2) > 1e-9 {
		t.Errorf("distance not symmetric: %f vs %f", d1, d2)
	}
}

func TestPointInCircle_BoundaryInclusive(t *testing.T) {
	center := domain.GeoPoint{Lat: 0, Lng: 0}
	p := domain.GeoPoint{Lat: 0, Lng: 0.001}
	radius := Distance(p, center)

	if !PointInCircle(p, center, radius) {
		t.Error("point exactly on the boundary should be inside")
	}
	if PointInCircle(p, center, radius-1) {
		t.Error("point past the boundary should be outside")
	}
}

func TestPointInPolygon_TooFewVertices(t *testing.T) {
	p := domain.GeoPoint{Lat: 0, Lng: 0}
	vertices := []domain.GeoPoint{{Lat: -1, Lng: -1}, {Lat: 1, Lng: 1}}

	if PointInPolygon(p, vertices) {
		t.Error("two vertices can never contain a point")
	}
	if PointInPolygon(p, nil) {
		t.Error("empty vertex list can never contain a point")
	}
}

func TestPointInPolygon_Square(t *testing.T) {
	square := []domain.GeoPoint{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 10},
		{Lat: 10, Lng: 10},
		{Lat: 10, Lng: 0},
	}

	if !PointInPolygon(domain.GeoPoint{Lat: 5, Lng: 5}, square) {
		t.Error("center of square should be inside")
	}
	if PointInPolygon(domain.GeoPoint{Lat: 15, Lng: 5}, square) {
		t.Error("point above square should be outside")
	}
	if PointInPolygon(domain.GeoPoint{Lat: 5, Lng: -5}, square) {
		t.Error("point left of square should be outside")
	}
}

func TestPointInGeofence_Inactive(t *testing.T) {
	g := &domain.Geofence{
		ID:     "gf-1",
		Kind:   domain.GeofenceCircle,
		Center: &domain.GeoPoint{Lat: 0, Lng: 0},
		Radius: 1000,
		Active: false,
	}

	if PointInGeofence(domain.GeoPoint{Lat: 0, Lng: 0}, g) {
		t.Error("inactive geofence should contain nothing")
	}
}

func TestPointInGeofence_CircleMissingCenter(t *testing.T) {
	g := &domain.Geofence{
		ID:     "gf-1",
		Kind:   domain.GeofenceCircle,
		Radius: 1000,
		Active: true,
	}

	if PointInGeofence(domain.GeoPoint{Lat: 0, Lng: 0}, g) {
		t.Error("circle without center should contain nothing")
	}
}

func TestPointInGeofence_Polygon(t *testing.T) {
	g := &domain.Geofence{
		ID:   "gf-1",
		Kind: domain.GeofencePolygon,
		Vertices: []domain.GeoPoint{
			{Lat: -6.21, Lng: 106.84},
			{Lat: -6.21, Lng: 106.85},
			{Lat: -6.20, Lng: 106.85},
			{Lat: -6.20, Lng: 106.84},
		},
		Active: true,
	}

	if !PointInGeofence(domain.GeoPoint{Lat: -6.205, Lng: 106.845}, g) {
		t.Error("point inside polygon should be contained")
	}
	if PointInGeofence(domain.GeoPoint{Lat: -6.25, Lng: 106.845}, g) {
		t.Error("point outside polygon should not be contained")
	}
}

func TestPointInGeofence_UnknownKind(t *testing.T) {
	g := &domain.Geofence{ID: "gf-1", Kind: "ellipse", Active: true}

	if PointInGeofence(domain.GeoPoint{Lat: 0, Lng: 0}, g) {
		t.Error("unknown geofence kind should contain nothing")
	}
}
