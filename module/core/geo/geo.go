// Package geo holds the pure geometry used by geofence evaluation.
package geo

import (
	"math"

	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/domain"
)

const earthRadiusMeters = 6371000

// Distance returns the great-circle (Haversine) distance between two
// points in meters.
func Distance(a, b domain.GeoPoint) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// PointInCircle reports whether p lies within radius meters of center.
// The boundary counts as inside.
func PointInCircle(p, center domain.GeoPoint, radius float64) bool {
	return Distance(p, center) <= radius
}

// PointInPolygon applies the even-odd ray-casting rule treating (lng, lat)
// as planar coordinates. No spherical correction is applied; that matches
// the behavior subscribers already depend on and is acceptable for the
// small regions geofences describe. Fewer than three vertices is never a
// polygon.
func PointInPolygon(p domain.GeoPoint, vertices []domain.GeoPoint) bool {
	if len(vertices) < 3 {
		return false
	}

	inside := false
	for i, j := 0, len(vertices)-1; i < len(vertices); j, i = i, i+1 {
		xi, yi := vertices[i].Lng, vertices[i].Lat
		xj, yj := vertices[j].Lng, vertices[j].Lat

		if (yi > p.Lat) != (yj > p.Lat) &&
			p.Lng < (xj-xi)*(p.Lat-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// PointInGeofence dispatches on the geofence kind. Inactive or malformed
// geofences never contain anything.
func PointInGeofence(p domain.GeoPoint, g *domain.Geofence) bool {
	if !g.Active {
		return false
	}

	switch g.Kind {
	case domain.GeofenceCircle:
		if g.Center == nil {
			return false
		}
		return PointInCircle(p, *g.Center, g.Radius)
	case domain.GeofencePolygon:
		return PointInPolygon(p, g.Vertices)
	default:
		return false
	}
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
