package metrics

import (
	"fmt"
	"net/http"
	"sync/atomic"
)

var (
	ReadingsIngested     atomic.Int64
	EventDrops           atomic.Int64
	GeofenceEvalFailures atomic.Int64
	AlertPersistFailures atomic.Int64
)

func HandleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	fmt.Fprintf(w, "fleet_readings_ingested_total %d\n", ReadingsIngested.Load())
	fmt.Fprintf(w, "fleet_event_drops_total %d\n", EventDrops.Load())
	fmt.Fprintf(w, "fleet_geofence_eval_failures_total %d\n", GeofenceEvalFailures.Load())
	fmt.Fprintf(w, "fleet_alert_persist_failures_total %d\n", AlertPersistFailures.Load())
}
