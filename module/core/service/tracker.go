package service

import (
	"sync"

	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/domain"
	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/geo"
)

// Evaluation is the outcome of one tracker pass: the geofence IDs the
// vehicle currently occupies plus the alert-eligible transitions since the
// previous pass.
type Evaluation struct {
	Current []string
	Entries []domain.Geofence
	Exits   []domain.Geofence
}

// GeofenceStateTracker turns instantaneous containment into entry/exit
// transitions. It owns the per-vehicle occupancy sets; nothing else
// mutates them.
type GeofenceStateTracker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
	state map[string]map[string]struct{}
}

func NewGeofenceStateTracker() *GeofenceStateTracker {
	return &GeofenceStateTracker{
		locks: make(map[string]*sync.Mutex),
		state: make(map[string]map[string]struct{}),
	}
}

// Evaluate computes containment of location against the active geofences
// and records the new occupancy set for the vehicle.
//
// The read-previous/write-current sequence is a critical section per
// vehicle: two concurrent readings for the same vehicle would otherwise
// lose or duplicate a transition. Readings for different vehicles only
// contend on the short map accesses, never across a full evaluation.
//
// Membership tracking is independent of the alert flags: a geofence with
// both flags off still lands in Current so that flipping a flag later
// cannot fabricate an entry.
func (t *GeofenceStateTracker) Evaluate(vehicleID string, location domain.GeoPoint, activeGeofences []domain.Geofence) Evaluation {
	lock := t.vehicleLock(vehicleID)
	lock.Lock()
	defer lock.Unlock()

	t.mu.Lock()
	previous := t.state[vehicleID]
	t.mu.Unlock()

	current := make(map[string]struct{}, len(activeGeofences))
	var eval Evaluation

	for _, g := range activeGeofences {
		if !geo.PointInGeofence(location, &g) {
			continue
		}
		current[g.ID] = struct{}{}
		eval.Current = append(eval.Current, g.ID)

		if _, wasIn := previous[g.ID]; !wasIn && g.AlertOnEntry {
			eval.Entries = append(eval.Entries, g)
		}
	}

	for _, g := range activeGeofences {
		if _, wasIn := previous[g.ID]; !wasIn {
			continue
		}
		if _, stillIn := current[g.ID]; !stillIn && g.AlertOnExit {
			eval.Exits = append(eval.Exits, g)
		}
	}

	t.mu.Lock()
	t.state[vehicleID] = current
	t.mu.Unlock()

	return eval
}

func (t *GeofenceStateTracker) vehicleLock(vehicleID string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()

	lock, ok := t.locks[vehicleID]
	if !ok {
		lock = &sync.Mutex{}
		t.locks[vehicleID] = lock
	}
	return lock
}
