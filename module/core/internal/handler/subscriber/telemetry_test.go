package subscriber

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/domain"
)

type mockIngestSvc struct {
	ingestFn func(ctx context.Context, reading *domain.TelemetryReading) (*domain.IngestResult, error)
}

func (m *mockIngestSvc) Ingest(ctx context.Context, reading *domain.TelemetryReading) (*domain.IngestResult, error) {
	return m.ingestFn(ctx, reading)
}

type fakeMQTTMessage struct {
	payload []byte
}

func (f *fakeMQTTMessage) Duplicate() bool   { return false }
func (f *fakeMQTTMessage) Qos() byte         { return 0 }
func (f *fakeMQTTMessage) Retained() bool    { return false }
func (f *fakeMQTTMessage) Topic() string     { return "/fleet/vehicle/B1234XYZ/telemetry" }
func (f *fakeMQTTMessage) MessageID() uint16 { return 0 }
func (f *fakeMQTTMessage) Payload() []byte   { return f.payload }
func (f *fakeMQTTMessage) Ack()              {}

func lat(v float64) *float64 { return &v }

func TestHandleMessage_Success(t *testing.T) {
	var got *domain.TelemetryReading
	svc := &mockIngestSvc{
		ingestFn: func(_ context.Context, reading *domain.TelemetryReading) (*domain.IngestResult, error) {
			got = reading
			return &domain.IngestResult{Reading: reading}, nil
		},
	}

	sub := &TelemetrySubscriber{ingestSvc: svc}

	msg := telemetryMessage{
		VehicleID: "B1234XYZ",
		Latitude:  lat(-6.2088),
		Longitude: lat(106.8456),
		Speed:     lat(95),
		Timestamp: 1715003456,
	}
	payload, _ := json.Marshal(msg)
	sub.handleMessage(nil, &fakeMQTTMessage{payload: payload})

	if got == nil {
		t.Fatal("expected Ingest to be called")
	}
	if got.VehicleID != "B1234XYZ" {
		t.Errorf("expected B1234XYZ, got %s", got.VehicleID)
	}
	if got.Location == nil || got.Location.Lat != -6.2088 {
		t.Errorf("unexpected location: %+v", got.Location)
	}
	if got.Speed == nil || *got.Speed != 95 {
		t.Errorf("unexpected speed: %v", got.Speed)
	}
	if !got.Timestamp.Equal(time.Unix(1715003456, 0)) {
		t.Errorf("unexpected timestamp: %v", got.Timestamp)
	}
}

func TestHandleMessage_NoCoordinates(t *testing.T) {
	var got *domain.TelemetryReading
	svc := &mockIngestSvc{
		ingestFn: func(_ context.Context, reading *domain.TelemetryReading) (*domain.IngestResult, error) {
			got = reading
			return &domain.IngestResult{Reading: reading}, nil
		},
	}

	sub := &TelemetrySubscriber{ingestSvc: svc}

	payload, _ := json.Marshal(telemetryMessage{
		VehicleID: "B1234XYZ",
		Fuel:      lat(10),
		Timestamp: 1715003456,
	})
	sub.handleMessage(nil, &fakeMQTTMessage{payload: payload})

	if got == nil {
		t.Fatal("expected Ingest to be called")
	}
	if got.Location != nil {
		t.Errorf("expected nil location, got %+v", got.Location)
	}
	if got.Fuel == nil || *got.Fuel != 10 {
		t.Errorf("unexpected fuel: %v", got.Fuel)
	}
}

func TestHandleMessage_InvalidJSON(t *testing.T) {
	svc := &mockIngestSvc{
		ingestFn: func(_ context.Context, _ *domain.TelemetryReading) (*domain.IngestResult, error) {
			t.Fatal("Ingest should not be called")
			return nil, nil
		},
	}

	sub := &TelemetrySubscriber{ingestSvc: svc}
	sub.handleMessage(nil, &fakeMQTTMessage{payload: []byte(`{not json`)})
}

func TestHandleMessage_ValidationFailures(t *testing.T) {
	cases := []struct {
		name string
		msg  telemetryMessage
	}{
		{"missing vehicle id", telemetryMessage{Timestamp: 1715003456}},
		{"latitude out of range", telemetryMessage{VehicleID: "B1234XYZ", Latitude: lat(91), Longitude: lat(0), Timestamp: 1715003456}},
		{"longitude out of range", telemetryMessage{VehicleID: "B1234XYZ", Latitude: lat(0), Longitude: lat(181), Timestamp: 1715003456}},
		{"zero timestamp", telemetryMessage{VehicleID: "B1234XYZ"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockIngestSvc{
				ingestFn: func(_ context.Context, _ *domain.TelemetryReading) (*domain.IngestResult, error) {
					t.Fatal("Ingest should not be called")
					return nil, nil
				},
			}
			sub := &TelemetrySubscriber{ingestSvc: svc}

			payload, _ := json.Marshal(tc.msg)
			sub.handleMessage(nil, &fakeMQTTMessage{payload: payload})
		})
	}
}

func TestHandleMessage_IngestErrorLogged(t *testing.T) {
	svc := &mockIngestSvc{
		ingestFn: func(_ context.Context, _ *domain.TelemetryReading) (*domain.IngestResult, error) {
			return nil, errors.New("postgres down")
		},
	}

	sub := &TelemetrySubscriber{ingestSvc: svc}
	payload, _ := json.Marshal(telemetryMessage{VehicleID: "B1234XYZ", Timestamp: 1715003456})
	// Must not panic; the error is logged and the message dropped.
	sub.handleMessage(nil, &fakeMQTTMessage{payload: payload})
}
