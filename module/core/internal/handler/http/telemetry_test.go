package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/domain"
)

type mockTelemetryService struct {
	ingestFn     func(ctx context.Context, reading *domain.TelemetryReading) (*domain.IngestResult, error)
	getLatestFn  func(ctx context.Context) ([]domain.TelemetryReading, error)
	getHistoryFn func(ctx context.Context, query *domain.HistoryQuery) ([]domain.TelemetryReading, error)
}

func (m *mockTelemetryService) Ingest(ctx context.Context, reading *domain.TelemetryReading) (*domain.IngestResult, error) {
	return m.ingestFn(ctx, reading)
}

func (m *mockTelemetryService) GetLatest(ctx context.Context) ([]domain.TelemetryReading, error) {
	return m.getLatestFn(ctx)
}

func (m *mockTelemetryService) GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.TelemetryReading, error) {
	return m.getHistoryFn(ctx, query)
}

func setupTelemetryRouter(svc telemetryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewTelemetryHandler(svc)
	h.Register(r.Group(""))
	return r
}

func TestIngestTelemetry_Success(t *testing.T) {
	var got *domain.TelemetryReading
	svc := &mockTelemetryService{
		ingestFn: func(_ context.Context, reading *domain.TelemetryReading) (*domain.IngestResult, error) {
			got = reading
			return &domain.IngestResult{Reading: reading}, nil
		},
	}

	body := `{"vehicleId":"B1234XYZ","location":{"lat":-6.2088,"lng":106.8456},"speed":95,"timestamp":1715003456}`
	r := setupTelemetryRouter(svc)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/telemetry", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
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

func TestIngestTelemetry_PartialLocationDropped(t *testing.T) {
	var got *domain.TelemetryReading
	svc := &mockTelemetryService{
		ingestFn: func(_ context.Context, reading *domain.TelemetryReading) (*domain.IngestResult, error) {
			got = reading
			return &domain.IngestResult{Reading: reading}, nil
		},
	}

	body := `{"vehicleId":"B1234XYZ","location":{"lat":-6.2088}}`
	r := setupTelemetryRouter(svc)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/telemetry", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if got.Location != nil {
		t.Errorf("location with missing lng should be dropped, got %+v", got.Location)
	}
}

func TestIngestTelemetry_MissingVehicleID(t *testing.T) {
	svc := &mockTelemetryService{
		ingestFn: func(_ context.Context, _ *domain.TelemetryReading) (*domain.IngestResult, error) {
			return nil, domain.ErrVehicleIDRequired
		},
	}

	r := setupTelemetryRouter(svc)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/telemetry", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestIngestTelemetry_UnknownVehicle(t *testing.T) {
	svc := &mockTelemetryService{
		ingestFn: func(_ context.Context, _ *domain.TelemetryReading) (*domain.IngestResult, error) {
			return nil, domain.ErrVehicleNotFound
		},
	}

	r := setupTelemetryRouter(svc)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/telemetry", bytes.NewBufferString(`{"vehicleId":"GHOST"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestIngestTelemetry_ResponseShape(t *testing.T) {
	svc := &mockTelemetryService{
		ingestFn: func(_ context.Context, reading *domain.TelemetryReading) (*domain.IngestResult, error) {
			return &domain.IngestResult{
				Reading: reading,
				Alerts: []domain.AlertRecord{
					{VehicleID: reading.VehicleID, Type: domain.AlertOverspeed, Level: domain.LevelHigh},
				},
			}, nil
		},
	}

	r := setupTelemetryRouter(svc)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/telemetry", bytes.NewBufferString(`{"vehicleId":"B1234XYZ","speed":95}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Telemetry struct {
				VehicleID string `json:"vehicleId"`
			} `json:"telemetry"`
			Alerts []struct {
				Type string `json:"type"`
			} `json:"alerts"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Data.Telemetry.VehicleID != "B1234XYZ" {
		t.Errorf("expected telemetry envelope, got %s", w.Body.String())
	}
	if len(resp.Data.Alerts) != 1 || resp.Data.Alerts[0].Type != "overspeed" {
		t.Errorf("expected overspeed alert in response, got %s", w.Body.String())
	}
}

func TestGetTelemetryHistory_RequiresVehicleID(t *testing.T) {
	svc := &mockTelemetryService{
		getHistoryFn: func(_ context.Context, _ *domain.HistoryQuery) ([]domain.TelemetryReading, error) {
			t.Fatal("GetHistory should not be called")
			return nil, nil
		},
	}

	r := setupTelemetryRouter(svc)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/telemetry/history", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetTelemetryHistory_ParsesRange(t *testing.T) {
	var got *domain.HistoryQuery
	svc := &mockTelemetryService{
		getHistoryFn: func(_ context.Context, query *domain.HistoryQuery) ([]domain.TelemetryReading, error) {
			got = query
			return nil, nil
		},
	}

	r := setupTelemetryRouter(svc)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/telemetry/history?vehicleId=B1234XYZ&from=1715000000&to=1715003600", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got.VehicleID != "B1234XYZ" {
		t.Errorf("expected B1234XYZ, got %s", got.VehicleID)
	}
	if !got.From.Equal(time.Unix(1715000000, 0)) || !got.To.Equal(time.Unix(1715003600, 0)) {
		t.Errorf("unexpected range: %v .. %v", got.From, got.To)
	}
}

func TestGetLatestTelemetry_Success(t *testing.T) {
	svc := &mockTelemetryService{
		getLatestFn: func(_ context.Context) ([]domain.TelemetryReading, error) {
			return []domain.TelemetryReading{{VehicleID: "B1234XYZ"}}, nil
		},
	}

	r := setupTelemetryRouter(svc)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/telemetry", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
