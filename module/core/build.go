package core

import (
	"context"
	"database/sql"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	handler "github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/internal/handler/http"
	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/internal/metrics"
	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/internal/handler/subscriber"
	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/internal/repository/database/postgres"
	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/internal/repository/database/redisstate"
	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/internal/repository/publisher/rabbitmq"
	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/service"
)

type Module struct {
	TelemetrySvc *service.TelemetryService
	GeofenceSvc  *service.GeofenceService
	VehicleSvc   *service.VehicleService
	AlertSvc     *service.AlertService
	HistorySvc   *service.HistoryService

	telemetryHandler *handler.TelemetryHandler
	geofenceHandler  *handler.GeofenceHandler
	vehicleHandler   *handler.VehicleHandler
	alertHandler     *handler.AlertHandler
	historyHandler   *handler.HistoryHandler

	subscriber *subscriber.TelemetrySubscriber
	dispatcher *rabbitmq.EventDispatcher
}

func Build(db *sql.DB, amqpConn *amqp.Connection, mqttClient mqtt.Client, redisClient *redis.Client, eventQueueSize int) (*Module, error) {
	telemetryRepo := postgres.NewTelemetryRepo(db)
	geofenceRepo := postgres.NewGeofenceRepo(db)
	vehicleRepo := postgres.NewVehicleRepo(db)
	alertRepo := postgres.NewAlertRepo(db)
	stateRepo := redisstate.NewStateRepo(redisClient)

	dispatcher, err := rabbitmq.NewEventDispatcher(amqpConn, eventQueueSize)
	if err != nil {
		return nil, fmt.Errorf("event dispatcher: %w", err)
	}

	tracker := service.NewGeofenceStateTracker()
	rules := service.NewAlertRuleEvaluator(nil)

	telemetrySvc := service.NewTelemetryService(telemetryRepo, stateRepo, vehicleRepo, geofenceRepo, alertRepo, tracker, rules, dispatcher)
	geofenceSvc := service.NewGeofenceService(geofenceRepo)
	vehicleSvc := service.NewVehicleService(vehicleRepo)
	alertSvc := service.NewAlertService(alertRepo, dispatcher)
	historySvc := service.NewHistoryService(telemetryRepo)

	return &Module{
		TelemetrySvc: telemetrySvc,
		GeofenceSvc:  geofenceSvc,
		VehicleSvc:   vehicleSvc,
		AlertSvc:     alertSvc,
		HistorySvc:   historySvc,

		telemetryHandler: handler.NewTelemetryHandler(telemetrySvc),
		geofenceHandler:  handler.NewGeofenceHandler(geofenceSvc),
		vehicleHandler:   handler.NewVehicleHandler(vehicleSvc),
		alertHandler:     handler.NewAlertHandler(alertSvc),
		historyHandler:   handler.NewHistoryHandler(historySvc),

		subscriber: subscriber.NewTelemetrySubscriber(mqttClient, telemetrySvc),
		dispatcher: dispatcher,
	}, nil
}

func (m *Module) RegisterRoutes(r *gin.RouterGroup) {
	m.telemetryHandler.Register(r)
	m.geofenceHandler.Register(r)
	m.vehicleHandler.Register(r)
	m.alertHandler.Register(r)
	m.historyHandler.Register(r)
}

func (m *Module) RegisterMetrics(r *gin.Engine) {
	r.GET("/metrics", gin.WrapF(metrics.HandleMetrics))
}

func (m *Module) StartSubscribers() error {
	return m.subscriber.Start()
}

func (m *Module) StartDispatcher(ctx context.Context) {
	m.dispatcher.Start(ctx)
}
