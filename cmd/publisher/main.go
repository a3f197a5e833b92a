package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

type telemetryMessage struct {
	VehicleID   string  `json:"vehicle_id"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Speed       float64 `json:"speed"`
	Temperature float64 `json:"temperature"`
	Fuel        float64 `json:"fuel"`
	Ignition    bool    `json:"ignition"`
	Timestamp   int64   `json:"timestamp"`
}

const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomVehicleID() string {
	letter := string(charset[rand.Intn(26)])
	digits := fmt.Sprintf("%04d", rand.Intn(10000))
	suffix := string([]byte{charset[rand.Intn(26)], charset[rand.Intn(26)], charset[rand.Intn(26)]})
	return letter + digits + suffix
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <interval_seconds>\n", os.Args[0])
		os.Exit(1)
	}

	intervalSec, err := strconv.Atoi(os.Args[1])
	if err != nil || intervalSec <= 0 {
		fmt.Fprintf(os.Stderr, "error: interval must be a positive integer\n")
		os.Exit(1)
	}

	broker := "tcp://localhost:1883"
	if v := os.Getenv("MQTT_BROKER"); v != "" {
		broker = v
	}

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("fleet-mock-publisher")

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("mqtt connect: %v", token.Error())
	}
	defer client.Disconnect(250)

	vehiclePool := make([]string, 5)
	for i := range vehiclePool {
		vehiclePool[i] = randomVehicleID()
	}

	log.Printf("connected to %s, publishing every %ds...", broker, intervalSec)
	log.Printf("vehicle pool: %v", vehiclePool)

	ticker := time.NewTicker(time.Duration(intervalSec) * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		vid := vehiclePool[rand.Intn(len(vehiclePool))]

		// Drift around a depot so geofence transitions actually happen.
		lat := -6.2088 + (rand.Float64()-0.5)*0.01
		lng := 106.8456 + (rand.Float64()-0.5)*0.01

		msg := telemetryMessage{
			VehicleID:   vid,
			Latitude:    lat,
			Longitude:   lng,
			Speed:       rand.Float64() * 120, // occasionally over the 80 km/h rule
			Temperature: 40 + rand.Float64()*60,
			Fuel:        rand.Float64() * 100,
			Ignition:    rand.Float64() < 0.9,
			Timestamp:   time.Now().Unix(),
		}

		payload, _ := json.Marshal(msg)
		topic := fmt.Sprintf("/fleet/vehicle/%s/telemetry", vid)

		token := client.Publish(topic, 1, false, payload)
		token.Wait()

		log.Printf("published to %s: %s", topic, payload)
	}
}
