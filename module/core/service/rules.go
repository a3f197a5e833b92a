package service

import (
	"fmt"
	"time"

	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/domain"
)

// AlertRuleEvaluator applies the threshold rule table to one reading.
// Stateless; rules fire independently of each other.
type AlertRuleEvaluator struct {
	rules []domain.AlertRule
}

func NewAlertRuleEvaluator(rules []domain.AlertRule) *AlertRuleEvaluator {
	if rules == nil {
		rules = domain.DefaultAlertRules
	}
	return &AlertRuleEvaluator{rules: rules}
}

// Evaluate returns one AlertRecord per rule whose condition holds. A rule
// whose field is absent from the reading does not fire.
func (e *AlertRuleEvaluator) Evaluate(reading *domain.TelemetryReading) []domain.AlertRecord {
	var alerts []domain.AlertRecord
	for _, rule := range e.rules {
		value := fieldValue(reading, rule.Field)
		if value == nil || !rule.Comparator.Holds(*value, rule.Threshold) {
			continue
		}
		alerts = append(alerts, domain.AlertRecord{
			VehicleID: reading.VehicleID,
			Type:      rule.Type,
			Level:     rule.Level,
			Message:   fmt.Sprintf(rule.MessageFormat, *value),
			CreatedAt: time.Now(),
		})
	}
	return alerts
}

func fieldValue(reading *domain.TelemetryReading, field string) *float64 {
	switch field {
	case "speed":
		return reading.Speed
	case "temperature":
		return reading.Temperature
	case "fuel":
		return reading.Fuel
	default:
		return nil
	}
}
