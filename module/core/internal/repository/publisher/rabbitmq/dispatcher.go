package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/internal/metrics"
	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/internal/repository/publisher"
)

var _ publisher.EventPublisher = (*EventDispatcher)(nil)

const exchangeName = "fleet.events"

type event struct {
	topic string
	body  []byte
}

// EventDispatcher broadcasts pipeline events on a topic exchange. Publish
// only enqueues: a full queue drops the event (counted) instead of
// blocking the ingest path, and delivery is at-most-once.
type EventDispatcher struct {
	ch    *amqp.Channel
	queue chan event
}

func NewEventDispatcher(conn *amqp.Connection, queueSize int) (*EventDispatcher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchangeName, "topic", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &EventDispatcher{
		ch:    ch,
		queue: make(chan event, queueSize),
	}, nil
}

func (d *EventDispatcher) Publish(ctx context.Context, topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", topic, err)
	}

	select {
	case d.queue <- event{topic: topic, body: body}:
	default:
		metrics.EventDrops.Add(1)
	}
	return nil
}

// Start drains the queue until ctx is cancelled.
func (d *EventDispatcher) Start(ctx context.Context) {
	go d.run(ctx)
}

func (d *EventDispatcher) run(ctx context.Context) {
	for {
		select {
		case ev := <-d.queue:
			err := d.ch.PublishWithContext(ctx, exchangeName, ev.topic, false, false, amqp.Publishing{
				ContentType: "application/json",
				Type:        ev.topic,
				Body:        ev.body,
			})
			if err != nil {
				log.Printf("publish %s to rabbitmq: %v", ev.topic, err)
			}
		case <-ctx.Done():
			return
		}
	}
}
