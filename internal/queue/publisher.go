// Package queue publishes domain events to RabbitMQ. Publishing is
// best-effort: errors are logged and returned so callers can ignore them
// without interrupting the request that produced the event.
package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// Publisher publishes JSON payloads to named queues on a RabbitMQ broker.
// A nil Publisher is valid and drops every message, so wiring stays the
// same whether or not a broker is configured.
type Publisher struct {
	url string
}

// NewPublisher returns a Publisher for the given AMQP URL, or nil when the
// URL is empty.
func NewPublisher(url string) *Publisher {
	if url == "" {
		return nil
	}
	return &Publisher{url: url}
}

// Publish declares the queue (idempotent, durable) and sends one persistent
// JSON message. Each call dials a fresh connection; publish volume here is a
// handful of messages per request at most.
func (p *Publisher) Publish(ctx context.Context, queueName string, payload interface{}) error {
	if p == nil {
		return nil
	}
	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Warn().Err(err).Str("queue", queueName).Msg("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Warn().Err(err).Str("queue", queueName).Msg("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		log.Warn().Err(err).Str("queue", queueName).Msg("rabbitmq: queue declare failed")
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Warn().Err(err).Str("queue", queueName).Msg("rabbitmq: marshal failed")
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		log.Warn().Err(err).Str("queue", queueName).Msg("rabbitmq: publish failed")
		return err
	}
	return nil
}

// CheckinRecorded publishes a CheckinRecordedEvent. Errors are swallowed.
func (p *Publisher) CheckinRecorded(event CheckinRecordedEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = p.Publish(ctx, QueueCheckinRecorded, event)
}

// EventClosed publishes an EventClosedEvent. Errors are swallowed.
func (p *Publisher) EventClosed(event EventClosedEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = p.Publish(ctx, QueueEventClosed, event)
}

// NoShowFinalized publishes a NoShowFinalizedEvent. Errors are swallowed.
func (p *Publisher) NoShowFinalized(event NoShowFinalizedEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = p.Publish(ctx, QueueNoShowFinalized, event)
}
