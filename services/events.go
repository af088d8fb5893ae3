package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

const (
	EventReservationCreated   = "reservation.created"
	EventReservationCancelled = "reservation.cancelled"
	EventReservationCompleted = "reservation.completed"
	EventInvoiceGenerated     = "invoice.generated"
	EventInvoicePaid          = "invoice.paid"
	EventReviewApproved       = "review.approved"
)

// EventsQueue is the durable queue domain events are published to.
const EventsQueue = "hotel.events"

type Event struct {
	Type       string      `json:"type"`
	ResourceID uint        `json:"resource_id"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload,omitempty"`
}

func NewEvent(typ string, id uint, payload interface{}) Event {
	return Event{Type: typ, ResourceID: id, OccurredAt: time.Now().UTC(), Payload: payload}
}

// EventPublisher delivers domain events after their transaction committed.
type EventPublisher interface {
	Publish(ctx context.Context, ev Event) error
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }

// publish sends ev and only logs failures; callers never fail on events.
func publish(ctx context.Context, p EventPublisher, log *logrus.Logger, ev Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, ev); err != nil {
		log.WithFields(logrus.Fields{"event": ev.Type, "resource_id": ev.ResourceID}).
			WithError(err).Warn("event publish failed")
	}
}

// AMQPPublisher publishes persistent JSON messages to a RabbitMQ queue. The
// connection is dialed lazily and re-dialed after it closes.
type AMQPPublisher struct {
	url   string
	queue string
	log   *logrus.Logger

	mu   sync.Mutex
	conn *amqp.Connection
}

func NewAMQPPublisher(url string, log *logrus.Logger) *AMQPPublisher {
	return &AMQPPublisher{url: url, queue: EventsQueue, log: log}
}

func (p *AMQPPublisher) connection() (*amqp.Connection, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn != nil && !p.conn.IsClosed() {
		return p.conn, nil
	}
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, err
	}
	p.conn = conn
	return conn, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, ev Event) error {
	conn, err := p.connection()
	if err != nil {
		return err
	}
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	return ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         ev.Type,
		Timestamp:    ev.OccurredAt,
		Body:         body,
	})
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil || p.conn.IsClosed() {
		return nil
	}
	return p.conn.Close()
}
