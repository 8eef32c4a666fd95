package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/iliyamo/karting-reservation/internal/model"
)

// Publisher sends reservation events to RabbitMQ.  It dials per message;
// reservations are rare enough that a pooled connection is not needed.
type Publisher struct {
	url string
	log *zap.Logger
}

func NewPublisher(url string, log *zap.Logger) *Publisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Publisher{url: url, log: log}
}

// PublishReservationCreated publishes a persistent ReservationCreatedEvent
// on the default exchange.  Errors are logged and returned.
func (p *Publisher) PublishReservationCreated(ctx context.Context, r model.Reservation) error {
	body, err := json.Marshal(NewReservationCreatedEvent(r, time.Now()))
	if err != nil {
		return err
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Warn("rabbitmq dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn("rabbitmq channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := declare(ch); err != nil {
		p.log.Warn("rabbitmq queue declare failed", zap.Error(err))
		return err
	}

	err = ch.PublishWithContext(ctx,
		"",                      // default exchange
		ReservationCreatedQueue, // routing key = queue name
		false,                   // mandatory
		false,                   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		p.log.Warn("rabbitmq publish failed", zap.Error(err))
		return err
	}
	p.log.Debug("reservation event published", zap.Uint64("reservation_id", r.ID))
	return nil
}

// declare makes sure the durable queue exists.
func declare(ch *amqp.Channel) (amqp.Queue, error) {
	return ch.QueueDeclare(ReservationCreatedQueue, true, false, false, false, nil)
}
