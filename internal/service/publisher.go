// Package service provides the outbound side of the movie.created event
// stream. Publishing is best effort: errors are logged and returned so the
// request path can ignore them, and a circuit breaker stops dialing a broker
// that keeps failing.
package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/iliyamo/movie-catalog/internal/config"
	q "github.com/iliyamo/movie-catalog/internal/queue"
)

// sendFunc delivers one encoded event. The AMQP implementation is replaced in tests.
type sendFunc func(ctx context.Context, body []byte) error

// Publisher publishes MovieCreatedEvent messages to RabbitMQ.
type Publisher struct {
	cb   *gobreaker.CircuitBreaker
	send sendFunc
	log  *zap.SugaredLogger
}

// NewPublisher returns a publisher dialing cfg.URL for every event.
func NewPublisher(cfg config.BrokerConfig, log *zap.SugaredLogger) *Publisher {
	return newPublisher(cfg, log, amqpSender(cfg.URL))
}

func newPublisher(cfg config.BrokerConfig, log *zap.SugaredLogger, send sendFunc) *Publisher {
	st := gobreaker.Settings{
		Name:        "movie-events",
		MaxRequests: 1,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(cfg.MaxFailures)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Infow("circuit breaker state", "name", name, "from", from.String(), "to", to.String())
		},
	}
	return &Publisher{cb: gobreaker.NewCircuitBreaker(st), send: send, log: log}
}

// PublishMovieCreated publishes ev to the movie.created queue as a
// persistent JSON message.
func (p *Publisher) PublishMovieCreated(ctx context.Context, ev q.MovieCreatedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		p.log.Errorw("rabbitmq: marshal event failed", "error", err)
		return err
	}
	_, err = p.cb.Execute(func() (interface{}, error) {
		return nil, p.send(ctx, body)
	})
	if err != nil {
		p.log.Warnw("rabbitmq: publish failed", "movie_id", ev.MovieID, "error", err)
		return err
	}
	return nil
}

func amqpSender(url string) sendFunc {
	return func(ctx context.Context, body []byte) error {
		conn, err := amqp.Dial(url)
		if err != nil {
			return err
		}
		defer func() { _ = conn.Close() }()

		ch, err := conn.Channel()
		if err != nil {
			return err
		}
		defer func() { _ = ch.Close() }()

		// Durable so messages survive broker restarts.
		if _, err := ch.QueueDeclare(q.MovieCreatedQueue, true, false, false, false, nil); err != nil {
			return err
		}
		return ch.PublishWithContext(ctx,
			"",                  // default exchange
			q.MovieCreatedQueue, // routing key = queue name
			false,               // mandatory
			false,               // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Timestamp:    time.Now().UTC(),
				Body:         body,
			})
	}
}
