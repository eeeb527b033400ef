// Package events publishes storefront events to NATS. Publishing is best
// effort: failures are logged and never reach the shopper.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sony/gobreaker/v2"

	applog "lrkr/internal/log"
)

const (
	SubjectCartChanged       = "lrkr.cart.changed"
	SubjectOrderCreated      = "lrkr.order.created"
	SubjectContactSubmitted  = "lrkr.submission.contact"
	SubjectFeedbackSubmitted = "lrkr.submission.feedback"
)

// Publisher sends v, JSON encoded, to subject.
type Publisher interface {
	Publish(ctx context.Context, subject string, v any) error
}

// Conn is the part of *nats.Conn the publisher needs.
type Conn interface {
	Publish(subj string, data []byte) error
}

// Nop drops every event. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }

// Envelope wraps every payload with its subject and time.
type Envelope struct {
	Subject string    `json:"subject"`
	At      time.Time `json:"at"`
	Data    any       `json:"data"`
}

// NATSPublisher publishes through a circuit breaker so a dead broker fails fast.
type NATSPublisher struct {
	conn Conn
	cb   *gobreaker.CircuitBreaker[struct{}]
	now  func() time.Time
}

// BreakerSettings opens after five consecutive failures and probes again after 30s.
func BreakerSettings() gobreaker.Settings {
	return gobreaker.Settings{
		Name:        "nats-publish",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(c gobreaker.Counts) bool { return c.ConsecutiveFailures >= 5 },
		OnStateChange: func(name string, from, to gobreaker.State) {
			applog.Info(nil, "events.breaker", map[string]any{"name": name, "from": from.String(), "to": to.String()})
		},
	}
}

func NewNATSPublisher(conn Conn, st gobreaker.Settings) *NATSPublisher {
	return &NATSPublisher{
		conn: conn,
		cb:   gobreaker.NewCircuitBreaker[struct{}](st),
		now:  time.Now,
	}
}

// Connect dials url and returns a publisher over the connection.
func Connect(url string) (*NATSPublisher, *nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("lrkr"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("nats connect: %w", err)
	}
	return NewNATSPublisher(nc, BreakerSettings()), nc, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, subject string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(Envelope{Subject: subject, At: p.now().UTC(), Data: v})
	if err != nil {
		return fmt.Errorf("encode %s: %w", subject, err)
	}
	_, err = p.cb.Execute(func() (struct{}, error) {
		return struct{}{}, p.conn.Publish(subject, data)
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}

// State reports the breaker state, for health output.
func (p *NATSPublisher) State() string { return p.cb.State().String() }

// Emit publishes and logs a failure instead of returning it.
func Emit(ctx context.Context, pub Publisher, subject string, v any) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, subject, v); err != nil {
		applog.Error(nil, "events.publish_failed", err, map[string]any{"subject": subject})
	}
}
