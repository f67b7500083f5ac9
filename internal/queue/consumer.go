package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// StartRSVPConsumer connects to RabbitMQ, declares both reservation queues
// and appends every message to logs/rsvp.log as a single human-readable
// line.  It runs a reconnect loop with capped exponential backoff and never
// returns under normal operation; run it in its own goroutine.
func StartRSVPConsumer() error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(brokerURL())
		if err != nil {
			log.Warn().Err(err).Dur("retry_in", backoff).Msg("rsvp-consumer: dial failed")
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := consumeLoop(conn); err != nil {
			log.Warn().Err(err).Msg("rsvp-consumer: consume loop ended, reconnecting")
			_ = conn.Close()
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Warn().Err(err).Msg("rsvp-consumer: set QoS failed")
	}

	for _, name := range []string{AdmittedQueue, StatusChangedQueue} {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s: %w", name, err)
		}
	}

	admitted, err := ch.Consume(AdmittedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", AdmittedQueue, err)
	}
	changed, err := ch.Consume(StatusChangedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", StatusChangedQueue, err)
	}

	for {
		select {
		case d, ok := <-admitted:
			if !ok {
				return errors.New("admitted deliveries channel closed")
			}
			ackOrReject(d, handleAdmitted(d.Body))
		case d, ok := <-changed:
			if !ok {
				return errors.New("status deliveries channel closed")
			}
			ackOrReject(d, handleStatusChanged(d.Body))
		}
	}
}

// ackOrReject nacks without requeue on failure so a poison message cannot
// spin the loop.
func ackOrReject(d amqp.Delivery, err error) {
	if err != nil {
		log.Warn().Err(err).Msg("rsvp-consumer: handle message failed")
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}

func handleAdmitted(body []byte) error {
	var ev RSVPAdmittedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	line := fmt.Sprintf("[%s] RSVP admitted | rsvp_id=%s | event=%q (%s) | name=%q | email=%q | status=%s\n",
		ev.AdmittedAt, ev.RSVPID, ev.EventTitle, ev.EventSlug, ev.FullName, ev.Email, ev.Status)
	return appendAuditLine(line)
}

func handleStatusChanged(body []byte) error {
	var ev RSVPStatusChangedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	line := fmt.Sprintf("[%s] RSVP status changed | rsvp_id=%s | event_id=%s | %s -> %s | by=%s\n",
		ev.ChangedAt, ev.RSVPID, ev.EventID, ev.FromStatus, ev.ToStatus, ev.ChangedBy)
	return appendAuditLine(line)
}

func appendAuditLine(line string) error {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(filepath.Join("logs", "rsvp.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
