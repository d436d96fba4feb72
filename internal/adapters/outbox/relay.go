// Package outbox drains the transactional outbox. Rows are written in the
// same transaction as the state change they announce (registration, password
// reset), so the relay can deliver them at-least-once without ever observing
// a half-committed registration.
package outbox

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/milkwise/mother-care-service/internal/config"
	"github.com/milkwise/mother-care-service/internal/core/ports"
)

const (
	listenerMinReconnectInterval = 10 * time.Second
	listenerMaxReconnectInterval = time.Minute
	outboxChannelName            = "outbox_channel"

	eventProcessTimeout     = 30 * time.Second
	batchProcessTimeout     = 60 * time.Second
	periodicProcessInterval = 90 * time.Second

	staleThreshold = 5 * time.Minute

	maxEventsPerBatch = 100
)

// Relay listens for Postgres NOTIFY signals on the outbox channel and
// publishes mail events to RabbitMQ.
type Relay struct {
	db            *sql.DB
	publisher     ports.MailEventPublisher
	listener      *pq.Listener
	dbURL         string
	dbCB          *gobreaker.CircuitBreaker
	lastProcessed time.Time
	healthy       bool
	log           zerolog.Logger
}

func NewRelay(db *sql.DB, dbURL string, publisher ports.MailEventPublisher, log zerolog.Logger) *Relay {
	return &Relay{
		db:            db,
		dbURL:         dbURL,
		publisher:     publisher,
		dbCB:          config.NewCircuitBreaker("Relay-PostgreSQL"),
		lastProcessed: time.Now(),
		healthy:       true,
		log:           log,
	}
}

// IsHealthy is the liveness signal: the process is alive and responding.
func (r *Relay) IsHealthy() bool {
	return r.healthy
}

// IsReady is the readiness signal: the breaker is closed and events have
// moved recently.
func (r *Relay) IsReady() bool {
	if r.dbCB.State() == gobreaker.StateOpen {
		return false
	}
	if time.Since(r.lastProcessed) > staleThreshold {
		return false
	}
	return r.healthy
}

// Start blocks, listening for outbox notifications until ctx is cancelled.
// A periodic sweep catches events whose notification was lost.
func (r *Relay) Start(ctx context.Context) error {
	reportProblem := func(ev pq.ListenerEventType, err error) {
		if err != nil {
			r.log.Error().Err(err).Msg("outbox listener error")
		}
	}

	r.listener = pq.NewListener(r.dbURL, listenerMinReconnectInterval, listenerMaxReconnectInterval, reportProblem)
	defer r.listener.Close()

	if err := r.listener.Listen(outboxChannelName); err != nil {
		return err
	}

	r.log.Info().Str("channel", outboxChannelName).Msg("outbox relay listening")

	// Startup catch-up for rows written while the relay was down.
	if err := r.processUnprocessedEvents(ctx); err != nil {
		r.log.Error().Err(err).Msg("startup backlog processing failed")
	}

	for {
		select {
		case <-ctx.Done():
			r.log.Info().Msg("outbox relay shutting down")
			return ctx.Err()

		case notification := <-r.listener.Notify:
			if notification == nil {
				r.log.Warn().Msg("nil notification, reconnecting")
				r.healthy = false
				continue
			}

			if err := r.processEventByID(ctx, notification.Extra); err != nil {
				r.log.Error().Err(err).Str("event_id", notification.Extra).Msg("event processing failed")
			} else {
				r.lastProcessed = time.Now()
				r.healthy = true
			}

		case <-time.After(periodicProcessInterval):
			go r.listener.Ping()

			if err := r.processUnprocessedEvents(ctx); err != nil {
				r.log.Error().Err(err).Msg("periodic processing failed")
			} else {
				r.lastProcessed = time.Now()
			}
		}
	}
}

// processEventByID locks and publishes a single event.
func (r *Relay) processEventByID(ctx context.Context, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, eventProcessTimeout)
	defer cancel()

	_, err := r.dbCB.Execute(func() (interface{}, error) {
		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return nil, err
		}
		defer tx.Rollback()

		var id, eventType string
		var payload []byte
		err = tx.QueryRowContext(ctx, `
			SELECT id, event_type, payload
			FROM outbox_events
			WHERE id = $1 AND processed_at IS NULL
			FOR UPDATE SKIP LOCKED`, eventID).Scan(&id, &eventType, &payload)
		if err == sql.ErrNoRows {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}

		if err := r.publisher.PublishMailEvent(ctx, eventType, payload); err != nil {
			return nil, err
		}

		if _, err := tx.ExecContext(ctx, `UPDATE outbox_events SET processed_at = NOW() WHERE id = $1`, id); err != nil {
			return nil, err
		}
		return nil, tx.Commit()
	})
	return err
}

// processUnprocessedEvents sweeps the backlog in one batch.
func (r *Relay) processUnprocessedEvents(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, batchProcessTimeout)
	defer cancel()

	_, err := r.dbCB.Execute(func() (interface{}, error) {
		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return nil, err
		}
		defer tx.Rollback()

		rows, err := tx.QueryContext(ctx, `
			SELECT id, event_type, payload
			FROM outbox_events
			WHERE processed_at IS NULL
			ORDER BY created_at
			LIMIT $1
			FOR UPDATE SKIP LOCKED`, maxEventsPerBatch)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		type record struct {
			ID        string
			EventType string
			Payload   []byte
		}

		var records []record
		for rows.Next() {
			var rec record
			if err := rows.Scan(&rec.ID, &rec.EventType, &rec.Payload); err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}

		for _, rec := range records {
			if err := r.publisher.PublishMailEvent(ctx, rec.EventType, rec.Payload); err != nil {
				r.log.Error().Err(err).Str("event_id", rec.ID).Msg("publish failed, will retry")
				continue
			}
			if _, err := tx.ExecContext(ctx, `UPDATE outbox_events SET processed_at = NOW() WHERE id = $1`, rec.ID); err != nil {
				return nil, err
			}
			r.log.Info().Str("event_id", rec.ID).Str("event_type", rec.EventType).Msg("outbox event processed")
		}
		return nil, tx.Commit()
	})
	return err
}
