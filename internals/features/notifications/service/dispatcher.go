// file: internals/features/notifications/service/dispatcher.go
//
// Background drain of pending notification_audits. Push delivery is
// best-effort: bounded batches, capped exponential backoff, and a bounded
// attempt count per row. Failure never touches the originating business
// data.
package service

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"nitihub_backend/internals/features/notifications/model"
)

const (
	dispatchInterval = 15 * time.Second
	dispatchBatch    = 100
	maxPushAttempts  = 5
	baseBackoff      = 2 * time.Second
	maxBackoff       = 2 * time.Minute
)

type Dispatcher struct {
	db     *gorm.DB
	pusher Pusher
	stop   chan struct{}
	done   chan struct{}
}

func NewDispatcher(db *gorm.DB, pusher Pusher) *Dispatcher {
	return &Dispatcher{
		db:     db,
		pusher: pusher,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

func (d *Dispatcher) Start() {
	go func() {
		defer close(d.done)
		ticker := time.NewTicker(dispatchInterval)
		defer ticker.Stop()
		for {
			select {
			case <-d.stop:
				return
			case <-ticker.C:
				d.drainOnce()
			}
		}
	}()
}

func (d *Dispatcher) Stop() {
	close(d.stop)
	select {
	case <-d.done:
	case <-time.After(5 * time.Second):
	}
}

// Backoff returns the delay before the given retry attempt (1-based),
// doubling from baseBackoff and capped at maxBackoff.
func Backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := baseBackoff
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= maxBackoff {
			return maxBackoff
		}
	}
	return delay
}

// Chunk splits messages into bounded batches.
func Chunk(items []model.NotificationAuditModel, size int) [][]model.NotificationAuditModel {
	if size < 1 {
		size = 1
	}
	var out [][]model.NotificationAuditModel
	for len(items) > size {
		out = append(out, items[:size])
		items = items[size:]
	}
	if len(items) > 0 {
		out = append(out, items)
	}
	return out
}

func (d *Dispatcher) drainOnce() {
	var pending []model.NotificationAuditModel
	err := d.db.
		Where("push_status = ? AND push_attempts < ?", model.PushStatusPending, maxPushAttempts).
		Order("create_date ASC").
		Limit(dispatchBatch).
		Find(&pending).Error
	if err != nil {
		log.Printf("[ERROR] notification drain: %v", err)
		return
	}
	if len(pending) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, batch := range Chunk(pending, 20) {
		msgs := make([]PushMessage, 0, len(batch))
		for _, row := range batch {
			msgs = append(msgs, PushMessage{
				Receiver: row.Receiver,
				Topic:    row.Topic,
				Title:    row.Title,
				Detail:   row.Detail,
				Type:     row.Type,
			})
		}

		ids := make([]interface{}, 0, len(batch))
		for _, row := range batch {
			ids = append(ids, row.ID)
		}

		if err := d.pusher.Send(ctx, msgs); err != nil {
			log.Printf("[WARN] push batch failed (%d msgs): %v", len(msgs), err)
			errText := err.Error()
			d.db.Model(&model.NotificationAuditModel{}).
				Where("id IN ?", ids).
				Updates(map[string]interface{}{
					"push_attempts":   gorm.Expr("push_attempts + 1"),
					"push_last_error": errText,
				})
			// rows that exhausted their attempts are marked failed
			d.db.Model(&model.NotificationAuditModel{}).
				Where("id IN ? AND push_attempts >= ?", ids, maxPushAttempts).
				Update("push_status", model.PushStatusFailed)

			select {
			case <-time.After(Backoff(int(batch[0].PushAttempts) + 1)):
			case <-d.stop:
				return
			}
			continue
		}

		now := time.Now().UTC()
		d.db.Model(&model.NotificationAuditModel{}).
			Where("id IN ?", ids).
			Updates(map[string]interface{}{
				"push_status": model.PushStatusSent,
				"push_date":   now,
			})
	}
}
