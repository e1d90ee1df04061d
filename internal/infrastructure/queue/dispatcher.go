// Package queue moves decision audit events off the request path. The
// dispatcher implements ports.DecisionRecorder: Process enqueues, a fixed set
// of workers persists.
package queue

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/revature/reimbursement-system/internal/api/metrics"
	"github.com/revature/reimbursement-system/internal/core/domain"
	"github.com/revature/reimbursement-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes ticket events to a fixed set of workers sharded by ticket
// id, so the audit records of one ticket are written in decision order.
type Dispatcher struct {
	workers []chan domain.TicketEvent
	events  ports.EventRepository
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, events ports.EventRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.TicketEvent, numWorkers),
		events:  events,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.TicketEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues an event to the worker responsible for its ticket id.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Record(event domain.TicketEvent) {
	i := d.shardIndex(event.TicketID)
	d.workers[i] <- event
	metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// shardIndex maps a ticket id deterministically to a worker index.
func (d *Dispatcher) shardIndex(ticketID int64) int {
	return int(ticketID % int64(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.TicketEvent) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

			start := time.Now()
			err := d.events.InsertEvent(ctx, &event)
			metrics.AuditWriteDuration.Observe(time.Since(start).Seconds())

			if err != nil {
				metrics.AuditEventsRecordedTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Int64("ticket_id", event.TicketID).
					Int("worker_id", id).
					Msg("audit event write failed")
				continue
			}
			metrics.AuditEventsRecordedTotal.WithLabelValues("ok").Inc()
		}
	}
}
