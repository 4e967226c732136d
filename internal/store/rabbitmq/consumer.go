package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Handler processes one job. A returned error dead-letters the message.
type Handler func(ctx context.Context, jobID string) error

// DefaultJobTimeout bounds one handler call, including after shutdown starts.
const DefaultJobTimeout = 5 * time.Minute

type Consumer struct {
	conn        *amqp.Connection
	ch          *amqp.Channel
	queue       string
	concurrency int

	// JobTimeout overrides DefaultJobTimeout when positive.
	JobTimeout time.Duration
}

func NewConsumer(url, queue string, concurrency int) (*Consumer, error) {
	// prefetch equals the pool size so no worker holds a backlog
	qos := func(ch *amqp.Channel) error { return ch.Qos(concurrency, 0, false) }
	conn, ch, err := open(url, queue, qos)
	if err != nil {
		return nil, err
	}
	return &Consumer{conn: conn, ch: ch, queue: queue, concurrency: concurrency}, nil
}

func (c *Consumer) Close() error {
	_ = c.ch.Close()
	return c.conn.Close()
}

// ErrDeliveriesClosed is returned by Run when the broker closes the channel.
var ErrDeliveriesClosed = errors.New("rabbitmq: delivery channel closed")

// Run dispatches deliveries to a pool of concurrency workers until ctx ends
// or the broker closes the channel. Cancelling ctx stops intake only: jobs
// already handed to a worker run to completion (or JobTimeout) before Run
// returns.
func (c *Consumer) Run(ctx context.Context, h Handler) error {
	msgs, err := c.ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("rabbitmq: consume: %w", err)
	}

	timeout := c.JobTimeout
	if timeout <= 0 {
		timeout = DefaultJobTimeout
	}

	jobs := make(chan amqp.Delivery, c.concurrency*2)
	var wg sync.WaitGroup
	wg.Add(c.concurrency)
	for i := 0; i < c.concurrency; i++ {
		go func(workerID int) {
			defer wg.Done()
			for d := range jobs {
				process(ctx, timeout, workerID, d.Body, d, h)
			}
		}(i)
	}

	defer func() {
		close(jobs)
		wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return ErrDeliveriesClosed
			}
			jobs <- d
		}
	}
}

type acker interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func process(ctx context.Context, timeout time.Duration, workerID int, body []byte, a acker, h Handler) {
	var m JobMessage
	if err := json.Unmarshal(body, &m); err != nil || m.JobID == "" {
		slog.WarnContext(ctx, "bad job message", "worker", workerID, "err", err)
		_ = a.Nack(false, false)
		return
	}

	hctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	start := time.Now()
	if err := h(hctx, m.JobID); err != nil {
		slog.ErrorContext(ctx, "job failed", "worker", workerID, "job_id", m.JobID, "cost", time.Since(start), "err", err)
		_ = a.Nack(false, false)
		return
	}
	if err := a.Ack(false); err != nil {
		slog.ErrorContext(ctx, "ack failed", "worker", workerID, "job_id", m.JobID, "err", err)
		return
	}
	slog.InfoContext(ctx, "job done", "worker", workerID, "job_id", m.JobID, "cost", time.Since(start))
}
