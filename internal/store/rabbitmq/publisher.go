package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// JobMessageType tags every job delivery so stray messages on the queue are
// easy to spot in the management UI.
const JobMessageType = "legal.job"

const defaultPublishTimeout = 5 * time.Second

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher implements the API's job queue on the default exchange, routed
// by queue name.
type Publisher struct {
	queue   string
	timeout time.Duration
	conn    *amqp.Connection

	mu sync.Mutex // amqp channels are not safe for concurrent publishes
	ch channel
}

func NewPublisher(url, queue string) (*Publisher, error) {
	conn, ch, err := open(url, queue, nil)
	if err != nil {
		return nil, err
	}
	return &Publisher{queue: queue, timeout: defaultPublishTimeout, conn: conn, ch: ch}, nil
}

func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// PublishJob queues jobID as a persistent message. The job row must already
// be committed: the worker loads it by ID.
func (p *Publisher) PublishJob(ctx context.Context, jobID string) error {
	msg, err := jobPublishing(jobID, time.Now())
	if err != nil {
		return err
	}

	cctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.PublishWithContext(cctx, "", p.queue, false, false, msg); err != nil {
		return fmt.Errorf("rabbitmq: publish job %s: %w", jobID, err)
	}
	return nil
}

func jobPublishing(jobID string, at time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(JobMessage{JobID: jobID})
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    jobID,
		Type:         JobMessageType,
		Timestamp:    at,
		Body:         body,
	}, nil
}
