// Package rabbitmq carries queued case-analysis and legal-aid jobs from the
// API to the worker.
package rabbitmq

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

type JobMessage struct {
	JobID string `json:"job_id"`
}

func DeadLetterQueue(queue string) string { return queue + ".dlq" }

// DeclareQueues declares queue and its dead-letter queue. Publisher and
// consumer both call it so the queue arguments always agree.
func DeclareQueues(ch *amqp.Channel, queue string) error {
	dlq := DeadLetterQueue(queue)
	if _, err := ch.QueueDeclare(
		dlq,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false,
		nil,
	); err != nil {
		return err
	}

	// Main queue: dead-letter to DLQ on reject/nack(requeue=false)
	_, err := ch.QueueDeclare(
		queue,
		true,
		false,
		false,
		false,
		amqp.Table{
			"x-dead-letter-exchange":    "",
			"x-dead-letter-routing-key": dlq,
		},
	)
	return err
}

// open dials url, opens one channel and declares the queues. setup, when
// set, runs on the channel before it is handed out.
func open(url, queue string, setup func(*amqp.Channel) error) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("rabbitmq: dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("rabbitmq: channel: %w", err)
	}
	if err := DeclareQueues(ch, queue); err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("rabbitmq: declare %s: %w", queue, err)
	}
	if setup != nil {
		if err := setup(ch); err != nil {
			_ = conn.Close()
			return nil, nil, fmt.Errorf("rabbitmq: %w", err)
		}
	}
	return conn, ch, nil
}
