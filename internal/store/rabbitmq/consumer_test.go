package rabbitmq

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeAck struct {
	acked, nacked, requeued bool
}

func (f *fakeAck) Ack(bool) error { f.acked = true; return nil }

func (f *fakeAck) Nack(_ bool, requeue bool) error {
	f.nacked, f.requeued = true, requeue
	return nil
}

func TestProcess_AcksOnSuccess(t *testing.T) {
	var got string
	a := &fakeAck{}
	process(context.Background(), time.Minute, 0, []byte(`{"job_id":"01J"}`), a, func(ctx context.Context, id string) error {
		got = id
		return nil
	})
	if got != "01J" || !a.acked || a.nacked {
		t.Fatalf("expected ack for 01J, got id=%q %+v", got, a)
	}
}

func TestProcess_DeadLettersOnFailure(t *testing.T) {
	a := &fakeAck{}
	process(context.Background(), time.Minute, 0, []byte(`{"job_id":"01J"}`), a, func(ctx context.Context, id string) error {
		return errors.New("boom")
	})
	if !a.nacked || a.requeued || a.acked {
		t.Fatalf("expected nack without requeue, got %+v", a)
	}
}

func TestProcess_BadMessage(t *testing.T) {
	for _, body := range []string{`not json`, `{}`} {
		a := &fakeAck{}
		called := false
		process(context.Background(), time.Minute, 0, []byte(body), a, func(ctx context.Context, id string) error {
			called = true
			return nil
		})
		if called || !a.nacked || a.requeued {
			t.Fatalf("body %q: expected nack without handler call, got called=%v %+v", body, called, a)
		}
	}
}

func TestDeadLetterQueue(t *testing.T) {
	if got := DeadLetterQueue("case_jobs"); got != "case_jobs.dlq" {
		t.Fatalf("unexpected dlq name %q", got)
	}
}

func TestProcess_HandlerOutlivesShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := &fakeAck{}
	process(ctx, time.Minute, 0, []byte(`{"job_id":"01J"}`), a, func(hctx context.Context, id string) error {
		if err := hctx.Err(); err != nil {
			return err
		}
		if _, ok := hctx.Deadline(); !ok {
			return errors.New("handler context has no deadline")
		}
		return nil
	})
	if !a.acked || a.nacked {
		t.Fatalf("expected in-flight job to complete after cancel, got %+v", a)
	}
}
