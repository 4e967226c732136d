package ai

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// StreamProvider is an optional interface. Providers may implement streaming chat.
// Both channels are closed when the stream ends; at most one error is sent.
type StreamProvider interface {
	StreamChat(ctx context.Context, messages []Message) (<-chan string, <-chan error)
}

// Stream uses StreamChat when p supports it and otherwise emits the blocking
// reply as a single chunk.
func Stream(ctx context.Context, p Provider, messages []Message) (<-chan string, <-chan error) {
	if sp, ok := p.(StreamProvider); ok {
		return sp.StreamChat(ctx, messages)
	}
	chunks := make(chan string, 1)
	errs := make(chan error, 1)
	go func() {
		defer close(chunks)
		defer close(errs)
		reply, err := p.Chat(ctx, messages)
		if err != nil {
			errs <- err
			return
		}
		if reply != "" {
			chunks <- reply
		}
	}()
	return chunks, errs
}

// Collect drains a stream into the full reply.
func Collect(chunks <-chan string, errs <-chan error) (string, error) {
	var b strings.Builder
	for c := range chunks {
		b.WriteString(c)
	}
	if err := <-errs; err != nil {
		return b.String(), err
	}
	return b.String(), nil
}

// lineDecoder turns one line of a streaming body into a text delta. done
// ends the stream without error.
type lineDecoder func(line []byte) (delta string, done bool, err error)

// streamLines runs open in a goroutine and feeds every line of the response
// body through decode. Errors are prefixed with name.
func streamLines(ctx context.Context, name string, open func() (*http.Response, error), decode lineDecoder) (<-chan string, <-chan error) {
	chunks := make(chan string, 16)
	errs := make(chan error, 1)

	go func() {
		defer close(chunks)
		defer close(errs)

		resp, err := open()
		if err != nil {
			errs <- err
			return
		}
		defer resp.Body.Close()

		sc := bufio.NewScanner(resp.Body)
		sc.Buffer(make([]byte, 0, 64*1024), 2*1024*1024)
		for sc.Scan() {
			delta, done, err := decode(sc.Bytes())
			if err != nil {
				errs <- fmt.Errorf("%s: %w", name, err)
				return
			}
			if delta != "" {
				select {
				case chunks <- delta:
				case <-ctx.Done():
					errs <- ctx.Err()
					return
				}
			}
			if done {
				return
			}
		}
		if err := sc.Err(); err != nil {
			errs <- fmt.Errorf("%s: %w", name, err)
		}
	}()

	return chunks, errs
}

// do sends req and turns a non-2xx reply into an error carrying the start of
// the body.
func do(client *http.Client, name string, req *http.Request) (*http.Response, error) {
	if client == nil {
		return nil, fmt.Errorf("%s: http client is nil", name)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		resp.Body.Close()
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("%s: %s", name, msg)
	}
	return resp, nil
}
