package apiclient

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/okian/robot/pkg/logger"
)

// maxEventLine bounds a single line of the event stream.
const maxEventLine = 1 << 20

// StreamEvent is one server-sent event.
type StreamEvent struct {
	Event string
	ID    string
	Data  []byte
}

// EventReader parses Server-Sent Events from a stream.
type EventReader struct {
	scanner *bufio.Scanner
}

// NewEventReader creates a reader over r.
func NewEventReader(r io.Reader) *EventReader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 4096), maxEventLine)
	return &EventReader{scanner: s}
}

// Next returns the next event. Multiple data lines are joined with "\n".
// Comment lines and unknown fields are skipped. io.EOF marks the end.
func (r *EventReader) Next() (StreamEvent, error) {
	var (
		ev      StreamEvent
		data    [][]byte
		hasData bool
	)
	for r.scanner.Scan() {
		line := r.scanner.Bytes()
		if len(line) == 0 {
			if hasData {
				ev.Data = bytes.Join(data, []byte("\n"))
				return ev, nil
			}
			ev = StreamEvent{}
			continue
		}
		if line[0] == ':' {
			continue
		}
		field, value, _ := bytes.Cut(line, []byte(":"))
		value = bytes.TrimPrefix(value, []byte(" "))
		switch string(field) {
		case "event":
			ev.Event = string(value)
		case "id":
			ev.ID = string(value)
		case "data":
			data = append(data, append([]byte(nil), value...))
			hasData = true
		}
	}
	if err := r.scanner.Err(); err != nil {
		return StreamEvent{}, err
	}
	if hasData {
		ev.Data = bytes.Join(data, []byte("\n"))
		return ev, nil
	}
	return StreamEvent{}, io.EOF
}

// StreamHandler receives each event in order. Returning an error stops the stream.
type StreamHandler func(StreamEvent) error

// ErrStopStream may be returned by a StreamHandler to end the stream early
// without reporting an error.
var ErrStopStream = errors.New("stop stream")

// StreamChat opens the URL built by ChatStreamURL and feeds every event to
// fn. The stream is bounded by ctx only; the client timeout does not apply.
func (u *Unified) StreamChat(ctx context.Context, request string, opts *ChatOptions, fn StreamHandler) error {
	return u.client.stream(ctx, EndpointUnifiedChatStream.Name, u.ChatStreamURL(request, opts), fn)
}

// streamCall opens the event stream described by cl.
func (c *Client) streamCall(ctx context.Context, cl call, fn StreamHandler) error {
	target, err := c.target(cl)
	if err != nil {
		return err
	}
	return c.stream(ctx, cl.endpoint.Name, target, fn)
}

// stream issues one GET for target, relative to the origin, and feeds
// every event to fn until the server closes the stream.
func (c *Client) stream(ctx context.Context, name, target string, fn StreamHandler) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.origin+target, nil)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", name, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(name, http.MethodGet, 0, time.Since(start), "transport")
		return fmt.Errorf("GET %s: %w: %w", target, ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(resp.Body)
		c.observe(name, http.MethodGet, resp.StatusCode, time.Since(start), "status")
		return &StatusError{Method: http.MethodGet, URL: target, StatusCode: resp.StatusCode, Body: data}
	}

	events := 0
	reader := NewEventReader(resp.Body)
	for {
		ev, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			c.observe(name, http.MethodGet, resp.StatusCode, time.Since(start), "transport")
			return fmt.Errorf("GET %s: read stream: %w: %w", target, ErrTransport, err)
		}
		events++
		if err := fn(ev); err != nil {
			if errors.Is(err, ErrStopStream) {
				break
			}
			return err
		}
	}
	c.observe(name, http.MethodGet, resp.StatusCode, time.Since(start), "")
	c.logger.Debug(ctx, "event stream closed",
		logger.String("endpoint", name), logger.String("request_id", reqID), logger.Int("events", events))
	return nil
}
