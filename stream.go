package contract

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// SSEEvent is a single server-sent event. For stream endpoints the Data
// payload of each event is a complete response envelope.
type SSEEvent struct {
	// ID is the event ID (optional). Maps to the "id:" field.
	ID string
	// Event is the event type (optional). Maps to the "event:" field.
	Event string
	// Data is the event payload. Multi-line payloads are framed as
	// consecutive "data:" lines.
	Data []byte
}

// EncodeSSEEvent writes one event in text/event-stream framing,
// terminated by a blank line.
func EncodeSSEEvent(w io.Writer, ev SSEEvent) error {
	if ev.ID != "" {
		if err := writeSSEField(w, "id", ev.ID); err != nil {
			return err
		}
	}
	if ev.Event != "" {
		if err := writeSSEField(w, "event", ev.Event); err != nil {
			return err
		}
	}
	for line := range strings.SplitSeq(string(ev.Data), "\n") {
		if err := writeSSEField(w, "data", line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, "\n")
	return err
}

func writeSSEField(w io.Writer, name, value string) error {
	_, err := fmt.Fprintf(w, "%s: %s\n", name, value)
	return err
}

// EventScanner reads text/event-stream framing from a response body.
// Events are dispatched at blank lines; lines starting with ":" are
// comments; consecutive "data:" lines are joined with newlines. A
// trailing block not closed by a blank line is discarded, matching
// event-stream processing rules.
//
//	sc := contract.NewEventScanner(body)
//	for sc.Scan() {
//		ev := sc.Event()
//		...
//	}
//	err := sc.Err()
type EventScanner struct {
	s  *bufio.Scanner
	ev SSEEvent
}

// NewEventScanner returns an EventScanner reading from r.
func NewEventScanner(r io.Reader) *EventScanner {
	return &EventScanner{s: bufio.NewScanner(r)}
}

// Scan advances to the next complete event. It returns false at end of
// input or on read error.
func (sc *EventScanner) Scan() bool {
	var (
		ev      SSEEvent
		data    []string
		hasData bool
	)
	for sc.s.Scan() {
		line := sc.s.Text()
		if line == "" {
			if !hasData {
				ev = SSEEvent{}
				continue
			}
			ev.Data = []byte(strings.Join(data, "\n"))
			sc.ev = ev
			return true
		}
		if strings.HasPrefix(line, ":") {
			continue
		}
		name, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		switch name {
		case "id":
			ev.ID = value
		case "event":
			ev.Event = value
		case "data":
			data = append(data, value)
			hasData = true
		}
	}
	return false
}

// Event returns the event produced by the last successful Scan.
func (sc *EventScanner) Event() SSEEvent { return sc.ev }

// Err returns the first read error encountered, if any.
func (sc *EventScanner) Err() error { return sc.s.Err() }
