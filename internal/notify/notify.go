// Package notify implements the notification sink: an AMQP publisher
// used by the facade's over-limit checks, the matching consumer used by
// the delivery worker, and a slog fallback for setups without a broker.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// Message is the wire format published to the notification queue.
type Message struct {
	Recipient string    `json:"recipient"`
	Body      string    `json:"body"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage stamps a notification with the current time.
func NewMessage(recipient, body string) *Message {
	return &Message{
		Recipient: recipient,
		Body:      body,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// MessageFromJSON parses a message from JSON bytes.
func MessageFromJSON(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// LogNotifier writes notifications to the structured log. It stands in
// for the broker in the memory backend and in tests.
type LogNotifier struct{}

func (LogNotifier) Send(ctx context.Context, recipient, message string) error {
	slog.InfoContext(ctx, "Notification", "recipient", recipient, "message", message)
	return nil
}
