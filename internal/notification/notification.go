// Package notification abstracts the outbound SMS channel used for OTP
// delivery.
package notification

import (
	"context"
	"log/slog"
)

// Message describes an outbound SMS.
type Message struct {
	To   string
	Body string
}

// Notifier delivers messages over an external channel.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier is a stub channel that writes messages to the logger instead
// of an SMS gateway. Used in development and tests.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier stub.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("sms", "to", message.To, "body", message.Body)
	return nil
}
