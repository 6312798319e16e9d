package notification

import (
	"context"

	"go.uber.org/zap"
)

// Message is an outbound email.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Mailer delivers messages. The default implementation only logs; real
// delivery is an operational concern wired in at the edge.
type Mailer interface {
	Send(ctx context.Context, m Message) error
}

// LogMailer writes messages to the process log instead of delivering them.
type LogMailer struct {
	log *zap.Logger
}

// NewLogMailer returns a Mailer that logs deliveries.
func NewLogMailer(log *zap.Logger) *LogMailer {
	return &LogMailer{log: log}
}

var _ Mailer = (*LogMailer)(nil)

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.log.Info("Email dispatched",
		zap.String("from", msg.From),
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}
