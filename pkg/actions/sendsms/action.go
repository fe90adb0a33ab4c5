// Package sendsms implements the send_sms workflow action.
package sendsms

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/models"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/protocol"
)

// Sender delivers outbound SMS messages. The default implementation only
// logs; a gateway client is injected at wiring time.
type Sender interface {
	Send(ctx context.Context, to, message string) error
}

// LogSender writes the intended delivery to the log instead of sending.
type LogSender struct {
	Logger *slog.Logger
}

func (s *LogSender) Send(ctx context.Context, to, message string) error {
	s.Logger.InfoContext(ctx, "SMS delivery requested", "to", to, "message", message)

	return nil
}

type Factory struct {
	sender Sender
}

func NewFactory(sender Sender) *Factory {
	return &Factory{sender: sender}
}

func (*Factory) ID() string {
	return "send_sms"
}

func (*Factory) Schema() *models.JSONSchema {
	return &models.JSONSchema{
		Type: "object",
		Properties: map[string]*models.Property{
			"to":      {Type: "string"},
			"message": {Type: "string"},
		},
		Required: []string{"to", "message"},
	}
}

func (f *Factory) Create(params map[string]any) (protocol.Action, error) {
	to, _ := params["to"].(string)
	message, _ := params["message"].(string)

	if to == "" || message == "" {
		return nil, fmt.Errorf("send_sms requires to and message")
	}

	return &Action{sender: f.sender, to: to, message: message}, nil
}

type Action struct {
	sender  Sender
	to      string
	message string
}

func (a *Action) Execute(ctx context.Context, _ models.ExecutionContext, _ *slog.Logger) (any, error) {
	err := a.sender.Send(ctx, a.to, a.message)
	if err != nil {
		return nil, fmt.Errorf("failed to send sms: %w", err)
	}

	return map[string]any{"to": a.to}, nil
}
