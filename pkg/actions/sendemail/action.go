// Package sendemail implements the send_email workflow action.
package sendemail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/models"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/protocol"
)

// Mailer delivers outbound email. The default implementation only logs; a
// real delivery backend is injected at wiring time.
type Mailer interface {
	Send(ctx context.Context, to, subject, template string, data map[string]any) error
}

// LogMailer writes the intended delivery to the log instead of sending.
type LogMailer struct {
	Logger *slog.Logger
}

func (m *LogMailer) Send(ctx context.Context, to, subject, template string, _ map[string]any) error {
	m.Logger.InfoContext(ctx, "Email delivery requested",
		"to", to,
		"subject", subject,
		"template", template,
	)

	return nil
}

type Factory struct {
	mailer Mailer
}

func NewFactory(mailer Mailer) *Factory {
	return &Factory{mailer: mailer}
}

func (*Factory) ID() string {
	return "send_email"
}

func (*Factory) Schema() *models.JSONSchema {
	return &models.JSONSchema{
		Type: "object",
		Properties: map[string]*models.Property{
			"to":       {Type: "string"},
			"subject":  {Type: "string"},
			"template": {Type: "string"},
		},
		Required: []string{"to", "subject"},
	}
}

func (f *Factory) Create(params map[string]any) (protocol.Action, error) {
	to, _ := params["to"].(string)
	subject, _ := params["subject"].(string)

	if to == "" || subject == "" {
		return nil, fmt.Errorf("send_email requires to and subject")
	}

	template, _ := params["template"].(string)

	return &Action{
		mailer:   f.mailer,
		to:       to,
		subject:  subject,
		template: template,
	}, nil
}

type Action struct {
	mailer   Mailer
	to       string
	subject  string
	template string
}

func (a *Action) Execute(ctx context.Context, executionCtx models.ExecutionContext, _ *slog.Logger) (any, error) {
	err := a.mailer.Send(ctx, a.to, a.subject, a.template, executionCtx.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to send email: %w", err)
	}

	return map[string]any{
		"to":      a.to,
		"subject": a.subject,
	}, nil
}
