// Package generatereport implements the generate_report workflow action.
package generatereport

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/models"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/protocol"
)

// Builder produces a report for the given type and format. The reporting
// service implements this; the default implementation only logs the request.
type Builder interface {
	Build(ctx context.Context, reportType, format string, filters map[string]any) (any, error)
}

// LogBuilder records the requested report in the log and returns its
// parameters as the result.
type LogBuilder struct {
	Logger *slog.Logger
}

func (b *LogBuilder) Build(ctx context.Context, reportType, format string, filters map[string]any) (any, error) {
	b.Logger.InfoContext(ctx, "Report requested",
		"report_type", reportType,
		"format", format,
		"filters", filters,
	)

	return map[string]any{
		"report_type": reportType,
		"format":      format,
	}, nil
}

type Factory struct {
	builder Builder
}

func NewFactory(builder Builder) *Factory {
	return &Factory{builder: builder}
}

func (*Factory) ID() string {
	return "generate_report"
}

func (*Factory) Schema() *models.JSONSchema {
	return &models.JSONSchema{
		Type: "object",
		Properties: map[string]*models.Property{
			"report_type": {Type: "string"},
			"format": {
				Type:    "string",
				Enum:    []any{"json", "csv", "pdf"},
				Default: "json",
			},
			"filters": {Type: "object"},
		},
		Required: []string{"report_type"},
	}
}

func (f *Factory) Create(params map[string]any) (protocol.Action, error) {
	reportType, _ := params["report_type"].(string)
	if reportType == "" {
		return nil, fmt.Errorf("generate_report requires a report_type")
	}

	format, _ := params["format"].(string)
	if format == "" {
		format = "json"
	}

	filters, _ := params["filters"].(map[string]any)

	return &Action{
		builder:    f.builder,
		reportType: reportType,
		format:     format,
		filters:    filters,
	}, nil
}

type Action struct {
	builder    Builder
	reportType string
	format     string
	filters    map[string]any
}

func (a *Action) Execute(ctx context.Context, _ models.ExecutionContext, _ *slog.Logger) (any, error) {
	report, err := a.builder.Build(ctx, a.reportType, a.format, a.filters)
	if err != nil {
		return nil, fmt.Errorf("failed to generate report: %w", err)
	}

	return report, nil
}
