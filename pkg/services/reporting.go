package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/cache"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/persistence"
)

const summaryCacheKey = "reports:summary"

// SummaryReport is the dashboard aggregate over workflows, executions and
// tasks.
type SummaryReport struct {
	WorkflowsByStatus  map[string]int64 `json:"workflows_by_status"`
	ExecutionsTotal    int64            `json:"executions_total"`
	ExecutionsByStatus map[string]int64 `json:"executions_by_status"`
	TasksByStatus      map[string]int64 `json:"tasks_by_status"`
}

// ReportingService aggregates summary reports, with Redis caching when a
// cache is configured. It also backs the generate_report workflow action.
type ReportingService struct {
	persistence persistence.Persistence
	cache       *cache.Cache
	logger      *slog.Logger
}

// NewReportingService creates a reporting service. cache may be nil; every
// request then computes live.
func NewReportingService(store persistence.Persistence, reportCache *cache.Cache, logger *slog.Logger) *ReportingService {
	return &ReportingService{persistence: store, cache: reportCache, logger: logger}
}

// Summary returns the aggregate report, served from cache when fresh. Cache
// failures fall through to live aggregation.
func (s *ReportingService) Summary(ctx context.Context) (*SummaryReport, error) {
	if s.cache != nil {
		var cached SummaryReport

		hit, err := s.cache.Get(ctx, summaryCacheKey, &cached)
		if err != nil {
			s.logger.WarnContext(ctx, "Report cache read failed", "error", err)
		} else if hit {
			return &cached, nil
		}
	}

	report, err := s.aggregate(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		err = s.cache.Set(ctx, summaryCacheKey, report)
		if err != nil {
			s.logger.WarnContext(ctx, "Report cache write failed", "error", err)
		}
	}

	return report, nil
}

// Build implements the generate_report action's builder contract.
func (s *ReportingService) Build(ctx context.Context, reportType, format string, filters map[string]any) (any, error) {
	switch reportType {
	case "summary":
		report, err := s.Summary(ctx)
		if err != nil {
			return nil, err
		}

		return map[string]any{
			"report_type": reportType,
			"format":      format,
			"report":      report,
		}, nil
	default:
		return nil, fmt.Errorf("unknown report type: %s", reportType)
	}
}

func (s *ReportingService) aggregate(ctx context.Context) (*SummaryReport, error) {
	report := &SummaryReport{
		WorkflowsByStatus:  make(map[string]int64),
		ExecutionsByStatus: make(map[string]int64),
		TasksByStatus:      make(map[string]int64),
	}

	offset := 0

	for {
		page, err := s.persistence.Workflows().List(ctx, persistence.ListWorkflowsOptions{Limit: 100, Offset: offset})
		if err != nil {
			return nil, fmt.Errorf("failed to list workflows for report: %w", err)
		}

		for _, workflow := range page.Workflows {
			report.WorkflowsByStatus[string(workflow.Status)]++

			executions, err := s.persistence.Executions().ListByWorkflow(ctx, workflow.ID, 0)
			if err != nil {
				return nil, fmt.Errorf("failed to list executions for report: %w", err)
			}

			for _, execution := range executions {
				report.ExecutionsTotal++
				report.ExecutionsByStatus[string(execution.Status)]++
			}
		}

		if !page.HasNextPage {
			break
		}

		offset += len(page.Workflows)
	}

	tasks, err := s.persistence.Tasks().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks for report: %w", err)
	}

	for _, task := range tasks {
		report.TasksByStatus[string(task.Status)]++
	}

	return report, nil
}
