package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/models"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/persistence"
)

// Actor identifies who performed an audited operation. A zero Actor records a
// system-initiated change.
type Actor struct {
	UserID    string
	UserEmail string
	IPAddress string
	UserAgent string
}

// AuditService records and queries the audit trail. Recording failures are
// logged, never propagated; an audit hiccup must not fail the operation it
// describes.
type AuditService struct {
	persistence persistence.Persistence
	logger      *slog.Logger
}

func NewAuditService(store persistence.Persistence, logger *slog.Logger) *AuditService {
	return &AuditService{persistence: store, logger: logger}
}

func (s *AuditService) Record(ctx context.Context, actor Actor, action models.AuditAction, severity models.AuditSeverity, resource, resourceID string, details map[string]any) {
	entry := &models.AuditEntry{
		ID:         uuid.New().String(),
		UserID:     actor.UserID,
		UserEmail:  actor.UserEmail,
		Action:     action,
		Severity:   severity,
		Resource:   resource,
		ResourceID: resourceID,
		Details:    details,
		IPAddress:  actor.IPAddress,
		UserAgent:  actor.UserAgent,
		Timestamp:  time.Now().UTC(),
	}

	err := s.persistence.AuditLogs().Append(ctx, entry)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to record audit entry",
			"action", action,
			"resource", resource,
			"resource_id", resourceID,
			"error", err,
		)
	}
}

func (s *AuditService) List(ctx context.Context, filter persistence.AuditFilter) ([]*models.AuditEntry, error) {
	entries, err := s.persistence.AuditLogs().List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}

	return entries, nil
}

// AuditStats aggregates the trail for the admin dashboard.
type AuditStats struct {
	Total      int64            `json:"total"`
	ByAction   map[string]int64 `json:"by_action"`
	BySeverity map[string]int64 `json:"by_severity"`
}

func (s *AuditService) Stats(ctx context.Context, since time.Time) (*AuditStats, error) {
	entries, err := s.persistence.AuditLogs().List(ctx, persistence.AuditFilter{Since: since})
	if err != nil {
		return nil, fmt.Errorf("failed to load audit logs for stats: %w", err)
	}

	stats := &AuditStats{
		ByAction:   make(map[string]int64),
		BySeverity: make(map[string]int64),
	}

	for _, entry := range entries {
		stats.Total++
		stats.ByAction[string(entry.Action)]++
		stats.BySeverity[string(entry.Severity)]++
	}

	return stats, nil
}
