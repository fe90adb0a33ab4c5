package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/models"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/persistence"
)

// AuditRepository stores audit entries, append-only.
type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Append(ctx context.Context, entry *models.AuditEntry) error {
	var detailsJSON []byte

	if entry.Details != nil {
		var err error

		detailsJSON, err = json.Marshal(entry.Details)
		if err != nil {
			return fmt.Errorf("failed to marshal audit details: %w", err)
		}
	}

	query := `
		INSERT INTO audit_logs (id, user_id, user_email, action, severity,
			resource, resource_id, details, ip_address, user_agent, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.UserID,
		entry.UserEmail,
		entry.Action,
		entry.Severity,
		entry.Resource,
		entry.ResourceID,
		detailsJSON,
		entry.IPAddress,
		entry.UserAgent,
		entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}

	return nil
}

func (r *AuditRepository) List(ctx context.Context, filter persistence.AuditFilter) ([]*models.AuditEntry, error) {
	query := `
		SELECT
			id
		  , user_id
		  , user_email
		  , action
		  , severity
		  , resource
		  , resource_id
		  , details
		  , ip_address
		  , user_agent
		  , timestamp
		FROM audit_logs
		WHERE 1=1
	`

	args := make([]any, 0, 7)

	if filter.UserID != "" {
		args = append(args, filter.UserID)
		query += fmt.Sprintf(" AND user_id = $%d", len(args))
	}

	if filter.Action != "" {
		args = append(args, string(filter.Action))
		query += fmt.Sprintf(" AND action = $%d", len(args))
	}

	if filter.Severity != "" {
		args = append(args, string(filter.Severity))
		query += fmt.Sprintf(" AND severity = $%d", len(args))
	}

	if filter.Resource != "" {
		args = append(args, filter.Resource)
		query += fmt.Sprintf(" AND resource = $%d", len(args))
	}

	if !filter.Since.IsZero() {
		args = append(args, filter.Since)
		query += fmt.Sprintf(" AND timestamp >= $%d", len(args))
	}

	if !filter.Until.IsZero() {
		args = append(args, filter.Until)
		query += fmt.Sprintf(" AND timestamp <= $%d", len(args))
	}

	query += " ORDER BY timestamp DESC"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}

	defer func() { _ = rows.Close() }()

	entries := make([]*models.AuditEntry, 0)

	for rows.Next() {
		var (
			entry       models.AuditEntry
			detailsJSON []byte
		)

		err = rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.UserEmail,
			&entry.Action,
			&entry.Severity,
			&entry.Resource,
			&entry.ResourceID,
			&detailsJSON,
			&entry.IPAddress,
			&entry.UserAgent,
			&entry.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}

		if len(detailsJSON) > 0 {
			err = json.Unmarshal(detailsJSON, &entry.Details)
			if err != nil {
				return nil, fmt.Errorf("failed to unmarshal audit details: %w", err)
			}
		}

		entries = append(entries, &entry)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating audit logs: %w", err)
	}

	return entries, nil
}
