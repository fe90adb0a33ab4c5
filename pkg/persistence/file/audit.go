package file

import (
	"context"
	"sort"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/models"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/persistence"
)

// AuditRepository stores audit entries, append-only.
type AuditRepository struct {
	records *collection[models.AuditEntry]
}

func NewAuditRepository(root string) *AuditRepository {
	return &AuditRepository{records: newCollection[models.AuditEntry](root, "audit_logs")}
}

func (ar *AuditRepository) Append(_ context.Context, entry *models.AuditEntry) error {
	return ar.records.save(entry.ID, entry)
}

func (ar *AuditRepository) List(_ context.Context, filter persistence.AuditFilter) ([]*models.AuditEntry, error) {
	all, err := ar.records.list()
	if err != nil {
		return nil, err
	}

	entries := make([]*models.AuditEntry, 0, len(all))

	for _, entry := range all {
		if filter.UserID != "" && entry.UserID != filter.UserID {
			continue
		}

		if filter.Action != "" && entry.Action != filter.Action {
			continue
		}

		if filter.Severity != "" && entry.Severity != filter.Severity {
			continue
		}

		if filter.Resource != "" && entry.Resource != filter.Resource {
			continue
		}

		if !filter.Since.IsZero() && entry.Timestamp.Before(filter.Since) {
			continue
		}

		if !filter.Until.IsZero() && entry.Timestamp.After(filter.Until) {
			continue
		}

		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	if filter.Limit > 0 && len(entries) > filter.Limit {
		entries = entries[:filter.Limit]
	}

	return entries, nil
}
