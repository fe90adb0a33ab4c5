package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/models"
)

// ExecutionRepository stores workflow execution records.
type ExecutionRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewExecutionRepository creates a new execution repository.
func NewExecutionRepository(db *sql.DB, logger *slog.Logger) *ExecutionRepository {
	return &ExecutionRepository{db: db, logger: logger}
}

const executionColumns = `
	id
  , workflow_id
  , trigger
  , status
  , started_at
  , completed_at
  , input
  , output
  , error
`

// Save upserts an execution record.
func (r *ExecutionRepository) Save(ctx context.Context, execution *models.WorkflowExecution) error {
	inputJSON, err := json.Marshal(execution.Input)
	if err != nil {
		return fmt.Errorf("failed to marshal input: %w", err)
	}

	var outputJSON []byte
	if execution.Output != nil {
		outputJSON, err = json.Marshal(execution.Output)
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
	}

	query := `
		INSERT INTO workflow_executions (id, workflow_id, trigger, status,
			started_at, completed_at, input, output, error)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			completed_at = EXCLUDED.completed_at,
			output = EXCLUDED.output,
			error = EXCLUDED.error
	`

	_, err = r.db.ExecContext(ctx, query,
		execution.ID,
		execution.WorkflowID,
		execution.Trigger,
		execution.Status,
		execution.StartedAt,
		execution.CompletedAt,
		inputJSON,
		outputJSON,
		execution.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to save execution: %w", err)
	}

	return nil
}

// GetByID retrieves an execution record, nil when absent.
func (r *ExecutionRepository) GetByID(ctx context.Context, id string) (*models.WorkflowExecution, error) {
	query := fmt.Sprintf("SELECT %s FROM workflow_executions WHERE id = $1", executionColumns)

	execution, err := scanExecution(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to scan execution: %w", err)
	}

	return execution, nil
}

// ListByWorkflow returns a workflow's executions, newest first.
func (r *ExecutionRepository) ListByWorkflow(ctx context.Context, workflowID string, limit int) ([]*models.WorkflowExecution, error) {
	query := fmt.Sprintf("SELECT %s FROM workflow_executions WHERE workflow_id = $1 ORDER BY started_at DESC", executionColumns)
	args := []any{workflowID}

	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query executions: %w", err)
	}

	defer func() {
		err := rows.Close()
		if err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	executions := make([]*models.WorkflowExecution, 0)

	for rows.Next() {
		execution, err := scanExecution(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan execution: %w", err)
		}

		executions = append(executions, execution)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating executions: %w", err)
	}

	return executions, nil
}

func scanExecution(row rowScanner) (*models.WorkflowExecution, error) {
	var (
		execution   models.WorkflowExecution
		completedAt sql.NullTime
		inputJSON   []byte
		outputJSON  []byte
	)

	err := row.Scan(
		&execution.ID,
		&execution.WorkflowID,
		&execution.Trigger,
		&execution.Status,
		&execution.StartedAt,
		&completedAt,
		&inputJSON,
		&outputJSON,
		&execution.Error,
	)
	if err != nil {
		return nil, err
	}

	if completedAt.Valid {
		execution.CompletedAt = &completedAt.Time
	}

	err = json.Unmarshal(inputJSON, &execution.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal input: %w", err)
	}

	if len(outputJSON) > 0 {
		err = json.Unmarshal(outputJSON, &execution.Output)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal output: %w", err)
		}
	}

	return &execution, nil
}
