package postgresql

func migrations() map[int]string {
	return map[int]string{
		1: `
			CREATE TABLE workflows (
				id UUID PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				trigger VARCHAR(100) NOT NULL,
				conditions JSONB NOT NULL DEFAULT '[]',
				actions JSONB NOT NULL DEFAULT '[]',
				status VARCHAR(50) NOT NULL CHECK (status IN ('active', 'inactive', 'draft', 'testing')),
				created_by VARCHAR(255) NOT NULL DEFAULT '',
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL,
				execution_count BIGINT NOT NULL DEFAULT 0,
				last_executed TIMESTAMP WITH TIME ZONE,
				is_enabled BOOLEAN NOT NULL DEFAULT true
			);

			CREATE INDEX idx_workflows_status ON workflows(status);
			CREATE INDEX idx_workflows_trigger ON workflows(trigger);
			CREATE INDEX idx_workflows_created_at ON workflows(created_at);

			CREATE TABLE workflow_executions (
				id UUID PRIMARY KEY,
				workflow_id UUID NOT NULL,
				trigger VARCHAR(100) NOT NULL,
				status VARCHAR(50) NOT NULL,
				started_at TIMESTAMP WITH TIME ZONE NOT NULL,
				completed_at TIMESTAMP WITH TIME ZONE,
				input JSONB NOT NULL DEFAULT '{}',
				output JSONB,
				error TEXT NOT NULL DEFAULT ''
			);

			CREATE INDEX idx_workflow_executions_workflow_id ON workflow_executions(workflow_id);
			CREATE INDEX idx_workflow_executions_started_at ON workflow_executions(started_at);
			CREATE INDEX idx_workflow_executions_status ON workflow_executions(status);
		`,
		2: `
			CREATE TABLE tasks (
				id UUID PRIMARY KEY,
				doc JSONB NOT NULL,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			);

			CREATE TABLE meetings (
				id UUID PRIMARY KEY,
				doc JSONB NOT NULL,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			);

			CREATE TABLE aid_applications (
				id UUID PRIMARY KEY,
				doc JSONB NOT NULL,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			);

			CREATE TABLE notifications (
				id UUID PRIMARY KEY,
				user_id VARCHAR(255) NOT NULL,
				is_read BOOLEAN NOT NULL DEFAULT false,
				doc JSONB NOT NULL,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_notifications_user_id ON notifications(user_id);
			CREATE INDEX idx_notifications_is_read ON notifications(is_read);
		`,
		3: `
			CREATE TABLE audit_logs (
				id UUID PRIMARY KEY,
				user_id VARCHAR(255) NOT NULL DEFAULT '',
				user_email VARCHAR(255) NOT NULL DEFAULT '',
				action VARCHAR(100) NOT NULL,
				severity VARCHAR(50) NOT NULL,
				resource VARCHAR(100) NOT NULL DEFAULT '',
				resource_id VARCHAR(255) NOT NULL DEFAULT '',
				details JSONB,
				ip_address VARCHAR(100) NOT NULL DEFAULT '',
				user_agent TEXT NOT NULL DEFAULT '',
				timestamp TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_audit_logs_user_id ON audit_logs(user_id);
			CREATE INDEX idx_audit_logs_action ON audit_logs(action);
			CREATE INDEX idx_audit_logs_severity ON audit_logs(severity);
			CREATE INDEX idx_audit_logs_timestamp ON audit_logs(timestamp);
		`,
	}
}
