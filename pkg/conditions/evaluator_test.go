package conditions_test

import (
	"testing"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/conditions"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestEvaluate_EmptyConditions(t *testing.T) {
	t.Parallel()

	inputs := []map[string]any{
		nil,
		{},
		{"status": "active", "amount": 500.0},
	}

	for _, input := range inputs {
		assert.True(t, conditions.Evaluate(nil, input))
		assert.True(t, conditions.Evaluate([]models.WorkflowCondition{}, input))
	}
}

func TestEvaluate_AndSemantics(t *testing.T) {
	t.Parallel()

	conds := []models.WorkflowCondition{
		{Field: "status", Operator: models.OperatorEquals, Value: "active"},
		{Field: "amount", Operator: models.OperatorGreaterThan, Value: 100},
	}

	assert.True(t, conditions.Evaluate(conds, map[string]any{"status": "active", "amount": 500.0}))
	assert.False(t, conditions.Evaluate(conds, map[string]any{"status": "active", "amount": 50.0}))
	assert.False(t, conditions.Evaluate(conds, map[string]any{"status": "passive", "amount": 500.0}))
}

func TestEvaluate_Operators(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cond  models.WorkflowCondition
		input map[string]any
		want  bool
	}{
		{
			name:  "equals matches same string",
			cond:  models.WorkflowCondition{Field: "status", Operator: models.OperatorEquals, Value: "active"},
			input: map[string]any{"status": "active"},
			want:  true,
		},
		{
			name:  "equals does not coerce string to number",
			cond:  models.WorkflowCondition{Field: "amount", Operator: models.OperatorEquals, Value: 100},
			input: map[string]any{"amount": "100"},
			want:  false,
		},
		{
			name:  "equals treats int and float as one number type",
			cond:  models.WorkflowCondition{Field: "amount", Operator: models.OperatorEquals, Value: 100},
			input: map[string]any{"amount": 100.0},
			want:  true,
		},
		{
			name:  "equals on missing field",
			cond:  models.WorkflowCondition{Field: "nonexistent", Operator: models.OperatorEquals, Value: "x"},
			input: map[string]any{},
			want:  false,
		},
		{
			name:  "equals nil value against missing field stays false",
			cond:  models.WorkflowCondition{Field: "nonexistent", Operator: models.OperatorEquals, Value: nil},
			input: map[string]any{},
			want:  false,
		},
		{
			name:  "not_equals on missing field",
			cond:  models.WorkflowCondition{Field: "nonexistent", Operator: models.OperatorNotEquals, Value: "x"},
			input: map[string]any{},
			want:  true,
		},
		{
			name:  "greater_than numeric",
			cond:  models.WorkflowCondition{Field: "amount", Operator: models.OperatorGreaterThan, Value: 100},
			input: map[string]any{"amount": 500.0},
			want:  true,
		},
		{
			name:  "greater_than fails on equal values",
			cond:  models.WorkflowCondition{Field: "amount", Operator: models.OperatorGreaterThan, Value: 100},
			input: map[string]any{"amount": 100.0},
			want:  false,
		},
		{
			name:  "less_than numeric",
			cond:  models.WorkflowCondition{Field: "days_until_due", Operator: models.OperatorLessThan, Value: 2},
			input: map[string]any{"days_until_due": 1.0},
			want:  true,
		},
		{
			name:  "less_than incomparable operands",
			cond:  models.WorkflowCondition{Field: "amount", Operator: models.OperatorLessThan, Value: 100},
			input: map[string]any{"amount": map[string]any{"currency": "TRY"}},
			want:  false,
		},
		{
			name:  "greater_than string ordering",
			cond:  models.WorkflowCondition{Field: "name", Operator: models.OperatorGreaterThan, Value: "a"},
			input: map[string]any{"name": "b"},
			want:  true,
		},
		{
			name:  "contains substring",
			cond:  models.WorkflowCondition{Field: "email", Operator: models.OperatorContains, Value: "@dernek.org"},
			input: map[string]any{"email": "yardim@dernek.org"},
			want:  true,
		},
		{
			name:  "contains stringifies non-string operands",
			cond:  models.WorkflowCondition{Field: "amount", Operator: models.OperatorContains, Value: 50},
			input: map[string]any{"amount": 1500.0},
			want:  true,
		},
		{
			name:  "exists with present value",
			cond:  models.WorkflowCondition{Field: "email", Operator: models.OperatorExists},
			input: map[string]any{"email": "a@b.com"},
			want:  true,
		},
		{
			name:  "exists with missing field",
			cond:  models.WorkflowCondition{Field: "email", Operator: models.OperatorExists},
			input: map[string]any{},
			want:  false,
		},
		{
			name:  "exists with explicit nil",
			cond:  models.WorkflowCondition{Field: "email", Operator: models.OperatorExists},
			input: map[string]any{"email": nil},
			want:  false,
		},
		{
			name:  "dotted path resolves nested maps",
			cond:  models.WorkflowCondition{Field: "donor.city", Operator: models.OperatorEquals, Value: "Kayseri"},
			input: map[string]any{"donor": map[string]any{"city": "Kayseri"}},
			want:  true,
		},
		{
			name:  "dotted path with missing root",
			cond:  models.WorkflowCondition{Field: "donor.city", Operator: models.OperatorEquals, Value: "Kayseri"},
			input: map[string]any{},
			want:  false,
		},
		{
			name:  "unknown operator never matches",
			cond:  models.WorkflowCondition{Field: "status", Operator: "matches_regex", Value: ".*"},
			input: map[string]any{"status": "active"},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := conditions.Evaluate([]models.WorkflowCondition{tt.cond}, tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}
