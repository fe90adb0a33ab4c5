// Package conditions evaluates workflow condition clauses against trigger payloads.
package conditions

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/models"
)

// Evaluate reports whether every condition holds against the input payload.
// Conditions are ANDed and evaluation short-circuits on the first failing
// clause; an empty list is vacuously true. The function is pure.
func Evaluate(conds []models.WorkflowCondition, input map[string]any) bool {
	for _, cond := range conds {
		if !evaluateOne(cond, input) {
			return false
		}
	}

	return true
}

func evaluateOne(cond models.WorkflowCondition, input map[string]any) bool {
	value, found := resolve(input, cond.Field)

	switch cond.Operator {
	case models.OperatorEquals:
		return found && equal(value, cond.Value)
	case models.OperatorNotEquals:
		return !found || !equal(value, cond.Value)
	case models.OperatorGreaterThan:
		c, ok := compare(value, cond.Value)

		return found && ok && c > 0
	case models.OperatorLessThan:
		c, ok := compare(value, cond.Value)

		return found && ok && c < 0
	case models.OperatorContains:
		return found && strings.Contains(stringify(value), stringify(cond.Value))
	case models.OperatorExists:
		return found && value != nil
	default:
		// Unknown operators never match, so a malformed clause disables its
		// workflow instead of running it on bad premises.
		return false
	}
}

// resolve walks a dotted path into the payload. A missing key at any level
// reports not-found; only map levels are traversed.
func resolve(input map[string]any, field string) (any, bool) {
	if field == "" {
		return nil, false
	}

	var current any = input

	for _, part := range strings.Split(field, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}

		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}

	return current, true
}

// equal is strict equality with one allowance: numeric kinds compare by value,
// since payloads decoded from JSON carry float64 where stored conditions may
// hold int.
func equal(a, b any) bool {
	if af, ok := toFloat(a); ok {
		bf, ok := toFloat(b)

		return ok && af == bf
	}

	return reflect.DeepEqual(a, b)
}

// compare orders two values when both are numbers or both are strings.
// Anything else is incomparable and the clause evaluates false.
func compare(a, b any) (int, bool) {
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			switch {
			case af < bf:
				return -1, true
			case af > bf:
				return 1, true
			default:
				return 0, true
			}
		}

		return 0, false
	}

	as, aok := a.(string)
	bs, bok := b.(string)

	if aok && bok {
		return strings.Compare(as, bs), true
	}

	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	return fmt.Sprint(v)
}
