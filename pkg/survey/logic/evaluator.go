package logic

import (
	"fmt"
	"strconv"
	"strings"

	surveyTypes "github.com/sebasbeleno/nexus-backend/pkg/survey/types"
)

// ShouldShow decides whether the question is currently visible given the
// collected answers (questionId -> value). The result gates both rendering
// and participation in validation for the current step.
//
// A question with no conditional logic, or a disabled block, or an enabled
// block without conditions, is always visible. Otherwise each condition is
// evaluated against the trigger question's answer and the results are
// combined with the block's AND/OR logic. An unanswered trigger satisfies no
// operator except isEmpty, so conditional questions cannot appear before
// their trigger has been answered. Self-referential conditions are never
// satisfied. Evaluation is total; malformed conditions degrade to false
// rather than erroring.
func ShouldShow(question surveyTypes.Question, answers map[string]interface{}) bool {
	cl := question.ConditionalLogic
	if !cl.IsActive() {
		return true
	}

	ctx := evalContext{answers: answers, ownID: question.ID}

	if cl.Logic == surveyTypes.CONDITIONAL_LOGIC_OR {
		for _, cond := range cl.Conditions {
			if ctx.evalCondition(cond) {
				return true
			}
		}
		return false
	}

	// AND is the default for any other logic value.
	for _, cond := range cl.Conditions {
		if !ctx.evalCondition(cond) {
			return false
		}
	}
	return true
}

type evalContext struct {
	answers map[string]interface{}
	ownID   string
}

func (ctx evalContext) evalCondition(cond surveyTypes.Condition) bool {
	if cond.QuestionID == ctx.ownID {
		return false
	}

	trigger, answered := ctx.answers[cond.QuestionID]
	if !answered {
		trigger = nil
	}

	switch cond.Operator {
	case surveyTypes.CONDITION_OPERATOR_IS_EMPTY:
		return isEmptyValue(trigger)
	case surveyTypes.CONDITION_OPERATOR_IS_NOT_EMPTY:
		return !isEmptyValue(trigger)
	}

	// Every remaining operator needs an answered trigger.
	if !answered || trigger == nil {
		return false
	}

	switch cond.Operator {
	case surveyTypes.CONDITION_OPERATOR_EQUALS:
		return strictEquals(trigger, cond.Value)
	case surveyTypes.CONDITION_OPERATOR_NOT_EQUALS:
		return !strictEquals(trigger, cond.Value)
	case surveyTypes.CONDITION_OPERATOR_GREATER_THAN:
		return compareNumeric(trigger, cond.Value, func(a, b float64) bool { return a > b })
	case surveyTypes.CONDITION_OPERATOR_LESS_THAN:
		return compareNumeric(trigger, cond.Value, func(a, b float64) bool { return a < b })
	case surveyTypes.CONDITION_OPERATOR_CONTAINS:
		return containsValue(trigger, cond.Value)
	}
	return false
}

// strictEquals compares two answer values after numeric normalization.
// Sequences never compare equal (reference semantics in the editor UI).
func strictEquals(a interface{}, b interface{}) bool {
	if aNum, ok := toFloat(a); ok {
		bNum, ok := toFloat(b)
		return ok && aNum == bNum
	}
	switch aVal := a.(type) {
	case string:
		bVal, ok := b.(string)
		return ok && aVal == bVal
	case bool:
		bVal, ok := b.(bool)
		return ok && aVal == bVal
	}
	return false
}

func compareNumeric(a interface{}, b interface{}, cmp func(a, b float64) bool) bool {
	aNum, okA := coerceFloat(a)
	bNum, okB := coerceFloat(b)
	if !okA || !okB {
		return false
	}
	return cmp(aNum, bNum)
}

func containsValue(trigger interface{}, value interface{}) bool {
	switch seq := trigger.(type) {
	case []interface{}:
		for _, item := range seq {
			if strictEquals(item, value) {
				return true
			}
		}
		return false
	case []string:
		needle := stringForm(value)
		for _, item := range seq {
			if item == needle {
				return true
			}
		}
		return false
	}
	return strings.Contains(stringForm(trigger), stringForm(value))
}

func isEmptyValue(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []interface{}:
		return len(val) == 0
	case []string:
		return len(val) == 0
	}
	return false
}

// toFloat accepts only genuinely numeric values.
func toFloat(v interface{}) (float64, bool) {
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
	}
	return 0, false
}

// coerceFloat additionally parses numeric strings, for ordered comparisons on
// values that arrive as text input.
func coerceFloat(v interface{}) (float64, bool) {
	if n, ok := toFloat(v); ok {
		return n, true
	}
	if s, ok := v.(string); ok {
		n, err := strconv.ParseFloat(s, 64)
		if err == nil {
			return n, true
		}
	}
	return 0, false
}

func stringForm(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	if n, ok := toFloat(v); ok {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
