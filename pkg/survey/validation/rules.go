package validation

import (
	"fmt"
	"regexp"
	"strconv"

	surveyTypes "github.com/sebasbeleno/nexus-backend/pkg/survey/types"
)

type fieldKind int

const (
	kindString fieldKind = iota
	kindNumber
	kindMulti
)

// baseKindFor maps a question variant to its base rule shape.
func baseKindFor(questionType string) fieldKind {
	switch questionType {
	case surveyTypes.QUESTION_TYPE_NUMBER:
		return kindNumber
	case surveyTypes.QUESTION_TYPE_MULTISELECT, surveyTypes.QUESTION_TYPE_CHECKBOX:
		return kindMulti
	default:
		// text, date, time, select, radio
		return kindString
	}
}

// fieldValue is an answer normalized to its field's base kind.
type fieldValue struct {
	present bool
	str     string
	num     float64
	items   []string
}

func normalizeValue(kind fieldKind, raw interface{}, answered bool) fieldValue {
	if !answered || raw == nil {
		return fieldValue{}
	}
	switch kind {
	case kindNumber:
		if n, ok := coerceNumber(raw); ok {
			return fieldValue{present: true, num: n}
		}
		return fieldValue{}
	case kindMulti:
		items := toStringSlice(raw)
		return fieldValue{present: len(items) > 0, items: items}
	default:
		s := toString(raw)
		return fieldValue{present: s != "", str: s}
	}
}

func coerceNumber(v interface{}) (float64, bool) {
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
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err == nil {
			return parsed, true
		}
	}
	return 0, false
}

// toStringSlice accepts answers arriving either as typed slices or as
// decoded JSON ([]interface{}). Anything else yields the empty sequence.
func toStringSlice(v interface{}) []string {
	switch seq := v.(type) {
	case []string:
		return seq
	case []interface{}:
		items := make([]string, 0, len(seq))
		for _, item := range seq {
			items = append(items, toString(item))
		}
		return items
	}
	return []string{}
}

func toString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ruleCheck runs against a present value; absent values are handled by the
// required rule alone.
type ruleCheck struct {
	message string
	passes  func(v fieldValue) bool
}

const (
	defaultRequiredMessage = "Este campo es obligatorio"
	defaultEmailMessage    = "Debe ser un correo electrónico válido"
)

func defaultMessageFor(ruleType string, value float64) string {
	switch ruleType {
	case surveyTypes.VALIDATION_RULE_REQUIRED:
		return defaultRequiredMessage
	case surveyTypes.VALIDATION_RULE_MIN_LENGTH:
		return fmt.Sprintf("Debe tener al menos %d caracteres", int(value))
	case surveyTypes.VALIDATION_RULE_MAX_LENGTH:
		return fmt.Sprintf("Debe tener como máximo %d caracteres", int(value))
	case surveyTypes.VALIDATION_RULE_MIN_VALUE:
		return fmt.Sprintf("El valor mínimo es %s", strconv.FormatFloat(value, 'f', -1, 64))
	case surveyTypes.VALIDATION_RULE_MAX_VALUE:
		return fmt.Sprintf("El valor máximo es %s", strconv.FormatFloat(value, 'f', -1, 64))
	case surveyTypes.VALIDATION_RULE_EMAIL:
		return defaultEmailMessage
	}
	return "Valor no válido"
}

// buildRuleCheck folds one declared rule onto the field's base kind. Rules
// that do not apply to the kind, or that are missing their numeric operand,
// become nil (no-op) instead of construction errors.
func buildRuleCheck(kind fieldKind, questionType string, rule surveyTypes.ValidationRule) *ruleCheck {
	message := rule.Message

	switch rule.Type {
	case surveyTypes.VALIDATION_RULE_MIN_LENGTH, surveyTypes.VALIDATION_RULE_MAX_LENGTH:
		if rule.Value == nil || kind == kindNumber {
			return nil
		}
		bound := int(*rule.Value)
		if message == "" {
			message = defaultMessageFor(rule.Type, *rule.Value)
		}
		isMin := rule.Type == surveyTypes.VALIDATION_RULE_MIN_LENGTH
		return &ruleCheck{message: message, passes: func(v fieldValue) bool {
			length := len(v.str)
			if kind == kindMulti {
				length = len(v.items)
			}
			if isMin {
				return length >= bound
			}
			return length <= bound
		}}

	case surveyTypes.VALIDATION_RULE_MIN_VALUE, surveyTypes.VALIDATION_RULE_MAX_VALUE:
		if rule.Value == nil || kind != kindNumber {
			return nil
		}
		bound := *rule.Value
		if message == "" {
			message = defaultMessageFor(rule.Type, bound)
		}
		isMin := rule.Type == surveyTypes.VALIDATION_RULE_MIN_VALUE
		return &ruleCheck{message: message, passes: func(v fieldValue) bool {
			if isMin {
				return v.num >= bound
			}
			return v.num <= bound
		}}

	case surveyTypes.VALIDATION_RULE_EMAIL:
		if questionType != surveyTypes.QUESTION_TYPE_TEXT {
			return nil
		}
		if message == "" {
			message = defaultEmailMessage
		}
		return &ruleCheck{message: message, passes: func(v fieldValue) bool {
			return emailRegex.MatchString(v.str)
		}}
	}
	return nil
}
