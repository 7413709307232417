package validation

import (
	"testing"

	surveyTypes "github.com/sebasbeleno/nexus-backend/pkg/survey/types"
)

func floatPtr(v float64) *float64 { return &v }

func TestRequiredRule(t *testing.T) {
	section := surveyTypes.Section{
		ID:    "s1",
		Title: "Datos del hogar",
		Questions: []surveyTypes.Question{
			{
				ID:   "q1",
				Type: surveyTypes.QUESTION_TYPE_TEXT,
				Validations: []surveyTypes.ValidationRule{
					{Type: surveyTypes.VALIDATION_RULE_REQUIRED, Message: "Campo obligatorio"},
				},
			},
		},
	}

	t.Run("empty submission fails with the custom message", func(t *testing.T) {
		result := BuildSectionValidator(section, map[string]interface{}{}).Validate(map[string]interface{}{})
		if result.Valid {
			t.Fatalf("expected failure")
		}
		if result.Errors["q1"] != "Campo obligatorio" {
			t.Errorf("custom message dropped: %q", result.Errors["q1"])
		}
	})

	t.Run("an answer passes", func(t *testing.T) {
		answers := map[string]interface{}{"q1": "abc"}
		result := BuildSectionValidator(section, answers).Validate(answers)
		if !result.Valid {
			t.Errorf("unexpected errors: %v", result.Errors)
		}
	})

	t.Run("default message fills in when none declared", func(t *testing.T) {
		sec := section
		sec.Questions = []surveyTypes.Question{{
			ID:          "q1",
			Type:        surveyTypes.QUESTION_TYPE_TEXT,
			Validations: []surveyTypes.ValidationRule{{Type: surveyTypes.VALIDATION_RULE_REQUIRED}},
		}}
		result := BuildSectionValidator(sec, nil).Validate(map[string]interface{}{})
		if result.Errors["q1"] != defaultRequiredMessage {
			t.Errorf("unexpected message: %q", result.Errors["q1"])
		}
	})
}

func TestLegacyRequiredShorthand(t *testing.T) {
	t.Run("shorthand applies with an empty validations list", func(t *testing.T) {
		section := surveyTypes.Section{Questions: []surveyTypes.Question{
			{ID: "q1", Type: surveyTypes.QUESTION_TYPE_TEXT, Required: true},
		}}
		result := BuildSectionValidator(section, nil).Validate(map[string]interface{}{})
		if result.Valid {
			t.Errorf("expected the shorthand to synthesize a required rule")
		}
	})

	t.Run("a declared list overrides the shorthand", func(t *testing.T) {
		section := surveyTypes.Section{Questions: []surveyTypes.Question{
			{
				ID:       "q1",
				Type:     surveyTypes.QUESTION_TYPE_TEXT,
				Required: true,
				Validations: []surveyTypes.ValidationRule{
					{Type: surveyTypes.VALIDATION_RULE_MAX_LENGTH, Value: floatPtr(10)},
				},
			},
		}}
		result := BuildSectionValidator(section, nil).Validate(map[string]interface{}{})
		if !result.Valid {
			t.Errorf("declared list without required must leave the field optional: %v", result.Errors)
		}
	})
}

func TestLengthRules(t *testing.T) {
	section := surveyTypes.Section{Questions: []surveyTypes.Question{
		{
			ID:   "q1",
			Type: surveyTypes.QUESTION_TYPE_TEXT,
			Validations: []surveyTypes.ValidationRule{
				{Type: surveyTypes.VALIDATION_RULE_MIN_LENGTH, Value: floatPtr(3), Message: "Muy corto"},
				{Type: surveyTypes.VALIDATION_RULE_MAX_LENGTH, Value: floatPtr(5), Message: "Muy largo"},
			},
		},
	}}

	t.Run("below the minimum", func(t *testing.T) {
		answers := map[string]interface{}{"q1": "ab"}
		result := BuildSectionValidator(section, answers).Validate(answers)
		if result.Errors["q1"] != "Muy corto" {
			t.Errorf("unexpected: %v", result.Errors)
		}
	})

	t.Run("above the maximum", func(t *testing.T) {
		answers := map[string]interface{}{"q1": "abcdef"}
		result := BuildSectionValidator(section, answers).Validate(answers)
		if result.Errors["q1"] != "Muy largo" {
			t.Errorf("unexpected: %v", result.Errors)
		}
	})

	t.Run("in range", func(t *testing.T) {
		answers := map[string]interface{}{"q1": "abcd"}
		result := BuildSectionValidator(section, answers).Validate(answers)
		if !result.Valid {
			t.Errorf("unexpected errors: %v", result.Errors)
		}
	})

	t.Run("length bounds count sequence elements for multiselect", func(t *testing.T) {
		sec := surveyTypes.Section{Questions: []surveyTypes.Question{
			{
				ID:   "q1",
				Type: surveyTypes.QUESTION_TYPE_MULTISELECT,
				Validations: []surveyTypes.ValidationRule{
					{Type: surveyTypes.VALIDATION_RULE_MIN_LENGTH, Value: floatPtr(2), Message: "Seleccione al menos dos"},
				},
			},
		}}
		answers := map[string]interface{}{"q1": []interface{}{"a"}}
		result := BuildSectionValidator(sec, answers).Validate(answers)
		if result.Errors["q1"] != "Seleccione al menos dos" {
			t.Errorf("unexpected: %v", result.Errors)
		}
	})
}

func TestNumberRules(t *testing.T) {
	section := surveyTypes.Section{Questions: []surveyTypes.Question{
		{
			ID:   "q1",
			Type: surveyTypes.QUESTION_TYPE_NUMBER,
			Validations: []surveyTypes.ValidationRule{
				{Type: surveyTypes.VALIDATION_RULE_REQUIRED},
				{Type: surveyTypes.VALIDATION_RULE_MIN_VALUE, Value: floatPtr(1)},
				{Type: surveyTypes.VALIDATION_RULE_MAX_VALUE, Value: floatPtr(20)},
			},
		},
	}}

	t.Run("coercible numeric strings are accepted", func(t *testing.T) {
		answers := map[string]interface{}{"q1": "12"}
		result := BuildSectionValidator(section, answers).Validate(answers)
		if !result.Valid {
			t.Errorf("unexpected errors: %v", result.Errors)
		}
	})

	t.Run("out of bounds", func(t *testing.T) {
		answers := map[string]interface{}{"q1": float64(25)}
		result := BuildSectionValidator(section, answers).Validate(answers)
		if result.Valid {
			t.Errorf("expected max value failure")
		}
	})

	t.Run("non numeric input counts as absent", func(t *testing.T) {
		answers := map[string]interface{}{"q1": "doce"}
		result := BuildSectionValidator(section, answers).Validate(answers)
		if result.Valid {
			t.Errorf("expected required failure for uncoercible number")
		}
	})
}

func TestEmailRule(t *testing.T) {
	section := surveyTypes.Section{Questions: []surveyTypes.Question{
		{
			ID:   "q1",
			Type: surveyTypes.QUESTION_TYPE_TEXT,
			Validations: []surveyTypes.ValidationRule{
				{Type: surveyTypes.VALIDATION_RULE_EMAIL},
			},
		},
	}}

	t.Run("well formed address passes", func(t *testing.T) {
		answers := map[string]interface{}{"q1": "ana@example.com"}
		result := BuildSectionValidator(section, answers).Validate(answers)
		if !result.Valid {
			t.Errorf("unexpected errors: %v", result.Errors)
		}
	})

	t.Run("malformed address fails with the default message", func(t *testing.T) {
		answers := map[string]interface{}{"q1": "no-es-un-correo"}
		result := BuildSectionValidator(section, answers).Validate(answers)
		if result.Errors["q1"] != defaultEmailMessage {
			t.Errorf("unexpected: %v", result.Errors)
		}
	})

	t.Run("email on a number question is a no-op rule", func(t *testing.T) {
		sec := surveyTypes.Section{Questions: []surveyTypes.Question{
			{
				ID:   "q1",
				Type: surveyTypes.QUESTION_TYPE_NUMBER,
				Validations: []surveyTypes.ValidationRule{
					{Type: surveyTypes.VALIDATION_RULE_EMAIL},
				},
			},
		}}
		answers := map[string]interface{}{"q1": float64(3)}
		result := BuildSectionValidator(sec, answers).Validate(answers)
		if !result.Valid {
			t.Errorf("inapplicable rule must not fail the field: %v", result.Errors)
		}
	})

	t.Run("length rule without operand is a no-op rule", func(t *testing.T) {
		sec := surveyTypes.Section{Questions: []surveyTypes.Question{
			{
				ID:   "q1",
				Type: surveyTypes.QUESTION_TYPE_TEXT,
				Validations: []surveyTypes.ValidationRule{
					{Type: surveyTypes.VALIDATION_RULE_MIN_LENGTH},
				},
			},
		}}
		answers := map[string]interface{}{"q1": "x"}
		result := BuildSectionValidator(sec, answers).Validate(answers)
		if !result.Valid {
			t.Errorf("rule with missing operand must not fail the field: %v", result.Errors)
		}
	})
}

func TestVisibilityFiltering(t *testing.T) {
	section := surveyTypes.Section{Questions: []surveyTypes.Question{
		{ID: "q1", Type: surveyTypes.QUESTION_TYPE_SELECT, Required: true},
		{
			ID:       "q2",
			Type:     surveyTypes.QUESTION_TYPE_TEXT,
			Required: true,
			ConditionalLogic: &surveyTypes.ConditionalLogic{
				Enabled: true,
				Action:  surveyTypes.CONDITIONAL_ACTION_SHOW,
				Logic:   surveyTypes.CONDITIONAL_LOGIC_AND,
				Conditions: []surveyTypes.Condition{
					{QuestionID: "q1", Operator: surveyTypes.CONDITION_OPERATOR_EQUALS, Value: "otro"},
				},
			},
		},
	}}

	t.Run("hidden question is excluded from the validator", func(t *testing.T) {
		answers := map[string]interface{}{"q1": "casa"}
		v := BuildSectionValidator(section, answers)
		ids := v.QuestionIDs()
		if len(ids) != 1 || ids[0] != "q1" {
			t.Fatalf("unexpected fields: %v", ids)
		}
		result := v.Validate(answers)
		if !result.Valid {
			t.Errorf("hidden required question must not block: %v", result.Errors)
		}
	})

	t.Run("visible question is enforced", func(t *testing.T) {
		answers := map[string]interface{}{"q1": "otro"}
		result := BuildSectionValidator(section, answers).Validate(answers)
		if result.Valid {
			t.Errorf("expected q2 to be required once visible")
		}
	})
}

func TestMultiValueDefaults(t *testing.T) {
	section := surveyTypes.Section{Questions: []surveyTypes.Question{
		{ID: "q1", Type: surveyTypes.QUESTION_TYPE_CHECKBOX, Required: true},
	}}

	t.Run("absent sequence defaults to empty and fails required", func(t *testing.T) {
		result := BuildSectionValidator(section, nil).Validate(map[string]interface{}{})
		if result.Valid {
			t.Errorf("expected required failure on empty sequence")
		}
	})

	t.Run("non empty sequence passes", func(t *testing.T) {
		answers := map[string]interface{}{"q1": []interface{}{"agua"}}
		result := BuildSectionValidator(section, answers).Validate(answers)
		if !result.Valid {
			t.Errorf("unexpected errors: %v", result.Errors)
		}
	})
}
