package validation

import (
	"github.com/sebasbeleno/nexus-backend/pkg/survey/logic"
	surveyTypes "github.com/sebasbeleno/nexus-backend/pkg/survey/types"
)

// SectionValidator checks a candidate answer map against the declared rules
// of every question that was visible when the validator was built. Visibility
// depends on answers, so a later wizard step must rebuild the validator for
// its own answer state.
type SectionValidator struct {
	fields []fieldValidator
}

type fieldValidator struct {
	questionID      string
	kind            fieldKind
	required        bool
	requiredMessage string
	checks          []ruleCheck
}

// ValidationResult is the outcome of validating one answer map: either valid,
// or a field-keyed set of user-facing error messages.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}

// BuildSectionValidator derives the validator for one section given the
// answers collected so far. Questions hidden by their conditional logic are
// excluded entirely.
//
// Rule precedence: a non-empty Validations list is authoritative (no implicit
// required); with an empty list the legacy Required shorthand synthesizes an
// equivalent required rule; otherwise the field is optional.
func BuildSectionValidator(section surveyTypes.Section, answers map[string]interface{}) *SectionValidator {
	v := &SectionValidator{}
	for _, q := range section.Questions {
		if !logic.ShouldShow(q, answers) {
			continue
		}
		v.fields = append(v.fields, buildFieldValidator(q))
	}
	return v
}

func buildFieldValidator(q surveyTypes.Question) fieldValidator {
	kind := baseKindFor(q.Type)
	fv := fieldValidator{questionID: q.ID, kind: kind}

	if len(q.Validations) > 0 {
		for _, rule := range q.Validations {
			if rule.Type == surveyTypes.VALIDATION_RULE_REQUIRED {
				fv.required = true
				fv.requiredMessage = rule.Message
				if fv.requiredMessage == "" {
					fv.requiredMessage = defaultRequiredMessage
				}
				continue
			}
			if check := buildRuleCheck(kind, q.Type, rule); check != nil {
				fv.checks = append(fv.checks, *check)
			}
		}
		return fv
	}

	if q.Required {
		fv.required = true
		fv.requiredMessage = defaultRequiredMessage
	}
	return fv
}

// Validate checks the answer map. The first failing rule's message is
// reported per field, keyed by question id.
func (v *SectionValidator) Validate(answers map[string]interface{}) ValidationResult {
	errs := map[string]string{}
	for _, field := range v.fields {
		raw, answered := answers[field.questionID]
		value := normalizeValue(field.kind, raw, answered)

		if !value.present {
			if field.required {
				errs[field.questionID] = field.requiredMessage
			}
			// Optional fields are not measured against the remaining rules
			// when no answer is present.
			continue
		}

		for _, check := range field.checks {
			if !check.passes(value) {
				errs[field.questionID] = check.message
				break
			}
		}
	}
	if len(errs) > 0 {
		return ValidationResult{Valid: false, Errors: errs}
	}
	return ValidationResult{Valid: true}
}

// QuestionIDs lists the fields the validator covers, in section order.
func (v *SectionValidator) QuestionIDs() []string {
	ids := make([]string, len(v.fields))
	for i, f := range v.fields {
		ids[i] = f.questionID
	}
	return ids
}
