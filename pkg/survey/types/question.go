package types

const (
	QUESTION_TYPE_TEXT        = "text"
	QUESTION_TYPE_NUMBER      = "number"
	QUESTION_TYPE_DATE        = "date"
	QUESTION_TYPE_TIME        = "time"
	QUESTION_TYPE_SELECT      = "select"
	QUESTION_TYPE_MULTISELECT = "multiselect"
	QUESTION_TYPE_RADIO       = "radio"
	QUESTION_TYPE_CHECKBOX    = "checkbox"
)

const (
	VALIDATION_RULE_REQUIRED   = "required"
	VALIDATION_RULE_MIN_LENGTH = "minLength"
	VALIDATION_RULE_MAX_LENGTH = "maxLength"
	VALIDATION_RULE_MIN_VALUE  = "minValue"
	VALIDATION_RULE_MAX_VALUE  = "maxValue"
	VALIDATION_RULE_EMAIL      = "email"
)

// Question is a single typed input field. Question ids are unique across the
// whole survey, not just within their section, since conditional-logic rules
// reference questions by id from any section.
type Question struct {
	ID          string `bson:"id" json:"id"`
	Type        string `bson:"type" json:"type"`
	Label       string `bson:"label" json:"label"`
	Placeholder string `bson:"placeholder,omitempty" json:"placeholder,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`

	// Only for option-bearing variants (select, multiselect, radio, checkbox).
	Options []Option `bson:"options,omitempty" json:"options,omitempty"`
	// When true an "Other" choice is appended at render time, allowing a
	// free-text value not present in Options.
	HasOtherOption bool `bson:"hasOtherOption,omitempty" json:"hasOtherOption,omitempty"`

	// Legacy shorthand: only consulted when Validations is empty.
	Required bool `bson:"required,omitempty" json:"required,omitempty"`

	Validations      []ValidationRule  `bson:"validations,omitempty" json:"validations,omitempty"`
	ConditionalLogic *ConditionalLogic `bson:"conditionalLogic,omitempty" json:"conditionalLogic,omitempty"`
}

type Option struct {
	Value string `bson:"value" json:"value"`
	Label string `bson:"label" json:"label"`
}

// ValidationRule declares one check on a question's answer. Value is required
// for the minLength/maxLength/minValue/maxValue kinds.
type ValidationRule struct {
	Type    string   `bson:"type" json:"type"`
	Message string   `bson:"message,omitempty" json:"message,omitempty"`
	Value   *float64 `bson:"value,omitempty" json:"value,omitempty"`
}

func (q Question) Clone() Question {
	c := q
	if q.Options != nil {
		c.Options = make([]Option, len(q.Options))
		copy(c.Options, q.Options)
	}
	if q.Validations != nil {
		c.Validations = make([]ValidationRule, len(q.Validations))
		for i, v := range q.Validations {
			c.Validations[i] = v
			if v.Value != nil {
				val := *v.Value
				c.Validations[i].Value = &val
			}
		}
	}
	if q.ConditionalLogic != nil {
		cl := q.ConditionalLogic.Clone()
		c.ConditionalLogic = &cl
	}
	return c
}

// IsOptionType reports whether the question type carries an option list.
func IsOptionType(questionType string) bool {
	switch questionType {
	case QUESTION_TYPE_SELECT, QUESTION_TYPE_MULTISELECT, QUESTION_TYPE_RADIO, QUESTION_TYPE_CHECKBOX:
		return true
	}
	return false
}

// IsMultiValueType reports whether answers to the question are sequences of
// strings rather than scalars.
func IsMultiValueType(questionType string) bool {
	return questionType == QUESTION_TYPE_MULTISELECT || questionType == QUESTION_TYPE_CHECKBOX
}

func IsValidQuestionType(questionType string) bool {
	switch questionType {
	case QUESTION_TYPE_TEXT, QUESTION_TYPE_NUMBER, QUESTION_TYPE_DATE, QUESTION_TYPE_TIME,
		QUESTION_TYPE_SELECT, QUESTION_TYPE_MULTISELECT, QUESTION_TYPE_RADIO, QUESTION_TYPE_CHECKBOX:
		return true
	}
	return false
}
