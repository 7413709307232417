package types

const (
	CONDITIONAL_ACTION_SHOW = "show"

	CONDITIONAL_LOGIC_AND = "AND"
	CONDITIONAL_LOGIC_OR  = "OR"
)

const (
	CONDITION_OPERATOR_EQUALS       = "equals"
	CONDITION_OPERATOR_NOT_EQUALS   = "notEquals"
	CONDITION_OPERATOR_GREATER_THAN = "greaterThan"
	CONDITION_OPERATOR_LESS_THAN    = "lessThan"
	CONDITION_OPERATOR_CONTAINS     = "contains"
	CONDITION_OPERATOR_IS_EMPTY     = "isEmpty"
	CONDITION_OPERATOR_IS_NOT_EMPTY = "isNotEmpty"
)

// ConditionalLogic makes a question's visibility depend on other questions'
// current answers. Conditions do not nest.
type ConditionalLogic struct {
	Enabled    bool        `bson:"enabled" json:"enabled"`
	Action     string      `bson:"action" json:"action"`
	Logic      string      `bson:"logic" json:"logic"`
	Conditions []Condition `bson:"conditions" json:"conditions"`
}

// Condition compares the trigger question's answer against Value. Value is
// required for every operator except isEmpty / isNotEmpty.
type Condition struct {
	QuestionID string      `bson:"questionId" json:"questionId"`
	Operator   string      `bson:"operator" json:"operator"`
	Value      interface{} `bson:"value,omitempty" json:"value,omitempty"`
}

// IsActive reports whether the block participates in evaluation. An enabled
// block with no conditions is equivalent to a disabled one.
func (cl *ConditionalLogic) IsActive() bool {
	return cl != nil && cl.Enabled && len(cl.Conditions) > 0
}

func (cl ConditionalLogic) Clone() ConditionalLogic {
	c := cl
	c.Conditions = make([]Condition, len(cl.Conditions))
	copy(c.Conditions, cl.Conditions)
	return c
}
