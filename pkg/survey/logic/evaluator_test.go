package logic

import (
	"testing"

	surveyTypes "github.com/sebasbeleno/nexus-backend/pkg/survey/types"
)

func showWhen(logicOp string, conditions ...surveyTypes.Condition) surveyTypes.Question {
	return surveyTypes.Question{
		ID:    "q2",
		Type:  surveyTypes.QUESTION_TYPE_TEXT,
		Label: "Pregunta condicional",
		ConditionalLogic: &surveyTypes.ConditionalLogic{
			Enabled:    true,
			Action:     surveyTypes.CONDITIONAL_ACTION_SHOW,
			Logic:      logicOp,
			Conditions: conditions,
		},
	}
}

func TestShouldShowWithoutActiveLogic(t *testing.T) {
	t.Run("no conditional logic at all", func(t *testing.T) {
		q := surveyTypes.Question{ID: "q1", Type: surveyTypes.QUESTION_TYPE_TEXT}
		if !ShouldShow(q, map[string]interface{}{}) {
			t.Errorf("expected always visible")
		}
	})

	t.Run("disabled block", func(t *testing.T) {
		q := showWhen(surveyTypes.CONDITIONAL_LOGIC_AND, surveyTypes.Condition{
			QuestionID: "q1", Operator: surveyTypes.CONDITION_OPERATOR_EQUALS, Value: "yes",
		})
		q.ConditionalLogic.Enabled = false
		if !ShouldShow(q, map[string]interface{}{}) {
			t.Errorf("expected visible when disabled")
		}
	})

	t.Run("enabled block with no conditions behaves as disabled", func(t *testing.T) {
		q := showWhen(surveyTypes.CONDITIONAL_LOGIC_AND)
		if !ShouldShow(q, map[string]interface{}{}) {
			t.Errorf("expected visible with empty condition list")
		}
	})
}

func TestShouldShowEquals(t *testing.T) {
	q := showWhen(surveyTypes.CONDITIONAL_LOGIC_AND, surveyTypes.Condition{
		QuestionID: "q1", Operator: surveyTypes.CONDITION_OPERATOR_EQUALS, Value: "yes",
	})

	t.Run("unanswered trigger suppresses the question", func(t *testing.T) {
		if ShouldShow(q, map[string]interface{}{}) {
			t.Errorf("expected hidden before trigger is answered")
		}
	})

	t.Run("matching answer shows it", func(t *testing.T) {
		if !ShouldShow(q, map[string]interface{}{"q1": "yes"}) {
			t.Errorf("expected visible")
		}
	})

	t.Run("non matching answer hides it", func(t *testing.T) {
		if ShouldShow(q, map[string]interface{}{"q1": "no"}) {
			t.Errorf("expected hidden")
		}
	})

	t.Run("numeric answers compare after normalization", func(t *testing.T) {
		qNum := showWhen(surveyTypes.CONDITIONAL_LOGIC_AND, surveyTypes.Condition{
			QuestionID: "q1", Operator: surveyTypes.CONDITION_OPERATOR_EQUALS, Value: float64(3),
		})
		if !ShouldShow(qNum, map[string]interface{}{"q1": 3}) {
			t.Errorf("expected int answer to equal float condition value")
		}
	})

	t.Run("missing condition value never matches", func(t *testing.T) {
		qNoVal := showWhen(surveyTypes.CONDITIONAL_LOGIC_AND, surveyTypes.Condition{
			QuestionID: "q1", Operator: surveyTypes.CONDITION_OPERATOR_EQUALS,
		})
		if ShouldShow(qNoVal, map[string]interface{}{"q1": "yes"}) {
			t.Errorf("expected hidden with nil condition value")
		}
	})
}

func TestShouldShowNotEquals(t *testing.T) {
	q := showWhen(surveyTypes.CONDITIONAL_LOGIC_AND, surveyTypes.Condition{
		QuestionID: "q1", Operator: surveyTypes.CONDITION_OPERATOR_NOT_EQUALS, Value: "yes",
	})

	t.Run("different answer satisfies it", func(t *testing.T) {
		if !ShouldShow(q, map[string]interface{}{"q1": "no"}) {
			t.Errorf("expected visible")
		}
	})

	t.Run("absent trigger still suppresses", func(t *testing.T) {
		if ShouldShow(q, map[string]interface{}{}) {
			t.Errorf("notEquals must not be satisfied by an unanswered trigger")
		}
	})
}

func TestShouldShowOrderedComparisons(t *testing.T) {
	gt := showWhen(surveyTypes.CONDITIONAL_LOGIC_AND, surveyTypes.Condition{
		QuestionID: "q1", Operator: surveyTypes.CONDITION_OPERATOR_GREATER_THAN, Value: float64(10),
	})

	t.Run("greater than", func(t *testing.T) {
		if !ShouldShow(gt, map[string]interface{}{"q1": float64(11)}) {
			t.Errorf("expected 11 > 10")
		}
		if ShouldShow(gt, map[string]interface{}{"q1": float64(10)}) {
			t.Errorf("expected 10 > 10 to fail")
		}
	})

	t.Run("numeric strings coerce", func(t *testing.T) {
		if !ShouldShow(gt, map[string]interface{}{"q1": "12"}) {
			t.Errorf("expected string answer to coerce")
		}
	})

	t.Run("non numeric answer fails", func(t *testing.T) {
		if ShouldShow(gt, map[string]interface{}{"q1": "muchos"}) {
			t.Errorf("expected non-numeric comparison to fail")
		}
	})

	t.Run("less than", func(t *testing.T) {
		lt := showWhen(surveyTypes.CONDITIONAL_LOGIC_AND, surveyTypes.Condition{
			QuestionID: "q1", Operator: surveyTypes.CONDITION_OPERATOR_LESS_THAN, Value: float64(5),
		})
		if !ShouldShow(lt, map[string]interface{}{"q1": float64(4)}) {
			t.Errorf("expected 4 < 5")
		}
	})
}

func TestShouldShowContains(t *testing.T) {
	q := showWhen(surveyTypes.CONDITIONAL_LOGIC_AND, surveyTypes.Condition{
		QuestionID: "q1", Operator: surveyTypes.CONDITION_OPERATOR_CONTAINS, Value: "agua",
	})

	t.Run("sequence membership", func(t *testing.T) {
		if !ShouldShow(q, map[string]interface{}{"q1": []interface{}{"luz", "agua"}}) {
			t.Errorf("expected membership match")
		}
		if ShouldShow(q, map[string]interface{}{"q1": []interface{}{"luz", "gas"}}) {
			t.Errorf("expected no membership match")
		}
	})

	t.Run("string slice membership", func(t *testing.T) {
		if !ShouldShow(q, map[string]interface{}{"q1": []string{"agua"}}) {
			t.Errorf("expected membership match on string slice")
		}
	})

	t.Run("substring on scalar answers", func(t *testing.T) {
		if !ShouldShow(q, map[string]interface{}{"q1": "sin agua potable"}) {
			t.Errorf("expected substring match")
		}
		if ShouldShow(q, map[string]interface{}{"q1": "electricidad"}) {
			t.Errorf("expected no substring match")
		}
	})
}

func TestShouldShowEmptiness(t *testing.T) {
	isEmpty := showWhen(surveyTypes.CONDITIONAL_LOGIC_AND, surveyTypes.Condition{
		QuestionID: "q1", Operator: surveyTypes.CONDITION_OPERATOR_IS_EMPTY,
	})
	isNotEmpty := showWhen(surveyTypes.CONDITIONAL_LOGIC_AND, surveyTypes.Condition{
		QuestionID: "q1", Operator: surveyTypes.CONDITION_OPERATOR_IS_NOT_EMPTY,
	})

	t.Run("isEmpty sees unanswered, empty string and empty sequence", func(t *testing.T) {
		for _, answers := range []map[string]interface{}{
			{},
			{"q1": nil},
			{"q1": ""},
			{"q1": []interface{}{}},
			{"q1": []string{}},
		} {
			if !ShouldShow(isEmpty, answers) {
				t.Errorf("expected empty for %v", answers)
			}
		}
	})

	t.Run("isNotEmpty is its negation", func(t *testing.T) {
		if ShouldShow(isNotEmpty, map[string]interface{}{}) {
			t.Errorf("expected not satisfied when unanswered")
		}
		if !ShouldShow(isNotEmpty, map[string]interface{}{"q1": "x"}) {
			t.Errorf("expected satisfied with an answer")
		}
	})
}

func TestShouldShowCombination(t *testing.T) {
	c1 := surveyTypes.Condition{QuestionID: "q1", Operator: surveyTypes.CONDITION_OPERATOR_EQUALS, Value: "yes"}
	c2 := surveyTypes.Condition{QuestionID: "q3", Operator: surveyTypes.CONDITION_OPERATOR_EQUALS, Value: "casa"}

	t.Run("AND needs every condition", func(t *testing.T) {
		q := showWhen(surveyTypes.CONDITIONAL_LOGIC_AND, c1, c2)
		if ShouldShow(q, map[string]interface{}{"q1": "no", "q3": "casa"}) {
			t.Errorf("one false condition must hide the question under AND")
		}
		if !ShouldShow(q, map[string]interface{}{"q1": "yes", "q3": "casa"}) {
			t.Errorf("expected visible with all conditions true")
		}
	})

	t.Run("OR needs at least one", func(t *testing.T) {
		q := showWhen(surveyTypes.CONDITIONAL_LOGIC_OR, c1, c2)
		if !ShouldShow(q, map[string]interface{}{"q3": "casa"}) {
			t.Errorf("expected visible: the second condition holds even though q1 is unanswered")
		}
		if ShouldShow(q, map[string]interface{}{"q1": "no"}) {
			t.Errorf("expected hidden with no condition satisfied")
		}
	})
}

func TestShouldShowSelfReference(t *testing.T) {
	q := showWhen(surveyTypes.CONDITIONAL_LOGIC_AND, surveyTypes.Condition{
		QuestionID: "q2", Operator: surveyTypes.CONDITION_OPERATOR_IS_NOT_EMPTY,
	})
	if ShouldShow(q, map[string]interface{}{"q2": "already answered"}) {
		t.Errorf("a self-referential condition must never be satisfied")
	}
}

func TestShouldShowDanglingTrigger(t *testing.T) {
	// The trigger question was deleted; its id has no entry in answers and
	// never will. The branch stays suppressed.
	q := showWhen(surveyTypes.CONDITIONAL_LOGIC_AND, surveyTypes.Condition{
		QuestionID: "deleted-question", Operator: surveyTypes.CONDITION_OPERATOR_EQUALS, Value: "yes",
	})
	if ShouldShow(q, map[string]interface{}{"q1": "yes"}) {
		t.Errorf("expected permanently hidden on dangling reference")
	}
}
