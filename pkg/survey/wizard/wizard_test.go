package wizard

import (
	"errors"
	"testing"
	"time"

	surveyTypes "github.com/sebasbeleno/nexus-backend/pkg/survey/types"
)

func twoSectionSurvey() surveyTypes.SurveyStructure {
	return surveyTypes.SurveyStructure{
		SurveyID: "survey1",
		Title:    "Censo de vivienda",
		Sections: []surveyTypes.Section{
			{
				ID:    "s1",
				Title: "Hogar",
				Questions: []surveyTypes.Question{
					{ID: "q1", Type: surveyTypes.QUESTION_TYPE_SELECT, Required: true, Options: []surveyTypes.Option{
						{Value: "propia", Label: "Propia"},
						{Value: "arrendada", Label: "Arrendada"},
					}},
				},
			},
			{
				ID:    "s2",
				Title: "Servicios",
				Questions: []surveyTypes.Question{
					{ID: "q2", Type: surveyTypes.QUESTION_TYPE_TEXT, Required: true},
					{
						ID:       "q3",
						Type:     surveyTypes.QUESTION_TYPE_TEXT,
						Required: true,
						ConditionalLogic: &surveyTypes.ConditionalLogic{
							Enabled: true,
							Action:  surveyTypes.CONDITIONAL_ACTION_SHOW,
							Logic:   surveyTypes.CONDITIONAL_LOGIC_AND,
							Conditions: []surveyTypes.Condition{
								{QuestionID: "q1", Operator: surveyTypes.CONDITION_OPERATOR_EQUALS, Value: "arrendada"},
							},
						},
					},
				},
			},
		},
	}
}

func TestNewWizard(t *testing.T) {
	t.Run("empty survey signals nothing to collect", func(t *testing.T) {
		_, err := New(surveyTypes.NewSurveyStructure("survey1", "Vacía"))
		if !errors.Is(err, ErrNothingToCollect) {
			t.Errorf("expected ErrNothingToCollect, got %v", err)
		}
	})

	t.Run("starts at the first section", func(t *testing.T) {
		w, err := New(twoSectionSurvey())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if w.StepIndex() != 0 || w.Completed() {
			t.Errorf("unexpected initial state: step %d", w.StepIndex())
		}
		sec, ok := w.CurrentSection()
		if !ok || sec.ID != "s1" {
			t.Errorf("unexpected current section: %+v", sec)
		}
	})
}

func TestWizardNext(t *testing.T) {
	t.Run("validation failure blocks and surfaces field errors", func(t *testing.T) {
		w, _ := New(twoSectionSurvey())
		result, err := w.Next(map[string]interface{}{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Blocked {
			t.Fatalf("expected blocked transition")
		}
		if _, ok := result.FieldErrors["q1"]; !ok {
			t.Errorf("expected a field error for q1: %v", result.FieldErrors)
		}
		if w.StepIndex() != 0 {
			t.Errorf("blocked transition must not advance")
		}
	})

	t.Run("valid input merges and advances", func(t *testing.T) {
		w, _ := New(twoSectionSurvey())
		result, err := w.Next(map[string]interface{}{"q1": "propia"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Blocked || result.Completed || result.StepIndex != 1 {
			t.Errorf("unexpected result: %+v", result)
		}
		if w.Answers()["q1"] != "propia" {
			t.Errorf("pending input not merged")
		}
	})

	t.Run("last section completes and emits the answer map", func(t *testing.T) {
		w, _ := New(twoSectionSurvey())
		w.Next(map[string]interface{}{"q1": "propia"})
		result, err := w.Next(map[string]interface{}{"q2": "acueducto"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Completed {
			t.Fatalf("expected completion: %+v", result)
		}
		if result.Answers["q1"] != "propia" || result.Answers["q2"] != "acueducto" {
			t.Errorf("incomplete answer map: %v", result.Answers)
		}
		if _, err := w.Next(nil); !errors.Is(err, ErrAlreadyComplete) {
			t.Errorf("expected terminal state, got %v", err)
		}
	})

	t.Run("hidden conditional question does not gate navigation", func(t *testing.T) {
		w, _ := New(twoSectionSurvey())
		w.Next(map[string]interface{}{"q1": "propia"})
		// q3 only shows for arrendada; it must not be validated here.
		result, _ := w.Next(map[string]interface{}{"q2": "acueducto"})
		if !result.Completed {
			t.Errorf("hidden question blocked completion: %+v", result)
		}
	})

	t.Run("visible conditional question is enforced", func(t *testing.T) {
		w, _ := New(twoSectionSurvey())
		w.Next(map[string]interface{}{"q1": "arrendada"})
		result, _ := w.Next(map[string]interface{}{"q2": "acueducto"})
		if !result.Blocked {
			t.Fatalf("expected q3 to block: %+v", result)
		}
		if _, ok := result.FieldErrors["q3"]; !ok {
			t.Errorf("expected field error for q3: %v", result.FieldErrors)
		}
	})
}

func TestWizardPrevious(t *testing.T) {
	t.Run("merges without validating and moves back", func(t *testing.T) {
		w, _ := New(twoSectionSurvey())
		w.Next(map[string]interface{}{"q1": "propia"})
		step, err := w.Previous(map[string]interface{}{"q2": "a medias"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if step != 0 {
			t.Errorf("expected step 0, got %d", step)
		}
		if w.Answers()["q2"] != "a medias" {
			t.Errorf("pending input dropped on backward navigation")
		}
	})

	t.Run("no-op at the first step", func(t *testing.T) {
		w, _ := New(twoSectionSurvey())
		step, err := w.Previous(nil)
		if err != nil || step != 0 {
			t.Errorf("unexpected: step %d err %v", step, err)
		}
	})

	t.Run("changed earlier answer flips later visibility", func(t *testing.T) {
		w, _ := New(twoSectionSurvey())
		w.Next(map[string]interface{}{"q1": "propia"})
		if len(w.VisibleQuestions()) != 1 {
			t.Fatalf("expected only q2 visible")
		}
		w.Previous(nil)
		w.Next(map[string]interface{}{"q1": "arrendada"})
		visible := w.VisibleQuestions()
		if len(visible) != 2 || visible[1].ID != "q3" {
			t.Errorf("expected q3 to appear after the trigger changed: %+v", visible)
		}
	})
}

func TestWizardReset(t *testing.T) {
	w, _ := New(twoSectionSurvey())
	w.Next(map[string]interface{}{"q1": "propia"})
	w.Next(map[string]interface{}{"q2": "acueducto"})
	if !w.Completed() {
		t.Fatalf("setup failed")
	}

	w.Reset()
	if w.Completed() || w.StepIndex() != 0 || len(w.Answers()) != 0 {
		t.Errorf("reset did not produce a fresh run")
	}
}

func TestSessionRegistry(t *testing.T) {
	newWizard := func() *Wizard {
		w, _ := New(twoSectionSurvey())
		return w
	}

	t.Run("create and access", func(t *testing.T) {
		registry := NewSessionRegistry(time.Minute)
		session := registry.CreateSession("inst1", "survey1", "surveyor1", newWizard())
		if session.ID == "" {
			t.Fatalf("expected a session id")
		}
		err := registry.WithSession(session.ID, func(s *Session) error {
			if s.SurveyID != "survey1" {
				t.Errorf("unexpected session: %+v", s)
			}
			return nil
		})
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		registry := NewSessionRegistry(time.Minute)
		err := registry.WithSession("missing", func(*Session) error { return nil })
		if !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("expired sessions are pruned", func(t *testing.T) {
		registry := NewSessionRegistry(time.Nanosecond)
		session := registry.CreateSession("inst1", "survey1", "surveyor1", newWizard())
		time.Sleep(2 * time.Millisecond)
		err := registry.WithSession(session.ID, func(*Session) error { return nil })
		if !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("expected expiry, got %v", err)
		}
		if registry.ActiveSessionCount() != 0 {
			t.Errorf("expired session still counted")
		}
	})

	t.Run("drop removes the session", func(t *testing.T) {
		registry := NewSessionRegistry(time.Minute)
		session := registry.CreateSession("inst1", "survey1", "surveyor1", newWizard())
		registry.DropSession(session.ID)
		if registry.ActiveSessionCount() != 0 {
			t.Errorf("session not dropped")
		}
	})
}
