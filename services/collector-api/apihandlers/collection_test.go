package apihandlers

import (
	"testing"

	surveyTypes "github.com/sebasbeleno/nexus-backend/pkg/survey/types"
	"github.com/sebasbeleno/nexus-backend/pkg/survey/wizard"
)

func completedTestSession(t *testing.T) *wizard.Session {
	t.Helper()

	structure := surveyTypes.SurveyStructure{
		SurveyID: "survey1",
		Version:  4,
		Title:    "Censo de vivienda",
		Sections: []surveyTypes.Section{
			{
				ID:    "s1",
				Title: "Hogar",
				Questions: []surveyTypes.Question{
					{ID: "q1", Type: surveyTypes.QUESTION_TYPE_TEXT, Required: true},
				},
			},
		},
	}

	w, err := wizard.New(structure)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	registry := wizard.NewSessionRegistry(0)
	session := registry.CreateSession("bogota", "survey1", "surveyor1", w)
	session.PropertyID = "property1"
	session.SurveyVersion = structure.Version

	result, err := session.Wizard.Next(map[string]interface{}{"q1": "Casa esquinera"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Completed {
		t.Fatalf("expected the wizard to complete, got %+v", result)
	}
	return session
}

func TestCompletedRecordFromSession(t *testing.T) {
	t.Run("carries session metadata and answers", func(t *testing.T) {
		session := completedTestSession(t)

		record := completedRecordFromSession(session)
		if record.SurveyID != "survey1" || record.SurveyVersion != 4 {
			t.Errorf("unexpected survey reference: %s v%d", record.SurveyID, record.SurveyVersion)
		}
		if record.SurveyorID != "surveyor1" || record.PropertyID != "property1" {
			t.Errorf("unexpected attribution: %s %s", record.SurveyorID, record.PropertyID)
		}
		if record.SessionID != session.ID {
			t.Errorf("expected session id %s, got %s", session.ID, record.SessionID)
		}
		if record.Answers["q1"] != "Casa esquinera" {
			t.Errorf("unexpected answers: %+v", record.Answers)
		}
		if record.SubmittedAt == 0 {
			t.Error("expected a submission timestamp")
		}
	})

	t.Run("can rebuild the record after a failed save", func(t *testing.T) {
		// When persisting a response fails, the session stays in the
		// registry with its wizard in the completed state. A repeated
		// next call must still produce the full record instead of
		// bouncing off the terminal wizard.
		session := completedTestSession(t)

		if _, err := session.Wizard.Next(nil); err != wizard.ErrAlreadyComplete {
			t.Fatalf("expected ErrAlreadyComplete from the wizard, got %v", err)
		}
		if !session.Wizard.Completed() {
			t.Fatal("expected the session wizard to stay completed")
		}

		record := completedRecordFromSession(session)
		if record.Answers["q1"] != "Casa esquinera" {
			t.Errorf("expected the answers to survive the retry, got %+v", record.Answers)
		}
		if record.SessionID != session.ID {
			t.Errorf("expected session id %s, got %s", session.ID, record.SessionID)
		}
	})
}
