package survey

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	surveyTypes "github.com/sebasbeleno/nexus-backend/pkg/survey/types"
)

func TestRepairStructure(t *testing.T) {
	t.Run("missing structure field", func(t *testing.T) {
		got := RepairStructure("survey1", "Censo 2024", nil)
		if got.SurveyID != "survey1" || got.Title != "Censo 2024" {
			t.Errorf("scalars not carried over: %+v", got)
		}
		if got.Sections == nil || len(got.Sections) != 0 {
			t.Errorf("expected empty sections slice")
		}
	})

	t.Run("structure is not a document", func(t *testing.T) {
		got := RepairStructure("survey1", "Censo 2024", "not-a-document")
		if len(got.Sections) != 0 || got.Title != "Censo 2024" {
			t.Errorf("unexpected repair result: %+v", got)
		}
	})

	t.Run("empty document falls back to the record name", func(t *testing.T) {
		got := RepairStructure("survey1", "Censo 2024", bson.M{})
		if got.Title != "Censo 2024" {
			t.Errorf("title fallback dropped: %q", got.Title)
		}
		if len(got.Sections) != 0 {
			t.Errorf("expected empty sections")
		}
	})

	t.Run("document without sections keeps its scalars", func(t *testing.T) {
		got := RepairStructure("survey1", "fallback", bson.M{
			"title":       "Encuesta de servicios",
			"description": "desc",
			"version":     int32(4),
		})
		if got.Title != "Encuesta de servicios" || got.Description != "desc" || got.Version != 4 {
			t.Errorf("scalars dropped: %+v", got)
		}
		if len(got.Sections) != 0 {
			t.Errorf("expected empty sections")
		}
	})

	t.Run("well formed document decodes fully", func(t *testing.T) {
		raw := bson.M{
			"title":   "Encuesta",
			"version": 2,
			"sections": bson.A{
				bson.M{
					"id":    "s1",
					"title": "Hogar",
					"questions": bson.A{
						bson.M{"id": "q1", "type": "text", "label": "Dirección", "required": true},
					},
				},
			},
		}
		got := RepairStructure("survey1", "fallback", raw)
		if len(got.Sections) != 1 || len(got.Sections[0].Questions) != 1 {
			t.Fatalf("structure not decoded: %+v", got)
		}
		q := got.Sections[0].Questions[0]
		if q.ID != "q1" || q.Type != surveyTypes.QUESTION_TYPE_TEXT || !q.Required {
			t.Errorf("question fields lost: %+v", q)
		}
		if got.SurveyID != "survey1" {
			t.Errorf("surveyId not enforced: %q", got.SurveyID)
		}
	})

	t.Run("decoded map form is accepted too", func(t *testing.T) {
		raw := map[string]interface{}{
			"title":    "Encuesta",
			"sections": []interface{}{},
		}
		got := RepairStructure("survey1", "fallback", raw)
		if got.Title != "Encuesta" || len(got.Sections) != 0 {
			t.Errorf("unexpected: %+v", got)
		}
	})
}
