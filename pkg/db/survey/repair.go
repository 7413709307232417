package survey

import (
	"go.mongodb.org/mongo-driver/bson"

	surveyTypes "github.com/sebasbeleno/nexus-backend/pkg/survey/types"
)

// RepairStructure normalizes a persisted structure field into a well-formed
// SurveyStructure. Older and partial records are expected: a missing field, a
// non-document value or a document without a sections array all yield an
// empty-sections skeleton, carrying over surveyId, title (falling back to the
// record's name), description and version best-effort from whatever scalar
// fields are present. The repair is silent; it is never surfaced as a
// failure.
func RepairStructure(surveyID string, fallbackName string, raw interface{}) surveyTypes.SurveyStructure {
	skeleton := surveyTypes.NewSurveyStructure(surveyID, fallbackName)

	doc := asDocument(raw)
	if doc == nil {
		return skeleton
	}

	if title, ok := doc["title"].(string); ok && title != "" {
		skeleton.Title = title
	}
	if description, ok := doc["description"].(string); ok {
		skeleton.Description = description
	}
	if version, ok := asInt(doc["version"]); ok {
		skeleton.Version = version
	}
	if id, ok := doc["surveyId"].(string); ok && id != "" && surveyID == "" {
		skeleton.SurveyID = id
	}

	if _, hasSections := doc["sections"].(bson.A); !hasSections {
		if _, hasSlice := doc["sections"].([]interface{}); !hasSlice {
			return skeleton
		}
	}

	// The document looks structurally sound; decode it properly. Any decode
	// error still degrades to the scalar-carrying skeleton.
	data, err := bson.Marshal(doc)
	if err != nil {
		return skeleton
	}
	var decoded surveyTypes.SurveyStructure
	if err := bson.Unmarshal(data, &decoded); err != nil {
		return skeleton
	}

	decoded.SurveyID = skeleton.SurveyID
	if decoded.Title == "" {
		decoded.Title = skeleton.Title
	}
	if decoded.Sections == nil {
		decoded.Sections = []surveyTypes.Section{}
	}
	return decoded
}

func asDocument(raw interface{}) bson.M {
	switch doc := raw.(type) {
	case bson.M:
		return doc
	case map[string]interface{}:
		return bson.M(doc)
	case bson.D:
		return doc.Map()
	}
	return nil
}

func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}
