package survey

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	surveyTypes "github.com/sebasbeleno/nexus-backend/pkg/survey/types"
)

// SurveyRecord is the persisted shape of a survey. Structure is stored as a
// raw document and repaired at the load boundary: older records may lack the
// structure field entirely, or carry a partial one without sections.
type SurveyRecord struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SurveyID       string             `bson:"surveyId" json:"surveyId"`
	OrganizationID string             `bson:"organizationId,omitempty" json:"organizationId,omitempty"`
	// Name is the record-level scalar some older records carry instead of a
	// structure title; it is the title fallback during repair.
	Name        string      `bson:"name,omitempty" json:"name,omitempty"`
	Description string      `bson:"description,omitempty" json:"description,omitempty"`
	Structure   interface{} `bson:"structure,omitempty" json:"structure,omitempty"`
	Active      bool        `bson:"active" json:"active"`
	CreatedAt   int64       `bson:"createdAt" json:"createdAt"`
	UpdatedAt   int64       `bson:"updatedAt" json:"updatedAt"`
}

// ResponseRecord is one completed wizard run: a flat answer map keyed by
// question id, bound to the survey version it was collected against.
type ResponseRecord struct {
	ID            primitive.ObjectID     `bson:"_id,omitempty" json:"id,omitempty"`
	SurveyID      string                 `bson:"surveyId" json:"surveyId"`
	SurveyVersion int                    `bson:"surveyVersion" json:"surveyVersion"`
	SurveyorID    string                 `bson:"surveyorId,omitempty" json:"surveyorId,omitempty"`
	PropertyID    string                 `bson:"propertyId,omitempty" json:"propertyId,omitempty"`
	SessionID     string                 `bson:"sessionId,omitempty" json:"sessionId,omitempty"`
	Answers       map[string]interface{} `bson:"answers" json:"answers"`
	SubmittedAt   int64                  `bson:"submittedAt" json:"submittedAt"`
	ArrivedAt     int64                  `bson:"arrivedAt" json:"arrivedAt"`
}

const (
	ASSIGNMENT_STATUS_PENDING     = "pending"
	ASSIGNMENT_STATUS_IN_PROGRESS = "in_progress"
	ASSIGNMENT_STATUS_COMPLETED   = "completed"
	ASSIGNMENT_STATUS_CANCELLED   = "cancelled"
)

// Assignment binds a survey to a surveyor and a property.
type Assignment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SurveyID   string             `bson:"surveyId" json:"surveyId"`
	SurveyorID string             `bson:"surveyorId" json:"surveyorId"`
	PropertyID string             `bson:"propertyId,omitempty" json:"propertyId,omitempty"`
	Status     string             `bson:"status" json:"status"`
	Notes      string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt  int64              `bson:"createdAt" json:"createdAt"`
	UpdatedAt  int64              `bson:"updatedAt" json:"updatedAt"`
}

// LoadedSurvey is what the load boundary hands to callers: the record's
// metadata plus a well-formed structure, repaired if needed.
type LoadedSurvey struct {
	Record    SurveyRecord                `json:"record"`
	Structure surveyTypes.SurveyStructure `json:"structure"`
}
