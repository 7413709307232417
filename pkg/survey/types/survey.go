package types

// SurveyStructure is the root aggregate of the survey editor: a named,
// versioned questionnaire composed of ordered sections of questions.
// Section order is both display order and wizard traversal order.
type SurveyStructure struct {
	SurveyID    string    `bson:"surveyId" json:"surveyId"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Version     int       `bson:"version" json:"version"`
	Sections    []Section `bson:"sections" json:"sections"`
}

type Section struct {
	ID          string     `bson:"id" json:"id"`
	Title       string     `bson:"title" json:"title"`
	Description string     `bson:"description,omitempty" json:"description,omitempty"`
	Questions   []Question `bson:"questions" json:"questions"`
}

// NewSurveyStructure returns an empty skeleton for a fresh survey.
// Version is owned by the persistence layer and starts at zero here.
func NewSurveyStructure(surveyID string, title string) SurveyStructure {
	return SurveyStructure{
		SurveyID: surveyID,
		Title:    title,
		Sections: []Section{},
	}
}

// Clone returns a deep copy of the structure. Mutation operations work on
// clones so that previously returned snapshots are never modified.
func (s SurveyStructure) Clone() SurveyStructure {
	c := s
	c.Sections = make([]Section, len(s.Sections))
	for i, sec := range s.Sections {
		c.Sections[i] = sec.Clone()
	}
	return c
}

func (sec Section) Clone() Section {
	c := sec
	c.Questions = make([]Question, len(sec.Questions))
	for i, q := range sec.Questions {
		c.Questions[i] = q.Clone()
	}
	return c
}

// FindSection returns a pointer into the receiver's section list, or nil if
// the id is not present.
func (s *SurveyStructure) FindSection(sectionID string) *Section {
	for i := range s.Sections {
		if s.Sections[i].ID == sectionID {
			return &s.Sections[i]
		}
	}
	return nil
}

// QuestionIDs collects every question id across all sections, in order.
func (s SurveyStructure) QuestionIDs() []string {
	ids := []string{}
	for _, sec := range s.Sections {
		for _, q := range sec.Questions {
			ids = append(ids, q.ID)
		}
	}
	return ids
}
