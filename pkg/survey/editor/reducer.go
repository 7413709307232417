package editor

import (
	"fmt"

	surveyTypes "github.com/sebasbeleno/nexus-backend/pkg/survey/types"
)

const (
	DEFAULT_SECTION_TITLE         = "Nueva Sección"
	DEFAULT_QUESTION_LABEL_PREFIX = "Nueva Pregunta"
)

var defaultOptions = []surveyTypes.Option{
	{Value: "option1", Label: "Opción 1"},
	{Value: "option2", Label: "Opción 2"},
}

// Editor holds the reducer operations over a SurveyStructure. Every operation
// returns a fresh deep copy and never touches the input; unknown ids are
// no-ops. SurveyID and Version are only changed by a survey-level replace,
// never by section/question operations.
type Editor struct {
	IDGen IDGenerator
}

func NewEditor(idGen IDGenerator) Editor {
	if idGen == nil {
		idGen = TimeRandomID{}
	}
	return Editor{IDGen: idGen}
}

func (e Editor) UpdateSurveyTitle(s surveyTypes.SurveyStructure, title string) surveyTypes.SurveyStructure {
	next := s.Clone()
	next.Title = title
	return next
}

func (e Editor) UpdateSurveyDescription(s surveyTypes.SurveyStructure, description string) surveyTypes.SurveyStructure {
	next := s.Clone()
	next.Description = description
	return next
}

// AddSection appends a new empty section with a freshly generated id.
func (e Editor) AddSection(s surveyTypes.SurveyStructure) surveyTypes.SurveyStructure {
	next := s.Clone()
	next.Sections = append(next.Sections, surveyTypes.Section{
		ID:        e.IDGen.NewID(),
		Title:     DEFAULT_SECTION_TITLE,
		Questions: []surveyTypes.Question{},
	})
	return next
}

// DeleteSection removes the section and, with it, all its questions.
// Conditional-logic conditions elsewhere that referenced one of the removed
// questions become permanently unsatisfiable; that is accepted behaviour,
// not repaired here.
func (e Editor) DeleteSection(s surveyTypes.SurveyStructure, sectionID string) surveyTypes.SurveyStructure {
	next := s.Clone()
	sections := make([]surveyTypes.Section, 0, len(next.Sections))
	for _, sec := range next.Sections {
		if sec.ID != sectionID {
			sections = append(sections, sec)
		}
	}
	next.Sections = sections
	return next
}

func (e Editor) UpdateSectionTitle(s surveyTypes.SurveyStructure, sectionID string, title string) surveyTypes.SurveyStructure {
	next := s.Clone()
	if sec := next.FindSection(sectionID); sec != nil {
		sec.Title = title
	}
	return next
}

func (e Editor) UpdateSectionDescription(s surveyTypes.SurveyStructure, sectionID string, description string) surveyTypes.SurveyStructure {
	next := s.Clone()
	if sec := next.FindSection(sectionID); sec != nil {
		sec.Description = description
	}
	return next
}

// ReorderSections rebuilds the section list to match orderedIDs. Ids present
// in the structure but missing from orderedIDs are silently dropped; callers
// must pass a permutation of all existing ids to avoid data loss.
func (e Editor) ReorderSections(s surveyTypes.SurveyStructure, orderedIDs []string) surveyTypes.SurveyStructure {
	next := s.Clone()
	byID := map[string]surveyTypes.Section{}
	for _, sec := range next.Sections {
		byID[sec.ID] = sec
	}
	sections := make([]surveyTypes.Section, 0, len(orderedIDs))
	for _, id := range orderedIDs {
		if sec, ok := byID[id]; ok {
			sections = append(sections, sec)
		}
	}
	next.Sections = sections
	return next
}

// AddQuestion appends a new question of the given type to the section, with a
// generated id and a type-derived default label. Option-bearing types get two
// placeholder options.
func (e Editor) AddQuestion(s surveyTypes.SurveyStructure, sectionID string, questionType string) surveyTypes.SurveyStructure {
	next := s.Clone()
	sec := next.FindSection(sectionID)
	if sec == nil {
		return next
	}
	q := surveyTypes.Question{
		ID:    e.IDGen.NewID(),
		Type:  questionType,
		Label: fmt.Sprintf("%s %s", DEFAULT_QUESTION_LABEL_PREFIX, questionType),
	}
	if surveyTypes.IsOptionType(questionType) {
		q.Options = make([]surveyTypes.Option, len(defaultOptions))
		copy(q.Options, defaultOptions)
	}
	sec.Questions = append(sec.Questions, q)
	return next
}

func (e Editor) DeleteQuestion(s surveyTypes.SurveyStructure, sectionID string, questionID string) surveyTypes.SurveyStructure {
	next := s.Clone()
	sec := next.FindSection(sectionID)
	if sec == nil {
		return next
	}
	questions := make([]surveyTypes.Question, 0, len(sec.Questions))
	for _, q := range sec.Questions {
		if q.ID != questionID {
			questions = append(questions, q)
		}
	}
	sec.Questions = questions
	return next
}

// QuestionPatch carries a partial question update. Nil fields are left
// untouched. A non-nil Options or Validations pointer replaces the list
// wholesale, so pointing at a nil slice clears it.
type QuestionPatch struct {
	Type           *string                       `json:"type,omitempty"`
	Label          *string                       `json:"label,omitempty"`
	Placeholder    *string                       `json:"placeholder,omitempty"`
	Description    *string                       `json:"description,omitempty"`
	Options        *[]surveyTypes.Option         `json:"options,omitempty"`
	HasOtherOption *bool                         `json:"hasOtherOption,omitempty"`
	Required       *bool                         `json:"required,omitempty"`
	Validations    *[]surveyTypes.ValidationRule `json:"validations,omitempty"`

	ConditionalLogic      *surveyTypes.ConditionalLogic `json:"conditionalLogic,omitempty"`
	ClearConditionalLogic bool                          `json:"clearConditionalLogic,omitempty"`
}

// UpdateQuestion merges the patch into the question. No-op if either id is
// absent.
func (e Editor) UpdateQuestion(s surveyTypes.SurveyStructure, sectionID string, questionID string, patch QuestionPatch) surveyTypes.SurveyStructure {
	next := s.Clone()
	sec := next.FindSection(sectionID)
	if sec == nil {
		return next
	}
	for i := range sec.Questions {
		if sec.Questions[i].ID != questionID {
			continue
		}
		q := &sec.Questions[i]
		if patch.Type != nil {
			q.Type = *patch.Type
		}
		if patch.Label != nil {
			q.Label = *patch.Label
		}
		if patch.Placeholder != nil {
			q.Placeholder = *patch.Placeholder
		}
		if patch.Description != nil {
			q.Description = *patch.Description
		}
		if patch.Options != nil {
			q.Options = *patch.Options
		}
		if patch.HasOtherOption != nil {
			q.HasOtherOption = *patch.HasOtherOption
		}
		if patch.Required != nil {
			q.Required = *patch.Required
		}
		if patch.Validations != nil {
			q.Validations = *patch.Validations
		}
		if patch.ClearConditionalLogic {
			q.ConditionalLogic = nil
		} else if patch.ConditionalLogic != nil {
			cl := patch.ConditionalLogic.Clone()
			q.ConditionalLogic = &cl
		}
		break
	}
	return next
}
