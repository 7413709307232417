package editor

import (
	"sync"

	surveyTypes "github.com/sebasbeleno/nexus-backend/pkg/survey/types"
)

// Store is the single source of truth for one editing session's
// SurveyStructure. It applies the reducer operations atomically and hands out
// immutable snapshots; there is never partial-update visibility. The store is
// session-scoped, owned by whatever drives the interaction, not a
// process-wide singleton.
type Store struct {
	mu      sync.Mutex
	editor  Editor
	current surveyTypes.SurveyStructure
}

func NewStore(idGen IDGenerator) *Store {
	return &Store{
		editor:  NewEditor(idGen),
		current: surveyTypes.NewSurveyStructure("", ""),
	}
}

// Survey returns a snapshot of the current structure.
func (st *Store) Survey() surveyTypes.SurveyStructure {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.current.Clone()
}

// SetSurvey replaces the entire structure unconditionally. No validation is
// performed; callers are responsible for shape-correctness (the persistence
// layer repairs malformed records before they get here).
func (st *Store) SetSurvey(s surveyTypes.SurveyStructure) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.current = s.Clone()
}

func (st *Store) apply(op func(surveyTypes.SurveyStructure) surveyTypes.SurveyStructure) surveyTypes.SurveyStructure {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.current = op(st.current)
	return st.current.Clone()
}

func (st *Store) UpdateSurveyTitle(title string) surveyTypes.SurveyStructure {
	return st.apply(func(s surveyTypes.SurveyStructure) surveyTypes.SurveyStructure {
		return st.editor.UpdateSurveyTitle(s, title)
	})
}

func (st *Store) UpdateSurveyDescription(description string) surveyTypes.SurveyStructure {
	return st.apply(func(s surveyTypes.SurveyStructure) surveyTypes.SurveyStructure {
		return st.editor.UpdateSurveyDescription(s, description)
	})
}

func (st *Store) AddSection() surveyTypes.SurveyStructure {
	return st.apply(st.editor.AddSection)
}

func (st *Store) DeleteSection(sectionID string) surveyTypes.SurveyStructure {
	return st.apply(func(s surveyTypes.SurveyStructure) surveyTypes.SurveyStructure {
		return st.editor.DeleteSection(s, sectionID)
	})
}

func (st *Store) UpdateSectionTitle(sectionID string, title string) surveyTypes.SurveyStructure {
	return st.apply(func(s surveyTypes.SurveyStructure) surveyTypes.SurveyStructure {
		return st.editor.UpdateSectionTitle(s, sectionID, title)
	})
}

func (st *Store) UpdateSectionDescription(sectionID string, description string) surveyTypes.SurveyStructure {
	return st.apply(func(s surveyTypes.SurveyStructure) surveyTypes.SurveyStructure {
		return st.editor.UpdateSectionDescription(s, sectionID, description)
	})
}

func (st *Store) ReorderSections(orderedIDs []string) surveyTypes.SurveyStructure {
	return st.apply(func(s surveyTypes.SurveyStructure) surveyTypes.SurveyStructure {
		return st.editor.ReorderSections(s, orderedIDs)
	})
}

func (st *Store) AddQuestion(sectionID string, questionType string) surveyTypes.SurveyStructure {
	return st.apply(func(s surveyTypes.SurveyStructure) surveyTypes.SurveyStructure {
		return st.editor.AddQuestion(s, sectionID, questionType)
	})
}

func (st *Store) DeleteQuestion(sectionID string, questionID string) surveyTypes.SurveyStructure {
	return st.apply(func(s surveyTypes.SurveyStructure) surveyTypes.SurveyStructure {
		return st.editor.DeleteQuestion(s, sectionID, questionID)
	})
}

func (st *Store) UpdateQuestion(sectionID string, questionID string, patch QuestionPatch) surveyTypes.SurveyStructure {
	return st.apply(func(s surveyTypes.SurveyStructure) surveyTypes.SurveyStructure {
		return st.editor.UpdateQuestion(s, sectionID, questionID, patch)
	})
}
