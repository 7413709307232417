package wizard

import (
	"errors"

	"github.com/sebasbeleno/nexus-backend/pkg/survey/logic"
	surveyTypes "github.com/sebasbeleno/nexus-backend/pkg/survey/types"
	"github.com/sebasbeleno/nexus-backend/pkg/survey/validation"
)

var (
	// ErrNothingToCollect signals a survey with zero sections; callers must
	// handle this explicitly instead of receiving a silently completed run.
	ErrNothingToCollect = errors.New("survey has no sections to collect")
	ErrAlreadyComplete  = errors.New("wizard already completed")
)

// Wizard drives a respondent through the survey's sections in order, one
// section per step, accumulating a single flat answer map. Visibility of
// conditional questions is re-evaluated on every step render and again when
// advancing, since answers changed after backward navigation can flip the
// visibility of later questions.
//
// A wizard is a single-user interaction sequence and is not safe for
// concurrent use; the session registry serializes access per session.
type Wizard struct {
	structure surveyTypes.SurveyStructure
	step      int
	answers   map[string]interface{}
	completed bool
}

func New(structure surveyTypes.SurveyStructure) (*Wizard, error) {
	if len(structure.Sections) == 0 {
		return nil, ErrNothingToCollect
	}
	return &Wizard{
		structure: structure.Clone(),
		answers:   map[string]interface{}{},
	}, nil
}

// NextResult is the outcome of one forward transition: either blocked with
// field errors, advanced, or completed with the final answer map.
type NextResult struct {
	Blocked     bool                   `json:"blocked"`
	FieldErrors map[string]string      `json:"fieldErrors,omitempty"`
	Completed   bool                   `json:"completed"`
	StepIndex   int                    `json:"stepIndex"`
	Answers     map[string]interface{} `json:"answers,omitempty"`
}

// Next merges the step's pending input into a candidate answer set, validates
// the current section's visible questions against it and, on success, commits
// the merge and advances. On the last section it transitions to the terminal
// completed state and emits the full answer map. Validation failure is a
// normal result variant, not an error.
func (w *Wizard) Next(pending map[string]interface{}) (NextResult, error) {
	if w.completed {
		return NextResult{}, ErrAlreadyComplete
	}

	candidate := mergeAnswers(w.answers, pending)
	section := w.structure.Sections[w.step]

	result := validation.BuildSectionValidator(section, candidate).Validate(candidate)
	if !result.Valid {
		return NextResult{Blocked: true, FieldErrors: result.Errors, StepIndex: w.step}, nil
	}

	w.answers = candidate
	if w.step == len(w.structure.Sections)-1 {
		w.completed = true
		return NextResult{Completed: true, StepIndex: w.step, Answers: mergeAnswers(w.answers, nil)}, nil
	}
	w.step++
	return NextResult{StepIndex: w.step}, nil
}

// Previous merges pending input without validating and moves one step back.
// There is no validation gate on backward navigation. No-op at the first
// step (the merge still happens).
func (w *Wizard) Previous(pending map[string]interface{}) (int, error) {
	if w.completed {
		return 0, ErrAlreadyComplete
	}
	w.answers = mergeAnswers(w.answers, pending)
	if w.step > 0 {
		w.step--
	}
	return w.step, nil
}

// Reset clears all answers and returns to the first step, for a fresh
// collection run on the same structure.
func (w *Wizard) Reset() {
	w.answers = map[string]interface{}{}
	w.step = 0
	w.completed = false
}

// CurrentSection returns the section of the active step, or false once the
// wizard is complete.
func (w *Wizard) CurrentSection() (surveyTypes.Section, bool) {
	if w.completed {
		return surveyTypes.Section{}, false
	}
	return w.structure.Sections[w.step].Clone(), true
}

// VisibleQuestions evaluates conditional logic against the current answers
// and returns the questions to render for the active step.
func (w *Wizard) VisibleQuestions() []surveyTypes.Question {
	if w.completed {
		return nil
	}
	visible := []surveyTypes.Question{}
	for _, q := range w.structure.Sections[w.step].Questions {
		if logic.ShouldShow(q, w.answers) {
			visible = append(visible, q.Clone())
		}
	}
	return visible
}

func (w *Wizard) StepIndex() int  { return w.step }
func (w *Wizard) StepCount() int  { return len(w.structure.Sections) }
func (w *Wizard) Completed() bool { return w.completed }

// Answers returns a snapshot of the accumulated answer map.
func (w *Wizard) Answers() map[string]interface{} {
	return mergeAnswers(w.answers, nil)
}

func mergeAnswers(base map[string]interface{}, overrides map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(base)+len(overrides))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}
