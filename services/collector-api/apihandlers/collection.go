package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	mw "github.com/sebasbeleno/nexus-backend/pkg/apihelpers/middlewares"
	surveyDB "github.com/sebasbeleno/nexus-backend/pkg/db/survey"
	surveyTypes "github.com/sebasbeleno/nexus-backend/pkg/survey/types"
	"github.com/sebasbeleno/nexus-backend/pkg/survey/wizard"
)

func (h *HttpEndpoints) AddResponseCollectionAPI(rg *gin.RouterGroup) {
	instanceGroup := rg.Group("/:instanceID")
	instanceGroup.Use(h.checkInstanceID())
	{
		instanceGroup.POST("/surveys/:surveyID/sessions", mw.RequirePayload(), h.startSession)

		sessionGroup := instanceGroup.Group("/sessions/:sessionID")
		{
			sessionGroup.GET("", h.getSessionState)
			sessionGroup.POST("/next", h.nextStep)
			sessionGroup.POST("/previous", h.previousStep)
			sessionGroup.POST("/reset", h.resetSession)
			sessionGroup.DELETE("", h.abandonSession)
		}
	}
}

type stepState struct {
	SessionID        string                 `json:"sessionId"`
	SurveyID         string                 `json:"surveyId"`
	StepIndex        int                    `json:"stepIndex"`
	StepCount        int                    `json:"stepCount"`
	SectionTitle     string                 `json:"sectionTitle"`
	VisibleQuestions []surveyTypes.Question `json:"visibleQuestions"`
	Completed        bool                   `json:"completed"`
}

func stepStateFromSession(session *wizard.Session) stepState {
	state := stepState{
		SessionID: session.ID,
		SurveyID:  session.SurveyID,
		StepIndex: session.Wizard.StepIndex(),
		StepCount: session.Wizard.StepCount(),
		Completed: session.Wizard.Completed(),
	}
	if section, ok := session.Wizard.CurrentSection(); ok {
		state.SectionTitle = section.Title
	}
	state.VisibleQuestions = session.Wizard.VisibleQuestions()
	return state
}

// completedRecordFromSession turns a finished session into the response
// record that gets persisted. It reads the answers off the wizard rather
// than the step result so it can be called again when a save has to be
// retried.
func completedRecordFromSession(session *wizard.Session) *surveyDB.ResponseRecord {
	return &surveyDB.ResponseRecord{
		SurveyID:      session.SurveyID,
		SurveyVersion: session.SurveyVersion,
		SurveyorID:    session.SurveyorID,
		PropertyID:    session.PropertyID,
		SessionID:     session.ID,
		Answers:       session.Wizard.Answers(),
		SubmittedAt:   time.Now().Unix(),
	}
}

func (h *HttpEndpoints) startSession(c *gin.Context) {
	instanceID := c.Param("instanceID")
	surveyID := c.Param("surveyID")

	var req struct {
		SurveyorID string `json:"surveyorId"`
		PropertyID string `json:"propertyId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loaded, err := h.surveyDBConn.GetSurveyByID(instanceID, surveyID)
	if err != nil {
		if errors.Is(err, surveyDB.ErrSurveyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "survey not found"})
			return
		}
		slog.Error("error getting survey", slog.String("instanceID", instanceID), slog.String("surveyID", surveyID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error getting survey"})
		return
	}

	w, err := wizard.New(loaded.Structure)
	if err != nil {
		if errors.Is(err, wizard.ErrNothingToCollect) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "survey has no sections to collect"})
			return
		}
		slog.Error("error building wizard", slog.String("instanceID", instanceID), slog.String("surveyID", surveyID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error starting session"})
		return
	}

	session := h.sessions.CreateSession(instanceID, surveyID, req.SurveyorID, w)
	session.PropertyID = req.PropertyID
	session.SurveyVersion = loaded.Structure.Version

	slog.Info("collection session started", slog.String("instanceID", instanceID), slog.String("surveyID", surveyID), slog.String("sessionID", session.ID))
	c.JSON(http.StatusCreated, stepStateFromSession(session))
}

func (h *HttpEndpoints) getSessionState(c *gin.Context) {
	sessionID := c.Param("sessionID")

	var state stepState
	err := h.sessions.WithSession(sessionID, func(session *wizard.Session) error {
		state = stepStateFromSession(session)
		return nil
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *HttpEndpoints) nextStep(c *gin.Context) {
	instanceID := c.Param("instanceID")
	sessionID := c.Param("sessionID")

	// Pending answers are optional: a step may have nothing to fill in.
	var req struct {
		Answers map[string]interface{} `json:"answers"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			slog.Error("failed to bind request", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	var result wizard.NextResult
	var state stepState
	var completedRecord *surveyDB.ResponseRecord
	err := h.sessions.WithSession(sessionID, func(session *wizard.Session) error {
		// A session that is still around with a completed wizard means an
		// earlier save failed. Rebuild the record and retry the save
		// instead of advancing the wizard again.
		if session.Wizard.Completed() {
			result = wizard.NextResult{Completed: true, StepIndex: session.Wizard.StepIndex()}
			completedRecord = completedRecordFromSession(session)
			return nil
		}

		var err error
		result, err = session.Wizard.Next(req.Answers)
		if err != nil {
			return err
		}
		if result.Completed {
			completedRecord = completedRecordFromSession(session)
		} else {
			state = stepStateFromSession(session)
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	if result.Blocked {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":       "validation failed",
			"fieldErrors": result.FieldErrors,
			"stepIndex":   result.StepIndex,
		})
		return
	}

	if result.Completed {
		saved, err := h.surveyDBConn.SaveResponse(instanceID, *completedRecord)
		if err != nil {
			// Keep the session so the surveyor can retry the submission.
			slog.Error("error saving response", slog.String("instanceID", instanceID), slog.String("sessionID", sessionID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error saving response"})
			return
		}
		h.sessions.DropSession(sessionID)
		slog.Info("collection session completed", slog.String("instanceID", instanceID), slog.String("surveyID", saved.SurveyID), slog.String("sessionID", sessionID))
		c.JSON(http.StatusOK, gin.H{
			"completed":  true,
			"responseId": saved.ID.Hex(),
		})
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *HttpEndpoints) previousStep(c *gin.Context) {
	sessionID := c.Param("sessionID")

	var req struct {
		Answers map[string]interface{} `json:"answers"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			slog.Error("failed to bind request", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	var state stepState
	err := h.sessions.WithSession(sessionID, func(session *wizard.Session) error {
		if _, err := session.Wizard.Previous(req.Answers); err != nil {
			return err
		}
		state = stepStateFromSession(session)
		return nil
	})
	if err != nil {
		if errors.Is(err, wizard.ErrAlreadyComplete) {
			c.JSON(http.StatusConflict, gin.H{"error": "session already completed"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *HttpEndpoints) resetSession(c *gin.Context) {
	sessionID := c.Param("sessionID")

	var state stepState
	err := h.sessions.WithSession(sessionID, func(session *wizard.Session) error {
		session.Wizard.Reset()
		state = stepStateFromSession(session)
		return nil
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *HttpEndpoints) abandonSession(c *gin.Context) {
	sessionID := c.Param("sessionID")

	h.sessions.DropSession(sessionID)
	c.JSON(http.StatusOK, gin.H{"message": "session dropped"})
}
