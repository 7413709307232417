package apihandlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	mw "github.com/sebasbeleno/nexus-backend/pkg/apihelpers/middlewares"
	surveyDB "github.com/sebasbeleno/nexus-backend/pkg/db/survey"
	"github.com/sebasbeleno/nexus-backend/pkg/notifier"
	"github.com/sebasbeleno/nexus-backend/pkg/survey/editor"
	surveyTypes "github.com/sebasbeleno/nexus-backend/pkg/survey/types"
	"github.com/sebasbeleno/nexus-backend/pkg/utils"
)

// Structure edit operations accepted by the edits endpoint.
const (
	EDIT_OP_UPDATE_SURVEY_TITLE        = "updateSurveyTitle"
	EDIT_OP_UPDATE_SURVEY_DESCRIPTION  = "updateSurveyDescription"
	EDIT_OP_ADD_SECTION                = "addSection"
	EDIT_OP_DELETE_SECTION             = "deleteSection"
	EDIT_OP_UPDATE_SECTION_TITLE       = "updateSectionTitle"
	EDIT_OP_UPDATE_SECTION_DESCRIPTION = "updateSectionDescription"
	EDIT_OP_REORDER_SECTIONS           = "reorderSections"
	EDIT_OP_ADD_QUESTION               = "addQuestion"
	EDIT_OP_DELETE_QUESTION            = "deleteQuestion"
	EDIT_OP_UPDATE_QUESTION            = "updateQuestion"
)

func (h *HttpEndpoints) AddSurveyManagementAPI(rg *gin.RouterGroup) {
	orgSurveysGroup := rg.Group("/organizations/:organizationID/surveys")
	{
		orgSurveysGroup.GET("", h.getSurveysForOrganization)
		orgSurveysGroup.POST("", mw.RequirePayload(), h.createSurvey)
	}

	surveyGroup := rg.Group("/surveys/:surveyID")
	{
		surveyGroup.GET("", h.getSurvey)
		surveyGroup.PUT("/structure", mw.RequirePayload(), h.saveSurveyStructure)
		surveyGroup.POST("/edits", mw.RequirePayload(), h.applySurveyEdit)
		surveyGroup.PUT("/infos", mw.RequirePayload(), h.updateSurveyInfos)
		surveyGroup.DELETE("", h.deleteSurvey)
	}
}

func (h *HttpEndpoints) getSurveysForOrganization(c *gin.Context) {
	instanceID := c.Param("instanceID")
	organizationID := c.Param("organizationID")

	includeInactive := c.DefaultQuery("includeInactive", "false") == "true"

	records, err := h.surveyDBConn.GetSurveysForOrganization(instanceID, organizationID, includeInactive)
	if err != nil {
		slog.Error("error getting surveys", slog.String("instanceID", instanceID), slog.String("organizationID", organizationID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error getting surveys"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"surveys": records})
}

func (h *HttpEndpoints) createSurvey(c *gin.Context) {
	instanceID := c.Param("instanceID")
	organizationID := c.Param("organizationID")

	var req struct {
		SurveyID    string `json:"surveyId"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.IsURLSafe(req.SurveyID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "surveyId must be URL safe"})
		return
	}

	record, err := h.surveyDBConn.CreateSurvey(instanceID, req.SurveyID, organizationID, req.Name, req.Description)
	if err != nil {
		slog.Error("error creating survey", slog.String("instanceID", instanceID), slog.String("surveyID", req.SurveyID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error creating survey"})
		return
	}

	slog.Info("survey created", slog.String("instanceID", instanceID), slog.String("surveyID", req.SurveyID))
	c.JSON(http.StatusCreated, gin.H{"survey": record})
}

func (h *HttpEndpoints) getSurvey(c *gin.Context) {
	instanceID := c.Param("instanceID")
	surveyID := c.Param("surveyID")

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

	c.JSON(http.StatusOK, gin.H{"survey": loaded})
}

func (h *HttpEndpoints) saveSurveyStructure(c *gin.Context) {
	instanceID := c.Param("instanceID")
	surveyID := c.Param("surveyID")

	var structure surveyTypes.SurveyStructure
	if err := c.ShouldBindJSON(&structure); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	structure.SurveyID = surveyID

	newVersion, err := h.surveyDBConn.SaveSurveyStructure(instanceID, surveyID, structure)
	if err != nil {
		if errors.Is(err, surveyDB.ErrSurveyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "survey not found"})
			return
		}
		slog.Error("error saving survey structure", slog.String("instanceID", instanceID), slog.String("surveyID", surveyID), slog.String("error", err.Error()))
		h.notifier.Notify(notifier.SEVERITY_ERROR, fmt.Sprintf("saving survey structure failed for %s/%s: %s", instanceID, surveyID, err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error saving survey structure"})
		return
	}

	slog.Info("survey structure saved", slog.String("instanceID", instanceID), slog.String("surveyID", surveyID), slog.Int("version", newVersion))
	h.notifier.Notify(notifier.SEVERITY_INFO, fmt.Sprintf("survey structure saved for %s/%s (version %d)", instanceID, surveyID, newVersion))
	c.JSON(http.StatusOK, gin.H{"version": newVersion})
}

type surveyEditReq struct {
	Op          string                `json:"op"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	SectionID   string                `json:"sectionId"`
	QuestionID  string                `json:"questionId"`
	OrderedIDs  []string              `json:"orderedIds"`
	Type        string                `json:"questionType"`
	Patch       *editor.QuestionPatch `json:"patch"`
}

// applySurveyEdit loads the current structure, runs a single reducer
// operation on it and persists the result. Unknown section or question ids
// leave the structure unchanged but still bump the version on save.
func (h *HttpEndpoints) applySurveyEdit(c *gin.Context) {
	instanceID := c.Param("instanceID")
	surveyID := c.Param("surveyID")

	var req surveyEditReq
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

	// UUID ids for editor-created elements: edits arrive from many admin
	// clients and the ids end up in exported data, so favor the stronger
	// uniqueness guarantee over the shorter time-random form.
	next, err := applyEditOp(editor.NewEditor(editor.UUIDGenerator{}), loaded.Structure, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newVersion, err := h.surveyDBConn.SaveSurveyStructure(instanceID, surveyID, next)
	if err != nil {
		slog.Error("error saving survey structure", slog.String("instanceID", instanceID), slog.String("surveyID", surveyID), slog.String("error", err.Error()))
		h.notifier.Notify(notifier.SEVERITY_ERROR, fmt.Sprintf("saving survey structure failed for %s/%s: %s", instanceID, surveyID, err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error saving survey structure"})
		return
	}

	next.Version = newVersion
	c.JSON(http.StatusOK, gin.H{"structure": next})
}

func applyEditOp(ed editor.Editor, s surveyTypes.SurveyStructure, req surveyEditReq) (surveyTypes.SurveyStructure, error) {
	switch req.Op {
	case EDIT_OP_UPDATE_SURVEY_TITLE:
		return ed.UpdateSurveyTitle(s, req.Title), nil
	case EDIT_OP_UPDATE_SURVEY_DESCRIPTION:
		return ed.UpdateSurveyDescription(s, req.Description), nil
	case EDIT_OP_ADD_SECTION:
		return ed.AddSection(s), nil
	case EDIT_OP_DELETE_SECTION:
		return ed.DeleteSection(s, req.SectionID), nil
	case EDIT_OP_UPDATE_SECTION_TITLE:
		return ed.UpdateSectionTitle(s, req.SectionID, req.Title), nil
	case EDIT_OP_UPDATE_SECTION_DESCRIPTION:
		return ed.UpdateSectionDescription(s, req.SectionID, req.Description), nil
	case EDIT_OP_REORDER_SECTIONS:
		return ed.ReorderSections(s, req.OrderedIDs), nil
	case EDIT_OP_ADD_QUESTION:
		if !surveyTypes.IsValidQuestionType(req.Type) {
			return s, fmt.Errorf("unknown question type '%s'", req.Type)
		}
		return ed.AddQuestion(s, req.SectionID, req.Type), nil
	case EDIT_OP_DELETE_QUESTION:
		return ed.DeleteQuestion(s, req.SectionID, req.QuestionID), nil
	case EDIT_OP_UPDATE_QUESTION:
		if req.Patch == nil {
			return s, errors.New("patch is required")
		}
		return ed.UpdateQuestion(s, req.SectionID, req.QuestionID, *req.Patch), nil
	default:
		return s, fmt.Errorf("unknown edit operation '%s'", req.Op)
	}
}

func (h *HttpEndpoints) updateSurveyInfos(c *gin.Context) {
	instanceID := c.Param("instanceID")
	surveyID := c.Param("surveyID")

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.surveyDBConn.UpdateSurveyInfos(instanceID, surveyID, req.Name, req.Description)
	if err != nil {
		if errors.Is(err, surveyDB.ErrSurveyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "survey not found"})
			return
		}
		slog.Error("error updating survey infos", slog.String("instanceID", instanceID), slog.String("surveyID", surveyID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error updating survey infos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "survey updated"})
}

func (h *HttpEndpoints) deleteSurvey(c *gin.Context) {
	instanceID := c.Param("instanceID")
	surveyID := c.Param("surveyID")

	err := h.surveyDBConn.DeleteSurvey(instanceID, surveyID)
	if err != nil {
		if errors.Is(err, surveyDB.ErrSurveyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "survey not found"})
			return
		}
		slog.Error("error deleting survey", slog.String("instanceID", instanceID), slog.String("surveyID", surveyID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error deleting survey"})
		return
	}

	slog.Info("survey deleted", slog.String("instanceID", instanceID), slog.String("surveyID", surveyID))
	c.JSON(http.StatusOK, gin.H{"message": "survey deleted"})
}
