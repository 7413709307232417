package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	mw "github.com/sebasbeleno/nexus-backend/pkg/apihelpers/middlewares"
	surveyDB "github.com/sebasbeleno/nexus-backend/pkg/db/survey"
	"github.com/sebasbeleno/nexus-backend/pkg/utils"
)

func (h *HttpEndpoints) AddAssignmentAPI(rg *gin.RouterGroup) {
	surveyAssignmentsGroup := rg.Group("/surveys/:surveyID/assignments")
	{
		surveyAssignmentsGroup.GET("", h.getAssignmentsBySurvey)
		surveyAssignmentsGroup.POST("", mw.RequirePayload(), h.createAssignment)
	}

	rg.GET("/surveyors/:surveyorID/assignments", h.getAssignmentsBySurveyor)

	assignmentGroup := rg.Group("/assignments/:assignmentID")
	{
		assignmentGroup.PUT("/status", mw.RequirePayload(), h.updateAssignmentStatus)
		assignmentGroup.DELETE("", h.deleteAssignment)
	}
}

func (h *HttpEndpoints) getAssignmentsBySurvey(c *gin.Context) {
	instanceID := c.Param("instanceID")
	surveyID := c.Param("surveyID")

	assignments, err := h.surveyDBConn.GetAssignmentsBySurvey(instanceID, surveyID)
	if err != nil {
		slog.Error("error getting assignments", slog.String("instanceID", instanceID), slog.String("surveyID", surveyID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error getting assignments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"assignments": assignments})
}

func (h *HttpEndpoints) getAssignmentsBySurveyor(c *gin.Context) {
	instanceID := c.Param("instanceID")
	surveyorID := c.Param("surveyorID")

	assignments, err := h.surveyDBConn.GetAssignmentsBySurveyor(instanceID, surveyorID)
	if err != nil {
		slog.Error("error getting assignments", slog.String("instanceID", instanceID), slog.String("surveyorID", surveyorID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error getting assignments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"assignments": assignments})
}

func (h *HttpEndpoints) createAssignment(c *gin.Context) {
	instanceID := c.Param("instanceID")
	surveyID := c.Param("surveyID")

	var req struct {
		SurveyorID string `json:"surveyorId"`
		PropertyID string `json:"propertyId"`
		Notes      string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.SurveyorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "surveyorId is required"})
		return
	}

	assignment, err := h.surveyDBConn.CreateAssignment(instanceID, surveyDB.Assignment{
		SurveyID:   surveyID,
		SurveyorID: req.SurveyorID,
		PropertyID: req.PropertyID,
		Notes:      req.Notes,
	})
	if err != nil {
		slog.Error("error creating assignment", slog.String("instanceID", instanceID), slog.String("surveyID", surveyID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error creating assignment"})
		return
	}

	slog.Info("assignment created", slog.String("instanceID", instanceID), slog.String("surveyID", surveyID), slog.String("surveyorID", req.SurveyorID))
	c.JSON(http.StatusCreated, gin.H{"assignment": assignment})
}

func (h *HttpEndpoints) updateAssignmentStatus(c *gin.Context) {
	instanceID := c.Param("instanceID")
	assignmentID := c.Param("assignmentID")

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	validStatuses := []string{
		surveyDB.ASSIGNMENT_STATUS_PENDING,
		surveyDB.ASSIGNMENT_STATUS_IN_PROGRESS,
		surveyDB.ASSIGNMENT_STATUS_COMPLETED,
		surveyDB.ASSIGNMENT_STATUS_CANCELLED,
	}
	if !utils.ContainsString(validStatuses, req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}

	err := h.surveyDBConn.UpdateAssignmentStatus(instanceID, assignmentID, req.Status)
	if err != nil {
		if errors.Is(err, surveyDB.ErrAssignmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "assignment not found"})
			return
		}
		slog.Error("error updating assignment status", slog.String("instanceID", instanceID), slog.String("assignmentID", assignmentID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error updating assignment status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "assignment updated"})
}

func (h *HttpEndpoints) deleteAssignment(c *gin.Context) {
	instanceID := c.Param("instanceID")
	assignmentID := c.Param("assignmentID")

	err := h.surveyDBConn.DeleteAssignment(instanceID, assignmentID)
	if err != nil {
		if errors.Is(err, surveyDB.ErrAssignmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "assignment not found"})
			return
		}
		slog.Error("error deleting assignment", slog.String("instanceID", instanceID), slog.String("assignmentID", assignmentID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error deleting assignment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "assignment deleted"})
}
