package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sebasbeleno/nexus-backend/pkg/apihelpers"
	surveyDB "github.com/sebasbeleno/nexus-backend/pkg/db/survey"
)

func (h *HttpEndpoints) AddResponseAPI(rg *gin.RouterGroup) {
	surveyResponsesGroup := rg.Group("/surveys/:surveyID/responses")
	{
		surveyResponsesGroup.GET("", h.getResponsesBySurvey)
		surveyResponsesGroup.GET("/count", h.countResponsesBySurvey)
	}

	rg.GET("/responses/:responseID", h.getResponse)
}

func (h *HttpEndpoints) getResponsesBySurvey(c *gin.Context) {
	instanceID := c.Param("instanceID")
	surveyID := c.Param("surveyID")

	query, err := apihelpers.ParsePaginatedQueryFromCtx(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	skip := (query.Page - 1) * query.Limit
	responses, err := h.surveyDBConn.GetResponsesBySurvey(instanceID, surveyID, query.Limit, skip)
	if err != nil {
		slog.Error("error getting responses", slog.String("instanceID", instanceID), slog.String("surveyID", surveyID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error getting responses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"responses": responses,
		"page":      query.Page,
		"limit":     query.Limit,
	})
}

func (h *HttpEndpoints) countResponsesBySurvey(c *gin.Context) {
	instanceID := c.Param("instanceID")
	surveyID := c.Param("surveyID")

	count, err := h.surveyDBConn.CountResponsesBySurvey(instanceID, surveyID)
	if err != nil {
		slog.Error("error counting responses", slog.String("instanceID", instanceID), slog.String("surveyID", surveyID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error counting responses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *HttpEndpoints) getResponse(c *gin.Context) {
	instanceID := c.Param("instanceID")
	responseID := c.Param("responseID")

	response, err := h.surveyDBConn.GetResponseByID(instanceID, responseID)
	if err != nil {
		if errors.Is(err, surveyDB.ErrResponseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "response not found"})
			return
		}
		slog.Error("error getting response", slog.String("instanceID", instanceID), slog.String("responseID", responseID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error getting response"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": response})
}
