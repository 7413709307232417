package apihandlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	surveyDB "github.com/sebasbeleno/nexus-backend/pkg/db/survey"
	"github.com/sebasbeleno/nexus-backend/pkg/survey/wizard"
	"github.com/sebasbeleno/nexus-backend/pkg/utils"
)

func HealthCheckHandle(c *gin.Context) {
	serviceInfos := make(map[string]interface{})
	infos, err := os.ReadFile("serviceInfos.json")
	if err != nil {
		slog.Debug("Error reading serviceInfos.json", slog.String("error", err.Error()))
	} else {
		err = json.Unmarshal(infos, &serviceInfos)
		if err != nil {
			slog.Debug("Error unmarshalling serviceInfos.json", slog.String("error", err.Error()))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"serviceInfos": serviceInfos,
	})
}

type HttpEndpoints struct {
	surveyDBConn       *surveyDB.SurveyDBService
	sessions           *wizard.SessionRegistry
	allowedInstanceIDs []string
}

func NewHTTPHandler(
	surveyDBConn *surveyDB.SurveyDBService,
	sessions *wizard.SessionRegistry,
	allowedInstanceIDs []string,
) *HttpEndpoints {
	return &HttpEndpoints{
		surveyDBConn:       surveyDBConn,
		sessions:           sessions,
		allowedInstanceIDs: allowedInstanceIDs,
	}
}

func (h *HttpEndpoints) isInstanceAllowed(instanceID string) bool {
	return utils.ContainsString(h.allowedInstanceIDs, instanceID)
}

func (h *HttpEndpoints) checkInstanceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		instanceID := c.Param("instanceID")
		if !utils.IsURLSafe(instanceID) || !h.isInstanceAllowed(instanceID) {
			slog.Warn("instance not allowed", slog.String("instanceID", instanceID))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "instance not allowed"})
			return
		}
		c.Next()
	}
}
