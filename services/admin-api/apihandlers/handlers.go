package apihandlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	orgDB "github.com/sebasbeleno/nexus-backend/pkg/db/org"
	surveyDB "github.com/sebasbeleno/nexus-backend/pkg/db/survey"
	"github.com/sebasbeleno/nexus-backend/pkg/notifier"
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
	orgDBConn          *orgDB.OrgDBService
	notifier           notifier.Notifier
	allowedInstanceIDs []string
}

func NewHTTPHandler(
	surveyDBConn *surveyDB.SurveyDBService,
	orgDBConn *orgDB.OrgDBService,
	notifier notifier.Notifier,
	allowedInstanceIDs []string,
) *HttpEndpoints {
	return &HttpEndpoints{
		surveyDBConn:       surveyDBConn,
		orgDBConn:          orgDBConn,
		notifier:           notifier,
		allowedInstanceIDs: allowedInstanceIDs,
	}
}

// AddInstanceAPI registers every admin endpoint group under the tenant path
// segment. The instance check runs before any handler.
func (h *HttpEndpoints) AddInstanceAPI(rg *gin.RouterGroup) {
	instanceGroup := rg.Group("/:instanceID")
	instanceGroup.Use(h.checkInstanceID())
	{
		h.AddOrganizationManagementAPI(instanceGroup)
		h.AddUserManagementAPI(instanceGroup)
		h.AddSurveyManagementAPI(instanceGroup)
		h.AddAssignmentAPI(instanceGroup)
		h.AddResponseAPI(instanceGroup)
	}
}
