package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	mw "github.com/sebasbeleno/nexus-backend/pkg/apihelpers/middlewares"
	orgDB "github.com/sebasbeleno/nexus-backend/pkg/db/org"
)

func (h *HttpEndpoints) AddUserManagementAPI(rg *gin.RouterGroup) {
	orgUsersGroup := rg.Group("/organizations/:organizationID/users")
	{
		orgUsersGroup.GET("", h.getUsersForOrganization)
		orgUsersGroup.POST("", mw.RequirePayload(), h.createUser)
	}

	userGroup := rg.Group("/users/:userID")
	{
		userGroup.GET("", h.getUser)
		userGroup.PUT("", mw.RequirePayload(), h.updateUser)
		userGroup.DELETE("", h.deactivateUser)
	}
}

func (h *HttpEndpoints) getUsersForOrganization(c *gin.Context) {
	instanceID := c.Param("instanceID")
	organizationID := c.Param("organizationID")

	includeInactive := c.DefaultQuery("includeInactive", "false") == "true"

	users, err := h.orgDBConn.GetUsersForOrganization(instanceID, organizationID, includeInactive)
	if err != nil {
		slog.Error("error getting users", slog.String("instanceID", instanceID), slog.String("organizationID", organizationID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error getting users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *HttpEndpoints) createUser(c *gin.Context) {
	instanceID := c.Param("instanceID")
	organizationID := c.Param("organizationID")

	var req struct {
		Email string `json:"email"`
		Name  string `json:"name"`
		Role  string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	if req.Role != "" && req.Role != orgDB.USER_ROLE_ADMIN && req.Role != orgDB.USER_ROLE_SURVEYOR {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
		return
	}

	user, err := h.orgDBConn.CreateUser(instanceID, orgDB.User{
		OrganizationID: organizationID,
		Email:          req.Email,
		Name:           req.Name,
		Role:           req.Role,
	})
	if err != nil {
		slog.Error("error creating user", slog.String("instanceID", instanceID), slog.String("organizationID", organizationID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error creating user"})
		return
	}

	slog.Info("user created", slog.String("instanceID", instanceID), slog.String("userID", user.ID.Hex()))
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (h *HttpEndpoints) getUser(c *gin.Context) {
	instanceID := c.Param("instanceID")
	userID := c.Param("userID")

	user, err := h.orgDBConn.GetUserByID(instanceID, userID)
	if err != nil {
		if errors.Is(err, orgDB.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		slog.Error("error getting user", slog.String("instanceID", instanceID), slog.String("userID", userID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error getting user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *HttpEndpoints) updateUser(c *gin.Context) {
	instanceID := c.Param("instanceID")
	userID := c.Param("userID")

	var req struct {
		Name string `json:"name"`
		Role string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Role != "" && req.Role != orgDB.USER_ROLE_ADMIN && req.Role != orgDB.USER_ROLE_SURVEYOR {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
		return
	}

	err := h.orgDBConn.UpdateUser(instanceID, userID, req.Name, req.Role)
	if err != nil {
		if errors.Is(err, orgDB.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		slog.Error("error updating user", slog.String("instanceID", instanceID), slog.String("userID", userID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error updating user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user updated"})
}

func (h *HttpEndpoints) deactivateUser(c *gin.Context) {
	instanceID := c.Param("instanceID")
	userID := c.Param("userID")

	err := h.orgDBConn.DeactivateUser(instanceID, userID)
	if err != nil {
		if errors.Is(err, orgDB.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		slog.Error("error deactivating user", slog.String("instanceID", instanceID), slog.String("userID", userID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error deactivating user"})
		return
	}

	slog.Info("user deactivated", slog.String("instanceID", instanceID), slog.String("userID", userID))
	c.JSON(http.StatusOK, gin.H{"message": "user deactivated"})
}
