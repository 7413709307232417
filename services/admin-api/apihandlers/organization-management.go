package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	mw "github.com/sebasbeleno/nexus-backend/pkg/apihelpers/middlewares"
	orgDB "github.com/sebasbeleno/nexus-backend/pkg/db/org"
)

func (h *HttpEndpoints) AddOrganizationManagementAPI(rg *gin.RouterGroup) {
	orgsGroup := rg.Group("/organizations")
	{
		orgsGroup.GET("", h.getAllOrganizations)
		orgsGroup.POST("", mw.RequirePayload(), h.createOrganization)
	}

	orgGroup := orgsGroup.Group("/:organizationID")
	{
		orgGroup.GET("", h.getOrganization)
		orgGroup.PUT("", mw.RequirePayload(), h.updateOrganization)
		orgGroup.DELETE("", h.deactivateOrganization)
	}
}

func (h *HttpEndpoints) getAllOrganizations(c *gin.Context) {
	instanceID := c.Param("instanceID")

	includeInactive := c.DefaultQuery("includeInactive", "false") == "true"

	organizations, err := h.orgDBConn.GetOrganizations(instanceID, includeInactive)
	if err != nil {
		slog.Error("error getting organizations", slog.String("instanceID", instanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error getting organizations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"organizations": organizations})
}

func (h *HttpEndpoints) createOrganization(c *gin.Context) {
	instanceID := c.Param("instanceID")

	var req struct {
		Name         string `json:"name"`
		ContactEmail string `json:"contactEmail"`
		Address      string `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	organization, err := h.orgDBConn.CreateOrganization(instanceID, orgDB.Organization{
		Name:         req.Name,
		ContactEmail: req.ContactEmail,
		Address:      req.Address,
	})
	if err != nil {
		slog.Error("error creating organization", slog.String("instanceID", instanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error creating organization"})
		return
	}

	slog.Info("organization created", slog.String("instanceID", instanceID), slog.String("organizationID", organization.ID.Hex()))
	c.JSON(http.StatusCreated, gin.H{"organization": organization})
}

func (h *HttpEndpoints) getOrganization(c *gin.Context) {
	instanceID := c.Param("instanceID")
	organizationID := c.Param("organizationID")

	organization, err := h.orgDBConn.GetOrganizationByID(instanceID, organizationID)
	if err != nil {
		if errors.Is(err, orgDB.ErrOrganizationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "organization not found"})
			return
		}
		slog.Error("error getting organization", slog.String("instanceID", instanceID), slog.String("organizationID", organizationID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error getting organization"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"organization": organization})
}

func (h *HttpEndpoints) updateOrganization(c *gin.Context) {
	instanceID := c.Param("instanceID")
	organizationID := c.Param("organizationID")

	var req struct {
		Name         string `json:"name"`
		ContactEmail string `json:"contactEmail"`
		Address      string `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	err := h.orgDBConn.UpdateOrganization(instanceID, organizationID, req.Name, req.ContactEmail, req.Address)
	if err != nil {
		if errors.Is(err, orgDB.ErrOrganizationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "organization not found"})
			return
		}
		slog.Error("error updating organization", slog.String("instanceID", instanceID), slog.String("organizationID", organizationID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error updating organization"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "organization updated"})
}

func (h *HttpEndpoints) deactivateOrganization(c *gin.Context) {
	instanceID := c.Param("instanceID")
	organizationID := c.Param("organizationID")

	err := h.orgDBConn.DeactivateOrganization(instanceID, organizationID)
	if err != nil {
		if errors.Is(err, orgDB.ErrOrganizationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "organization not found"})
			return
		}
		slog.Error("error deactivating organization", slog.String("instanceID", instanceID), slog.String("organizationID", organizationID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error deactivating organization"})
		return
	}

	slog.Info("organization deactivated", slog.String("instanceID", instanceID), slog.String("organizationID", organizationID))
	c.JSON(http.StatusOK, gin.H{"message": "organization deactivated"})
}
