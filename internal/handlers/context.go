// internal/handlers/context.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/drivelane/dealer-backend/internal/models"
	"github.com/drivelane/dealer-backend/internal/services"
	"github.com/drivelane/dealer-backend/internal/utils"
)

// actorFromContext builds the acting identity from the auth middleware keys.
// Returns false (and writes a 401) when the context is missing or malformed.
func actorFromContext(c *gin.Context) (services.Actor, bool) {
	userIDStr, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "authentication required")
		return services.Actor{}, false
	}
	tenantIDStr, ok := utils.GetTenantIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "authentication required")
		return services.Actor{}, false
	}
	role, _ := utils.GetRoleFromContext(c)

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.UnauthorizedResponse(c, "invalid user context")
		return services.Actor{}, false
	}
	tenantID, err := uuid.Parse(tenantIDStr)
	if err != nil {
		utils.UnauthorizedResponse(c, "invalid tenant context")
		return services.Actor{}, false
	}

	return services.Actor{
		UserID:   userID,
		TenantID: tenantID,
		Role:     models.UserRole(role),
	}, true
}

// parseIDParam parses a uuid path parameter, writing a 400 on failure.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "invalid "+name, err.Error())
		return uuid.Nil, false
	}
	return id, true
}

func logDeleteFailure(key string, err error) {
	logrus.WithError(err).WithField("key", key).Warn("Failed to delete orphaned upload")
}
