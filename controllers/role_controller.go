package controllers

import (
	"net/http"
	"strings"

	"hotel-backoffice/services"
	"hotel-backoffice/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type RoleController struct {
	Svc *services.RoleService
	Log *logrus.Logger
}

func NewRoleController(svc *services.RoleService, log *logrus.Logger) *RoleController {
	return &RoleController{Svc: svc, Log: log}
}

type rolePermissionsPayload struct {
	Permissions []string `json:"permissions"`
}

func (rc *RoleController) GetRoles(c *gin.Context) {
	roles, err := rc.Svc.List()
	if err != nil {
		respondError(c, rc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, roles)
}

// UpdateRolePermissions accepts a role id or name in the path.
func (rc *RoleController) UpdateRolePermissions(c *gin.Context) {
	var payload rolePermissionsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}
	key := strings.TrimSpace(c.Param("id"))
	if key == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid_input", "invalid role id")
		return
	}
	role, err := rc.Svc.UpdatePermissions(actor(c), key, payload.Permissions)
	if err != nil {
		respondError(c, rc.Log, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "permissions updated", role)
}
