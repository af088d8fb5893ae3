package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"hotel-backoffice/services"
	"hotel-backoffice/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AdminController groups maintenance endpoints: reconciliation and the
// audit trail.
type AdminController struct {
	Reservations *services.ReservationService
	Audit        *services.AuditService
	Log          *logrus.Logger
}

func NewAdminController(res *services.ReservationService, audit *services.AuditService, log *logrus.Logger) *AdminController {
	return &AdminController{Reservations: res, Audit: audit, Log: log}
}

func (ac *AdminController) Reconcile(c *gin.Context) {
	result, err := ac.Reservations.Reconcile(c.Request.Context())
	if err != nil {
		respondError(c, ac.Log, err)
		return
	}
	ac.Log.WithField("by", actor(c).Username).Info("manual reconcile")
	utils.JSONSuccess(c, http.StatusOK, result)
}

func (ac *AdminController) GetAuditLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(strings.TrimSpace(c.Query("limit")))
	logs, err := ac.Audit.List(strings.TrimSpace(c.Query("resource_type")), limit)
	if err != nil {
		respondError(c, ac.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, logs)
}
