package controllers

import (
	"net/http"

	"hotel-backoffice/services"
	"hotel-backoffice/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type DashboardController struct {
	Svc *services.DashboardService
	Log *logrus.Logger
}

func NewDashboardController(svc *services.DashboardService, log *logrus.Logger) *DashboardController {
	return &DashboardController{Svc: svc, Log: log}
}

func (dc *DashboardController) GetStats(c *gin.Context) {
	stats, err := dc.Svc.Stats()
	if err != nil {
		respondError(c, dc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stats)
}
