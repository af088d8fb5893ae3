package controllers

import (
	"net/http"

	"hotel-backoffice/services"
	"hotel-backoffice/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ServiceController exposes the extras catalog.
type ServiceController struct {
	Svc *services.ServiceCatalog
	Log *logrus.Logger
}

func NewServiceController(svc *services.ServiceCatalog, log *logrus.Logger) *ServiceController {
	return &ServiceController{Svc: svc, Log: log}
}

func (sc *ServiceController) GetServices(c *gin.Context) {
	list, err := sc.Svc.List()
	if err != nil {
		respondError(c, sc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (sc *ServiceController) GetService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	svc, err := sc.Svc.Get(id)
	if err != nil {
		respondError(c, sc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, svc)
}

func (sc *ServiceController) CreateService(c *gin.Context) {
	var payload services.ServiceInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}
	svc, err := sc.Svc.Create(payload)
	if err != nil {
		respondError(c, sc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, svc)
}

func (sc *ServiceController) UpdateService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var payload services.ServiceInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}
	svc, err := sc.Svc.Update(id, payload)
	if err != nil {
		respondError(c, sc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, svc)
}

func (sc *ServiceController) DeleteService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := sc.Svc.Delete(id); err != nil {
		respondError(c, sc.Log, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "service deleted", nil)
}
