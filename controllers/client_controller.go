package controllers

import (
	"net/http"

	"hotel-backoffice/services"
	"hotel-backoffice/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ClientController struct {
	Svc *services.ClientService
	Log *logrus.Logger
}

func NewClientController(svc *services.ClientService, log *logrus.Logger) *ClientController {
	return &ClientController{Svc: svc, Log: log}
}

func (cc *ClientController) GetClients(c *gin.Context) {
	clients, err := cc.Svc.List()
	if err != nil {
		respondError(c, cc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, clients)
}

func (cc *ClientController) GetClient(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	client, err := cc.Svc.Get(id)
	if err != nil {
		respondError(c, cc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, client)
}

func (cc *ClientController) CreateClient(c *gin.Context) {
	var payload services.ClientInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}
	client, err := cc.Svc.Create(payload)
	if err != nil {
		respondError(c, cc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, client)
}

func (cc *ClientController) UpdateClient(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var payload services.ClientInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}
	client, err := cc.Svc.Update(id, payload)
	if err != nil {
		respondError(c, cc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, client)
}

func (cc *ClientController) DeleteClient(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := cc.Svc.Delete(id); err != nil {
		respondError(c, cc.Log, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "client deleted", nil)
}
