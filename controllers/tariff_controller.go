package controllers

import (
	"net/http"

	"hotel-backoffice/services"
	"hotel-backoffice/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type TariffController struct {
	Svc *services.TariffService
	Log *logrus.Logger
}

func NewTariffController(svc *services.TariffService, log *logrus.Logger) *TariffController {
	return &TariffController{Svc: svc, Log: log}
}

func (tc *TariffController) GetTariffs(c *gin.Context) {
	tariffs, err := tc.Svc.List()
	if err != nil {
		respondError(c, tc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, tariffs)
}

// GetApplicable answers GET /api/tariffs/applicable?client_id=.
func (tc *TariffController) GetApplicable(c *gin.Context) {
	clientID, ok := queryID(c, "client_id")
	if !ok {
		return
	}
	if a := actor(c); a.IsClient() {
		clientID = a.ClientID
	}
	if clientID == nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_input", "client_id is required")
		return
	}
	tariffs, err := tc.Svc.Applicable(*clientID)
	if err != nil {
		respondError(c, tc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, tariffs)
}

func (tc *TariffController) GetTariff(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	tariff, err := tc.Svc.Get(id)
	if err != nil {
		respondError(c, tc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, tariff)
}

func (tc *TariffController) CreateTariff(c *gin.Context) {
	var payload services.TariffInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}
	tariff, err := tc.Svc.Create(payload)
	if err != nil {
		respondError(c, tc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, tariff)
}

func (tc *TariffController) UpdateTariff(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var payload services.TariffInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}
	tariff, err := tc.Svc.Update(id, payload)
	if err != nil {
		respondError(c, tc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, tariff)
}

func (tc *TariffController) DeleteTariff(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := tc.Svc.Delete(id); err != nil {
		respondError(c, tc.Log, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "tariff deleted", nil)
}
