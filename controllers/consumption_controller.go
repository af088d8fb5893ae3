package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"hotel-backoffice/services"
	"hotel-backoffice/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ConsumptionController struct {
	Svc *services.ConsumptionService
	Log *logrus.Logger
}

func NewConsumptionController(svc *services.ConsumptionService, log *logrus.Logger) *ConsumptionController {
	return &ConsumptionController{Svc: svc, Log: log}
}

// Value and unit cost arrive as numbers or as form strings.
type consumptionPayload struct {
	RoomID      uint        `json:"room_id" binding:"required"`
	Type        string      `json:"type" binding:"required"`
	ReadingDate string      `json:"reading_date" binding:"required"`
	Value       interface{} `json:"value"`
	Unit        string      `json:"unit"`
	UnitCost    interface{} `json:"unit_cost"`
}

func numberText(v interface{}) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

func (cc *ConsumptionController) GetConsumptions(c *gin.Context) {
	roomID, ok := queryID(c, "room_id")
	if !ok {
		return
	}
	list, err := cc.Svc.List(roomID)
	if err != nil {
		respondError(c, cc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (cc *ConsumptionController) RecordConsumption(c *gin.Context) {
	var payload consumptionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}
	rec, err := cc.Svc.Record(actor(c), services.RecordConsumptionInput{
		RoomID:      payload.RoomID,
		Type:        payload.Type,
		ReadingDate: payload.ReadingDate,
		Value:       numberText(payload.Value),
		Unit:        payload.Unit,
		UnitCost:    numberText(payload.UnitCost),
	})
	if err != nil {
		respondError(c, cc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, rec)
}
