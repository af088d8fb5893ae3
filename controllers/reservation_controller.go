package controllers

import (
	"net/http"

	"hotel-backoffice/services"
	"hotel-backoffice/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ReservationController struct {
	Svc *services.ReservationService
	Log *logrus.Logger
}

func NewReservationController(svc *services.ReservationService, log *logrus.Logger) *ReservationController {
	return &ReservationController{Svc: svc, Log: log}
}

type reservationPayload struct {
	ClientID  uint   `json:"client_id" binding:"required"`
	RoomID    uint   `json:"room_id" binding:"required"`
	TariffID  uint   `json:"tariff_id" binding:"required"`
	StartDate string `json:"start_date" binding:"required,isodate"`
	EndDate   string `json:"end_date" binding:"required,isodate"`
}

type attachServicePayload struct {
	ServiceID   uint    `json:"service_id" binding:"required"`
	Quantity    *int    `json:"quantity"`
	ServiceDate *string `json:"service_date" binding:"omitempty,isodate"`
}

func (rc *ReservationController) GetReservations(c *gin.Context) {
	clientID, ok := queryID(c, "client_id")
	if !ok {
		return
	}
	roomID, ok := queryID(c, "room_id")
	if !ok {
		return
	}
	list, err := rc.Svc.List(actor(c), services.ReservationFilter{
		ClientID: clientID,
		RoomID:   roomID,
		Status:   c.Query("status"),
	})
	if err != nil {
		respondError(c, rc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (rc *ReservationController) GetReservation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	res, err := rc.Svc.Get(actor(c), id)
	if err != nil {
		respondError(c, rc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, res)
}

func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var payload reservationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}
	res, err := rc.Svc.Create(c.Request.Context(), actor(c), services.CreateReservationInput{
		ClientID:  payload.ClientID,
		RoomID:    payload.RoomID,
		TariffID:  payload.TariffID,
		StartDate: payload.StartDate,
		EndDate:   payload.EndDate,
	})
	if err != nil {
		respondError(c, rc.Log, err)
		return
	}
	utils.JSONMessage(c, http.StatusCreated, "reservation confirmed", res)
}

func (rc *ReservationController) CancelReservation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	res, err := rc.Svc.Cancel(c.Request.Context(), actor(c), id)
	if err != nil {
		respondError(c, rc.Log, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "reservation cancelled", res)
}

func (rc *ReservationController) AttachService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var payload attachServicePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}
	qty := 1
	if payload.Quantity != nil {
		qty = *payload.Quantity
	}
	link, err := rc.Svc.AttachService(c.Request.Context(), actor(c), id, payload.ServiceID, qty, payload.ServiceDate)
	if err != nil {
		respondError(c, rc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, link)
}
