package controllers

import (
	"net/http"

	"hotel-backoffice/services"
	"hotel-backoffice/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type RoomController struct {
	Svc *services.RoomService
	Log *logrus.Logger
}

func NewRoomController(svc *services.RoomService, log *logrus.Logger) *RoomController {
	return &RoomController{Svc: svc, Log: log}
}

func (rc *RoomController) GetRooms(c *gin.Context) {
	rooms, err := rc.Svc.List()
	if err != nil {
		respondError(c, rc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

type availabilityQuery struct {
	Start string `form:"start" binding:"required,isodate"`
	End   string `form:"end" binding:"required,isodate"`
}

// GetAvailableRooms answers GET /api/rooms/available?start=&end=.
func (rc *RoomController) GetAvailableRooms(c *gin.Context) {
	var q availabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	rooms, err := rc.Svc.Available(q.Start, q.End)
	if err != nil {
		respondError(c, rc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (rc *RoomController) GetRoom(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	room, err := rc.Svc.Get(id)
	if err != nil {
		respondError(c, rc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (rc *RoomController) CreateRoom(c *gin.Context) {
	var payload services.RoomInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}
	room, err := rc.Svc.Create(payload)
	if err != nil {
		respondError(c, rc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

func (rc *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var payload services.RoomInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}
	room, err := rc.Svc.Update(id, payload)
	if err != nil {
		respondError(c, rc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (rc *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := rc.Svc.Delete(id); err != nil {
		respondError(c, rc.Log, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "room deleted", nil)
}

// MarkCleaned handles POST /api/rooms/:id/cleaned.
func (rc *RoomController) MarkCleaned(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	room, err := rc.Svc.MarkCleaned(c.Request.Context(), actor(c), id)
	if err != nil {
		respondError(c, rc.Log, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "room is free", room)
}
