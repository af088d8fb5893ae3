package controllers

import (
	"net/http"

	"hotel-backoffice/services"
	"hotel-backoffice/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ReviewController struct {
	Svc *services.ReviewService
	Log *logrus.Logger
}

func NewReviewController(svc *services.ReviewService, log *logrus.Logger) *ReviewController {
	return &ReviewController{Svc: svc, Log: log}
}

type reviewPayload struct {
	ReservationID uint   `json:"reservation_id" binding:"required"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
}

func (rc *ReviewController) GetReviews(c *gin.Context) {
	board, err := rc.Svc.Board(actor(c))
	if err != nil {
		respondError(c, rc.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, board)
}

func (rc *ReviewController) SubmitReview(c *gin.Context) {
	var payload reviewPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}
	rev, err := rc.Svc.Submit(c.Request.Context(), actor(c), payload.ReservationID, payload.Rating, payload.Comment)
	if err != nil {
		respondError(c, rc.Log, err)
		return
	}
	utils.JSONMessage(c, http.StatusCreated, "review submitted for moderation", rev)
}

func (rc *ReviewController) ApproveReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	approved, err := rc.Svc.Approve(c.Request.Context(), actor(c), id)
	if err != nil {
		respondError(c, rc.Log, err)
		return
	}
	msg := "review approved"
	if !approved {
		msg = "review not found or already moderated"
	}
	utils.JSONMessage(c, http.StatusOK, msg, gin.H{"approved": approved})
}

func (rc *ReviewController) DeleteReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := rc.Svc.Delete(c.Request.Context(), actor(c), id); err != nil {
		respondError(c, rc.Log, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "review deleted", nil)
}
