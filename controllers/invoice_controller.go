package controllers

import (
	"net/http"

	"hotel-backoffice/services"
	"hotel-backoffice/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type InvoiceController struct {
	Svc *services.InvoiceService
	Log *logrus.Logger
}

func NewInvoiceController(svc *services.InvoiceService, log *logrus.Logger) *InvoiceController {
	return &InvoiceController{Svc: svc, Log: log}
}

type generateInvoicePayload struct {
	ReservationID uint `json:"reservation_id" binding:"required"`
}

type updateInvoicePayload struct {
	Status        string `json:"status" binding:"required"`
	PaymentMethod string `json:"payment_method"`
}

// GetInvoices returns issued invoices and the reservations still to bill.
func (ic *InvoiceController) GetInvoices(c *gin.Context) {
	invoices, err := ic.Svc.List()
	if err != nil {
		respondError(c, ic.Log, err)
		return
	}
	awaiting, err := ic.Svc.AwaitingInvoice()
	if err != nil {
		respondError(c, ic.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"invoices": invoices,
		"awaiting": awaiting,
	})
}

func (ic *InvoiceController) GetInvoice(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	inv, err := ic.Svc.Get(id)
	if err != nil {
		respondError(c, ic.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, inv)
}

func (ic *InvoiceController) GenerateInvoice(c *gin.Context) {
	var payload generateInvoicePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}
	inv, err := ic.Svc.Generate(c.Request.Context(), actor(c), payload.ReservationID)
	if err != nil {
		respondError(c, ic.Log, err)
		return
	}
	utils.JSONMessage(c, http.StatusCreated, "invoice generated", inv)
}

func (ic *InvoiceController) UpdateInvoice(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var payload updateInvoicePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}
	inv, err := ic.Svc.Update(c.Request.Context(), actor(c), id, payload.Status, payload.PaymentMethod)
	if err != nil {
		respondError(c, ic.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, inv)
}
