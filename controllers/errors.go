package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"hotel-backoffice/middleware"
	"hotel-backoffice/services"
	"hotel-backoffice/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

func statusFor(err error) int {
	switch services.Kind(err) {
	case services.ErrInvalidInput:
		return http.StatusBadRequest
	case services.ErrNotFound:
		return http.StatusNotFound
	case services.ErrConflict:
		return http.StatusConflict
	case services.ErrInvalidState:
		return http.StatusUnprocessableEntity
	case services.ErrUnauthorized:
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// respondError writes the error envelope. Unexpected errors are logged and
// hidden from the client.
func respondError(c *gin.Context, log *logrus.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error("request failed")
		utils.JSONError(c, status, "internal", "internal server error")
		return
	}
	utils.JSONError(c, status, services.Code(err), err.Error())
}

// bindError reports a payload that failed binding or validation.
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field()+" "+fe.Tag())
		}
		utils.JSONError(c, http.StatusBadRequest, "invalid_input", "invalid fields: "+strings.Join(fields, ", "))
		return
	}
	utils.JSONError(c, http.StatusBadRequest, "invalid_input", "invalid payload")
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid_input", "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func queryID(c *gin.Context, name string) (*uint, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid_input", "invalid "+name)
		return nil, false
	}
	v := uint(id)
	return &v, true
}

// actor is set by middleware.JWTAuth on every protected route.
func actor(c *gin.Context) services.Actor {
	a, _ := middleware.CurrentActor(c)
	return a
}
