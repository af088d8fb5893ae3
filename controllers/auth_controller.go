package controllers

import (
	"net/http"

	"hotel-backoffice/services"
	"hotel-backoffice/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuthController struct {
	Svc *services.AuthService
	Log *logrus.Logger
}

func NewAuthController(svc *services.AuthService, log *logrus.Logger) *AuthController {
	return &AuthController{Svc: svc, Log: log}
}

type loginPayload struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (ac *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}
	res, err := ac.Svc.Login(payload.Username, payload.Password)
	if err != nil {
		if services.Kind(err) == services.ErrUnauthorized {
			ac.Log.WithField("username", payload.Username).Warn("failed login")
			utils.JSONError(c, http.StatusUnauthorized, services.Code(err), err.Error())
			return
		}
		respondError(c, ac.Log, err)
		return
	}
	ac.Log.WithField("username", res.User.Username).Info("login")
	utils.JSONSuccess(c, http.StatusOK, res)
}

// Me echoes the authenticated caller.
func (ac *AuthController) Me(c *gin.Context) {
	a := actor(c)
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"user_id":   a.UserID,
		"username":  a.Username,
		"role":      a.Role,
		"client_id": a.ClientID,
	})
}

func (ac *AuthController) ListUsers(c *gin.Context) {
	users, err := ac.Svc.ListUsers()
	if err != nil {
		respondError(c, ac.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, users)
}

func (ac *AuthController) CreateUser(c *gin.Context) {
	var payload services.UserInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}
	user, err := ac.Svc.CreateUser(payload)
	if err != nil {
		respondError(c, ac.Log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, user)
}

func (ac *AuthController) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ac.Svc.DeleteUser(actor(c), id); err != nil {
		respondError(c, ac.Log, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "user deleted", nil)
}
