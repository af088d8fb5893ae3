package middleware

import (
	"net/http"
	"strings"

	"hotel-backoffice/services"
	"hotel-backoffice/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const actorKey = "actor"

// TokenParser turns a bearer token into the caller it was issued to.
type TokenParser interface {
	ParseToken(raw string) (services.Actor, error)
}

// PermissionChecker answers whether a role holds a permission.
type PermissionChecker interface {
	Allowed(role, perm string) (bool, error)
}

// JWTAuth rejects requests without a valid bearer token and stores the
// caller in the context.
func JWTAuth(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			utils.JSONError(c, http.StatusUnauthorized, "unauthenticated", "missing bearer token")
			return
		}
		actor, err := tokens.ParseToken(strings.TrimSpace(raw))
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "unauthenticated", "invalid or expired token")
			return
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

// RequirePermission must run after JWTAuth.
func RequirePermission(roles PermissionChecker, log *logrus.Logger, perm string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "unauthenticated", "missing bearer token")
			return
		}
		allowed, err := roles.Allowed(actor.Role, perm)
		if err != nil {
			log.WithError(err).WithField("permission", perm).Error("permission lookup failed")
			utils.JSONError(c, http.StatusInternalServerError, "internal", "internal server error")
			return
		}
		if !allowed {
			utils.JSONError(c, http.StatusForbidden, "forbidden", "missing permission "+perm)
			return
		}
		c.Next()
	}
}

func CurrentActor(c *gin.Context) (services.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return services.Actor{}, false
	}
	actor, ok := v.(services.Actor)
	return actor, ok
}

// SetActor stores the caller without a token.
func SetActor(c *gin.Context, actor services.Actor) {
	c.Set(actorKey, actor)
}
