package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandlerFunc receives the verified claims of the calling user
type HandlerFunc func(c *gin.Context, claims *Claims)

// Router wraps the gin engine with an explicit auth guard: the access token
// stored in the session is verified against the identity provider and the
// required permission checked before the handler runs
type Router struct {
	Base *gin.Engine
}

func (cr *Router) baseExec(c *gin.Context, handler HandlerFunc, permission string) {
	session := LoadSession(c)
	token := session.AccessToken()
	if token == "" {
		respondAuthError(c, ErrMissingAuthHeader)
		return
	}
	claims, err := VerifyToken(c.Request.Context(), token)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	if err := claims.Check(permission); err != nil {
		respondAuthError(c, err)
		return
	}
	handler(c, claims)
}

func (cr *Router) GET(path string, handler HandlerFunc, permission string) {
	cr.Base.GET(path, func(c *gin.Context) {
		cr.baseExec(c, handler, permission)
	})
}

func (cr *Router) POST(path string, handler HandlerFunc, permission string) {
	cr.Base.POST(path, func(c *gin.Context) {
		cr.baseExec(c, handler, permission)
	})
}

func (cr *Router) DELETE(path string, handler HandlerFunc, permission string) {
	cr.Base.DELETE(path, func(c *gin.Context) {
		cr.baseExec(c, handler, permission)
	})
}

func respondAuthError(c *gin.Context, err error) {
	status := http.StatusUnauthorized
	switch {
	case errors.Is(err, ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, ErrPermissionsMissing), errors.Is(err, ErrKeyNotFound):
		status = http.StatusBadRequest
	}
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   status,
		"message": err.Error(),
	})
}
