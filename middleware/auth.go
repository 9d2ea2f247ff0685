package middleware

import (
	"context"

	"blog-platform/helper"
	"blog-platform/logging"
	"blog-platform/models"
	"blog-platform/services"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

type AuthMiddleware struct {
	resolver   services.IdentityResolver
	httpHelper *helper.HTTPHelper
}

func NewAuthMiddleware(resolver services.IdentityResolver, httpHelper *helper.HTTPHelper) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver, httpHelper: httpHelper}
}

// RequireAuth rejects the request unless the Authorization header resolves
// to an existing user.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := m.resolver.Resolve(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			m.httpHelper.SendErrorResponse(c, err)
			c.Abort()
			return
		}

		setIdentity(c, identity)
		c.Next()
	}
}

// OptionalAuth lets requests without an Authorization header through as
// anonymous. A header that is present but does not resolve is still rejected.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		identity, err := m.resolver.Resolve(c.Request.Context(), header)
		if err != nil {
			m.httpHelper.SendErrorResponse(c, err)
			c.Abort()
			return
		}

		setIdentity(c, identity)
		c.Next()
	}
}

// CurrentIdentity returns the caller set by the auth middleware, or nil.
func CurrentIdentity(c *gin.Context) *models.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, _ := v.(*models.Identity)
	return identity
}

func setIdentity(c *gin.Context, identity *models.Identity) {
	c.Set(identityKey, identity)
	c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), logging.UserIDKey, identity.ID))
}
