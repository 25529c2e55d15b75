package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/thekiqdev/CredCar-Finance-sub001/internal/identity"
)

func (s *Server) authMiddleware(c *gin.Context) {
	raw := strings.TrimSpace(c.GetHeader("Authorization"))
	if raw == "" || !strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	actor, err := identity.ParseToken(s.cfg.JWTSecret, strings.TrimSpace(raw[len("Bearer "):]))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Request = c.Request.WithContext(identity.WithActor(c.Request.Context(), actor))
	c.Next()
}

// requireAction gates a route on the actor's role capability. Ownership
// checks stay in the domain services.
func (s *Server) requireAction(object, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := identity.FromContext(c.Request.Context())
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if err := s.authzSvc.Authorize(c.Request.Context(), actor.Subject(), object, action); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

func (s *Server) rateLimitBySource(c *gin.Context) {
	if !s.signLimiter.Allow(c.ClientIP()) {
		AbortWithError(c, ErrRateLimited)
		return
	}
	c.Next()
}

func actorFromContext(c *gin.Context) (identity.Actor, bool) {
	return identity.FromContext(c.Request.Context())
}
