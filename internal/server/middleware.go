package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	userdomain "github.com/clearlead/decisio/internal/user/domain"
)

const contextUserKey = "current_user"

// AuthRequired resolves the bearer token to an account and stores it on the
// request context.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		user, err := s.authSvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(contextUserKey, *user)
		c.Next()
	}
}

// authorize gates a route on the casbin policy for the caller's role.
func (s *Server) authorize(object, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if err := s.authzSvc.Authorize(user.Role, object, action); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) (userdomain.User, bool) {
	value, ok := c.Get(contextUserKey)
	if !ok {
		return userdomain.User{}, false
	}
	user, ok := value.(userdomain.User)
	return user, ok
}

func bearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
