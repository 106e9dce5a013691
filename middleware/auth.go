// Package middleware provides the gin middleware chain: request identity,
// tracing, logging, CORS and authentication.
package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/ncobase/taskapi/consts"
	"github.com/ncobase/taskapi/ctxutil"
	"github.com/ncobase/taskapi/logging/logger"
	"github.com/ncobase/taskapi/net/resp"
	"github.com/ncobase/taskapi/service"
	"github.com/ncobase/taskapi/structs"

	"github.com/gin-gonic/gin"
)

// Authenticator resolves a bearer token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*structs.User, error)
}

// Authenticate rejects requests without a valid bearer token and stores the
// authenticated user id on the request context.
func Authenticate(auth Authenticator, logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			resp.Fail(c.Writer, resp.UnAuthorized("Not authorized, no token"))
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		user, err := auth.Authenticate(ctx, token)
		if err != nil {
			if errors.Is(err, service.ErrUnauthorized) {
				resp.Fail(c.Writer, resp.UnAuthorized("Not authorized, token failed"))
			} else {
				logger.Error(ctx, "failed to authenticate request", "error", err)
				resp.Fail(c.Writer, resp.InternalServer("Server error"))
			}
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(ctxutil.SetUserID(ctx, user.ID))
		c.Set(consts.UserKey, user.ID)
		c.Next()
	}
}

// bearerToken extracts the token of an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
