package middleware

import (
	"github.com/ncobase/taskapi/config"
	"github.com/ncobase/taskapi/consts"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS applies the cross-origin policy. With the default "*" origin any
// site may call the API, credentials excluded.
func CORS(cfg *config.CORS) gin.HandlerFunc {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", consts.TraceIDHeader},
		ExposeHeaders: []string{consts.TraceIDHeader},
	}
	if cfg != nil {
		c.MaxAge = cfg.MaxAge
	}

	if cfg == nil || len(cfg.AllowOrigins) == 0 || (len(cfg.AllowOrigins) == 1 && cfg.AllowOrigins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.AllowOrigins
		c.AllowCredentials = cfg.AllowCredentials
	}
	return cors.New(c)
}
