// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tripmate/internal/http/middleware"
)

func (s *Server) router() *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logging(s.log),
		middleware.Recovery(s.log),
	)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	agent := r.Group("/agent")
	agent.POST("/plan", s.plan.Chat)
	agent.POST("/plan/structured", s.plan.Structured)

	return r
}
