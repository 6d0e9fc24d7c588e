package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) SystemStats(c *gin.Context) {
	res, err := s.statsSvc.SystemStats(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": res.Value, "source": res.Source})
}
