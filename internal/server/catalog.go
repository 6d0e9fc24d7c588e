package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/clearlead/decisio/internal/catalog"
)

func (s *Server) ListCatalogSteps(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": catalog.Steps(c.Query("lang"))})
}

func (s *Server) ListCatalogPlans(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": catalog.Plans(c.Query("lang"))})
}
