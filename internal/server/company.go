package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	companydomain "github.com/clearlead/decisio/internal/company/domain"
)

func (s *Server) ListCompanies(c *gin.Context) {
	res, err := s.companySvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": res.Value, "source": res.Source})
}

type upsertCompanyRequest struct {
	ID      string  `json:"id"`
	Name    *string `json:"name"`
	Country *string `json:"country"`
}

func (s *Server) UpsertCompany(c *gin.Context) {
	var req upsertCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	res, err := s.companySvc.Upsert(c.Request.Context(), companydomain.Patch{
		ID:      strings.TrimSpace(req.ID),
		Name:    req.Name,
		Country: req.Country,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": res.Value, "source": res.Source})
}

func (s *Server) DeleteCompany(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		AbortWithError(c, invalidRequestError())
		return
	}
	if err := s.companySvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
