package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	decisiondomain "github.com/clearlead/decisio/internal/decision/domain"
	userdomain "github.com/clearlead/decisio/internal/user/domain"
)

// ListDecisions returns the caller's own decision history, newest first.
func (s *Server) ListDecisions(c *gin.Context) {
	caller, _ := currentUser(c)

	res, err := s.decisionSvc.List(c.Request.Context(), caller.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": res.Value, "source": res.Source})
}

// AdminDecisions returns all decisions with the owning user's name joined
// in. Company admins only see their own company's records.
func (s *Server) AdminDecisions(c *gin.Context) {
	caller, _ := currentUser(c)

	companyID := strings.TrimSpace(c.Query("company_id"))
	if caller.Role == userdomain.RoleCompanyAdmin {
		companyID = caller.CompanyID
	}

	res, err := s.decisionSvc.ListAdmin(c.Request.Context(), companyID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": res.Value, "source": res.Source})
}

// fetchOwnedDecision loads the decision behind :id and enforces that only
// its owner, or a super admin, may act on it. List endpoints scope by
// caller already; this closes the same door for by-id access.
func (s *Server) fetchOwnedDecision(c *gin.Context) (*decisiondomain.Decision, bool) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		AbortWithError(c, invalidRequestError())
		return nil, false
	}

	decision, err := s.decisionSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return nil, false
	}

	caller, _ := currentUser(c)
	if decision.UserID != caller.ID && caller.Role != userdomain.RoleSuperAdmin {
		AbortWithError(c, ErrForbidden)
		return nil, false
	}
	return decision, true
}

func (s *Server) DeleteDecision(c *gin.Context) {
	decision, ok := s.fetchOwnedDecision(c)
	if !ok {
		return
	}
	if err := s.decisionSvc.Delete(c.Request.Context(), decision.ID); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DecisionReportPDF streams the rendered report for a saved decision.
func (s *Server) DecisionReportPDF(c *gin.Context) {
	decision, ok := s.fetchOwnedDecision(c)
	if !ok {
		return
	}

	reader, err := s.renderer.Render(*decision)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="decision-report.pdf"`)
	c.DataFromReader(http.StatusOK, -1, "application/pdf", reader, nil)
}
