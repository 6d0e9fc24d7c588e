package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	userdomain "github.com/clearlead/decisio/internal/user/domain"
)

// ListUsers scopes company admins to their own company; super admins may
// filter freely.
func (s *Server) ListUsers(c *gin.Context) {
	caller, _ := currentUser(c)

	filter := userdomain.Filter{
		CompanyID: strings.TrimSpace(c.Query("company_id")),
		Role:      userdomain.Role(strings.TrimSpace(c.Query("role"))),
	}
	if caller.Role == userdomain.RoleCompanyAdmin {
		filter.CompanyID = caller.CompanyID
	}

	res, err := s.userSvc.List(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": res.Value, "source": res.Source})
}

type upsertUserRequest struct {
	ID             string  `json:"id"`
	Email          *string `json:"email"`
	Role           *string `json:"role"`
	CompanyID      *string `json:"company_id"`
	Plan           *string `json:"plan"`
	Name           *string `json:"name"`
	Surname        *string `json:"surname"`
	DOB            *string `json:"dob"`
	Identification *string `json:"identification"`
	Position       *string `json:"position"`
	Team           *string `json:"team"`
}

func (s *Server) UpsertUser(c *gin.Context) {
	var req upsertUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	patch := userdomain.Patch{
		ID:             strings.TrimSpace(req.ID),
		Email:          req.Email,
		CompanyID:      req.CompanyID,
		Name:           req.Name,
		Surname:        req.Surname,
		DOB:            req.DOB,
		Identification: req.Identification,
		Position:       req.Position,
		Team:           req.Team,
	}
	if req.Role != nil {
		role := userdomain.Role(*req.Role)
		patch.Role = &role
	}
	if req.Plan != nil {
		plan := userdomain.Plan(*req.Plan)
		patch.Plan = &plan
	}

	// Company admins may only manage accounts inside their own company.
	caller, _ := currentUser(c)
	if caller.Role == userdomain.RoleCompanyAdmin {
		patch.CompanyID = &caller.CompanyID
	}

	res, err := s.userSvc.Upsert(c.Request.Context(), patch)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": res.Value, "source": res.Source})
}

func (s *Server) DeleteUser(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		AbortWithError(c, invalidRequestError())
		return
	}
	if err := s.userSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
