package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	authdomain "github.com/clearlead/decisio/internal/auth/domain"
	userdomain "github.com/clearlead/decisio/internal/user/domain"
)

type loginRequest struct {
	Email string `json:"email"`
}

func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	token, err := s.authSvc.Login(c.Request.Context(), authdomain.Credentials{Email: req.Email})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, token)
}

type registerRequest struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

func (s *Server) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	token, err := s.authSvc.Register(c.Request.Context(), authdomain.Registration{
		Email:   req.Email,
		Name:    req.Name,
		Surname: req.Surname,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, token)
}

func (s *Server) Logout(c *gin.Context) {
	if err := s.authSvc.Logout(c.Request.Context(), bearerToken(c)); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, user)
}

type changePlanRequest struct {
	Plan string `json:"plan"`
}

func (s *Server) ChangePlan(c *gin.Context) {
	var req changePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	user, err := s.authSvc.ChangePlan(c.Request.Context(), bearerToken(c), userdomain.Plan(req.Plan))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
