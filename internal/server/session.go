package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	sessiondomain "github.com/clearlead/decisio/internal/session/domain"
)

type startSessionRequest struct {
	Language string `json:"language"`
}

func (s *Server) StartSession(c *gin.Context) {
	caller, _ := currentUser(c)

	var req startSessionRequest
	// Body is optional: language defaults to English.
	_ = c.ShouldBindJSON(&req)

	sess, err := s.sessionSvc.Start(c.Request.Context(), caller.ID, req.Language)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

func (s *Server) GetSession(c *gin.Context) {
	sess, err := s.sessionSvc.Get(c.Request.Context(), sessionID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

type setTitleRequest struct {
	Title string `json:"title"`
}

func (s *Server) SetSessionTitle(c *gin.Context) {
	var req setTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	sess, err := s.sessionSvc.SetTitle(c.Request.Context(), sessionID(c), req.Title)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

type submitInputRequest struct {
	Input string `json:"input"`
}

// SubmitSessionInput blocks on the oracle. An oracle failure comes back as
// a retryable error with the session still awaiting input.
func (s *Server) SubmitSessionInput(c *gin.Context) {
	var req submitInputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	sess, err := s.sessionSvc.SubmitInput(c.Request.Context(), sessionID(c), req.Input)
	if errors.Is(err, sessiondomain.ErrOracleFailure) {
		c.JSON(http.StatusBadGateway, gin.H{
			"session": sess,
			"error":   gin.H{"type": "oracle_failure", "message": "feedback is unavailable right now, try again"},
		})
		return
	}
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// AdvanceSession acknowledges the shown feedback and moves on: to the next
// step, or through finalization after the last one.
func (s *Server) AdvanceSession(c *gin.Context) {
	sess, err := s.sessionSvc.Advance(c.Request.Context(), sessionID(c))
	if errors.Is(err, sessiondomain.ErrOracleFailure) {
		c.JSON(http.StatusBadGateway, gin.H{
			"session": sess,
			"error":   gin.H{"type": "oracle_failure", "message": "the final report is unavailable right now, try again"},
		})
		return
	}
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// FinalizeSession is the explicit completion call after the last step's
// feedback. It shares Advance's semantics.
func (s *Server) FinalizeSession(c *gin.Context) {
	s.AdvanceSession(c)
}

func (s *Server) ResetSession(c *gin.Context) {
	sess, err := s.sessionSvc.Reset(c.Request.Context(), sessionID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func sessionID(c *gin.Context) string {
	return strings.TrimSpace(c.Param("id"))
}
