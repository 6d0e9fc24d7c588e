package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/clearlead/decisio/internal/auth"
	authdomain "github.com/clearlead/decisio/internal/auth/domain"
	"github.com/clearlead/decisio/internal/authorization"
	"github.com/clearlead/decisio/internal/cloudstore"
	"github.com/clearlead/decisio/internal/company"
	companydomain "github.com/clearlead/decisio/internal/company/domain"
	"github.com/clearlead/decisio/internal/config"
	"github.com/clearlead/decisio/internal/decision"
	decisiondomain "github.com/clearlead/decisio/internal/decision/domain"
	"github.com/clearlead/decisio/internal/insight"
	"github.com/clearlead/decisio/internal/localstore"
	"github.com/clearlead/decisio/internal/observability"
	obslogger "github.com/clearlead/decisio/internal/observability/logger"
	obsmetrics "github.com/clearlead/decisio/internal/observability/metrics"
	obstracing "github.com/clearlead/decisio/internal/observability/tracing"
	"github.com/clearlead/decisio/internal/report"
	"github.com/clearlead/decisio/internal/seed"
	"github.com/clearlead/decisio/internal/session"
	sessiondomain "github.com/clearlead/decisio/internal/session/domain"
	"github.com/clearlead/decisio/internal/stats"
	statsdomain "github.com/clearlead/decisio/internal/stats/domain"
	"github.com/clearlead/decisio/internal/user"
	userdomain "github.com/clearlead/decisio/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	observability.Module,
	fx.Provide(registerGin),
	localstore.Module,
	cloudstore.Module,
	authorization.Module,
	company.Module,
	user.Module,
	decision.Module,
	stats.Module,
	insight.Module,
	session.Module,
	auth.Module,
	report.Module,
	seed.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(log))
	r.Use(obstracing.GinMiddleware())
	r.Use(httpMetrics.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(httpMetrics.Handler()))

	return r
}

func registerGin(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(log, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	authSvc     authdomain.Service
	authzSvc    *authorization.Service
	companySvc  companydomain.Service
	userSvc     userdomain.Service
	decisionSvc decisiondomain.Service
	sessionSvc  sessiondomain.Service
	statsSvc    statsdomain.Service
	renderer    *report.Renderer
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	AuthSvc     authdomain.Service
	AuthzSvc    *authorization.Service
	CompanySvc  companydomain.Service
	UserSvc     userdomain.Service
	DecisionSvc decisiondomain.Service
	SessionSvc  sessiondomain.Service
	StatsSvc    statsdomain.Service
	Renderer    *report.Renderer
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		authSvc:     p.AuthSvc,
		authzSvc:    p.AuthzSvc,
		companySvc:  p.CompanySvc,
		userSvc:     p.UserSvc,
		decisionSvc: p.DecisionSvc,
		sessionSvc:  p.SessionSvc,
		statsSvc:    p.StatsSvc,
		renderer:    p.Renderer,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	authGroup := s.engine.Group("/auth")

	authGroup.POST("/register", s.Register)
	authGroup.POST("/login", s.Login)
	authGroup.POST("/logout", s.AuthRequired(), s.Logout)
	authGroup.GET("/me", s.AuthRequired(), s.Me)
	authGroup.POST("/plan", s.AuthRequired(), s.ChangePlan)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")
	api.Use(s.AuthRequired())

	// -------- Companies (super admin only) --------
	api.GET("/companies", s.authorize(authorization.ObjectCompany, authorization.ActionView), s.ListCompanies)
	api.POST("/companies", s.authorize(authorization.ObjectCompany, authorization.ActionManage), s.UpsertCompany)
	api.DELETE("/companies/:id", s.authorize(authorization.ObjectCompany, authorization.ActionManage), s.DeleteCompany)

	// -------- Users --------
	api.GET("/users", s.authorize(authorization.ObjectUser, authorization.ActionView), s.ListUsers)
	api.POST("/users", s.authorize(authorization.ObjectUser, authorization.ActionManage), s.UpsertUser)
	api.DELETE("/users/:id", s.authorize(authorization.ObjectUser, authorization.ActionManage), s.DeleteUser)

	// -------- Decisions --------
	api.GET("/decisions", s.ListDecisions)
	api.DELETE("/decisions/:id", s.DeleteDecision)
	api.GET("/decisions/:id/report.pdf", s.DecisionReportPDF)
	api.GET("/admin/decisions", s.authorize(authorization.ObjectDecisionAudit, authorization.ActionView), s.AdminDecisions)

	// -------- Stats --------
	api.GET("/stats", s.authorize(authorization.ObjectStats, authorization.ActionView), s.SystemStats)

	// -------- Catalog --------
	api.GET("/catalog/steps", s.ListCatalogSteps)
	api.GET("/catalog/plans", s.ListCatalogPlans)

	// -------- Sessions --------
	api.POST("/session", s.StartSession)
	api.GET("/session/:id", s.GetSession)
	api.PUT("/session/:id/title", s.SetSessionTitle)
	api.POST("/session/:id/input", s.SubmitSessionInput)
	api.POST("/session/:id/feedback", s.AdvanceSession)
	api.POST("/session/:id/finalize", s.FinalizeSession)
	api.POST("/session/:id/reset", s.ResetSession)
}
