package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"github.com/vignesh-a-nt07/fullstack-devops-project/internal/auth"
	"github.com/vignesh-a-nt07/fullstack-devops-project/internal/config"
	"github.com/vignesh-a-nt07/fullstack-devops-project/internal/handler"
	"github.com/vignesh-a-nt07/fullstack-devops-project/internal/middleware"
	"github.com/vignesh-a-nt07/fullstack-devops-project/internal/outlook_client"
	"github.com/vignesh-a-nt07/fullstack-devops-project/internal/repository"
	"github.com/vignesh-a-nt07/fullstack-devops-project/internal/service"
)

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	cfg    *config.Config
	log    *logrus.Logger
	logger *zap.Logger
}

func NewServer(db *sqlx.DB, cfg *config.Config, log *logrus.Logger, logger *zap.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins, cfg.CORS.AllowCredentials))

	s := &Server{
		router: router,
		db:     db,
		cfg:    cfg,
		log:    log,
		logger: logger,
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	hasher := auth.NewHasher()
	tokens := auth.NewTokenService(
		[]byte(s.cfg.Auth.Secret),
		time.Duration(s.cfg.Auth.TokenTTLMinutes)*time.Minute,
	)

	userRepo := repository.NewUserRepository(s.db)
	jobPostRepo := repository.NewJobPostRepository(s.db)
	candidateRepo := repository.NewCandidateRepository(s.db)
	skillRepo := repository.NewCandidateSkillRepository(s.db)
	settingRepo := repository.NewSettingRepository(s.db)

	authService := service.NewAuthService(userRepo, hasher, tokens, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.log)
	userHandler := handler.NewUserHandler(userRepo, hasher, s.logger)
	jobPostHandler := handler.NewJobPostHandler(jobPostRepo, s.logger)
	candidateHandler := handler.NewCandidateHandler(candidateRepo, s.logger)
	skillHandler := handler.NewCandidateSkillHandler(skillRepo, s.logger)
	settingHandler := handler.NewSettingHandler(settingRepo, s.logger)

	outlookClient := outlook_client.NewClient(
		s.cfg.Azure.TenantID, s.cfg.Azure.ClientID, s.cfg.Azure.ClientSecret,
		s.cfg.Azure.Mailbox, s.logger,
	)
	mailHandler := handler.NewMailHandler(outlookClient, s.logger)

	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := s.router.Group("/api/v1")

	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/register", authHandler.Register)

	// Everything else sits behind the auth gateway.
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(authService, s.logger))
	{
		protected.GET("/auth/me", authHandler.Me)

		protected.GET("/users", userHandler.ListUsers)
		protected.PUT("/users/:id", userHandler.UpdateUser)

		protected.POST("/jobposts", jobPostHandler.CreateJobPost)
		protected.GET("/jobposts", jobPostHandler.ListJobPosts)
		protected.PUT("/jobposts/:id", jobPostHandler.UpdateJobPost)

		protected.POST("/candidates", candidateHandler.CreateCandidate)
		protected.GET("/candidates", candidateHandler.ListCandidates)
		protected.PUT("/candidates/:id", candidateHandler.UpdateCandidate)

		protected.POST("/candidateskills", skillHandler.CreateCandidateSkill)
		protected.GET("/candidateskills", skillHandler.ListCandidateSkills)

		protected.GET("/config", settingHandler.ListSettings)
		protected.POST("/config", settingHandler.CreateSetting)
		protected.PUT("/config/:id", settingHandler.UpdateSetting)
		protected.DELETE("/config/:id", settingHandler.DeleteSetting)

		protected.GET("/mail/outlook/messages", mailHandler.GetOutlookMessages)
	}
}

func (s *Server) Run(addr string) {
	s.log.Infof("Server starting on %s...", addr)
	if err := s.router.Run(addr); err != nil {
		s.log.Fatalf("Server failed to start: %v", err)
	}
}
