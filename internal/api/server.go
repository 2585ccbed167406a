package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/gamermajilis/tournaments-api/docs"
	v1 "github.com/gamermajilis/tournaments-api/internal/api/handler/v1"
	"github.com/gamermajilis/tournaments-api/internal/api/middleware"
	"github.com/gamermajilis/tournaments-api/internal/config"
	"github.com/gamermajilis/tournaments-api/internal/repository"
	"github.com/gamermajilis/tournaments-api/internal/repository/dao"
	"github.com/gamermajilis/tournaments-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	tournamentHandler := s.initTournamentHandler(db)
	participationHandler := s.initParticipationHandler(db)
	s.MountHandlers(tournamentHandler, participationHandler)

	return s
}

func (s *Server) initTournamentHandler(db *gorm.DB) *v1.TournamentHandler {
	tournamentDAO := dao.NewTournamentDAO(db)
	repo := repository.NewTournamentRepository(tournamentDAO)
	svc := service.NewTournamentService(repo)
	handler := v1.NewTournamentHandler(svc)

	return handler
}

func (s *Server) initParticipationHandler(db *gorm.DB) *v1.ParticipationHandler {
	participationDAO := dao.NewParticipationDAO(db)
	repo := repository.NewParticipationRepository(participationDAO)
	tournamentRepo := repository.NewTournamentRepository(dao.NewTournamentDAO(db))
	svc := service.NewParticipationService(repo, tournamentRepo)
	handler := v1.NewParticipationHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(tournamentHandler *v1.TournamentHandler, participationHandler *v1.ParticipationHandler) {
	const basePath = "/api/v1"

	public := s.Router.Group(basePath)
	{
		public.GET("/tournaments", tournamentHandler.HandleListTournaments)
		public.GET("/tournaments/:tournamentID", tournamentHandler.HandleGetTournament)
		public.POST("/tournaments/:tournamentID/spectate", tournamentHandler.HandleSpectateTournament)
		public.GET("/tournaments/:tournamentID/participants", participationHandler.HandleListParticipants)
		public.GET("/tournaments/:tournamentID/participants/:participantID", participationHandler.HandleGetParticipation)
		public.GET("/users/:userID/participations", participationHandler.HandleListUserParticipations)
	}

	protected := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		protected.POST("/tournaments", tournamentHandler.HandleCreateTournament)
		protected.PUT("/tournaments/:tournamentID", tournamentHandler.HandleUpdateTournament)
		protected.PATCH("/tournaments/:tournamentID/status", tournamentHandler.HandleUpdateTournamentStatus)
		protected.DELETE("/tournaments/:tournamentID", tournamentHandler.HandleDeleteTournament)
		protected.POST("/tournaments/:tournamentID/moderators", tournamentHandler.HandleAddModerator)

		protected.POST("/tournaments/:tournamentID/register", participationHandler.HandleRegister)
		protected.POST("/tournaments/:tournamentID/withdraw", participationHandler.HandleWithdraw)
		protected.POST("/tournaments/:tournamentID/check-in", participationHandler.HandleCheckIn)
		protected.POST("/tournaments/:tournamentID/participants/:participantID/disqualify", participationHandler.HandleDisqualifyParticipant)
		protected.POST("/tournaments/:tournamentID/participants/:participantID/results", participationHandler.HandleSubmitMatchResult)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Tournaments API"
	docs.SwaggerInfo.Description = "Tournament lifecycle and participant management for gaming communities."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
