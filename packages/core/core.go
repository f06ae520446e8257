package core

import (
	"roster-api/packages/auth"
	"roster-api/packages/core/audit"
	"roster-api/packages/core/handlers"
	"roster-api/packages/core/repository"
	"roster-api/packages/core/services"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
)

type Module struct {
	Store             *repository.Store
	PlayerHandler     *handlers.PlayerHandler
	PlayerService     *services.PlayerService
	AssignmentHandler *handlers.TeamAssignmentHandler
	AssignmentService *services.TeamAssignmentService
	StatisticHandler  *handlers.StatisticHandler
	StatisticService  *services.StatisticService
	auth              *auth.Module
}

func NewModule(db *gorm.DB, clock clockwork.Clock, authModule *auth.Module) *Module {
	store := repository.NewStore(db, audit.NewStamper(clock))

	playerService := services.NewPlayerService(store)
	playerHandler := handlers.NewPlayerHandler(playerService)

	assignmentService := services.NewTeamAssignmentService(store)
	assignmentHandler := handlers.NewTeamAssignmentHandler(assignmentService)

	statisticService := services.NewStatisticService(store)
	statisticHandler := handlers.NewStatisticHandler(statisticService)

	return &Module{
		Store:             store,
		PlayerHandler:     playerHandler,
		PlayerService:     playerService,
		AssignmentHandler: assignmentHandler,
		AssignmentService: assignmentService,
		StatisticHandler:  statisticHandler,
		StatisticService:  statisticService,
		auth:              authModule,
	}
}

func (m *Module) SetupRoutes(r *gin.Engine) {
	requireAuth := m.auth.JWTMiddleware()
	identify := m.auth.OptionalJWTMiddleware()

	players := r.Group("/players", identify)
	{
		players.GET("", m.PlayerHandler.ListPlayers)
		players.GET("/:id", m.PlayerHandler.GetPlayer)
		players.GET("/:id/assignments", m.AssignmentHandler.ListPlayerAssignments)
		players.GET("/:id/statistics", m.StatisticHandler.ListPlayerStatistics)
		players.GET("/:id/aggregates", m.StatisticHandler.GetPlayerAggregates)
		players.POST("", requireAuth, m.PlayerHandler.CreatePlayer)
		players.PUT("/:id", requireAuth, m.PlayerHandler.UpdatePlayer)
		players.DELETE("/:id", requireAuth, m.PlayerHandler.DeletePlayer)
	}

	me := r.Group("/me", requireAuth)
	{
		me.GET("/players", m.PlayerHandler.ListMyPlayers)
	}

	assignments := r.Group("/assignments", identify)
	{
		assignments.GET("/:id", m.AssignmentHandler.GetAssignment)
		assignments.GET("/:id/statistics", m.StatisticHandler.ListAssignmentStatistics)
		assignments.POST("", requireAuth, m.AssignmentHandler.CreateAssignment)
		assignments.PUT("/:id", requireAuth, m.AssignmentHandler.UpdateAssignment)
		assignments.PATCH("/:id/close", requireAuth, m.AssignmentHandler.CloseAssignment)
		assignments.DELETE("/:id", requireAuth, m.AssignmentHandler.DeleteAssignment)
	}

	statistics := r.Group("/statistics", identify)
	{
		statistics.GET("/:id", m.StatisticHandler.GetStatistic)
		statistics.POST("", requireAuth, m.StatisticHandler.CreateStatistic)
		statistics.PUT("/:id", requireAuth, m.StatisticHandler.UpdateStatistic)
		statistics.DELETE("/:id", requireAuth, m.StatisticHandler.DeleteStatistic)
	}
}
