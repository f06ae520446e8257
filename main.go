package main

import (
	"net/http"

	"roster-api/config"
	_ "roster-api/docs" // Swagger docs
	"roster-api/packages/auth"
	"roster-api/packages/core"
	"roster-api/packages/core/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// @title           Roster API
// @version         1.0
// @description     Players, team assignments and per-game statistics with audit provenance.

// @license.name  MIT
// @license.url   http://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey  BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	config.ConfigureLogging(cfg)

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Database unavailable")
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), handlers.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", handlers.RequestIDHeader},
		ExposeHeaders:    []string{handlers.RequestIDHeader},
		AllowCredentials: true,
	}))

	authModule := auth.NewModule(cfg.JWTSecret)
	coreModule := core.NewModule(db, clockwork.NewRealClock(), authModule)
	coreModule.SetupRoutes(r)

	// Swagger endpoint
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/health", healthHandler(db))

	log.Info().Str("port", cfg.Port).Str("env", cfg.AppEnv).Msg("Server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Message  string `json:"message" example:"Server is running"`
	Database string `json:"database" example:"connected"`
}

// @Summary Health Check
// @Description Check if the server is running and database is connected
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			log.Error().Err(err).Msg("Health check failed")
			c.JSON(http.StatusServiceUnavailable, HealthResponse{
				Message:  "Server is running",
				Database: "unreachable",
			})
			return
		}

		c.JSON(http.StatusOK, HealthResponse{
			Message:  "Server is running",
			Database: "connected",
		})
	}
}
