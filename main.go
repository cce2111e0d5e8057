package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Wardmisp/Bingo/config"
	"github.com/Wardmisp/Bingo/controllers"
	"github.com/Wardmisp/Bingo/game"
	"github.com/Wardmisp/Bingo/routes"
	"github.com/Wardmisp/Bingo/store"
	"github.com/Wardmisp/Bingo/utils/logger"
)

// setupStore picks the backend: postgres when DATABASE_URL is set,
// otherwise the in-memory store.
func setupStore(cfg config.Config) store.Store {
	if cfg.DatabaseURL == "" {
		logger.Info("No DATABASE_URL set, using in-memory store")
		return store.NewMemory()
	}
	db, err := config.SetupDatabase(cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatalw("database setup failed", "error", err)
	}
	logger.Info("Database connected and migrated")
	return store.NewGorm(db)
}

// setupRouter wires middleware, REST routes and the live streams.
func setupRouter(cfg config.Config, api *controllers.API) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, api)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
	})

	return r
}

func main() {
	cfg := config.Load()
	st := setupStore(cfg)

	registry := game.NewRegistry(game.RegistryConfig{
		PoolMax:      cfg.PoolMax,
		DrawInterval: cfg.DrawInterval,
		Retention:    cfg.Retention,
		IDExists:     st.GameIDExists,
	}, logger.Log)
	defer registry.Close()

	coordinator := game.NewCoordinator(registry, st.ArchiveGame, logger.Log)
	api := controllers.NewAPI(st, registry, coordinator, cfg, logger.Log)
	router := setupRouter(cfg, api)

	logger.Infof("🚀 Bingo server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatalw("server failed", "error", err)
	}
}
