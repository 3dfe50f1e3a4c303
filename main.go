package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Akib-17/CSE471-Sheba/configs"
	"github.com/Akib-17/CSE471-Sheba/middlewares"
	"github.com/Akib-17/CSE471-Sheba/pkg/logger"
	"github.com/Akib-17/CSE471-Sheba/routes"
)

func main() {
	cfg := configs.LoadConfig()
	logger.Init("sheba-backend", cfg.Env)

	// DB
	configs.ConnectionDB(cfg)
	db := configs.DB()

	// migrate
	configs.SetupDatabase()

	if err := configs.SeedAdmin(cfg); err != nil {
		log.Fatal().Err(err).Msg("seed admin failed")
	}

	// Redis is optional; without it notifications stay DB-only
	rdb := configs.ConnectRedis(cfg)

	// HTTP
	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger())
	r.Use(middlewares.CORSMiddleware())

	routes.RegisterRoutes(r, db, cfg, rdb)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Info().Str("addr", addr).Msg("server running")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
