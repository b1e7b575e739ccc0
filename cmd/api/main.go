package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/mbiancareli/studio-manager/internal/config"
	dbpkg "github.com/mbiancareli/studio-manager/internal/db"
	"github.com/mbiancareli/studio-manager/internal/logging"
	"github.com/mbiancareli/studio-manager/internal/metrics"
	"github.com/mbiancareli/studio-manager/internal/routes"
)

func main() {

	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()
	log := logging.New(cfg.LogLevel)

	db := dbpkg.NewDB(cfg)

	metrics.Register()

	r := gin.Default()

	reminders := routes.RegisterRoutes(r, db, cfg, log)

	if err := reminders.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start reminder scheduler")
	}
	defer reminders.Stop()

	log.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
