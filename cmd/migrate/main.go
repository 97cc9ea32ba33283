// migrate aplica las migraciones embebidas con goose.
//
// Uso: go run ./cmd/migrate [up|down|status|version|reset|up-to N|down-to N]
// Sin argumentos ejecuta "up".
package main

import (
	"context"
	"os"

	"github.com/jhoicas/engage-api/internal/infrastructure/postgres"
	"github.com/jhoicas/engage-api/pkg/config"
	"github.com/jhoicas/engage-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("migrate")

	command := "up"
	var args []string
	if len(os.Args) > 1 {
		command = os.Args[1]
		args = os.Args[2:]
	}

	ctx := context.Background()
	// las migraciones no se cortan por el timeout de requests
	cfg.DB.StatementTimeout = 0
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, command, args...); err != nil {
		log.Error().Err(err).Str("command", command).Msg("migración fallida")
		pool.Close()
		os.Exit(1)
	}
	log.Info().Str("command", command).Msg("migración completada")
}
