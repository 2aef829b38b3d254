package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-ledger-api/pkg/config"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

const usage = "uso: migrate [up|down|status]"

func main() {
	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	m, err := postgres.NewMigrator(ctx, cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar migraciones")
	}
	defer m.Close()

	switch cmd {
	case "up":
		n, err := m.Up(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		log.Info().Int("applied", n).Msg("migraciones aplicadas")
	case "down":
		if err := m.Down(ctx); err != nil {
			log.Fatal().Err(err).Msg("revertir migración")
		}
		log.Info().Msg("última migración revertida")
	case "status":
		lines, err := m.Status(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("estado de migraciones")
		}
		for _, l := range lines {
			fmt.Println(l)
		}
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
}
