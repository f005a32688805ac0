// migrate aplica las migraciones embebidas sobre la base configurada.
//
// Uso: go run ./cmd/migrate [-cmd up|down|status|version|redo|reset|validate] [-to VERSION]
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/jhoicas/bom-inventario-api/pkg/config"
	"github.com/jhoicas/bom-inventario-api/pkg/logger"
	"github.com/jhoicas/bom-inventario-api/pkg/migrate"
)

func main() {
	command := flag.String("cmd", "up", "comando goose: up, down, status, version, redo, reset, validate")
	to := flag.String("to", "", "versión destino (YYYYMMDDHHMMSS); ignora -cmd")
	timeout := flag.Duration("timeout", 2*time.Minute, "tiempo máximo de ejecución")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "migrate"})

	// validate no necesita base de datos
	if *command == "validate" {
		if err := migrate.Validate(); err != nil {
			log.Error().Err(err).Msg("migraciones inválidas")
			os.Exit(1)
		}
		log.Info().Msg("migraciones válidas")
		return
	}

	db, err := migrate.Open(cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("abrir base de datos")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if *to != "" {
		err = migrate.MigrateToVersion(ctx, db, *to)
	} else {
		err = migrate.Run(ctx, db, *command)
	}
	if err != nil {
		log.Error().Err(err).Str("cmd", *command).Str("to", *to).Msg("migración fallida")
		os.Exit(1)
	}
	log.Info().Str("cmd", *command).Str("to", *to).Msg("migración completada")
}
