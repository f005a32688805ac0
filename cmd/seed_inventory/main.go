// seed_inventory carga ítems de inventario desde un CSV exportado por compras.
//
// Uso: go run ./cmd/seed_inventory [-charset windows-1252|iso-8859-1|utf-8] inventario.csv
//
// Columnas esperadas (cabecera obligatoria, el orden no importa):
// part_number, component_name, current_stock, min_stock, unit_cost
// y opcionales digikey_pn, lead_time, status, supplier, category.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/bom-inventario-api/internal/application/inventory"
	"github.com/jhoicas/bom-inventario-api/internal/domain"
	"github.com/jhoicas/bom-inventario-api/internal/infrastructure/postgres"
	"github.com/jhoicas/bom-inventario-api/pkg/config"
	"github.com/jhoicas/bom-inventario-api/pkg/logger"
)

const seedActor = "seed-inventory"

func main() {
	charset := flag.String("charset", "windows-1252", "codificación del CSV")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: seed_inventory [-charset ...] archivo.csv")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "seed_inventory"})

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	rows, err := parseCSV(f, *charset)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Sin auditoría: la carga inicial no es una acción de usuario.
	uc := inventory.NewInventoryUseCase(postgres.NewInventoryRepository(pool), nil)

	var created, skipped, failed int
	for _, r := range rows {
		_, err := uc.Create(ctx, seedActor, r.item)
		switch {
		case err == nil:
			created++
		case errors.Is(err, domain.ErrDuplicateKey):
			skipped++
			log.Debug().Int("line", r.line).Str("part_number", r.item.PartNumber).Msg("ya existe, se omite")
		default:
			failed++
			log.Error().Err(err).Int("line", r.line).Str("part_number", r.item.PartNumber).Msg("no se pudo crear")
		}
	}

	log.Info().Int("created", created).Int("skipped", skipped).Int("failed", failed).Msg("carga de inventario terminada")
	if failed > 0 {
		os.Exit(1)
	}
}
