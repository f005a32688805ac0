package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jhoicas/bom-inventario-api/internal/application/audit"
	"github.com/jhoicas/bom-inventario-api/internal/application/bom"
	"github.com/jhoicas/bom-inventario-api/internal/application/inventory"
	"github.com/jhoicas/bom-inventario-api/internal/domain/repository"
	"github.com/jhoicas/bom-inventario-api/internal/infrastructure/kafka"
	"github.com/jhoicas/bom-inventario-api/internal/infrastructure/memory"
	"github.com/jhoicas/bom-inventario-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/bom-inventario-api/internal/interfaces/http"
	"github.com/jhoicas/bom-inventario-api/pkg/config"
	"github.com/jhoicas/bom-inventario-api/pkg/logger"
	"github.com/jhoicas/bom-inventario-api/pkg/metrics"
)

// stores adaptadores de persistencia según STORE_DRIVER.
type stores struct {
	inventory repository.InventoryRepository
	templates repository.TemplateRepository
	audit     repository.AuditSink
	config    repository.ConfigurationRepository
	tx        interface {
		bom.TxRunner
		inventory.TxRunner
	}
	close func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	st, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacén")
	}
	defer st.close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewBOMMetrics(reg)

	// Auditoría: tabla audit_log y, si hay brokers, también Kafka.
	var rec *audit.Recorder
	var publisher *kafka.AuditPublisher
	if cfg.Audit.Enabled {
		sinks := []repository.AuditSink{st.audit}
		if len(cfg.Audit.KafkaBrokers) > 0 {
			producer, err := kafka.NewSyncProducer(cfg.Audit.KafkaBrokers)
			if err != nil {
				log.Fatal().Err(err).Strs("brokers", cfg.Audit.KafkaBrokers).Msg("productor Kafka de auditoría")
			}
			publisher = kafka.NewAuditPublisher(producer, cfg.Audit.KafkaTopic, log.Component("kafka"))
			sinks = append(sinks, publisher)
		}
		rec = audit.NewRecorder(audit.NewSink(sinks...), audit.Config{
			Timeout:     cfg.Audit.Timeout,
			MaxInFlight: cfg.Audit.MaxInFlight,
		}, log.Component("audit"), m)
	}

	updater, err := inventory.SelectStockUpdater(ctx, cfg.Inventory.StockStrategy, st.inventory, st.tx, log.Component("stock"))
	if err != nil {
		log.Fatal().Err(err).Str("strategy", cfg.Inventory.StockStrategy).Msg("estrategia de stock")
	}
	log.Info().Str("path", updater.Path()).Msg("estrategia de actualización de stock")

	templateUC := bom.NewTemplateUseCase(st.templates)
	svc := bom.NewService(bom.ServiceDeps{
		Templates:    templateUC,
		Create:       bom.NewCreateTemplateUseCase(st.tx, rec, log.Component("bom")),
		Availability: bom.NewAvailabilityUseCase(templateUC, st.inventory),
		Inventory:    inventory.NewInventoryUseCase(st.inventory, rec),
		Stock:        inventory.NewStockReconciler(updater, rec, m, log.Component("stock")),
		Config:       bom.NewConfigurationUseCase(st.config),
		Metrics:      m,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: strings.Join([]string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodOptions}, ","),
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "BOM Inventario API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Service:     svc,
		ServiceName: cfg.App.Name,
		JWTSecret:   cfg.JWT.Secret,
		WriteRoles:  cfg.JWT.WriteRoles,
		Gatherer:    reg,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	// Esperar las escrituras de auditoría pendientes antes de cerrar sus destinos.
	rec.Wait()
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar productor Kafka")
		}
	}

	log.Info().Msg("aplicación detenida")
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		s := memory.NewStore()
		return &stores{
			inventory: s.Inventory(),
			templates: s.Templates(),
			audit:     s.Audit(),
			config:    s.Configuration(),
			tx:        s.TxRunner(),
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &stores{
		inventory: postgres.NewInventoryRepository(pool),
		templates: postgres.NewTemplateRepository(pool),
		audit:     postgres.NewAuditRepository(pool),
		config:    postgres.NewConfigurationRepository(pool),
		tx:        postgres.NewTxRunner(pool),
		close:     pool.Close,
	}, nil
}
