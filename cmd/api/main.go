// @title                       Ventas API
// @version                     1.0
// @description                 Alta de ventas de líneas móviles, máquinas de estado comercial y logística, historial y comentarios.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Bearer <token JWT>. Solo se exige si JWT_SECRET está configurado.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/ventas-api/docs"
	"github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/ventas-api/internal/infrastructure/redis"
	"github.com/jhoicas/ventas-api/internal/infrastructure/refcode"
	httpRouter "github.com/jhoicas/ventas-api/internal/interfaces/http"
	"github.com/jhoicas/ventas-api/pkg/config"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Deduplicación de creaciones: solo con Redis configurado
	var dedup sales.IdempotencyStore
	if cfg.Redis.Enabled() {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		dedup = infraredis.NewIdempotencyStore(rdb)
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: deduplicación de ventas desactivada")
	}

	txRunner := postgres.NewTxRunner(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	historyRepo := postgres.NewHistoryRepository(pool)
	commentRepo := postgres.NewCommentRepository(pool)

	engine := sales.NewStatusTransitionEngine(txRunner, sales.NewAuditTrailRecorder(), log.Component("transiciones"))
	createSaleUC := sales.NewCreateSaleUseCase(
		txRunner, catalogRepo, clientRepo, saleRepo, historyRepo,
		engine, refcode.NewULIDGenerator(cfg.Sales.RefCodePrefix), dedup,
		sales.CreateSaleConfig{
			MaxReferenceAttempts: cfg.Sales.RefCodeMaxAttempts,
			IdempotencyTTL:       cfg.Redis.IdempotencyTTL,
			PendingTTL:           cfg.Redis.PendingTTL,
		},
		log.Component("creacion"),
	)
	queryUC := sales.NewSaleQueryUseCase(saleRepo, historyRepo, clientRepo)
	commentUC := sales.NewCommentUseCase(saleRepo, commentRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs (generado con swag init -g cmd/api/main.go)
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FilePath:    "./docs/swagger.json",
		FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
		Path:        "docs",
		Title:       docs.SwaggerInfo.Title,
	}))

	app.Get("/health", healthHandler(pool, cfg.App.Name))

	httpRouter.Router(app, httpRouter.RouterDeps{
		CreateSale: createSaleUC,
		Engine:     engine,
		Query:      queryUC,
		Comments:   commentUC,
		JWTSecret:  cfg.JWT.Secret,
		Timeout:    cfg.Sales.Timeout,
		Log:        log.Component("http"),
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

	log.Info().Msg("aplicación detenida")
}

// healthHandler godoc
// @Summary      Estado del servicio
// @Tags         sistema
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health [get]
func healthHandler(pool *pgxpool.Pool, service string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": service})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": service})
	}
}
