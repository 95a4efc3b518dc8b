package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"

	"github.com/jhoicas/bookstore-api/docs"
	"github.com/jhoicas/bookstore-api/internal/application/auth"
	"github.com/jhoicas/bookstore-api/internal/application/sales"
	"github.com/jhoicas/bookstore-api/internal/application/usecase"
	"github.com/jhoicas/bookstore-api/internal/domain/repository"
	infrapdf "github.com/jhoicas/bookstore-api/internal/infrastructure/pdf"
	"github.com/jhoicas/bookstore-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/bookstore-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/bookstore-api/internal/interfaces/http"
	"github.com/jhoicas/bookstore-api/pkg/config"
	"github.com/jhoicas/bookstore-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	authorRepo := postgres.NewAuthorRepository(pool)
	editorialRepo := postgres.NewEditorialRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché Redis de libros: opcional, sin REDIS_ADDR se lee directo de PostgreSQL.
	var bookRepo repository.BookRepository = postgres.NewBookRepository(pool)
	if cfg.Redis.Enabled() {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, caché de libros deshabilitada")
		} else {
			defer rdb.Close()
			bookRepo = infraredis.NewBookCache(bookRepo, rdb, cfg.Redis.BookTTL, log)
			log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.BookTTL).Msg("caché de libros activa")
		}
	}

	saleUC := sales.NewSaleUseCase(
		txRunner, saleRepo, bookRepo,
		infrapdf.NewReceiptRenderer(cfg.App.Name),
		sales.SystemClock{}, sales.UUIDGenerator{},
		sales.Options{VerifyBooks: cfg.Sales.VerifyBooks},
	)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    docs.SwaggerInfo.Title,
	}))
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(doc)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		SaleUC:      saleUC,
		AuthorUC:    usecase.NewAuthorUseCase(authorRepo),
		EditorialUC: usecase.NewEditorialUseCase(editorialRepo),
		CategoryUC:  usecase.NewCategoryUseCase(categoryRepo),
		BookUC:      usecase.NewBookUseCase(bookRepo),
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
		Log:         log,
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
