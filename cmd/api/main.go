package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-commerce-gql/internal/config"
	"go-commerce-gql/internal/erp"
	"go-commerce-gql/internal/graph"
	"go-commerce-gql/internal/repository"
	"go-commerce-gql/internal/service"
	"go-commerce-gql/pkg/database"
	"go-commerce-gql/pkg/logger"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration. \n", err)
	}

	// 2. Setup Logger
	zlog, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to build logger. \n", err)
	}
	defer zlog.Sync()

	// 3. Setup Databases (one logical connection per entity domain)
	ctx := context.Background()

	accountsConn, err := database.Connect(ctx, "accounts", cfg.Accounts.URI, cfg.Accounts.Name, zlog)
	if err != nil {
		zlog.Fatal("accounts database unavailable", zap.Error(err))
	}
	productsConn, err := database.Connect(ctx, "products", cfg.Products.URI, cfg.Products.Name, zlog)
	if err != nil {
		zlog.Fatal("products database unavailable", zap.Error(err))
	}

	// 4. Dependency Injection (Wiring Layers)
	accountRepo := repository.NewAccountRepo(accountsConn.Collection("accounts"))
	productRepo := repository.NewProductRepo(productsConn.Collection("products"))

	if err := accountRepo.EnsureIndexes(ctx); err != nil {
		zlog.Fatal("failed to ensure account indexes", zap.Error(err))
	}
	if err := productRepo.EnsureIndexes(ctx); err != nil {
		zlog.Fatal("failed to ensure product indexes", zap.Error(err))
	}

	var partnerClient erp.PartnerClient
	if cfg.Odoo.Enabled() {
		client, err := erp.NewClient(cfg.Odoo)
		if err != nil {
			zlog.Fatal("failed to build erp client", zap.Error(err))
		}
		partnerClient = client
		zlog.Info("erp partner integration enabled", zap.String("url", cfg.Odoo.URL))
	}

	accountService := service.NewAccountService(accountRepo, partnerClient, cfg.Pagination, zlog)
	productService := service.NewProductService(productRepo, accountRepo, zlog)

	resolver := graph.NewResolver(accountService, productService, zlog)
	schema := graphql.MustParseSchema(graph.Schema(), resolver,
		graphql.Logger(graph.PanicLogger{Log: zlog}))

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Commerce GraphQL API v1.0",
	})

	// Middleware
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(fiberlogger.New()) // Logging request
	app.Use(recover.New())     // Panic recovery
	app.Use(cors.New())        // CORS

	// 6. Routes
	app.All("/graphql", adaptor.HTTPHandler(&relay.Handler{Schema: schema}))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := accountsConn.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "accounts connection down"})
		}
		if err := productsConn.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "products connection down"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// 7. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			zlog.Fatal("server stopped", zap.Error(err))
		}
	}()
	zlog.Info("graphql server listening", zap.String("port", cfg.Port))

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		zlog.Error("server forced to shutdown", zap.Error(err))
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	accountsConn.Close(closeCtx)
	productsConn.Close(closeCtx)

	zlog.Info("server exited")
}
