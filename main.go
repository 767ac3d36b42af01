package main

import (
	"errors"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"library-api/cache"
	"library-api/config"
	"library-api/controller"
	"library-api/model"
	"library-api/routes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment variables")
	}
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("failed to create logger:", err)
	}
	defer logger.Sync()

	db, err := initDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}
	logger.Info("connected to database", zap.String("name", cfg.DBName))

	borrowedCache, err := cache.New(cfg.RedisAddr)
	if err != nil {
		logger.Fatal("failed to connect redis", zap.Error(err))
	}
	logger.Info("connected to redis", zap.String("addr", cfg.RedisAddr))

	app := newApp(logger)

	routes.Register(app,
		&controller.AuthController{DB: db, JWTSecret: cfg.JWTSecret, Log: logger},
		&controller.BookController{DB: db, Log: logger},
		&controller.ReaderController{DB: db, Log: logger},
		&controller.BorrowedController{DB: db, Cache: borrowedCache, Log: logger},
		cfg.JWTSecret,
	)
	routes.RegisterDocs(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "UP", "timestamp": time.Now().Format(time.RFC3339)})
	})

	app.Use(func(c *fiber.Ctx) error {
		logger.Warn("route not found", zap.String("method", c.Method()), zap.String("path", c.Path()))
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "route not found"})
	})

	ln, port, err := listenWithFallback(cfg.Port)
	if err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
	logger.Info("server listening", zap.Int("port", port))
	if err := app.Listener(ln); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func initDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&model.User{}, &model.Book{}, &model.Reader{}, &model.BorrowedBook{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func newApp(logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
			}
			logger.Error("unhandled error",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
		},
	})
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "http://localhost:3000",
		AllowMethods: "GET,POST,PUT",
		AllowHeaders: "Content-Type,Authorization",
	}))
	return app
}

// listenWithFallback tries successive ports starting at start, matching the
// behavior of the original deployment when the preferred port is taken.
func listenWithFallback(start int) (net.Listener, int, error) {
	for port := start; port < start+10; port++ {
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err == nil {
			return ln, port, nil
		}
	}
	return nil, 0, fmt.Errorf("no free port in range %d-%d", start, start+9)
}
