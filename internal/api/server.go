package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// NewApp builds the Fiber application with all routes registered.
// Panics inside a handler are recovered so one bad request cannot take
// down the server.
func NewApp(log *zap.Logger, uploadDir string) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: 32 << 20,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	h := &Handler{Log: log, UploadDir: uploadDir}
	h.Register(app)
	return app
}

// Serve runs the HTTP API on the given address (e.g. ":8002"). Blocks
// until the listener fails.
func Serve(addr, uploadDir string, log *zap.Logger) error {
	log.Info("starting HTTP API", zap.String("addr", addr))
	return NewApp(log, uploadDir).Listen(addr)
}
