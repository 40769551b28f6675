package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// Logger returns a zap-based request logging middleware.
func Logger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := utils.CopyString(c.Path())
		method := utils.CopyString(c.Method())

		err := c.Next()
		if err != nil {
			// Let the app error handler write the response before we read
			// the status.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		fields := []zap.Field{
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
			zap.String("method", method),
			zap.String("path", path),
			zap.String("client_ip", c.IP()),
		}
		if p := PrincipalFrom(c); p != nil {
			fields = append(fields, zap.String("principal", p.ID))
		}
		logger.Info("request", fields...)
		return nil
	}
}
