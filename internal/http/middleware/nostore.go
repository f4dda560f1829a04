package middleware

import "github.com/gofiber/fiber/v2"

// NoStore keeps browsers and proxies from caching per-user pages.
func NoStore() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderCacheControl, "no-store")
		return c.Next()
	}
}
