package server

import (
	"crypto/subtle"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/keyauth"
)

// KeyAuth guards a route with the shared secret passed in the "key" query parameter.
func KeyAuth(expected string) fiber.Handler {
	return keyauth.New(keyauth.Config{
		KeyLookup: "query:key",
		Validator: func(_ *fiber.Ctx, key string) (bool, error) {
			if expected != "" && subtle.ConstantTimeCompare([]byte(key), []byte(expected)) == 1 {
				return true, nil
			}
			return false, keyauth.ErrMissingOrMalformedAPIKey
		},
		ErrorHandler: func(c *fiber.Ctx, _ error) error {
			return c.Status(http.StatusUnauthorized).SendString("Unauthorized")
		},
	})
}
