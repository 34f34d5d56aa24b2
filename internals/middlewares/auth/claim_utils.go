// internals/middlewares/auth/claim_utils.go
package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrNoUser     = errors.New("no authenticated user in context")
	ErrNoCustomer = errors.New("customer_id missing or not permitted")
)

func GetUserID(c *fiber.Ctx) (string, error) {
	if v, ok := c.Locals("user_id").(string); ok && v != "" {
		return v, nil
	}
	return "", ErrNoUser
}

// GetCustomerID reads customer_id from query (or X-Customer-ID header) and
// checks it against the token's customer access list. Every business
// endpoint is scoped by this value.
func GetCustomerID(c *fiber.Ctx) (string, error) {
	id := strings.TrimSpace(c.Query("customer_id"))
	if id == "" {
		id = strings.TrimSpace(c.Get("X-Customer-ID"))
	}
	if id == "" {
		return "", ErrNoCustomer
	}
	allowed, _ := c.Locals("customer_ids").([]string)
	if len(allowed) == 0 {
		// tokens without an explicit list are portal super-admins
		return id, nil
	}
	for _, a := range allowed {
		if a == id {
			return id, nil
		}
	}
	return "", ErrNoCustomer
}
