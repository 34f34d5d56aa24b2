// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"nitihub_backend/internals/configs"
	"nitihub_backend/internals/constants"
	helper "nitihub_backend/internals/helpers"
)

// AuthMiddleware verifies the bearer token issued by the login shim
// (claims originate from the external portal) and stores the caller
// identity plus customer access in locals.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, constants.ErrCodeUnauthorized, "กรุณาเข้าสู่ระบบ")
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, "ระบบยังไม่พร้อมใช้งาน")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		}); err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, constants.ErrCodeUnauthorized, "โทเคนไม่ถูกต้อง")
		}

		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, constants.ErrCodeUnauthorized, "โทเคนหมดอายุ")
		}

		uid, _ := claims["uid"].(string)
		if uid == "" {
			if sub, ok := claims["sub"].(string); ok {
				uid = sub
			}
		}
		if uid == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, constants.ErrCodeUnauthorized, "โทเคนไม่ถูกต้อง")
		}
		c.Locals("user_id", uid)

		if name, ok := claims["name"].(string); ok {
			c.Locals("user_name", name)
		}
		if role, ok := claims["role"].(string); ok {
			c.Locals("role", role)
		}
		c.Locals("customer_ids", customerIDsFromClaims(claims))

		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	h := c.Get(fiber.HeaderAuthorization)
	if h == "" {
		return "", errors.New("missing Authorization header")
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errors.New("malformed Authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}

func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	expRaw, ok := claims["exp"]
	if !ok {
		return errors.New("missing exp")
	}
	var exp time.Time
	switch v := expRaw.(type) {
	case float64:
		exp = time.Unix(int64(v), 0)
	case int64:
		exp = time.Unix(v, 0)
	default:
		return errors.New("invalid exp")
	}
	if time.Now().After(exp.Add(leeway)) {
		return errors.New("token expired")
	}
	return nil
}

func customerIDsFromClaims(claims jwt.MapClaims) []string {
	raw, ok := claims["customer_ids"]
	if !ok {
		return nil
	}
	arr, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok && s != "" {
			ids = append(ids, s)
		}
	}
	return ids
}
