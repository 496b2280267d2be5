package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// rateIdentity returns a stable identifier for the current caller
// used in rate-limit keys. Authenticated requests are keyed by the
// user id set by JWTAuth; everything else falls back to "anon".
func rateIdentity(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case nil:
		return "anon"
	case string:
		if v != "" {
			return v
		}
		return "anon"
	case float64:
		return fmt.Sprintf("%d", uint64(v))
	case uint64:
		return fmt.Sprintf("%d", v)
	default:
		return "anon"
	}
}
