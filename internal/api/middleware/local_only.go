package middleware

import (
	"net"
	"net/http"

	"github.com/labstack/echo/v4"
)

// LocalOnly rejects requests whose peer address is not a loopback address. The
// form holds a single session, so it must not be reachable from other hosts.
func LocalOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			host, _, err := net.SplitHostPort(c.Request().RemoteAddr)
			if err != nil {
				host = c.Request().RemoteAddr
			}
			ip := net.ParseIP(host)
			if ip == nil || !ip.IsLoopback() {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
