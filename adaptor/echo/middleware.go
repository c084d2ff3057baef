package echo

import (
	"github.com/kcmvp/urlq"
	"github.com/labstack/echo/v4"
)

// Middleware creates an Echo middleware that attaches a urlq.Setter to every
// bound request. It wraps urlq.Middleware with Echo's net/http bridge.
func Middleware(opts ...urlq.BindOption) echo.MiddlewareFunc {
	return echo.WrapMiddleware(urlq.Middleware(opts...))
}

// Setter returns the query setter of the request, or nil when the route is
// not bound.
func Setter(c echo.Context) *urlq.Setter {
	return urlq.FromContext(c.Request().Context())
}

// SetQuery sets in on the address of the request.
func SetQuery(c echo.Context, in urlq.Input, opts ...urlq.Option) error {
	s := Setter(c)
	if s == nil {
		return urlq.ErrNotBound
	}
	return s.Set(in, opts...)
}
