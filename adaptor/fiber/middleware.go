package fiber

import (
	"github.com/gofiber/fiber/v3"
	"github.com/kcmvp/urlq"
	"github.com/kcmvp/urlq/internal"
)

// Middleware provides a Fiber handler that attaches a urlq.Setter to every
// bound request. Fiber does not run on net/http, so the binding is applied
// natively: the location comes from HX-Current-URL or the original URL and
// the address is written to the HX-Replace-Url response header.
func Middleware(opts ...urlq.BindOption) fiber.Handler {
	b := urlq.NewBinding(opts...)
	return func(c fiber.Ctx) error {
		if !b.Matches(c.Path()) {
			return c.Next()
		}
		href := c.Get(urlq.HeaderCurrentURL)
		if href == "" {
			href = c.OriginalURL()
		}
		w := urlq.WriterFunc(func(suffix, _ string) error {
			c.Set(urlq.HeaderReplaceURL, suffix)
			return nil
		})
		c.Locals(internal.SetterKey, b.Setter(urlq.ParseLocation(href), w))
		return c.Next()
	}
}

// Setter returns the query setter of the request, or nil when the route is
// not bound.
func Setter(c fiber.Ctx) *urlq.Setter {
	if s, ok := c.Locals(internal.SetterKey).(*urlq.Setter); ok {
		return s
	}
	return nil
}

// SetQuery sets in on the address of the request.
func SetQuery(c fiber.Ctx, in urlq.Input, opts ...urlq.Option) error {
	s := Setter(c)
	if s == nil {
		return urlq.ErrNotBound
	}
	return s.Set(in, opts...)
}
