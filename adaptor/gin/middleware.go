package gin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kcmvp/urlq"
)

// Middleware wraps the core urlq middleware for use with the Gin framework.
// It accepts the same options as urlq.Middleware.
func Middleware(opts ...urlq.BindOption) gin.HandlerFunc {
	core := urlq.Middleware(opts...)

	return func(c *gin.Context) {
		// The core middleware replaces the request context; hand the new request
		// back to Gin before continuing the chain.
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.Request = r
			c.Next()
		})
		core(next).ServeHTTP(c.Writer, c.Request)
	}
}

// Setter returns the query setter of the request, or nil when the route is
// not bound.
func Setter(c *gin.Context) *urlq.Setter {
	return urlq.FromContext(c.Request.Context())
}

// SetQuery sets in on the address of the request.
func SetQuery(c *gin.Context, in urlq.Input, opts ...urlq.Option) error {
	s := Setter(c)
	if s == nil {
		return urlq.ErrNotBound
	}
	return s.Set(in, opts...)
}
