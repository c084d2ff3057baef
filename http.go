package urlq

import (
	"context"
	"errors"
	"net/http"

	"github.com/kcmvp/urlq/internal"
	"github.com/samber/lo"
	"github.com/tidwall/match"
)

// ErrNotBound is returned when a request carries no Setter.
var ErrNotBound = errors.New("urlq: request is not bound to a query setter")

// HeaderReplaceURL asks htmx to replace the browser address without a reload.
const HeaderReplaceURL = "HX-Replace-Url"

// HeaderWriter returns a Writer that sets HX-Replace-Url on h. The title is
// not sent; the browser keeps the current one.
func HeaderWriter(h http.Header) Writer {
	return WriterFunc(func(suffix, _ string) error {
		h.Set(HeaderReplaceURL, suffix)
		return nil
	})
}

// Setter sets query fields on the location of one request.
type Setter struct {
	loc      Location
	w        Writer
	defaults []Option
}

// NewSetter returns a Setter writing to w. defaults are applied before the
// options given to Set.
func NewSetter(loc Location, w Writer, defaults ...Option) *Setter {
	return &Setter{loc: loc, w: w, defaults: defaults}
}

// Location returns the location the setter was created for.
func (s *Setter) Location() Location {
	return s.loc
}

// Set builds the address for in and writes it.
func (s *Setter) Set(in Input, opts ...Option) error {
	return SetQuery(s.loc, in, s.w, append(append([]Option{}, s.defaults...), opts...)...)
}

// Binding attaches a Setter to requests.
type Binding struct {
	patterns []string
	defaults []Option
}

// BindOption configures a Binding.
type BindOption func(*Binding)

// OnlyPaths limits the binding to request paths matching one of patterns.
// `*` matches any number of characters and `?` exactly one.
func OnlyPaths(patterns ...string) BindOption {
	for _, p := range patterns {
		lo.Assertf(p != "", "urlq: empty path pattern")
	}
	return func(b *Binding) {
		b.patterns = append(b.patterns, patterns...)
	}
}

// Defaults sets the options every Setter of the binding starts with.
func Defaults(opts ...Option) BindOption {
	return func(b *Binding) {
		b.defaults = append(b.defaults, opts...)
	}
}

// NewBinding returns a Binding configured by opts. Without OnlyPaths it
// matches every request.
func NewBinding(opts ...BindOption) *Binding {
	b := &Binding{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Matches reports whether a request for path gets a Setter.
func (b *Binding) Matches(path string) bool {
	if len(b.patterns) == 0 {
		return true
	}
	return lo.ContainsBy(b.patterns, func(p string) bool {
		return match.Match(path, p)
	})
}

// Setter returns a Setter for loc writing to w with the binding defaults.
func (b *Binding) Setter(loc Location, w Writer) *Setter {
	return NewSetter(loc, w, b.defaults...)
}

// Middleware returns a net/http middleware storing a Setter in the request
// context. Handlers fetch it with FromContext.
func (b *Binding) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !b.Matches(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			s := b.Setter(LocationFromRequest(r), HeaderWriter(w.Header()))
			next.ServeHTTP(w, r.WithContext(WithSetter(r.Context(), s)))
		})
	}
}

// Middleware is shorthand for NewBinding(opts...).Middleware().
func Middleware(opts ...BindOption) func(http.Handler) http.Handler {
	return NewBinding(opts...).Middleware()
}

// WithSetter returns a copy of ctx carrying s.
func WithSetter(ctx context.Context, s *Setter) context.Context {
	return context.WithValue(ctx, internal.SetterKey, s)
}

// FromContext returns the Setter stored in ctx, or nil.
func FromContext(ctx context.Context) *Setter {
	if s, ok := ctx.Value(internal.SetterKey).(*Setter); ok {
		return s
	}
	return nil
}
