// Package urlq builds the address that results from setting query fields on
// a location, the way a browser application replaces its address without a
// reload.
//
// The work happens in three steps that can be used on their own:
//
//   - Normalize: caller fields to a FieldMap, arrays flattened and deduplicated
//   - Merge: the FieldMap combined with the query already in the location
//   - Serialize and Suffix: the merged fields rendered as "?query#fragment"
//
// Build runs the three steps. SetQuery and Apply also hand the result to a
// Writer.
package urlq

import (
	"log/slog"

	"github.com/samber/lo"
)

// Options controls Build and SetQuery.
type Options struct {
	// SaveOld merges the new fields with the query of the location.
	SaveOld bool
	// SaveHash keeps the fragment of the location.
	SaveHash bool
	// SaveEmptyFields keeps fields whose value is empty or falsy.
	SaveEmptyFields bool
	// Collision decides how a key present in both queries is merged.
	Collision Collision
	// Title is handed to the Writer. The location title is used when empty.
	Title string
	// Logger receives a debug record for every built address.
	Logger *slog.Logger
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		SaveOld:  true,
		SaveHash: true,
	}
}

// NewOptions applies opts to DefaultOptions. nil options are skipped.
func NewOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithSaveOld sets Options.SaveOld.
func WithSaveOld(save bool) Option {
	return func(o *Options) { o.SaveOld = save }
}

// WithSaveHash sets Options.SaveHash.
func WithSaveHash(save bool) Option {
	return func(o *Options) { o.SaveHash = save }
}

// WithSaveEmptyFields sets Options.SaveEmptyFields.
func WithSaveEmptyFields(save bool) Option {
	return func(o *Options) { o.SaveEmptyFields = save }
}

// WithCollision sets the policy for keys present in both queries.
func WithCollision(c Collision) Option {
	return func(o *Options) { o.Collision = c }
}

// WithTitle sets the title handed to the Writer.
func WithTitle(title string) Option {
	return func(o *Options) { o.Title = title }
}

// WithLogger sets the logger receiving a debug record per built address.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// Writer replaces the current address with suffix, keeping title.
type Writer interface {
	Replace(suffix, title string) error
}

// WriterFunc adapts a function to Writer.
type WriterFunc func(suffix, title string) error

// Replace calls f(suffix, title).
func (f WriterFunc) Replace(suffix, title string) error {
	return f(suffix, title)
}

// Reader returns the current location.
type Reader interface {
	Location() (Location, error)
}

// ReadWriter reads the current location and replaces it.
type ReadWriter interface {
	Reader
	Writer
}

// Build returns the address suffix obtained by setting in on loc.
// It never fails; a nil in clears the fields that are not kept from loc.
func Build(loc Location, in Input, opts ...Option) string {
	return build(loc, in, NewOptions(opts...))
}

func build(loc Location, in Input, o Options) string {
	query := Serialize(Merge(Normalize(in), loc.Query, o), o.SaveEmptyFields)
	suffix := Suffix(query, loc, o.SaveHash)
	if o.Logger != nil {
		o.Logger.Debug("urlq: built address",
			slog.String("path", loc.Path),
			slog.Int("fields", len(in)),
			slog.Bool("saveOld", o.SaveOld),
			slog.String("collision", o.Collision.String()),
			slog.String("suffix", suffix))
	}
	return suffix
}

// SetQuery builds the address for in on loc and hands it to w once.
// The only error returned is the one of w.
func SetQuery(loc Location, in Input, w Writer, opts ...Option) error {
	o := NewOptions(opts...)
	suffix := build(loc, in, o)
	return w.Replace(suffix, lo.Ternary(o.Title != "", o.Title, loc.Title))
}

// Apply reads the location from rw, sets in on it and writes the result back.
func Apply(rw ReadWriter, in Input, opts ...Option) error {
	loc, err := rw.Location()
	if err != nil {
		return err
	}
	return SetQuery(loc, in, rw, opts...)
}
