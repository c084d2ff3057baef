package urlq

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Location is a snapshot of the address a query is applied to.
type Location struct {
	// Query is the query already present in the address.
	Query *FieldMap
	// Fragment is the part after '#', without the '#'.
	Fragment mo.Option[string]
	// Path is the address without query and fragment.
	Path string
	// Title is the document title that is kept across the replace.
	Title string
}

// ParseLocation splits href into path, query and fragment. href may be
// absolute or relative. Only the text between the first and the second '#'
// is kept as the fragment.
func ParseLocation(href string) Location {
	rest, hash, hasHash := strings.Cut(href, "#")
	path, rawQuery, _ := strings.Cut(rest, "?")
	loc := Location{
		Query:    ParseQuery(rawQuery),
		Fragment: mo.None[string](),
		Path:     path,
	}
	if hasHash {
		fragment, _, _ := strings.Cut(hash, "#")
		loc.Fragment = mo.Some(fragment)
	}
	return loc
}

// ParseQuery reads a flat query string into a FieldMap. A leading '?' is
// ignored, '+' decodes to a space and a key that repeats with different
// values becomes a sequence.
// Pairs with an empty key are dropped.
func ParseQuery(raw string) *FieldMap {
	raw = strings.TrimPrefix(raw, "?")
	var keys []string
	values := map[string][]string{}
	for raw != "" {
		var part string
		part, raw, _ = strings.Cut(raw, "&")
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		key = unescape(key)
		if key == "" {
			continue
		}
		if _, ok := values[key]; !ok {
			keys = append(keys, key)
		}
		values[key] = append(values[key], unescape(value))
	}
	m := NewFieldMap()
	for _, k := range keys {
		if vs := lo.Uniq(values[k]); len(vs) == 1 {
			m.Set(k, Scalar(vs[0]))
		} else {
			m.Set(k, Sequence(vs...))
		}
	}
	return m
}

func unescape(s string) string {
	if u, err := url.QueryUnescape(s); err == nil {
		return u
	}
	return s
}

// HeaderCurrentURL carries the browser address on requests issued by htmx.
const HeaderCurrentURL = "HX-Current-URL"

// LocationFromRequest takes the browser address from the HX-Current-URL
// header and falls back to the request URI.
func LocationFromRequest(r *http.Request) Location {
	if href := r.Header.Get(HeaderCurrentURL); href != "" {
		return ParseLocation(href)
	}
	return ParseLocation(r.URL.RequestURI())
}

// Resolve returns the full address obtained by applying suffix to loc.
func Resolve(loc Location, suffix string) string {
	if strings.HasPrefix(suffix, "?") {
		return loc.Path + suffix
	}
	return suffix
}
