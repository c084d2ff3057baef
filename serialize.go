package urlq

import (
	"net/url"
	"strings"
)

// componentEscaper turns url.QueryEscape output into URI component encoding:
// spaces become %20 and the marks ! ' ( ) * stay literal.
var componentEscaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeComponent percent-encodes s as a URI component. Everything except
// ASCII letters, digits and - _ . ! ~ * ' ( ) is escaped as UTF-8 bytes.
func EncodeComponent(s string) string {
	return componentEscaper.Replace(url.QueryEscape(s))
}

// Serialize renders merged as a query string without the leading '?'.
// Sequences expand to one pair per member, so Empty writes nothing. Unless
// saveEmpty is set, empty sequence members and falsy scalars are left out.
// Empty keys and the key "&" are always skipped.
func Serialize(merged *FieldMap, saveEmpty bool) string {
	pairs := make([]string, 0, merged.Len())
	for key, value := range merged.All() {
		if key == "" || key == "&" {
			continue
		}
		if items, ok := value.sequence(); ok {
			for _, item := range items {
				if saveEmpty || item != "" {
					pairs = append(pairs, pair(key, item))
				}
			}
			continue
		}
		if saveEmpty || value.Truthy() {
			pairs = append(pairs, pair(key, value.String()))
		}
	}
	return strings.Join(pairs, "&")
}

func pair(key, value string) string {
	return EncodeComponent(key) + "=" + EncodeComponent(value)
}

// Suffix builds the address that replaces the current one. A non empty query
// yields "?query"; an empty query falls back to the bare path of loc. The
// fragment of loc is appended when saveHash is set and the fragment is not
// empty.
func Suffix(query string, loc Location, saveHash bool) string {
	hash := ""
	if fragment, ok := loc.Fragment.Get(); ok && saveHash && fragment != "" {
		hash = "#" + fragment
	}
	if query != "" {
		return "?" + query + hash
	}
	return loc.Path + hash
}
