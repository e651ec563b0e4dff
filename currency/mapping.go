// currency/mapping.go
package currency

import (
	"strconv"
	"strings"

	xcurrency "golang.org/x/text/currency"
)

// Mapping resolves a caller-supplied currency token to a Currency.
type Mapping interface {
	Resolve(token any) (Currency, bool)
}

// MappingFunc adapts a function to Mapping.
type MappingFunc func(token any) (Currency, bool)

// Resolve calls f(token).
func (f MappingFunc) Resolve(token any) (Currency, bool) {
	return f(token)
}

// Identity maps a Currency (or a non-nil *Currency) to itself and resolves
// nothing else. It does not consult any registry.
var Identity Mapping = MappingFunc(identity)

func identity(token any) (Currency, bool) {
	switch t := token.(type) {
	case Currency:
		return t, true
	case *Currency:
		if t == nil {
			return Currency{}, false
		}
		return *t, true
	default:
		return Currency{}, false
	}
}

// LookupMapping resolves tokens against the registry r:
//
//   - Currency or *Currency: by code
//   - int, int32, int64: numeric code
//   - string: name (case-insensitive), or a numeric code such as "840"
//   - x/text currency.Unit: by its ISO 4217 name ("USD")
//
// The registry is read at resolve time, so later registrations are visible.
func LookupMapping(r *Registry) Mapping {
	return MappingFunc(func(token any) (Currency, bool) {
		switch t := token.(type) {
		case Currency:
			return r.ByCode(t.Code)
		case *Currency:
			if t == nil {
				return Currency{}, false
			}
			return r.ByCode(t.Code)
		case int:
			return r.ByCode(t)
		case int32:
			return r.ByCode(int(t))
		case int64:
			return r.ByCode(int(t))
		case string:
			return resolveString(r, t)
		case xcurrency.Unit:
			return r.ByName(t.String())
		default:
			return Currency{}, false
		}
	})
}

func resolveString(r *Registry, s string) (Currency, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Currency{}, false
	}
	if c, ok := r.ByName(s); ok {
		return c, true
	}
	if code, err := strconv.Atoi(s); err == nil {
		return r.ByCode(code)
	}
	return Currency{}, false
}
