// Package pathutil provides path normalization and decomposition for share
// paths. Share paths use the backslash as the canonical separator; a forward
// slash is accepted as an alternate.
package pathutil

import (
	"errors"
	"strings"
)

const (
	// Separator is the canonical share path separator.
	Separator = `\`

	// AltSeparator is accepted on input and rewritten to Separator.
	AltSeparator = "/"
)

// ErrNoComponents is returned when a path contains only separators.
var ErrNoComponents = errors.New("path has no components")

// Normalize rewrites every alternate separator to the canonical one.
// Nothing else is touched: "." and ".." are ordinary names to the server.
func Normalize(path string) string {
	return strings.ReplaceAll(path, AltSeparator, Separator)
}

// Components splits a path into its non-empty components.
// Leading, trailing and repeated separators are dropped.
func Components(path string) []string {
	parts := strings.Split(Normalize(path), Separator)
	components := parts[:0]
	for _, part := range parts {
		if part != "" {
			components = append(components, part)
		}
	}
	return components
}

// Ancestors returns every directory on the way to path, shallowest first,
// ending with path itself in canonical form. Each element extends the
// previous one by exactly one component.
//
//	Ancestors("/a/b/c") // ["a", `a\b`, `a\b\c`]
func Ancestors(path string) ([]string, error) {
	components := Components(path)
	if len(components) == 0 {
		return nil, ErrNoComponents
	}

	ancestors := make([]string, 0, len(components))
	current := ""
	for _, component := range components {
		if current == "" {
			current = component
		} else {
			current += Separator + component
		}
		ancestors = append(ancestors, current)
	}

	return ancestors, nil
}

// Join joins elements with the canonical separator, normalizing each one and
// skipping empty results.
func Join(elem ...string) string {
	var components []string
	for _, e := range elem {
		components = append(components, Components(e)...)
	}
	return strings.Join(components, Separator)
}

// ToSlash converts a share path to the slash-separated form used by object
// stores and local filesystems.
func ToSlash(path string) string {
	return strings.Join(Components(path), "/")
}
