package contract

import (
	"errors"
	"fmt"
	"strings"
)

// RouteTokens returns the placeholder names in a route pattern, in
// order. Placeholders use http.ServeMux syntax: "/users/{id}" yields
// "id", and a trailing "{path...}" wildcard yields "path".
func RouteTokens(route string) []string {
	var tokens []string
	for _, seg := range strings.Split(route, "/") {
		if name, ok := tokenName(seg); ok {
			tokens = append(tokens, name)
		}
	}
	return tokens
}

// tokenName extracts the placeholder name from a single route segment.
func tokenName(seg string) (string, bool) {
	if len(seg) < 2 || seg[0] != '{' || seg[len(seg)-1] != '}' {
		return "", false
	}
	name := seg[1 : len(seg)-1]
	return strings.TrimSuffix(name, "..."), true
}

// checkTokenKeys verifies that the parameter decoder's keys and the
// route's tokens name exactly the same set.
func checkTokenKeys(route string, keys []string) error {
	tokens := RouteTokens(route)
	tokenSet := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		tokenSet[t] = struct{}{}
	}
	keySet := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		keySet[k] = struct{}{}
	}
	var missing, extra []string
	for _, t := range tokens {
		if _, ok := keySet[t]; !ok {
			missing = append(missing, t)
		}
	}
	for _, k := range keys {
		if _, ok := tokenSet[k]; !ok {
			extra = append(extra, k)
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}
	msg := fmt.Sprintf("route %q: parameter keys do not match route tokens", route)
	if len(missing) > 0 {
		msg += "; tokens without keys: " + strings.Join(missing, ", ")
	}
	if len(extra) > 0 {
		msg += "; keys without tokens: " + strings.Join(extra, ", ")
	}
	return errors.New(msg)
}

// checkRoute validates a route pattern: it must start with "/", brace
// placeholders must span whole segments and carry non-empty names, a
// "..." wildcard may only close the pattern, and token names must not
// repeat.
func checkRoute(route string) error {
	if route == "" || route[0] != '/' {
		return fmt.Errorf("route %q must start with /", route)
	}
	seen := make(map[string]struct{})
	segs := strings.Split(route[1:], "/")
	for i, seg := range segs {
		name, ok := tokenName(seg)
		if !ok {
			if strings.ContainsAny(seg, "{}") {
				return fmt.Errorf("route %q: malformed placeholder segment %q", route, seg)
			}
			continue
		}
		if name == "" {
			return fmt.Errorf("route %q: empty placeholder name", route)
		}
		if strings.ContainsAny(name, "{}") {
			return fmt.Errorf("route %q: malformed placeholder segment %q", route, seg)
		}
		if strings.HasSuffix(seg, "...}") && i != len(segs)-1 {
			return fmt.Errorf("route %q: wildcard %q must be the final segment", route, seg)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("route %q: duplicate token %q", route, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}
