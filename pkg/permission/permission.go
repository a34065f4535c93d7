package permission

import "strings"

// Table maps route patterns to the role required to call them.
//   - "/api/admin/users/:id/role" matches one segment per parameter
//   - "/api/admin/*" matches any remaining segments
type Table map[string]int

// Match returns the role required for path. When several patterns match,
// the most specific one (longest pattern) wins so that lookups are stable.
func (t Table) Match(path string) (int, bool) {
	best, bestLen, found := 0, -1, false
	for pattern, role := range t {
		if !matchRoute(pattern, path) {
			continue
		}
		if len(pattern) > bestLen {
			best, bestLen, found = role, len(pattern), true
		}
	}
	return best, found
}

// Allows reports whether any of roles satisfies the requirement for path.
// Paths missing from the table are denied.
func (t Table) Allows(path string, roles []int) bool {
	required, ok := t.Match(path)
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == required {
			return true
		}
	}
	return false
}

// matchRoute compares a route pattern with an actual path
//   - routeDef: e.g. /api/admin/users/:id
//   - path: e.g. /api/admin/users/65f1c
func matchRoute(routeDef, path string) bool {
	defParts := strings.Split(strings.Trim(routeDef, "/"), "/")
	pathParts := strings.Split(strings.Trim(path, "/"), "/")

	for i, seg := range defParts {
		if seg == "*" && i == len(defParts)-1 {
			return len(pathParts) >= i
		}
		if i >= len(pathParts) {
			return false
		}
		if strings.HasPrefix(seg, ":") {
			if pathParts[i] == "" {
				return false
			}
			continue
		}
		if seg != pathParts[i] {
			return false
		}
	}

	return len(defParts) == len(pathParts)
}
