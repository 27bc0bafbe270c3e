package kernel

import (
	"slices"
	"strings"
)

// NormalizeAllergen returns the canonical form of an allergen name: trimmed and lower case,
// so that "Dairy " on a customer record matches "dairy" on a topping.
func NormalizeAllergen(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// UnionAllergens merges allergen lists into one sorted set of canonical names.
// Blank names are dropped. The result is never nil.
func UnionAllergens(lists ...[]string) []string {
	out := make([]string, 0)
	for _, list := range lists {
		for _, name := range list {
			if n := NormalizeAllergen(name); n != "" {
				out = append(out, n)
			}
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// ContainsAllergen reports whether set holds name once both are normalized.
func ContainsAllergen(set []string, name string) bool {
	n := NormalizeAllergen(name)
	if n == "" {
		return false
	}
	for _, a := range set {
		if NormalizeAllergen(a) == n {
			return true
		}
	}
	return false
}
