package booster

import (
	"strings"

	"github.com/goml-dev/goboost/pkg/errors"
)

// ResolveParams maps deprecated parameter spellings in params onto their
// canonical names. Deprecated names are matched case-insensitively (the
// deprecated table keys must be lowercase); a name that is a unique prefix
// of a single deprecated name is matched as well. Each mapping emits a
// DeprecationWarning through the package warning handler. Keys that are
// canonical, ambiguous, or unknown pass through untouched without warning.
func ResolveParams(params map[string]string, canonical []string, deprecated map[string]string) map[string]string {
	canonSet := make(map[string]bool, len(canonical))
	for _, c := range canonical {
		canonSet[c] = true
	}

	out := make(map[string]string, len(params))
	for key, value := range params {
		if canonSet[key] {
			out[key] = value
			continue
		}

		lower := strings.ToLower(key)

		// Exact match against a deprecated name.
		if canon, ok := deprecated[lower]; ok {
			errors.Warn(errors.NewDeprecationWarning(key, lower, canon, false))
			out[canon] = value
			continue
		}

		// Unique prefix of exactly one deprecated name.
		matched := ""
		count := 0
		for dep := range deprecated {
			if strings.HasPrefix(dep, lower) {
				matched = dep
				count++
			}
		}
		if count == 1 {
			errors.Warn(errors.NewDeprecationWarning(key, matched, deprecated[matched], true))
			out[deprecated[matched]] = value
			continue
		}

		// Ambiguous or unmatched keys pass through silently.
		out[key] = value
	}

	return out
}
