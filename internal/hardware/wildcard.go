package hardware

import (
	"regexp"
	"strconv"
)

// wildcardPattern matches a literal "{N}" placeholder inside an
// attribute value, e.g. the NIC naming pattern "Ethernet0/{10}".
var wildcardPattern = regexp.MustCompile(`\{(\d+)\}`)

// HasWildcard reports whether value contains a "{N}" placeholder.
func HasWildcard(value string) bool {
	return wildcardPattern.MatchString(value)
}

// SubstituteWildcard replaces every "{N}" placeholder in value with
// the base integer inside its braces plus offset: the wildcard is
// substituted per-item with a sequence counter starting from the
// integer inside the braces.
func SubstituteWildcard(value string, offset int) string {
	return wildcardPattern.ReplaceAllStringFunc(value, func(match string) string {
		sub := wildcardPattern.FindStringSubmatch(match)
		base, err := strconv.Atoi(sub[1])
		if err != nil {
			return match
		}
		return strconv.Itoa(base + offset)
	})
}
