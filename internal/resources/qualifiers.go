package resources

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/threatflux/cot/internal/errors"
)

// propertyShape backs the struct-level validation of a Property's own
// fields (type/key shape), delegated to validator/v10 the way the
// teacher delegates request-shape validation. Qualifier expressions
// (MaxLen, enumeration) are domain-specific and parsed/applied below —
// validator/v10 has no built-in notion of an OVF qualifier string.
type propertyShape struct {
	Key   string `validate:"required"`
	Type  string `validate:"required,oneof=string boolean int"`
}

var validate = validator.New()

// ValidateShape checks that p's key and type are well-formed.
func ValidateShape(p Property) error {
	shape := propertyShape{Key: p.Key, Type: string(p.Type)}
	if err := validate.Struct(shape); err != nil {
		return errors.WrapWithKind(err, errors.KindInvalidInput, "property %q", p.Key)
	}
	return nil
}

// Qualifier is one parsed ProductSection property qualifier.
type Qualifier struct {
	MaxLen int      // >0 if this is a MaxLen(N) qualifier
	Enum   []string // non-nil if this is a ValueMap/enumeration qualifier
}

var maxLenPattern = regexp.MustCompile(`^MaxLen\((\d+)\)$`)
var valueMapPattern = regexp.MustCompile(`^ValueMap\((.*)\)$`)

// ParseQualifiers parses a comma-separated qualifier expression, e.g.
// "MaxLen(20)" or "ValueMap(a,b,c)".
func ParseQualifiers(raw string) ([]Qualifier, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var out []Qualifier
	for _, part := range splitTopLevelComma(raw) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if m := maxLenPattern.FindStringSubmatch(part); m != nil {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				return nil, errors.WrapWithKind(err, errors.KindInvalidInput, "qualifier %q", part)
			}
			out = append(out, Qualifier{MaxLen: n})
			continue
		}

		if m := valueMapPattern.FindStringSubmatch(part); m != nil {
			values := strings.Split(m[1], ",")
			for i := range values {
				values[i] = strings.TrimSpace(values[i])
			}
			out = append(out, Qualifier{Enum: values})
			continue
		}

		return nil, errors.WrapWithKind(fmt.Errorf("unrecognized qualifier %q", part), errors.KindInvalidInput, "parse qualifiers")
	}

	return out, nil
}

// splitTopLevelComma splits on commas that are not inside parentheses,
// so "MaxLen(20),ValueMap(a,b,c)" splits into two qualifiers, not four.
func splitTopLevelComma(s string) []string {
	var out []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, s[start:])
	return out
}

// ValidateValue checks value against every qualifier, returning
// ErrQualifierViolated wrapped with a descriptive message on the first
// violation.
func ValidateValue(value string, qualifiers []Qualifier) error {
	for _, q := range qualifiers {
		if q.MaxLen > 0 && len(value) > q.MaxLen {
			return errors.WrapWithKind(
				fmt.Errorf("value %q exceeds MaxLen(%d): %w", value, q.MaxLen, errors.ErrQualifierViolated),
				errors.KindInvalidInput,
				"qualifier violated",
			)
		}
		if q.Enum != nil {
			allowed := false
			for _, e := range q.Enum {
				if e == value {
					allowed = true
					break
				}
			}
			if !allowed {
				return errors.WrapWithKind(
					fmt.Errorf("value %q not in %v: %w", value, q.Enum, errors.ErrQualifierViolated),
					errors.KindInvalidInput,
					"qualifier violated",
				)
			}
		}
	}
	return nil
}
