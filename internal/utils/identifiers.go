package utils

import (
	"strings"
	"unicode"
)

// ToSnakeCase converts a CamelCase enum name to snake_case, as used in kernel names: "TupleReduce" becomes
// "tuple_reduce" and "NC1HWC0" stays one word ("nc1hwc0").
func ToSnakeCase(s string) string {
	runes := []rune(s)
	var sb strings.Builder
	sb.Grow(len(s) + 4)
	for ii, r := range runes {
		if !unicode.IsUpper(r) {
			sb.WriteRune(r)
			continue
		}
		if ii > 0 {
			prev := runes[ii-1]
			startsWord := unicode.IsLower(prev)
			if unicode.IsUpper(prev) && ii+1 < len(runes) && unicode.IsLower(runes[ii+1]) {
				// Last capital of an acronym followed by a new word, e.g. the "P" in "UBPlain".
				startsWord = true
			}
			if startsWord {
				sb.WriteByte('_')
			}
		}
		sb.WriteRune(unicode.ToLower(r))
	}
	return sb.String()
}

// NormalizeIdentifier converts a name (of an operator or a platform) to a valid kernel identifier: only ASCII
// letters, digits, and underscores are kept, every other character is replaced by an underscore.
//
// If the name starts with a digit, it is prefixed with an underscore.
func NormalizeIdentifier(name string) string {
	if name == "" {
		return ""
	}
	var sb strings.Builder
	sb.Grow(len(name) + 1)
	if name[0] >= '0' && name[0] <= '9' {
		sb.WriteByte('_')
	}
	for _, r := range name {
		isValid := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_'
		if !isValid {
			r = '_'
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
