package types

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrorKind classifies the errors returned by the registry, the classifiers and the generators.
type ErrorKind int

//go:generate go tool enumer -type=ErrorKind -trimprefix=Kind -output=gen_errorkind_enumer.go errors.go

const (
	// KindInternal is used for broken invariants, it indicates a bug.
	KindInternal ErrorKind = iota

	// KindUnsupportedPattern is returned when no pattern parser matches the compute graph summary.
	KindUnsupportedPattern

	// KindInvalidConfig is returned when an option is not supported by the pattern, or conflicts with
	// another option.
	KindInvalidConfig

	// KindInvalidKeepdims is returned when keepdims is not given for a pattern that requires it.
	KindInvalidKeepdims

	// KindInvalidShape is returned for inconsistent ranks or malformed ranges.
	KindInvalidShape

	// KindNoLegalTiling is returned when a classified group admits no legal (block, ub) split.
	KindNoLegalTiling
)

// InvalidConfigCode is the error code reported for invalid operator configurations.
const InvalidConfigCode = "E90001"

// NoAxis is used in Error.Axis when the error is not about a specific axis.
const NoAxis = -1

// Error is the structured error returned by this module. Use errors.As (or KindOf) to inspect it.
type Error struct {
	Kind    ErrorKind
	Pattern Pattern

	// Axis is the offending axis, or NoAxis.
	Axis int

	// Role of the offending axis, only set together with HasRole.
	Role    AxisRole
	HasRole bool

	// ConfigKey is the offending configuration option, if any.
	ConfigKey string

	Msg string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var parts []string
	if e.Kind == KindInvalidConfig || e.Kind == KindInvalidKeepdims {
		parts = append(parts, fmt.Sprintf("%s[%s]", e.Kind, InvalidConfigCode))
	} else {
		parts = append(parts, e.Kind.String())
	}
	if e.Pattern != PatternInvalid {
		parts = append(parts, fmt.Sprintf("pattern %s", e.Pattern))
	}
	if e.ConfigKey != "" {
		parts = append(parts, fmt.Sprintf("option %q", e.ConfigKey))
	}
	if e.Axis != NoAxis {
		parts = append(parts, fmt.Sprintf("axis %d", e.Axis))
	}
	if e.HasRole {
		parts = append(parts, fmt.Sprintf("role %s", e.Role))
	}
	return strings.Join(parts, ", ") + ": " + e.Msg
}

func newError(kind ErrorKind, pattern Pattern, axis int, key string, format string, args ...any) error {
	return errors.WithStack(&Error{
		Kind:      kind,
		Pattern:   pattern,
		Axis:      axis,
		ConfigKey: key,
		Msg:       fmt.Sprintf(format, args...),
	})
}

// ErrUnsupportedPattern returns an error of KindUnsupportedPattern.
func ErrUnsupportedPattern(format string, args ...any) error {
	return newError(KindUnsupportedPattern, PatternInvalid, NoAxis, "", format, args...)
}

// ErrInvalidConfig returns an error of KindInvalidConfig about the option key.
func ErrInvalidConfig(pattern Pattern, key string, format string, args ...any) error {
	return newError(KindInvalidConfig, pattern, NoAxis, key, format, args...)
}

// ErrInvalidKeepdims returns an error of KindInvalidKeepdims.
func ErrInvalidKeepdims(pattern Pattern) error {
	return newError(KindInvalidKeepdims, pattern, NoAxis, "keepdims", "keepdims must be given for %s", pattern.OpName())
}

// ErrInvalidShape returns an error of KindInvalidShape, axis can be NoAxis.
func ErrInvalidShape(pattern Pattern, axis int, format string, args ...any) error {
	return newError(KindInvalidShape, pattern, axis, "", format, args...)
}

// ErrInvalidAxisRole returns an error of KindInvalidShape about an axis with the given role.
func ErrInvalidAxisRole(pattern Pattern, axis int, role AxisRole, format string, args ...any) error {
	err := &Error{
		Kind:    KindInvalidShape,
		Pattern: pattern,
		Axis:    axis,
		Role:    role,
		HasRole: true,
		Msg:     fmt.Sprintf(format, args...),
	}
	return errors.WithStack(err)
}

// ErrNoLegalTiling returns an error of KindNoLegalTiling.
func ErrNoLegalTiling(pattern Pattern, format string, args ...any) error {
	return newError(KindNoLegalTiling, pattern, NoAxis, "", format, args...)
}

// ErrInternal returns an error of KindInternal.
func ErrInternal(pattern Pattern, format string, args ...any) error {
	return newError(KindInternal, pattern, NoAxis, "", format, args...)
}

// AsError returns the *Error wrapped in err, or nil if there is none.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// KindOf returns the ErrorKind of err. Errors not created by this module are reported as KindInternal.
func KindOf(err error) ErrorKind {
	if e := AsError(err); e != nil {
		return e.Kind
	}
	return KindInternal
}

// IsKind returns whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	e := AsError(err)
	return e != nil && e.Kind == kind
}
