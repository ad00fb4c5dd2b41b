// Package opctx holds the per-build operator context: values set by the caller once per operator instance,
// before classification, and only read afterwards.
package opctx

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ModeEmpty is the value of Context.Mode that marks an operator whose tensors are statically known, or
// guaranteed, to have zero elements.
const ModeEmpty = "empty"

// Context of one operator instance.
//
// It must be fully configured before being handed to the classifiers and generators, and not mutated
// afterwards. A nil *Context is valid and means "no context".
type Context struct {
	// Name of the operator instance, used in logs and diagnostics.
	Name string

	// Mode is the build mode marker: ModeEmpty or "".
	Mode string

	extra map[string]any
}

// New returns a new Context for the named operator.
func New(name string) *Context {
	return &Context{Name: name}
}

// WithMode sets the mode marker and returns the context itself, so calls can be chained.
func (c *Context) WithMode(mode string) *Context {
	c.Mode = mode
	return c
}

// IsEmpty returns whether the context marks the operator as empty. It is false for a nil context.
func (c *Context) IsEmpty() bool {
	return c != nil && strings.EqualFold(c.Mode, ModeEmpty)
}

// SetExtra registers a pattern specific extra parameter and returns the context itself.
func (c *Context) SetExtra(key string, value any) *Context {
	if c.extra == nil {
		c.extra = make(map[string]any)
	}
	c.extra[key] = value
	return c
}

// Extra returns the extra parameter registered under key.
func (c *Context) Extra(key string) (value any, found bool) {
	if c == nil {
		return nil, false
	}
	value, found = c.extra[key]
	return
}

// ExtraInt returns the extra parameter under key if it is an int, or defaultValue otherwise.
func (c *Context) ExtraInt(key string, defaultValue int) int {
	value, found := c.Extra(key)
	if !found {
		return defaultValue
	}
	v, ok := value.(int)
	if !ok {
		return defaultValue
	}
	return v
}

// String implements fmt.Stringer.
func (c *Context) String() string {
	if c == nil {
		return "Context(nil)"
	}
	var sb strings.Builder
	_, _ = fmt.Fprintf(&sb, "Context(%q", c.Name)
	if c.Mode != "" {
		_, _ = fmt.Fprintf(&sb, ", mode=%s", c.Mode)
	}
	for _, key := range slices.Sorted(maps.Keys(c.extra)) {
		_, _ = fmt.Fprintf(&sb, ", %s=%v", key, c.extra[key])
	}
	sb.WriteString(")")
	return sb.String()
}
