package expr

// Context binds variable names to numeric values. It is mutated only through
// SetVariable before evaluation and is read-only while an evaluation is in
// flight; one Context belongs to exactly one evaluation at a time.
type Context struct {
	vars map[string]float64
}

// NewContext returns an empty variable binding environment.
func NewContext() *Context {
	return &Context{vars: make(map[string]float64)}
}

// SetVariable binds name to value, replacing any previous binding.
func (c *Context) SetVariable(name string, value float64) {
	c.vars[name] = value
}

// Lookup returns the bound value and whether the name is bound at all.
// The evaluator treats an unbound name as 0; callers that want to
// distinguish use the second return.
func (c *Context) Lookup(name string) (float64, bool) {
	v, ok := c.vars[name]
	return v, ok
}

// Names returns the bound variable names in unspecified order.
func (c *Context) Names() []string {
	out := make([]string, 0, len(c.vars))
	for k := range c.vars {
		out = append(out, k)
	}
	return out
}
