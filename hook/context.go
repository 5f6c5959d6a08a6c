package hook

// Context is the mutable object threaded through a dispatch sequence.
// One Context is built per Run/RunSync call; two concurrent dispatches of
// the same hook name never share one.
//
// Context is not safe for concurrent use by callbacks that outlive their
// sequence. Within a sequence, callbacks run one at a time.
type Context struct {
	// Hook is the name the sequence was dispatched for.
	Hook string

	// Params are the caller's dispatch arguments, shared by reference
	// with every callback in the sequence.
	Params []any

	values map[string]any
}

// Param returns the i-th dispatch parameter, or nil when out of range.
func (c *Context) Param(i int) any {
	if i < 0 || i >= len(c.Params) {
		return nil
	}
	return c.Params[i]
}

// Set stores a value on the context for later callbacks (or the caller)
// to read.
func (c *Context) Set(key string, v any) {
	if c.values == nil {
		c.values = make(map[string]any)
	}
	c.values[key] = v
}

// Get returns a value previously stored with Set.
func (c *Context) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}
