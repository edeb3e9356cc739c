package internal

// Extension is a named unit of behavior that layers routes and middleware
// onto the shell's router before the server starts.
//
// Name is used for logs and diagnostics only. The shell never compares
// names, so two extensions may share one and both are applied.
//
// Extend receives the router produced by the previously registered
// extension and returns the router for the next one. It must not keep r
// after returning.
//
// Example:
//
//	type Greeter struct{}
//
//	func (Greeter) Name() string { return "greeter" }
//
//	func (Greeter) Extend(r corex.Router) corex.Router {
//	    r.GET("/hello", func(c corex.Context) error {
//	        return c.String(200, "hello")
//	    })
//	    return r
//	}
type Extension interface {
	Name() string
	Extend(r Router) Router
}

// ExtensionFunc adapts a plain function to the Extension interface.
type ExtensionFunc struct {
	name string
	fn   func(r Router)
}

// NewExtension creates an Extension from a name and a route declaration function.
//
// Example:
//
//	shell.Register(corex.NewExtension("ping", func(r corex.Router) {
//	    r.GET("/ping", ping)
//	}))
func NewExtension(name string, fn func(r Router)) *ExtensionFunc {
	return &ExtensionFunc{name: name, fn: fn}
}

// Name returns the extension name.
func (e *ExtensionFunc) Name() string {
	return e.name
}

// Extend calls the wrapped function and returns r.
func (e *ExtensionFunc) Extend(r Router) Router {
	if e.fn != nil {
		e.fn(r)
	}
	return r
}
