package apirouter

import "strings"

// MethodAny is the methods-value meaning "every HTTP method". A methods slice
// containing it (or an empty slice) registers a route that claims the whole
// path for conflict purposes.
const MethodAny = "*"

// Route is a finalized route descriptor: a path, the ordered set of HTTP
// methods it accepts (or every method), an opaque handler and an optional
// name. Routes are immutable once constructed; the registration table is the
// only producer of conflict-checked descriptors.
//
// Type parameters:
//   - HandlerFunc: Framework-specific handler function type
type Route[HandlerFunc any] struct {
	path    string
	methods []string // nil when the route accepts every method
	handler HandlerFunc
	name    string
}

// NewRoute builds a route descriptor. Method tokens are deduplicated with
// insertion order preserved; an empty slice or one containing MethodAny
// yields a route accepting every method. Tokens are taken as given, with no
// case normalization.
func NewRoute[HandlerFunc any](path string, methods []string, handler HandlerFunc, name string) *Route[HandlerFunc] {
	return &Route[HandlerFunc]{
		path:    path,
		methods: normalizeMethods(methods),
		handler: handler,
		name:    name,
	}
}

// Path returns the exact path the route was registered with.
func (r *Route[HandlerFunc]) Path() string {
	return r.path
}

// Methods returns a copy of the ordered method set, or nil when the route
// accepts every method.
func (r *Route[HandlerFunc]) Methods() []string {
	if r.methods == nil {
		return nil
	}
	methods := make([]string, len(r.methods))
	copy(methods, r.methods)
	return methods
}

// AcceptsAny reports whether the route accepts every HTTP method.
func (r *Route[HandlerFunc]) AcceptsAny() bool {
	return r.methods == nil
}

// Handler returns the handler the route was registered with. The descriptor
// never invokes or inspects it.
func (r *Route[HandlerFunc]) Handler() HandlerFunc {
	return r.handler
}

// Name returns the optional route name, or "" when none was assigned.
func (r *Route[HandlerFunc]) Name() string {
	return r.name
}

func (r *Route[HandlerFunc]) String() string {
	if r.methods == nil {
		return MethodAny + " " + r.path
	}
	return strings.Join(r.methods, ",") + " " + r.path
}

func normalizeMethods(methods []string) []string {
	if len(methods) == 0 {
		return nil
	}
	normalized := make([]string, 0, len(methods))
	seen := make(map[string]struct{}, len(methods))
	for _, method := range methods {
		if method == MethodAny {
			return nil
		}
		if _, ok := seen[method]; ok {
			continue
		}
		seen[method] = struct{}{}
		normalized = append(normalized, method)
	}
	return normalized
}
