package routetable

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"sort"
	"strings"

	"go.lumeweb.com/routetable/apirouter"
)

// Error variables for route registration failures
var (
	// ErrInvalidPath indicates the registration path is not a usable string.
	ErrInvalidPath = errors.New("invalid route path")
	// ErrDuplicateRoute indicates a route whose methods overlap an already
	// registered route on the same path.
	ErrDuplicateRoute = errors.New("duplicate route")
)

// RouteOptions carries the optional parts of a registration.
type RouteOptions struct {
	// Name optionally identifies the route for lookup via Table.Route.
	Name string
}

// Register declares a route for the given methods and conflict-checks it
// against every route already registered on the same path. A nil or empty
// methods slice (or one containing apirouter.MethodAny) claims every method.
// Two routes may share a path only when their method sets are disjoint; a
// route claiming every method overlaps everything, including another such
// route.
//
// On success the finalized descriptor is appended to the table, forwarded
// once to the router collaborator together with any middleware, and returned.
// On failure the table and the router are left untouched.
//
// Method tokens are case-sensitive and are not validated against the known
// HTTP verbs; duplicates within one call are collapsed, keeping the first
// occurrence's position.
func (t *Table[HandlerFunc, MiddlewareFunc, FrameworkRoute]) Register(methods []string, routePath string, handler HandlerFunc, opts RouteOptions, middleware ...MiddlewareFunc) (*apirouter.Route[HandlerFunc], error) {
	if routePath == "" {
		return nil, fmt.Errorf("%w: path must be a non-empty string", ErrInvalidPath)
	}

	fullPath := routePath
	if t.pathPrefix != "" {
		fullPath = path.Join(t.pathPrefix, routePath)
	}

	rt := t.rootTable
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if err := rt.checkConflict(fullPath, methods); err != nil {
		return nil, err
	}

	route := apirouter.NewRoute(fullPath, methods, handler, opts.Name)
	rt.claim(route)
	rt.routes = append(rt.routes, route)
	if opts.Name != "" {
		rt.names[opts.Name] = route
	}

	rt.router.AddRoute(route, middleware...)

	return route, nil
}

// Any registers a route accepting every HTTP method. Equivalent to Register
// with a nil methods slice.
func (t *Table[HandlerFunc, MiddlewareFunc, FrameworkRoute]) Any(routePath string, handler HandlerFunc, opts RouteOptions, middleware ...MiddlewareFunc) (*apirouter.Route[HandlerFunc], error) {
	return t.Register(nil, routePath, handler, opts, middleware...)
}

// Get registers a route for the GET method.
func (t *Table[HandlerFunc, MiddlewareFunc, FrameworkRoute]) Get(routePath string, handler HandlerFunc, opts RouteOptions, middleware ...MiddlewareFunc) (*apirouter.Route[HandlerFunc], error) {
	return t.Register([]string{http.MethodGet}, routePath, handler, opts, middleware...)
}

// Post registers a route for the POST method.
func (t *Table[HandlerFunc, MiddlewareFunc, FrameworkRoute]) Post(routePath string, handler HandlerFunc, opts RouteOptions, middleware ...MiddlewareFunc) (*apirouter.Route[HandlerFunc], error) {
	return t.Register([]string{http.MethodPost}, routePath, handler, opts, middleware...)
}

// Put registers a route for the PUT method.
func (t *Table[HandlerFunc, MiddlewareFunc, FrameworkRoute]) Put(routePath string, handler HandlerFunc, opts RouteOptions, middleware ...MiddlewareFunc) (*apirouter.Route[HandlerFunc], error) {
	return t.Register([]string{http.MethodPut}, routePath, handler, opts, middleware...)
}

// Patch registers a route for the PATCH method.
func (t *Table[HandlerFunc, MiddlewareFunc, FrameworkRoute]) Patch(routePath string, handler HandlerFunc, opts RouteOptions, middleware ...MiddlewareFunc) (*apirouter.Route[HandlerFunc], error) {
	return t.Register([]string{http.MethodPatch}, routePath, handler, opts, middleware...)
}

// Delete registers a route for the DELETE method.
func (t *Table[HandlerFunc, MiddlewareFunc, FrameworkRoute]) Delete(routePath string, handler HandlerFunc, opts RouteOptions, middleware ...MiddlewareFunc) (*apirouter.Route[HandlerFunc], error) {
	return t.Register([]string{http.MethodDelete}, routePath, handler, opts, middleware...)
}

// Head registers a route for the HEAD method.
func (t *Table[HandlerFunc, MiddlewareFunc, FrameworkRoute]) Head(routePath string, handler HandlerFunc, opts RouteOptions, middleware ...MiddlewareFunc) (*apirouter.Route[HandlerFunc], error) {
	return t.Register([]string{http.MethodHead}, routePath, handler, opts, middleware...)
}

// Options registers a route for the OPTIONS method.
func (t *Table[HandlerFunc, MiddlewareFunc, FrameworkRoute]) Options(routePath string, handler HandlerFunc, opts RouteOptions, middleware ...MiddlewareFunc) (*apirouter.Route[HandlerFunc], error) {
	return t.Register([]string{http.MethodOptions}, routePath, handler, opts, middleware...)
}

// Connect registers a route for the CONNECT method.
func (t *Table[HandlerFunc, MiddlewareFunc, FrameworkRoute]) Connect(routePath string, handler HandlerFunc, opts RouteOptions, middleware ...MiddlewareFunc) (*apirouter.Route[HandlerFunc], error) {
	return t.Register([]string{http.MethodConnect}, routePath, handler, opts, middleware...)
}

// Trace registers a route for the TRACE method.
func (t *Table[HandlerFunc, MiddlewareFunc, FrameworkRoute]) Trace(routePath string, handler HandlerFunc, opts RouteOptions, middleware ...MiddlewareFunc) (*apirouter.Route[HandlerFunc], error) {
	return t.Register([]string{http.MethodTrace}, routePath, handler, opts, middleware...)
}

// checkConflict reports whether the incoming method set overlaps a claim
// already held on fullPath. Must be called with the root table lock held.
func (t *Table[HandlerFunc, MiddlewareFunc, FrameworkRoute]) checkConflict(fullPath string, methods []string) error {
	claims, ok := t.claims[fullPath]
	if !ok {
		return nil
	}

	if claims.any {
		return fmt.Errorf("%w: path %q is already registered for any method", ErrDuplicateRoute, fullPath)
	}

	if acceptsAnyMethod(methods) {
		return fmt.Errorf("%w: cannot accept any method, path %q is already registered for %s",
			ErrDuplicateRoute, fullPath, strings.Join(claimedMethods(claims), ", "))
	}

	var overlapping []string
	for _, method := range methods {
		if _, taken := claims.claimed[method]; taken {
			overlapping = append(overlapping, method)
		}
	}
	if len(overlapping) > 0 {
		return fmt.Errorf("%w: path %q is already registered for %s",
			ErrDuplicateRoute, fullPath, strings.Join(overlapping, ", "))
	}

	return nil
}

// claim marks the route's methods as taken for its path. Must be called with
// the root table lock held.
func (t *Table[HandlerFunc, MiddlewareFunc, FrameworkRoute]) claim(route *apirouter.Route[HandlerFunc]) {
	claims, ok := t.claims[route.Path()]
	if !ok {
		claims = &methodClaims{claimed: make(map[string]struct{})}
		t.claims[route.Path()] = claims
	}
	if route.AcceptsAny() {
		claims.any = true
		return
	}
	for _, method := range route.Methods() {
		claims.claimed[method] = struct{}{}
	}
}

func acceptsAnyMethod(methods []string) bool {
	if len(methods) == 0 {
		return true
	}
	for _, method := range methods {
		if method == apirouter.MethodAny {
			return true
		}
	}
	return false
}

func claimedMethods(claims *methodClaims) []string {
	methods := make([]string, 0, len(claims.claimed))
	for method := range claims.claimed {
		methods = append(methods, method)
	}
	// Sort method names for consistent error messages
	sort.Strings(methods)
	return methods
}
