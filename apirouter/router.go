package apirouter

import "strings"

// Router is the collaborator that consumes finalized route descriptors and
// owns request-time matching and dispatch. The registration table calls
// AddRoute exactly once per successful registration, synchronously, in
// registration order.
type Router[HandlerFunc any, MiddlewareFunc any, FrameworkRoute any] interface {
	// AddRoute installs a conflict-checked route in the underlying framework
	// router and returns the framework-specific route object.
	AddRoute(route *Route[HandlerFunc], middleware ...MiddlewareFunc) FrameworkRoute
	// DocsHandler builds a handler serving a pre-rendered documentation blob
	// with the given content type.
	DocsHandler(contentType string, blob []byte) HandlerFunc
	// TransformPathToOasPath converts a framework path pattern into the
	// {param} form used by OpenAPI paths.
	TransformPathToOasPath(path string) string
	Router() any
	Use(middleware ...MiddlewareFunc)
}

// TransformPathParamsWithColon rewrites ":param" path segments (echo, fiber)
// into the "{param}" form used by OpenAPI paths.
func TransformPathParamsWithColon(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if strings.HasPrefix(segment, ":") {
			segments[i] = "{" + segment[1:] + "}"
		}
	}
	return strings.Join(segments, "/")
}
