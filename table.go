package routetable

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"go.lumeweb.com/routetable/apirouter"
)

const (
	// DefaultJSONDocumentationPath is the path of the openapi documentation in json format.
	DefaultJSONDocumentationPath = "/documentation/json"
	// DefaultYAMLDocumentationPath is the path of the openapi documentation in yaml format.
	DefaultYAMLDocumentationPath = "/documentation/yaml"
	defaultOpenapiVersion        = "3.0.0"
)

// GetRouter unwraps the framework-specific router from a table.
func GetRouter[T any, H any, M any, R any](t *Table[H, M, R]) T {
	if t == nil || t.router == nil || t.router.Router() == nil {
		var zero T
		return zero
	}
	return t.router.Router().(T)
}

// Table is a conflict-checked route-registration table. It accepts
// declarations of path, allowed methods, handler and optional name, builds
// immutable route descriptors and forwards each one to the underlying
// framework router for request-time dispatch.
//
// Type parameters:
//   - HandlerFunc: Framework-specific handler function type
//   - MiddlewareFunc: Framework-specific middleware function type
//   - FrameworkRoute: Framework-specific route type
type Table[HandlerFunc any, MiddlewareFunc any, FrameworkRoute any] struct {
	router apirouter.Router[HandlerFunc, MiddlewareFunc, FrameworkRoute]

	context context.Context
	docs    *openapi3.T

	jsonDocumentationPath string
	yamlDocumentationPath string

	pathPrefix string

	rootTable *Table[HandlerFunc, MiddlewareFunc, FrameworkRoute]

	// registration state, held on the root table only; groups reach it
	// through rootTable. mu guards the whole check/append/forward sequence.
	mu     sync.Mutex
	routes []*apirouter.Route[HandlerFunc]
	claims map[string]*methodClaims
	names  map[string]*apirouter.Route[HandlerFunc]
}

// methodClaims records which methods are already taken for one path.
type methodClaims struct {
	any     bool
	claimed map[string]struct{}
}

// Router returns the underlying router collaborator. This allows accessing
// framework-specific functionality when needed.
func (t *Table[HandlerFunc, MiddlewareFunc, FrameworkRoute]) Router() apirouter.Router[HandlerFunc, MiddlewareFunc, FrameworkRoute] {
	return t.router
}

// Use adds middleware to the underlying router that will be executed for all
// routes registered on this table. Middleware values are opaque to the table;
// they are forwarded as given.
func (t *Table[HandlerFunc, MiddlewareFunc, FrameworkRoute]) Use(middleware ...MiddlewareFunc) {
	t.router.Use(middleware...)
}

// Group returns a view of the table with the given path prefix. Routes
// registered through the group have their paths joined with the prefix and
// are conflict-checked against the whole table on the full path. The group
// shares the root table's storage and lock.
func (t *Table[HandlerFunc, MiddlewareFunc, FrameworkRoute]) Group(pathPrefix string) (*Table[HandlerFunc, MiddlewareFunc, FrameworkRoute], error) {
	if pathPrefix == "" {
		return nil, errors.New("group path prefix cannot be empty")
	}
	return &Table[HandlerFunc, MiddlewareFunc, FrameworkRoute]{
		router:                t.router,
		context:               t.rootTable.context,
		docs:                  t.rootTable.docs,
		jsonDocumentationPath: t.rootTable.jsonDocumentationPath,
		yamlDocumentationPath: t.rootTable.yamlDocumentationPath,
		pathPrefix:            path.Join(t.pathPrefix, pathPrefix),
		rootTable:             t.rootTable,
	}, nil
}

// Routes returns a copy of all successfully registered descriptors, in
// registration order. Mutating the returned slice does not affect the table;
// the descriptors themselves are immutable.
func (t *Table[HandlerFunc, MiddlewareFunc, FrameworkRoute]) Routes() []*apirouter.Route[HandlerFunc] {
	rt := t.rootTable
	rt.mu.Lock()
	defer rt.mu.Unlock()

	routes := make([]*apirouter.Route[HandlerFunc], len(rt.routes))
	copy(routes, rt.routes)
	return routes
}

// Route looks up a registered descriptor by name. Names are not
// conflict-checked; when the same name was used twice the last registration
// wins.
func (t *Table[HandlerFunc, MiddlewareFunc, FrameworkRoute]) Route(name string) (*apirouter.Route[HandlerFunc], bool) {
	rt := t.rootTable
	rt.mu.Lock()
	defer rt.mu.Unlock()

	route, ok := rt.names[name]
	return route, ok
}

// Len returns the number of registered routes.
func (t *Table[HandlerFunc, MiddlewareFunc, FrameworkRoute]) Len() int {
	rt := t.rootTable
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return len(rt.routes)
}

// Options configures a new table.
type Options struct {
	Context context.Context
	// Docs optionally seeds the generated OpenAPI documentation with API
	// metadata (info, servers). Required before calling the docs operations.
	Docs *openapi3.T
	// JSONDocumentationPath is the path exposed by json endpoint. Default to /documentation/json.
	JSONDocumentationPath string
	// YAMLDocumentationPath is the path exposed by yaml endpoint. Default to /documentation/yaml.
	YAMLDocumentationPath string
	// PathPrefix is joined with every registered path.
	PathPrefix string
}

// NewTable builds an empty route table forwarding to the given framework
// router.
func NewTable[HandlerFunc, MiddlewareFunc, FrameworkRoute any](router apirouter.Router[HandlerFunc, MiddlewareFunc, FrameworkRoute], options Options) (*Table[HandlerFunc, MiddlewareFunc, FrameworkRoute], error) {
	if router == nil {
		return nil, errors.New("router is required")
	}

	docs, err := generateNewValidDocs(options.Docs)
	if err != nil {
		return nil, err
	}

	var ctx = options.Context
	if options.Context == nil {
		ctx = context.Background()
	}

	yamlDocumentationPath := DefaultYAMLDocumentationPath
	if options.YAMLDocumentationPath != "" {
		if err := isValidDocumentationPath(options.YAMLDocumentationPath); err != nil {
			return nil, err
		}
		yamlDocumentationPath = options.YAMLDocumentationPath
	}

	jsonDocumentationPath := DefaultJSONDocumentationPath
	if options.JSONDocumentationPath != "" {
		if err := isValidDocumentationPath(options.JSONDocumentationPath); err != nil {
			return nil, err
		}
		jsonDocumentationPath = options.JSONDocumentationPath
	}

	root := &Table[HandlerFunc, MiddlewareFunc, FrameworkRoute]{
		router:                router,
		context:               ctx,
		docs:                  docs,
		yamlDocumentationPath: yamlDocumentationPath,
		jsonDocumentationPath: jsonDocumentationPath,
		pathPrefix:            options.PathPrefix,
		claims:                make(map[string]*methodClaims),
		names:                 make(map[string]*apirouter.Route[HandlerFunc]),
	}
	root.rootTable = root

	return root, nil
}

func generateNewValidDocs(docs *openapi3.T) (*openapi3.T, error) {
	if docs == nil {
		return nil, nil
	}
	if docs.OpenAPI == "" {
		docs.OpenAPI = defaultOpenapiVersion
	}
	if docs.Paths == nil {
		docs.Paths = &openapi3.Paths{}
	}

	if docs.Info == nil {
		return nil, fmt.Errorf("openapi info is required")
	}
	if docs.Info.Title == "" {
		return nil, fmt.Errorf("openapi info title is required")
	}
	if docs.Info.Version == "" {
		return nil, fmt.Errorf("openapi info version is required")
	}

	return docs, nil
}

func isValidDocumentationPath(path string) error {
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("invalid path %s. Path should start with '/'", path)
	}
	return nil
}
