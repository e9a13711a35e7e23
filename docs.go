package routetable

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/ghodss/yaml"
)

var (
	ErrGenerateDocs   = errors.New("fail to generate openapi")
	ErrValidatingDocs = errors.New("fails to validate openapi")
)

// documentedMethods is the expansion used when a route accepts every method.
var documentedMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodConnect,
	http.MethodOptions,
	http.MethodTrace,
}

// OpenAPISchema builds an OpenAPI document describing every registered route.
// The document is seeded from Options.Docs (info, servers, openapi version);
// each descriptor contributes one operation per accepted method, with routes
// accepting every method expanded over the standard verbs. Route names become
// operation ids.
func (t *Table[HandlerFunc, MiddlewareFunc, FrameworkRoute]) OpenAPISchema() (*openapi3.T, error) {
	rt := t.rootTable
	if rt.docs == nil {
		return nil, fmt.Errorf("%w: no openapi metadata configured", ErrGenerateDocs)
	}

	schema := &openapi3.T{
		OpenAPI: rt.docs.OpenAPI,
		Info:    rt.docs.Info,
		Servers: rt.docs.Servers,
		Paths:   &openapi3.Paths{},
	}

	for _, route := range t.Routes() {
		oasPath := rt.router.TransformPathToOasPath(route.Path())

		methods := route.Methods()
		if route.AcceptsAny() {
			methods = documentedMethods
		}
		for _, method := range methods {
			operation := openapi3.NewOperation()
			operation.Responses = openapi3.NewResponses()
			if name := route.Name(); name != "" {
				operation.OperationID = name
				if len(methods) > 1 {
					operation.OperationID = name + "-" + strings.ToLower(method)
				}
			}
			schema.AddOperation(oasPath, method, operation)
		}
	}

	return schema, nil
}

// DocsJSON renders the table's OpenAPI document as JSON.
func (t *Table[HandlerFunc, MiddlewareFunc, FrameworkRoute]) DocsJSON() ([]byte, error) {
	schema, err := t.OpenAPISchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(t.rootTable.context); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidatingDocs, err)
	}

	jsonDocs, err := schema.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("%w json marshal: %s", ErrGenerateDocs, err)
	}
	return jsonDocs, nil
}

// DocsYAML renders the table's OpenAPI document as YAML.
func (t *Table[HandlerFunc, MiddlewareFunc, FrameworkRoute]) DocsYAML() ([]byte, error) {
	jsonDocs, err := t.DocsJSON()
	if err != nil {
		return nil, err
	}
	yamlDocs, err := yaml.JSONToYAML(jsonDocs)
	if err != nil {
		return nil, fmt.Errorf("%w yaml marshal: %s", ErrGenerateDocs, err)
	}
	return yamlDocs, nil
}

// ExposeDocs snapshots the documentation for the routes registered so far and
// registers GET routes serving it in json and yaml form, on the paths set in
// Options. The doc routes go through the normal registration path, so they
// are conflict-checked and appear in Routes(); the served snapshot does not
// list them. Can only be called on the root table.
func (t *Table[HandlerFunc, MiddlewareFunc, FrameworkRoute]) ExposeDocs() error {
	if t.rootTable != t {
		return errors.New("ExposeDocs() can only be called on the root table instance")
	}

	jsonDocs, err := t.DocsJSON()
	if err != nil {
		return err
	}
	yamlDocs, err := yaml.JSONToYAML(jsonDocs)
	if err != nil {
		return fmt.Errorf("%w yaml marshal: %s", ErrGenerateDocs, err)
	}

	if _, err := t.Get(t.jsonDocumentationPath, t.router.DocsHandler("application/json", jsonDocs), RouteOptions{}); err != nil {
		return err
	}
	if _, err := t.Get(t.yamlDocumentationPath, t.router.DocsHandler("text/plain", yamlDocs), RouteOptions{}); err != nil {
		return err
	}
	return nil
}
