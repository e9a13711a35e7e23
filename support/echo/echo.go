package echo

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.lumeweb.com/routetable/apirouter"
)

// Route is the set of echo routes installed for one descriptor, one per
// accepted method.
type Route = []*echo.Route

var _ apirouter.Router[echo.HandlerFunc, echo.MiddlewareFunc, Route] = (*echoRouter)(nil)

type echoRouter struct {
	router *echo.Echo
}

func (r echoRouter) AddRoute(route *apirouter.Route[echo.HandlerFunc], middleware ...echo.MiddlewareFunc) Route {
	if route.AcceptsAny() {
		return r.router.Any(route.Path(), route.Handler(), middleware...)
	}
	return r.router.Match(route.Methods(), route.Path(), route.Handler(), middleware...)
}

func (r echoRouter) DocsHandler(contentType string, blob []byte) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Blob(http.StatusOK, contentType, blob)
	}
}

func (r echoRouter) TransformPathToOasPath(path string) string {
	return apirouter.TransformPathParamsWithColon(path)
}

func (r echoRouter) Router() any {
	return r.router
}

func (r echoRouter) Use(middleware ...echo.MiddlewareFunc) {
	r.router.Use(middleware...)
}

func NewRouter(router *echo.Echo) apirouter.Router[echo.HandlerFunc, echo.MiddlewareFunc, Route] {
	return echoRouter{
		router: router,
	}
}
