package fiber

import (
	"github.com/gofiber/fiber/v2"
	"go.lumeweb.com/routetable/apirouter"
)

type HandlerFunc = fiber.Handler
type Route = fiber.Router

var _ apirouter.Router[HandlerFunc, HandlerFunc, Route] = (*fiberRouter)(nil)

type fiberRouter struct {
	router fiber.Router // *fiber.App or fiber.Router
}

func (r fiberRouter) Router() any {
	return r.router
}

func NewRouter(router fiber.Router) apirouter.Router[HandlerFunc, HandlerFunc, Route] {
	return fiberRouter{
		router: router,
	}
}

func (r fiberRouter) AddRoute(route *apirouter.Route[HandlerFunc], middleware ...HandlerFunc) Route {
	// fiber chains middleware and handler in one handlers slice
	handlers := make([]HandlerFunc, 0, len(middleware)+1)
	handlers = append(handlers, middleware...)
	handlers = append(handlers, route.Handler())

	if route.AcceptsAny() {
		return r.router.All(route.Path(), handlers...)
	}

	var out Route
	for _, method := range route.Methods() {
		out = r.router.Add(method, route.Path(), handlers...)
	}
	return out
}

func (r fiberRouter) DocsHandler(contentType string, blob []byte) HandlerFunc {
	return func(c *fiber.Ctx) error {
		c.Set("Content-Type", contentType)
		return c.Send(blob)
	}
}

func (r fiberRouter) Use(middleware ...HandlerFunc) {
	for _, mw := range middleware {
		r.router.Use(mw)
	}
}

func (r fiberRouter) TransformPathToOasPath(path string) string {
	return apirouter.TransformPathParamsWithColon(path)
}
