package gorilla

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.lumeweb.com/routetable/apirouter"
)

// HandlerFunc is the http type handler used by gorilla/mux
type HandlerFunc func(w http.ResponseWriter, req *http.Request)
type Route = *mux.Route

var _ apirouter.Router[HandlerFunc, mux.MiddlewareFunc, Route] = (*gorillaRouter)(nil)

func NewRouter(router *mux.Router) apirouter.Router[HandlerFunc, mux.MiddlewareFunc, Route] {
	return gorillaRouter{
		router: router,
	}
}

type gorillaRouter struct {
	router *mux.Router
}

func (r gorillaRouter) Use(middleware ...mux.MiddlewareFunc) {
	r.router.Use(middleware...)
}

func (r gorillaRouter) AddRoute(route *apirouter.Route[HandlerFunc], middleware ...mux.MiddlewareFunc) Route {
	target := r.router
	if len(middleware) > 0 {
		// route-scoped middleware needs its own subrouter
		target = r.router.PathPrefix("").Subrouter()
		target.Use(middleware...)
	}

	muxRoute := target.HandleFunc(route.Path(), route.Handler())
	if !route.AcceptsAny() {
		muxRoute.Methods(route.Methods()...)
	}
	if route.Name() != "" {
		muxRoute.Name(route.Name())
	}
	return muxRoute
}

func (r gorillaRouter) DocsHandler(contentType string, blob []byte) HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		w.Write(blob)
	}
}

func (r gorillaRouter) TransformPathToOasPath(path string) string {
	return path
}

func (r gorillaRouter) Router() any {
	return r.router
}
