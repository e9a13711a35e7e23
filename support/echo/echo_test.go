package echo

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	routetable "go.lumeweb.com/routetable"
)

func setupTable(t *testing.T) (*routetable.Table[echo.HandlerFunc, echo.MiddlewareFunc, Route], *echo.Echo) {
	t.Helper()

	echoRouter := echo.New()
	table, err := routetable.NewTable(NewRouter(echoRouter), routetable.Options{
		Docs: &openapi3.T{
			Info: &openapi3.Info{
				Title:   "test openapi title",
				Version: "test openapi version",
			},
		},
	})
	require.NoError(t, err)

	return table, echoRouter
}

func textHandler(body string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.String(http.StatusOK, body)
	}
}

func doRequest(router *echo.Echo, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestEchoRouterIntegration(t *testing.T) {
	t.Run("dispatches by method", func(t *testing.T) {
		table, echoRouter := setupTable(t)

		_, err := table.Get("/users", textHandler("list"), routetable.RouteOptions{})
		require.NoError(t, err)
		_, err = table.Post("/users", textHandler("created"), routetable.RouteOptions{})
		require.NoError(t, err)

		w := doRequest(echoRouter, http.MethodGet, "/users")
		require.Equal(t, http.StatusOK, w.Result().StatusCode)
		assert.Equal(t, "list", w.Body.String())

		w = doRequest(echoRouter, http.MethodPost, "/users")
		require.Equal(t, http.StatusOK, w.Result().StatusCode)
		assert.Equal(t, "created", w.Body.String())

		w = doRequest(echoRouter, http.MethodDelete, "/users")
		assert.Equal(t, http.StatusMethodNotAllowed, w.Result().StatusCode)
	})

	t.Run("multi-method registration shares one handler", func(t *testing.T) {
		table, echoRouter := setupTable(t)

		_, err := table.Register([]string{http.MethodPut, http.MethodPatch}, "/users/:id", func(c echo.Context) error {
			return c.String(http.StatusOK, c.Param("id"))
		}, routetable.RouteOptions{})
		require.NoError(t, err)

		w := doRequest(echoRouter, http.MethodPut, "/users/42")
		require.Equal(t, http.StatusOK, w.Result().StatusCode)
		assert.Equal(t, "42", w.Body.String())

		w = doRequest(echoRouter, http.MethodPatch, "/users/42")
		require.Equal(t, http.StatusOK, w.Result().StatusCode)
		assert.Equal(t, "42", w.Body.String())
	})

	t.Run("any-method route matches every verb", func(t *testing.T) {
		table, echoRouter := setupTable(t)

		_, err := table.Any("/anything", textHandler("anything"), routetable.RouteOptions{})
		require.NoError(t, err)

		for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodDelete} {
			w := doRequest(echoRouter, method, "/anything")
			require.Equal(t, http.StatusOK, w.Result().StatusCode)
			assert.Equal(t, "anything", w.Body.String())
		}
	})

	t.Run("route middleware wraps the handler", func(t *testing.T) {
		table, echoRouter := setupTable(t)

		tagging := func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				c.Response().Header().Set("X-Tagged", "true")
				return next(c)
			}
		}

		_, err := table.Get("/tagged", textHandler("tagged"), routetable.RouteOptions{}, tagging)
		require.NoError(t, err)

		w := doRequest(echoRouter, http.MethodGet, "/tagged")
		require.Equal(t, http.StatusOK, w.Result().StatusCode)
		assert.Equal(t, "true", w.Header().Get("X-Tagged"))
	})

	t.Run("colon params become braced openapi params", func(t *testing.T) {
		table, _ := setupTable(t)

		_, err := table.Get("/users/:id", textHandler("user"), routetable.RouteOptions{})
		require.NoError(t, err)

		schema, err := table.OpenAPISchema()
		require.NoError(t, err)

		assert.NotNil(t, schema.Paths.Find("/users/{id}"))
		assert.Nil(t, schema.Paths.Find("/users/:id"))
	})

	t.Run("serves generated documentation", func(t *testing.T) {
		table, echoRouter := setupTable(t)

		_, err := table.Get("/users", textHandler("list"), routetable.RouteOptions{})
		require.NoError(t, err)

		require.NoError(t, table.ExposeDocs())

		w := doRequest(echoRouter, http.MethodGet, routetable.DefaultJSONDocumentationPath)
		require.Equal(t, http.StatusOK, w.Result().StatusCode)
		assert.Contains(t, w.Body.String(), "/users")
	})
}
