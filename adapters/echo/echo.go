// Package inertiaecho provides Echo framework integration for the
// inertia adapter.
//
// Mount the middleware on an Echo instance or group, then render from
// handlers:
//
//	e := echo.New()
//	e.Use(inertiaecho.Middleware(adapter))
//
//	e.GET("/", func(c echo.Context) error {
//	    return inertiaecho.Render(c, "IndexPage", inertia.Props{
//	        "message": "hello",
//	    })
//	})
package inertiaecho

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pthm/inertia"
)

// Middleware binds a per-request inertia engine into the request
// context. Stale clients get the protocol's 409 forced-navigation
// response before the route handler runs; other bind failures flow
// into Echo's error handler.
func Middleware(a *inertia.Adapter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			i, err := a.Bind(c.Request())
			if err != nil {
				var vc *inertia.VersionConflictError
				if errors.As(err, &vc) {
					c.Response().Header().Set(inertia.HeaderLocation, vc.URL)
					return c.NoContent(http.StatusConflict)
				}
				return err
			}

			c.SetRequest(c.Request().WithContext(
				inertia.NewContext(c.Request().Context(), i)))
			return next(c)
		}
	}
}

// Get returns the per-request engine bound by Middleware.
func Get(c echo.Context) *inertia.Inertia {
	return inertia.MustFromContext(c.Request().Context())
}

// Render produces the protocol response for the component from an Echo
// handler.
func Render(c echo.Context, component string, props inertia.Props) error {
	return Get(c).Render(c.Response(), component, props)
}
