// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod returns a handler meant to be registered via
// [chi.Mux.MethodNotAllowed].
//
// Chi answers 405 when a path matches a route but the method does not.
// This handler downgrades that to 404, so probing a known path with the
// wrong method does not confirm the route exists. If the method turns out
// to be registered after all, the request is forwarded to the router's
// normal pipeline.
//
// Only exact pattern matches are considered; parameterised segments are
// not expanded during the lookup.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		requestedURL := r.URL.Path
		requestedHTTPMethod := r.Method

		allRoutes := router.Routes()
		var foundRoute chi.Route
		for _, route := range allRoutes {
			if route.Pattern == requestedURL {
				foundRoute = route
				break
			}
		}

		if _, ok := foundRoute.Handlers[requestedHTTPMethod]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		router.ServeHTTP(w, r)
	}
}
