package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase/core"

	"margincalc/templates"
)

type contextKey string

const NavDataKey contextKey = "navData"

// GetNavData extracts the pre-built NavData from the request context.
func GetNavData(r *http.Request) templates.NavData {
	if val, ok := r.Context().Value(NavDataKey).(templates.NavData); ok {
		return val
	}
	return templates.NavData{}
}

// activeTab maps a request path to its navigation tab.
func activeTab(path string) string {
	if path == "/products" || strings.HasPrefix(path, "/products/") {
		return templates.TabProducts
	}
	return templates.TabCalculator
}

// NavMiddleware stores the tab bar state in the request context so handlers
// and templates can use it.
func NavMiddleware() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		nav := templates.NavData{ActiveTab: activeTab(e.Request.URL.Path)}

		ctx := context.WithValue(e.Request.Context(), NavDataKey, nav)
		e.Request = e.Request.WithContext(ctx)

		return e.Next()
	}
}
