package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/pocketbase/pocketbase/core"

	"margincalc/templates"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
// The nav data that NavMiddleware would add is placed in the context.
func newTestRequestEvent(req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	nav := templates.NavData{ActiveTab: activeTab(req.URL.Path)}
	req = req.WithContext(context.WithValue(req.Context(), NavDataKey, nav))

	e := &core.RequestEvent{}
	e.Request = req
	e.Response = rec
	return e
}
