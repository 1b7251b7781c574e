package handlers

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase/core"

	"margincalc/services"
	"margincalc/templates"
)

// renderCalculator renders the form partial for HTMX requests and the full
// page otherwise.
func renderCalculator(e *core.RequestEvent, state services.CalculatorState) error {
	state, result := services.Reconcile(state)
	data := templates.CalculatorData{State: state, Result: result}

	var component templ.Component
	if isHTMX(e) {
		component = templates.CalculatorContent(data)
	} else {
		component = templates.CalculatorPage(data, GetNavData(e.Request))
	}
	return component.Render(e.Request.Context(), e.Response)
}

// HandleCalculator renders an empty calculator driven by the margin.
func HandleCalculator() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return renderCalculator(e, services.ParseCalculatorState("", "", "", "", ""))
	}
}

// HandleCalculatorCompute recomputes the calculator from the posted form.
func HandleCalculatorCompute() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Dados do formulário inválidos")
		}

		state := services.ParseCalculatorState(
			e.Request.FormValue("cost"),
			e.Request.FormValue("margin"),
			e.Request.FormValue("sale_price"),
			e.Request.FormValue("driver"),
			e.Request.FormValue("freight"),
		)
		return renderCalculator(e, state)
	}
}
