package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase/core"

	"margincalc/services"
	"margincalc/templates"
)

// fieldMessages maps ProductInput fields to the inline error text.
var fieldMessages = map[string]string{
	"Name":         "Informe o nome do produto",
	"Manufacturer": "Informe o fabricante",
	"Cost":         "Informe um custo válido",
	"Date":         "Informe uma data válida",
	"IPI":          "Informe um IPI válido",
}

func renderProductForm(e *core.RequestEvent, data templates.ProductFormData) error {
	var component templ.Component
	if isHTMX(e) {
		component = templates.ProductFormContent(data)
	} else {
		component = templates.ProductFormPage(data, GetNavData(e.Request))
	}
	return component.Render(e.Request.Context(), e.Response)
}

// productInputFromForm reads an add or edit submission.
func productInputFromForm(e *core.RequestEvent) services.ProductInput {
	return services.ProductInput{
		Name:         e.Request.FormValue("name"),
		Manufacturer: e.Request.FormValue("manufacturer"),
		Cost:         e.Request.FormValue("cost"),
		Date:         e.Request.FormValue("date"),
		HasIPI:       e.Request.FormValue("has_ipi") == "sim",
		IPI:          e.Request.FormValue("ipi"),
	}
}

// productID parses the {id} path value.
func productID(e *core.RequestEvent) (int64, bool) {
	id, err := strconv.ParseInt(e.Request.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

// rejectProduct re-renders the form with inline errors and the alert toast.
func rejectProduct(e *core.RequestEvent, id int64, in services.ProductInput, err error) error {
	data := templates.ProductFormData{ID: id, Input: in, Errors: make(map[string]string)}

	var verr *services.ValidationError
	if !errors.As(err, &verr) {
		log.Printf("product_form: unexpected error: %v", err)
		return ErrorToast(e, http.StatusInternalServerError, "Algo deu errado. Tente novamente.")
	}
	for field := range verr.Fields {
		data.Errors[field] = fieldMessages[field]
	}

	SetToast(e, ToastWarning, verr.Message())
	return renderProductForm(e, data)
}

// HandleProductNew renders the add form with the date defaulting to today.
func HandleProductNew() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := templates.ProductFormData{
			Input:  services.ProductInput{Date: time.Now().Format(services.DateLayout)},
			Errors: make(map[string]string),
		}
		return renderProductForm(e, data)
	}
}

// HandleProductSave adds a product from the posted form.
func HandleProductSave(catalog *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Dados do formulário inválidos")
		}

		in := productInputFromForm(e)
		p, err := catalog.Add(in)
		if err != nil {
			return rejectProduct(e, 0, in, err)
		}

		log.Printf("product_form: added product %d", p.ID)
		SetToast(e, ToastSuccess, "Produto adicionado com sucesso")
		return redirect(e, "/products")
	}
}

// HandleProductEdit renders the edit form pre-filled with the record.
func HandleProductEdit(catalog *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id, ok := productID(e)
		if !ok {
			return ErrorToast(e, http.StatusBadRequest, "ID de produto inválido")
		}

		p, found := catalog.Get(id)
		if !found {
			return ErrorToast(e, http.StatusNotFound, "Produto não encontrado")
		}

		data := templates.ProductFormData{
			ID:     p.ID,
			Input:  services.InputFromProduct(p),
			Errors: make(map[string]string),
		}
		return renderProductForm(e, data)
	}
}

// HandleProductUpdate replaces a product with the posted form.
func HandleProductUpdate(catalog *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id, ok := productID(e)
		if !ok {
			return ErrorToast(e, http.StatusBadRequest, "ID de produto inválido")
		}
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Dados do formulário inválidos")
		}

		in := productInputFromForm(e)
		_, err := catalog.Update(id, in)
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			return ErrorToast(e, http.StatusNotFound, "Produto não encontrado")
		case err != nil:
			return rejectProduct(e, id, in, err)
		}

		log.Printf("product_form: updated product %d", id)
		SetToast(e, ToastSuccess, fmt.Sprintf("Produto %d atualizado com sucesso", id))
		return redirect(e, "/products")
	}
}
