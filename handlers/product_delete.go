package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"margincalc/services"
	"margincalc/templates"
)

// formConfirmer answers the delete prompt from the request's confirm
// parameter, which the dialog's confirm button sets.
type formConfirmer struct {
	r *http.Request
}

func (c formConfirmer) Confirm(string) bool {
	return c.r.FormValue("confirm") == "true"
}

// HandleProductDeleteDialog renders the confirmation dialog for a product.
func HandleProductDeleteDialog(catalog *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id, ok := productID(e)
		if !ok {
			return ErrorToast(e, http.StatusBadRequest, "ID de produto inválido")
		}

		p, found := catalog.Get(id)
		if !found {
			return ErrorToast(e, http.StatusNotFound, "Produto não encontrado")
		}

		data := templates.DeleteDialogData{Product: p, Prompt: services.DeletePrompt}
		return templates.DeleteDialog(data).Render(e.Request.Context(), e.Response)
	}
}

// HandleProductDelete removes a product once the request confirms it. A
// request without confirm=true is a decline and leaves the catalog alone.
func HandleProductDelete(catalog *services.Catalog) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id, ok := productID(e)
		if !ok {
			return ErrorToast(e, http.StatusBadRequest, "ID de produto inválido")
		}

		removed, err := catalog.Remove(id, formConfirmer{r: e.Request})
		if errors.Is(err, services.ErrProductNotFound) {
			return ErrorToast(e, http.StatusNotFound, "Produto não encontrado")
		}
		if err != nil {
			log.Printf("product_delete: failed to delete product %d: %v", id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Algo deu errado. Tente novamente.")
		}

		if removed {
			log.Printf("product_delete: deleted product %d", id)
			SetToast(e, ToastSuccess, "Produto excluído com sucesso")
		} else {
			SetToast(e, ToastInfo, "Exclusão cancelada")
		}
		return redirect(e, "/products")
	}
}
