package catalog

import (
	"net/http"

	"github.com/de-tools/csr-atlas/pkg/adapters"
	"github.com/de-tools/csr-atlas/pkg/handlers/render"
	"github.com/de-tools/csr-atlas/pkg/services/catalog"
)

func ListFrameworks(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, http.StatusOK, catalog.Frameworks())
}

func ListKPICategories(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, http.StatusOK, adapters.MapCategoriesToApi(catalog.KPICategories()))
}
