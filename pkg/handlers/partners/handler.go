package partners

import (
	"context"
	"net/http"

	"github.com/de-tools/csr-atlas/pkg/adapters"
	"github.com/de-tools/csr-atlas/pkg/handlers/render"
	"github.com/de-tools/csr-atlas/pkg/models/api"
	"github.com/de-tools/csr-atlas/pkg/models/domain"
	"github.com/de-tools/csr-atlas/pkg/services/partners"
)

type Directory interface {
	View(term string) ([]domain.Partner, error)
	SortConfig() partners.SortConfig
	ToggleSort(key partners.SortKey) (partners.SortConfig, error)
	Add(ctx context.Context, p domain.Partner) (domain.Partner, error)
}

var statuses = []render.StatusMapping{
	{Err: partners.ErrUnknownSortKey, Status: http.StatusBadRequest},
	{Err: partners.ErrMissingName, Status: http.StatusBadRequest},
}

type Handler struct {
	directory Directory
}

func NewHandler(directory Directory) *Handler {
	return &Handler{directory: directory}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	render.Error(w, r, render.StatusFor(err, statuses...), err)
}

// List renders the directory with its current sort and the ?filter= term.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	h.view(w, r, r.URL.Query().Get("filter"))
}

func (h *Handler) Sort(w http.ResponseWriter, r *http.Request) {
	var body api.SortRequest
	if err := render.Decode(r, &body); err != nil {
		h.fail(w, r, err)
		return
	}
	if _, err := h.directory.ToggleSort(partners.SortKey(body.Key)); err != nil {
		h.fail(w, r, err)
		return
	}
	h.view(w, r, r.URL.Query().Get("filter"))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var body api.Partner
	if err := render.Decode(r, &body); err != nil {
		h.fail(w, r, err)
		return
	}
	added, err := h.directory.Add(r.Context(), adapters.MapPartnerApiToDomain(body))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render.JSON(w, r, http.StatusCreated, adapters.MapPartnerDomainToApi(added))
}

func (h *Handler) view(w http.ResponseWriter, r *http.Request, filter string) {
	list, err := h.directory.View(filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render.JSON(w, r, http.StatusOK, adapters.MapPartnerViewToApi(list, h.directory.SortConfig(), filter))
}
