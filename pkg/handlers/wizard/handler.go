package wizard

import (
	"context"
	"net/http"

	"github.com/de-tools/csr-atlas/pkg/adapters"
	"github.com/de-tools/csr-atlas/pkg/handlers/render"
	"github.com/de-tools/csr-atlas/pkg/models/api"
	"github.com/de-tools/csr-atlas/pkg/models/domain"
	"github.com/de-tools/csr-atlas/pkg/services/async"
	"github.com/de-tools/csr-atlas/pkg/services/reports"
	"github.com/de-tools/csr-atlas/pkg/services/wizard"
	"github.com/go-chi/chi/v5"
)

type Manager interface {
	Create(ctx context.Context) wizard.Session
	Get(id string) (wizard.Session, error)
	Next(id string) (wizard.Session, error)
	Previous(id string) (wizard.Session, error)
	Apply(id string, patch wizard.Patch) (wizard.Session, error)
	ToggleFramework(id, framework string) (wizard.Session, error)
	SetKPI(id string, w wizard.KPIWrite) (wizard.Session, error)
	Submit(ctx context.Context, id string) (*async.Future[domain.Report], error)
	SaveProgress(ctx context.Context, id string) (*async.Future[domain.Draft], error)
	Restore(ctx context.Context, id string) (wizard.Session, error)
	Discard(ctx context.Context, id string) error
	Review(id string) (wizard.Review, error)
}

// Operations resolves operation ids returned by submit and save.
type Operations interface {
	Operation(id string) (domain.Operation, error)
}

var statuses = []render.StatusMapping{
	{Err: wizard.ErrSessionNotFound, Status: http.StatusNotFound},
	{Err: wizard.ErrNothingSaved, Status: http.StatusNotFound},
	{Err: wizard.ErrUnknownField, Status: http.StatusBadRequest},
	{Err: wizard.ErrInvalidVersion, Status: http.StatusBadRequest},
	{Err: wizard.ErrEmptyFramework, Status: http.StatusBadRequest},
	{Err: domain.ErrInvalidReportType, Status: http.StatusBadRequest},
	{Err: domain.ErrInvalidKPIKey, Status: http.StatusBadRequest},
	{Err: domain.ErrInvalidKPIField, Status: http.StatusBadRequest},
	{Err: reports.ErrOperationNotFound, Status: http.StatusNotFound},
	{Err: async.ErrControllerClosed, Status: http.StatusServiceUnavailable},
}

type Handler struct {
	manager Manager
	ops     Operations
}

func NewHandler(manager Manager, ops Operations) *Handler {
	return &Handler{
		manager: manager,
		ops:     ops,
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	render.Error(w, r, render.StatusFor(err, statuses...), err)
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request, status int, s wizard.Session, err error) {
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render.JSON(w, r, status, adapters.MapSessionToApi(s))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	h.session(w, r, http.StatusCreated, h.manager.Create(r.Context()), nil)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.manager.Get(chi.URLParam(r, "id"))
	h.session(w, r, http.StatusOK, s, err)
}

func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	s, err := h.manager.Next(chi.URLParam(r, "id"))
	h.session(w, r, http.StatusOK, s, err)
}

func (h *Handler) Previous(w http.ResponseWriter, r *http.Request) {
	s, err := h.manager.Previous(chi.URLParam(r, "id"))
	h.session(w, r, http.StatusOK, s, err)
}

func (h *Handler) Patch(w http.ResponseWriter, r *http.Request) {
	var body api.DraftPatch
	if err := render.Decode(r, &body); err != nil {
		h.fail(w, r, err)
		return
	}
	s, err := h.manager.Apply(chi.URLParam(r, "id"), adapters.MapDraftPatchApiToWizard(body))
	h.session(w, r, http.StatusOK, s, err)
}

func (h *Handler) ToggleFramework(w http.ResponseWriter, r *http.Request) {
	var body api.FrameworkToggle
	if err := render.Decode(r, &body); err != nil {
		h.fail(w, r, err)
		return
	}
	s, err := h.manager.ToggleFramework(chi.URLParam(r, "id"), body.Framework)
	h.session(w, r, http.StatusOK, s, err)
}

func (h *Handler) SetKPI(w http.ResponseWriter, r *http.Request) {
	var body api.KPIWrite
	if err := render.Decode(r, &body); err != nil {
		h.fail(w, r, err)
		return
	}
	write, err := adapters.MapKPIWriteApiToWizard(body)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	s, err := h.manager.SetKPI(chi.URLParam(r, "id"), write)
	h.session(w, r, http.StatusOK, s, err)
}

// Submit creates a report from the draft. Like the report endpoints it
// answers 202 unless ?wait=true.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	future, err := h.manager.Submit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	settle(h, w, r, future, http.StatusCreated, func(rep domain.Report) any {
		return adapters.MapReportDomainToApi(rep)
	})
}

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	future, err := h.manager.SaveProgress(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	settle(h, w, r, future, http.StatusOK, func(domain.Draft) any {
		s, err := h.manager.Get(id)
		if err != nil {
			return render.ErrorBody{Error: err.Error()}
		}
		return adapters.MapSessionToApi(s)
	})
}

func (h *Handler) Restore(w http.ResponseWriter, r *http.Request) {
	s, err := h.manager.Restore(r.Context(), chi.URLParam(r, "id"))
	h.session(w, r, http.StatusOK, s, err)
}

func (h *Handler) Discard(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Discard(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Review(w http.ResponseWriter, r *http.Request) {
	review, err := h.manager.Review(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render.JSON(w, r, http.StatusOK, adapters.MapReviewToApi(review))
}

func settle[T any](h *Handler, w http.ResponseWriter, r *http.Request, future *async.Future[T], status int, mapFn func(T) any) {
	if !render.Wait(r) {
		op, err := h.ops.Operation(future.ID())
		if err != nil {
			h.fail(w, r, err)
			return
		}
		render.JSON(w, r, http.StatusAccepted, api.Accepted{Operation: adapters.MapOperationDomainToApi(op)})
		return
	}

	v, err := future.Wait(r.Context())
	if err != nil {
		render.Error(w, r, http.StatusBadGateway, err)
		return
	}
	render.JSON(w, r, status, mapFn(v))
}
