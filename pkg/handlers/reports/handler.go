package reports

import (
	"context"
	"errors"
	"net/http"

	"github.com/de-tools/csr-atlas/pkg/adapters"
	"github.com/de-tools/csr-atlas/pkg/handlers/render"
	"github.com/de-tools/csr-atlas/pkg/models/api"
	"github.com/de-tools/csr-atlas/pkg/models/domain"
	"github.com/de-tools/csr-atlas/pkg/services/async"
	"github.com/de-tools/csr-atlas/pkg/services/reports"
	"github.com/de-tools/csr-atlas/pkg/services/state"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Service is the part of reports.Service the handler serves.
type Service interface {
	FetchReports(ctx context.Context) (*async.Future[[]domain.Report], error)
	AddReport(ctx context.Context, report domain.Report) (*async.Future[domain.Report], error)
	UpdateReport(ctx context.Context, report domain.Report) (*async.Future[domain.Report], error)
	FetchProjects(ctx context.Context) (*async.Future[[]domain.Project], error)
	AddProject(ctx context.Context, project domain.Project) (*async.Future[domain.Project], error)
	UpdateProject(ctx context.Context, project domain.Project) (*async.Future[domain.Project], error)
	CancelOperation(ctx context.Context, id string) error

	Reports() []domain.Report
	Report(id string) (domain.Report, error)
	Projects() []domain.Project
	Operation(id string) (domain.Operation, error)
	Summary() domain.DashboardSummary
	Status(slice string) (loading bool, lastError string)
}

var statuses = []render.StatusMapping{
	{Err: reports.ErrReportNotFound, Status: http.StatusNotFound},
	{Err: reports.ErrProjectNotFound, Status: http.StatusNotFound},
	{Err: reports.ErrOperationNotFound, Status: http.StatusNotFound},
	{Err: reports.ErrMissingID, Status: http.StatusBadRequest},
	{Err: domain.ErrInvalidReportType, Status: http.StatusBadRequest},
	{Err: domain.ErrInvalidReportStatus, Status: http.StatusBadRequest},
	{Err: domain.ErrInvalidProjectStatus, Status: http.StatusBadRequest},
	{Err: domain.ErrInvalidKPIKey, Status: http.StatusBadRequest},
	{Err: async.ErrOperationNotRunning, Status: http.StatusConflict},
	{Err: async.ErrControllerClosed, Status: http.StatusServiceUnavailable},
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	render.Error(w, r, render.StatusFor(err, statuses...), err)
}

// ListReports returns the reports slice. With ?refresh=true it fetches from
// the backend first and waits for the result.
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.URL.Query().Get("refresh") == "true" {
		future, err := h.svc.FetchReports(ctx)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		if _, err := future.Wait(ctx); err != nil {
			render.Error(w, r, http.StatusBadGateway, err)
			return
		}
	}

	loading, lastError := h.svc.Status(state.SliceReports)
	render.JSON(w, r, http.StatusOK, api.ReportList{
		Reports: adapters.MapReportsDomainToApi(h.svc.Reports()),
		Status:  api.SliceStatus{Loading: loading, LastError: lastError},
	})
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Report(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render.JSON(w, r, http.StatusOK, adapters.MapReportDomainToApi(report))
}

func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var body api.Report
	if err := render.Decode(r, &body); err != nil {
		h.fail(w, r, err)
		return
	}
	report, err := adapters.MapReportApiToDomain(body)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	future, err := h.svc.AddReport(r.Context(), report)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	settle(h, w, r, future, http.StatusCreated, adapters.MapReportDomainToApi)
}

func (h *Handler) UpdateReport(w http.ResponseWriter, r *http.Request) {
	var body api.Report
	if err := render.Decode(r, &body); err != nil {
		h.fail(w, r, err)
		return
	}
	body.ID = chi.URLParam(r, "id")
	report, err := adapters.MapReportApiToDomain(body)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	future, err := h.svc.UpdateReport(r.Context(), report)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	settle(h, w, r, future, http.StatusOK, adapters.MapReportDomainToApi)
}

// ListProjects mirrors ListReports for the projects slice.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.URL.Query().Get("refresh") == "true" {
		future, err := h.svc.FetchProjects(ctx)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		if _, err := future.Wait(ctx); err != nil {
			render.Error(w, r, http.StatusBadGateway, err)
			return
		}
	}

	loading, lastError := h.svc.Status(state.SliceProjects)
	render.JSON(w, r, http.StatusOK, api.ProjectList{
		Projects: adapters.MapProjectsDomainToApi(h.svc.Projects()),
		Status:   api.SliceStatus{Loading: loading, LastError: lastError},
	})
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var body api.Project
	if err := render.Decode(r, &body); err != nil {
		h.fail(w, r, err)
		return
	}
	project, err := adapters.MapProjectApiToDomain(body)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	future, err := h.svc.AddProject(r.Context(), project)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	settle(h, w, r, future, http.StatusCreated, adapters.MapProjectDomainToApi)
}

func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var body api.Project
	if err := render.Decode(r, &body); err != nil {
		h.fail(w, r, err)
		return
	}
	body.ID = chi.URLParam(r, "id")
	project, err := adapters.MapProjectApiToDomain(body)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	future, err := h.svc.UpdateProject(r.Context(), project)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	settle(h, w, r, future, http.StatusOK, adapters.MapProjectDomainToApi)
}

func (h *Handler) GetOperation(w http.ResponseWriter, r *http.Request) {
	op, err := h.svc.Operation(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render.JSON(w, r, http.StatusOK, adapters.MapOperationDomainToApi(op))
}

func (h *Handler) CancelOperation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.CancelOperation(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	zerolog.Ctx(r.Context()).Info().Str("operation_id", id).Msg("operation cancelled")
	h.GetOperation(w, r)
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, http.StatusOK, adapters.MapDashboardDomainToApi(h.svc.Summary()))
}

// settle answers a started operation: 202 with the operation record, or with
// ?wait=true the mapped result once it settles.
func settle[T, A any](h *Handler, w http.ResponseWriter, r *http.Request, future *async.Future[T], status int, mapFn func(T) A) {
	if !render.Wait(r) {
		op, err := h.svc.Operation(future.ID())
		if err != nil {
			h.fail(w, r, err)
			return
		}
		render.JSON(w, r, http.StatusAccepted, api.Accepted{Operation: adapters.MapOperationDomainToApi(op)})
		return
	}

	v, err := future.Wait(r.Context())
	if errors.Is(err, context.Canceled) && r.Context().Err() != nil {
		return
	}
	if err != nil {
		render.Error(w, r, http.StatusBadGateway, err)
		return
	}
	render.JSON(w, r, status, mapFn(v))
}
