package reports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/csr-atlas/pkg/metrics"
	"github.com/de-tools/csr-atlas/pkg/models/domain"
	"github.com/de-tools/csr-atlas/pkg/services/async"
	"github.com/de-tools/csr-atlas/pkg/services/state"
	"github.com/rs/zerolog"
)

var (
	ErrReportNotFound    = errors.New("report not found")
	ErrProjectNotFound   = errors.New("project not found")
	ErrOperationNotFound = errors.New("operation not found")
	ErrMissingID         = errors.New("missing identifier")
	ErrMissingSession    = errors.New("missing wizard session id")
)

type ReportGateway interface {
	ListReports(ctx context.Context) ([]domain.Report, error)
	CreateReport(ctx context.Context, report domain.Report) (domain.Report, error)
	UpdateReport(ctx context.Context, report domain.Report) (domain.Report, error)
	SaveDraft(ctx context.Context, sessionID string, draft domain.Draft) (domain.Draft, error)
	// LoadDraft returns domain.ErrDraftNotFound when nothing was saved.
	LoadDraft(ctx context.Context, sessionID string) (domain.Draft, time.Time, error)
	DeleteDraft(ctx context.Context, sessionID string) error
}

type ProjectGateway interface {
	ListProjects(ctx context.Context) ([]domain.Project, error)
	CreateProject(ctx context.Context, project domain.Project) (domain.Project, error)
	UpdateProject(ctx context.Context, project domain.Project) (domain.Project, error)
}

// Gateway is the backend the store operations talk to.
type Gateway interface {
	ReportGateway
	ProjectGateway
}

// Service exposes the report and project operations. Mutations run as
// asynchronous operations whose results land in the shared store.
type Service struct {
	store   *state.Store
	ctrl    *async.Controller
	gateway Gateway
}

func NewService(store *state.Store, ctrl *async.Controller, gateway Gateway) *Service {
	recordSliceSizes(nil, store.State())
	store.Subscribe(recordSliceSizes)
	return &Service{
		store:   store,
		ctrl:    ctrl,
		gateway: gateway,
	}
}

func (s *Service) FetchReports(ctx context.Context) (*async.Future[[]domain.Report], error) {
	return async.Run(ctx, s.ctrl, domain.OperationFetchReports,
		s.gateway.ListReports,
		func(id string, reports []domain.Report, at time.Time) state.Action {
			return state.ReportsFetched{OperationID: id, Reports: reports, At: at}
		},
	)
}

// AddReport creates report; any identifier on the input is discarded in
// favour of the one the backend generates.
func (s *Service) AddReport(ctx context.Context, report domain.Report) (*async.Future[domain.Report], error) {
	body := report.Clone()
	body.ID = ""
	return async.Run(ctx, s.ctrl, domain.OperationAddReport,
		func(ctx context.Context) (domain.Report, error) {
			return s.gateway.CreateReport(ctx, body)
		},
		func(id string, created domain.Report, at time.Time) state.Action {
			return state.ReportAdded{OperationID: id, Report: created, At: at}
		},
	)
}

func (s *Service) UpdateReport(ctx context.Context, report domain.Report) (*async.Future[domain.Report], error) {
	if report.ID == "" {
		return nil, ErrMissingID
	}
	if _, ok := s.store.State().Report(report.ID); !ok {
		return nil, fmt.Errorf("%w: %s", ErrReportNotFound, report.ID)
	}

	body := report.Clone()
	return async.Run(ctx, s.ctrl, domain.OperationUpdateReport,
		func(ctx context.Context) (domain.Report, error) {
			return s.gateway.UpdateReport(ctx, body)
		},
		func(id string, updated domain.Report, at time.Time) state.Action {
			return state.ReportUpdated{OperationID: id, Report: updated, At: at}
		},
	)
}

// SaveProgress stores a snapshot of a wizard draft. The saved draft is kept
// in the drafts slice under the session id; the report collection is not
// touched.
func (s *Service) SaveProgress(ctx context.Context, sessionID string, draft domain.Draft) (*async.Future[domain.Draft], error) {
	if sessionID == "" {
		return nil, ErrMissingSession
	}

	body := draft.Clone()
	return async.Run(ctx, s.ctrl, domain.OperationSaveProgress,
		func(ctx context.Context) (domain.Draft, error) {
			return s.gateway.SaveDraft(ctx, sessionID, body)
		},
		func(id string, saved domain.Draft, at time.Time) state.Action {
			return state.ProgressSaved{OperationID: id, SessionID: sessionID, Draft: saved, At: at}
		},
	)
}

// DiscardDraft drops the saved progress of a session from the backend and
// from state.
func (s *Service) DiscardDraft(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrMissingSession
	}
	if err := s.gateway.DeleteDraft(ctx, sessionID); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	s.store.Dispatch(state.DraftDiscarded{SessionID: sessionID})
	return nil
}

func (s *Service) FetchProjects(ctx context.Context) (*async.Future[[]domain.Project], error) {
	return async.Run(ctx, s.ctrl, domain.OperationFetchProjects,
		s.gateway.ListProjects,
		func(id string, projects []domain.Project, at time.Time) state.Action {
			return state.ProjectsFetched{OperationID: id, Projects: projects, At: at}
		},
	)
}

func (s *Service) AddProject(ctx context.Context, project domain.Project) (*async.Future[domain.Project], error) {
	if _, err := domain.ParseProjectStatus(string(project.Status)); err != nil {
		return nil, err
	}
	project.ID = ""
	return async.Run(ctx, s.ctrl, domain.OperationAddProject,
		func(ctx context.Context) (domain.Project, error) {
			return s.gateway.CreateProject(ctx, project)
		},
		func(id string, created domain.Project, at time.Time) state.Action {
			return state.ProjectAdded{OperationID: id, Project: created, At: at}
		},
	)
}

func (s *Service) UpdateProject(ctx context.Context, project domain.Project) (*async.Future[domain.Project], error) {
	if project.ID == "" {
		return nil, ErrMissingID
	}
	if _, err := domain.ParseProjectStatus(string(project.Status)); err != nil {
		return nil, err
	}
	if _, ok := s.store.State().Project(project.ID); !ok {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, project.ID)
	}

	return async.Run(ctx, s.ctrl, domain.OperationUpdateProject,
		func(ctx context.Context) (domain.Project, error) {
			return s.gateway.UpdateProject(ctx, project)
		},
		func(id string, updated domain.Project, at time.Time) state.Action {
			return state.ProjectUpdated{OperationID: id, Project: updated, At: at}
		},
	)
}

// CancelOperation stops a pending operation; it settles as rejected.
func (s *Service) CancelOperation(ctx context.Context, id string) error {
	if _, ok := s.store.State().Operations[id]; !ok {
		return fmt.Errorf("%w: %s", ErrOperationNotFound, id)
	}
	return s.ctrl.Cancel(ctx, id)
}

func (s *Service) Reports() []domain.Report {
	return s.store.State().Reports
}

func (s *Service) Report(id string) (domain.Report, error) {
	r, ok := s.store.State().Report(id)
	if !ok {
		return domain.Report{}, fmt.Errorf("%w: %s", ErrReportNotFound, id)
	}
	return r, nil
}

func (s *Service) Projects() []domain.Project {
	return s.store.State().Projects
}

func (s *Service) Operation(id string) (domain.Operation, error) {
	op, ok := s.store.State().Operations[id]
	if !ok {
		return domain.Operation{}, fmt.Errorf("%w: %s", ErrOperationNotFound, id)
	}
	return op, nil
}

// LoadDraft returns the saved progress of a session, reading it back from the
// backend when the drafts slice has no entry.
func (s *Service) LoadDraft(ctx context.Context, sessionID string) (state.SavedDraft, error) {
	if sessionID == "" {
		return state.SavedDraft{}, ErrMissingSession
	}
	if saved, ok := s.SavedDraft(sessionID); ok {
		return saved, nil
	}

	draft, savedAt, err := s.gateway.LoadDraft(ctx, sessionID)
	if err != nil {
		return state.SavedDraft{}, fmt.Errorf("load draft: %w", err)
	}
	s.store.Dispatch(state.DraftLoaded{SessionID: sessionID, Draft: draft, SavedAt: savedAt})
	zerolog.Ctx(ctx).Debug().Str("session_id", sessionID).Msg("saved draft loaded from backend")
	return state.SavedDraft{Draft: draft.Clone(), SavedAt: savedAt}, nil
}

func (s *Service) SavedDraft(sessionID string) (state.SavedDraft, bool) {
	d, ok := s.store.State().Drafts[sessionID]
	return d, ok
}

func (s *Service) Summary() domain.DashboardSummary {
	return s.store.State().Summary()
}

// Status reports whether slice has pending operations and the message of its
// latest rejection.
func (s *Service) Status(slice string) (loading bool, lastError string) {
	st := s.store.State()
	return st.Loading(slice), st.LastError(slice)
}

func recordSliceSizes(_ state.Action, next state.State) {
	metrics.RecordStateItems(state.SliceReports, len(next.Reports))
	metrics.RecordStateItems(state.SliceProjects, len(next.Projects))
	metrics.RecordStateItems(state.SliceDrafts, len(next.Drafts))
}
