package state

import (
	"maps"
	"time"

	"github.com/de-tools/csr-atlas/pkg/models/domain"
)

// Reduce returns the state that results from applying action to s.
// It never mutates s; untouched slices are shared with the result.
func Reduce(s State, action Action) State {
	switch a := action.(type) {
	case OperationStarted:
		s.Operations = withOperation(s.Operations, domain.Operation{
			ID:        a.ID,
			Kind:      a.Kind,
			Phase:     domain.OperationPending,
			StartedAt: a.At,
		})

	case OperationRejected:
		s.Operations = finish(s.Operations, a.ID, domain.OperationRejected, a.Error, a.At)

	case ReportsFetched:
		reports := make([]domain.Report, len(a.Reports))
		for i, r := range a.Reports {
			reports[i] = r.Clone()
		}
		s.Reports = reports
		s.Operations = finish(s.Operations, a.OperationID, domain.OperationFulfilled, "", a.At)

	case ReportAdded:
		reports := make([]domain.Report, len(s.Reports), len(s.Reports)+1)
		copy(reports, s.Reports)
		s.Reports = append(reports, a.Report.Clone())
		s.Operations = finish(s.Operations, a.OperationID, domain.OperationFulfilled, "", a.At)

	case ReportUpdated:
		for i, r := range s.Reports {
			if r.ID == a.Report.ID {
				reports := append([]domain.Report(nil), s.Reports...)
				reports[i] = a.Report.Clone()
				s.Reports = reports
				break
			}
		}
		s.Operations = finish(s.Operations, a.OperationID, domain.OperationFulfilled, "", a.At)

	case ProgressSaved:
		drafts := maps.Clone(s.Drafts)
		if drafts == nil {
			drafts = map[string]SavedDraft{}
		}
		drafts[a.SessionID] = SavedDraft{Draft: a.Draft.Clone(), SavedAt: a.At}
		s.Drafts = drafts
		s.Operations = finish(s.Operations, a.OperationID, domain.OperationFulfilled, "", a.At)

	case DraftLoaded:
		drafts := maps.Clone(s.Drafts)
		if drafts == nil {
			drafts = map[string]SavedDraft{}
		}
		drafts[a.SessionID] = SavedDraft{Draft: a.Draft.Clone(), SavedAt: a.SavedAt}
		s.Drafts = drafts

	case DraftDiscarded:
		if _, ok := s.Drafts[a.SessionID]; ok {
			drafts := maps.Clone(s.Drafts)
			delete(drafts, a.SessionID)
			s.Drafts = drafts
		}

	case ProjectsFetched:
		s.Projects = append([]domain.Project{}, a.Projects...)
		s.Operations = finish(s.Operations, a.OperationID, domain.OperationFulfilled, "", a.At)

	case ProjectAdded:
		projects := make([]domain.Project, len(s.Projects), len(s.Projects)+1)
		copy(projects, s.Projects)
		s.Projects = append(projects, a.Project)
		s.Operations = finish(s.Operations, a.OperationID, domain.OperationFulfilled, "", a.At)

	case ProjectUpdated:
		for i, p := range s.Projects {
			if p.ID == a.Project.ID {
				projects := append([]domain.Project(nil), s.Projects...)
				projects[i] = a.Project
				s.Projects = projects
				break
			}
		}
		s.Operations = finish(s.Operations, a.OperationID, domain.OperationFulfilled, "", a.At)
	}

	return s
}

func withOperation(ops map[string]domain.Operation, op domain.Operation) map[string]domain.Operation {
	out := maps.Clone(ops)
	if out == nil {
		out = map[string]domain.Operation{}
	}
	out[op.ID] = op
	return out
}

// finish moves a tracked operation to its terminal phase. Actions dispatched
// outside an operation carry an empty ID and leave the table alone.
func finish(
	ops map[string]domain.Operation,
	id string,
	phase domain.OperationPhase,
	errMsg string,
	at time.Time,
) map[string]domain.Operation {
	op, ok := ops[id]
	if id == "" || !ok {
		return ops
	}
	op.Phase = phase
	op.Error = errMsg
	finished := at
	op.FinishedAt = &finished
	return withOperation(ops, op)
}
