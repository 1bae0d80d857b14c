package state

import (
	"time"

	"github.com/de-tools/csr-atlas/pkg/models/domain"
)

const (
	SliceReports  = "reports"
	SliceProjects = "projects"
	SliceDrafts   = "drafts"
)

type SavedDraft struct {
	Draft   domain.Draft
	SavedAt time.Time
}

// State is the whole application state tree. Values handed out by the Store
// are snapshots and must be treated as read-only.
type State struct {
	Reports    []domain.Report
	Projects   []domain.Project
	Drafts     map[string]SavedDraft
	Operations map[string]domain.Operation
}

func Empty() State {
	return State{
		Reports:    []domain.Report{},
		Projects:   []domain.Project{},
		Drafts:     map[string]SavedDraft{},
		Operations: map[string]domain.Operation{},
	}
}

// Loading reports whether any operation targeting slice is still pending.
func (s State) Loading(slice string) bool {
	for _, op := range s.Operations {
		if op.Phase == domain.OperationPending && op.Kind.Slice() == slice {
			return true
		}
	}
	return false
}

// LastError returns the message of the most recently finished rejected
// operation of slice, or "" if there is none.
func (s State) LastError(slice string) string {
	var (
		msg    string
		latest time.Time
	)
	for _, op := range s.Operations {
		if op.Phase != domain.OperationRejected || op.Kind.Slice() != slice || op.FinishedAt == nil {
			continue
		}
		if op.FinishedAt.After(latest) || msg == "" {
			msg = op.Error
			latest = *op.FinishedAt
		}
	}
	return msg
}

func (s State) Report(id string) (domain.Report, bool) {
	for _, r := range s.Reports {
		if r.ID == id {
			return r, true
		}
	}
	return domain.Report{}, false
}

func (s State) Project(id string) (domain.Project, bool) {
	for _, p := range s.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Project{}, false
}

func (s State) Summary() domain.DashboardSummary {
	sum := domain.DashboardSummary{
		TotalReports:     len(s.Reports),
		TotalProjects:    len(s.Projects),
		ProjectsByStatus: map[domain.ProjectStatus]int{},
	}
	for _, r := range s.Reports {
		if r.Status == domain.ReportStatusSubmitted {
			sum.SubmittedReports++
		}
	}
	for _, p := range s.Projects {
		sum.ProjectsByStatus[p.Status]++
	}
	for _, op := range s.Operations {
		if op.Phase == domain.OperationPending {
			sum.PendingOps++
		}
	}
	return sum
}
