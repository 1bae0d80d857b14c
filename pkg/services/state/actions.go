package state

import (
	"time"

	"github.com/de-tools/csr-atlas/pkg/models/domain"
)

// Action is a discrete state transition applied by Reduce.
type Action interface {
	Type() string
}

type OperationStarted struct {
	ID   string
	Kind domain.OperationKind
	At   time.Time
}

type OperationRejected struct {
	ID    string
	Error string
	At    time.Time
}

type ReportsFetched struct {
	OperationID string
	Reports     []domain.Report
	At          time.Time
}

type ReportAdded struct {
	OperationID string
	Report      domain.Report
	At          time.Time
}

type ReportUpdated struct {
	OperationID string
	Report      domain.Report
	At          time.Time
}

type ProgressSaved struct {
	OperationID string
	SessionID   string
	Draft       domain.Draft
	At          time.Time
}

// DraftLoaded caches a snapshot read back from the backend.
type DraftLoaded struct {
	SessionID string
	Draft     domain.Draft
	SavedAt   time.Time
}

type DraftDiscarded struct {
	SessionID string
}

type ProjectsFetched struct {
	OperationID string
	Projects    []domain.Project
	At          time.Time
}

type ProjectAdded struct {
	OperationID string
	Project     domain.Project
	At          time.Time
}

type ProjectUpdated struct {
	OperationID string
	Project     domain.Project
	At          time.Time
}

func (OperationStarted) Type() string  { return "operation/started" }
func (OperationRejected) Type() string { return "operation/rejected" }
func (ReportsFetched) Type() string    { return "reports/fetchReports/fulfilled" }
func (ReportAdded) Type() string       { return "reports/addReport/fulfilled" }
func (ReportUpdated) Type() string     { return "reports/updateReport/fulfilled" }
func (ProgressSaved) Type() string     { return "reports/saveProgress/fulfilled" }
func (DraftLoaded) Type() string       { return "reports/draftLoaded" }
func (DraftDiscarded) Type() string    { return "reports/draftDiscarded" }
func (ProjectsFetched) Type() string   { return "projects/fetchProjects/fulfilled" }
func (ProjectAdded) Type() string      { return "projects/addProject/fulfilled" }
func (ProjectUpdated) Type() string    { return "projects/updateProject/fulfilled" }
