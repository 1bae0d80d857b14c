package domain

import "time"

type OperationKind string

const (
	OperationFetchReports  OperationKind = "fetchReports"
	OperationAddReport     OperationKind = "addReport"
	OperationUpdateReport  OperationKind = "updateReport"
	OperationSaveProgress  OperationKind = "saveProgress"
	OperationFetchProjects OperationKind = "fetchProjects"
	OperationAddProject    OperationKind = "addProject"
	OperationUpdateProject OperationKind = "updateProject"
)

// Slice returns the name of the state slice an operation of this kind writes to.
func (k OperationKind) Slice() string {
	switch k {
	case OperationFetchProjects, OperationAddProject, OperationUpdateProject:
		return "projects"
	default:
		return "reports"
	}
}

type OperationPhase string

const (
	OperationPending   OperationPhase = "pending"
	OperationFulfilled OperationPhase = "fulfilled"
	OperationRejected  OperationPhase = "rejected"
)

type Operation struct {
	ID         string
	Kind       OperationKind
	Phase      OperationPhase
	Error      string
	StartedAt  time.Time
	FinishedAt *time.Time
}

func (o Operation) Done() bool {
	return o.Phase == OperationFulfilled || o.Phase == OperationRejected
}
