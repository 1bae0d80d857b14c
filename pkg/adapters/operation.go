package adapters

import (
	"github.com/de-tools/csr-atlas/pkg/models/api"
	"github.com/de-tools/csr-atlas/pkg/models/domain"
)

func MapOperationDomainToApi(op domain.Operation) api.Operation {
	return api.Operation{
		ID:         op.ID,
		Kind:       string(op.Kind),
		Phase:      string(op.Phase),
		Error:      op.Error,
		StartedAt:  op.StartedAt,
		FinishedAt: op.FinishedAt,
	}
}

func MapDashboardDomainToApi(s domain.DashboardSummary) api.DashboardSummary {
	byStatus := make(map[string]int, len(s.ProjectsByStatus))
	for status, n := range s.ProjectsByStatus {
		byStatus[string(status)] = n
	}
	return api.DashboardSummary{
		TotalReports:      s.TotalReports,
		SubmittedReports:  s.SubmittedReports,
		TotalProjects:     s.TotalProjects,
		ProjectsByStatus:  byStatus,
		PendingOperations: s.PendingOps,
	}
}
