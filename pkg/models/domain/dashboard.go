package domain

type DashboardSummary struct {
	TotalReports     int
	SubmittedReports int
	TotalProjects    int
	ProjectsByStatus map[ProjectStatus]int
	PendingOps       int
}
