package api

type DashboardSummary struct {
	TotalReports      int            `json:"total_reports"`
	SubmittedReports  int            `json:"submitted_reports"`
	TotalProjects     int            `json:"total_projects"`
	ProjectsByStatus  map[string]int `json:"projects_by_status"`
	PendingOperations int            `json:"pending_operations"`
}

type Subcategory struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Category struct {
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Subcategories []Subcategory `json:"subcategories"`
}
