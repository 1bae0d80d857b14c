package domain

type Partner struct {
	ID          int
	Name        string
	Type        string // Education, Environment, ...
	Projects    int    // active joint projects
	TotalImpact string
}
