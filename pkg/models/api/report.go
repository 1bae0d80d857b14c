package api

import "time"

type KPI struct {
	Name        string `json:"name" yaml:"name"`
	Value       string `json:"value" yaml:"value"`
	Unit        string `json:"unit" yaml:"unit"`
	Methodology string `json:"methodology,omitempty" yaml:"methodology,omitempty"`
}

type KPISubcategory struct {
	Name    string `json:"name" yaml:"name"`
	Metrics []KPI  `json:"metrics" yaml:"metrics"`
}

type KPICategory struct {
	Name          string           `json:"name" yaml:"name"`
	Subcategories []KPISubcategory `json:"subcategories" yaml:"subcategories"`
}

type Report struct {
	ID             string            `json:"id" yaml:"id"`
	Title          string            `json:"title" yaml:"title"`
	Type           string            `json:"type" yaml:"type"`
	Frameworks     []string          `json:"frameworks" yaml:"frameworks"`
	Description    string            `json:"description" yaml:"description"`
	KPIs           []KPICategory     `json:"kpis" yaml:"kpis"`
	Analysis       string            `json:"analysis" yaml:"analysis"`
	Status         string            `json:"status" yaml:"status"`
	SubmissionDate string            `json:"submission_date" yaml:"submission_date"`
	Version        int               `json:"version" yaml:"version"`
	Documents      map[string][]byte `json:"documents,omitempty" yaml:"documents,omitempty"`
}

type Project struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Status      string `json:"status" yaml:"status"`
}

type Operation struct {
	ID         string     `json:"id"`
	Kind       string     `json:"kind"`
	Phase      string     `json:"phase"`
	Error      string     `json:"error,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// SliceStatus is the derived loading/error view of one state slice.
type SliceStatus struct {
	Loading   bool   `json:"loading"`
	LastError string `json:"last_error,omitempty"`
}

type ReportList struct {
	Reports []Report    `json:"reports"`
	Status  SliceStatus `json:"status"`
}

type ProjectList struct {
	Projects []Project   `json:"projects"`
	Status   SliceStatus `json:"status"`
}

// Accepted is returned for operations that were started but not awaited.
type Accepted struct {
	Operation Operation `json:"operation"`
}
