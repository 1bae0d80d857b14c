package api

import "time"

type Draft struct {
	Title       string        `json:"title"`
	Type        string        `json:"type"`
	Frameworks  []string      `json:"frameworks"`
	Description string        `json:"description"`
	KPIs        []KPICategory `json:"kpis"`
	Analysis    string        `json:"analysis"`
	Version     int           `json:"version"`
}

type Session struct {
	ID         string     `json:"id"`
	Step       int        `json:"step"`
	StepName   string     `json:"step_name"`
	Draft      Draft      `json:"draft"`
	CreatedAt  time.Time  `json:"created_at"`
	SavedAt    *time.Time `json:"saved_at,omitempty"`
	SubmitOpID string     `json:"submit_operation_id,omitempty"`
	SaveOpID   string     `json:"save_operation_id,omitempty"`
}

// DraftPatch is a shallow merge; absent members are left unchanged.
type DraftPatch struct {
	Title       *string `json:"title,omitempty"`
	Type        *string `json:"type,omitempty"`
	Description *string `json:"description,omitempty"`
	Analysis    *string `json:"analysis,omitempty"`
	Version     *int    `json:"version,omitempty"`
}

type FrameworkToggle struct {
	Framework string `json:"framework"`
}

type KPIWrite struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Name        string `json:"name,omitempty"`
	Field       string `json:"field"`
	Value       string `json:"value"`
}

type Review struct {
	Title      string        `json:"title"`
	Type       string        `json:"type"`
	Frameworks []string      `json:"frameworks"`
	Analysis   string        `json:"analysis"`
	KPIs       []KPICategory `json:"kpis"`
}
