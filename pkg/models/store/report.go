package store

import "time"

// KPIEntry is one flattened leaf of a KPI tree. Entries are stored in tree
// order so the tree can be rebuilt with the same ordering.
type KPIEntry struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Name        string `json:"name"`
	Value       string `json:"value"`
	Unit        string `json:"unit"`
	Methodology string `json:"methodology"`
}

type Report struct {
	ID             string
	Title          string
	Type           string
	Frameworks     []string
	Description    string
	KPIs           []KPIEntry
	Analysis       string
	Status         string
	SubmissionDate string
	Version        int
	Documents      map[string][]byte
}

// Draft is a saved wizard snapshot keyed by the session that produced it.
type Draft struct {
	SessionID   string
	Title       string
	Type        string
	Frameworks  []string
	Description string
	KPIs        []KPIEntry
	Analysis    string
	Version     int
	SavedAt     time.Time
}
