package api

type Partner struct {
	ID          int    `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Projects    int    `json:"projects" yaml:"projects"`
	TotalImpact string `json:"total_impact" yaml:"total_impact"`
}

type SortConfig struct {
	Key       string `json:"key,omitempty"`
	Direction string `json:"direction,omitempty"`
}

type PartnerView struct {
	Partners []Partner  `json:"partners"`
	Sort     SortConfig `json:"sort"`
	Filter   string     `json:"filter,omitempty"`
}

type SortRequest struct {
	Key string `json:"key"`
}
