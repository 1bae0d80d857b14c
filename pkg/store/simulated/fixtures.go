package simulated

import "github.com/de-tools/csr-atlas/pkg/models/domain"

func FixtureReports() []domain.Report {
	var kpis domain.KPITree
	_ = kpis.Put(domain.KPIPath{
		Category:    "Environment",
		Subcategory: "Energy & Climate Change",
		Name:        "GHG Emissions",
	}, domain.KPI{Value: "1000000", Unit: "metric tons CO2e", Methodology: "GHG Protocol"})
	_ = kpis.Put(domain.KPIPath{
		Category:    "Environment",
		Subcategory: "Energy & Climate Change",
		Name:        "Energy Consumption",
	}, domain.KPI{Value: "500000", Unit: "MWh", Methodology: "GRI 302"})

	return []domain.Report{
		{
			ID:             "1",
			Title:          "Annual Sustainability Report 2023",
			Type:           domain.ReportTypeCSR,
			Frameworks:     []string{"GRI", "SASB"},
			Description:    "Our annual report on sustainability initiatives and progress.",
			KPIs:           kpis,
			Analysis:       "We have made significant progress in reducing our environmental impact...",
			Status:         domain.ReportStatusSubmitted,
			SubmissionDate: "2024-01-15",
			Version:        1,
			Documents:      map[string][]byte{},
		},
	}
}

func FixtureProjects() []domain.Project {
	return []domain.Project{
		{ID: "1", Name: "Renewable Energy Initiative", Description: "Implementing solar panels across our facilities", Status: domain.ProjectStatusInProgress},
		{ID: "2", Name: "Waste Reduction Program", Description: "Reducing waste production by 30% over the next year", Status: domain.ProjectStatusPlanned},
		{ID: "3", Name: "Community Outreach", Description: "Engaging with local communities to understand their needs", Status: domain.ProjectStatusCompleted},
	}
}

func FixturePartners() []domain.Partner {
	return []domain.Partner{
		{ID: 1, Name: "Local School District", Type: "Education", Projects: 2, TotalImpact: "Improved literacy rates by 15%"},
		{ID: 2, Name: "Green Earth NGO", Type: "Environment", Projects: 1, TotalImpact: "Planted 10,000 trees, offsetting 500 tons of CO2"},
	}
}
