package catalog

var frameworks = []string{
	"Global Reporting Initiative (GRI)",
	"Sustainability Accounting Standards Board (SASB)",
	"Task Force on Climate-related Financial Disclosures (TCFD)",
	"United Nations Global Compact (UNGC)",
	"International Integrated Reporting Council (IIRC)",
	"Business Responsibility and Sustainability Reporting (BRSR)",
	"Companies Act 2013",
	"Securities and Exchange Board of India (SEBI) Listing Obligations and Disclosure Requirements (LODR) Regulations",
	"Securities and Exchange Commission (SEC) Climate Change Disclosure Rule (Proposed)",
	"State-level regulations (e.g., California's Transparency in Supply Chains Act)",
	"Corporate Sustainability Reporting Directive (CSRD)",
	"Non-Financial Reporting Directive (NFRD)",
	"EU Taxonomy",
	"Sustainable Finance Disclosure Regulation (SFDR)",
	"Carbon Disclosure Project (CDP)",
	"Dow Jones Sustainability Index (DJSI)",
}

type Subcategory struct {
	Name        string
	Description string
}

type Category struct {
	Name          string
	Description   string
	Subcategories []Subcategory
}

var kpiCategories = []Category{
	{
		Name:        "COMMUNITY",
		Description: "Covers the company's commitment and effectiveness within the local, national and global community in which it does business.",
		Subcategories: []Subcategory{
			{"Community Dev & Philanthropy", "Covers the relationship between a company and the communities within which it is embedded."},
			{"Human Rights & Supply Chain", "Measures a company's commitment to respecting fundamental human rights conventions."},
			{"Product", "Covers the responsibility of a company for the development, design, and management of its products and services."},
		},
	},
	{
		Name:        "EMPLOYEES",
		Description: "Includes policies, programs, and performance in diversity, labor relations, compensation, benefits, and employee training, health and safety.",
		Subcategories: []Subcategory{
			{"Compensation & Benefits", "Covers a company's capacity to increase its workforce loyalty and productivity through rewarding, fair, and equal compensation and financial benefits."},
			{"Diversity & Labor Rights", "Covers workplace policies and practices covering fair and non-discriminatory treatment of employees."},
			{"Training, Safety & Health", "Measures a company's effectiveness in providing a healthy and safe workplace."},
		},
	},
	{
		Name:        "ENVIRONMENT",
		Description: "Covers a company's interactions with the environment at large, including use of natural resources, and impact on the Earth's ecosystems.",
		Subcategories: []Subcategory{
			{"Energy & Climate Change", "Measures a company's effectiveness in addressing climate change through appropriate policies and strategies."},
			{"Environment Policy & Reporting", "Includes a company's policies and intention to reduce the environmental impact."},
			{"Resource Management", "Covers how efficiently resources are used in manufacturing and delivering products and services."},
		},
	},
	{
		Name:        "GOVERNANCE",
		Description: "Covers disclosure of policies and procedures, board independence and diversity, executive compensation, and attention to stakeholder concerns.",
		Subcategories: []Subcategory{
			{"Board", "Covers a company's effectiveness in following best practices in corporate governance principles related to board membership."},
			{"Leadership Ethics", "Measures how a company manages its relationships with its various stakeholders."},
			{"Transparency & Reporting", "Rates factors including whether corporate policies and practices are aligned with sustainability goals."},
		},
	},
}

// Frameworks returns the canonical list of reporting frameworks in display order.
func Frameworks() []string {
	return append([]string(nil), frameworks...)
}

func KPICategories() []Category {
	out := make([]Category, len(kpiCategories))
	for i, c := range kpiCategories {
		out[i] = Category{
			Name:          c.Name,
			Description:   c.Description,
			Subcategories: append([]Subcategory(nil), c.Subcategories...),
		}
	}
	return out
}

// OrderFrameworks returns selected in canonical order. Names missing from the
// catalogue keep their relative order and go last.
func OrderFrameworks(selected []string) []string {
	chosen := make(map[string]bool, len(selected))
	for _, f := range selected {
		chosen[f] = true
	}

	out := make([]string, 0, len(selected))
	for _, f := range frameworks {
		if chosen[f] {
			out = append(out, f)
			delete(chosen, f)
		}
	}
	for _, f := range selected {
		if chosen[f] {
			out = append(out, f)
			delete(chosen, f)
		}
	}
	return out
}
