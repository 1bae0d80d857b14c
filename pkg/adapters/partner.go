package adapters

import (
	"github.com/de-tools/csr-atlas/pkg/models/api"
	"github.com/de-tools/csr-atlas/pkg/models/domain"
	"github.com/de-tools/csr-atlas/pkg/services/catalog"
	"github.com/de-tools/csr-atlas/pkg/services/partners"
)

func MapPartnerDomainToApi(p domain.Partner) api.Partner {
	return api.Partner{
		ID:          p.ID,
		Name:        p.Name,
		Type:        p.Type,
		Projects:    p.Projects,
		TotalImpact: p.TotalImpact,
	}
}

func MapPartnerApiToDomain(p api.Partner) domain.Partner {
	return domain.Partner{
		ID:          p.ID,
		Name:        p.Name,
		Type:        p.Type,
		Projects:    p.Projects,
		TotalImpact: p.TotalImpact,
	}
}

func MapPartnerViewToApi(ps []domain.Partner, cfg partners.SortConfig, filter string) api.PartnerView {
	view := api.PartnerView{
		Partners: make([]api.Partner, 0, len(ps)),
		Sort:     api.SortConfig{Key: string(cfg.Key), Direction: string(cfg.Direction)},
		Filter:   filter,
	}
	for _, p := range ps {
		view.Partners = append(view.Partners, MapPartnerDomainToApi(p))
	}
	return view
}

func MapCategoriesToApi(categories []catalog.Category) []api.Category {
	out := make([]api.Category, 0, len(categories))
	for _, c := range categories {
		subs := make([]api.Subcategory, 0, len(c.Subcategories))
		for _, s := range c.Subcategories {
			subs = append(subs, api.Subcategory{Name: s.Name, Description: s.Description})
		}
		out = append(out, api.Category{Name: c.Name, Description: c.Description, Subcategories: subs})
	}
	return out
}
