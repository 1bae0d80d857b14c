package adapters

import (
	"github.com/de-tools/csr-atlas/pkg/models/api"
	"github.com/de-tools/csr-atlas/pkg/models/domain"
	"github.com/de-tools/csr-atlas/pkg/models/store"
)

func MapKPITreeDomainToApi(t domain.KPITree) []api.KPICategory {
	out := make([]api.KPICategory, 0, len(t.Categories))
	for _, c := range t.Categories {
		cat := api.KPICategory{Name: c.Name, Subcategories: make([]api.KPISubcategory, 0, len(c.Subcategories))}
		for _, s := range c.Subcategories {
			sub := api.KPISubcategory{Name: s.Name, Metrics: make([]api.KPI, 0, len(s.Metrics))}
			for _, k := range s.Metrics {
				sub.Metrics = append(sub.Metrics, api.KPI{
					Name:        k.Name,
					Value:       k.Value,
					Unit:        k.Unit,
					Methodology: k.Methodology,
				})
			}
			cat.Subcategories = append(cat.Subcategories, sub)
		}
		out = append(out, cat)
	}
	return out
}

func MapKPITreeApiToDomain(categories []api.KPICategory) (domain.KPITree, error) {
	var tree domain.KPITree
	for _, c := range categories {
		for _, s := range c.Subcategories {
			for _, k := range s.Metrics {
				err := tree.Put(domain.KPIPath{Category: c.Name, Subcategory: s.Name, Name: k.Name}, domain.KPI{
					Value:       k.Value,
					Unit:        k.Unit,
					Methodology: k.Methodology,
				})
				if err != nil {
					return domain.KPITree{}, err
				}
			}
		}
	}
	return tree, nil
}

func MapKPITreeDomainToStore(t domain.KPITree) []store.KPIEntry {
	entries := make([]store.KPIEntry, 0, t.Len())
	for _, c := range t.Categories {
		for _, s := range c.Subcategories {
			for _, k := range s.Metrics {
				entries = append(entries, store.KPIEntry{
					Category:    c.Name,
					Subcategory: s.Name,
					Name:        k.Name,
					Value:       k.Value,
					Unit:        k.Unit,
					Methodology: k.Methodology,
				})
			}
		}
	}
	return entries
}

// MapKPIEntriesStoreToDomain rebuilds a tree; entries with an empty key are skipped.
func MapKPIEntriesStoreToDomain(entries []store.KPIEntry) domain.KPITree {
	var tree domain.KPITree
	for _, e := range entries {
		_ = tree.Put(domain.KPIPath{Category: e.Category, Subcategory: e.Subcategory, Name: e.Name}, domain.KPI{
			Value:       e.Value,
			Unit:        e.Unit,
			Methodology: e.Methodology,
		})
	}
	return tree
}
