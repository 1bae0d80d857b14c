package partners

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/de-tools/csr-atlas/pkg/models/domain"
)

var ErrUnknownSortKey = errors.New("unknown sort key")

type SortKey string

const (
	SortByName        SortKey = "name"
	SortByType        SortKey = "type"
	SortByProjects    SortKey = "projects"
	SortByTotalImpact SortKey = "totalImpact"
)

func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case SortByName, SortByType, SortByProjects, SortByTotalImpact:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSortKey, s)
	}
}

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// SortConfig is the active column and direction. The zero value means unsorted.
type SortConfig struct {
	Key       SortKey
	Direction Direction
}

// Toggle selects key. Reselecting the current ascending key flips it to
// descending; anything else starts ascending.
func (c SortConfig) Toggle(key SortKey) SortConfig {
	if c.Key == key && c.Direction == Ascending {
		return SortConfig{Key: key, Direction: Descending}
	}
	return SortConfig{Key: key, Direction: Ascending}
}

func compareBy(key SortKey) func(a, b domain.Partner) int {
	switch key {
	case SortByName:
		return func(a, b domain.Partner) int { return cmp.Compare(a.Name, b.Name) }
	case SortByType:
		return func(a, b domain.Partner) int { return cmp.Compare(a.Type, b.Type) }
	case SortByProjects:
		return func(a, b domain.Partner) int { return cmp.Compare(a.Projects, b.Projects) }
	case SortByTotalImpact:
		return func(a, b domain.Partner) int { return cmp.Compare(a.TotalImpact, b.TotalImpact) }
	}
	return nil
}

// Sort returns a sorted copy of partners. An empty key leaves the order as is.
func Sort(partners []domain.Partner, cfg SortConfig) ([]domain.Partner, error) {
	out := slices.Clone(partners)
	if cfg.Key == "" {
		return out, nil
	}
	compare := compareBy(cfg.Key)
	if compare == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSortKey, cfg.Key)
	}

	slices.SortStableFunc(out, func(a, b domain.Partner) int {
		if cfg.Direction == Descending {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return out, nil
}

// Filter keeps partners whose name or type contains term, ignoring case.
func Filter(partners []domain.Partner, term string) []domain.Partner {
	needle := strings.ToLower(term)
	out := make([]domain.Partner, 0, len(partners))
	for _, p := range partners {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Type), needle) {
			out = append(out, p)
		}
	}
	return out
}

// View sorts and then filters, the way the partnerships table renders.
func View(partners []domain.Partner, cfg SortConfig, term string) ([]domain.Partner, error) {
	sorted, err := Sort(partners, cfg)
	if err != nil {
		return nil, err
	}
	return Filter(sorted, term), nil
}
