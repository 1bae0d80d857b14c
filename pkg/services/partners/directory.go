package partners

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/de-tools/csr-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

var ErrMissingName = errors.New("partner name is required")

// Directory holds the partnerships list and the sort column the user last
// picked.
type Directory struct {
	mu       sync.RWMutex
	partners []domain.Partner
	sort     SortConfig
}

func NewDirectory(partners []domain.Partner) *Directory {
	return &Directory{partners: slices.Clone(partners)}
}

func (d *Directory) List() []domain.Partner {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.partners)
}

func (d *Directory) SortConfig() SortConfig {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.sort
}

// ToggleSort applies SortConfig.Toggle to the directory's current sort.
func (d *Directory) ToggleSort(key SortKey) (SortConfig, error) {
	if _, err := ParseSortKey(string(key)); err != nil {
		return SortConfig{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.sort = d.sort.Toggle(key)
	return d.sort, nil
}

// View renders the list with the current sort and the given filter term.
func (d *Directory) View(term string) ([]domain.Partner, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return View(d.partners, d.sort, term)
}

// Add appends p with the next free identifier.
func (d *Directory) Add(ctx context.Context, p domain.Partner) (domain.Partner, error) {
	if p.Name == "" {
		return domain.Partner{}, ErrMissingName
	}

	d.mu.Lock()
	next := 1
	for _, existing := range d.partners {
		next = max(next, existing.ID+1)
	}
	p.ID = next
	d.partners = append(d.partners, p)
	d.mu.Unlock()

	zerolog.Ctx(ctx).Debug().Int("partner_id", p.ID).Str("name", p.Name).Msg("partner added")
	return p, nil
}
