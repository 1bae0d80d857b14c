package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidKPIKey   = errors.New("invalid kpi key")
	ErrInvalidKPIField = errors.New("invalid kpi field")
)

type KPIField string

const (
	KPIFieldValue       KPIField = "value"
	KPIFieldUnit        KPIField = "unit"
	KPIFieldMethodology KPIField = "methodology"
)

func ParseKPIField(s string) (KPIField, error) {
	switch f := KPIField(s); f {
	case KPIFieldValue, KPIFieldUnit, KPIFieldMethodology:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidKPIField, s)
	}
}

type KPI struct {
	Name        string
	Value       string
	Unit        string
	Methodology string
}

type KPISubcategory struct {
	Name    string
	Metrics []KPI
}

type KPICategory struct {
	Name          string
	Subcategories []KPISubcategory
}

// KPIPath addresses a single KPI inside a KPITree.
type KPIPath struct {
	Category    string
	Subcategory string
	Name        string
}

func (p KPIPath) validate() error {
	switch {
	case p.Category == "":
		return fmt.Errorf("%w: empty category", ErrInvalidKPIKey)
	case p.Subcategory == "":
		return fmt.Errorf("%w: empty subcategory", ErrInvalidKPIKey)
	case p.Name == "":
		return fmt.Errorf("%w: empty kpi name", ErrInvalidKPIKey)
	}
	return nil
}

// KPITree is a category -> subcategory -> KPI mapping that keeps insertion order.
// The zero value is an empty tree.
type KPITree struct {
	Categories []KPICategory
}

func (t KPITree) Clone() KPITree {
	if t.Categories == nil {
		return KPITree{}
	}
	out := KPITree{Categories: make([]KPICategory, len(t.Categories))}
	for i, c := range t.Categories {
		subs := make([]KPISubcategory, len(c.Subcategories))
		for j, s := range c.Subcategories {
			subs[j] = KPISubcategory{Name: s.Name, Metrics: append([]KPI(nil), s.Metrics...)}
		}
		out.Categories[i] = KPICategory{Name: c.Name, Subcategories: subs}
	}
	return out
}

func (t KPITree) Len() int {
	n := 0
	for _, c := range t.Categories {
		for _, s := range c.Subcategories {
			n += len(s.Metrics)
		}
	}
	return n
}

func (t KPITree) Get(path KPIPath) (KPI, bool) {
	for _, c := range t.Categories {
		if c.Name != path.Category {
			continue
		}
		for _, s := range c.Subcategories {
			if s.Name != path.Subcategory {
				continue
			}
			for _, k := range s.Metrics {
				if k.Name == path.Name {
					return k, true
				}
			}
		}
	}
	return KPI{}, false
}

// Lookup returns the KPI named after its subcategory, which is the one the
// wizard writes when no explicit KPI name is given.
func (t KPITree) Lookup(category, subcategory string) (KPI, bool) {
	return t.Get(KPIPath{Category: category, Subcategory: subcategory, Name: subcategory})
}

// Put stores the whole KPI at path, creating intermediate levels on first write.
func (t *KPITree) Put(path KPIPath, kpi KPI) error {
	if err := path.validate(); err != nil {
		return err
	}
	kpi.Name = path.Name
	*t.slot(path) = kpi
	return nil
}

// Set writes one field of the KPI at path, leaving its other fields untouched.
func (t *KPITree) Set(path KPIPath, field KPIField, value string) error {
	if err := path.validate(); err != nil {
		return err
	}
	if _, err := ParseKPIField(string(field)); err != nil {
		return err
	}

	k := t.slot(path)
	switch field {
	case KPIFieldValue:
		k.Value = value
	case KPIFieldUnit:
		k.Unit = value
	case KPIFieldMethodology:
		k.Methodology = value
	}
	return nil
}

func (t *KPITree) slot(path KPIPath) *KPI {
	ci := -1
	for i := range t.Categories {
		if t.Categories[i].Name == path.Category {
			ci = i
			break
		}
	}
	if ci < 0 {
		t.Categories = append(t.Categories, KPICategory{Name: path.Category})
		ci = len(t.Categories) - 1
	}
	cat := &t.Categories[ci]

	si := -1
	for i := range cat.Subcategories {
		if cat.Subcategories[i].Name == path.Subcategory {
			si = i
			break
		}
	}
	if si < 0 {
		cat.Subcategories = append(cat.Subcategories, KPISubcategory{Name: path.Subcategory})
		si = len(cat.Subcategories) - 1
	}
	sub := &cat.Subcategories[si]

	for i := range sub.Metrics {
		if sub.Metrics[i].Name == path.Name {
			return &sub.Metrics[i]
		}
	}
	sub.Metrics = append(sub.Metrics, KPI{Name: path.Name})
	return &sub.Metrics[len(sub.Metrics)-1]
}
