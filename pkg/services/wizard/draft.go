package wizard

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/de-tools/csr-atlas/pkg/models/domain"
)

var (
	ErrUnknownField   = errors.New("unknown draft field")
	ErrInvalidVersion = errors.New("invalid version")
)

type Field string

const (
	FieldTitle       Field = "title"
	FieldType        Field = "type"
	FieldDescription Field = "description"
	FieldAnalysis    Field = "analysis"
	FieldVersion     Field = "version"
)

// Patch is a shallow merge onto a draft; nil members are left alone.
type Patch struct {
	Title       *string
	Type        *domain.ReportType
	Description *string
	Analysis    *string
	Version     *int
}

// Apply merges p into d. Either every member is applied or, on error, none.
func (p Patch) Apply(d domain.Draft) (domain.Draft, error) {
	if p.Type != nil {
		if _, err := domain.ParseReportType(string(*p.Type)); err != nil {
			return d, err
		}
	}

	out := d.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Type != nil {
		out.Type = *p.Type
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Analysis != nil {
		out.Analysis = *p.Analysis
	}
	if p.Version != nil {
		out.Version = *p.Version
	}
	return out, nil
}

// FieldPatch builds the patch that sets a single named field from its text form.
func FieldPatch(field Field, value string) (Patch, error) {
	switch field {
	case FieldTitle:
		return Patch{Title: &value}, nil
	case FieldType:
		t := domain.ReportType(value)
		return Patch{Type: &t}, nil
	case FieldDescription:
		return Patch{Description: &value}, nil
	case FieldAnalysis:
		return Patch{Analysis: &value}, nil
	case FieldVersion:
		v, err := strconv.Atoi(value)
		if err != nil {
			return Patch{}, fmt.Errorf("%w: %q", ErrInvalidVersion, value)
		}
		return Patch{Version: &v}, nil
	default:
		return Patch{}, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}

// ToggleFramework adds name to the selection if absent and removes it otherwise.
func ToggleFramework(selected []string, name string) []string {
	out := make([]string, 0, len(selected)+1)
	found := false
	for _, f := range selected {
		if f == name {
			found = true
			continue
		}
		out = append(out, f)
	}
	if !found {
		out = append(out, name)
	}
	return out
}

// KPIWrite is one keystroke in the KPI step.
type KPIWrite struct {
	Category    string
	Subcategory string
	Name        string // defaults to Subcategory
	Field       domain.KPIField
	Value       string
}

func (w KPIWrite) Apply(d domain.Draft) (domain.Draft, error) {
	name := w.Name
	if name == "" {
		name = w.Subcategory
	}
	out := d.Clone()
	err := out.KPIs.Set(domain.KPIPath{
		Category:    w.Category,
		Subcategory: w.Subcategory,
		Name:        name,
	}, w.Field, w.Value)
	if err != nil {
		return d, err
	}
	return out, nil
}
