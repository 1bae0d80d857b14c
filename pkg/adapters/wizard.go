package adapters

import (
	"github.com/de-tools/csr-atlas/pkg/models/api"
	"github.com/de-tools/csr-atlas/pkg/models/domain"
	"github.com/de-tools/csr-atlas/pkg/services/wizard"
)

func MapSessionToApi(s wizard.Session) api.Session {
	return api.Session{
		ID:         s.ID,
		Step:       int(s.Step),
		StepName:   s.Step.String(),
		Draft:      MapDraftDomainToApi(s.Draft),
		CreatedAt:  s.CreatedAt,
		SavedAt:    s.SavedAt,
		SubmitOpID: s.SubmitOpID,
		SaveOpID:   s.SaveOpID,
	}
}

func MapReviewToApi(r wizard.Review) api.Review {
	return api.Review{
		Title:      r.Title,
		Type:       string(r.Type),
		Frameworks: nonNil(r.Frameworks),
		Analysis:   r.Analysis,
		KPIs:       MapKPITreeDomainToApi(r.KPIs),
	}
}

func MapDraftPatchApiToWizard(p api.DraftPatch) wizard.Patch {
	patch := wizard.Patch{
		Title:       p.Title,
		Description: p.Description,
		Analysis:    p.Analysis,
		Version:     p.Version,
	}
	if p.Type != nil {
		t := domain.ReportType(*p.Type)
		patch.Type = &t
	}
	return patch
}

func MapKPIWriteApiToWizard(w api.KPIWrite) (wizard.KPIWrite, error) {
	field, err := domain.ParseKPIField(w.Field)
	if err != nil {
		return wizard.KPIWrite{}, err
	}
	return wizard.KPIWrite{
		Category:    w.Category,
		Subcategory: w.Subcategory,
		Name:        w.Name,
		Field:       field,
		Value:       w.Value,
	}, nil
}
