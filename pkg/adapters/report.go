package adapters

import (
	"maps"
	"slices"

	"github.com/de-tools/csr-atlas/pkg/models/api"
	"github.com/de-tools/csr-atlas/pkg/models/domain"
	"github.com/de-tools/csr-atlas/pkg/models/store"
)

func MapReportDomainToApi(r domain.Report) api.Report {
	return api.Report{
		ID:             r.ID,
		Title:          r.Title,
		Type:           string(r.Type),
		Frameworks:     nonNil(r.Frameworks),
		Description:    r.Description,
		KPIs:           MapKPITreeDomainToApi(r.KPIs),
		Analysis:       r.Analysis,
		Status:         string(r.Status),
		SubmissionDate: r.SubmissionDate,
		Version:        r.Version,
		Documents:      maps.Clone(r.Documents),
	}
}

func MapReportsDomainToApi(reports []domain.Report) []api.Report {
	out := make([]api.Report, 0, len(reports))
	for _, r := range reports {
		out = append(out, MapReportDomainToApi(r))
	}
	return out
}

func MapReportApiToDomain(r api.Report) (domain.Report, error) {
	reportType, err := domain.ParseReportType(r.Type)
	if err != nil {
		return domain.Report{}, err
	}
	status, err := domain.ParseReportStatus(r.Status)
	if err != nil {
		return domain.Report{}, err
	}
	kpis, err := MapKPITreeApiToDomain(r.KPIs)
	if err != nil {
		return domain.Report{}, err
	}

	return domain.Report{
		ID:             r.ID,
		Title:          r.Title,
		Type:           reportType,
		Frameworks:     slices.Clone(r.Frameworks),
		Description:    r.Description,
		KPIs:           kpis,
		Analysis:       r.Analysis,
		Status:         status,
		SubmissionDate: r.SubmissionDate,
		Version:        r.Version,
		Documents:      maps.Clone(r.Documents),
	}, nil
}

func MapReportDomainToStore(r domain.Report) store.Report {
	return store.Report{
		ID:             r.ID,
		Title:          r.Title,
		Type:           string(r.Type),
		Frameworks:     nonNil(r.Frameworks),
		Description:    r.Description,
		KPIs:           MapKPITreeDomainToStore(r.KPIs),
		Analysis:       r.Analysis,
		Status:         string(r.Status),
		SubmissionDate: r.SubmissionDate,
		Version:        r.Version,
		Documents:      maps.Clone(r.Documents),
	}
}

func MapReportStoreToDomain(r store.Report) domain.Report {
	return domain.Report{
		ID:             r.ID,
		Title:          r.Title,
		Type:           domain.ReportType(r.Type),
		Frameworks:     slices.Clone(r.Frameworks),
		Description:    r.Description,
		KPIs:           MapKPIEntriesStoreToDomain(r.KPIs),
		Analysis:       r.Analysis,
		Status:         domain.ReportStatus(r.Status),
		SubmissionDate: r.SubmissionDate,
		Version:        r.Version,
		Documents:      maps.Clone(r.Documents),
	}
}

func MapDraftDomainToApi(d domain.Draft) api.Draft {
	return api.Draft{
		Title:       d.Title,
		Type:        string(d.Type),
		Frameworks:  nonNil(d.Frameworks),
		Description: d.Description,
		KPIs:        MapKPITreeDomainToApi(d.KPIs),
		Analysis:    d.Analysis,
		Version:     d.Version,
	}
}

func MapDraftDomainToStore(sessionID string, d domain.Draft) store.Draft {
	return store.Draft{
		SessionID:   sessionID,
		Title:       d.Title,
		Type:        string(d.Type),
		Frameworks:  nonNil(d.Frameworks),
		Description: d.Description,
		KPIs:        MapKPITreeDomainToStore(d.KPIs),
		Analysis:    d.Analysis,
		Version:     d.Version,
	}
}

func MapDraftStoreToDomain(d store.Draft) domain.Draft {
	return domain.Draft{
		Title:       d.Title,
		Type:        domain.ReportType(d.Type),
		Frameworks:  slices.Clone(d.Frameworks),
		Description: d.Description,
		KPIs:        MapKPIEntriesStoreToDomain(d.KPIs),
		Analysis:    d.Analysis,
		Version:     d.Version,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}
