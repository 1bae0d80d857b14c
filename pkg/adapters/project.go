package adapters

import (
	"github.com/de-tools/csr-atlas/pkg/models/api"
	"github.com/de-tools/csr-atlas/pkg/models/domain"
	"github.com/de-tools/csr-atlas/pkg/models/store"
)

func MapProjectDomainToApi(p domain.Project) api.Project {
	return api.Project{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      string(p.Status),
	}
}

func MapProjectsDomainToApi(projects []domain.Project) []api.Project {
	out := make([]api.Project, 0, len(projects))
	for _, p := range projects {
		out = append(out, MapProjectDomainToApi(p))
	}
	return out
}

func MapProjectApiToDomain(p api.Project) (domain.Project, error) {
	status, err := domain.ParseProjectStatus(p.Status)
	if err != nil {
		return domain.Project{}, err
	}
	return domain.Project{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      status,
	}, nil
}

func MapProjectDomainToStore(p domain.Project) store.Project {
	return store.Project{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      string(p.Status),
	}
}

func MapProjectStoreToDomain(p store.Project) domain.Project {
	return domain.Project{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      domain.ProjectStatus(p.Status),
	}
}
