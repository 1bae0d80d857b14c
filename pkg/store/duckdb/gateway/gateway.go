package gateway

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/de-tools/csr-atlas/pkg/adapters"
	"github.com/de-tools/csr-atlas/pkg/models/domain"
	"github.com/de-tools/csr-atlas/pkg/store/duckdb"
	"github.com/de-tools/csr-atlas/pkg/store/duckdb/project"
	"github.com/de-tools/csr-atlas/pkg/store/duckdb/report"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Gateway serves the report and project operations from DuckDB.
type Gateway struct {
	db       *sql.DB
	reports  report.Store
	projects project.Store
	newID    func() string
	now      func() time.Time
}

type Option func(*Gateway)

func WithIDGenerator(fn func() string) Option {
	return func(g *Gateway) {
		g.newID = fn
	}
}

func WithClock(now func() time.Time) Option {
	return func(g *Gateway) {
		g.now = now
	}
}

func NewGateway(db *sql.DB, opts ...Option) (*Gateway, error) {
	reports, err := report.NewStore(db)
	if err != nil {
		return nil, err
	}
	projects, err := project.NewStore(db)
	if err != nil {
		return nil, err
	}

	g := &Gateway{
		db:       db,
		reports:  reports,
		projects: projects,
		newID:    uuid.NewString,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Seed inserts the given records in one transaction if both tables are
// empty. It reports whether anything was written.
func (g *Gateway) Seed(ctx context.Context, reports []domain.Report, projects []domain.Project) (bool, error) {
	seeded := false
	err := duckdb.InTransaction(ctx, g.db, func(ctx context.Context) error {
		nr, err := g.reports.Count(ctx)
		if err != nil {
			return err
		}
		np, err := g.projects.Count(ctx)
		if err != nil {
			return err
		}
		if nr > 0 || np > 0 {
			return nil
		}

		for _, r := range reports {
			if err := g.reports.Insert(ctx, adapters.MapReportDomainToStore(r)); err != nil {
				return err
			}
		}
		for _, p := range projects {
			if err := g.projects.Insert(ctx, adapters.MapProjectDomainToStore(p)); err != nil {
				return err
			}
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("seed database: %w", err)
	}

	if seeded {
		zerolog.Ctx(ctx).Info().
			Int("reports", len(reports)).
			Int("projects", len(projects)).
			Msg("seeded empty database")
	}
	return seeded, nil
}

func (g *Gateway) ListReports(ctx context.Context) ([]domain.Report, error) {
	rows, err := g.reports.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Report, 0, len(rows))
	for _, r := range rows {
		out = append(out, adapters.MapReportStoreToDomain(r))
	}
	return out, nil
}

func (g *Gateway) CreateReport(ctx context.Context, r domain.Report) (domain.Report, error) {
	created := r.Clone()
	created.ID = g.newID()
	if err := g.reports.Insert(ctx, adapters.MapReportDomainToStore(created)); err != nil {
		return domain.Report{}, err
	}
	return created, nil
}

func (g *Gateway) UpdateReport(ctx context.Context, r domain.Report) (domain.Report, error) {
	if err := g.reports.Update(ctx, adapters.MapReportDomainToStore(r)); err != nil {
		return domain.Report{}, err
	}
	return r.Clone(), nil
}

func (g *Gateway) SaveDraft(ctx context.Context, sessionID string, d domain.Draft) (domain.Draft, error) {
	row := adapters.MapDraftDomainToStore(sessionID, d)
	row.SavedAt = g.now().UTC()
	if err := g.reports.SaveDraft(ctx, row); err != nil {
		return domain.Draft{}, err
	}
	return d.Clone(), nil
}

func (g *Gateway) LoadDraft(ctx context.Context, sessionID string) (domain.Draft, time.Time, error) {
	row, err := g.reports.GetDraft(ctx, sessionID)
	if err != nil {
		return domain.Draft{}, time.Time{}, err
	}
	if row == nil {
		return domain.Draft{}, time.Time{}, fmt.Errorf("%w: %s", domain.ErrDraftNotFound, sessionID)
	}
	return adapters.MapDraftStoreToDomain(*row), row.SavedAt, nil
}

func (g *Gateway) DeleteDraft(ctx context.Context, sessionID string) error {
	return g.reports.DeleteDraft(ctx, sessionID)
}

func (g *Gateway) ListProjects(ctx context.Context) ([]domain.Project, error) {
	rows, err := g.projects.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Project, 0, len(rows))
	for _, p := range rows {
		out = append(out, adapters.MapProjectStoreToDomain(p))
	}
	return out, nil
}

func (g *Gateway) CreateProject(ctx context.Context, p domain.Project) (domain.Project, error) {
	p.ID = g.newID()
	if err := g.projects.Insert(ctx, adapters.MapProjectDomainToStore(p)); err != nil {
		return domain.Project{}, err
	}
	return p, nil
}

func (g *Gateway) UpdateProject(ctx context.Context, p domain.Project) (domain.Project, error) {
	if err := g.projects.Update(ctx, adapters.MapProjectDomainToStore(p)); err != nil {
		return domain.Project{}, err
	}
	return p, nil
}
