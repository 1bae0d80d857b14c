package simulated

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/csr-atlas/pkg/models/domain"
	"github.com/google/uuid"
)

const DefaultLatency = time.Second

// Gateway answers every call with in-memory fixtures after a fixed delay. It
// keeps no state: created and updated records are echoed back, and a fetch
// always returns the fixture set.
type Gateway struct {
	latency time.Duration
	newID   func() string
}

type Option func(*Gateway)

func WithLatency(d time.Duration) Option {
	return func(g *Gateway) {
		g.latency = d
	}
}

func WithIDGenerator(fn func() string) Option {
	return func(g *Gateway) {
		g.newID = fn
	}
}

func NewGateway(opts ...Option) *Gateway {
	g := &Gateway{
		latency: DefaultLatency,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gateway) ListReports(ctx context.Context) ([]domain.Report, error) {
	if err := g.delay(ctx); err != nil {
		return nil, err
	}
	return FixtureReports(), nil
}

func (g *Gateway) CreateReport(ctx context.Context, report domain.Report) (domain.Report, error) {
	if err := g.delay(ctx); err != nil {
		return domain.Report{}, err
	}
	created := report.Clone()
	created.ID = g.newID()
	return created, nil
}

func (g *Gateway) UpdateReport(ctx context.Context, report domain.Report) (domain.Report, error) {
	if err := g.delay(ctx); err != nil {
		return domain.Report{}, err
	}
	return report.Clone(), nil
}

func (g *Gateway) SaveDraft(ctx context.Context, _ string, draft domain.Draft) (domain.Draft, error) {
	if err := g.delay(ctx); err != nil {
		return domain.Draft{}, err
	}
	return draft.Clone(), nil
}

// LoadDraft never finds anything: the simulated backend keeps no drafts.
func (g *Gateway) LoadDraft(ctx context.Context, sessionID string) (domain.Draft, time.Time, error) {
	if err := g.delay(ctx); err != nil {
		return domain.Draft{}, time.Time{}, err
	}
	return domain.Draft{}, time.Time{}, fmt.Errorf("%w: %s", domain.ErrDraftNotFound, sessionID)
}

func (g *Gateway) DeleteDraft(ctx context.Context, _ string) error {
	return g.delay(ctx)
}

func (g *Gateway) ListProjects(ctx context.Context) ([]domain.Project, error) {
	if err := g.delay(ctx); err != nil {
		return nil, err
	}
	return FixtureProjects(), nil
}

func (g *Gateway) CreateProject(ctx context.Context, project domain.Project) (domain.Project, error) {
	if err := g.delay(ctx); err != nil {
		return domain.Project{}, err
	}
	project.ID = g.newID()
	return project, nil
}

func (g *Gateway) UpdateProject(ctx context.Context, project domain.Project) (domain.Project, error) {
	if err := g.delay(ctx); err != nil {
		return domain.Project{}, err
	}
	return project, nil
}

func (g *Gateway) delay(ctx context.Context) error {
	if g.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(g.latency)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
