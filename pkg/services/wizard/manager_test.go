package wizard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/de-tools/csr-atlas/pkg/models/domain"
	"github.com/de-tools/csr-atlas/pkg/services/async"
	"github.com/de-tools/csr-atlas/pkg/services/reports"
	"github.com/de-tools/csr-atlas/pkg/services/state"
	"github.com/de-tools/csr-atlas/pkg/store/simulated"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

type fixture struct {
	reports *reports.Service
	manager *Manager
}

func setupFixture(t *testing.T) *fixture {
	return setupFixtureWith(t, simulated.NewGateway(simulated.WithLatency(0)))
}

func setupFixtureWith(t *testing.T, gateway reports.Gateway) *fixture {
	store := state.NewStore(state.Empty())
	ctrl := async.NewController(store)
	t.Cleanup(func() {
		_ = ctrl.Shutdown(context.Background())
	})

	svc := reports.NewService(store, ctrl, gateway)
	return &fixture{
		reports: svc,
		manager: NewManager(svc, WithClock(func() time.Time { return fixedNow })),
	}
}

func TestManager_Navigation(t *testing.T) {
	f := setupFixture(t)
	s := f.manager.Create(context.Background())
	assert.Equal(t, StepDetails, s.Step)
	assert.Equal(t, 1, s.Draft.Version)

	for i := 0; i < 10; i++ {
		s, _ = f.manager.Next(s.ID)
	}
	assert.Equal(t, StepReview, s.Step)

	s, err := f.manager.Previous(s.ID)
	require.NoError(t, err)
	assert.Equal(t, StepAnalysis, s.Step)

	_, err = f.manager.Next("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManager_Mutations(t *testing.T) {
	f := setupFixture(t)
	s := f.manager.Create(context.Background())

	s, err := f.manager.SetField(s.ID, FieldTitle, "Sustainability 2024")
	require.NoError(t, err)
	s, err = f.manager.SetField(s.ID, FieldType, "ESG")
	require.NoError(t, err)
	s, err = f.manager.ToggleFramework(s.ID, "EU Taxonomy")
	require.NoError(t, err)
	s, err = f.manager.ToggleFramework(s.ID, "Global Reporting Initiative (GRI)")
	require.NoError(t, err)
	s, err = f.manager.SetKPI(s.ID, KPIWrite{Category: "GOVERNANCE", Subcategory: "Board", Field: domain.KPIFieldValue, Value: "9"})
	require.NoError(t, err)

	assert.Equal(t, "Sustainability 2024", s.Draft.Title)
	assert.Equal(t, domain.ReportTypeESG, s.Draft.Type)
	assert.Equal(t, []string{"EU Taxonomy", "Global Reporting Initiative (GRI)"}, s.Draft.Frameworks)

	review, err := f.manager.Review(s.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Global Reporting Initiative (GRI)", "EU Taxonomy"}, review.Frameworks)
	kpi, ok := review.KPIs.Lookup("GOVERNANCE", "Board")
	require.True(t, ok)
	assert.Equal(t, "9", kpi.Value)

	_, err = f.manager.ToggleFramework(s.ID, "")
	assert.ErrorIs(t, err, ErrEmptyFramework)
	_, err = f.manager.SetField(s.ID, FieldType, "Integrated")
	assert.ErrorIs(t, err, domain.ErrInvalidReportType)

	got, err := f.manager.Get(s.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReportTypeESG, got.Draft.Type)
}

func TestManager_Submit(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	s := f.manager.Create(ctx)
	_, err := f.manager.SetField(s.ID, FieldTitle, "Submitted report")
	require.NoError(t, err)

	future, err := f.manager.Submit(ctx, s.ID)
	require.NoError(t, err)
	created, err := future.Wait(ctx)
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Submitted report", created.Title)
	assert.Equal(t, domain.ReportStatusSubmitted, created.Status)
	assert.Equal(t, "2024-03-01", created.SubmissionDate)
	assert.Len(t, f.reports.Reports(), 1)

	got, err := f.manager.Get(s.ID)
	require.NoError(t, err)
	assert.Equal(t, future.ID(), got.SubmitOpID)
}

func TestManager_SaveProgressAndRestore(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	s := f.manager.Create(ctx)

	_, err := f.manager.Restore(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNothingSaved)

	_, err = f.manager.SetField(s.ID, FieldAnalysis, "checkpoint")
	require.NoError(t, err)
	future, err := f.manager.SaveProgress(ctx, s.ID)
	require.NoError(t, err)
	_, err = future.Wait(ctx)
	require.NoError(t, err)

	got, err := f.manager.Get(s.ID)
	require.NoError(t, err)
	require.NotNil(t, got.SavedAt)
	assert.Equal(t, future.ID(), got.SaveOpID)
	assert.Empty(t, f.reports.Reports())

	_, err = f.manager.SetField(s.ID, FieldAnalysis, "lost edit")
	require.NoError(t, err)
	restored, err := f.manager.Restore(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "checkpoint", restored.Draft.Analysis)

	require.NoError(t, f.manager.Discard(ctx, s.ID))
	_, ok := f.reports.SavedDraft(s.ID)
	assert.False(t, ok)
	_, err = f.manager.Get(s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, f.manager.Discard(ctx, s.ID), ErrSessionNotFound)
}

// heldSaveGateway holds SaveDraft until release is closed. When honourCtx is
// false the write completes even if the operation is cancelled.
type heldSaveGateway struct {
	*simulated.Gateway
	honourCtx bool
	started   chan struct{}
	release   chan struct{}
}

func newHeldSaveGateway(honourCtx bool) *heldSaveGateway {
	return &heldSaveGateway{
		Gateway:   simulated.NewGateway(simulated.WithLatency(0)),
		honourCtx: honourCtx,
		started:   make(chan struct{}, 1),
		release:   make(chan struct{}),
	}
}

func (g *heldSaveGateway) SaveDraft(ctx context.Context, _ string, d domain.Draft) (domain.Draft, error) {
	g.started <- struct{}{}
	if !g.honourCtx {
		<-g.release
		return d.Clone(), nil
	}
	select {
	case <-g.release:
		return d.Clone(), nil
	case <-ctx.Done():
		return domain.Draft{}, ctx.Err()
	}
}

func TestManager_DiscardWhileSaving(t *testing.T) {
	tests := []struct {
		name      string
		honourCtx bool
	}{
		{name: "save cancelled", honourCtx: true},
		{name: "save completes anyway", honourCtx: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := newHeldSaveGateway(tt.honourCtx)
			f := setupFixtureWith(t, gw)
			ctx := context.Background()
			s := f.manager.Create(ctx)

			future, err := f.manager.SaveProgress(ctx, s.ID)
			require.NoError(t, err)
			<-gw.started

			discarded := make(chan error, 1)
			go func() {
				discarded <- f.manager.Discard(ctx, s.ID)
			}()
			if !tt.honourCtx {
				close(gw.release)
			}
			require.NoError(t, <-discarded)
			if tt.honourCtx {
				close(gw.release)
			}

			_, err = future.Wait(ctx)
			if tt.honourCtx {
				assert.ErrorIs(t, err, context.Canceled)
			}

			_, ok := f.reports.SavedDraft(s.ID)
			assert.False(t, ok, "saved draft must not outlive the session")
			_, err = f.manager.Get(s.ID)
			assert.ErrorIs(t, err, ErrSessionNotFound)
			_, err = f.manager.SaveProgress(ctx, s.ID)
			assert.ErrorIs(t, err, ErrSessionNotFound)
		})
	}
}

type persistedDraftGateway struct {
	*simulated.Gateway
	draft   domain.Draft
	savedAt time.Time
}

func (g persistedDraftGateway) LoadDraft(context.Context, string) (domain.Draft, time.Time, error) {
	return g.draft.Clone(), g.savedAt, nil
}

func TestManager_RestoreFromBackend(t *testing.T) {
	persisted := domain.NewDraft()
	persisted.Title = "persisted title"
	persisted.Frameworks = []string{"EU Taxonomy"}
	f := setupFixtureWith(t, persistedDraftGateway{
		Gateway: simulated.NewGateway(simulated.WithLatency(0)),
		draft:   persisted,
		savedAt: fixedNow,
	})
	ctx := context.Background()
	s := f.manager.Create(ctx)

	restored, err := f.manager.Restore(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "persisted title", restored.Draft.Title)
	assert.Equal(t, []string{"EU Taxonomy"}, restored.Draft.Frameworks)
	require.NotNil(t, restored.SavedAt)
	assert.True(t, fixedNow.Equal(*restored.SavedAt))

	_, err = f.manager.Restore(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

type failingDeleteGateway struct {
	*simulated.Gateway
}

func (failingDeleteGateway) DeleteDraft(context.Context, string) error {
	return errors.New("disk full")
}

func TestManager_DiscardKeepsSessionOnBackendError(t *testing.T) {
	f := setupFixtureWith(t, failingDeleteGateway{simulated.NewGateway(simulated.WithLatency(0))})
	ctx := context.Background()
	s := f.manager.Create(ctx)
	_, err := f.manager.SetField(s.ID, FieldTitle, "keep me")
	require.NoError(t, err)

	future, err := f.manager.SaveProgress(ctx, s.ID)
	require.NoError(t, err)
	_, err = future.Wait(ctx)
	require.NoError(t, err)

	err = f.manager.Discard(ctx, s.ID)
	assert.ErrorContains(t, err, "disk full")

	got, err := f.manager.Get(s.ID)
	require.NoError(t, err)
	assert.Equal(t, "keep me", got.Draft.Title)
	_, ok := f.reports.SavedDraft(s.ID)
	assert.True(t, ok)

	_, err = f.manager.SaveProgress(ctx, s.ID)
	assert.NoError(t, err)
}
