package wizard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/de-tools/csr-atlas/pkg/models/api"
	"github.com/de-tools/csr-atlas/pkg/services/async"
	"github.com/de-tools/csr-atlas/pkg/services/reports"
	"github.com/de-tools/csr-atlas/pkg/services/state"
	"github.com/de-tools/csr-atlas/pkg/services/wizard"
	"github.com/de-tools/csr-atlas/pkg/store/simulated"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	router  *chi.Mux
	reports *reports.Service
}

func setupFixture(t *testing.T) *fixture {
	store := state.NewStore(state.Empty())
	ctrl := async.NewController(store)
	t.Cleanup(func() {
		_ = ctrl.Shutdown(context.Background())
	})
	svc := reports.NewService(store, ctrl, simulated.NewGateway(simulated.WithLatency(0)))
	h := NewHandler(wizard.NewManager(svc), svc)

	r := chi.NewRouter()
	r.Post("/wizard", h.Create)
	r.Route("/wizard/{id}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Patch("/", h.Patch)
		r.Delete("/", h.Discard)
		r.Post("/next", h.Next)
		r.Post("/previous", h.Previous)
		r.Post("/frameworks/toggle", h.ToggleFramework)
		r.Put("/kpis", h.SetKPI)
		r.Post("/submit", h.Submit)
		r.Post("/save", h.Save)
		r.Post("/restore", h.Restore)
		r.Get("/review", h.Review)
	})
	return &fixture{router: r, reports: svc}
}

func (f *fixture) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}

func (f *fixture) create(t *testing.T) api.Session {
	rec := f.do(t, http.MethodPost, "/wizard", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	return decode[api.Session](t, rec)
}

func TestWizard_Navigation(t *testing.T) {
	f := setupFixture(t)
	s := f.create(t)
	assert.Equal(t, 1, s.Step)
	assert.Equal(t, "details", s.StepName)

	rec := f.do(t, http.MethodPost, "/wizard/"+s.ID+"/previous", "")
	assert.Equal(t, 1, decode[api.Session](t, rec).Step)

	for i := 0; i < 6; i++ {
		rec = f.do(t, http.MethodPost, "/wizard/"+s.ID+"/next", "")
	}
	got := decode[api.Session](t, rec)
	assert.Equal(t, 5, got.Step)
	assert.Equal(t, "review", got.StepName)

	rec = f.do(t, http.MethodPost, "/wizard/missing/next", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWizard_Edit(t *testing.T) {
	f := setupFixture(t)
	s := f.create(t)
	base := "/wizard/" + s.ID

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
	}{
		{"patch title", http.MethodPatch, "", `{"title":"FY24"}`, http.StatusOK},
		{"patch type", http.MethodPatch, "", `{"type":"ESG","version":2}`, http.StatusOK},
		{"patch bad type", http.MethodPatch, "", `{"type":"Other"}`, http.StatusBadRequest},
		{"patch unknown field", http.MethodPatch, "", `{"colour":"red"}`, http.StatusBadRequest},
		{"toggle", http.MethodPost, "/frameworks/toggle", `{"framework":"EU Taxonomy"}`, http.StatusOK},
		{"toggle empty", http.MethodPost, "/frameworks/toggle", `{"framework":""}`, http.StatusBadRequest},
		{"kpi value", http.MethodPut, "/kpis", `{"category":"ENVIRONMENT","subcategory":"Resource Management","field":"value","value":"40"}`, http.StatusOK},
		{"kpi unit", http.MethodPut, "/kpis", `{"category":"ENVIRONMENT","subcategory":"Resource Management","field":"unit","value":"%"}`, http.StatusOK},
		{"kpi bad field", http.MethodPut, "/kpis", `{"category":"ENVIRONMENT","subcategory":"Resource Management","field":"weight","value":"1"}`, http.StatusBadRequest},
		{"kpi empty category", http.MethodPut, "/kpis", `{"subcategory":"Board","field":"value","value":"1"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, tt.method, base+tt.path, tt.body)
			assert.Equal(t, tt.expectedStatus, rec.Code, rec.Body.String())
		})
	}

	rec := f.do(t, http.MethodGet, base, "")
	got := decode[api.Session](t, rec)
	assert.Equal(t, "FY24", got.Draft.Title)
	assert.Equal(t, "ESG", got.Draft.Type)
	assert.Equal(t, 2, got.Draft.Version)
	assert.Equal(t, []string{"EU Taxonomy"}, got.Draft.Frameworks)
	require.Len(t, got.Draft.KPIs, 1)
	kpi := got.Draft.KPIs[0].Subcategories[0].Metrics[0]
	assert.Equal(t, api.KPI{Name: "Resource Management", Value: "40", Unit: "%"}, kpi)

	rec = f.do(t, http.MethodGet, base+"/review", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "FY24", decode[api.Review](t, rec).Title)
}

func TestWizard_SubmitAndSave(t *testing.T) {
	f := setupFixture(t)
	s := f.create(t)
	base := "/wizard/" + s.ID

	f.do(t, http.MethodPatch, base, `{"title":"Draft one"}`)

	rec := f.do(t, http.MethodPost, base+"/restore", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodPost, base+"/save?wait=true", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	saved := decode[api.Session](t, rec)
	assert.NotNil(t, saved.SavedAt)
	assert.NotEmpty(t, saved.SaveOpID)
	assert.Empty(t, f.reports.Reports())

	f.do(t, http.MethodPatch, base, `{"title":"Scratch"}`)
	rec = f.do(t, http.MethodPost, base+"/restore", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Draft one", decode[api.Session](t, rec).Draft.Title)

	rec = f.do(t, http.MethodPost, base+"/submit?wait=true", "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	report := decode[api.Report](t, rec)
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "submitted", report.Status)
	assert.Len(t, f.reports.Reports(), 1)

	rec = f.do(t, http.MethodPost, base+"/submit", "")
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "addReport", decode[api.Accepted](t, rec).Operation.Kind)

	rec = f.do(t, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = f.do(t, http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
