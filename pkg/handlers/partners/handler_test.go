package partners

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/de-tools/csr-atlas/pkg/models/api"
	"github.com/de-tools/csr-atlas/pkg/services/partners"
	"github.com/de-tools/csr-atlas/pkg/store/simulated"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter() *chi.Mux {
	h := NewHandler(partners.NewDirectory(simulated.FixturePartners()))
	r := chi.NewRouter()
	r.Get("/partners", h.List)
	r.Post("/partners", h.Create)
	r.Post("/partners/sort", h.Sort)
	return r
}

func do(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func names(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()
	var view api.PartnerView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
	out := make([]string, 0, len(view.Partners))
	for _, p := range view.Partners {
		out = append(out, p.Name)
	}
	return out
}

func TestPartners_SortToggle(t *testing.T) {
	router := setupRouter()

	rec := do(router, http.MethodGet, "/partners", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Local School District", "Green Earth NGO"}, names(t, rec))

	rec = do(router, http.MethodPost, "/partners/sort", `{"key":"name"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Green Earth NGO", "Local School District"}, names(t, rec))

	rec = do(router, http.MethodPost, "/partners/sort", `{"key":"name"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Local School District", "Green Earth NGO"}, names(t, rec))

	rec = do(router, http.MethodPost, "/partners/sort", `{"key":"budget"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPartners_FilterAndCreate(t *testing.T) {
	router := setupRouter()

	rec := do(router, http.MethodGet, "/partners?filter=GREEN", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Green Earth NGO"}, names(t, rec))

	rec = do(router, http.MethodPost, "/partners", `{"name":"Greenway Trust","type":"Environment","projects":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created api.Partner
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, 3, created.ID)

	rec = do(router, http.MethodPost, "/partners", `{"type":"Environment"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(router, http.MethodGet, "/partners?filter=environment", "")
	assert.Equal(t, []string{"Green Earth NGO", "Greenway Trust"}, names(t, rec))
}
