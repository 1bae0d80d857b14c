package wizard

import (
	"testing"

	"github.com/de-tools/csr-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func populatedDraft() domain.Draft {
	d := domain.NewDraft()
	d.Title = "Annual"
	d.Type = domain.ReportTypeCSR
	d.Frameworks = []string{"EU Taxonomy"}
	d.Description = "desc"
	d.Analysis = "analysis"
	_ = d.KPIs.Set(domain.KPIPath{Category: "c", Subcategory: "s", Name: "s"}, domain.KPIFieldValue, "1")
	return d
}

func TestFieldPatch_LeavesOtherFieldsUnchanged(t *testing.T) {
	tests := []struct {
		field  Field
		value  string
		expect func(d *domain.Draft)
	}{
		{FieldTitle, "New title", func(d *domain.Draft) { d.Title = "New title" }},
		{FieldType, "ESG", func(d *domain.Draft) { d.Type = domain.ReportTypeESG }},
		{FieldDescription, "other", func(d *domain.Draft) { d.Description = "other" }},
		{FieldAnalysis, "deeper", func(d *domain.Draft) { d.Analysis = "deeper" }},
		{FieldVersion, "3", func(d *domain.Draft) { d.Version = 3 }},
	}

	for _, tt := range tests {
		t.Run(string(tt.field), func(t *testing.T) {
			before := populatedDraft()
			patch, err := FieldPatch(tt.field, tt.value)
			require.NoError(t, err)

			after, err := patch.Apply(before)
			require.NoError(t, err)

			expected := populatedDraft()
			tt.expect(&expected)
			assert.Equal(t, expected, after)
			assert.Equal(t, populatedDraft(), before)
		})
	}
}

func TestFieldPatch_Errors(t *testing.T) {
	_, err := FieldPatch("colour", "red")
	assert.ErrorIs(t, err, ErrUnknownField)

	_, err = FieldPatch(FieldVersion, "two")
	assert.ErrorIs(t, err, ErrInvalidVersion)

	patch, err := FieldPatch(FieldType, "Integrated")
	require.NoError(t, err)
	d := populatedDraft()
	after, err := patch.Apply(d)
	assert.ErrorIs(t, err, domain.ErrInvalidReportType)
	assert.Equal(t, d, after)
}

func TestToggleFramework(t *testing.T) {
	original := []string{"GRI", "SASB", "CDP"}

	once := ToggleFramework(original, "SASB")
	assert.Equal(t, []string{"GRI", "CDP"}, once)

	twice := ToggleFramework(once, "SASB")
	assert.ElementsMatch(t, original, twice)

	added := ToggleFramework(original, "EU Taxonomy")
	assert.Equal(t, []string{"GRI", "SASB", "CDP", "EU Taxonomy"}, added)
	assert.ElementsMatch(t, original, ToggleFramework(added, "EU Taxonomy"))

	assert.Equal(t, []string{"GRI", "SASB", "CDP"}, original)
}

func TestKPIWrite_Apply(t *testing.T) {
	d := domain.NewDraft()

	d, err := KPIWrite{Category: "ENVIRONMENT", Subcategory: "Board", Field: domain.KPIFieldUnit, Value: "seats"}.Apply(d)
	require.NoError(t, err)
	d, err = KPIWrite{Category: "ENVIRONMENT", Subcategory: "Board", Field: domain.KPIFieldValue, Value: "7"}.Apply(d)
	require.NoError(t, err)

	kpi, ok := d.KPIs.Lookup("ENVIRONMENT", "Board")
	require.True(t, ok)
	assert.Equal(t, "7", kpi.Value)
	assert.Equal(t, "seats", kpi.Unit)

	d, err = KPIWrite{Category: "ENVIRONMENT", Subcategory: "Board", Name: "Independence", Field: domain.KPIFieldValue, Value: "80"}.Apply(d)
	require.NoError(t, err)
	assert.Equal(t, 2, d.KPIs.Len())

	_, err = KPIWrite{Category: "", Subcategory: "Board", Field: domain.KPIFieldValue}.Apply(d)
	assert.ErrorIs(t, err, domain.ErrInvalidKPIKey)
	_, err = KPIWrite{Category: "c", Subcategory: "s", Field: "weight"}.Apply(d)
	assert.ErrorIs(t, err, domain.ErrInvalidKPIField)
}
