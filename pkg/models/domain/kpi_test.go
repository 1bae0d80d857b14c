package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKPITree_Set(t *testing.T) {
	t.Run("creates path on first write and keeps siblings", func(t *testing.T) {
		var tree KPITree
		path := KPIPath{Category: "ENVIRONMENT", Subcategory: "Energy & Climate Change", Name: "Energy & Climate Change"}

		require.NoError(t, tree.Set(path, KPIFieldUnit, "MWh"))
		require.NoError(t, tree.Set(path, KPIFieldValue, "500000"))

		kpi, ok := tree.Lookup("ENVIRONMENT", "Energy & Climate Change")
		require.True(t, ok)
		assert.Equal(t, "500000", kpi.Value)
		assert.Equal(t, "MWh", kpi.Unit)
		assert.Empty(t, kpi.Methodology)
		assert.Equal(t, 1, tree.Len())
	})

	t.Run("overwrites on later writes", func(t *testing.T) {
		var tree KPITree
		path := KPIPath{Category: "c", Subcategory: "s", Name: "k"}
		require.NoError(t, tree.Set(path, KPIFieldValue, "1"))
		require.NoError(t, tree.Set(path, KPIFieldValue, "2"))

		kpi, ok := tree.Get(path)
		require.True(t, ok)
		assert.Equal(t, "2", kpi.Value)
	})

	t.Run("preserves insertion order", func(t *testing.T) {
		var tree KPITree
		require.NoError(t, tree.Set(KPIPath{"b", "s1", "k"}, KPIFieldValue, "1"))
		require.NoError(t, tree.Set(KPIPath{"a", "s1", "k"}, KPIFieldValue, "1"))
		require.NoError(t, tree.Set(KPIPath{"b", "s0", "k"}, KPIFieldValue, "1"))

		require.Len(t, tree.Categories, 2)
		assert.Equal(t, "b", tree.Categories[0].Name)
		assert.Equal(t, "a", tree.Categories[1].Name)
		assert.Equal(t, "s1", tree.Categories[0].Subcategories[0].Name)
		assert.Equal(t, "s0", tree.Categories[0].Subcategories[1].Name)
	})

	t.Run("invalid keys", func(t *testing.T) {
		var tree KPITree
		assert.ErrorIs(t, tree.Set(KPIPath{"", "s", "k"}, KPIFieldValue, "1"), ErrInvalidKPIKey)
		assert.ErrorIs(t, tree.Set(KPIPath{"c", "", "k"}, KPIFieldValue, "1"), ErrInvalidKPIKey)
		assert.ErrorIs(t, tree.Set(KPIPath{"c", "s", ""}, KPIFieldValue, "1"), ErrInvalidKPIKey)
		assert.ErrorIs(t, tree.Set(KPIPath{"c", "s", "k"}, KPIField("colour"), "1"), ErrInvalidKPIField)
		assert.Equal(t, 0, tree.Len())
	})
}

func TestKPITree_Clone(t *testing.T) {
	var tree KPITree
	path := KPIPath{"c", "s", "k"}
	require.NoError(t, tree.Put(path, KPI{Value: "1", Unit: "t"}))

	clone := tree.Clone()
	require.NoError(t, clone.Set(path, KPIFieldValue, "2"))

	orig, _ := tree.Get(path)
	assert.Equal(t, "1", orig.Value)
	assert.Equal(t, "k", orig.Name)
}

func TestParseReportType(t *testing.T) {
	for _, valid := range []string{"", "CSR", "ESG"} {
		_, err := ParseReportType(valid)
		assert.NoError(t, err, valid)
	}
	_, err := ParseReportType("Integrated")
	assert.ErrorIs(t, err, ErrInvalidReportType)
}
