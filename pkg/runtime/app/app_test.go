package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/de-tools/csr-atlas/pkg/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func TestApp_Backends(t *testing.T) {
	tests := []struct {
		name     string
		settings func(t *testing.T) config.Settings
	}{
		{
			name: "memory",
			settings: func(t *testing.T) config.Settings {
				return config.Settings{
					Storage: config.StorageSettings{Backend: config.BackendMemory},
				}
			},
		},
		{
			name: "duckdb",
			settings: func(t *testing.T) config.Settings {
				return config.Settings{
					Storage: config.StorageSettings{
						Backend: config.BackendDuckDB,
						DbPath:  filepath.Join(t.TempDir(), "atlas.db"),
						Seed:    true,
					},
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			a, err := New(ctx, tt.settings(t))
			require.NoError(t, err)
			assert.Len(t, a.Reports.Projects(), 3)
			assert.Empty(t, a.Reports.Reports())

			require.NoError(t, a.Load(ctx))
			assert.Len(t, a.Reports.Reports(), 1)
			assert.Len(t, a.Reports.Projects(), 3)
			assert.Equal(t, "Annual Sustainability Report 2023", a.Reports.Reports()[0].Title)
			assert.Len(t, a.Partners.List(), 2)

			require.NoError(t, a.Close(ctx))
			_, err = a.Reports.FetchReports(ctx)
			assert.Error(t, err)
		})
	}
}

func TestApp_UnsupportedBackend(t *testing.T) {
	_, err := New(testContext(t), config.Settings{
		Storage: config.StorageSettings{Backend: "postgres"},
	})
	assert.ErrorContains(t, err, `unsupported storage backend "postgres"`)
}
