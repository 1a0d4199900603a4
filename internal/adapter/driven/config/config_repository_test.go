package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/diillson/cloud-cost-ai-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestLoadConfigFile(t *testing.T) {
	expected := &types.Config{
		Source:           "aws",
		Profile:          "finops",
		BudgetLimit:      floatPtr(7500.5),
		Horizon:          intPtr(14),
		ReductionPercent: floatPtr(15.0),
		ReportType:       []string{"csv", "pdf"},
		NoPlots:          true,
	}

	files := map[string]string{
		"cloudcost.toml": `
source = "AWS"
profile = "finops"
budget_limit = 7500.5
horizon = 14
reduction_percent = 15.0
report_type = ["csv", "PDF"]
no_plots = true
`,
		"cloudcost.yaml": `
source: aws
profile: finops
budget_limit: 7500.5
horizon: 14
reduction_percent: 15
report_type: [csv, pdf]
no_plots: true
`,
		"cloudcost.json": `{
  "source": " aws ",
  "profile": "finops",
  "budget_limit": 7500.5,
  "horizon": 14,
  "reduction_percent": 15,
  "report_type": ["csv", "pdf"],
  "no_plots": true
}`,
	}

	repo := NewConfigRepository()
	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			cfg, err := repo.LoadConfigFile(writeFile(t, name, content))
			require.NoError(t, err)
			assert.Equal(t, expected, cfg)
		})
	}
}

func TestLoadConfigFileErrors(t *testing.T) {
	repo := NewConfigRepository()

	_, err := repo.LoadConfigFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = repo.LoadConfigFile(t.TempDir())
	assert.Error(t, err)

	_, err = repo.LoadConfigFile(writeFile(t, "cloudcost.ini", "source=csv"))
	assert.ErrorIs(t, err, types.ErrInvalidConfig)

	_, err = repo.LoadConfigFile(writeFile(t, "broken.json", "{"))
	assert.ErrorContains(t, err, "error parsing JSON file")
}

func TestLoadConfigFileKeepsExplicitZeros(t *testing.T) {
	repo := NewConfigRepository()

	cfg, err := repo.LoadConfigFile(writeFile(t, "cloudcost.toml", "budget_limit = 0.0\nreduction_percent = 0.0\n"))
	require.NoError(t, err)
	require.NotNil(t, cfg.BudgetLimit)
	require.NotNil(t, cfg.ReductionPercent)
	assert.Zero(t, *cfg.BudgetLimit)
	assert.Zero(t, *cfg.ReductionPercent)
	assert.Nil(t, cfg.Horizon, "absent keys stay nil")

	cfg, err = repo.LoadConfigFile(writeFile(t, "cloudcost.yaml", "budget_limit: 0\nreduction_percent: 0\n"))
	require.NoError(t, err)
	assert.Equal(t, floatPtr(0), cfg.BudgetLimit)
	assert.Equal(t, floatPtr(0), cfg.ReductionPercent)
}
