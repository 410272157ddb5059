package esm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ModelTypeCombined, cfg.ModelType)
	assert.Equal(t, CrossBorderPooled, cfg.CrossBorder)
	assert.Len(t, cfg.Countries, 8)
	assert.Equal(t, 250.0, cfg.Thresholds.WFToEH)
	assert.Equal(t, 500.0, cfg.Thresholds.WFToONSS)
}

func TestLoadConfigOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	yaml := `
model_type: hs
multi_stage: true
thresholds:
  wf_eh: 150
solver:
  time_limit: 600
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ModelTypeHubSpoke, cfg.ModelType)
	assert.True(t, cfg.MultiStage)
	assert.Equal(t, 150.0, cfg.Thresholds.WFToEH)
	assert.Equal(t, 600.0, cfg.Solver.TimeLimit)
	// Untouched values keep their defaults.
	assert.Equal(t, 250.0, cfg.Thresholds.EHToONSS)
	assert.Equal(t, 2500.0, cfg.HubCapacityLimit)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model_type: bogus\n"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestCountryList(t *testing.T) {
	cfg := DefaultConfig()
	list := cfg.CountryList()
	assert.Equal(t, []string{"DE", "DK", "EE", "FI", "LT", "LV", "PL", "SE"}, list)
}

func TestFractionsFor(t *testing.T) {
	cfg := DefaultConfig()

	f := cfg.FractionsFor(0.3056)
	assert.InDelta(t, 0.3056, f["DE"], 1e-9)
	assert.InDelta(t, 0.0563*0.3056, f["DK"], 1e-9)

	cfg.Countries["DK"] = CountryConfig{BaseFraction: 0.0563, Select: false}
	f = cfg.FractionsFor(1.0)
	assert.Equal(t, 0.0, f["DK"])
	assert.InDelta(t, 1.0, f["DE"], 1e-9)
}

func TestStageList(t *testing.T) {
	cfg := DefaultConfig()

	single := cfg.StageList()
	require.Len(t, single, 1)
	assert.Equal(t, cfg.SingleYear, single[0].Year)
	assert.Equal(t, 1.0, single[0].DevelopmentFraction)
	assert.Equal(t, StageModeSingle, cfg.StageMode())

	cfg.MultiStage = true
	cfg.Stages = []StageConfig{
		{Year: 2050, DevelopmentFraction: 1.0},
		{Year: 2030, DevelopmentFraction: 0.3056},
		{Year: 2040, DevelopmentFraction: 0.7115},
	}
	multi := cfg.StageList()
	require.Len(t, multi, 3)
	assert.Equal(t, 2030, multi[0].Year)
	assert.Equal(t, 2040, multi[1].Year)
	assert.Equal(t, 2050, multi[2].Year)
	assert.Equal(t, StageModeMulti, cfg.StageMode())
}

func TestValidateInstance(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, ValidateInstance(testInstance(), cfg))

	bad := testInstance()
	bad.WindFarms[0].ISO = "XX"
	err := ValidateInstance(bad, cfg)
	require.Error(t, err)
	var inputErr *InputDataError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "wind_farm", inputErr.Dataset)
	assert.Equal(t, 1, inputErr.ID)

	bad = testInstance()
	bad.EnergyHubs[0].IceCover = 2
	assert.Error(t, ValidateInstance(bad, cfg))

	bad = testInstance()
	bad.OnshoreSubstations[0].Threshold = -5
	assert.Error(t, ValidateInstance(bad, cfg))
}
