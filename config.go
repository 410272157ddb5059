package esm

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Thresholds are the per-class viable-connection distance limits in km.
// The defaults are the enforced values of the reference scenario.
type Thresholds struct {
	WFToEH     float64 `yaml:"wf_eh" validate:"gt=0"`
	EHToONSS   float64 `yaml:"eh_onss" validate:"gt=0"`
	WFToONSS   float64 `yaml:"wf_onss" validate:"gt=0"`
	ONSSToONSS float64 `yaml:"onss_onss" validate:"gt=0"`
}

// StageConfig is one planning year of a multi-stage schedule. The development
// fraction scales every country's final-year capacity fraction.
type StageConfig struct {
	Year                int     `yaml:"year" validate:"oneof=2030 2040 2050"`
	DevelopmentFraction float64 `yaml:"development_fraction" validate:"gt=0,lte=1"`
}

// CountryConfig holds one country's final-year capacity fraction and whether
// it participates in the optimization at all.
type CountryConfig struct {
	BaseFraction float64 `yaml:"base_fraction" validate:"gte=0,lte=1"`
	Select       bool    `yaml:"select"`
}

// Sensitivity scales each cost class in the objective.
type Sensitivity struct {
	WF   float64 `yaml:"wf" validate:"gte=0"`
	EH   float64 `yaml:"eh" validate:"gte=0"`
	EC1  float64 `yaml:"ec1" validate:"gte=0"`
	EC2  float64 `yaml:"ec2" validate:"gte=0"`
	EC3  float64 `yaml:"ec3" validate:"gte=0"`
	ONSS float64 `yaml:"onss" validate:"gte=0"`
	ONC  float64 `yaml:"onc" validate:"gte=0"`
}

// SolverConfig is passed through to HiGHS per stage.
type SolverConfig struct {
	Gap         float64 `yaml:"gap" validate:"gte=0"`
	Nodes       int     `yaml:"nodes"`
	Solutions   int     `yaml:"solutions"`
	TimeLimit   float64 `yaml:"time_limit" validate:"gt=0"`
	FeasTol     float64 `yaml:"feastol" validate:"gt=0"`
	DualFeasTol float64 `yaml:"dualfeastol" validate:"gt=0"`
	Presolve    string  `yaml:"presolve" validate:"oneof=off choose on"`
	Threads     int     `yaml:"threads" validate:"gte=0"`
	Verbose     bool    `yaml:"verbose"`
}

// Config is the full scenario configuration.
type Config struct {
	ModelType    string `yaml:"model_type" validate:"oneof=d hs c"`
	CrossBorder  string `yaml:"cross_border" validate:"oneof=n in"`
	MultiStage   bool   `yaml:"multi_stage"`
	LinearResult bool   `yaml:"linear_result"`
	Note         string `yaml:"note"`

	ZeroThreshold      float64 `yaml:"zero_threshold" validate:"gt=0"`
	TurbineCapacity    float64 `yaml:"turbine_capacity" validate:"gt=0"`
	HubCapacityLimit   float64 `yaml:"hub_capacity_limit" validate:"gt=0"`
	ONSSCapacityFactor float64 `yaml:"onss_capacity_factor" validate:"gt=0"`

	Thresholds Thresholds `yaml:"thresholds"`

	SingleYear int           `yaml:"single_year" validate:"oneof=2030 2040 2050"`
	Stages     []StageConfig `yaml:"stages" validate:"min=1,dive"`

	Countries map[string]CountryConfig `yaml:"countries" validate:"min=1"`

	Sensitivity    Sensitivity `yaml:"sensitivity"`
	OnStageFailure string      `yaml:"on_stage_failure" validate:"oneof=halt continue"`

	Solver SolverConfig `yaml:"solver"`
}

// DefaultConfig returns the reference Baltic Sea scenario.
func DefaultConfig() *Config {
	return &Config{
		ModelType:    ModelTypeCombined,
		CrossBorder:  CrossBorderPooled,
		MultiStage:   false,
		LinearResult: true,

		ZeroThreshold:      1e-3,
		TurbineCapacity:    15,
		HubCapacityLimit:   2500,
		ONSSCapacityFactor: 2.5,

		Thresholds: Thresholds{
			WFToEH:     250,
			EHToONSS:   250,
			WFToONSS:   500,
			ONSSToONSS: 250,
		},

		SingleYear: 2040,
		Stages: []StageConfig{
			{Year: 2030, DevelopmentFraction: 0.3056},
			{Year: 2040, DevelopmentFraction: 0.7115},
			{Year: 2050, DevelopmentFraction: 1.00},
		},

		Countries: map[string]CountryConfig{
			"DE": {BaseFraction: 1.0, Select: true},
			"DK": {BaseFraction: 0.0563, Select: true},
			"EE": {BaseFraction: 0.1219, Select: true},
			"FI": {BaseFraction: 0.0792, Select: true},
			"LV": {BaseFraction: 0.0509, Select: true},
			"LT": {BaseFraction: 0.0282, Select: true},
			"PL": {BaseFraction: 1.0, Select: true},
			"SE": {BaseFraction: 0.0201, Select: true},
		},

		Sensitivity:    Sensitivity{WF: 1, EH: 1, EC1: 1, EC2: 1, EC3: 1, ONSS: 1, ONC: 1},
		OnStageFailure: OnFailureHalt,

		Solver: SolverConfig{
			Gap:         0,
			Nodes:       10000,
			Solutions:   -1,
			TimeLimit:   3600,
			FeasTol:     1e-5,
			DualFeasTol: 1e-5,
			Presolve:    "on",
			Threads:     0,
			Verbose:     false,
		},
	}
}

// LoadConfig reads a YAML scenario file over the defaults and validates the
// result. An empty path returns the validated defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags plus the cross-field rules the tags can't
// express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	for iso := range c.Countries {
		if len(iso) != 2 {
			return fmt.Errorf("config: country code %q is not ISO-2", iso)
		}
	}
	return nil
}

// CountryList returns the participating country codes in a stable order.
func (c *Config) CountryList() []string {
	list := make([]string, 0, len(c.Countries))
	for iso := range c.Countries {
		list = append(list, iso)
	}
	sort.Strings(list)
	return list
}

// FractionsFor returns the per-country required capacity fractions for one
// stage, scaled by the stage's development fraction and the country
// selection mask.
func (c *Config) FractionsFor(devFraction float64) map[string]float64 {
	fractions := make(map[string]float64, len(c.Countries))
	for iso, cc := range c.Countries {
		f := 0.0
		if cc.Select {
			f = cc.BaseFraction * devFraction
		}
		fractions[iso] = f
	}
	return fractions
}

// StageList resolves the configured schedule: a single stage at the single
// year, or the full multi-stage schedule ordered by year.
func (c *Config) StageList() []StageConfig {
	if !c.MultiStage {
		return []StageConfig{{Year: c.SingleYear, DevelopmentFraction: 1.0}}
	}
	stages := make([]StageConfig, len(c.Stages))
	copy(stages, c.Stages)
	sort.Slice(stages, func(i, j int) bool { return stages[i].Year < stages[j].Year })
	return stages
}

// StageMode returns the file name tag for the configured schedule.
func (c *Config) StageMode() string {
	if c.MultiStage {
		return StageModeMulti
	}
	return StageModeSingle
}

// ValidateInstance checks the entity datasets against the struct tags and
// the configured country set before any model is built.
func ValidateInstance(inst *Instance, cfg *Config) error {
	v := validator.New()
	for i := range inst.WindFarms {
		wf := &inst.WindFarms[i]
		if err := v.Struct(wf); err != nil {
			return &InputDataError{Dataset: "wind_farm", ID: wf.ID, Reason: err.Error()}
		}
		if _, ok := cfg.Countries[wf.ISO]; !ok {
			return &InputDataError{Dataset: "wind_farm", ID: wf.ID, Reason: fmt.Sprintf("unknown country %q", wf.ISO)}
		}
	}
	for i := range inst.EnergyHubs {
		eh := &inst.EnergyHubs[i]
		if err := v.Struct(eh); err != nil {
			return &InputDataError{Dataset: "energy_hub", ID: eh.ID, Reason: err.Error()}
		}
		if _, ok := cfg.Countries[eh.ISO]; !ok {
			return &InputDataError{Dataset: "energy_hub", ID: eh.ID, Reason: fmt.Sprintf("unknown country %q", eh.ISO)}
		}
	}
	for i := range inst.OnshoreSubstations {
		onss := &inst.OnshoreSubstations[i]
		if err := v.Struct(onss); err != nil {
			return &InputDataError{Dataset: "onshore_substation", ID: onss.ID, Reason: err.Error()}
		}
		if _, ok := cfg.Countries[onss.ISO]; !ok {
			return &InputDataError{Dataset: "onshore_substation", ID: onss.ID, Reason: fmt.Sprintf("unknown country %q", onss.ISO)}
		}
	}
	return nil
}
