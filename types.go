package esm

const (
	// Network topology variants. The token values double as file name tags
	// for result output.
	ModelTypeP2P      = "d"  // point-to-point: wind farms connect straight to shore
	ModelTypeHubSpoke = "hs" // hub-and-spoke: everything routes through energy hubs
	ModelTypeCombined = "c"  // both variable groups open

	// Cross-border handling for country delivery targets.
	CrossBorderNational = "n"  // domestic-only: farms serve their own country
	CrossBorderPooled   = "in" // international pooling allowed

	StageModeSingle = "sf"
	StageModeMulti  = "mf"

	// Policy when a stage ends in a solver error or warning.
	OnFailureHalt     = "halt"
	OnFailureContinue = "continue"
)

// WindFarm is a candidate offshore wind farm site. Costs are lifecycle cost
// estimates for the whole farm keyed to the three reference years.
type WindFarm struct {
	ID       int     `json:"id" validate:"gte=0"`
	ISO      string  `json:"iso" validate:"len=2"`
	Lon      float64 `json:"lon" validate:"gte=-180,lte=180"`
	Lat      float64 `json:"lat" validate:"gte=-90,lte=90"`
	Capacity float64 `json:"capacity" validate:"gt=0"`
	Cost2030 float64 `json:"cost_2030" validate:"gte=0"`
	Cost2040 float64 `json:"cost_2040" validate:"gte=0"`
	Cost2050 float64 `json:"cost_2050" validate:"gte=0"`
}

// CostForYear returns the farm's lifecycle cost for a reference year.
func (wf *WindFarm) CostForYear(year int) float64 {
	switch year {
	case 2030:
		return wf.Cost2030
	case 2040:
		return wf.Cost2040
	default:
		return wf.Cost2050
	}
}

// EnergyHub is a candidate offshore aggregation platform. WaterDepth is in
// meters, PortDistance in kilometers. IceCover is 1 when the site can ice
// over in winter, 0 otherwise.
type EnergyHub struct {
	ID           int     `json:"id" validate:"gte=0"`
	ISO          string  `json:"iso" validate:"len=2"`
	Lon          float64 `json:"lon" validate:"gte=-180,lte=180"`
	Lat          float64 `json:"lat" validate:"gte=-90,lte=90"`
	WaterDepth   float64 `json:"water_depth" validate:"gte=0"`
	IceCover     int     `json:"ice_cover" validate:"gte=0,lte=1"`
	PortDistance float64 `json:"port_distance" validate:"gte=0"`
}

// OnshoreSubstation is an existing grid connection point. Threshold is the
// capacity in MW it can absorb before expansion cost is incurred.
type OnshoreSubstation struct {
	ID        int     `json:"id" validate:"gte=0"`
	ISO       string  `json:"iso" validate:"len=2"`
	Lon       float64 `json:"lon" validate:"gte=-180,lte=180"`
	Lat       float64 `json:"lat" validate:"gte=-90,lte=90"`
	Threshold float64 `json:"threshold" validate:"gte=0"`
}

// Instance bundles the three entity datasets of one planning problem.
type Instance struct {
	Name    string `json:"name"`
	Comment string `json:"comment"`

	WindFarms          []WindFarm          `json:"wind_farms"`
	EnergyHubs         []EnergyHub         `json:"energy_hubs"`
	OnshoreSubstations []OnshoreSubstation `json:"onshore_substations"`
}

// Connection is a viable cable candidate between two entities. FromIdx and
// ToIdx index into the viable entity slices of the Network, FromID and ToID
// are the dataset identifiers.
type Connection struct {
	FromID   int
	ToID     int
	FromIdx  int
	ToIdx    int
	Distance float64
}

// SysInfo saves the basic system information for the run record.
type SysInfo struct {
	Platform string `json:"platform"`
	CPU      string `json:"cpu"`
	RAM      string `json:"ram"`
}

// StageStatus classifies one stage's solver outcome.
type StageStatus string

const (
	StageOptimal    StageStatus = "optimal"
	StageLimit      StageStatus = "limit"
	StageInfeasible StageStatus = "infeasible"
	StageFailed     StageStatus = "failed"
)

// Usable reports whether the stage produced a solution worth persisting.
func (s StageStatus) Usable() bool {
	return s == StageOptimal || s == StageLimit
}

// WindFarmRecord is one selected wind farm in a stage result. Capacity is
// cumulative, Cost is the cost of the capacity added this stage, CostSF is
// the cost of the cumulative capacity at the single-frame reference year.
type WindFarmRecord struct {
	ID       int     `json:"id"`
	ISO      string  `json:"iso"`
	Lon      float64 `json:"lon"`
	Lat      float64 `json:"lat"`
	Capacity float64 `json:"capacity"`
	Cost     float64 `json:"cost"`
	Rate     float64 `json:"rate"`
	CostSF   float64 `json:"cost_sf"`
}

// HubRecord is one built energy hub in a stage result.
type HubRecord struct {
	ID           int     `json:"id"`
	ISO          string  `json:"iso"`
	Lon          float64 `json:"lon"`
	Lat          float64 `json:"lat"`
	WaterDepth   float64 `json:"water_depth"`
	IceCover     int     `json:"ice_cover"`
	PortDistance float64 `json:"port_distance"`
	Capacity     float64 `json:"capacity"`
	Cost         float64 `json:"cost"`
	CostSF       float64 `json:"cost_sf"`
}

// SubstationRecord is one expanded onshore substation in a stage result.
type SubstationRecord struct {
	ID        int     `json:"id"`
	ISO       string  `json:"iso"`
	Lon       float64 `json:"lon"`
	Lat       float64 `json:"lat"`
	Threshold float64 `json:"threshold"`
	Capacity  float64 `json:"capacity"`
	Cost      float64 `json:"cost"`
	CostSF    float64 `json:"cost_sf"`
}

// CableRecord is one laid cable in a stage result, used for all four cable
// classes.
type CableRecord struct {
	CableID  int     `json:"cable_id"`
	ISO      string  `json:"iso"`
	FromID   int     `json:"from_id"`
	ToID     int     `json:"to_id"`
	FromLon  float64 `json:"from_lon"`
	FromLat  float64 `json:"from_lat"`
	ToLon    float64 `json:"to_lon"`
	ToLat    float64 `json:"to_lat"`
	Distance float64 `json:"distance"`
	Capacity float64 `json:"capacity"`
	Cost     float64 `json:"cost"`
	CostSF   float64 `json:"cost_sf"`
}

// TotalRecord aggregates capacity and stage-incremental cost per component
// class.
type TotalRecord struct {
	Component string  `json:"component"`
	Capacity  float64 `json:"capacity"`
	Cost      float64 `json:"cost"`
}

// StageResult holds everything extracted from one solved stage.
type StageResult struct {
	Year      int         `json:"year"`
	Status    StageStatus `json:"status"`
	Objective float64     `json:"objective"`

	WindFarms   []WindFarmRecord   `json:"wind_farms"`
	Hubs        []HubRecord        `json:"hubs"`
	Substations []SubstationRecord `json:"substations"`
	EC1         []CableRecord      `json:"ec1"`
	EC2         []CableRecord      `json:"ec2"`
	EC3         []CableRecord      `json:"ec3"`
	ONC         []CableRecord      `json:"onc"`

	Totals []TotalRecord `json:"totals"`
}

// StageNote is the per-stage status line kept in the run record.
type StageNote struct {
	Year    int         `json:"year"`
	Status  StageStatus `json:"status"`
	Time    string      `json:"time"`
	Comment string      `json:"comment,omitempty"`
}

// RunInfo is the run-level metadata record written next to the stage results.
type RunInfo struct {
	RunID     string         `json:"run_id"`
	Instance  string         `json:"instance"`
	Note      string         `json:"note"`
	VarCounts map[string]int `json:"var_counts"`
	System    SysInfo        `json:"system"`
	Stages    []StageNote    `json:"stages"`
}
