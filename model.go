package esm

import (
	"math"

	"github.com/bartolsthoorn/gohighs/highs"
)

// NetworkModel wraps a HiGHS model over a viable network. Variables live in
// one flat vector; the *Start offsets mark the block of each variable group:
//
//	wf cap | eh cap | onss cap | ec1 | ec2 | ec3 | onc | alloc | eh bin | onss cost
//
// The constraint matrix is built once. Between stages only the objective
// coefficients of the wind farm and hub blocks, the country requirement row
// bounds and the capacity lower bounds change.
type NetworkModel struct {
	Net       *Network
	Cfg       *Config
	Countries []string

	WFStart       int
	EHStart       int
	ONSSStart     int
	EC1Start      int
	EC2Start      int
	EC3Start      int
	ONCStart      int
	AllocStart    int
	EHBinStart    int
	ONSSCostStart int
	VarCount      int

	Model *highs.Model

	countryRows map[string]int
}

func (m *NetworkModel) WFVar(i int) int       { return m.WFStart + i }
func (m *NetworkModel) EHVar(i int) int       { return m.EHStart + i }
func (m *NetworkModel) ONSSVar(i int) int     { return m.ONSSStart + i }
func (m *NetworkModel) EC1Var(c int) int      { return m.EC1Start + c }
func (m *NetworkModel) EC2Var(c int) int      { return m.EC2Start + c }
func (m *NetworkModel) EC3Var(c int) int      { return m.EC3Start + c }
func (m *NetworkModel) ONCVar(c int) int      { return m.ONCStart + c }
func (m *NetworkModel) EHBinVar(i int) int    { return m.EHBinStart + i }
func (m *NetworkModel) ONSSCostVar(i int) int { return m.ONSSCostStart + i }

// AllocVar is the capacity of wind farm i allocated to country c.
func (m *NetworkModel) AllocVar(i, c int) int {
	return m.AllocStart + i*len(m.Countries) + c
}

// CapVarCount is the number of leading capacity variables, the range the
// stage-to-stage monotonicity bounds apply to.
func (m *NetworkModel) CapVarCount() int { return m.AllocStart }

// VarCounts reports the size of each variable group for the run record.
func (m *NetworkModel) VarCounts() map[string]int {
	return map[string]int{
		"wf_cap_var":           len(m.Net.WindFarms),
		"eh_cap_var":           len(m.Net.Hubs),
		"onss_cap_var":         len(m.Net.Substations),
		"ec1_cap_var":          len(m.Net.EC1),
		"ec2_cap_var":          len(m.Net.EC2),
		"ec3_cap_var":          len(m.Net.EC3),
		"onc_cap_var":          len(m.Net.ONC),
		"wf_country_alloc_var": len(m.Net.WindFarms) * len(m.Countries),
		"eh_active_bin_var":    len(m.Net.Hubs),
		"onss_cost_var":        len(m.Net.Substations),
	}
}

// BuildNetworkModel lays out the variables, sets the stage-invariant bounds,
// objective coefficients and constraint rows. The stage-dependent parts are
// filled in by ApplyStage before each solve.
func BuildNetworkModel(net *Network, cfg *Config) *NetworkModel {
	m := &NetworkModel{
		Net:         net,
		Cfg:         cfg,
		Countries:   cfg.CountryList(),
		Model:       &highs.Model{},
		countryRows: make(map[string]int),
	}

	nwf := len(net.WindFarms)
	neh := len(net.Hubs)
	nonss := len(net.Substations)

	m.WFStart = 0
	m.EHStart = m.WFStart + nwf
	m.ONSSStart = m.EHStart + neh
	m.EC1Start = m.ONSSStart + nonss
	m.EC2Start = m.EC1Start + len(net.EC1)
	m.EC3Start = m.EC2Start + len(net.EC2)
	m.ONCStart = m.EC3Start + len(net.EC3)
	m.AllocStart = m.ONCStart + len(net.ONC)
	m.EHBinStart = m.AllocStart + nwf*len(m.Countries)
	m.ONSSCostStart = m.EHBinStart + neh
	m.VarCount = m.ONSSCostStart + nonss

	hm := m.Model
	hm.ColCosts = make([]float64, m.VarCount)
	hm.ColLower = make([]float64, m.VarCount)
	hm.ColUpper = make([]float64, m.VarCount)
	hm.VarTypes = make([]highs.VariableType, m.VarCount)
	for i := range hm.ColUpper {
		hm.ColUpper[i] = math.Inf(1)
		hm.VarTypes[i] = highs.Continuous
	}

	for i := range net.WindFarms {
		hm.ColUpper[m.WFVar(i)] = net.WindFarms[i].Capacity
	}
	for i := range net.Hubs {
		hm.ColUpper[m.EHVar(i)] = cfg.HubCapacityLimit
		hm.ColUpper[m.EHBinVar(i)] = 1
		hm.VarTypes[m.EHBinVar(i)] = highs.Integer
	}
	for i := range net.Substations {
		hm.ColUpper[m.ONSSVar(i)] = cfg.ONSSCapacityFactor * net.Substations[i].Threshold
	}

	m.applyTopologyBounds()

	// Stage-invariant objective: cable slopes, substation expansion cost via
	// its epigraph variable, and the unit auxiliary term that drives unused
	// substation capacity to zero.
	sens := cfg.Sensitivity
	for c, conn := range net.EC1 {
		hm.ColCosts[m.EC1Var(c)] = sens.EC1 * EC1Cost(conn.Distance, 1, false)
	}
	for c, conn := range net.EC2 {
		hm.ColCosts[m.EC2Var(c)] = sens.EC2 * EC2Cost(conn.Distance, 1, false)
	}
	for c, conn := range net.EC3 {
		hm.ColCosts[m.EC3Var(c)] = sens.EC3 * EC3Cost(conn.Distance, 1, false)
	}
	for c, conn := range net.ONC {
		hm.ColCosts[m.ONCVar(c)] = sens.ONC * ONCCost(conn.Distance, 1, false)
	}
	for i := range net.Substations {
		hm.ColCosts[m.ONSSCostVar(i)] = 1
		hm.ColCosts[m.ONSSVar(i)] = 1
	}

	m.addCountryRequirementRows()
	m.addAllocationRows()
	m.addConnectivityRows()
	m.addHubRows()
	m.addSubstationRows()

	return m
}

// applyTopologyBounds zero-bounds the variable groups the configured topology
// excludes. Point-to-point runs without hubs, hub-and-spoke without direct
// farm-to-shore cables.
func (m *NetworkModel) applyTopologyBounds() {
	hm := m.Model
	switch m.Cfg.ModelType {
	case ModelTypeP2P:
		for i := range m.Net.Hubs {
			hm.ColUpper[m.EHVar(i)] = 0
			hm.ColUpper[m.EHBinVar(i)] = 0
		}
		for c := range m.Net.EC1 {
			hm.ColUpper[m.EC1Var(c)] = 0
		}
		for c := range m.Net.EC2 {
			hm.ColUpper[m.EC2Var(c)] = 0
		}
	case ModelTypeHubSpoke:
		for c := range m.Net.EC3 {
			hm.ColUpper[m.EC3Var(c)] = 0
		}
	}
}

// addCountryRequirementRows adds one row per country demanding that the
// capacity allocated to it covers its requirement. The right-hand side is
// stage-dependent and written by ApplyStage. Pooled runs may cover a country
// from any farm, national runs only from its own.
func (m *NetworkModel) addCountryRequirementRows() {
	for c, iso := range m.Countries {
		var cols []int
		var vals []float64
		for i := range m.Net.WindFarms {
			if m.Cfg.CrossBorder == CrossBorderNational && m.Net.WindFarms[i].ISO != iso {
				continue
			}
			cols = append(cols, m.AllocVar(i, c))
			vals = append(vals, 1)
		}
		// A country with no eligible farm has no viable capacity, so its
		// requirement is always zero. Skipping the row keeps the matrix free
		// of empty rows.
		if len(cols) == 0 {
			continue
		}
		m.countryRows[iso] = len(m.Model.RowLower)
		m.Model.AddSparseRow(0, cols, vals, math.Inf(1))
	}
}

// addAllocationRows ties each farm's per-country allocations to its built
// capacity.
func (m *NetworkModel) addAllocationRows() {
	for i := range m.Net.WindFarms {
		cols := make([]int, 0, len(m.Countries)+1)
		vals := make([]float64, 0, len(m.Countries)+1)
		for c := range m.Countries {
			cols = append(cols, m.AllocVar(i, c))
			vals = append(vals, 1)
		}
		cols = append(cols, m.WFVar(i))
		vals = append(vals, -1)
		m.Model.AddSparseRow(0, cols, vals, 0)
	}
}

// addConnectivityRows demands that capacity a farm allocates to a country is
// carried by cables ending in that country, either at a hub or directly at a
// substation. Where no such cable exists the row pins the allocation to zero.
func (m *NetworkModel) addConnectivityRows() {
	for i := range m.Net.WindFarms {
		for c, iso := range m.Countries {
			var cols []int
			var vals []float64
			for _, conn := range m.Net.WFToEC1[i] {
				if m.Net.Hubs[m.Net.EC1[conn].ToIdx].ISO == iso {
					cols = append(cols, m.EC1Var(conn))
					vals = append(vals, 1)
				}
			}
			for _, conn := range m.Net.WFToEC3[i] {
				if m.Net.Substations[m.Net.EC3[conn].ToIdx].ISO == iso {
					cols = append(cols, m.EC3Var(conn))
					vals = append(vals, 1)
				}
			}
			cols = append(cols, m.AllocVar(i, c))
			vals = append(vals, -1)
			m.Model.AddSparseRow(0, cols, vals, math.Inf(1))
		}
	}
}

// addHubRows adds the three rows per hub: capacity covers the inbound farm
// cables, capacity forces the activation binary, and the full capacity is
// delivered onward to substations of the hub's own country.
func (m *NetworkModel) addHubRows() {
	for i := range m.Net.Hubs {
		hub := &m.Net.Hubs[i]

		cols := []int{m.EHVar(i)}
		vals := []float64{1}
		for _, conn := range m.Net.EHToEC1[i] {
			cols = append(cols, m.EC1Var(conn))
			vals = append(vals, -1)
		}
		m.Model.AddSparseRow(0, cols, vals, math.Inf(1))

		m.Model.AddSparseRow(math.Inf(-1),
			[]int{m.EHVar(i), m.EHBinVar(i)},
			[]float64{1, -m.Cfg.HubCapacityLimit},
			m.Cfg.ZeroThreshold)

		cols = []int{m.EHVar(i)}
		vals = []float64{-1}
		for _, conn := range m.Net.EHToEC2[i] {
			if m.Net.Substations[m.Net.EC2[conn].ToIdx].ISO == hub.ISO {
				cols = append(cols, m.EC2Var(conn))
				vals = append(vals, 1)
			}
		}
		m.Model.AddSparseRow(0, cols, vals, math.Inf(1))
	}
}

// addSubstationRows adds the balance and cost rows per substation. The
// balance nets inbound cables against domestic peer transfers in both
// directions. The cost row is the epigraph of the expansion cost above the
// threshold; the cost variable's zero lower bound clips it below.
func (m *NetworkModel) addSubstationRows() {
	slope := m.Cfg.Sensitivity.ONSS * ONSSCostSlope()
	for i := range m.Net.Substations {
		onss := &m.Net.Substations[i]

		cols := []int{m.ONSSVar(i)}
		vals := []float64{1}
		for _, conn := range m.Net.ONSSToEC2[i] {
			cols = append(cols, m.EC2Var(conn))
			vals = append(vals, -1)
		}
		for _, conn := range m.Net.ONSSToEC3[i] {
			cols = append(cols, m.EC3Var(conn))
			vals = append(vals, -1)
		}
		for _, conn := range m.Net.ONSSIn[i] {
			if m.Net.Substations[m.Net.ONC[conn].FromIdx].ISO == onss.ISO {
				cols = append(cols, m.ONCVar(conn))
				vals = append(vals, -1)
			}
		}
		for _, conn := range m.Net.ONSSOut[i] {
			if m.Net.Substations[m.Net.ONC[conn].ToIdx].ISO == onss.ISO {
				cols = append(cols, m.ONCVar(conn))
				vals = append(vals, 1)
			}
		}
		m.Model.AddSparseRow(0, cols, vals, math.Inf(1))

		m.Model.AddSparseRow(-slope*onss.Threshold,
			[]int{m.ONSSCostVar(i), m.ONSSVar(i)},
			[]float64{1, -slope},
			math.Inf(1))
	}
}

// ApplyStage writes the stage-dependent parts of the model: the wind farm and
// hub cost coefficients for the stage year, the country requirement bounds
// for the stage's capacity fractions, and the monotonicity lower bounds from
// the previous stage's capacities. prev must be nil or VarCount long.
func (m *NetworkModel) ApplyStage(year int, fractions map[string]float64, prev []float64) {
	hm := m.Model
	sens := m.Cfg.Sensitivity

	for i := range m.Net.WindFarms {
		wf := &m.Net.WindFarms[i]
		hm.ColCosts[m.WFVar(i)] = sens.WF * wf.CostForYear(year) / wf.Capacity
	}
	for i := range m.Net.Hubs {
		hub := &m.Net.Hubs[i]
		hm.ColCosts[m.EHVar(i)] = sens.EH * HubCapacitySlope(year, hub.IceCover)
		hm.ColCosts[m.EHBinVar(i)] = sens.EH * HubFixedCost(year, hub.WaterDepth, hub.PortDistance)
	}

	for iso, row := range m.countryRows {
		hm.RowLower[row] = fractions[iso] * m.Net.TotalViableCapacity(iso)
	}

	if prev != nil {
		for i := 0; i < m.CapVarCount(); i++ {
			if prev[i] > m.Cfg.ZeroThreshold {
				hm.ColLower[i] = prev[i]
			}
		}
	}
}
