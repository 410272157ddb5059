package esm

import "math"

// Lifecycle phases, in years from financial close: equipment and installation
// up front, 25 years of operation starting in year 5, decommissioning in
// year 30. All costs are in million EUR.
const (
	discountRate = 0.05
	opeFirstYear = 5
	opeLastYear  = 29
	decoYear     = 30
)

// Cable cost constants, shared by all four cable classes.
const (
	cableCapacityMW     = 348.0
	cableCapacityFactor = 0.95
	cableLengthFactor   = 1.10
	cableEquipCostKm    = 0.860
	cableInstCostKm     = 0.540
	transitionLengthKm  = 2.0 // offshore-to-onshore transition add-on
)

const (
	onssEquipCostMW = 0.02287
	onssOpeRate     = 0.015
	hubOpeRate      = 0.03
	cableOpeRate    = 0.002
	iceCoverFactor  = 1.0 + 0.4*0.5714
)

var (
	opeDiscountSum = sumDiscount(opeFirstYear, opeLastYear)
	decoDiscount   = math.Pow(1+discountRate, -decoYear)
)

func sumDiscount(first, last int) float64 {
	s := 0.0
	for t := first; t <= last; t++ {
		s += math.Pow(1+discountRate, -float64(t))
	}
	return s
}

// PresentValue discounts the four lifecycle cost components to the reference
// year: equipment and installation fall due immediately, the yearly operating
// cost runs over the operating window, decommissioning at end of life.
func PresentValue(equip, inst, opeYearly, deco float64) float64 {
	return equip + inst + opeYearly*opeDiscountSum + deco*decoDiscount
}

// WindFarmCost is the lifecycle cost of building cap MW of a farm whose full
// build-out costs total. Linear in cap and exactly zero at zero.
func WindFarmCost(total, ratedCap, cap float64) float64 {
	if ratedCap <= 0 {
		return 0
	}
	return total * (cap / ratedCap)
}

// SupportStructure is the hub foundation type selected by water depth.
type SupportStructure string

const (
	Monopile SupportStructure = "monopile"
	Jacket   SupportStructure = "jacket"
	Floating SupportStructure = "floating"
)

// SupportStructureFor selects the foundation for a water depth in meters.
func SupportStructureFor(depth float64) SupportStructure {
	switch {
	case depth < 25:
		return Monopile
	case depth < 55:
		return Jacket
	default:
		return Floating
	}
}

type suppCoeff struct{ c1, c2, c3 float64 }

// Support structure cost coefficients per reference year, EUR terms of a
// quadratic in water depth. The floating entries have no depth-squared term.
var hubSuppCoeff = map[int]map[SupportStructure]suppCoeff{
	2030: {
		Monopile: {181, 552, 370},
		Jacket:   {103, -2043, 478},
		Floating: {0, 697, 1223},
	},
	2040: {
		Monopile: {176, 536, 270},
		Jacket:   {100, -1986, 375},
		Floating: {0, 678, 1034},
	},
	2050: {
		Monopile: {171, 521, 170},
		Jacket:   {97, -1930, 658},
		Floating: {0, 658, 844},
	},
}

// Converter equipment cost per MW of hub capacity (M EUR/MW) per reference
// year.
var hubConvCoeff = map[int]float64{
	2030: 0.090,
	2040: 0.085,
	2050: 0.080,
}

func hubYear(year int) int {
	if _, ok := hubConvCoeff[year]; ok {
		return year
	}
	return 2050
}

// Vessel day-rate coefficients for hub installation and decommissioning.
// Bottom-fixed structures use a jack-up vessel, floating ones a tug plus an
// anchor handler.
type vesselCoeff struct{ c1, c2, c3, c4, c5 float64 }

var (
	hubInstCoeff = map[string]vesselCoeff{
		"PSIV": {40.0 / 15.0, 18.5, 24, 144, 200},
		"Tug":  {1.0 / 3.0, 7.5, 5, 0, 2.5},
		"AHV":  {7, 18.5, 30, 90, 40},
	}
	hubDecoCoeff = map[string]vesselCoeff{
		"PSIV": {40.0 / 15.0, 18.5, 24, 144, 200},
		"Tug":  {1.0 / 3.0, 7.5, 5, 0, 2.5},
		"AHV":  {7, 18.5, 30, 30, 40},
	}
)

func vesselOpCost(c vesselCoeff, portDistance float64) float64 {
	return ((1/c.c1)*((2*portDistance)/c.c2+c.c3) + c.c4) * (c.c5 * 1e3 / 24) * 1e-6
}

// HubInstDecoCost is the installation or decommissioning cost of a hub given
// its foundation and the distance to the nearest port in km.
func HubInstDecoCost(structure SupportStructure, portDistance float64, deco bool) float64 {
	coeff := hubInstCoeff
	if deco {
		coeff = hubDecoCoeff
	}
	if structure == Floating {
		return vesselOpCost(coeff["Tug"], portDistance) + vesselOpCost(coeff["AHV"], portDistance)
	}
	return vesselOpCost(coeff["PSIV"], portDistance)
}

// HubFixedCost is the capacity-independent part of a hub's lifecycle cost:
// support structure, installation and decommissioning, present-valued. It is
// incurred once per built hub and gated by the activation binary in the
// model.
func HubFixedCost(year int, waterDepth, portDistance float64) float64 {
	structure := SupportStructureFor(waterDepth)
	c := hubSuppCoeff[hubYear(year)][structure]
	supp := (c.c1*waterDepth*waterDepth + c.c2*waterDepth + c.c3*1e3) * 1e-6
	inst := HubInstDecoCost(structure, portDistance, false)
	deco := HubInstDecoCost(structure, portDistance, true)
	return PresentValue(supp, inst, 0, deco)
}

// HubCapacitySlope is the per-MW part of a hub's lifecycle cost: converter
// equipment plus its yearly operating cost, present-valued. Ice cover scales
// the equipment coefficient.
func HubCapacitySlope(year, iceCover int) float64 {
	conv := hubConvCoeff[hubYear(year)]
	if iceCover == 1 {
		conv *= iceCoverFactor
	}
	return PresentValue(conv, 0, hubOpeRate*conv, 0)
}

// HubCost is the full hub lifecycle cost at a given capacity and activation
// state. Exactly zero when cap is zero and the hub is inactive.
func HubCost(year int, waterDepth float64, iceCover int, portDistance, cap, active float64) float64 {
	return HubCapacitySlope(year, iceCover)*cap + HubFixedCost(year, waterDepth, portDistance)*active
}

// parallelCables is the number of cables needed for cap MW, continuous for
// the optimization objective or rounded up for as-built reporting.
func parallelCables(cap float64, ceilCount bool) float64 {
	n := cap / (cableCapacityMW * cableCapacityFactor)
	if ceilCount {
		return math.Ceil(n)
	}
	return n
}

func cableCost(length, instCostKm, cap float64, ceilCount bool) float64 {
	n := parallelCables(cap, ceilCount)
	equip := n * length * cableEquipCostKm
	inst := n * length * instCostKm
	ope := cableOpeRate * equip
	deco := 0.5 * inst
	return PresentValue(equip, inst, ope, deco)
}

// EC1Cost is the lifecycle cost of a wind farm to energy hub export cable.
func EC1Cost(distance, cap float64, ceilCount bool) float64 {
	return cableCost(cableLengthFactor*distance, cableInstCostKm, cap, ceilCount)
}

// EC2Cost is the lifecycle cost of an energy hub to onshore substation export
// cable, including the offshore-to-onshore transition length.
func EC2Cost(distance, cap float64, ceilCount bool) float64 {
	return cableCost(cableLengthFactor*distance+transitionLengthKm, cableInstCostKm, cap, ceilCount)
}

// EC3Cost is the lifecycle cost of a direct wind farm to onshore substation
// cable, including the offshore-to-onshore transition length.
func EC3Cost(distance, cap float64, ceilCount bool) float64 {
	return cableCost(cableLengthFactor*distance+transitionLengthKm, cableInstCostKm, cap, ceilCount)
}

// ONCCost is the lifecycle cost of an onshore substation peer cable. Onshore
// installation runs at half the offshore rate and there is no transition.
func ONCCost(distance, cap float64, ceilCount bool) float64 {
	return cableCost(cableLengthFactor*distance, cableInstCostKm*0.5, cap, ceilCount)
}

// ONSSCost is the lifecycle cost of expanding an onshore substation to cap MW
// above its threshold. Negative below the threshold; the model bounds the
// cost variable at zero and reporting clamps it.
func ONSSCost(cap, threshold float64) float64 {
	equip := (cap - threshold) * onssEquipCostMW
	return PresentValue(equip, 0, onssOpeRate*equip, 0)
}

// ONSSCostSlope is the present-valued expansion cost per MW above the
// threshold.
func ONSSCostSlope() float64 {
	return PresentValue(onssEquipCostMW, 0, onssOpeRate*onssEquipCostMW, 0)
}

// ClampIncremental floors a stage-to-stage capacity difference at zero before
// costing. Rounding can make it slightly negative.
func ClampIncremental(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// NearestTurbineCapacity rounds a capacity up to a whole number of turbines.
func NearestTurbineCapacity(cap, unit float64) float64 {
	if cap <= 0 || unit <= 0 {
		return 0
	}
	return math.Ceil(cap/unit) * unit
}
