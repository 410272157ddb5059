package esm

import (
	"math"

	"github.com/bartolsthoorn/gohighs/highs"
)

func rndF(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

// ExtractResults reads the solved capacity vector back into component
// records. Capacities are cumulative; costs are charged on the capacity added
// since the previous stage, with CostSF re-pricing the cumulative capacity at
// the single-frame reference year. Components at or below the zero threshold
// are left out.
func ExtractResults(m *NetworkModel, sol *highs.Solution, year int, prev []float64) StageResult {
	cfg := m.Cfg
	net := m.Net
	sens := cfg.Sensitivity
	sfYear := cfg.SingleYear

	res := StageResult{Year: year, Objective: rndF(sol.Objective)}

	// Turbine snapping applies in as-built mode: capacity is charged in whole
	// turbine units instead of the linear relaxation.
	wfCap := func(cap float64) float64 {
		if cfg.LinearResult {
			return cap
		}
		return NearestTurbineCapacity(cap, cfg.TurbineCapacity)
	}
	ceilCount := !cfg.LinearResult

	for i := range net.WindFarms {
		wf := &net.WindFarms[i]
		v := sol.Value(m.WFVar(i))
		if v <= cfg.ZeroThreshold {
			continue
		}
		capacity := rndF(v)
		diff := ClampIncremental(capacity - prev[m.WFVar(i)])
		res.WindFarms = append(res.WindFarms, WindFarmRecord{
			ID:       wf.ID,
			ISO:      wf.ISO,
			Lon:      wf.Lon,
			Lat:      wf.Lat,
			Capacity: capacity,
			Cost:     sens.WF * rndF(WindFarmCost(wf.CostForYear(year), wf.Capacity, wfCap(diff))),
			Rate:     rndF(capacity / wf.Capacity),
			CostSF:   sens.WF * rndF(WindFarmCost(wf.CostForYear(sfYear), wf.Capacity, wfCap(capacity))),
		})
	}

	for i := range net.Hubs {
		hub := &net.Hubs[i]
		v := sol.Value(m.EHVar(i))
		if v <= cfg.ZeroThreshold {
			continue
		}
		capacity := rndF(v)
		diff := ClampIncremental(capacity - prev[m.EHVar(i)])
		active := sol.Value(m.EHBinVar(i))
		res.Hubs = append(res.Hubs, HubRecord{
			ID:           hub.ID,
			ISO:          hub.ISO,
			Lon:          hub.Lon,
			Lat:          hub.Lat,
			WaterDepth:   hub.WaterDepth,
			IceCover:     hub.IceCover,
			PortDistance: hub.PortDistance,
			Capacity:     capacity,
			Cost:         sens.EH * rndF(HubCost(year, hub.WaterDepth, hub.IceCover, hub.PortDistance, diff, active)),
			CostSF:       sens.EH * rndF(HubCost(sfYear, hub.WaterDepth, hub.IceCover, hub.PortDistance, capacity, active)),
		})
	}

	for i := range net.Substations {
		onss := &net.Substations[i]
		v := sol.Value(m.ONSSVar(i))
		if v <= cfg.ZeroThreshold {
			continue
		}
		capacity := rndF(v)
		diff := ClampIncremental(capacity - prev[m.ONSSVar(i)])
		res.Substations = append(res.Substations, SubstationRecord{
			ID:        onss.ID,
			ISO:       onss.ISO,
			Lon:       onss.Lon,
			Lat:       onss.Lat,
			Threshold: onss.Threshold,
			Capacity:  capacity,
			Cost:      sens.ONSS * rndF(math.Max(0, ONSSCost(diff, onss.Threshold))),
			CostSF:    sens.ONSS * rndF(math.Max(0, ONSSCost(capacity, onss.Threshold))),
		})
	}

	type cableCostFn func(dist, cap float64, ceilCount bool) float64

	extractCables := func(conns []Connection, varOf func(int) int, isoOf func(*Connection) string,
		lon1 func(*Connection) (float64, float64), lon2 func(*Connection) (float64, float64),
		costFn cableCostFn, sf float64) []CableRecord {
		var records []CableRecord
		id := 1
		for c := range conns {
			conn := &conns[c]
			v := sol.Value(varOf(c))
			if v <= cfg.ZeroThreshold {
				continue
			}
			capacity := rndF(v)
			diff := ClampIncremental(capacity - prev[varOf(c)])
			dist := rndF(conn.Distance)
			fLon, fLat := lon1(conn)
			tLon, tLat := lon2(conn)
			records = append(records, CableRecord{
				CableID:  id,
				ISO:      isoOf(conn),
				FromID:   conn.FromID,
				ToID:     conn.ToID,
				FromLon:  fLon,
				FromLat:  fLat,
				ToLon:    tLon,
				ToLat:    tLat,
				Distance: dist,
				Capacity: capacity,
				Cost:     sf * rndF(costFn(dist, diff, ceilCount)),
				CostSF:   sf * rndF(costFn(dist, capacity, ceilCount)),
			})
			id++
		}
		return records
	}

	res.EC1 = extractCables(net.EC1, m.EC1Var,
		func(c *Connection) string { return net.Hubs[c.ToIdx].ISO },
		func(c *Connection) (float64, float64) {
			wf := &net.WindFarms[c.FromIdx]
			return wf.Lon, wf.Lat
		},
		func(c *Connection) (float64, float64) {
			eh := &net.Hubs[c.ToIdx]
			return eh.Lon, eh.Lat
		},
		EC1Cost, sens.EC1)

	res.EC2 = extractCables(net.EC2, m.EC2Var,
		func(c *Connection) string { return net.Substations[c.ToIdx].ISO },
		func(c *Connection) (float64, float64) {
			eh := &net.Hubs[c.FromIdx]
			return eh.Lon, eh.Lat
		},
		func(c *Connection) (float64, float64) {
			onss := &net.Substations[c.ToIdx]
			return onss.Lon, onss.Lat
		},
		EC2Cost, sens.EC2)

	res.EC3 = extractCables(net.EC3, m.EC3Var,
		func(c *Connection) string { return net.Substations[c.ToIdx].ISO },
		func(c *Connection) (float64, float64) {
			wf := &net.WindFarms[c.FromIdx]
			return wf.Lon, wf.Lat
		},
		func(c *Connection) (float64, float64) {
			onss := &net.Substations[c.ToIdx]
			return onss.Lon, onss.Lat
		},
		EC3Cost, sens.EC3)

	res.ONC = extractCables(net.ONC, m.ONCVar,
		func(c *Connection) string { return net.Substations[c.FromIdx].ISO },
		func(c *Connection) (float64, float64) {
			onss := &net.Substations[c.FromIdx]
			return onss.Lon, onss.Lat
		},
		func(c *Connection) (float64, float64) {
			onss := &net.Substations[c.ToIdx]
			return onss.Lon, onss.Lat
		},
		ONCCost, sens.ONC)

	res.Totals = buildTotals(&res)
	return res
}

func buildTotals(res *StageResult) []TotalRecord {
	sum := func(name string, n int, capAt func(int) (float64, float64)) TotalRecord {
		t := TotalRecord{Component: name}
		for i := 0; i < n; i++ {
			c, cost := capAt(i)
			t.Capacity += c
			t.Cost += cost
		}
		t.Capacity = rndF(t.Capacity)
		t.Cost = rndF(t.Cost)
		return t
	}

	totals := []TotalRecord{
		sum("wf", len(res.WindFarms), func(i int) (float64, float64) {
			return res.WindFarms[i].Capacity, res.WindFarms[i].Cost
		}),
		sum("eh", len(res.Hubs), func(i int) (float64, float64) {
			return res.Hubs[i].Capacity, res.Hubs[i].Cost
		}),
		sum("onss", len(res.Substations), func(i int) (float64, float64) {
			return res.Substations[i].Capacity, res.Substations[i].Cost
		}),
		sum("ec1", len(res.EC1), func(i int) (float64, float64) {
			return res.EC1[i].Capacity, res.EC1[i].Cost
		}),
		sum("ec2", len(res.EC2), func(i int) (float64, float64) {
			return res.EC2[i].Capacity, res.EC2[i].Cost
		}),
		sum("ec3", len(res.EC3), func(i int) (float64, float64) {
			return res.EC3[i].Capacity, res.EC3[i].Cost
		}),
		sum("onc", len(res.ONC), func(i int) (float64, float64) {
			return res.ONC[i].Capacity, res.ONC[i].Cost
		}),
	}

	overall := TotalRecord{Component: "overall"}
	for _, t := range totals {
		overall.Capacity += t.Capacity
		overall.Cost += t.Cost
	}
	overall.Capacity = rndF(overall.Capacity)
	overall.Cost = rndF(overall.Cost)
	return append(totals, overall)
}
