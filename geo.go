package esm

import "math"

const earthRadiusKm = 6371.0

// Haversine returns the great-circle distance in kilometers between two
// points given in decimal degrees.
func Haversine(lon1, lat1, lon2, lat2 float64) float64 {
	lon1 = lon1 * math.Pi / 180
	lat1 = lat1 * math.Pi / 180
	lon2 = lon2 * math.Pi / 180
	lat2 = lat2 * math.Pi / 180

	dlon := lon2 - lon1
	dlat := lat2 - lat1
	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Asin(math.Sqrt(a))
	return c * earthRadiusKm
}

// Network holds the viable entities and connections of one planning problem,
// plus the adjacency lists constraint generation walks. Entities that have no
// viable connection of any class are dropped here and never enter the model.
type Network struct {
	WindFarms   []WindFarm
	Hubs        []EnergyHub
	Substations []OnshoreSubstation

	EC1 []Connection // wind farm -> energy hub
	EC2 []Connection // energy hub -> onshore substation
	EC3 []Connection // wind farm -> onshore substation
	ONC []Connection // onshore substation -> onshore substation

	// Adjacency: viable entity index -> incident connection indices.
	WFToEC1   [][]int
	WFToEC3   [][]int
	EHToEC1   [][]int
	EHToEC2   [][]int
	ONSSToEC2 [][]int
	ONSSToEC3 [][]int
	ONSSOut   [][]int // outgoing peer transfers
	ONSSIn    [][]int // incoming peer transfers
}

// BuildNetwork filters the instance's entity pairs by great-circle distance
// and derives the viable entity sets. When cross-border pooling is disabled,
// only same-country pairs are viable.
func BuildNetwork(inst *Instance, cfg *Config) *Network {
	domestic := cfg.CrossBorder == CrossBorderNational

	type pair struct {
		a, b int
		dist float64
	}
	var ec1, ec2, ec3, onc []pair

	for i := range inst.WindFarms {
		wf := &inst.WindFarms[i]
		for j := range inst.EnergyHubs {
			eh := &inst.EnergyHubs[j]
			if domestic && wf.ISO != eh.ISO {
				continue
			}
			d := Haversine(wf.Lon, wf.Lat, eh.Lon, eh.Lat)
			if d <= cfg.Thresholds.WFToEH {
				ec1 = append(ec1, pair{i, j, d})
			}
		}
		for j := range inst.OnshoreSubstations {
			onss := &inst.OnshoreSubstations[j]
			if domestic && wf.ISO != onss.ISO {
				continue
			}
			d := Haversine(wf.Lon, wf.Lat, onss.Lon, onss.Lat)
			if d <= cfg.Thresholds.WFToONSS {
				ec3 = append(ec3, pair{i, j, d})
			}
		}
	}
	for i := range inst.EnergyHubs {
		eh := &inst.EnergyHubs[i]
		for j := range inst.OnshoreSubstations {
			onss := &inst.OnshoreSubstations[j]
			if domestic && eh.ISO != onss.ISO {
				continue
			}
			d := Haversine(eh.Lon, eh.Lat, onss.Lon, onss.Lat)
			if d <= cfg.Thresholds.EHToONSS {
				ec2 = append(ec2, pair{i, j, d})
			}
		}
	}
	for i := range inst.OnshoreSubstations {
		a := &inst.OnshoreSubstations[i]
		for j := range inst.OnshoreSubstations {
			if i == j {
				continue
			}
			b := &inst.OnshoreSubstations[j]
			if domestic && a.ISO != b.ISO {
				continue
			}
			d := Haversine(a.Lon, a.Lat, b.Lon, b.Lat)
			if d <= cfg.Thresholds.ONSSToONSS {
				onc = append(onc, pair{i, j, d})
			}
		}
	}

	// Viable entity sets: at least one incident connection of any class.
	wfViable := make(map[int]bool)
	ehViable := make(map[int]bool)
	onssViable := make(map[int]bool)
	for _, p := range ec1 {
		wfViable[p.a] = true
		ehViable[p.b] = true
	}
	for _, p := range ec2 {
		ehViable[p.a] = true
		onssViable[p.b] = true
	}
	for _, p := range ec3 {
		wfViable[p.a] = true
		onssViable[p.b] = true
	}

	net := &Network{}
	wfIdx := make(map[int]int)
	ehIdx := make(map[int]int)
	onssIdx := make(map[int]int)
	for i := range inst.WindFarms {
		if wfViable[i] {
			wfIdx[i] = len(net.WindFarms)
			net.WindFarms = append(net.WindFarms, inst.WindFarms[i])
		}
	}
	for i := range inst.EnergyHubs {
		if ehViable[i] {
			ehIdx[i] = len(net.Hubs)
			net.Hubs = append(net.Hubs, inst.EnergyHubs[i])
		}
	}
	for i := range inst.OnshoreSubstations {
		if onssViable[i] {
			onssIdx[i] = len(net.Substations)
			net.Substations = append(net.Substations, inst.OnshoreSubstations[i])
		}
	}

	for _, p := range ec1 {
		net.EC1 = append(net.EC1, Connection{
			FromID: inst.WindFarms[p.a].ID, ToID: inst.EnergyHubs[p.b].ID,
			FromIdx: wfIdx[p.a], ToIdx: ehIdx[p.b], Distance: p.dist,
		})
	}
	for _, p := range ec2 {
		net.EC2 = append(net.EC2, Connection{
			FromID: inst.EnergyHubs[p.a].ID, ToID: inst.OnshoreSubstations[p.b].ID,
			FromIdx: ehIdx[p.a], ToIdx: onssIdx[p.b], Distance: p.dist,
		})
	}
	for _, p := range ec3 {
		net.EC3 = append(net.EC3, Connection{
			FromID: inst.WindFarms[p.a].ID, ToID: inst.OnshoreSubstations[p.b].ID,
			FromIdx: wfIdx[p.a], ToIdx: onssIdx[p.b], Distance: p.dist,
		})
	}
	for _, p := range onc {
		// Peer cables only between substations that made the viable set.
		ai, aok := onssIdx[p.a]
		bi, bok := onssIdx[p.b]
		if !aok || !bok {
			continue
		}
		net.ONC = append(net.ONC, Connection{
			FromID: inst.OnshoreSubstations[p.a].ID, ToID: inst.OnshoreSubstations[p.b].ID,
			FromIdx: ai, ToIdx: bi, Distance: p.dist,
		})
	}

	net.buildAdjacency()
	return net
}

func (n *Network) buildAdjacency() {
	n.WFToEC1 = make([][]int, len(n.WindFarms))
	n.WFToEC3 = make([][]int, len(n.WindFarms))
	n.EHToEC1 = make([][]int, len(n.Hubs))
	n.EHToEC2 = make([][]int, len(n.Hubs))
	n.ONSSToEC2 = make([][]int, len(n.Substations))
	n.ONSSToEC3 = make([][]int, len(n.Substations))
	n.ONSSOut = make([][]int, len(n.Substations))
	n.ONSSIn = make([][]int, len(n.Substations))

	for c, conn := range n.EC1 {
		n.WFToEC1[conn.FromIdx] = append(n.WFToEC1[conn.FromIdx], c)
		n.EHToEC1[conn.ToIdx] = append(n.EHToEC1[conn.ToIdx], c)
	}
	for c, conn := range n.EC2 {
		n.EHToEC2[conn.FromIdx] = append(n.EHToEC2[conn.FromIdx], c)
		n.ONSSToEC2[conn.ToIdx] = append(n.ONSSToEC2[conn.ToIdx], c)
	}
	for c, conn := range n.EC3 {
		n.WFToEC3[conn.FromIdx] = append(n.WFToEC3[conn.FromIdx], c)
		n.ONSSToEC3[conn.ToIdx] = append(n.ONSSToEC3[conn.ToIdx], c)
	}
	for c, conn := range n.ONC {
		n.ONSSOut[conn.FromIdx] = append(n.ONSSOut[conn.FromIdx], c)
		n.ONSSIn[conn.ToIdx] = append(n.ONSSIn[conn.ToIdx], c)
	}
}

// TotalViableCapacity sums the rated capacity of the viable wind farms of one
// country.
func (n *Network) TotalViableCapacity(iso string) float64 {
	total := 0.0
	for i := range n.WindFarms {
		if n.WindFarms[i].ISO == iso {
			total += n.WindFarms[i].Capacity
		}
	}
	return total
}
