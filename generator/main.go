package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	esm "github.com/WindResource/Energy-System-Modeling"
)

var (
	name    *string
	output  *string
	count   *int
	farms   *int
	hubs    *int
	subs    *int
	spread  *float64
	wtCap   *float64
	maxCapT *int
)

// Coastal anchor points of the Baltic Sea countries. Entities are scattered
// around their country's anchor: offshore sites seaward, substations along
// the coast.
var anchors = map[string][2]float64{
	"DE": {13.2, 54.4},
	"DK": {12.4, 55.3},
	"EE": {23.5, 58.9},
	"FI": {21.5, 61.0},
	"LV": {23.1, 57.1},
	"LT": {21.0, 55.8},
	"PL": {17.8, 54.8},
	"SE": {17.4, 58.5},
}

func main() {
	name = flag.String("name", "baltic", "Name for the instance")
	output = flag.String("outputDir", ".", "Output directory")
	count = flag.Int("count", 1, "Number of instances to generate")
	farms = flag.Int("wf", 12, "Number of wind farm sites per country")
	hubs = flag.Int("eh", 3, "Number of energy hub sites per country")
	subs = flag.Int("onss", 4, "Number of onshore substations per country")
	spread = flag.Float64("spread", 1.5, "Scatter radius around the country anchor in degrees")
	wtCap = flag.Float64("wt", 15, "Wind turbine capacity in MW, farm capacities are multiples of it")
	maxCapT = flag.Int("maxTurbines", 100, "Largest farm size in turbines")

	flag.Parse()
	rand.Seed(time.Now().UnixNano())

	countries := make([]string, 0, len(anchors))
	for iso := range anchors {
		countries = append(countries, iso)
	}

	for l := 0; l < *count; l++ {
		inst := esm.Instance{
			Name:    fmt.Sprintf("%s_%d", *name, l),
			Comment: fmt.Sprintf("generated Baltic Sea instance Nr. %d with %d/%d/%d sites per country", l, *farms, *hubs, *subs),
		}

		id := 1
		for _, iso := range countries {
			a := anchors[iso]
			for i := 0; i < *farms; i++ {
				capacity := float64(farmTurbines(*maxCapT)) * *wtCap
				// Lifecycle cost falls over the decades as the technology
				// matures.
				cost2030 := capacity * (2.8 + rand.Float64()*0.8)
				inst.WindFarms = append(inst.WindFarms, esm.WindFarm{
					ID:       id,
					ISO:      iso,
					Lon:      scatter(a[0], *spread),
					Lat:      scatter(a[1], *spread),
					Capacity: capacity,
					Cost2030: round2(cost2030),
					Cost2040: round2(cost2030 * 0.93),
					Cost2050: round2(cost2030 * 0.87),
				})
				id++
			}
			for i := 0; i < *hubs; i++ {
				lat := scatter(a[1], *spread)
				ice := 0
				if lat > 60 {
					ice = 1
				}
				inst.EnergyHubs = append(inst.EnergyHubs, esm.EnergyHub{
					ID:           id,
					ISO:          iso,
					Lon:          scatter(a[0], *spread),
					Lat:          lat,
					WaterDepth:   float64(10 + rand.Intn(70)),
					IceCover:     ice,
					PortDistance: float64(20 + rand.Intn(180)),
				})
				id++
			}
			for i := 0; i < *subs; i++ {
				inst.OnshoreSubstations = append(inst.OnshoreSubstations, esm.OnshoreSubstation{
					ID:        id,
					ISO:       iso,
					Lon:       scatter(a[0], *spread/2),
					Lat:       scatter(a[1], *spread/2),
					Threshold: float64(rand.Intn(21)) * 100,
				})
				id++
			}
		}

		jsonInst, err := json.MarshalIndent(inst, "", "\t")
		if err != nil {
			log.Fatal(err)
		}
		err = os.WriteFile(fmt.Sprintf("%s/%s.json", *output, inst.Name), jsonInst, 0644)
		if err != nil {
			log.Fatal(err)
		}
	}
}

// farmTurbines draws a farm size between 10 turbines and max. A max below
// the minimum is lifted to it.
func farmTurbines(max int) int {
	if max < 10 {
		max = 10
	}
	return 10 + rand.Intn(max-9)
}

func scatter(center, radius float64) float64 {
	return center + (rand.Float64()*2-1)*radius
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
