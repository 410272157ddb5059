package esm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInstance() *Instance {
	return &Instance{
		Name: "baltic_test",
		WindFarms: []WindFarm{
			{ID: 1, ISO: "DE", Lon: 13.0, Lat: 54.6, Capacity: 600, Cost2030: 1800, Cost2040: 1674, Cost2050: 1566},
			{ID: 2, ISO: "DK", Lon: 12.5, Lat: 55.4, Capacity: 450, Cost2030: 1350, Cost2040: 1255.5, Cost2050: 1174.5},
		},
		EnergyHubs: []EnergyHub{
			{ID: 3, ISO: "DE", Lon: 13.0, Lat: 54.8, WaterDepth: 30, IceCover: 0, PortDistance: 50},
		},
		OnshoreSubstations: []OnshoreSubstation{
			{ID: 4, ISO: "DE", Lon: 13.4, Lat: 54.3, Threshold: 500},
			{ID: 5, ISO: "DK", Lon: 12.6, Lat: 55.7, Threshold: 300},
			{ID: 6, ISO: "DE", Lon: 25.0, Lat: 60.0, Threshold: 800}, // out of reach of everything
		},
	}
}

func TestHaversine(t *testing.T) {
	assert.Equal(t, 0.0, Haversine(13.0, 54.6, 13.0, 54.6))

	// One degree of longitude along the equator.
	assert.InDelta(t, 111.19, Haversine(0, 0, 1, 0), 0.01)

	d1 := Haversine(13.0, 54.6, 12.6, 55.7)
	d2 := Haversine(12.6, 55.7, 13.0, 54.6)
	assert.Equal(t, d1, d2)
	assert.Greater(t, d1, 100.0)
	assert.Less(t, d1, 150.0)
}

func TestBuildNetworkViableSets(t *testing.T) {
	inst := testInstance()
	cfg := DefaultConfig()

	net := BuildNetwork(inst, cfg)

	require.Len(t, net.WindFarms, 2)
	require.Len(t, net.Hubs, 1)
	// Substation 6 has no connection of any class and is dropped.
	require.Len(t, net.Substations, 2)
	for i := range net.Substations {
		assert.NotEqual(t, 6, net.Substations[i].ID)
	}

	assert.Len(t, net.EC1, 2)
	assert.Len(t, net.EC2, 2)
	assert.Len(t, net.EC3, 4)
	// Both directions between the two surviving substations.
	assert.Len(t, net.ONC, 2)
}

func TestBuildNetworkDomesticFilter(t *testing.T) {
	inst := testInstance()
	cfg := DefaultConfig()
	cfg.CrossBorder = CrossBorderNational

	net := BuildNetwork(inst, cfg)

	for _, conn := range net.EC1 {
		assert.Equal(t, net.WindFarms[conn.FromIdx].ISO, net.Hubs[conn.ToIdx].ISO)
	}
	for _, conn := range net.EC2 {
		assert.Equal(t, net.Hubs[conn.FromIdx].ISO, net.Substations[conn.ToIdx].ISO)
	}
	for _, conn := range net.EC3 {
		assert.Equal(t, net.WindFarms[conn.FromIdx].ISO, net.Substations[conn.ToIdx].ISO)
	}
	for _, conn := range net.ONC {
		assert.Equal(t, net.Substations[conn.FromIdx].ISO, net.Substations[conn.ToIdx].ISO)
	}
}

func TestBuildNetworkThresholdBoundary(t *testing.T) {
	inst := testInstance()
	cfg := DefaultConfig()

	d := Haversine(inst.WindFarms[0].Lon, inst.WindFarms[0].Lat,
		inst.EnergyHubs[0].Lon, inst.EnergyHubs[0].Lat)

	// A pair exactly at the threshold is viable.
	cfg.Thresholds.WFToEH = d
	net := BuildNetwork(inst, cfg)
	found := false
	for _, conn := range net.EC1 {
		if conn.FromID == 1 && conn.ToID == 3 {
			found = true
		}
	}
	assert.True(t, found)

	// Just under it is not.
	cfg.Thresholds.WFToEH = d - 1e-9
	net = BuildNetwork(inst, cfg)
	for _, conn := range net.EC1 {
		assert.False(t, conn.FromID == 1 && conn.ToID == 3)
	}
}

func TestBuildNetworkAdjacency(t *testing.T) {
	net := BuildNetwork(testInstance(), DefaultConfig())

	ec1Seen := 0
	for i, conns := range net.WFToEC1 {
		for _, c := range conns {
			assert.Equal(t, i, net.EC1[c].FromIdx)
			ec1Seen++
		}
	}
	assert.Equal(t, len(net.EC1), ec1Seen)

	for i, conns := range net.ONSSIn {
		for _, c := range conns {
			assert.Equal(t, i, net.ONC[c].ToIdx)
		}
	}
	for i, conns := range net.ONSSOut {
		for _, c := range conns {
			assert.Equal(t, i, net.ONC[c].FromIdx)
		}
	}
}

func TestTotalViableCapacity(t *testing.T) {
	net := BuildNetwork(testInstance(), DefaultConfig())

	assert.Equal(t, 600.0, net.TotalViableCapacity("DE"))
	assert.Equal(t, 450.0, net.TotalViableCapacity("DK"))
	assert.Equal(t, 0.0, net.TotalViableCapacity("SE"))
}
