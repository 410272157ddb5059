package esm

import (
	"errors"
	"testing"

	"github.com/bartolsthoorn/gohighs/highs"
	"github.com/stretchr/testify/assert"
)

func TestClassifyStatus(t *testing.T) {
	assert.Equal(t, StageFailed, classifyStatus(nil, errors.New("boom")))
	assert.Equal(t, StageOptimal, classifyStatus(&highs.Solution{Status: highs.ModelStatusOptimal}, nil))
	assert.Equal(t, StageInfeasible, classifyStatus(&highs.Solution{Status: highs.ModelStatusInfeasible}, nil))
	assert.Equal(t, StageInfeasible, classifyStatus(&highs.Solution{Status: highs.ModelStatusUnboundedOrInfeasible}, nil))
	assert.Equal(t, StageLimit, classifyStatus(&highs.Solution{Status: highs.ModelStatusTimeLimit}, nil))
	assert.Equal(t, StageLimit, classifyStatus(&highs.Solution{Status: highs.ModelStatusIterationLimit}, nil))
	assert.Equal(t, StageFailed, classifyStatus(&highs.Solution{Status: highs.ModelStatusSolveError}, nil))
}

func TestStageStatusUsable(t *testing.T) {
	assert.True(t, StageOptimal.Usable())
	assert.True(t, StageLimit.Usable())
	assert.False(t, StageInfeasible.Usable())
	assert.False(t, StageFailed.Usable())
}

func TestUpdatePrev(t *testing.T) {
	cfg := DefaultConfig()
	net := BuildNetwork(testInstance(), cfg)
	o := NewOrchestrator(net, cfg)

	vals := make([]float64, o.Model.VarCount)
	vals[o.Model.WFVar(0)] = 299.6
	vals[o.Model.EHVar(0)] = 0.0004
	vals[o.Model.ONSSVar(0)] = 120.2
	sol := &highs.Solution{ColValues: vals}

	prev := make([]float64, o.Model.VarCount)
	prev[o.Model.EHVar(0)] = 50 // stale value from an earlier stage

	o.updatePrev(prev, sol)

	assert.Equal(t, 300.0, prev[o.Model.WFVar(0)])
	assert.Equal(t, 0.0, prev[o.Model.EHVar(0)])
	assert.Equal(t, 120.0, prev[o.Model.ONSSVar(0)])
}

func TestSolveOptions(t *testing.T) {
	cfg := DefaultConfig()
	net := BuildNetwork(testInstance(), cfg)
	o := NewOrchestrator(net, cfg)

	base := len(o.solveOptions(2040))

	o.Cfg.Solver.Threads = 4
	assert.Equal(t, base+1, len(o.solveOptions(2040)))

	o.LogDir = t.TempDir()
	assert.Equal(t, base+2, len(o.solveOptions(2040)))
}

func TestStageErrors(t *testing.T) {
	var err error = &InfeasibleModelError{Year: 2030}
	assert.Contains(t, err.Error(), "2030")

	err = &SolverFailureError{Year: 2040, Status: "status 13"}
	assert.Contains(t, err.Error(), "2040")
	assert.Contains(t, err.Error(), "status 13")

	err = &InputDataError{Dataset: "wind_farm", ID: 7, Reason: "unknown country"}
	assert.Contains(t, err.Error(), "wind_farm 7")
}
