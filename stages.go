package esm

import (
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/bartolsthoorn/gohighs/highs"
)

// Orchestrator runs the staged optimization over one network. The model is
// built once; each stage rewrites the year-dependent coefficients and bounds
// and solves again, carrying the previous stage's capacities forward as
// lower bounds.
type Orchestrator struct {
	Net   *Network
	Cfg   *Config
	Model *NetworkModel

	// LogDir receives one solver log file per stage when set.
	LogDir string
}

func NewOrchestrator(net *Network, cfg *Config) *Orchestrator {
	return &Orchestrator{
		Net:   net,
		Cfg:   cfg,
		Model: BuildNetworkModel(net, cfg),
	}
}

func (o *Orchestrator) solveOptions(year int) []highs.SolveOption {
	sc := o.Cfg.Solver
	opts := []highs.SolveOption{
		highs.WithOutput(sc.Verbose),
		highs.WithTimeLimit(sc.TimeLimit),
		highs.WithMIPRelGap(sc.Gap),
		highs.WithPresolve(sc.Presolve),
		highs.WithFloatOption("primal_feasibility_tolerance", sc.FeasTol),
		highs.WithFloatOption("dual_feasibility_tolerance", sc.DualFeasTol),
	}
	if sc.Threads > 0 {
		opts = append(opts, highs.WithThreads(sc.Threads))
	}
	if sc.Nodes > 0 {
		opts = append(opts, highs.WithIntOption("mip_max_nodes", sc.Nodes))
	}
	if sc.Solutions > 0 {
		opts = append(opts, highs.WithIntOption("mip_max_improving_sols", sc.Solutions))
	}
	if o.LogDir != "" {
		name := fmt.Sprintf("r_%s_%s_%s_solverlog_%d.txt",
			o.Cfg.StageMode(), o.Cfg.ModelType, o.Cfg.CrossBorder, year)
		opts = append(opts, highs.WithStringOption("log_file", filepath.Join(o.LogDir, name)))
	}
	return opts
}

func classifyStatus(sol *highs.Solution, err error) StageStatus {
	switch {
	case err != nil:
		return StageFailed
	case sol.IsOptimal():
		return StageOptimal
	case sol.IsInfeasible():
		return StageInfeasible
	case sol.HasSolution():
		return StageLimit
	default:
		return StageFailed
	}
}

// updatePrev copies the solved capacity block into prev, rounding to whole MW
// and dropping numeric noise below the zero threshold.
func (o *Orchestrator) updatePrev(prev []float64, sol *highs.Solution) {
	for i := 0; i < o.Model.CapVarCount(); i++ {
		v := sol.Value(i)
		if v > o.Cfg.ZeroThreshold {
			prev[i] = math.Round(v)
		} else {
			prev[i] = 0
		}
	}
}

// Run executes the configured stage schedule in year order. Each usable stage
// contributes a result and raises the capacity floor for the next one. A
// failed stage either halts the run or is skipped with prev unchanged,
// depending on the failure policy.
func (o *Orchestrator) Run() ([]StageResult, []StageNote, error) {
	var results []StageResult
	var notes []StageNote

	prev := make([]float64, o.Model.VarCount)

	for _, stage := range o.Cfg.StageList() {
		fractions := o.Cfg.FractionsFor(stage.DevelopmentFraction)
		o.Model.ApplyStage(stage.Year, fractions, prev)

		Log(2, "solving stage %d (%d vars, %d rows)",
			stage.Year, o.Model.VarCount, o.Model.Model.NumConstraints())

		start := time.Now()
		sol, err := o.Model.Model.Solve(o.solveOptions(stage.Year)...)
		elapsed := time.Since(start)

		status := classifyStatus(sol, err)
		note := StageNote{Year: stage.Year, Status: status, Time: elapsed.String()}

		if !status.Usable() {
			var stageErr error
			switch status {
			case StageInfeasible:
				stageErr = &InfeasibleModelError{Year: stage.Year}
			default:
				msg := "no solution"
				if err != nil {
					msg = err.Error()
				} else if sol != nil {
					msg = fmt.Sprintf("status %d", sol.Status)
				}
				stageErr = &SolverFailureError{Year: stage.Year, Status: msg}
			}
			note.Comment = stageErr.Error()
			notes = append(notes, note)
			Log(1, "stage %d: %v", stage.Year, stageErr)

			if o.Cfg.OnStageFailure == OnFailureHalt {
				return results, notes, stageErr
			}
			continue
		}

		Log(2, "stage %d: %s, objective %.6f in %s", stage.Year, status, sol.Objective, elapsed)

		res := ExtractResults(o.Model, sol, stage.Year, prev)
		res.Status = status
		results = append(results, res)
		notes = append(notes, note)

		o.updatePrev(prev, sol)
	}

	return results, notes, nil
}
