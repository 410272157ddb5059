package esm

import "fmt"

// InputDataError marks a malformed or incomplete dataset. It is fatal and
// aborts the run before any model is built.
type InputDataError struct {
	Dataset string
	ID      int
	Reason  string
}

func (e *InputDataError) Error() string {
	return fmt.Sprintf("input data: %s %d: %s", e.Dataset, e.ID, e.Reason)
}

// InfeasibleModelError reports that no assignment satisfies all constraints
// for a stage. The stage is aborted and no results are persisted for it.
type InfeasibleModelError struct {
	Year int
}

func (e *InfeasibleModelError) Error() string {
	return fmt.Sprintf("model infeasible for %d", e.Year)
}

// SolverFailureError reports a solver process or communication fault. It is
// fatal for the affected stage only.
type SolverFailureError struct {
	Year   int
	Status string
}

func (e *SolverFailureError) Error() string {
	return fmt.Sprintf("solver failed for %d: %s", e.Year, e.Status)
}
