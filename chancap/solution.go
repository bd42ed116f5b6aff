package chancap

import "time"

// Status represents the terminal outcome of a solve.
type Status int

const (
	// StatusNotSet indicates the status has not been set.
	StatusNotSet Status = iota
	// StatusOptimal indicates an optimal allocation was found.
	StatusOptimal
	// StatusInfeasible indicates no feasible allocation exists.
	StatusInfeasible
	// StatusUnbounded indicates the utility is unbounded above.
	StatusUnbounded
	// StatusIterationLimit indicates the iteration limit was reached.
	StatusIterationLimit
	// StatusTimeLimit indicates the time limit was reached.
	StatusTimeLimit
	// StatusFailed indicates the solve failed, including the
	// mismatched-coefficient-vector case.
	StatusFailed
)

func (s Status) String() string {
	names := []string{
		"NotSet", "Optimal", "Infeasible", "Unbounded",
		"IterationLimit", "TimeLimit", "Failed",
	}
	if int(s) >= 0 && int(s) < len(names) {
		return names[s]
	}
	return "Unknown"
}

// IsOptimal returns true if the solve terminated at an optimum.
func (s Status) IsOptimal() bool {
	return s == StatusOptimal
}

// HasSolution returns true if the status carries usable allocation values.
// Iteration- and time-limited solves report the last iterate, which is
// feasible by construction but possibly short of the optimum.
func (s Status) HasSolution() bool {
	return s == StatusOptimal ||
		s == StatusIterationLimit ||
		s == StatusTimeLimit
}

// MarshalYAML encodes the status as its name.
func (s Status) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// Solution contains the results of solving an allocation model.
//
// On the failure paths (mismatched coefficient vectors, infeasible
// budgets) Utility is NaN and Power and Bandwidth are NaN-filled.
type Solution struct {
	// Status indicates the outcome of the solve.
	Status Status `yaml:"status"`

	// Utility is the total rate achieved by the allocation.
	Utility float64 `yaml:"utility"`

	// Power contains the per-channel power allocation.
	Power []float64 `yaml:"power"`

	// Bandwidth contains the per-channel bandwidth allocation.
	Bandwidth []float64 `yaml:"bandwidth"`

	// Iterations is the number of major iterations the engine performed.
	Iterations int `yaml:"iterations"`

	// FuncEvaluations is the number of objective evaluations.
	FuncEvaluations int `yaml:"func_evaluations"`

	// Runtime is the wall-clock time spent in the engine.
	Runtime time.Duration `yaml:"runtime"`
}

// IsOptimal returns true if the solution is optimal.
func (s *Solution) IsOptimal() bool {
	return s.Status.IsOptimal()
}

// IsInfeasible returns true if the model has no feasible allocation.
func (s *Solution) IsInfeasible() bool {
	return s.Status == StatusInfeasible
}

// IsUnbounded returns true if the utility is unbounded above.
func (s *Solution) IsUnbounded() bool {
	return s.Status == StatusUnbounded
}

// HasSolution returns true if the solution contains usable values.
func (s *Solution) HasSolution() bool {
	return s.Status.HasSolution()
}
