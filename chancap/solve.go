package chancap

import (
	"math"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
)

// wFloor keeps the bandwidth used inside the objective strictly positive
// when a softmax entry underflows. Iterates stay far above this in
// practice; the floor only protects the log terms.
const wFloor = 1e-300

// Solve maximizes the total rate over all feasible allocations and
// returns the resulting solution.
//
// The engine is gonum's LBFGS minimizer. The budget and nonnegativity
// constraints are eliminated before the engine sees the problem: the
// allocations are parametrized as P = PowerTotal*softmax(u) and
// W = BandwidthTotal*softmax(v), so every iterate is feasible and the
// engine minimizes a smooth unconstrained objective in (u, v). The
// objective itself is the divergence form
//
//	sum_i klDiv(Alpha_i*W_i, Alpha_i*(W_i + Beta_i*P_i)) - Alpha_i*Beta_i*P_i
//
// whose value is the negated total rate.
//
// Mismatched coefficient vectors do not return an error: the solution
// carries StatusFailed with NaN utility and NaN-filled allocation
// vectors. Likewise negative budgets (or an empty model) yield
// StatusInfeasible with NaN values. An error is returned only for
// invalid solve options.
func (m *Model) Solve(opts ...SolveOption) (*Solution, error) {
	cfg := defaultSolveConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	n := m.Channels()
	if len(m.Alpha) != len(m.Beta) {
		if cfg.logger != nil {
			cfg.logger.Error().
				Int("alpha", len(m.Alpha)).
				Int("beta", len(m.Beta)).
				Msg("coefficient vectors differ in length")
		}
		return sentinelSolution(StatusFailed, n), nil
	}

	power, bandwidth := m.budgets()
	if n == 0 || power < 0 || bandwidth < 0 {
		return sentinelSolution(StatusInfeasible, n), nil
	}

	x0, err := cfg.initialPoint(n, power, bandwidth)
	if err != nil {
		return nil, err
	}

	obj := &objective{
		alpha:          m.Alpha,
		beta:           m.Beta,
		powerTotal:     power,
		bandwidthTotal: bandwidth,
	}
	problem := optimize.Problem{
		Func: obj.value,
		Grad: obj.gradient,
	}

	settings := &optimize.Settings{
		GradientThreshold: cfg.gradTolerance,
		MajorIterations:   cfg.maxIterations,
		Runtime:           cfg.timeLimit,
		Converger: &optimize.FunctionConverge{
			Absolute:   cfg.funcTolerance,
			Iterations: 50,
		},
	}
	if cfg.logger != nil {
		settings.Recorder = &progressLogger{log: *cfg.logger}
	}

	result, solveErr := optimize.Minimize(problem, x0, settings, &optimize.LBFGS{})
	if result == nil {
		return sentinelSolution(StatusFailed, n), nil
	}

	status := mapStatus(result.Status)
	if solveErr != nil && !status.HasSolution() {
		// A linesearch breakdown at the limits of floating point still
		// counts as converged when the gradient is at tolerance.
		if infNorm(result.Gradient) <= 10*cfg.gradTolerance {
			status = StatusOptimal
		} else {
			status = StatusFailed
		}
	}

	sol := &Solution{
		Status:          status,
		Utility:         -result.F,
		Power:           make([]float64, n),
		Bandwidth:       make([]float64, n),
		Iterations:      result.MajorIterations,
		FuncEvaluations: result.FuncEvaluations,
		Runtime:         result.Runtime,
	}
	softmax(sol.Power, result.X[:n])
	softmax(sol.Bandwidth, result.X[n:])
	floats.Scale(power, sol.Power)
	floats.Scale(bandwidth, sol.Bandwidth)

	if cfg.logger != nil {
		cfg.logger.Debug().
			Stringer("status", status).
			Float64("utility", sol.Utility).
			Int("iterations", sol.Iterations).
			Dur("runtime", sol.Runtime).
			Msg("solve finished")
	}
	return sol, nil
}

// objective evaluates the divergence form of the negated total rate and
// its gradient in the softmax coordinates.
type objective struct {
	alpha          []float64
	beta           []float64
	powerTotal     float64
	bandwidthTotal float64
}

func (o *objective) value(x []float64) float64 {
	n := len(o.alpha)
	su := make([]float64, n)
	sv := make([]float64, n)
	softmax(su, x[:n])
	softmax(sv, x[n:])

	f := 0.0
	for i := 0; i < n; i++ {
		p := o.powerTotal * su[i]
		w := o.bandwidthTotal * sv[i]
		if w < wFloor {
			w = wFloor
		}
		f += klDiv(o.alpha[i]*w, o.alpha[i]*(w+o.beta[i]*p)) - o.alpha[i]*o.beta[i]*p
	}
	return f
}

func (o *objective) gradient(grad, x []float64) {
	n := len(o.alpha)
	su := make([]float64, n)
	sv := make([]float64, n)
	softmax(su, x[:n])
	softmax(sv, x[n:])

	// Per-channel rate derivatives with respect to P_i and W_i, then the
	// softmax chain rule: d(-U)/du_i = -P_i*(gP_i - sum_k s_k*gP_k).
	gP := make([]float64, n)
	gW := make([]float64, n)
	var gpMean, gwMean float64
	for i := 0; i < n; i++ {
		p := o.powerTotal * su[i]
		w := o.bandwidthTotal * sv[i]
		if w < wFloor {
			w = wFloor
		}
		t := o.beta[i] * p / w
		gP[i] = o.alpha[i] * o.beta[i] / (1 + t)
		gW[i] = o.alpha[i] * (math.Log1p(t) - t/(1+t))
		gpMean += su[i] * gP[i]
		gwMean += sv[i] * gW[i]
	}
	for i := 0; i < n; i++ {
		grad[i] = -o.powerTotal * su[i] * (gP[i] - gpMean)
		grad[n+i] = -o.bandwidthTotal * sv[i] * (gW[i] - gwMean)
	}
}

// mapStatus translates the engine's terminal status onto the package
// Status enum.
func mapStatus(s optimize.Status) Status {
	switch s {
	case optimize.Success,
		optimize.FunctionThreshold,
		optimize.FunctionConvergence,
		optimize.GradientThreshold,
		optimize.StepConvergence,
		optimize.MethodConverge:
		return StatusOptimal
	case optimize.FunctionNegativeInfinity:
		return StatusUnbounded
	case optimize.IterationLimit,
		optimize.FunctionEvaluationLimit,
		optimize.GradientEvaluationLimit:
		return StatusIterationLimit
	case optimize.RuntimeLimit:
		return StatusTimeLimit
	default:
		return StatusFailed
	}
}

// sentinelSolution builds the in-band failure value: the requested
// status with NaN utility and NaN-filled allocation vectors.
func sentinelSolution(status Status, n int) *Solution {
	return &Solution{
		Status:    status,
		Utility:   math.NaN(),
		Power:     nanSlice(n),
		Bandwidth: nanSlice(n),
	}
}

func infNorm(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return floats.Norm(v, math.Inf(1))
}

// progressLogger records engine progress through the optimize.Recorder
// interface, logging one line per major iteration.
type progressLogger struct {
	log zerolog.Logger
}

func (r *progressLogger) Init() error { return nil }

func (r *progressLogger) Record(loc *optimize.Location, op optimize.Operation, stats *optimize.Stats) error {
	if op != optimize.MajorIteration {
		return nil
	}
	r.log.Debug().
		Int("iteration", stats.MajorIterations).
		Float64("objective", loc.F).
		Float64("grad_norm", infNorm(loc.Gradient)).
		Msg("major iteration")
	return nil
}

// SolveOption configures the solve.
type SolveOption func(*solveConfig)

type solveConfig struct {
	maxIterations  int
	gradTolerance  float64
	funcTolerance  float64
	timeLimit      time.Duration
	logger         *zerolog.Logger
	startPower     []float64
	startBandwidth []float64
}

func defaultSolveConfig() *solveConfig {
	return &solveConfig{
		maxIterations: 1000,
		gradTolerance: 1e-10,
		funcTolerance: 1e-12,
	}
}

// initialPoint builds the starting point in softmax coordinates, either
// the uniform allocation or the user-supplied warm start.
func (c *solveConfig) initialPoint(n int, power, bandwidth float64) ([]float64, error) {
	x0 := make([]float64, 2*n)
	if c.startPower == nil && c.startBandwidth == nil {
		return x0, nil
	}
	if len(c.startPower) != n || len(c.startBandwidth) != n {
		return nil, newErrorMsg("Solve", "warm start length does not match channel count")
	}
	for i := 0; i < n; i++ {
		if c.startPower[i] <= 0 || c.startBandwidth[i] <= 0 {
			return nil, newErrorMsg("Solve", "warm start allocations must be positive")
		}
		x0[i] = math.Log(c.startPower[i] / power)
		x0[n+i] = math.Log(c.startBandwidth[i] / bandwidth)
	}
	return x0, nil
}

// WithMaxIterations sets the major-iteration limit.
func WithMaxIterations(n int) SolveOption {
	return func(c *solveConfig) {
		c.maxIterations = n
	}
}

// WithGradientTolerance sets the infinity-norm gradient threshold at
// which the solve is declared optimal.
func WithGradientTolerance(tol float64) SolveOption {
	return func(c *solveConfig) {
		c.gradTolerance = tol
	}
}

// WithFunctionTolerance sets the absolute objective-change threshold
// used by the engine's function converger.
func WithFunctionTolerance(tol float64) SolveOption {
	return func(c *solveConfig) {
		c.funcTolerance = tol
	}
}

// WithTimeLimit sets a wall-clock limit on the solve.
func WithTimeLimit(d time.Duration) SolveOption {
	return func(c *solveConfig) {
		c.timeLimit = d
	}
}

// WithLogger enables debug logging of engine progress and the solve
// outcome.
func WithLogger(log zerolog.Logger) SolveOption {
	return func(c *solveConfig) {
		c.logger = &log
	}
}

// WithStart supplies a warm-start allocation. Both vectors must match
// the channel count and be strictly positive; they are rescaled onto
// the budget simplices before use.
func WithStart(power, bandwidth []float64) SolveOption {
	return func(c *solveConfig) {
		c.startPower = power
		c.startBandwidth = bandwidth
	}
}
