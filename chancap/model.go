// Package chancap allocates power and bandwidth across parallel Gaussian
// channels by convex optimization.
//
// Each channel i carries the rate
//
//	R_i = Alpha_i * W_i * ln(1 + Beta_i * P_i / W_i)
//
// and the package maximizes the total rate subject to the budget
// constraints sum(P) = PowerTotal and sum(W) = BandwidthTotal with
// nonnegative allocations. The numerical minimization is delegated to
// gonum.org/v1/gonum/optimize; this package only reformulates the problem
// into the smooth unconstrained form the engine accepts.
//
// # Example
//
//	model := chancap.Model{
//		Alpha:          []float64{2.0, 2.2, 2.4, 2.6, 2.8},
//		Beta:           []float64{2.0, 2.2, 2.4, 2.6, 2.8},
//		PowerTotal:     0.5,
//		BandwidthTotal: 1.0,
//	}
//
//	solution, err := model.Solve()
//	if err != nil {
//		log.Fatal(err)
//	}
//	if solution.IsOptimal() {
//		fmt.Println("Utility:", solution.Utility)
//		fmt.Println("Power:  ", solution.Power)
//	}
package chancap

// Model describes an allocation problem over parallel Gaussian channels.
//
// The model solves:
//
//	Maximize:   sum_i Alpha_i * W_i * ln(1 + Beta_i * P_i / W_i)
//	Subject to: P >= 0, W >= 0
//	And:        sum(P) = PowerTotal, sum(W) = BandwidthTotal
//
// Alpha and Beta must have equal length; their entries are the per-channel
// rate-law coefficients and are expected to be positive.
type Model struct {
	// Alpha are the per-channel rate scaling coefficients.
	Alpha []float64 `yaml:"alpha"`

	// Beta are the per-channel signal-to-noise coefficients.
	Beta []float64 `yaml:"beta"`

	// PowerTotal is the total power budget distributed across channels.
	// The zero value defaults to 1.0 at solve time.
	PowerTotal float64 `yaml:"power_total"`

	// BandwidthTotal is the total bandwidth budget distributed across
	// channels. The zero value defaults to 1.0 at solve time.
	BandwidthTotal float64 `yaml:"bandwidth_total"`
}

// AddChannel appends a channel with the given rate-law coefficients.
func (m *Model) AddChannel(alpha, beta float64) {
	m.Alpha = append(m.Alpha, alpha)
	m.Beta = append(m.Beta, beta)
}

// Channels returns the number of channels in the model.
// It returns the longer of the two coefficient vectors; a model whose
// vectors disagree in length is rejected by Solve.
func (m *Model) Channels() int {
	if len(m.Alpha) > len(m.Beta) {
		return len(m.Alpha)
	}
	return len(m.Beta)
}

// budgets returns the effective totals, substituting the 1.0 defaults
// for zero values.
func (m *Model) budgets() (power, bandwidth float64) {
	power, bandwidth = m.PowerTotal, m.BandwidthTotal
	if power == 0 {
		power = 1.0
	}
	if bandwidth == 0 {
		bandwidth = 1.0
	}
	return power, bandwidth
}
