package main

import (
	"fmt"
	"log"

	"github.com/optgo/chancap/chancap"
)

func main() {
	// Five parallel Gaussian channels with a shared power budget of 0.5
	// and a shared bandwidth budget of 1.0.
	model := chancap.Model{
		Alpha:          []float64{2.0, 2.2, 2.4, 2.6, 2.8},
		Beta:           []float64{2.0, 2.2, 2.4, 2.6, 2.8},
		PowerTotal:     0.5,
		BandwidthTotal: 1.0,
	}

	solution, err := model.Solve()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Status:", solution.Status)
	if solution.IsOptimal() {
		fmt.Printf("Total utility = %.4f\n", solution.Utility)
		for i := range solution.Power {
			fmt.Printf("channel %d: P = %.6f  W = %.6f\n",
				i, solution.Power[i], solution.Bandwidth[i])
		}
	}
}
