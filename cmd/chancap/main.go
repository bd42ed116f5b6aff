// Command chancap solves a channel allocation problem defined in a YAML
// file and prints the resulting allocation.
//
// Usage:
//
//	chancap -f problem.yaml [-max-iter 1000] [-time-limit 30s] [-v] [-yaml]
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/optgo/chancap/chancap"
)

func main() {
	var (
		file      = flag.String("f", "", "path to the YAML problem file (required)")
		maxIter   = flag.Int("max-iter", 1000, "major-iteration limit")
		timeLimit = flag.Duration("time-limit", 0, "wall-clock limit on the solve (0 = none)")
		verbose   = flag.Bool("v", false, "log engine progress")
		asYAML    = flag.Bool("yaml", false, "print the solution as YAML")
	)
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}).Level(level).With().Timestamp().Logger()

	model, err := chancap.ReadModel(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load model")
	}

	opts := []chancap.SolveOption{
		chancap.WithMaxIterations(*maxIter),
		chancap.WithLogger(log),
	}
	if *timeLimit > 0 {
		opts = append(opts, chancap.WithTimeLimit(*timeLimit))
	}

	start := time.Now()
	solution, err := model.Solve(opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("solve failed")
	}
	log.Debug().Dur("elapsed", time.Since(start)).Msg("done")

	if *asYAML {
		out, err := yaml.Marshal(solution)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot encode solution")
		}
		os.Stdout.Write(out)
	} else {
		fmt.Println("Status:", solution.Status)
		if solution.HasSolution() {
			fmt.Printf("Total utility = %.6f\n", solution.Utility)
			for i := range solution.Power {
				fmt.Printf("channel %d: P = %.9f  W = %.9f\n",
					i, solution.Power[i], solution.Bandwidth[i])
			}
		}
	}

	if !solution.IsOptimal() {
		os.Exit(1)
	}
}
