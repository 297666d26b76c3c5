// Command branchsim drives a branch trace through the BTB and a swappable
// direction predictor, printing cycle/hit/miss/mispredict totals.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/archsim-lab/uarchsim/branch"
	"github.com/archsim-lab/uarchsim/runconfig"
	"github.com/archsim-lab/uarchsim/trace"
)

var (
	predictorFlag = flag.String("predictor", "",
		"branch predictor: not_taken|two_bit|two_level_local|two_level_global|perceptron (overrides -config)")
	configFlag = flag.String("config", "", "path to a branch config JSON file")
)

func main() {
	flag.Parse()
	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: branchsim [-predictor KIND] [-config FILE] <trace-file>")
		os.Exit(2)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	predictor, err := branch.New(cfg.Predictor)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	engine := branch.NewEngine(branch.WithPredictor(predictor))
	stats, err := engine.Run(trace.NewBranchReader(flag.Arg(0)))
	if err != nil {
		os.Exit(exitCodeFor(err))
	}

	fmt.Printf("Cycles: %d\n", stats.Cycles)
	fmt.Printf("Acum_hit: %d\n", stats.Hits)
	fmt.Printf("Acum_miss: %d\n", stats.Misses)
	fmt.Printf("Acum_miss_pred: %d\n", stats.Mispredicts)
}

func loadConfig() (*runconfig.BranchConfig, error) {
	cfg := runconfig.DefaultBranchConfig()
	if *configFlag != "" {
		loaded, err := runconfig.LoadBranchConfig(*configFlag)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if *predictorFlag != "" {
		cfg.Predictor = branch.Kind(*predictorFlag)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// exitCodeFor maps a trace error to the process exit code the external
// interface contract specifies, printing the matching diagnostic first.
func exitCodeFor(err error) int {
	if errors.Is(err, trace.ErrOpenFile) {
		fmt.Fprintln(os.Stderr, "Could not open file.")
		return 1
	}
	var malformed *trace.MalformedLineError
	if errors.As(err, &malformed) {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	fmt.Fprintln(os.Stderr, err)
	return 2
}
