package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/SuriChen1028/PortfolioChoice/batch"
	"github.com/SuriChen1028/PortfolioChoice/config"
	"github.com/SuriChen1028/PortfolioChoice/hjb"
	"github.com/SuriChen1028/PortfolioChoice/model"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "table":
		cmdTable(os.Args[2:])
	case "solve":
		cmdSolve(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  hjbtab table --config examples/scenarios.yaml")
	fmt.Println("  hjbtab solve --gamma 5 --alpha 0 --horizon 25 --terminal zero --out path.csv")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - table runs every scenario concurrently and prints demand slopes per run")
	fmt.Println("  - solve integrates one configuration and emits t,Sigma,K2,K0 as CSV")
}

func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return logger
}

func cmdTable(args []string) {
	fs := flag.NewFlagSet("table", flag.ExitOnError)
	cfgPath := fs.String("config", "examples/scenarios.yaml", "Path to YAML scenario file")
	verbose := fs.Bool("v", false, "Verbose logging")
	_ = fs.Parse(args)

	logger := newLogger(*verbose)
	defer logger.Sync()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load scenarios: %v\n", err)
		os.Exit(1)
	}
	runs := cfg.Runs()
	logger.Info("Solving scenarios", zap.Int("count", len(runs)))

	results := batch.Execute(runs)

	failed := false
	fmt.Printf("%-16s %-9s %10s %9s %9s %9s %11s\n",
		"label", "terminal", "horizon", "myopic", "hedging", "total", "distortion")
	for _, res := range results {
		if res.Err != nil {
			failed = true
			logger.Error("Scenario failed", zap.String("label", res.Run.Label), zap.Error(res.Err))
			fmt.Printf("%-16s %-9s %10g %s\n", res.Run.Label, res.Run.Terminal, res.Run.Horizon.T, "FAILED: "+res.Err.Error())
			continue
		}
		logger.Debug("Scenario solved",
			zap.String("label", res.Run.Label),
			zap.Float64("k2", res.K2.At(0)),
			zap.Float64("k0", res.K0.At(0)))
		fmt.Printf("%-16s %-9s %10g %9.3f %9.3f %9.3f %11.3f\n",
			res.Run.Label, res.Run.Terminal, res.Run.Horizon.T,
			res.MyopicSlope, res.HedgingSlope, res.TotalSlope, res.DistortionSlope)
	}
	if failed {
		os.Exit(1)
	}
}

func cmdSolve(args []string) {
	fs := flag.NewFlagSet("solve", flag.ExitOnError)
	sigma0 := fs.Float64("sigma0", 0.01, "Initial variance level")
	by := fs.Float64("b_y", 0.18, "Structural volatility scale")
	gamma := fs.Float64("gamma", 5, "Relative risk aversion")
	alpha := fs.Float64("alpha", 0, "Ambiguity-aversion weight")
	delta := fs.Float64("delta", 0.01, "Subjective discount rate")
	r := fs.Float64("r", 0.02, "Riskless rate")
	horizon := fs.Float64("horizon", 25, "Terminal time")
	dt := fs.Float64("dt", 0.01, "Evaluation step")
	terminal := fs.String("terminal", "zero", "Terminal condition: zero or limiting")
	out := fs.String("out", "", "Output CSV path (default stdout)")
	verbose := fs.Bool("v", false, "Verbose logging")
	_ = fs.Parse(args)

	logger := newLogger(*verbose)
	defer logger.Sync()

	scenario := config.Scenario{
		Label:    "solve",
		Sigma0:   *sigma0,
		By:       *by,
		Gamma:    *gamma,
		Alpha:    *alpha,
		Delta:    *delta,
		R:        *r,
		T:        *horizon,
		Dt:       *dt,
		Terminal: *terminal,
	}
	run, err := scenario.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	logger.Info("Solving",
		zap.Float64("horizon", run.Horizon.T),
		zap.String("terminal", run.Terminal.String()))

	k2, err := hjb.SolveQuadratic(run.Params, run.Horizon, run.Terminal)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	k0, err := hjb.SolveLinear(run.Params, run.Horizon, run.Terminal, k2)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	decay, err := model.Decay(run.Params.Sigma0, run.Params.By, run.Horizon)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	dst := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		dst = f
	}
	w := csv.NewWriter(dst)
	defer w.Flush()
	if err := w.Write([]string{"t", "Sigma", "K2", "K0"}); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	for i, t := range k2.Times {
		record := []string{
			strconv.FormatFloat(t, 'g', -1, 64),
			strconv.FormatFloat(decay.Values[i], 'g', -1, 64),
			strconv.FormatFloat(k2.Values[i], 'g', -1, 64),
			strconv.FormatFloat(k0.Values[i], 'g', -1, 64),
		}
		if err := w.Write(record); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}
}
