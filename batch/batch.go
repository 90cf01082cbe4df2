// Package batch executes independent solver runs concurrently. Runs share
// no state: each owns its parameters, decay path and coefficient paths, so
// the fan-out needs no locking and guarantees no ordering among runs beyond
// matching results to runs by index.
package batch

import (
	"sync"

	"github.com/SuriChen1028/PortfolioChoice/demand"
	"github.com/SuriChen1028/PortfolioChoice/hjb"
	"github.com/SuriChen1028/PortfolioChoice/model"
)

// Run describes one independent (parameters, horizon, terminal-condition)
// solve.
type Run struct {
	Label    string
	Params   model.Parameters
	Horizon  model.Horizon
	Terminal model.TerminalCondition
}

// Result holds the solved coefficient paths of one run together with the
// table quantities derived from the present-day quadratic coefficient. Err
// is set and the remaining fields are zero when the run failed.
type Result struct {
	Run Run

	K2 *hjb.CoefficientPath
	K0 *hjb.CoefficientPath

	MyopicSlope     float64
	HedgingSlope    float64
	TotalSlope      float64
	DistortionSlope float64

	Err error
}

// Execute solves all runs concurrently and returns the results in run
// order. Within one run the linear solve strictly follows the quadratic
// solve; across runs there is no coupling.
func Execute(runs []Run) []Result {
	results := make([]Result, len(runs))

	var wg sync.WaitGroup
	wg.Add(len(runs))
	for index := range runs {
		go func(index int) {
			defer wg.Done()
			results[index] = execute(runs[index])
		}(index)
	}
	wg.Wait()

	return results
}

func execute(run Run) Result {
	res := Result{Run: run}

	k2, err := hjb.SolveQuadratic(run.Params, run.Horizon, run.Terminal)
	if err != nil {
		res.Err = err
		return res
	}
	k0, err := hjb.SolveLinear(run.Params, run.Horizon, run.Terminal, k2)
	if err != nil {
		res.Err = err
		return res
	}

	k2Now := k2.At(0)
	res.K2 = k2
	res.K0 = k0
	res.MyopicSlope = demand.MyopicSlope(run.Params)
	res.HedgingSlope = demand.HedgingSlope(k2Now, run.Params)
	res.TotalSlope = demand.TotalSlope(k2Now, run.Params)
	res.DistortionSlope = demand.DistortionSlope(k2Now, run.Params)
	return res
}
