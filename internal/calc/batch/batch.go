package batch

import (
	"fmt"

	"Strata/internal/stress/boussinesq"
	"Strata/internal/stress/memo"
)

type StressBatchInput struct {
	Items []boussinesq.Input `json:"items"`
}

type RunSummary struct {
	Nx            int       `json:"nx"`
	Ny            int       `json:"ny"`
	Nz            int       `json:"nz"`
	PeakKPa       float64   `json:"peak_kpa"`
	CenterProfile []float64 `json:"center_profile_kpa"`
	DepthsM       []float64 `json:"depths_m"`
}

type StressBatchResult struct {
	Results []RunSummary `json:"results"`
}

// Calculate evaluates every parameter set in order, summarising each
// field instead of shipping full 3D arrays. Runs go through the shared
// memo store so repeated parameter sets in one batch compute once.
func Calculate(store *memo.Store, in StressBatchInput) (StressBatchResult, error) {
	if len(in.Items) == 0 {
		return StressBatchResult{}, fmt.Errorf("no items")
	}
	out := StressBatchResult{Results: make([]RunSummary, 0, len(in.Items))}
	for _, item := range in.Items {
		res, err := store.Calculate(item)
		if err != nil {
			return StressBatchResult{}, err
		}
		out.Results = append(out.Results, summarise(res))
	}
	return out, nil
}

func summarise(res boussinesq.Result) RunSummary {
	f := res.Field
	peak := 0.0
	for _, v := range f.Sigma {
		if v > peak {
			peak = v
		}
	}
	_, _, profile := f.DepthProfile(0, 0)
	return RunSummary{
		Nx:            f.Nx(),
		Ny:            f.Ny(),
		Nz:            f.Nz(),
		PeakKPa:       peak,
		CenterProfile: profile,
		DepthsM:       f.Z,
	}
}
