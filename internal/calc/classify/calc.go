package classify

import "fmt"

type Input struct {
	GravelPct float64 `json:"gravel_pct"`
	SandPct   float64 `json:"sand_pct"`
	FinesPct  float64 `json:"fines_pct"`
	Cu        float64 `json:"cu"`
	Cz        float64 `json:"cz"`
	LL        float64 `json:"ll"`
	PI        float64 `json:"pi"`
}

type Result struct {
	Symbol      string `json:"symbol"`
	Description string `json:"description"`
	Notes       string `json:"notes"`
}

// Calculate classifies a soil under the Unified Soil Classification
// System from its gradation and Atterberg limits.
func Calculate(in Input) (Result, error) {
	total := in.GravelPct + in.SandPct + in.FinesPct
	if total < 99 || total > 101 {
		return Result{}, fmt.Errorf("fractions must sum to 100, got %v", total)
	}
	if in.GravelPct < 0 || in.SandPct < 0 || in.FinesPct < 0 {
		return Result{}, fmt.Errorf("negative fraction")
	}
	if in.LL < 0 || in.PI < 0 {
		return Result{}, fmt.Errorf("invalid atterberg limits")
	}

	symbol, desc := classify(in)
	return Result{
		Symbol:      symbol,
		Description: desc,
		Notes:       "USCS classification from gradation and plasticity.",
	}, nil
}

func classify(in Input) (string, string) {
	if in.FinesPct >= 50 {
		return fineGrained(in)
	}
	if in.GravelPct > in.SandPct {
		return coarse(in, "G", "gravel", in.Cu >= 4)
	}
	return coarse(in, "S", "sand", in.Cu >= 6)
}

func coarse(in Input, prefix, name string, wellGradedCu bool) (string, string) {
	switch {
	case in.FinesPct < 5:
		if wellGradedCu && in.Cz >= 1 && in.Cz <= 3 {
			return prefix + "W", "well-graded " + name
		}
		return prefix + "P", "poorly graded " + name
	case in.FinesPct <= 12:
		return prefix + "W-" + prefix + "C/" + prefix + "M", "well-graded " + name + " with fines"
	default:
		if in.PI > 7 && in.LL < 50 {
			return prefix + "C", "clayey " + name
		}
		return prefix + "M", "silty " + name
	}
}

func fineGrained(in Input) (string, string) {
	if in.LL < 50 {
		switch {
		case in.PI > 7:
			return "CL", "low-plasticity clay"
		case in.PI < 4:
			return "ML", "low-plasticity silt"
		default:
			return "CL-ML", "clayey silt"
		}
	}
	// A-line check for high-plasticity soils
	if in.PI > 0.73*(in.LL-20) {
		return "CH", "high-plasticity clay"
	}
	return "MH", "high-plasticity silt"
}
