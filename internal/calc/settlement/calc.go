package settlement

import (
	"fmt"
	"math"
)

type ConsolidationInput struct {
	Cc            float64 `json:"cc"`
	Cr            float64 `json:"cr"`
	VoidRatio0    float64 `json:"void_ratio_0"`
	ThicknessM    float64 `json:"thickness_m"`
	Sigma0KPa     float64 `json:"sigma_0_kpa"`
	PreconsolKPa  float64 `json:"preconsol_kpa"`
	DeltaSigmaKPa float64 `json:"delta_sigma_kpa"`
}

type ConsolidationResult struct {
	SettlementM float64 `json:"settlement_m"`
	Regime      string  `json:"regime"`
	Notes       string  `json:"notes"`
}

// Consolidation computes primary consolidation settlement of a clay
// layer from the log-pressure compressibility relations, branching on
// where the final stress lands relative to the preconsolidation
// pressure. Magnitude only, no time rate.
func Consolidation(in ConsolidationInput) (ConsolidationResult, error) {
	if in.Cc < 0 || in.Cr < 0 {
		return ConsolidationResult{}, fmt.Errorf("invalid compression index")
	}
	if in.VoidRatio0 <= 0 {
		return ConsolidationResult{}, fmt.Errorf("invalid initial void ratio")
	}
	if in.ThicknessM <= 0 {
		return ConsolidationResult{}, fmt.Errorf("invalid layer thickness")
	}
	if in.Sigma0KPa <= 0 || in.PreconsolKPa <= 0 {
		return ConsolidationResult{}, fmt.Errorf("invalid stress state")
	}
	if in.DeltaSigmaKPa < 0 {
		return ConsolidationResult{}, fmt.Errorf("invalid stress increment")
	}

	sigmaF := in.Sigma0KPa + in.DeltaSigmaKPa
	h := in.ThicknessM / (1 + in.VoidRatio0)

	var s float64
	var regime string
	switch {
	case sigmaF <= in.PreconsolKPa:
		s = in.Cr * h * math.Log10(sigmaF/in.Sigma0KPa)
		regime = "recompression"
	case in.Sigma0KPa < in.PreconsolKPa:
		s = in.Cr*h*math.Log10(in.PreconsolKPa/in.Sigma0KPa) +
			in.Cc*h*math.Log10(sigmaF/in.PreconsolKPa)
		regime = "overconsolidated"
	default:
		s = in.Cc * h * math.Log10(sigmaF/in.Sigma0KPa)
		regime = "normally consolidated"
	}

	return ConsolidationResult{
		SettlementM: s,
		Regime:      regime,
		Notes:       "Primary consolidation from log-pressure compressibility.",
	}, nil
}

type ElasticInput struct {
	LoadKPa     float64 `json:"load_kpa"`
	WidthM      float64 `json:"width_m"`
	ModulusKPa  float64 `json:"modulus_kpa"`
	Poisson     float64 `json:"poisson"`
	ShapeFactor float64 `json:"shape_factor"`
}

type ElasticResult struct {
	SettlementM float64 `json:"settlement_m"`
	Notes       string  `json:"notes"`
}

// Elastic computes immediate settlement of a flexible loaded area on an
// elastic half-space.
func Elastic(in ElasticInput) (ElasticResult, error) {
	if in.LoadKPa < 0 {
		return ElasticResult{}, fmt.Errorf("invalid load")
	}
	if in.WidthM <= 0 || in.ModulusKPa <= 0 {
		return ElasticResult{}, fmt.Errorf("invalid geometry or modulus")
	}
	if in.Poisson < 0 || in.Poisson >= 0.5 {
		return ElasticResult{}, fmt.Errorf("invalid poisson ratio")
	}
	if in.ShapeFactor <= 0 {
		in.ShapeFactor = 1.0
	}

	s := in.LoadKPa * in.WidthM * (1 - in.Poisson*in.Poisson) * in.ShapeFactor / in.ModulusKPa
	return ElasticResult{
		SettlementM: s,
		Notes:       "Immediate settlement, elastic half-space.",
	}, nil
}
