package bearing

import (
	"fmt"
	"math"
)

type Input struct {
	FrictionAngleDeg float64 `json:"friction_angle_deg"`
	CohesionKPa      float64 `json:"cohesion_kpa"`
	GammaKNM3        float64 `json:"gamma_kn_m3"`
	DepthM           float64 `json:"depth_m"`
	WidthM           float64 `json:"width_m"`
	LengthM          float64 `json:"length_m"`
	SafetyFactor     float64 `json:"safety_factor"`
}

type Result struct {
	Nc            float64 `json:"nc"`
	Nq            float64 `json:"nq"`
	Ng            float64 `json:"ng"`
	Sc            float64 `json:"sc"`
	Sq            float64 `json:"sq"`
	Sg            float64 `json:"sg"`
	QUltimateKPa  float64 `json:"q_ultimate_kpa"`
	QAllowableKPa float64 `json:"q_allowable_kpa"`
	Notes         string  `json:"notes"`
}

// CapacityFactors returns the Meyerhof bearing capacity factors
// Nc, Nq, Ng for a friction angle in degrees. The phi = 0 (undrained)
// case uses the exact Prandtl values.
func CapacityFactors(phiDeg float64) (nc, nq, ng float64) {
	if phiDeg == 0 {
		return 5.14, 1.0, 0.0
	}
	phi := phiDeg * math.Pi / 180
	nq = math.Exp(math.Pi*math.Tan(phi)) * math.Pow(math.Tan(math.Pi/4+phi/2), 2)
	nc = (nq - 1) / math.Tan(phi)
	ng = 2 * (nq - 1) * math.Tan(phi)
	return nc, nq, ng
}

// ShapeFactors returns the De Beer shape factors for a rectangular
// footing of width b and length l (b <= l).
func ShapeFactors(b, l, phiDeg, nc, nq float64) (sc, sq, sg float64) {
	if phiDeg == 0 {
		return 1 + 0.2*(b/l), 1.0, 1.0
	}
	phi := phiDeg * math.Pi / 180
	sc = 1 + (b/l)*(nq/nc)
	sq = 1 + (b/l)*math.Tan(phi)
	sg = 1 - 0.4*(b/l)
	return sc, sq, sg
}

func Calculate(in Input) (Result, error) {
	if in.FrictionAngleDeg < 0 || in.FrictionAngleDeg >= 60 {
		return Result{}, fmt.Errorf("invalid friction angle")
	}
	if in.CohesionKPa < 0 {
		return Result{}, fmt.Errorf("invalid cohesion")
	}
	if in.GammaKNM3 <= 0 || in.WidthM <= 0 || in.LengthM <= 0 || in.DepthM < 0 {
		return Result{}, fmt.Errorf("invalid geometry")
	}
	if in.WidthM > in.LengthM {
		return Result{}, fmt.Errorf("width must not exceed length")
	}
	if in.SafetyFactor <= 0 {
		in.SafetyFactor = 3.0
	}

	nc, nq, ng := CapacityFactors(in.FrictionAngleDeg)
	sc, sq, sg := ShapeFactors(in.WidthM, in.LengthM, in.FrictionAngleDeg, nc, nq)

	surcharge := in.GammaKNM3 * in.DepthM
	qu := in.CohesionKPa*nc*sc + surcharge*nq*sq + 0.5*in.GammaKNM3*in.WidthM*ng*sg

	return Result{
		Nc:            nc,
		Nq:            nq,
		Ng:            ng,
		Sc:            sc,
		Sq:            sq,
		Sg:            sg,
		QUltimateKPa:  qu,
		QAllowableKPa: qu / in.SafetyFactor,
		Notes:         "Terzaghi-Meyerhof general bearing equation with shape factors.",
	}, nil
}
