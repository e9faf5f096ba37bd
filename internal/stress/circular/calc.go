package circular

import (
	"fmt"
	"math"
)

// Polar discretization of the loaded disc for off-axis evaluation,
// matching the cap used by the rectangular evaluator.
const (
	nRings   = 40
	nSectors = 40
)

type Input struct {
	QKPa     float64   `json:"q_kpa"`
	RadiusM  float64   `json:"radius_m"`
	XCenterM float64   `json:"x_center_m"`
	YCenterM float64   `json:"y_center_m"`
	DepthsM  []float64 `json:"depths_m"`
}

type Result struct {
	DepthsM  []float64 `json:"depths_m"`
	SigmaKPa []float64 `json:"sigma_kpa"`
	OffsetM  float64   `json:"offset_m"`
	Notes    string    `json:"notes"`
}

// InvalidParameterError reports a precondition violation on a single
// input field.
type InvalidParameterError struct {
	Field string
	Value float64
	Cond  string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s must be %s, got %v", e.Field, e.Cond, e.Value)
}

// Calculate evaluates vertical stress under a uniform circular surface
// load along a vertical line at a lateral offset r from the load axis.
// On the axis the closed-form axisymmetric solution is used:
//
//	sigma_z = q * (1 - (1 / (1 + (a/z)^2))^(3/2))
//
// Off the axis the disc is discretized into rings and sectors and
// point-load contributions are superposed, the same scheme the
// rectangular evaluator uses. Depths must all be strictly positive.
func Calculate(in Input) (Result, error) {
	if in.QKPa < 0 {
		return Result{}, &InvalidParameterError{Field: "q", Value: in.QKPa, Cond: ">= 0"}
	}
	if in.RadiusM <= 0 {
		return Result{}, &InvalidParameterError{Field: "radius", Value: in.RadiusM, Cond: "> 0"}
	}
	if len(in.DepthsM) == 0 {
		return Result{}, &InvalidParameterError{Field: "depths", Value: 0, Cond: "non-empty"}
	}
	for _, z := range in.DepthsM {
		if z <= 0 {
			return Result{}, &InvalidParameterError{Field: "depth", Value: z, Cond: "> 0"}
		}
	}

	offset := math.Hypot(in.XCenterM, in.YCenterM)
	sigma := make([]float64, len(in.DepthsM))

	if offset < 1e-12 {
		for i, z := range in.DepthsM {
			ratio := in.RadiusM / z
			sigma[i] = in.QKPa * (1 - math.Pow(1/(1+ratio*ratio), 1.5))
		}
	} else {
		for i, z := range in.DepthsM {
			sigma[i] = offAxis(in.QKPa, in.RadiusM, offset, z)
		}
	}

	return Result{
		DepthsM:  in.DepthsM,
		SigmaKPa: sigma,
		OffsetM:  offset,
		Notes:    "Axisymmetric Boussinesq solution for a uniform circular load.",
	}, nil
}

// offAxis superposes point-load kernels over a polar discretization of
// the disc. Ring radii and sector angles are cell midpoints so each
// sub-element carries dP = q * rho * dRho * dTheta.
func offAxis(q, radius, offset, z float64) float64 {
	dRho := radius / nRings
	dTheta := 2 * math.Pi / nSectors
	z3 := z * z * z

	var sum float64
	for i := 0; i < nRings; i++ {
		rho := (float64(i) + 0.5) * dRho
		dP := q * rho * dRho * dTheta
		coeff := 3 * dP * z3 / (2 * math.Pi)
		for j := 0; j < nSectors; j++ {
			theta := (float64(j) + 0.5) * dTheta
			dx := offset - rho*math.Cos(theta)
			dy := rho * math.Sin(theta)
			r2 := dx*dx + dy*dy + z*z
			r := math.Sqrt(r2)
			if r <= 1e-10 {
				continue
			}
			sum += coeff / (r2 * r2 * r)
		}
	}
	return sum
}
