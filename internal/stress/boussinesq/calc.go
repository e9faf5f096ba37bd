package boussinesq

import (
	"fmt"
	"math"

	"Strata/internal/stress/field"
)

// Evaluation depths start slightly below the surface: the point-load
// solution is singular at z = 0.
const minDepth = 0.01

// Bounds on the automatic footprint discretization.
const (
	minSubElems = 4
	maxSubElems = 40
)

type Input struct {
	QKPa     float64 `json:"q_kpa"`
	LxM      float64 `json:"lx_m"`
	LyM      float64 `json:"ly_m"`
	XminM    float64 `json:"xmin_m"`
	XmaxM    float64 `json:"xmax_m"`
	YminM    float64 `json:"ymin_m"`
	YmaxM    float64 `json:"ymax_m"`
	ZmaxM    float64 `json:"zmax_m"`
	Nx       int     `json:"nx"`
	Ny       int     `json:"ny"`
	Nz       int     `json:"nz"`
	SubElems int     `json:"sub_elems,omitempty"` // 0 = automatic
}

type Result struct {
	Field    field.Field `json:"field"`
	SubElems int         `json:"sub_elems"`
	Notes    string      `json:"notes"`
}

// InvalidParameterError reports a precondition violation on a single
// input field. It is returned before any output allocation.
type InvalidParameterError struct {
	Field string
	Value float64
	Cond  string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s must be %s, got %v", e.Field, e.Cond, e.Value)
}

func invalid(name string, value float64, cond string) error {
	return &InvalidParameterError{Field: name, Value: value, Cond: cond}
}

func validate(in Input) error {
	if in.QKPa < 0 {
		return invalid("q", in.QKPa, ">= 0")
	}
	if in.LxM <= 0 {
		return invalid("Lx", in.LxM, "> 0")
	}
	if in.LyM <= 0 {
		return invalid("Ly", in.LyM, "> 0")
	}
	if in.XmaxM <= in.XminM {
		return invalid("Xmax", in.XmaxM, fmt.Sprintf("> Xmin (%v)", in.XminM))
	}
	if in.YmaxM <= in.YminM {
		return invalid("Ymax", in.YmaxM, fmt.Sprintf("> Ymin (%v)", in.YminM))
	}
	if in.ZmaxM <= 0 {
		return invalid("Zmax", in.ZmaxM, "> 0")
	}
	if in.Nx < 2 {
		return invalid("Nx", float64(in.Nx), ">= 2")
	}
	if in.Ny < 2 {
		return invalid("Ny", float64(in.Ny), ">= 2")
	}
	if in.Nz < 2 {
		return invalid("Nz", float64(in.Nz), ">= 2")
	}
	return nil
}

// subElemCount couples footprint discretization to evaluation-grid
// density, capped for cost. Finer grids resolve the load with more
// sub-elements up to the cap.
func subElemCount(nx, ny int) int {
	m := nx
	if ny > m {
		m = ny
	}
	if m < minSubElems {
		m = minSubElems
	}
	if m > maxSubElems {
		m = maxSubElems
	}
	return m
}

// Calculate evaluates the vertical stress field under a uniform
// rectangular surface load centered at the origin, by superposing
// Boussinesq point-load contributions from a discretized footprint:
//
//	sigma_z = sum 3*dP*z^3 / (2*pi*R^5), R = sqrt(dx^2+dy^2+z^2)
//
// The result axes are X (Nx points over [Xmin,Xmax]), Y (Ny over
// [Ymin,Ymax]) and Z (Nz over [0.01, Zmax]); sigma has shape
// (Nz, Ny, Nx). Pure function: no I/O, no retained state.
func Calculate(in Input) (Result, error) {
	if err := validate(in); err != nil {
		return Result{}, err
	}

	xs := field.Linspace(in.XminM, in.XmaxM, in.Nx)
	ys := field.Linspace(in.YminM, in.YmaxM, in.Ny)
	zs := field.Linspace(minDepth, in.ZmaxM, in.Nz)

	m := in.SubElems
	if m <= 0 {
		m = subElemCount(in.Nx, in.Ny)
	}
	mx, my := m, m

	// Footprint sub-element centers: midpoints of mx equal strips in X
	// and my in Y, load centered at the origin.
	dx := in.LxM / float64(mx)
	dy := in.LyM / float64(my)
	dP := in.QKPa * dx * dy

	xc := make([]float64, mx)
	for i := range xc {
		xc[i] = -in.LxM/2 + (float64(i)+0.5)*dx
	}
	yc := make([]float64, my)
	for j := range yc {
		yc[j] = -in.LyM/2 + (float64(j)+0.5)*dy
	}

	f := field.New(xs, ys, zs)

	// Each evaluation point accumulates independently; summation order
	// over sub-elements is not significant.
	for iz, z := range zs {
		z3 := z * z * z
		coeff := 3 * dP * z3 / (2 * math.Pi)
		for iy, y := range ys {
			for ix, x := range xs {
				var sum float64
				for _, cx := range xc {
					ddx := x - cx
					for _, cy := range yc {
						ddy := y - cy
						r2 := ddx*ddx + ddy*ddy + z*z
						r := math.Sqrt(r2)
						if r <= 1e-10 {
							continue
						}
						sum += coeff / (r2 * r2 * r)
					}
				}
				f.Set(iz, iy, ix, sum)
			}
		}
	}

	return Result{
		Field:    f,
		SubElems: m,
		Notes:    "Boussinesq superposition, load centered at origin, depth positive downward.",
	}, nil
}
