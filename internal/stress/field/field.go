package field

import "math"

// Field holds a computed vertical stress distribution: 1D coordinate
// axes and a flat sigma array stored row-major with shape (Nz, Ny, Nx),
// indexed sigma[iz][iy][ix] as in the cache archive layout.
type Field struct {
	X     []float64 `json:"X"`
	Y     []float64 `json:"Y"`
	Z     []float64 `json:"Z"`
	Sigma []float64 `json:"sigma"`
}

func New(x, y, z []float64) Field {
	return Field{
		X:     x,
		Y:     y,
		Z:     z,
		Sigma: make([]float64, len(z)*len(y)*len(x)),
	}
}

func (f Field) Nx() int { return len(f.X) }
func (f Field) Ny() int { return len(f.Y) }
func (f Field) Nz() int { return len(f.Z) }

func (f Field) index(iz, iy, ix int) int {
	return (iz*len(f.Y)+iy)*len(f.X) + ix
}

func (f Field) At(iz, iy, ix int) float64 {
	return f.Sigma[f.index(iz, iy, ix)]
}

func (f Field) Set(iz, iy, ix int, v float64) {
	f.Sigma[f.index(iz, iy, ix)] = v
}

// Linspace returns n evenly spaced values over [lo, hi] inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

// NearestIndex returns the index of the coordinate closest to v.
func NearestIndex(coords []float64, v float64) int {
	best := 0
	bestDist := math.Abs(coords[0] - v)
	for i, c := range coords[1:] {
		if d := math.Abs(c - v); d < bestDist {
			best = i + 1
			bestDist = d
		}
	}
	return best
}

// SliceXZ extracts the X-Z stress plane at the Y coordinate nearest to
// yVal. The returned slice has shape (Nz, Nx) flattened row-major.
func (f Field) SliceXZ(yVal float64) (actualY float64, plane []float64) {
	iy := NearestIndex(f.Y, yVal)
	plane = make([]float64, f.Nz()*f.Nx())
	for iz := 0; iz < f.Nz(); iz++ {
		for ix := 0; ix < f.Nx(); ix++ {
			plane[iz*f.Nx()+ix] = f.At(iz, iy, ix)
		}
	}
	return f.Y[iy], plane
}

// SliceYZ extracts the Y-Z stress plane at the X coordinate nearest to
// xVal, shape (Nz, Ny) flattened row-major.
func (f Field) SliceYZ(xVal float64) (actualX float64, plane []float64) {
	ix := NearestIndex(f.X, xVal)
	plane = make([]float64, f.Nz()*f.Ny())
	for iz := 0; iz < f.Nz(); iz++ {
		for iy := 0; iy < f.Ny(); iy++ {
			plane[iz*f.Ny()+iy] = f.At(iz, iy, ix)
		}
	}
	return f.X[ix], plane
}

// DepthProfile extracts sigma along Z at the grid point nearest to
// (xVal, yVal).
func (f Field) DepthProfile(xVal, yVal float64) (actualX, actualY float64, profile []float64) {
	ix := NearestIndex(f.X, xVal)
	iy := NearestIndex(f.Y, yVal)
	profile = make([]float64, f.Nz())
	for iz := 0; iz < f.Nz(); iz++ {
		profile[iz] = f.At(iz, iy, ix)
	}
	return f.X[ix], f.Y[iy], profile
}

// Interpolate returns the trilinearly interpolated stress at (x, y, z).
// Points outside the grid bounds yield 0.
func (f Field) Interpolate(x, y, z float64) float64 {
	ix, tx, ok := bracket(f.X, x)
	if !ok {
		return 0
	}
	iy, ty, ok := bracket(f.Y, y)
	if !ok {
		return 0
	}
	iz, tz, ok := bracket(f.Z, z)
	if !ok {
		return 0
	}

	c000 := f.At(iz, iy, ix)
	c100 := f.At(iz, iy, ix+1)
	c010 := f.At(iz, iy+1, ix)
	c110 := f.At(iz, iy+1, ix+1)
	c001 := f.At(iz+1, iy, ix)
	c101 := f.At(iz+1, iy, ix+1)
	c011 := f.At(iz+1, iy+1, ix)
	c111 := f.At(iz+1, iy+1, ix+1)

	c00 := c000*(1-tx) + c100*tx
	c10 := c010*(1-tx) + c110*tx
	c01 := c001*(1-tx) + c101*tx
	c11 := c011*(1-tx) + c111*tx

	c0 := c00*(1-ty) + c10*ty
	c1 := c01*(1-ty) + c11*ty

	return c0*(1-tz) + c1*tz
}

// bracket finds i such that coords[i] <= v <= coords[i+1] and the
// fractional position t within that cell. Coordinates are assumed
// strictly increasing.
func bracket(coords []float64, v float64) (i int, t float64, ok bool) {
	n := len(coords)
	if n < 2 || v < coords[0] || v > coords[n-1] {
		return 0, 0, false
	}
	for i = 0; i < n-2; i++ {
		if v <= coords[i+1] {
			break
		}
	}
	span := coords[i+1] - coords[i]
	if span > 0 {
		t = (v - coords[i]) / span
	}
	return i, t, true
}
