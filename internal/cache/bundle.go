package cache

import (
	"fmt"

	"Strata/internal/stress/field"
)

// Bundle packs a stress field into the archive array set.
func Bundle(f field.Field) map[string]Array {
	return map[string]Array{
		"X":     {Shape: []int{f.Nx()}, Data: f.X},
		"Y":     {Shape: []int{f.Ny()}, Data: f.Y},
		"Z":     {Shape: []int{f.Nz()}, Data: f.Z},
		"sigma": {Shape: []int{f.Nz(), f.Ny(), f.Nx()}, Data: f.Sigma},
	}
}

// Unbundle rebuilds a stress field from loaded archive arrays, checking
// that sigma's shape agrees with the axes.
func Unbundle(data map[string]Array) (field.Field, error) {
	x, y, z, sigma := data["X"], data["Y"], data["Z"], data["sigma"]
	want := []int{len(z.Data), len(y.Data), len(x.Data)}
	if len(sigma.Shape) != 3 ||
		sigma.Shape[0] != want[0] || sigma.Shape[1] != want[1] || sigma.Shape[2] != want[2] {
		return field.Field{}, fmt.Errorf("sigma shape %v does not match axes %v", sigma.Shape, want)
	}
	return field.Field{X: x.Data, Y: y.Data, Z: z.Data, Sigma: sigma.Data}, nil
}
