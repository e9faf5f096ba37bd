// gridcache precomputes a rectangular Boussinesq stress field and
// writes it as a cache archive, so heavy grids can be prepared offline
// and loaded by the dashboard.
package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"Strata/internal/cache"
	"Strata/internal/stress/boussinesq"
)

func main() {
	var in boussinesq.Input
	var dir string

	flag.Float64Var(&in.QKPa, "q", 100, "surcharge q in kPa")
	flag.Float64Var(&in.LxM, "lx", 10, "load length in X, m")
	flag.Float64Var(&in.LyM, "ly", 10, "load length in Y, m")
	flag.Float64Var(&in.XminM, "xmin", -20, "domain X minimum, m")
	flag.Float64Var(&in.XmaxM, "xmax", 20, "domain X maximum, m")
	flag.Float64Var(&in.YminM, "ymin", -20, "domain Y minimum, m")
	flag.Float64Var(&in.YmaxM, "ymax", 20, "domain Y maximum, m")
	flag.Float64Var(&in.ZmaxM, "zmax", 30, "maximum depth, m")
	flag.IntVar(&in.Nx, "nx", 41, "grid points in X")
	flag.IntVar(&in.Ny, "ny", 41, "grid points in Y")
	flag.IntVar(&in.Nz, "nz", 31, "grid points in Z")
	flag.IntVar(&in.SubElems, "sub", 0, "footprint sub-elements per side (0 = automatic)")
	flag.StringVar(&dir, "dir", "./cache", "output directory")
	flag.Parse()

	res, err := boussinesq.Calculate(in)
	if err != nil {
		log.Fatalf("calculation failed: %v", err)
	}

	hash := cache.ParamsHash(in)
	path := filepath.Join(dir, "boussinesq_"+hash+".stz")
	if err := cache.Save(path, cache.Bundle(res.Field)); err != nil {
		log.Fatalf("archive write failed: %v", err)
	}

	fmt.Printf("wrote %s (hash %s, %d sub-elements per side)\n", path, hash, res.SubElems)
}
