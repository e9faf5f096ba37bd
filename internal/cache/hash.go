package cache

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	"Strata/internal/stress/boussinesq"
)

// ParamsHash names a cache entry from the full parameter tuple:
// md5 of the underscore-joined values, first 8 hex characters.
// Identical parameter sets always map to the same name.
func ParamsHash(in boussinesq.Input) string {
	parts := []string{
		formatNum(in.QKPa),
		formatNum(in.LxM),
		formatNum(in.LyM),
		formatNum(in.XminM),
		formatNum(in.XmaxM),
		formatNum(in.YminM),
		formatNum(in.YmaxM),
		formatNum(in.ZmaxM),
		fmt.Sprintf("%d", in.Nx),
		fmt.Sprintf("%d", in.Ny),
		fmt.Sprintf("%d", in.Nz),
	}
	sum := md5.Sum([]byte(strings.Join(parts, "_")))
	return hex.EncodeToString(sum[:])[:8]
}

func formatNum(v float64) string {
	return fmt.Sprintf("%g", v)
}
