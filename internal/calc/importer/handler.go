package importer

import (
	"encoding/json"
	"fmt"
	"net/http"

	"Strata/internal/calc/batch"
	"Strata/internal/stress/boussinesq"
	"Strata/internal/stress/memo"

	"github.com/xuri/excelize/v2"
)

type Handler struct {
	Store *memo.Store
}

type StressImportResult struct {
	Count   int                `json:"count"`
	Skipped int                `json:"skipped"`
	Results []batch.RunSummary `json:"results"`
}

// Stress accepts an uploaded workbook with one parameter set per row
// and evaluates each through the memo store. Rows that fail to parse or
// validate are skipped, matching spreadsheet-import tolerance elsewhere
// in the API.
func (h *Handler) Stress(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		http.Error(w, "Empty sheet", http.StatusBadRequest)
		return
	}

	items := batch.StressBatchInput{}
	skipped := 0
	for i := 1; i < len(rows); i++ {
		input, err := parseStressRow(rows[i])
		if err != nil {
			skipped++
			continue
		}
		items.Items = append(items.Items, input)
	}
	if len(items.Items) == 0 {
		http.Error(w, "No valid rows", http.StatusBadRequest)
		return
	}

	res, err := batch.Calculate(h.Store, items)
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(StressImportResult{
		Count:   len(res.Results),
		Skipped: skipped,
		Results: res.Results,
	})
}

// expected columns: q, lx, ly, xmin, xmax, ymin, ymax, zmax, nx, ny, nz
func parseStressRow(row []string) (boussinesq.Input, error) {
	if len(row) < 11 {
		return boussinesq.Input{}, fmt.Errorf("bad row")
	}
	vals := make([]float64, 11)
	for i := 0; i < 11; i++ {
		v, err := toFloat(row[i])
		if err != nil {
			return boussinesq.Input{}, err
		}
		vals[i] = v
	}
	return boussinesq.Input{
		QKPa:  vals[0],
		LxM:   vals[1],
		LyM:   vals[2],
		XminM: vals[3],
		XmaxM: vals[4],
		YminM: vals[5],
		YmaxM: vals[6],
		ZmaxM: vals[7],
		Nx:    int(vals[8]),
		Ny:    int(vals[9]),
		Nz:    int(vals[10]),
	}, nil
}

func toFloat(s string) (float64, error) {
	var v float64
	_, err := fmt.Sscanf(s, "%f", &v)
	return v, err
}
