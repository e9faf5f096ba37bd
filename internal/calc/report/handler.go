package report

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"Strata/internal/stress/boussinesq"
	"Strata/internal/stress/memo"

	"github.com/phpdave11/gofpdf"
)

type PlotRef struct {
	Type string  `json:"type"` // "xz", "yz", "profile"
	AtM  float64 `json:"at_m"`
	XM   float64 `json:"x_m"`
	YM   float64 `json:"y_m"`
}

type SamplePoint struct {
	XM float64 `json:"x_m"`
	YM float64 `json:"y_m"`
	ZM float64 `json:"z_m"`
}

type Input struct {
	Project string           `json:"project"`
	Author  string           `json:"author"`
	Title   string           `json:"title"`
	Params  boussinesq.Input `json:"params"`
	Plots   []PlotRef        `json:"plots"`
	Samples []SamplePoint    `json:"samples"`
}

type Handler struct {
	Store *memo.Store
}

// Generate renders a PDF report of a vertical stress analysis: input
// parameters, the list of requested plots, and an interpolated stress
// table for any requested sample points.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.Title == "" {
		input.Title = "Vertical Stress Analysis (Boussinesq)"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, input.Title, "", 1, "C", false, 0, "")
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", input.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", input.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	p := input.Params
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Input Parameters")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	lines := []string{
		fmt.Sprintf("Surcharge q: %g kPa", p.QKPa),
		fmt.Sprintf("Load dimensions: Lx = %g m, Ly = %g m", p.LxM, p.LyM),
		fmt.Sprintf("Domain X: [%g, %g] m", p.XminM, p.XmaxM),
		fmt.Sprintf("Domain Y: [%g, %g] m", p.YminM, p.YmaxM),
		fmt.Sprintf("Maximum depth: %g m", p.ZmaxM),
		fmt.Sprintf("Grid resolution: Nx=%d, Ny=%d, Nz=%d", p.Nx, p.Ny, p.Nz),
	}
	for _, line := range lines {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	pdf.Ln(6)

	if len(input.Plots) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Generated Plots")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		for i, plot := range input.Plots {
			pdf.Cell(0, 6, fmt.Sprintf("%d. %s", i+1, describePlot(plot)))
			pdf.Ln(6)
		}
		pdf.Ln(6)
	}

	if len(input.Samples) > 0 {
		res, err := h.Store.Calculate(p)
		if err != nil {
			http.Error(w, "Calculation error", http.StatusBadRequest)
			return
		}
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Sampled Stresses")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		for _, s := range input.Samples {
			v := res.Field.Interpolate(s.XM, s.YM, s.ZM)
			pdf.Cell(0, 6, fmt.Sprintf("x=%g m, y=%g m, z=%g m:  sigma_z = %.3f kPa", s.XM, s.YM, s.ZM, v))
			pdf.Ln(6)
		}
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"stress_report.pdf\"")
	if err := pdf.Output(w); err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}

func describePlot(p PlotRef) string {
	switch p.Type {
	case "xz":
		return fmt.Sprintf("X-Z section at Y = %.2f m", p.AtM)
	case "yz":
		return fmt.Sprintf("Y-Z section at X = %.2f m", p.AtM)
	case "profile":
		return fmt.Sprintf("Depth profile at X = %.2f m, Y = %.2f m", p.XM, p.YM)
	default:
		return p.Type
	}
}
