package boussinesq

import (
	"encoding/json"
	"errors"
	"net/http"
)

type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(input)
	if err != nil {
		var ip *InvalidParameterError
		if errors.As(err, &ip) {
			http.Error(w, ip.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

type sliceRequest struct {
	Input
	Plane string  `json:"plane"` // "xz" or "yz"
	AtM   float64 `json:"at_m"`
}

type sliceResponse struct {
	Plane    string    `json:"plane"`
	ActualM  float64   `json:"actual_m"`
	Horiz    []float64 `json:"horiz"`
	Depths   []float64 `json:"depths"`
	SigmaKPa []float64 `json:"sigma_kpa"`
}

// Slice returns a 2D stress section for contour plotting: an X-Z plane
// at a fixed Y, or a Y-Z plane at a fixed X.
func (h *Handler) Slice(w http.ResponseWriter, r *http.Request) {
	var req sliceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(req.Input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f := res.Field
	var resp sliceResponse
	switch req.Plane {
	case "yz":
		actual, plane := f.SliceYZ(req.AtM)
		resp = sliceResponse{Plane: "yz", ActualM: actual, Horiz: f.Y, Depths: f.Z, SigmaKPa: plane}
	default:
		actual, plane := f.SliceXZ(req.AtM)
		resp = sliceResponse{Plane: "xz", ActualM: actual, Horiz: f.X, Depths: f.Z, SigmaKPa: plane}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

type profileRequest struct {
	Input
	XM float64 `json:"x_m"`
	YM float64 `json:"y_m"`
}

type profileResponse struct {
	ActualXM float64   `json:"actual_x_m"`
	ActualYM float64   `json:"actual_y_m"`
	Depths   []float64 `json:"depths"`
	SigmaKPa []float64 `json:"sigma_kpa"`
}

// Profile returns sigma along depth at the grid point nearest to the
// requested plan position.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(req.Input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ax, ay, prof := res.Field.DepthProfile(req.XM, req.YM)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profileResponse{
		ActualXM: ax,
		ActualYM: ay,
		Depths:   res.Field.Z,
		SigmaKPa: prof,
	})
}

type pointRequest struct {
	Input
	XM float64 `json:"x_m"`
	YM float64 `json:"y_m"`
	ZM float64 `json:"z_m"`
}

type pointResponse struct {
	SigmaKPa float64 `json:"sigma_kpa"`
}

// Point returns the trilinearly interpolated stress at an arbitrary
// location inside the evaluation domain. Out-of-domain queries yield 0.
func (h *Handler) Point(w http.ResponseWriter, r *http.Request) {
	var req pointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(req.Input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	v := res.Field.Interpolate(req.XM, req.YM, req.ZM)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(pointResponse{SigmaKPa: v})
}
