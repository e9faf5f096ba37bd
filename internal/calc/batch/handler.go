package batch

import (
	"encoding/json"
	"net/http"

	"Strata/internal/stress/memo"
)

type Handler struct {
	Store *memo.Store
}

func (h *Handler) Stress(w http.ResponseWriter, r *http.Request) {
	var input StressBatchInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(h.Store, input)
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
