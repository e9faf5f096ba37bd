package analysis

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"Strata/internal/cache"
	"Strata/internal/repo"
	"Strata/internal/stress/boussinesq"
	"Strata/internal/stress/field"
	"Strata/internal/stress/memo"

	"github.com/gorilla/mux"
)

// Handler persists and restores computed stress fields: archives go to
// disk through the cache codec, metadata (name, parameter hash, path)
// goes to the repository.
type Handler struct {
	Repo  repo.Repository
	Store *memo.Store
	Dir   string
}

type saveRequest struct {
	Name   string           `json:"name"`
	Params boussinesq.Input `json:"params"`
}

type saveResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	ParamHash   string `json:"param_hash"`
	ArchivePath string `json:"archive_path"`
}

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(int)
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	hash := cache.ParamsHash(req.Params)
	name := req.Name
	if name == "" {
		name = "boussinesq_" + hash
	}
	// The name becomes a file under Dir; a path component would let a
	// caller write outside the archive directory.
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		http.Error(w, "Invalid name", http.StatusBadRequest)
		return
	}

	res, err := h.Store.Calculate(req.Params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	path := filepath.Join(h.Dir, name+".stz")

	if err := cache.Save(path, cache.Bundle(res.Field)); err != nil {
		http.Error(w, "Cache write error", http.StatusInternalServerError)
		return
	}

	id, err := h.Repo.InsertAnalysis(r.Context(), userID, name, hash, path)
	if err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(saveResponse{ID: id, Name: name, ParamHash: hash, ArchivePath: path})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(int)
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := h.Repo.ListAnalyses(r.Context(), userID)
	if err != nil {
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

func (h *Handler) Load(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(int)
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}

	a, err := h.Repo.GetAnalysis(r.Context(), id, userID)
	if err != nil {
		http.Error(w, "Analysis not found", http.StatusNotFound)
		return
	}

	data, err := cache.Load(a.ArchivePath)
	if err != nil {
		switch {
		case errors.Is(err, cache.ErrNotFound):
			http.Error(w, "Archive missing on disk", http.StatusNotFound)
		default:
			http.Error(w, "Archive unreadable", http.StatusUnprocessableEntity)
		}
		return
	}

	f, err := cache.Unbundle(data)
	if err != nil {
		http.Error(w, "Archive unreadable", http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		Analysis repo.Analysis `json:"analysis"`
		Field    field.Field   `json:"field"`
	}{Analysis: a, Field: f})
}
