package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"Strata/internal/repo"
	"Strata/internal/stress/boussinesq"
	"Strata/internal/stress/memo"

	"github.com/gorilla/mux"
)

// stubRepo keeps analyses in memory; user methods are unused here.
type stubRepo struct {
	nextID   int
	analyses map[int]repo.Analysis
}

func newStubRepo() *stubRepo {
	return &stubRepo{nextID: 1, analyses: make(map[int]repo.Analysis)}
}

func (s *stubRepo) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	return 0, fmt.Errorf("not implemented")
}

func (s *stubRepo) GetByLogin(ctx context.Context, login string) (int, string, error) {
	return 0, "", fmt.Errorf("not implemented")
}

func (s *stubRepo) GetProfileByID(ctx context.Context, id int) (repo.Profile, error) {
	return repo.Profile{}, fmt.Errorf("not implemented")
}

func (s *stubRepo) UpdateProfile(ctx context.Context, id int, login, description string) error {
	return fmt.Errorf("not implemented")
}

func (s *stubRepo) UpdateAvatar(ctx context.Context, id int, avatarURL string) error {
	return fmt.Errorf("not implemented")
}

func (s *stubRepo) InsertAnalysis(ctx context.Context, userID int, name, paramHash, archivePath string) (int, error) {
	id := s.nextID
	s.nextID++
	s.analyses[id] = repo.Analysis{
		ID: id, UserID: userID, Name: name, ParamHash: paramHash, ArchivePath: archivePath,
	}
	return id, nil
}

func (s *stubRepo) ListAnalyses(ctx context.Context, userID int) ([]repo.Analysis, error) {
	var out []repo.Analysis
	for _, a := range s.analyses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubRepo) GetAnalysis(ctx context.Context, id, userID int) (repo.Analysis, error) {
	a, ok := s.analyses[id]
	if !ok || a.UserID != userID {
		return repo.Analysis{}, fmt.Errorf("no rows")
	}
	return a, nil
}

func testHandler(t *testing.T) (*Handler, *stubRepo) {
	t.Helper()
	r := newStubRepo()
	return &Handler{Repo: r, Store: memo.NewStore(), Dir: t.TempDir()}, r
}

func testParams() boussinesq.Input {
	return boussinesq.Input{
		QKPa: 100, LxM: 2, LyM: 2,
		XminM: -2, XmaxM: 2, YminM: -2, YmaxM: 2,
		ZmaxM: 3, Nx: 3, Ny: 3, Nz: 3,
	}
}

func authedRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := context.WithValue(req.Context(), "userID", 7)
	return req.WithContext(ctx)
}

func saveBody(t *testing.T, name string) string {
	t.Helper()
	b, err := json.Marshal(saveRequest{Name: name, Params: testParams()})
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestSaveWritesArchiveAndRecord(t *testing.T) {
	h, r := testHandler(t)

	w := httptest.NewRecorder()
	h.Save(w, authedRequest(http.MethodPost, "/analyses", saveBody(t, "pad_a")))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}

	var res saveResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Name != "pad_a" || len(res.ParamHash) != 8 {
		t.Errorf("response name %q hash %q", res.Name, res.ParamHash)
	}

	want := filepath.Join(h.Dir, "pad_a.stz")
	if res.ArchivePath != want {
		t.Errorf("archive path %q, want %q", res.ArchivePath, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("archive not written: %v", err)
	}
	if a, ok := r.analyses[res.ID]; !ok || a.ArchivePath != want {
		t.Errorf("record not stored: %+v", a)
	}
}

func TestSaveDefaultsNameFromHash(t *testing.T) {
	h, _ := testHandler(t)

	w := httptest.NewRecorder()
	h.Save(w, authedRequest(http.MethodPost, "/analyses", saveBody(t, "")))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}
	var res saveResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(res.Name, "boussinesq_") {
		t.Errorf("default name %q", res.Name)
	}
}

func TestSaveRejectsPathComponents(t *testing.T) {
	h, r := testHandler(t)

	for _, name := range []string{"../escape", "sub/dir", `back\slash`, ".", ".."} {
		w := httptest.NewRecorder()
		h.Save(w, authedRequest(http.MethodPost, "/analyses", saveBody(t, name)))
		if w.Code != http.StatusBadRequest {
			t.Errorf("name %q: status %d, want 400", name, w.Code)
		}
	}

	// Nothing written anywhere, Dir included and its parent especially.
	if entries, err := os.ReadDir(h.Dir); err != nil || len(entries) != 0 {
		t.Errorf("archive dir not empty after rejected saves")
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(h.Dir), "escape.stz")); !os.IsNotExist(err) {
		t.Error("archive escaped the configured directory")
	}
	if len(r.analyses) != 0 {
		t.Errorf("records stored for rejected names: %d", len(r.analyses))
	}
}

func TestSaveRejectsInvalidParams(t *testing.T) {
	h, _ := testHandler(t)

	bad := testParams()
	bad.LxM = -1
	b, _ := json.Marshal(saveRequest{Name: "bad", Params: bad})

	w := httptest.NewRecorder()
	h.Save(w, authedRequest(http.MethodPost, "/analyses", string(b)))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
}

func TestSaveUnauthorized(t *testing.T) {
	h, _ := testHandler(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/analyses", strings.NewReader(saveBody(t, "x")))
	h.Save(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", w.Code)
	}
}

func TestListReturnsOwnAnalyses(t *testing.T) {
	h, _ := testHandler(t)

	w := httptest.NewRecorder()
	h.Save(w, authedRequest(http.MethodPost, "/analyses", saveBody(t, "pad_a")))
	if w.Code != http.StatusOK {
		t.Fatalf("save status %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.List(w, authedRequest(http.MethodGet, "/analyses", ""))
	if w.Code != http.StatusOK {
		t.Fatalf("list status %d", w.Code)
	}
	var items []repo.Analysis
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Name != "pad_a" {
		t.Errorf("listed %+v, want one pad_a", items)
	}
}

func loadRequest(id string) *http.Request {
	req := authedRequest(http.MethodGet, "/analyses/"+id, "")
	return mux.SetURLVars(req, map[string]string{"id": id})
}

func TestLoadRoundTrip(t *testing.T) {
	h, _ := testHandler(t)

	w := httptest.NewRecorder()
	h.Save(w, authedRequest(http.MethodPost, "/analyses", saveBody(t, "pad_a")))
	if w.Code != http.StatusOK {
		t.Fatalf("save status %d", w.Code)
	}
	var saved saveResponse
	if err := json.Unmarshal(w.Body.Bytes(), &saved); err != nil {
		t.Fatal(err)
	}

	w = httptest.NewRecorder()
	h.Load(w, loadRequest(fmt.Sprintf("%d", saved.ID)))
	if w.Code != http.StatusOK {
		t.Fatalf("load status %d, body %s", w.Code, w.Body.String())
	}

	var res struct {
		Analysis repo.Analysis `json:"analysis"`
		Field    struct {
			X     []float64 `json:"X"`
			Sigma []float64 `json:"sigma"`
		} `json:"field"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Analysis.ID != saved.ID {
		t.Errorf("analysis id %d, want %d", res.Analysis.ID, saved.ID)
	}
	if len(res.Field.X) != 3 || len(res.Field.Sigma) != 27 {
		t.Errorf("field sizes X=%d sigma=%d, want 3/27", len(res.Field.X), len(res.Field.Sigma))
	}
}

func TestLoadUnknownID(t *testing.T) {
	h, _ := testHandler(t)

	w := httptest.NewRecorder()
	h.Load(w, loadRequest("99"))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", w.Code)
	}
}

func TestLoadMissingArchive(t *testing.T) {
	h, r := testHandler(t)

	id, err := r.InsertAnalysis(context.Background(), 7, "gone", "deadbeef",
		filepath.Join(h.Dir, "gone.stz"))
	if err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	h.Load(w, loadRequest(fmt.Sprintf("%d", id)))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404 for missing archive", w.Code)
	}
}

func TestLoadCorruptArchive(t *testing.T) {
	h, r := testHandler(t)

	path := filepath.Join(h.Dir, "bad.stz")
	if err := os.WriteFile(path, []byte("definitely not a zip"), 0644); err != nil {
		t.Fatal(err)
	}
	id, err := r.InsertAnalysis(context.Background(), 7, "bad", "deadbeef", path)
	if err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	h.Load(w, loadRequest(fmt.Sprintf("%d", id)))
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status %d, want 422 for corrupt archive", w.Code)
	}
}
