package cache

import (
	"archive/zip"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Archive layout: a zip file with one entry per array. Each entry is
// little-endian binary: uint32 rank, uint32 dims..., then float64
// values in row-major order. sigma carries rank 3 (Nz, Ny, Nx); the
// axes carry rank 1.

// RequiredKeys are the arrays every stress archive must contain.
var RequiredKeys = []string{"X", "Y", "Z", "sigma"}

// ErrNotFound reports that no archive exists at the requested path,
// as opposed to an archive that exists but cannot be used.
var ErrNotFound = errors.New("cache file not found")

// CorruptError reports an archive that exists but cannot be parsed or
// lacks required arrays.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("cache file %s unusable: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

// MissingKeysError reports a save attempt lacking required arrays.
// No write is performed.
type MissingKeysError struct {
	Keys []string
}

func (e *MissingKeysError) Error() string {
	return fmt.Sprintf("missing required keys: %s", strings.Join(e.Keys, ", "))
}

// Array is a named numeric array with its shape. Data is row-major.
type Array struct {
	Shape []int
	Data  []float64
}

func missingFrom(data map[string]Array) []string {
	var missing []string
	for _, k := range RequiredKeys {
		if _, ok := data[k]; !ok {
			missing = append(missing, k)
		}
	}
	sort.Strings(missing)
	return missing
}

// Save writes the bundle as a compressed archive at path, replacing any
// existing file. The write goes through a temp file in the same
// directory and a rename, so a reader never observes a partial archive.
// All of X, Y, Z and sigma must be present; extra arrays are stored too.
func Save(path string, data map[string]Array) error {
	if missing := missingFrom(data); len(missing) > 0 {
		return &MissingKeysError{Keys: missing}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := writeArchive(tmp, data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func writeArchive(w io.Writer, data map[string]Array) error {
	zw := zip.NewWriter(w)

	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		arr := data[name]
		f, err := zw.Create(name)
		if err != nil {
			return err
		}
		if err := writeArray(f, arr); err != nil {
			return err
		}
	}
	return zw.Close()
}

func writeArray(w io.Writer, arr Array) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(arr.Shape))); err != nil {
		return err
	}
	n := 1
	for _, d := range arr.Shape {
		if err := binary.Write(w, binary.LittleEndian, uint32(d)); err != nil {
			return err
		}
		n *= d
	}
	if n != len(arr.Data) {
		return fmt.Errorf("array shape %v does not match %d values", arr.Shape, len(arr.Data))
	}
	buf := make([]byte, 8*len(arr.Data))
	for i, v := range arr.Data {
		binary.LittleEndian.PutUint64(buf[8*i:], math.Float64bits(v))
	}
	_, err := w.Write(buf)
	return err
}

// Load reads an archive produced by Save and returns its arrays. A
// missing file yields ErrNotFound; anything else wrong with the archive
// (unreadable zip, bad entry encoding, absent required arrays) yields a
// CorruptError.
func Load(path string) (map[string]Array, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	zr, err := zip.NewReader(f, fi.Size())
	if err != nil {
		return nil, &CorruptError{Path: path, Err: err}
	}

	data := make(map[string]Array, len(zr.File))
	for _, entry := range zr.File {
		arr, err := readEntry(entry)
		if err != nil {
			return nil, &CorruptError{Path: path, Err: fmt.Errorf("entry %s: %w", entry.Name, err)}
		}
		data[entry.Name] = arr
	}

	if missing := missingFrom(data); len(missing) > 0 {
		return nil, &CorruptError{Path: path, Err: &MissingKeysError{Keys: missing}}
	}
	return data, nil
}

func readEntry(entry *zip.File) (Array, error) {
	rc, err := entry.Open()
	if err != nil {
		return Array{}, err
	}
	defer rc.Close()

	var rank uint32
	if err := binary.Read(rc, binary.LittleEndian, &rank); err != nil {
		return Array{}, err
	}
	if rank == 0 || rank > 8 {
		return Array{}, fmt.Errorf("bad rank %d", rank)
	}
	shape := make([]int, rank)
	n := 1
	for i := range shape {
		var d uint32
		if err := binary.Read(rc, binary.LittleEndian, &d); err != nil {
			return Array{}, err
		}
		shape[i] = int(d)
		n *= int(d)
	}

	buf, err := io.ReadAll(rc)
	if err != nil {
		return Array{}, err
	}
	if len(buf) != 8*n {
		return Array{}, fmt.Errorf("want %d values, have %d bytes", n, len(buf))
	}
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[8*i:]))
	}
	return Array{Shape: shape, Data: data}, nil
}
