package palette

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/garth74/jcc/convert"
)

// ErrTableNotBuilt reports that a palette's lookup table is not in the
// cache and lazy building was not requested.
var ErrTableNotBuilt = errors.New("palette: lookup table has not been built")

// Store caches built artifacts on disk: the palette-independent Lab
// array for the full RGB cube, and one lookup table per palette keyed
// by the palette's name and content fingerprint. Artifacts are
// zstd-compressed little-endian dumps, written to a temporary file and
// renamed so a failed build never leaves a partial cache entry.
type Store struct {
	dir     string
	workers int

	mu   sync.Mutex
	labs []convert.Lab
}

// NewStore returns a store rooted at dir. workers bounds the
// goroutines used for builds; 0 means one per CPU.
func NewStore(dir string, workers int) *Store {
	return &Store{dir: dir, workers: workers}
}

// Dir returns the cache directory.
func (s *Store) Dir() string { return s.dir }

// Table returns the lookup table for p, loading it from the cache or
// building and persisting it on first use.
func (s *Store) Table(p *Palette) (Table, error) {
	t, err := s.CachedTable(p)
	if err == nil || !errors.Is(err, ErrTableNotBuilt) {
		return t, err
	}
	labs, err := s.Labs()
	if err != nil {
		return nil, err
	}
	t, err = BuildTable(p, labs, s.workers)
	if err != nil {
		return nil, err
	}
	if err := s.saveTable(p, t); err != nil {
		return nil, err
	}
	return t, nil
}

// CachedTable returns the lookup table for p only if it has already
// been built and cached; otherwise it fails with ErrTableNotBuilt.
func (s *Store) CachedTable(p *Palette) (Table, error) {
	path := s.tablePath(p)
	raw, err := readCompressed(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w for palette %q: run a build first", ErrTableNotBuilt, p.Name())
	}
	if err != nil {
		return nil, err
	}
	t, err := decodeTable(raw)
	if err != nil {
		return nil, fmt.Errorf("palette: cache file %s: %w", path, err)
	}
	return t, nil
}

// Labs returns the Lab array for the full RGB cube, computing and
// caching it on first use. The array is shared across palettes and
// retained in memory for the life of the store.
func (s *Store) Labs() ([]convert.Lab, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.labs != nil {
		return s.labs, nil
	}
	path := filepath.Join(s.dir, "lab.f64.zst")
	raw, err := readCompressed(path)
	if err == nil {
		labs, derr := decodeLabs(raw)
		if derr != nil {
			return nil, fmt.Errorf("palette: cache file %s: %w", path, derr)
		}
		s.labs = labs
		return labs, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}
	labs := AllLabs(s.workers)
	if err := writeAtomic(path, func(w io.Writer) error {
		return encodeLabs(w, labs)
	}); err != nil {
		return nil, err
	}
	s.labs = labs
	return labs, nil
}

func (s *Store) saveTable(p *Palette, t Table) error {
	return writeAtomic(s.tablePath(p), func(w io.Writer) error {
		return encodeTable(w, t)
	})
}

// tablePath keys the cache file on both name and content fingerprint;
// editing a palette's colors changes the path instead of serving a
// stale table.
func (s *Store) tablePath(p *Palette) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s-%s.lut.zst", p.Name(), p.Fingerprint()))
}

// writeAtomic writes a compressed artifact to a temporary file in the
// target directory and renames it into place, so readers only ever see
// complete files.
func writeAtomic(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".jcc-tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	enc, err := zstd.NewWriter(tmp, zstd.WithEncoderConcurrency(1))
	if err != nil {
		tmp.Close()
		return err
	}
	if err := write(enc); err != nil {
		enc.Close()
		tmp.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func readCompressed(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dec, err := zstd.NewReader(f, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return io.ReadAll(dec)
}

func encodeTable(w io.Writer, t Table) error {
	buf := make([]byte, 64*1024)
	for off := 0; off < len(t); {
		n := len(buf) / 2
		if rem := len(t) - off; rem < n {
			n = rem
		}
		for i := 0; i < n; i++ {
			binary.LittleEndian.PutUint16(buf[2*i:], t[off+i])
		}
		if _, err := w.Write(buf[:2*n]); err != nil {
			return err
		}
		off += n
	}
	return nil
}

func decodeTable(raw []byte) (Table, error) {
	if len(raw) != 2*TableSize {
		return nil, fmt.Errorf("lookup table dump is %d bytes, want %d", len(raw), 2*TableSize)
	}
	t := make(Table, TableSize)
	for i := range t {
		t[i] = binary.LittleEndian.Uint16(raw[2*i:])
	}
	return t, nil
}

func encodeLabs(w io.Writer, labs []convert.Lab) error {
	buf := make([]byte, 24*4096)
	for off := 0; off < len(labs); {
		n := len(buf) / 24
		if rem := len(labs) - off; rem < n {
			n = rem
		}
		for i := 0; i < n; i++ {
			l := labs[off+i]
			binary.LittleEndian.PutUint64(buf[24*i:], math.Float64bits(l.L))
			binary.LittleEndian.PutUint64(buf[24*i+8:], math.Float64bits(l.A))
			binary.LittleEndian.PutUint64(buf[24*i+16:], math.Float64bits(l.B))
		}
		if _, err := w.Write(buf[:24*n]); err != nil {
			return err
		}
		off += n
	}
	return nil
}

func decodeLabs(raw []byte) ([]convert.Lab, error) {
	if len(raw) != 24*TableSize {
		return nil, fmt.Errorf("Lab array dump is %d bytes, want %d", len(raw), 24*TableSize)
	}
	labs := make([]convert.Lab, TableSize)
	for i := range labs {
		labs[i] = convert.Lab{
			L: math.Float64frombits(binary.LittleEndian.Uint64(raw[24*i:])),
			A: math.Float64frombits(binary.LittleEndian.Uint64(raw[24*i+8:])),
			B: math.Float64frombits(binary.LittleEndian.Uint64(raw[24*i+16:])),
		}
	}
	return labs, nil
}
