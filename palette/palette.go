// Package palette represents named color palettes and reduces images
// to them. A palette is an ordered list of grouped, named colors; a
// lookup table maps every 8-bit RGB triplet to the index of its
// perceptually nearest palette color under the CIEDE2000 metric.
package palette

import (
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/garth74/jcc/convert"
	"github.com/garth74/jcc/diff"
)

// MaxColors bounds palette size so table indices fit in a uint16.
const MaxColors = 1 << 16

// Groups is the closed set of semantic color groups a palette entry
// may belong to.
var Groups = []string{
	"black",
	"blue",
	"brown",
	"cyan",
	"gray",
	"green",
	"orange",
	"pink",
	"purple",
	"red",
	"white",
	"yellow",
}

var groupSet = func() map[string]bool {
	m := make(map[string]bool, len(Groups))
	for _, g := range Groups {
		m[g] = true
	}
	return m
}()

// ErrUnsupportedPalette reports a palette name the registry does not
// know.
var ErrUnsupportedPalette = errors.New("palette: unsupported palette")

// A LoadError describes malformed palette input. Line is 1-based and 0
// when the problem is not tied to a single line.
type LoadError struct {
	Line   int
	Reason string
}

func (e *LoadError) Error() string {
	if e.Line == 0 {
		return "palette: " + e.Reason
	}
	return fmt.Sprintf("palette: line %d: %s", e.Line, e.Reason)
}

// Entry is one palette color.
type Entry struct {
	Group string
	Name  string
	RGB   convert.RGB
	Hex   string
}

// Palette is an ordered, immutable set of named colors. Entries are
// sorted by group, then by RGB triplet; downstream group aggregation
// relies on that ordering.
type Palette struct {
	name    string
	entries []Entry
	labs    []convert.Lab
}

// New validates entries and builds a palette. Entries must already be
// sorted (see Sort), carry known groups, and number at most MaxColors.
// Empty Hex fields are filled in from the RGB value.
func New(name string, entries []Entry) (*Palette, error) {
	if len(entries) == 0 {
		return nil, &LoadError{Reason: "palette has no colors"}
	}
	if len(entries) > MaxColors {
		return nil, &LoadError{Reason: fmt.Sprintf("palette has %d colors, limit is %d", len(entries), MaxColors)}
	}
	own := make([]Entry, len(entries))
	copy(own, entries)
	for i := range own {
		if !groupSet[own[i].Group] {
			return nil, &LoadError{Reason: fmt.Sprintf("unknown color group %q", own[i].Group)}
		}
		if own[i].Hex == "" {
			own[i].Hex = own[i].RGB.Hex()
		}
		if i > 0 && entryLess(own[i], own[i-1]) {
			return nil, &LoadError{Reason: fmt.Sprintf("entries %d and %d are not sorted by group then RGB", i-1, i)}
		}
	}
	p := &Palette{name: name, entries: own}
	p.labs = convert.RGBToLabAll(p.RGBs())
	return p, nil
}

// Load reads a palette CSV from disk. The palette name is the file
// name without its extension.
func Load(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Parse(f, name)
}

// Parse reads palette data in the CSV form "group,name,r,g,b", one
// color per line. The hex column is derived, not stored.
func Parse(r io.Reader, name string) (*Palette, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 5
	cr.TrimLeadingSpace = true

	var entries []Entry
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &LoadError{Line: line, Reason: err.Error()}
		}
		var ch [3]uint8
		for i, field := range rec[2:] {
			v, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil || v < 0 || v > 255 {
				return nil, &LoadError{Line: line, Reason: fmt.Sprintf("bad channel value %q", field)}
			}
			ch[i] = uint8(v)
		}
		entries = append(entries, Entry{
			Group: strings.TrimSpace(rec[0]),
			Name:  strings.TrimSpace(rec[1]),
			RGB:   convert.RGB{R: ch[0], G: ch[1], B: ch[2]},
		})
	}
	return New(name, entries)
}

// WriteCSV writes p in the CSV form understood by Parse.
func (p *Palette) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	for _, e := range p.entries {
		rec := []string{
			e.Group,
			e.Name,
			strconv.Itoa(int(e.RGB.R)),
			strconv.Itoa(int(e.RGB.G)),
			strconv.Itoa(int(e.RGB.B)),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Name returns the palette's registry name.
func (p *Palette) Name() string { return p.name }

// Len returns the number of colors.
func (p *Palette) Len() int { return len(p.entries) }

// Entry returns the i-th color.
func (p *Palette) Entry(i int) Entry { return p.entries[i] }

// Entries returns a copy of all colors in palette order.
func (p *Palette) Entries() []Entry {
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out
}

// RGBs returns the RGB value of every color in palette order.
func (p *Palette) RGBs() []convert.RGB {
	out := make([]convert.RGB, len(p.entries))
	for i, e := range p.entries {
		out[i] = e.RGB
	}
	return out
}

// GroupLabels returns the group of every color in palette order.
func (p *Palette) GroupLabels() []string {
	out := make([]string, len(p.entries))
	for i, e := range p.entries {
		out[i] = e.Group
	}
	return out
}

// Labs returns the Lab value of every color in palette order.
func (p *Palette) Labs() []convert.Lab {
	out := make([]convert.Lab, len(p.labs))
	copy(out, p.labs)
	return out
}

// Nearest returns the index of the palette color closest to c under
// CIEDE2000, computed directly without a lookup table. Ties go to the
// lowest index.
func (p *Palette) Nearest(c convert.RGB) uint16 {
	return nearest(convert.RGBToLab(c), p.labs)
}

// Fingerprint returns a stable hash of the palette's contents. Cached
// lookup tables are keyed on it, so editing a palette's colors can
// never serve a stale table.
func (p *Palette) Fingerprint() string {
	h := sha256.New()
	for _, e := range p.entries {
		io.WriteString(h, e.Group)
		io.WriteString(h, "\x00")
		io.WriteString(h, e.Name)
		h.Write([]byte{0, e.RGB.R, e.RGB.G, e.RGB.B})
	}
	return hex.EncodeToString(h.Sum(nil)[:8])
}

// Sort orders entries by group, then by RGB triplet, the order New
// requires.
func Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entryLess(entries[i], entries[j])
	})
}

func entryLess(a, b Entry) bool {
	if a.Group != b.Group {
		return a.Group < b.Group
	}
	ai := convert.RGBToIndex(a.RGB)
	bi := convert.RGBToIndex(b.RGB)
	return ai < bi
}

// nearest performs the brute-force argmin over palette Lab values.
// Strict less-than keeps the first occurrence on ties.
func nearest(c convert.Lab, labs []convert.Lab) uint16 {
	best := 0
	bestD := math.Inf(1)
	for j := range labs {
		if d := diff.CIE2000(c, labs[j]); d < bestD {
			bestD = d
			best = j
		}
	}
	return uint16(best)
}
