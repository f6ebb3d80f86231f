package palette

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"
)

//go:embed data/x11.csv
var x11CSV []byte

// Registry resolves palette names to loaded palettes. Its lifecycle is
// up to the caller; commands typically create one per invocation.
type Registry struct {
	palettes map[string]*Palette
}

// NewRegistry returns a registry preloaded with the built-in x11
// palette.
func NewRegistry() *Registry {
	p, err := Parse(bytes.NewReader(x11CSV), "x11")
	if err != nil {
		// The embedded palette is validated by tests; reaching this
		// means a broken build.
		panic(err)
	}
	r := &Registry{palettes: make(map[string]*Palette)}
	r.Register(p)
	return r
}

// Register adds or replaces a palette under its own name.
func (r *Registry) Register(p *Palette) {
	r.palettes[p.Name()] = p
}

// Get returns the palette registered under name, or
// ErrUnsupportedPalette.
func (r *Registry) Get(name string) (*Palette, error) {
	p, ok := r.palettes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedPalette, name)
	}
	return p, nil
}

// Names returns the registered palette names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.palettes))
	for name := range r.palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
