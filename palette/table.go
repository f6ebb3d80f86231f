package palette

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/garth74/jcc/convert"
)

// TableSize is the number of entries in a lookup table, one per RGB
// triplet.
const TableSize = 1 << 24

// Table maps every RGB triplet to the index of its nearest palette
// color. Entry i corresponds to the triplet with linear index i
// (r*65536 + g*256 + b).
type Table []uint16

// Lookup returns the palette index for c.
func (t Table) Lookup(c convert.RGB) uint16 {
	return t[convert.RGBToIndex(c)]
}

// AllLabs returns the Lab value of every RGB triplet in canonical
// index order, computed in parallel. The result is palette-independent
// and worth caching (see Store).
func AllLabs(workers int) []convert.Lab {
	out := make([]convert.Lab, TableSize)
	parallelRange(TableSize, workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = convert.RGBToLab(convert.IndexToRGB(i))
		}
	})
	return out
}

// BuildTable computes the nearest-palette-index table for p by brute
// force over all 16.7M triplets. all must be the AllLabs array. Each
// output entry depends only on its own triplet, so the result is
// byte-identical for any worker count; ties go to the lowest palette
// index.
func BuildTable(p *Palette, all []convert.Lab, workers int) (Table, error) {
	if len(all) != TableSize {
		return nil, fmt.Errorf("palette: Lab array has %d entries, want %d", len(all), TableSize)
	}
	labs := p.labs
	out := make(Table, TableSize)
	parallelRange(TableSize, workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = nearest(all[i], labs)
		}
	})
	return out, nil
}

// parallelRange splits [0, n) into contiguous chunks and runs fn on
// each from its own goroutine. Chunks are disjoint, so callers may
// write to per-index slots of a shared slice without locking.
func parallelRange(n, workers int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
