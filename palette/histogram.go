package palette

import (
	"fmt"
	"math"
)

// Row is one palette entry together with its pixel count.
type Row struct {
	Entry
	Count int64
}

// GroupCount is the aggregate pixel count for one color group.
type GroupCount struct {
	Group string
	Count int64
}

// Histogram counts how many of the given palette indices fall on each
// entry. Every entry gets a row, including zero-count ones, in palette
// order.
func (p *Palette) Histogram(indices []uint16) ([]Row, error) {
	counts := make([]int64, p.Len())
	for _, ix := range indices {
		if int(ix) >= p.Len() {
			return nil, fmt.Errorf("palette: index %d out of range for %d colors", ix, p.Len())
		}
		counts[ix]++
	}
	rows := make([]Row, p.Len())
	for i := range rows {
		rows[i] = Row{Entry: p.entries[i], Count: counts[i]}
	}
	return rows, nil
}

// GroupHistogram aggregates histogram rows by color group. Groups come
// out in the rows' order, which for a valid palette is sorted.
func GroupHistogram(rows []Row) []GroupCount {
	var out []GroupCount
	seen := make(map[string]int)
	for _, r := range rows {
		if i, ok := seen[r.Group]; ok {
			out[i].Count += r.Count
			continue
		}
		seen[r.Group] = len(out)
		out = append(out, GroupCount{Group: r.Group, Count: r.Count})
	}
	return out
}

// entropyEps keeps log2 away from zero probabilities.
const entropyEps = 1e-15

// Entropy computes the metric entropy of a group histogram. Black,
// white and gray are merged into a single grayscale bucket so that
// grayscale images, which only ever hit those groups, score near zero.
func Entropy(groups []GroupCount) float64 {
	var total int64
	for _, g := range groups {
		total += g.Count
	}
	if total == 0 {
		return 0
	}

	var grayscale int64
	probs := make([]float64, 1, len(groups)+1)
	for _, g := range groups {
		switch g.Group {
		case "black", "white", "gray":
			grayscale += g.Count
		default:
			probs = append(probs, float64(g.Count)/float64(total))
		}
	}
	probs[0] = float64(grayscale) / float64(total)

	var v float64
	for _, p := range probs {
		v -= p * math.Log2(p+entropyEps)
	}
	v /= float64(len(probs))
	// The epsilon can push the sum a hair below zero.
	return math.Abs(v)
}
