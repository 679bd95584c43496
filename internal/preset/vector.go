package preset

import (
	"fmt"
	"math/rand/v2"
)

// denseRadius is the half-width of the dense block around the center.
const denseRadius = 5

// Vector builds the root row of width cols for p. Seed only affects the
// random generator; the same seed always yields the same vector.
func (p Preset) Vector(cols int, seed uint64) ([]bool, error) {
	if cols <= 0 {
		return nil, fmt.Errorf("preset %s: cols must be positive, got %d", p.Key, cols)
	}

	root := make([]bool, cols)
	if len(p.Data) > 0 {
		// Data sits two cells in from the right edge, clipped on the right.
		offset := max(0, cols-len(p.Data)-2)
		for i, v := range p.Data {
			if offset+i >= cols {
				break
			}
			root[offset+i] = v == 1
		}
		return root, nil
	}

	switch p.Generator {
	case GenRandom:
		rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		for i := range root {
			root[i] = rng.IntN(2) == 1
		}
	case GenSingle:
		root[cols-1] = true
	case GenAlternating:
		for i := 0; i < cols; i += 2 {
			root[i] = true
		}
	case GenDense:
		center := cols / 2
		for i := center - denseRadius; i <= center+denseRadius; i++ {
			if i >= 0 && i < cols {
				root[i] = true
			}
		}
	default:
		return nil, fmt.Errorf("preset %s: unknown generator %q", p.Key, p.Generator)
	}
	return root, nil
}
