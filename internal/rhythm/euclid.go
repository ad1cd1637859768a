// File: internal/rhythm/euclid.go
package rhythm

// Euclidean distributes hits as evenly as possible across steps and returns
// the active 0-based step indices. The construction walks the slots
// accumulating hits per slot and emits a hit whenever the accumulator crosses
// the slot count; rotation shifts the resulting boolean pattern before it is
// converted to index form.
func Euclidean(hits, steps, rotation int) []int {
	if steps <= 0 || hits <= 0 {
		return nil
	}
	if hits > steps {
		hits = steps
	}

	pattern := make([]bool, steps)
	acc := 0
	for i := 0; i < steps; i++ {
		acc += hits
		if acc >= steps {
			acc -= steps
			pattern[i] = true
		}
	}

	if rotation%steps != 0 {
		r := ((rotation % steps) + steps) % steps
		rotated := make([]bool, steps)
		for i, on := range pattern {
			rotated[(i+r)%steps] = on
		}
		pattern = rotated
	}

	var out []int
	for i, on := range pattern {
		if on {
			out = append(out, i)
		}
	}
	return out
}
