// File: internal/rhythm/patterns.go
package rhythm

import "sort"

// Set algebra over step-index patterns. Every function returns a new sorted,
// de-duplicated slice; inputs are never modified.

func sortedCopy(pattern []int) []int {
	out := make([]int, len(pattern))
	copy(out, pattern)
	sort.Ints(out)
	return out
}

func dedup(sorted []int) []int {
	if len(sorted) < 2 {
		return sorted
	}
	out := sorted[:1]
	for _, s := range sorted[1:] {
		if s != out[len(out)-1] {
			out = append(out, s)
		}
	}
	return out
}

// Combine unions two patterns.
func Combine(a, b []int) []int {
	merged := make([]int, 0, len(a)+len(b))
	merged = append(merged, a...)
	merged = append(merged, b...)
	sort.Ints(merged)
	return dedup(merged)
}

// Subtract removes every step of b from a, keeping only accents whose step
// survives.
func Subtract(a, b []int) []int {
	drop := make(map[int]bool, len(b))
	for _, s := range b {
		drop[s] = true
	}
	var out []int
	for _, s := range sortedCopy(a) {
		if !drop[s] {
			out = append(out, s)
		}
	}
	return dedup(out)
}

// Rotate cyclically shifts a pattern by r steps within [0,length).
func Rotate(pattern []int, r, length int) []int {
	if length <= 0 {
		return nil
	}
	r = ((r % length) + length) % length
	out := make([]int, 0, len(pattern))
	for _, s := range pattern {
		out = append(out, (s+r)%length)
	}
	sort.Ints(out)
	return dedup(out)
}

// InvertPattern returns the complement of a pattern within [0,length).
func InvertPattern(pattern []int, length int) []int {
	active := make(map[int]bool, len(pattern))
	for _, s := range pattern {
		active[s] = true
	}
	var out []int
	for i := 0; i < length; i++ {
		if !active[i] {
			out = append(out, i)
		}
	}
	return out
}

// DoubleTime halves every step index, de-duplicating collisions. The pattern
// plays twice as fast against the same grid.
func DoubleTime(pattern []int) []int {
	out := make([]int, 0, len(pattern))
	for _, s := range pattern {
		out = append(out, s/2)
	}
	sort.Ints(out)
	return dedup(out)
}

// HalfTime doubles every step index, spreading the pattern across twice the
// grid.
func HalfTime(pattern []int) []int {
	out := make([]int, 0, len(pattern))
	for _, s := range pattern {
		out = append(out, s*2)
	}
	sort.Ints(out)
	return dedup(out)
}
