package palette

import (
	"math"
	"sort"
	"sync"
)

const (
	// DefaultThickness is the brush thickness used when none is configured.
	DefaultThickness = 10
	MinThickness     = 1
	MaxThickness     = 100
)

var (
	thicknessMu sync.RWMutex
	thicknesses = []float64{2, 5, 10, 20, 40}
)

// ClampThickness limits t to the supported range.
func ClampThickness(t float64) float64 {
	if math.IsNaN(t) || t < MinThickness {
		return MinThickness
	}
	if t > MaxThickness {
		return MaxThickness
	}
	return t
}

// Thicknesses returns a copy of the thickness presets in ascending order.
func Thicknesses() []float64 {
	thicknessMu.RLock()
	defer thicknessMu.RUnlock()
	out := make([]float64, len(thicknesses))
	copy(out, thicknesses)
	return out
}

// EnsureThickness makes sure t is one of the presets and returns its index.
// t is clamped first.
func EnsureThickness(t float64) int {
	t = ClampThickness(t)
	thicknessMu.Lock()
	defer thicknessMu.Unlock()
	if idx := indexOfThickness(t); idx >= 0 {
		return idx
	}
	thicknesses = append(thicknesses, t)
	sort.Float64s(thicknesses)
	return indexOfThickness(t)
}

// Thinner returns the next preset below t, or MinThickness.
func Thinner(t float64) float64 {
	thicknessMu.RLock()
	defer thicknessMu.RUnlock()
	for i := len(thicknesses) - 1; i >= 0; i-- {
		if thicknesses[i] < t {
			return thicknesses[i]
		}
	}
	return MinThickness
}

// Thicker returns the next preset above t, or MaxThickness.
func Thicker(t float64) float64 {
	thicknessMu.RLock()
	defer thicknessMu.RUnlock()
	for _, v := range thicknesses {
		if v > t {
			return v
		}
	}
	return MaxThickness
}

func indexOfThickness(t float64) int {
	for idx, existing := range thicknesses {
		if existing == t {
			return idx
		}
	}
	return -1
}
