package staircase

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
)

// ErrUnknownTheme is returned when a theme is not registered.
var ErrUnknownTheme = errors.New("unknown theme")

// Generator renders a pattern onto a w by h grid.
type Generator func(w, h int) (*RasterGrid, error)

var themes = struct {
	sync.RWMutex
	m map[string]Generator
}{m: map[string]Generator{
	"ligo":             Ligo,
	"quantum_optics":   QuantumOptics,
	"condensed_matter": CondensedMatter,
	"amo":              AMO,
	"qec":              QEC,
	"tensor":           TensorNetwork,
	"penrose":          func(w, h int) (*RasterGrid, error) { return DefaultPenrose().Render(w, h) },
}}

// RegisterTheme adds or replaces a theme.
func RegisterTheme(name string, gen Generator) {
	if gen == nil {
		panic("theme generator is nil")
	}
	themes.Lock()
	themes.m[name] = gen
	themes.Unlock()
}

// Themes returns the sorted names of all registered themes.
func Themes() []string {
	themes.RLock()
	defer themes.RUnlock()
	names := make([]string, 0, len(themes.m))
	for name := range themes.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Theme returns the generator registered under name.
func Theme(name string) (Generator, error) {
	themes.RLock()
	gen, ok := themes.m[name]
	themes.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTheme, name)
	}
	return gen, nil
}

// linspace returns the n evenly spaced samples over [a,b], including both ends.
func linspace(a, b float64, n int) []float64 {
	xs := make([]float64, n)
	if n == 1 {
		xs[0] = a
		return xs
	}
	for i := range xs {
		xs[i] = a + (b-a)*float64(i)/float64(n-1)
	}
	return xs
}

// fill returns a grid with f evaluated at every cell.
func fill(w, h int, f func(i, j int) float64) *RasterGrid {
	grid := NewRasterGrid(w, h)
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			grid.Set(i, j, f(i, j))
		}
	}
	return grid
}

// Ligo renders diagonal interference fringes, 0.5*(1+cos(x+y)) over [0,10pi].
func Ligo(w, h int) (*RasterGrid, error) {
	xs, ys := linspace(0.0, 10.0*math.Pi, w), linspace(0.0, 10.0*math.Pi, h)
	return fill(w, h, func(i, j int) float64 {
		return 0.5 * (1.0 + math.Cos(xs[i]+ys[j]))
	}), nil
}

// QuantumOptics renders a squeezed Gaussian state with squeeze parameter 0.8 over [-3,3].
func QuantumOptics(w, h int) (*RasterGrid, error) {
	const r = 0.8
	xs, ys := linspace(-3.0, 3.0, w), linspace(-3.0, 3.0, h)
	grid := fill(w, h, func(i, j int) float64 {
		return math.Exp(-(xs[i]*xs[i]*math.Exp(2.0*r) + ys[j]*ys[j]*math.Exp(-2.0*r)))
	})
	grid.Normalize()
	return grid, nil
}

// CondensedMatter renders diagonal stripes of three cells.
func CondensedMatter(w, h int) (*RasterGrid, error) {
	return fill(w, h, func(i, j int) float64 {
		if (i+j)%6 < 3 {
			return 1.0
		}
		return 0.0
	}), nil
}

// AMO renders concentric rings, sin^2(r/15) with r the distance to the center.
func AMO(w, h int) (*RasterGrid, error) {
	cx, cy := float64(w)/2.0, float64(h)/2.0
	grid := fill(w, h, func(i, j int) float64 {
		s := math.Sin(math.Hypot(float64(i)-cx, float64(j)-cy) / 15.0)
		return s * s
	})
	grid.Normalize()
	return grid, nil
}

// QEC renders a checkerboard of 20 by 20 cells.
func QEC(w, h int) (*RasterGrid, error) {
	return fill(w, h, func(i, j int) float64 {
		return float64((i/20 + j/20) % 2)
	}), nil
}

// TensorNetwork renders logarithmically spaced rings, sin^2(log(1+r)).
func TensorNetwork(w, h int) (*RasterGrid, error) {
	cx, cy := float64(w)/2.0, float64(h)/2.0
	grid := fill(w, h, func(i, j int) float64 {
		s := math.Sin(math.Log1p(math.Hypot(float64(i)-cx, float64(j)-cy)))
		return s * s
	})
	grid.Normalize()
	return grid, nil
}
