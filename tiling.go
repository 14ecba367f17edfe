package staircase

import (
	"fmt"
	"math"
)

// degenerateFraction is the area ratio between a child and its parent below which the child is considered degenerate.
const degenerateFraction = 1e-9

// Tiling is a set of rhombs produced by a number of substitution steps from the seed.
type Tiling struct {
	Level  int
	Rhombs []Rhomb
}

// Seed returns the level 0 tiling: ten Thick rhombs around the origin, each rotated by 36 degrees from the previous.
func Seed() Tiling {
	sin36, cos36 := math.Sincos(math.Pi / 5.0)
	a := Point{0.0, 0.0}
	b := Point{1.0, 0.0}
	c := Point{1.0 + cos36, sin36}
	d := Point{cos36, sin36}

	rhombs := make([]Rhomb, 0, 10)
	for k := 0; k < 10; k++ {
		phi := float64(k) * math.Pi / 5.0
		rhombs = append(rhombs, Rhomb{Thick, a.Rot(phi), b.Rot(phi), c.Rot(phi), d.Rot(phi)})
	}
	return Tiling{0, rhombs}
}

// Inflate substitutes every rhomb of the tiling and returns the tiling one level deeper. Children that collapse to zero area are dropped. The input is not modified.
func Inflate(t Tiling) Tiling {
	rhombs := make([]Rhomb, 0, 3*len(t.Rhombs))
	for _, r := range t.Rhombs {
		area := r.Area()
		for _, child := range r.Substitute() {
			if child.Area() <= degenerateFraction*area {
				continue
			}
			rhombs = append(rhombs, child)
		}
	}
	return Tiling{t.Level + 1, rhombs}
}

// Generate returns the seed inflated level times. It panics for a negative level.
func Generate(level int) Tiling {
	if level < 0 {
		panic(fmt.Sprintf("level must be non-negative, got %d", level))
	}
	t := Seed()
	for i := 0; i < level; i++ {
		t = Inflate(t)
	}
	Logger().Debug("generated tiling", "level", level, "rhombs", len(t.Rhombs))
	return t
}

// Len returns the number of rhombs.
func (t Tiling) Len() int {
	return len(t.Rhombs)
}

// Count returns the number of Thick and Thin rhombs.
func (t Tiling) Count() (int, int) {
	thick, thin := 0, 0
	for _, r := range t.Rhombs {
		if r.Kind == Thick {
			thick++
		} else {
			thin++
		}
	}
	return thick, thin
}

// Area returns the summed area of all rhombs.
func (t Tiling) Area() float64 {
	a := 0.0
	for _, r := range t.Rhombs {
		a += r.SignedArea()
	}
	return a
}

// Polygons returns every rhomb as a polygon, in tiling order.
func (t Tiling) Polygons() []Polygon {
	polygons := make([]Polygon, len(t.Rhombs))
	for i, r := range t.Rhombs {
		polygons[i] = r.Polygon()
	}
	return polygons
}
