package staircase

import (
	"fmt"
	"math"
)

// Phi is the golden ratio.
var Phi = (1.0 + math.Sqrt(5.0)) / 2.0

// InvPhi is the fraction along an edge at which substitution places its new points.
var InvPhi = 1.0 / Phi

// RhombKind is the shape class of a Penrose P3 rhomb.
type RhombKind int

// see RhombKind
const (
	Thick RhombKind = iota // 36/144 degree rhomb
	Thin                   // 72/108 degree rhomb
)

func (kind RhombKind) String() string {
	switch kind {
	case Thick:
		return "Thick"
	case Thin:
		return "Thin"
	}
	return fmt.Sprintf("RhombKind(%d)", int(kind))
}

// Valid returns true for the two defined kinds.
func (kind RhombKind) Valid() bool {
	return kind == Thick || kind == Thin
}

// Rhomb is a quadrilateral tile with vertices A, B, C, D in counter clockwise order.
type Rhomb struct {
	Kind       RhombKind
	A, B, C, D Point
}

// NewRhomb returns a rhomb of the given kind from exactly four vertices. It panics on any other number of vertices or an unknown kind.
func NewRhomb(kind RhombKind, vertices ...Point) Rhomb {
	if !kind.Valid() {
		panic(fmt.Sprintf("invalid rhomb kind %d", int(kind)))
	} else if len(vertices) != 4 {
		panic(fmt.Sprintf("rhomb must have 4 vertices, got %d", len(vertices)))
	}
	return Rhomb{kind, vertices[0], vertices[1], vertices[2], vertices[3]}
}

// Vertices returns the four vertices in order.
func (r Rhomb) Vertices() [4]Point {
	return [4]Point{r.A, r.B, r.C, r.D}
}

// Polygon returns the rhomb as a polygon.
func (r Rhomb) Polygon() Polygon {
	return Polygon{r.A, r.B, r.C, r.D}
}

// SignedArea returns the signed area of the quadrilateral, positive for counter clockwise winding.
func (r Rhomb) SignedArea() float64 {
	// shoelace on the diagonals
	return 0.5 * r.C.Sub(r.A).PerpDot(r.D.Sub(r.B))
}

// Area returns the area of the quadrilateral.
func (r Rhomb) Area() float64 {
	return math.Abs(r.SignedArea())
}

// Substitute replaces the rhomb by three smaller rhombs covering the same region. Every new point lies at InvPhi along an edge or chord of the parent. A Thick rhomb yields two Thick and one Thin, a Thin rhomb yields two Thin and one Thick. The children keep the parent's winding and their signed areas sum to the parent's.
func (r Rhomb) Substitute() []Rhomb {
	switch r.Kind {
	case Thick:
		p := r.A.Lerp(r.B, InvPhi)
		q := r.D.Lerp(r.A, InvPhi)
		s := r.B.Lerp(r.C, InvPhi)
		return []Rhomb{
			{Thick, r.A, p, q, r.D},
			{Thin, p, r.B, s, q},
			{Thick, q, s, r.C, r.D},
		}
	case Thin:
		p := r.B.Lerp(r.A, InvPhi)
		q := r.D.Lerp(r.A, InvPhi)
		s := r.C.Lerp(r.D, InvPhi)
		t := r.D.Lerp(p, InvPhi)
		return []Rhomb{
			{Thin, r.A, p, r.D, q},
			{Thick, p, r.B, r.C, s},
			{Thin, p, s, r.D, t},
		}
	}
	panic(fmt.Sprintf("invalid rhomb kind %d", int(r.Kind)))
}

func (r Rhomb) String() string {
	return fmt.Sprintf("%v[%v %v %v %v]", r.Kind, r.A, r.B, r.C, r.D)
}
