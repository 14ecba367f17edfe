package staircase

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// FillRule is the algorithm to specify which area is to be filled and which not, in particular when multiple polygons overlap or a polygon intersects itself. The NonZero fills all regions with a nonzero winding number while EvenOdd only fills regions with an odd winding number.
type FillRule int

// see FillRule
const (
	NonZero FillRule = iota
	EvenOdd
)

func (fillRule FillRule) String() string {
	switch fillRule {
	case NonZero:
		return "NonZero"
	case EvenOdd:
		return "EvenOdd"
	}
	return fmt.Sprintf("FillRule(%d)", int(fillRule))
}

// Polygon is a closed loop of points in 2D space. The edge from the last point back to the first is implicit, the first point is never repeated at the end.
type Polygon []Point

// PolygonFromRing returns a polygon from an orb ring, removing the closing point if present.
func PolygonFromRing(r orb.Ring) Polygon {
	if r.Closed() && 1 < len(r) {
		r = r[:len(r)-1]
	}
	p := make(Polygon, len(r))
	for i, q := range r {
		p[i] = Point{q[0], q[1]}
	}
	return p
}

// Ring returns the polygon as a closed orb ring.
func (p Polygon) Ring() orb.Ring {
	if len(p) == 0 {
		return orb.Ring{}
	}
	r := make(orb.Ring, len(p)+1)
	for i, q := range p {
		r[i] = orb.Point{q.X, q.Y}
	}
	r[len(p)] = r[0]
	return r
}

// Copy returns a copy of the polygon.
func (p Polygon) Copy() Polygon {
	q := make(Polygon, len(p))
	copy(q, p)
	return q
}

// Empty returns true if the polygon has fewer than three points.
func (p Polygon) Empty() bool {
	return len(p) < 3
}

// IsFinite returns true if all coordinates are finite.
func (p Polygon) IsFinite() bool {
	for _, q := range p {
		if !q.IsFinite() {
			return false
		}
	}
	return true
}

// SignedArea returns the polygon's signed area, positive for counter clockwise winding.
func (p Polygon) SignedArea() float64 {
	_, a := planar.CentroidArea(p.Ring())
	return a
}

// Area returns the polygon's area.
func (p Polygon) Area() float64 {
	a := p.SignedArea()
	if a < 0.0 {
		return -a
	}
	return a
}

// Centroid returns the center point of the polygon.
func (p Polygon) Centroid() Point {
	c, _ := planar.CentroidArea(p.Ring())
	return Point{c[0], c[1]}
}

// CCW returns true if the polygon winds counter clockwise.
func (p Polygon) CCW() bool {
	return p.Ring().Orientation() == orb.CCW
}

// Reverse returns the polygon with its points in reverse order.
func (p Polygon) Reverse() Polygon {
	q := make(Polygon, len(p))
	for i, pt := range p {
		q[len(p)-1-i] = pt
	}
	return q
}

// Equals returns true if both polygons trace the same points within Epsilon, possibly starting at a different point.
func (p Polygon) Equals(q Polygon) bool {
	if len(p) != len(q) {
		return false
	} else if len(p) == 0 {
		return true
	}
	for k := range q {
		if !q[k].Equals(p[0]) {
			continue
		}
		i := 1
		for ; i < len(p); i++ {
			if !p[i].Equals(q[(k+i)%len(q)]) {
				break
			}
		}
		if i == len(p) {
			return true
		}
	}
	return false
}

// Bounds returns the bounding box of the polygon.
func (p Polygon) Bounds() orb.Bound {
	return p.Ring().Bound()
}

// Transform applies the affine transformation to every point.
func (p Polygon) Transform(m Matrix) Polygon {
	q := make(Polygon, len(p))
	for i, pt := range p {
		q[i] = m.Dot(pt)
	}
	return q
}

// FillCount returns the number of times the test point is enclosed by the polygon. Counter clockwise enclosures are counted positively and clockwise enclosures negatively.
func (p Polygon) FillCount(x, y float64) int {
	if len(p) == 0 {
		return 0
	}
	test := Point{x, y}
	count := 0
	prevCoord := p[len(p)-1]
	for _, coord := range p {
		// see https://wrf.ecse.rpi.edu//Research/Short_Notes/pnpoly.html
		if (test.Y < coord.Y) != (test.Y < prevCoord.Y) &&
			test.X < (prevCoord.X-coord.X)*(test.Y-coord.Y)/(prevCoord.Y-coord.Y)+coord.X {
			if prevCoord.Y < coord.Y {
				count++
			} else {
				count--
			}
		}
		prevCoord = coord
	}
	return count
}

// Interior is true when the point (x,y) is in the interior of the polygon, i.e. gets filled. This depends on the FillRule.
func (p Polygon) Interior(x, y float64, fillRule FillRule) bool {
	fillCount := p.FillCount(x, y)
	if fillRule == NonZero {
		return fillCount != 0
	}
	return fillCount%2 != 0
}

func (p Polygon) String() string {
	sb := strings.Builder{}
	for i, pt := range p {
		if i != 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(pt.String())
	}
	return sb.String()
}

// boundsOf returns the bounding box of all points of the given polygons and false if there are none.
func boundsOf(polygons []Polygon) (orb.Bound, bool) {
	var mp orb.MultiPoint
	for _, p := range polygons {
		for _, pt := range p {
			mp = append(mp, orb.Point{pt.X, pt.Y})
		}
	}
	if len(mp) == 0 {
		return orb.Bound{}, false
	}
	return mp.Bound(), true
}

// NetArea returns the sum of the signed areas of the given polygons, so that clockwise holes subtract from the counter clockwise loops that contain them.
func NetArea(polygons []Polygon) float64 {
	a := 0.0
	for _, p := range polygons {
		a += p.SignedArea()
	}
	return a
}

// TotalArea returns the sum of the areas of the given polygons, not accounting for overlap.
func TotalArea(polygons []Polygon) float64 {
	a := 0.0
	for _, p := range polygons {
		a += p.Area()
	}
	return a
}
