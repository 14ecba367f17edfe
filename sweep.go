package staircase

import (
	"fmt"
	"math"
	"sort"
)

// DefaultCleanTolerance is the default tolerance of SweepSet relative to a polygon's size.
const DefaultCleanTolerance = 1e-9

// SweepSet is a PolygonSet that needs no path library and only returns counter clockwise loops. Polygons are cleaned by removing duplicate points, collinear points and spikes and by splitting self-intersections. Union areas are computed exactly by a vertical slab sweep.
type SweepSet struct {
	// Tolerance is the distance below which points are merged or considered collinear, relative to the larger dimension of the polygon's bounding box.
	Tolerance float64
}

// Clean returns the simple counter clockwise loops that make up the region enclosed by the polygon. It returns nil when nothing with nonzero area remains. It panics on non-finite coordinates.
func (set SweepSet) Clean(polygon Polygon) []Polygon {
	if !polygon.IsFinite() {
		panic(fmt.Sprintf("polygon has non-finite coordinates: %v", polygon))
	} else if len(polygon) == 0 {
		return nil
	}

	b := polygon.Bounds()
	size := math.Max(b.Max[0]-b.Min[0], b.Max[1]-b.Min[1])
	if size == 0.0 {
		return nil
	}
	tolerance := set.Tolerance
	if tolerance <= 0.0 {
		tolerance = DefaultCleanTolerance
	}
	return cleanLoop(polygon.Copy(), tolerance*size)
}

// cleanLoop simplifies the loop in place and splits it at its first self-intersection, recursing on both halves.
func cleanLoop(p Polygon, eps float64) []Polygon {
	p = simplifyLoop(p, eps)
	if len(p) < 3 {
		return nil
	}

	n := len(p)
	for i := 0; i < n; i++ {
		a0, a1 := p[i], p[(i+1)%n]
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue // adjacent through the closing edge
			}
			b0, b1 := p[j], p[(j+1)%n]
			x, ok := intersectSegments(a0, a1, b0, b1, eps)
			if !ok {
				continue
			}

			// loops x..p[i+1]..p[j] and x..p[j+1]..p[i]
			first := Polygon{x}
			first = append(first, p[i+1:j+1]...)
			second := Polygon{x}
			for k := (j + 1) % n; k != (i+1)%n; k = (k + 1) % n {
				second = append(second, p[k])
			}
			return append(cleanLoop(first, eps), cleanLoop(second, eps)...)
		}
	}

	if area := p.SignedArea(); area == 0.0 {
		return nil
	} else if area < 0.0 {
		p = p.Reverse()
	}
	return []Polygon{p}
}

// simplifyLoop removes points that coincide with their predecessor, and points that lie on the line through their neighbours, until none remain.
func simplifyLoop(p Polygon, eps float64) Polygon {
	for changed := true; changed && 0 < len(p); {
		changed = false

		q := p[:0]
		for i, pt := range p {
			if 0 < len(q) && pt.Sub(q[len(q)-1]).Length() <= eps {
				changed = true
				continue
			} else if i == len(p)-1 && 0 < len(q) && pt.Sub(q[0]).Length() <= eps {
				changed = true
				continue
			}
			q = append(q, pt)
		}
		p = q
		if len(p) < 3 {
			return p
		}

		for i := 0; i < len(p) && 2 < len(p); {
			prev := p[(i+len(p)-1)%len(p)]
			next := p[(i+1)%len(p)]
			if next.Sub(prev).Length() <= eps || lineDistance(p[i], prev, next) <= eps {
				p = append(p[:i], p[i+1:]...)
				changed = true
				continue
			}
			i++
		}
	}
	return p
}

// lineDistance returns the distance from p to the line through a and b.
func lineDistance(p, a, b Point) float64 {
	d := b.Sub(a)
	length := d.Length()
	if length == 0.0 {
		return p.Sub(a).Length()
	}
	return math.Abs(d.PerpDot(p.Sub(a))) / length
}

// intersectSegments returns the point where segments a0a1 and b0b1 touch or cross. Parallel segments never intersect.
func intersectSegments(a0, a1, b0, b1 Point, eps float64) (Point, bool) {
	da := a1.Sub(a0)
	db := b1.Sub(b0)
	denom := da.PerpDot(db)
	if math.Abs(denom) <= eps*(da.Length()+db.Length()) {
		return Point{}, false
	}
	w := b0.Sub(a0)
	t := w.PerpDot(db) / denom
	u := w.PerpDot(da) / denom
	// allow touching within eps of either end
	ta := eps / da.Length()
	tb := eps / db.Length()
	if t < -ta || 1.0+ta < t || u < -tb || 1.0+tb < u {
		return Point{}, false
	}
	return a0.Lerp(a1, math.Max(0.0, math.Min(1.0, t))), true
}

////////////////////////////////////////////////////////////////

type sweepEdge struct {
	x0, y0, x1, y1 float64 // x0 < x1
	dir            int     // +1 when traversed in positive x
	poly           int
}

func (e sweepEdge) yAt(x float64) float64 {
	return e.y0 + (x-e.x0)*(e.y1-e.y0)/(e.x1-e.x0)
}

type sweepCrossing struct {
	poly int
	y    float64
	dir  int
}

type sweepInterval struct {
	y0, y1 float64
}

// UnionArea returns the area of the union of the polygons, where each polygon fills its nonzero winding region. The plane is cut into vertical slabs at every vertex and every edge crossing. Inside a slab the union's vertical extent is linear in x so the extent at the slab's midpoint gives its exact area.
func (set SweepSet) UnionArea(polygons []Polygon) float64 {
	edges := []sweepEdge{}
	xs := []float64{}
	for i, p := range polygons {
		for j := range p {
			a, b := p[j], p[(j+1)%len(p)]
			xs = append(xs, a.X)
			if a.X < b.X {
				edges = append(edges, sweepEdge{a.X, a.Y, b.X, b.Y, 1, i})
			} else if b.X < a.X {
				edges = append(edges, sweepEdge{b.X, b.Y, a.X, a.Y, -1, i})
			}
		}
	}
	if len(edges) == 0 {
		return 0.0
	}
	sort.Slice(edges, func(i, j int) bool {
		return edges[i].x0 < edges[j].x0
	})
	xs = append(xs, edgeCrossings(edges)...)
	sort.Float64s(xs)

	area := 0.0
	next := 0
	active := []sweepEdge{}
	crossings := []sweepCrossing{}
	intervals := []sweepInterval{}
	for k := 1; k < len(xs); k++ {
		x0, x1 := xs[k-1], xs[k]
		if !(x0 < x1) {
			continue
		}
		xm := 0.5 * (x0 + x1)

		// update active edges
		for next < len(edges) && edges[next].x0 < xm {
			active = append(active, edges[next])
			next++
		}
		n := 0
		for _, e := range active {
			if xm < e.x1 {
				active[n] = e
				n++
			}
		}
		active = active[:n]
		if len(active) == 0 {
			continue
		}

		crossings = crossings[:0]
		for _, e := range active {
			crossings = append(crossings, sweepCrossing{e.poly, e.yAt(xm), e.dir})
		}
		sort.Slice(crossings, func(i, j int) bool {
			if crossings[i].poly != crossings[j].poly {
				return crossings[i].poly < crossings[j].poly
			}
			return crossings[i].y < crossings[j].y
		})

		// nonzero winding intervals per polygon
		intervals = intervals[:0]
		winding := 0
		for i, c := range crossings {
			if i == 0 || crossings[i-1].poly != c.poly {
				winding = 0
			}
			prev := winding
			winding += c.dir
			if prev == 0 && winding != 0 {
				intervals = append(intervals, sweepInterval{c.y, c.y})
			} else if prev != 0 && winding == 0 {
				intervals[len(intervals)-1].y1 = c.y
			}
		}
		area += unionLength(intervals) * (x1 - x0)
	}
	return area
}

// unionLength returns the total length covered by the intervals.
func unionLength(intervals []sweepInterval) float64 {
	if len(intervals) == 0 {
		return 0.0
	}
	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].y0 < intervals[j].y0
	})
	length := 0.0
	cur := intervals[0]
	for _, iv := range intervals[1:] {
		if iv.y0 <= cur.y1 {
			cur.y1 = math.Max(cur.y1, iv.y1)
			continue
		}
		length += cur.y1 - cur.y0
		cur = iv
	}
	return length + cur.y1 - cur.y0
}

// edgeCrossings returns the x coordinates of all proper crossings between edges. Edges must be sorted by x0.
func edgeCrossings(edges []sweepEdge) []float64 {
	xs := []float64{}
	for i, e := range edges {
		ymin, ymax := math.Min(e.y0, e.y1), math.Max(e.y0, e.y1)
		for _, f := range edges[i+1:] {
			if e.x1 <= f.x0 {
				break
			} else if math.Max(f.y0, f.y1) < ymin || ymax < math.Min(f.y0, f.y1) {
				continue
			}
			if x, ok := crossingX(e, f); ok {
				xs = append(xs, x)
			}
		}
	}
	return xs
}

// crossingX returns the x coordinate where two edges cross strictly inside both of them.
func crossingX(e, f sweepEdge) (float64, bool) {
	da := Point{e.x1 - e.x0, e.y1 - e.y0}
	db := Point{f.x1 - f.x0, f.y1 - f.y0}
	denom := da.PerpDot(db)
	if math.Abs(denom) <= 1e-12*da.Length()*db.Length() {
		return 0.0, false
	}
	w := Point{f.x0 - e.x0, f.y0 - e.y0}
	t := w.PerpDot(db) / denom
	u := w.PerpDot(da) / denom
	if t <= 0.0 || 1.0 <= t || u <= 0.0 || 1.0 <= u {
		return 0.0, false
	}
	return e.x0 + t*da.X, true
}
