package staircase

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/tdewolff/canvas"
)

// DefaultCanvasExtent is the size that polygons are scaled to before being handed to canvas.
const DefaultCanvasExtent = 1e4

// CanvasSet is the default PolygonSet and uses the path boolean operations of canvas. Clean settles the polygon under the nonzero fill rule and UnionArea folds Or over all polygons.
//
// Canvas snaps intersections to a fixed grid of canvas.BentleyOttmannEpsilon, so polygons are translated and scaled to span Extent before each operation and scaled back afterwards.
type CanvasSet struct {
	Extent float64 // zero uses DefaultCanvasExtent
}

// Clean returns the loops of the region enclosed by the polygon under the nonzero fill rule. Filling loops are counter clockwise and each is followed by its clockwise holes. It returns nil when nothing with nonzero area remains. It panics on non-finite coordinates.
func (set CanvasSet) Clean(polygon Polygon) []Polygon {
	if !polygon.IsFinite() {
		panic(fmt.Sprintf("polygon has non-finite coordinates: %v", polygon))
	} else if polygon.Empty() {
		return nil
	}

	f, ok := set.frame(polygon.Bounds())
	if !ok {
		return nil
	}
	settled := f.path(polygon).Settle(canvas.NonZero)

	var loops []Polygon
	for _, sub := range settled.Split() {
		if loop := f.polygon(sub); !loop.Empty() {
			loops = append(loops, loop)
		}
	}
	return loops
}

// UnionArea returns the area covered by at least one of the polygons, where clockwise polygons following a counter clockwise one are holes in it, as returned by Clean.
func (set CanvasSet) UnionArea(polygons []Polygon) float64 {
	b, ok := boundsOf(polygons)
	if !ok {
		return 0.0
	}
	f, ok := set.frame(b)
	if !ok {
		return 0.0
	}

	var groups []*canvas.Path
	for _, polygon := range polygons {
		if polygon.Empty() {
			continue
		}
		if 0 < len(groups) && !polygon.CCW() {
			groups[len(groups)-1] = groups[len(groups)-1].Append(f.path(polygon))
		} else {
			groups = append(groups, f.path(polygon))
		}
	}
	if len(groups) == 0 {
		return 0.0
	}

	area := 0.0
	for _, sub := range unionPaths(groups).Split() {
		area += f.polygon(sub).SignedArea()
	}
	return math.Max(0.0, area)
}

// unionPaths folds Or over the paths pairwise so that operands stay balanced in size.
func unionPaths(ps []*canvas.Path) *canvas.Path {
	if len(ps) == 1 {
		return ps[0].Settle(canvas.NonZero)
	}
	m := len(ps) / 2
	return unionPaths(ps[:m]).Or(unionPaths(ps[m:]))
}

// canvasFrame maps polygon coordinates to canvas coordinates by x' = (x-origin)*scale.
type canvasFrame struct {
	origin Point
	scale  float64
}

func (set CanvasSet) frame(b orb.Bound) (canvasFrame, bool) {
	size := math.Max(b.Max[0]-b.Min[0], b.Max[1]-b.Min[1])
	if size == 0.0 {
		return canvasFrame{}, false
	}
	extent := set.Extent
	if extent <= 0.0 {
		extent = DefaultCanvasExtent
	}
	return canvasFrame{Point{b.Min[0], b.Min[1]}, extent / size}, true
}

func (f canvasFrame) path(polygon Polygon) *canvas.Path {
	p := &canvas.Path{}
	for i, pt := range polygon {
		pt = pt.Sub(f.origin).Mul(f.scale)
		if i == 0 {
			p.MoveTo(pt.X, pt.Y)
		} else {
			p.LineTo(pt.X, pt.Y)
		}
	}
	p.Close()
	return p
}

// polygon converts a closed subpath back to a polygon without repeating the start point.
func (f canvasFrame) polygon(p *canvas.Path) Polygon {
	coords := p.Coords()
	if 1 < len(coords) && coords[0] == coords[len(coords)-1] {
		coords = coords[:len(coords)-1]
	}
	polygon := make(Polygon, len(coords))
	for i, c := range coords {
		polygon[i] = Point{c.X/f.scale + f.origin.X, c.Y/f.scale + f.origin.Y}
	}
	return polygon
}
