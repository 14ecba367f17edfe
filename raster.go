package staircase

import (
	"fmt"
	"image"
	"math"
	"sort"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/clip"
	"golang.org/x/image/vector"
)

// RasterGrid is a row-major grid of intensities in [0,1]. Row j holds the samples at y=j, which grows in the same direction as the y axis of the rasterized geometry.
type RasterGrid struct {
	W, H int
	Pix  []float64
}

// NewRasterGrid returns a zero grid of w by h cells. It panics if either dimension is smaller than one.
func NewRasterGrid(w, h int) *RasterGrid {
	if w < 1 || h < 1 {
		panic(fmt.Sprintf("raster dimensions must be positive, got %dx%d", w, h))
	}
	return &RasterGrid{w, h, make([]float64, w*h)}
}

// At returns the intensity at column i and row j.
func (g *RasterGrid) At(i, j int) float64 {
	return g.Pix[j*g.W+i]
}

// Set sets the intensity at column i and row j.
func (g *RasterGrid) Set(i, j int, v float64) {
	g.Pix[j*g.W+i] = v
}

// Row returns the cells of row j.
func (g *RasterGrid) Row(j int) []float64 {
	return g.Pix[j*g.W : (j+1)*g.W]
}

// Mean returns the average intensity.
func (g *RasterGrid) Mean() float64 {
	sum := 0.0
	for _, v := range g.Pix {
		sum += v
	}
	return sum / float64(len(g.Pix))
}

// Clamp limits all intensities to [0,1].
func (g *RasterGrid) Clamp() {
	for i, v := range g.Pix {
		g.Pix[i] = math.Max(0.0, math.Min(1.0, v))
	}
}

// Normalize rescales the intensities linearly so that the minimum becomes 0 and the maximum 1. A constant grid becomes all zero.
func (g *RasterGrid) Normalize() {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range g.Pix {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if !(lo < hi) {
		for i := range g.Pix {
			g.Pix[i] = 0.0
		}
		return
	}
	for i, v := range g.Pix {
		g.Pix[i] = (v - lo) / (hi - lo)
	}
}

func (g *RasterGrid) String() string {
	sb := strings.Builder{}
	for j := g.H - 1; 0 <= j; j-- {
		for _, v := range g.Row(j) {
			if 0.5 <= v {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

////////////////////////////////////////////////////////////////

// RasterMode selects how polygons are converted to intensities.
type RasterMode int

// see RasterMode
const (
	SampleCenters RasterMode = iota // 1.0 for every cell whose center is inside a polygon
	AreaCoverage                    // fraction of every cell covered by polygons
)

func (mode RasterMode) String() string {
	switch mode {
	case SampleCenters:
		return "centers"
	case AreaCoverage:
		return "coverage"
	}
	return fmt.Sprintf("RasterMode(%d)", int(mode))
}

// ParseRasterMode parses the string representation of a RasterMode.
func ParseRasterMode(s string) (RasterMode, error) {
	switch strings.ToLower(s) {
	case "", "centers", "center":
		return SampleCenters, nil
	case "coverage", "area":
		return AreaCoverage, nil
	}
	return 0, fmt.Errorf("unknown raster mode %q", s)
}

// Rasterizer fits polygons onto a grid and fills them.
type Rasterizer struct {
	Mode RasterMode
}

// Rasterize fills the polygons onto a w by h grid, sampling cell centers.
func Rasterize(polygons []Polygon, w, h int) *RasterGrid {
	return Rasterizer{}.Rasterize(polygons, w, h)
}

// FitMatrix returns the transformation that maps the bounding box uniformly onto [0,max(w,h)] along its larger dimension, with the minimum corner at the origin. It panics if the bounding box has no positive finite extent.
func FitMatrix(bounds orb.Bound, w, h int) Matrix {
	extent := math.Max(bounds.Max[0]-bounds.Min[0], bounds.Max[1]-bounds.Min[1])
	if !(0.0 < extent) || math.IsInf(extent, 0) {
		panic(fmt.Sprintf("bounds must have a positive finite extent, got %v", bounds))
	}
	s := float64(max(w, h)) / extent
	return Identity.Scale(s, s).Translate(-bounds.Min[0], -bounds.Min[1])
}

// Rasterize fits the bounding box of the polygons onto the grid, preserving the aspect ratio, and fills the polygons. Parts that fall outside the grid are clipped. It panics if either dimension is smaller than one.
func (r Rasterizer) Rasterize(polygons []Polygon, w, h int) *RasterGrid {
	grid := NewRasterGrid(w, h)
	bounds, ok := boundsOf(polygons)
	if !ok || bounds.Max[0]-bounds.Min[0] == 0.0 && bounds.Max[1]-bounds.Min[1] == 0.0 {
		return grid
	}

	m := FitMatrix(bounds, w, h)
	view := orb.Bound{Min: orb.Point{0.0, 0.0}, Max: orb.Point{float64(w), float64(h)}}
	rings := make([]orb.Ring, 0, len(polygons))
	for _, polygon := range polygons {
		if polygon.Empty() {
			continue
		}
		ring := polygon.Transform(m).Ring()
		if !ring.Bound().Intersects(view) {
			continue
		} else if ring = clip.Ring(view, ring); len(ring) < 4 {
			continue
		}
		rings = append(rings, ring)
	}

	switch r.Mode {
	case SampleCenters:
		clipped := make([]Polygon, len(rings))
		for i, ring := range rings {
			clipped[i] = PolygonFromRing(ring)
		}
		fillCenters(grid, clipped)
	case AreaCoverage:
		fillCoverage(grid, rings)
	default:
		panic(fmt.Sprintf("invalid raster mode %d", int(r.Mode)))
	}
	return grid
}

// fillCenters sets every cell whose center lies inside the polygons by their combined nonzero winding, scanning one row at a time. Clockwise polygons inside counter clockwise ones are holes.
func fillCenters(grid *RasterGrid, polygons []Polygon) {
	bounds, ok := boundsOf(polygons)
	if !ok {
		return
	}
	j0 := max(0, int(math.Ceil(bounds.Min[1]-0.5)))
	j1 := min(grid.H-1, int(math.Floor(bounds.Max[1]-0.5)))

	type crossing struct {
		x   float64
		dir int
	}
	crossings := []crossing{}
	for j := j0; j <= j1; j++ {
		y := float64(j) + 0.5
		crossings = crossings[:0]
		for _, polygon := range polygons {
			if len(polygon) == 0 {
				continue
			}
			prev := polygon[len(polygon)-1]
			for _, cur := range polygon {
				if (prev.Y <= y) != (cur.Y <= y) {
					x := prev.X + (y-prev.Y)*(cur.X-prev.X)/(cur.Y-prev.Y)
					dir := 1
					if cur.Y < prev.Y {
						dir = -1
					}
					crossings = append(crossings, crossing{x, dir})
				}
				prev = cur
			}
		}
		sort.Slice(crossings, func(a, b int) bool {
			return crossings[a].x < crossings[b].x
		})

		winding := 0
		for k, c := range crossings {
			winding += c.dir
			if winding == 0 || k+1 == len(crossings) {
				continue
			}
			i0 := max(0, int(math.Ceil(c.x-0.5)))
			i1 := min(grid.W-1, int(math.Floor(crossings[k+1].x-0.5)))
			for i := i0; i <= i1; i++ {
				grid.Set(i, j, 1.0)
			}
		}
	}
}

// fillCoverage accumulates all rings in a single vector rasterizer and stores the coverage of every cell.
func fillCoverage(grid *RasterGrid, rings []orb.Ring) {
	ras := vector.NewRasterizer(grid.W, grid.H)
	for _, ring := range rings {
		ras.MoveTo(float32(ring[0][0]), float32(ring[0][1]))
		for _, p := range ring[1:] {
			ras.LineTo(float32(p[0]), float32(p[1]))
		}
		ras.ClosePath()
	}

	img := image.NewAlpha(image.Rect(0, 0, grid.W, grid.H))
	ras.Draw(img, img.Bounds(), image.Opaque, image.Point{})
	for j := 0; j < grid.H; j++ {
		for i := 0; i < grid.W; i++ {
			grid.Set(i, j, float64(img.AlphaAt(i, j).A)/255.0)
		}
	}
}
